package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/domain"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
	catalogRepo "github.com/apptbook/appointment-service/internal/infra/storage/catalog"
	"github.com/apptbook/appointment-service/pkg/ptr"
)

// fakeAppointmentRepo репозиторий записей в памяти
type fakeAppointmentRepo struct {
	appointments  map[int64]*domain.Appointment
	replacedLinks []domain.AppointmentService
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) ListByFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.UserID == filter.UserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appointment *domain.Appointment) error {
	f.appointments[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) ReplaceServiceLinks(_ context.Context, appointmentID int64, services []domain.AppointmentService) error {
	f.replacedLinks = services
	if a, ok := f.appointments[appointmentID]; ok {
		a.Services = services
	}
	return nil
}

// fakeCatalogRepo каталог услуг в памяти
type fakeCatalogRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalogRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := f.services[id]
		if !ok {
			return nil, catalogRepo.ErrServiceNotFound
		}
		out = append(out, svc)
	}
	return out, nil
}

// fakeWorkingHours отдаёт фиксированные правила
type fakeWorkingHours struct {
	rules []domain.WorkingHoursRule
}

func (f *fakeWorkingHours) GetRules(_ context.Context, _ int64) ([]domain.WorkingHoursRule, error) {
	return f.rules, nil
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// nopLogger глушит логи в тестах
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func openMonday() []domain.WorkingHoursRule {
	return []domain.WorkingHoursRule{
		{Day: domain.Monday, IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
	}
}

func testCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: map[int64]*domain.Service{
		1: {ID: 1, UserID: 42, Name: "Стрижка", DurationMinutes: 45, Price: 30.0, IsActive: true},
		2: {ID: 2, UserID: 42, Name: "Укладка", DurationMinutes: 30, Price: 20.0, IsActive: true},
	}}
}

func seedAppointment() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: {
			ID:            1,
			UserID:        42,
			CustomerName:  "Анна",
			CustomerPhone: "+79990001122",
			Status:        domain.StatusConfirmed,
			StartTime:     at("10:00"),
			EndTime:       at("10:45"),
			Services: []domain.AppointmentService{
				{AppointmentID: 1, ServiceID: 1, ServiceName: "Стрижка", DurationMinutes: 45, Price: 30.0},
			},
		},
	}}
}

func newTestUseCase(repo *fakeAppointmentRepo) *UseCase {
	return NewUseCase(repo, testCatalog(), &fakeWorkingHours{rules: openMonday()}, nil, &fakeTxManager{}, nopLogger{})
}

func TestExecute_UpdateScalarFields(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		CustomerName:  ptr.Ptr("Мария"),
		Notes:         ptr.Ptr("перенос с прошлой недели"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Мария", resp.CustomerName)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "перенос с прошлой недели", *resp.Notes)
	// Время не менялось
	assert.Equal(t, at("10:00"), resp.StartTime)
	assert.Equal(t, at("10:45"), resp.EndTime)
}

func TestExecute_MoveStartKeepsDuration(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(at("14:00")),
	})
	require.NoError(t, err)

	assert.Equal(t, at("14:00"), resp.StartTime)
	assert.Equal(t, at("14:45"), resp.EndTime)
}

func TestExecute_ChangeServicesRecomputesEnd(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		ServiceIDs:    ptr.Ptr([]int64{1, 2}),
	})
	require.NoError(t, err)

	assert.Equal(t, at("10:00"), resp.StartTime)
	assert.Equal(t, at("11:15"), resp.EndTime)
	assert.Equal(t, 75, resp.DurationMinutes)
	assert.InDelta(t, 50.0, resp.TotalPrice, 0.001)
	require.Len(t, repo.replacedLinks, 2)
	assert.Equal(t, int64(1), repo.replacedLinks[0].ServiceID)
	assert.Equal(t, int64(2), repo.replacedLinks[1].ServiceID)
}

func TestExecute_SelfExcludedFromOverlap(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	// Сдвиг на 15 минут внутрь собственного слота
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(at("10:15")),
	})
	require.NoError(t, err)
	assert.Equal(t, at("10:15"), resp.StartTime)
}

func TestExecute_MoveConflict(t *testing.T) {
	repo := seedAppointment()
	repo.appointments[2] = &domain.Appointment{
		ID:           2,
		UserID:       42,
		CustomerName: "Ирина",
		Status:       domain.StatusConfirmed,
		StartTime:    at("14:00"),
		EndTime:      at("15:00"),
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(at("14:30")),
	})
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(2), conflictErr.Conflicts[0].ID)
}

func TestExecute_MoveOutsideHours(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(at("17:30")),
	})
	require.ErrorIs(t, err, ErrOutsideHours)
}

func TestExecute_IgnoreWorkingHours(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:             42,
		AppointmentID:      1,
		StartTime:          ptr.Ptr(at("17:30")),
		IgnoreWorkingHours: true,
	})
	require.NoError(t, err)
	assert.Equal(t, at("18:15"), resp.EndTime)
}

func TestExecute_ScalarUpdateSkipsPlacementCheck(t *testing.T) {
	// Запись вручную поверх занятого слота остаётся на месте
	// при смене только скалярных полей
	repo := seedAppointment()
	repo.appointments[2] = &domain.Appointment{
		ID:        2,
		UserID:    42,
		Status:    domain.StatusConfirmed,
		StartTime: at("10:00"),
		EndTime:   at("11:00"),
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		Status:        ptr.Ptr(string(domain.StatusCompleted)),
	})
	require.NoError(t, err)
}

func TestExecute_ForeignServiceRejected(t *testing.T) {
	repo := seedAppointment()
	catalog := testCatalog()
	catalog.services[3] = &domain.Service{ID: 3, UserID: 99, Name: "Чужая", DurationMinutes: 30, IsActive: true}
	uc := NewUseCase(repo, catalog, &fakeWorkingHours{rules: openMonday()}, nil, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		ServiceIDs:    ptr.Ptr([]int64{3}),
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NotFound(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 77,
		Notes:         ptr.Ptr("x"),
	})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        7,
		AppointmentID: 1,
		Notes:         ptr.Ptr("x"),
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(seedAppointment())

	tests := []struct {
		name string
		req  *Request
	}{
		{"empty customer name", &Request{UserID: 42, AppointmentID: 1, CustomerName: ptr.Ptr("  ")}},
		{"empty services list", &Request{UserID: 42, AppointmentID: 1, ServiceIDs: ptr.Ptr([]int64{})}},
		{"unknown status", &Request{UserID: 42, AppointmentID: 1, Status: ptr.Ptr("DONE")}},
		{"zero appointment id", &Request{UserID: 42, AppointmentID: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/domain"
	catalogRepo "github.com/apptbook/appointment-service/internal/infra/storage/catalog"
)

// fakeAppointmentRepo репозиторий записей в памяти
type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	a.ID = f.nextID
	f.appointments = append(f.appointments, a)
	return a, nil
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

func openWeek() []domain.WorkingHoursRule {
	return []domain.WorkingHoursRule{
		{Day: domain.Monday, IsOpen: true, StartTime: "09:00", EndTime: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
		{Day: domain.Sunday, IsOpen: false},
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, services map[int64]*domain.Service) *UseCase {
	return NewUseCase(
		repo,
		&fakeCatalogRepo{services: services},
		&fakeWorkingHours{rules: openWeek()},
		nil,
		&fakeTxManager{},
		nopLogger{},
	)
}

func haircut() map[int64]*domain.Service {
	return map[int64]*domain.Service{
		1: {ID: 1, UserID: 42, Name: "Haircut", DurationMinutes: 45, Price: 30, IsActive: true},
		2: {ID: 2, UserID: 42, Name: "Beard trim", DurationMinutes: 15, Price: 10, IsActive: true},
	}
}

func validRequest() *Request {
	return &Request{
		UserID:        42,
		CustomerName:  "Ivan Petrov",
		CustomerPhone: "+7 900 123-45-67",
		StartTime:     at("10:00"),
		ServiceIDs:    []int64{1},
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, haircut())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, at("10:00"), resp.StartTime)
	assert.Equal(t, at("10:45"), resp.EndTime)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
}

func TestExecute_MultipleServicesSumDuration(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, haircut())

	req := validRequest()
	req.ServiceIDs = []int64{1, 2}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, at("11:00"), resp.EndTime)
	assert.Equal(t, 40.0, resp.TotalPrice)
}

func TestExecute_Conflict(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:        7,
			UserID:    42,
			Status:    domain.StatusConfirmed,
			StartTime: at("10:00"),
			EndTime:   at("10:45"),
		}},
		nextID: 7,
	}
	uc := newTestUseCase(repo, haircut())

	req := validRequest()
	req.StartTime = at("10:30")
	req.ServiceIDs = []int64{2} // 15 минут

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(7), conflictErr.Conflicts[0].ID)
}

func TestExecute_AdjacentSlotAllowed(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:        7,
			UserID:    42,
			Status:    domain.StatusConfirmed,
			StartTime: at("10:00"),
			EndTime:   at("10:45"),
		}},
		nextID: 7,
	}
	uc := newTestUseCase(repo, haircut())

	req := validRequest()
	req.StartTime = at("10:45")
	req.ServiceIDs = []int64{2}

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:        7,
			UserID:    42,
			Status:    domain.StatusCancelled,
			StartTime: at("10:00"),
			EndTime:   at("10:45"),
		}},
		nextID: 7,
	}
	uc := newTestUseCase(repo, haircut())

	req := validRequest()
	req.StartTime = at("10:00")

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_WorkingHoursViolations(t *testing.T) {
	cases := []struct {
		name     string
		start    time.Time
		expected error
	}{
		{name: "before opening", start: at("08:00"), expected: ErrOutsideHours},
		{name: "break time", start: at("12:15"), expected: ErrBreakTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeAppointmentRepo{}, haircut())

			req := validRequest()
			req.StartTime = tc.start
			req.ServiceIDs = []int64{2}

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, haircut())

	req := validRequest()
	sunday := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
	req.StartTime = sunday

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_ManualBypassesEverything(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:        7,
			UserID:    42,
			Status:    domain.StatusConfirmed,
			StartTime: at("10:00"),
			EndTime:   at("10:45"),
		}},
		nextID: 7,
	}
	uc := newTestUseCase(repo, haircut())

	req := validRequest()
	req.StartTime = at("10:00") // поверх занятого слота
	req.IsManual = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.IsManual)
}

func TestExecute_IgnoreWorkingHoursStillChecksOverlap(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:        7,
			UserID:    42,
			Status:    domain.StatusConfirmed,
			StartTime: at("10:00"),
			EndTime:   at("10:45"),
		}},
		nextID: 7,
	}
	uc := newTestUseCase(repo, haircut())

	// Вне рабочих часов с переключателем - проходит
	early := validRequest()
	early.StartTime = at("08:00")
	early.ServiceIDs = []int64{2}
	early.IgnoreWorkingHours = true

	_, err := uc.Execute(context.Background(), early)
	assert.NoError(t, err)

	// Но занятый слот по-прежнему отклоняется
	busy := validRequest()
	busy.StartTime = at("10:30")
	busy.ServiceIDs = []int64{2}
	busy.IgnoreWorkingHours = true

	_, err = uc.Execute(context.Background(), busy)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, haircut())

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty customer name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "empty phone", mutate: func(r *Request) { r.CustomerPhone = "" }},
		{name: "no services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "zero start time", mutate: func(r *Request) { r.StartTime = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ForeignServiceRejected(t *testing.T) {
	services := haircut()
	services[3] = &domain.Service{ID: 3, UserID: 99, Name: "Foreign", DurationMinutes: 30, Price: 20, IsActive: true}
	uc := newTestUseCase(&fakeAppointmentRepo{}, services)

	req := validRequest()
	req.ServiceIDs = []int64{3}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	services := haircut()
	services[4] = &domain.Service{ID: 4, UserID: 42, Name: "Retired", DurationMinutes: 30, Price: 20, IsActive: false}
	uc := newTestUseCase(&fakeAppointmentRepo{}, services)

	req := validRequest()
	req.ServiceIDs = []int64{4}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotBookable)
}

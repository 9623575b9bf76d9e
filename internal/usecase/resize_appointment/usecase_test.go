package resize_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/domain"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
)

// fakeAppointmentRepo репозиторий записей в памяти
type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
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

func newTestUseCase(repo *fakeAppointmentRepo) *UseCase {
	return NewUseCase(repo, &fakeWorkingHours{rules: openMonday()}, nil, &fakeTxManager{}, nopLogger{})
}

func seedAppointment() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: {
			ID:        1,
			UserID:    42,
			Status:    domain.StatusConfirmed,
			StartTime: at("10:00"),
			EndTime:   at("10:30"),
		},
	}}
}

func TestExecute_Extend(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      1,
		UserID:             42,
		NewDurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, at("10:00"), resp.StartTime)
	assert.Equal(t, at("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ClampToMinimum(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      1,
		UserID:             42,
		NewDurationMinutes: 5,
	})
	require.NoError(t, err)

	// 5 минут поднимаются до минимума, а не отклоняются
	assert.Equal(t, domain.MinAppointmentDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, at("10:15"), resp.EndTime)
}

func TestExecute_SelfExcludedFromOverlap(t *testing.T) {
	// Запись не должна конфликтовать сама с собой при уменьшении
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      1,
		UserID:             42,
		NewDurationMinutes: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, at("10:15"), resp.EndTime)
}

func TestExecute_ExtendIntoNeighbor(t *testing.T) {
	repo := seedAppointment()
	repo.appointments[2] = &domain.Appointment{
		ID:        2,
		UserID:    42,
		Status:    domain.StatusConfirmed,
		StartTime: at("10:45"),
		EndTime:   at("11:15"),
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      1,
		UserID:             42,
		NewDurationMinutes: 60,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(2), conflictErr.Conflicts[0].ID)
}

func TestExecute_ExtendPastClosing(t *testing.T) {
	repo := seedAppointment()
	repo.appointments[1].StartTime = at("17:30")
	repo.appointments[1].EndTime = at("17:45")
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      1,
		UserID:             42,
		NewDurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrOutsideHours)
}

func TestExecute_ManualIgnoresWorkingHours(t *testing.T) {
	repo := seedAppointment()
	repo.appointments[1].StartTime = at("17:30")
	repo.appointments[1].EndTime = at("17:45")
	repo.appointments[1].IsManual = true
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      1,
		UserID:             42,
		NewDurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, at("18:30"), resp.EndTime)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      99,
		UserID:             42,
		NewDurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID:      1,
		UserID:             7,
		NewDurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(seedAppointment())

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 0, UserID: 42, NewDurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 1, UserID: 42, NewDurationMinutes: -10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

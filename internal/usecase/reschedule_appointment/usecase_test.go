package reschedule_appointment

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

// fakeScheduleCache фиксирует сброшенные дни
type fakeScheduleCache struct {
	invalidated []time.Time
}

func (f *fakeScheduleCache) InvalidateDays(_ context.Context, _ int64, dates ...time.Time) error {
	f.invalidated = append(f.invalidated, dates...)
	return nil
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

func weekRules() []domain.WorkingHoursRule {
	return []domain.WorkingHoursRule{
		{Day: domain.Monday, IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
		{Day: domain.Tuesday, IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
		{Day: domain.Sunday, IsOpen: false},
	}
}

func seedAppointment() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: {
			ID:        1,
			UserID:    42,
			Status:    domain.StatusConfirmed,
			StartTime: at("10:00"),
			EndTime:   at("10:45"),
		},
	}}
}

func newTestUseCase(repo *fakeAppointmentRepo, cache ScheduleCache) *UseCase {
	return NewUseCase(repo, &fakeWorkingHours{rules: weekRules()}, cache, &fakeTxManager{}, nopLogger{})
}

func TestExecute_MoveKeepsDuration(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		NewStartTime:  at("14:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, at("14:00"), resp.StartTime)
	assert.Equal(t, at("14:45"), resp.EndTime)
	assert.Equal(t, 45, resp.DurationMinutes)
}

func TestExecute_MoveOntoOwnSlot(t *testing.T) {
	// Перенос на пересечение с собственным старым временем не конфликтует
	repo := seedAppointment()
	uc := newTestUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		NewStartTime:  at("10:15"),
	})
	require.NoError(t, err)
	assert.Equal(t, at("10:15"), resp.StartTime)
}

func TestExecute_Conflict(t *testing.T) {
	repo := seedAppointment()
	repo.appointments[2] = &domain.Appointment{
		ID:        2,
		UserID:    42,
		Status:    domain.StatusConfirmed,
		StartTime: at("14:00"),
		EndTime:   at("15:00"),
	}
	uc := newTestUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		NewStartTime:  at("14:30"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(2), conflictErr.Conflicts[0].ID)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	repo := seedAppointment()
	uc := newTestUseCase(repo, nil)

	sunday := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		NewStartTime:  sunday,
	})
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_ManualKeepsBypass(t *testing.T) {
	repo := seedAppointment()
	repo.appointments[1].IsManual = true
	uc := newTestUseCase(repo, nil)

	sunday := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		NewStartTime:  sunday,
	})
	require.NoError(t, err)
	assert.Equal(t, sunday, resp.StartTime)
}

func TestExecute_InvalidatesBothDays(t *testing.T) {
	repo := seedAppointment()
	cache := &fakeScheduleCache{}
	uc := newTestUseCase(repo, cache)

	tuesday := time.Date(2025, 11, 4, 11, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 1,
		NewStartTime:  tuesday,
	})
	require.NoError(t, err)

	require.Len(t, cache.invalidated, 2)
	assert.Equal(t, at("10:00"), cache.invalidated[0])
	assert.Equal(t, tuesday, cache.invalidated[1])
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        42,
		AppointmentID: 99,
		NewStartTime:  at("14:00"),
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	uc := newTestUseCase(seedAppointment(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        7,
		AppointmentID: 1,
		NewStartTime:  at("14:00"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

package preview_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/domain"
)

// fakeAppointmentRepo репозиторий записей в памяти
type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
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

// fakeWorkingHours отдаёт фиксированные правила
type fakeWorkingHours struct {
	rules []domain.WorkingHoursRule
}

func (f *fakeWorkingHours) GetRules(_ context.Context, _ int64) ([]domain.WorkingHoursRule, error) {
	return f.rules, nil
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
	return NewUseCase(repo, &fakeWorkingHours{rules: openMonday()}, nopLogger{})
}

func TestExecute_SnapToQuarter(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	// Курсор чуть ниже второй четверти ячейки 10:00
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:          42,
		CellStart:       at("10:00"),
		RawQuarter:      2.1,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.True(t, resp.Snapped)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, at("10:30"), *resp.StartTime)
	assert.Equal(t, at("11:00"), *resp.EndTime)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Reason)
}

func TestExecute_NoSnapBetweenQuarters(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	// Курсор посередине между четвертями - индикатор не показывается
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:          42,
		CellStart:       at("10:00"),
		RawQuarter:      1.5,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.False(t, resp.Snapped)
	assert.Nil(t, resp.StartTime)
	assert.Nil(t, resp.EndTime)
}

func TestExecute_ConflictMarkedUnavailable(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{
			ID:           5,
			UserID:       42,
			CustomerName: "Анна",
			Status:       domain.StatusConfirmed,
			StartTime:    at("10:30"),
			EndTime:      at("11:15"),
		},
	}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:          42,
		CellStart:       at("10:00"),
		RawQuarter:      2.0,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.True(t, resp.Snapped)
	assert.False(t, resp.Available)
	assert.Equal(t, "OVERLAP", resp.Reason)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(5), resp.Conflicts[0].ID)
}

func TestExecute_ExcludeDraggedAppointment(t *testing.T) {
	// Перетаскиваемая запись не конфликтует сама с собой
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{
			ID:        5,
			UserID:    42,
			Status:    domain.StatusConfirmed,
			StartTime: at("10:30"),
			EndTime:   at("11:15"),
		},
	}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:          42,
		CellStart:       at("10:00"),
		RawQuarter:      2.0,
		DurationMinutes: 45,
		ExcludeID:       5,
	})
	require.NoError(t, err)

	require.True(t, resp.Snapped)
	assert.True(t, resp.Available)
}

func TestExecute_OutsideHoursMarkedUnavailable(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:          42,
		CellStart:       at("17:00"),
		RawQuarter:      3.0,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.True(t, resp.Snapped)
	assert.False(t, resp.Available)
	assert.Equal(t, "OUTSIDE_HOURS", resp.Reason)
}

func TestExecute_IgnoreWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:             42,
		CellStart:          at("17:00"),
		RawQuarter:         3.0,
		DurationMinutes:    60,
		IgnoreWorkingHours: true,
	})
	require.NoError(t, err)

	require.True(t, resp.Snapped)
	assert.True(t, resp.Available)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero cell start", &Request{UserID: 42, RawQuarter: 1.0, DurationMinutes: 30}},
		{"zero duration", &Request{UserID: 42, CellStart: at("10:00"), RawQuarter: 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

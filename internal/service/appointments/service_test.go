package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/internal/infra/cache"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
	"github.com/apptbook/appointment-service/internal/service/appointments/models"
)

// fakeAppointmentRepo репозиторий записей в памяти
type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	links        map[int64]*domain.AppointmentService
	// remaining возвращается из DeleteServiceLink
	remaining int64
	deleted   []int64
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

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.appointments, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAppointmentRepo) GetServiceLink(_ context.Context, linkID int64) (*domain.AppointmentService, error) {
	link, ok := f.links[linkID]
	if !ok {
		return nil, appointmentRepo.ErrServiceLinkNotFound
	}
	return link, nil
}

func (f *fakeAppointmentRepo) DeleteServiceLink(_ context.Context, linkID int64) (int64, error) {
	if _, ok := f.links[linkID]; !ok {
		return 0, appointmentRepo.ErrServiceLinkNotFound
	}
	delete(f.links, linkID)
	return f.remaining, nil
}

func (f *fakeAppointmentRepo) RecentCustomers(_ context.Context, _ int64, _ uint64) ([]domain.RecentCustomer, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) AppointmentDates(_ context.Context, _ int64, _, _ time.Time) ([]time.Time, error) {
	return nil, nil
}

// fakeScheduleCache учитывает обращения
type fakeScheduleCache struct {
	days        map[string][]*domain.Appointment
	invalidated []time.Time
}

func cacheKey(userID int64, date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (f *fakeScheduleCache) GetDay(_ context.Context, userID int64, date time.Time) ([]*domain.Appointment, error) {
	day, ok := f.days[cacheKey(userID, date)]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return day, nil
}

func (f *fakeScheduleCache) SetDay(_ context.Context, userID int64, date time.Time, appointments []*domain.Appointment) error {
	if f.days == nil {
		f.days = make(map[string][]*domain.Appointment)
	}
	f.days[cacheKey(userID, date)] = appointments
	return nil
}

func (f *fakeScheduleCache) InvalidateDay(_ context.Context, _ int64, date time.Time) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

func (f *fakeScheduleCache) InvalidateDays(_ context.Context, _ int64, dates ...time.Time) error {
	f.invalidated = append(f.invalidated, dates...)
	return nil
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// nopLogger глушит логи в тестах
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func seedRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{
			1: {
				ID:        1,
				UserID:    42,
				Status:    domain.StatusConfirmed,
				StartTime: monday.Add(10 * time.Hour),
				EndTime:   monday.Add(10*time.Hour + 45*time.Minute),
			},
		},
		links: map[int64]*domain.AppointmentService{
			100: {ID: 100, AppointmentID: 1, ServiceID: 1, ServiceName: "Стрижка"},
		},
	}
}

func TestDelete_InvalidatesCacheDay(t *testing.T) {
	repo := seedRepo()
	scheduleCache := &fakeScheduleCache{}
	svc := NewService(repo, scheduleCache, &fakeTxManager{}, nopLogger{})

	err := svc.Delete(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.deleted)
	require.Len(t, scheduleCache.invalidated, 1)
	assert.Equal(t, monday.Add(10*time.Hour), scheduleCache.invalidated[0])
}

func TestDelete_AccessDenied(t *testing.T) {
	svc := NewService(seedRepo(), nil, &fakeTxManager{}, nopLogger{})

	err := svc.Delete(context.Background(), 1, 7)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatusRejected(t *testing.T) {
	svc := NewService(seedRepo(), nil, &fakeTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 42, Status: "DONE"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveServiceLink_LastLinkDeletesAppointment(t *testing.T) {
	repo := seedRepo()
	repo.remaining = 0
	svc := NewService(repo, nil, &fakeTxManager{}, nopLogger{})

	err := svc.RemoveServiceLink(context.Background(), 100, 42)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.deleted, "appointment without services must be removed")
}

func TestRemoveServiceLink_KeepsAppointmentWithRemainingServices(t *testing.T) {
	repo := seedRepo()
	repo.remaining = 1
	svc := NewService(repo, nil, &fakeTxManager{}, nopLogger{})

	err := svc.RemoveServiceLink(context.Background(), 100, 42)
	require.NoError(t, err)

	assert.Empty(t, repo.deleted)
}

func TestRemoveServiceLink_NotFound(t *testing.T) {
	svc := NewService(seedRepo(), nil, &fakeTxManager{}, nopLogger{})

	err := svc.RemoveServiceLink(context.Background(), 999, 42)
	require.ErrorIs(t, err, ErrServiceLinkNotFound)
}

func TestList_SingleDayServedFromCache(t *testing.T) {
	repo := seedRepo()
	scheduleCache := &fakeScheduleCache{}
	svc := NewService(repo, scheduleCache, &fakeTxManager{}, nopLogger{})

	day := monday
	req := &models.ListAppointmentsRequest{UserID: 42, StartDate: &day, EndDate: &day}

	// Первый запрос идёт в репозиторий и наполняет кеш
	first, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, first.Appointments, 1)
	require.Len(t, scheduleCache.days, 1)

	// Второй отдаётся из кеша даже после удаления строки из репозитория
	delete(repo.appointments, 1)
	second, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, second.Appointments, 1)
}

func TestList_NilCacheSkipsCaching(t *testing.T) {
	svc := NewService(seedRepo(), nil, &fakeTxManager{}, nopLogger{})

	day := monday
	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		UserID:    42,
		StartDate: &day,
		EndDate:   &day,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
}

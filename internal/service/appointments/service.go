package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/internal/infra/cache"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
	"github.com/apptbook/appointment-service/internal/service/appointments/models"
)

// recentCustomersLimit максимум клиентов в подсказках автодополнения
const recentCustomersLimit = 10

// Service сервис для работы с записями календаря
type Service struct {
	appointmentRepo AppointmentRepository
	scheduleCache   ScheduleCache
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// scheduleCache может быть nil, если кеширование отключено
func NewService(
	appointmentRepo AppointmentRepository,
	scheduleCache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		scheduleCache:   scheduleCache,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись доступна только владельцу аккаунта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает записи аккаунта с фильтрацией по периоду и статусу
// Для запроса одного дня без дополнительных фильтров используется кеш расписания
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%d", req.UserID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if day, ok := s.cacheableDay(req); ok {
		if cached, err := s.scheduleCache.GetDay(ctx, req.UserID, day); err == nil {
			s.logger.Info("List: cache hit for user=%d date=%s", req.UserID, day.Format(domain.DateFormat))
			return models.FromDomainAppointmentList(cached), nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("List: cache read failed for user=%d: %v", req.UserID, err)
		}
	}

	appointments, err := s.appointmentRepo.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if day, ok := s.cacheableDay(req); ok {
		if err := s.scheduleCache.SetDay(ctx, req.UserID, day, appointments); err != nil {
			s.logger.Warn("List: cache write failed for user=%d: %v", req.UserID, err)
		}
	}

	s.logger.Info("List: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting appointment id=%d by user=%d", id, userID)

	appointment, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateDays(ctx, userID, appointment.StartTime)

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// UpdateStatus обновляет статус записи
// Отмена записи освобождает её слот для новых записей
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	appointment, err := s.getOwned(ctx, id, req.UserID)
	if err != nil {
		return err
	}

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.invalidateDays(ctx, req.UserID, appointment.StartTime)

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
	return nil
}

// RemoveServiceLink отвязывает услугу от записи по ID связи
// Запись, потерявшая последнюю услугу, удаляется целиком
func (s *Service) RemoveServiceLink(ctx context.Context, linkID int64, userID int64) error {
	s.logger.Info("RemoveServiceLink: removing service link id=%d by user=%d", linkID, userID)

	link, err := s.appointmentRepo.GetServiceLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrServiceLinkNotFound) {
			s.logger.Warn("RemoveServiceLink: service link id=%d not found", linkID)
			return ErrServiceLinkNotFound
		}
		s.logger.Error("RemoveServiceLink: repository error for link id=%d: %v", linkID, err)
		return fmt.Errorf("%w: RemoveServiceLink - repository error: %v", ErrInternal, err)
	}

	appointment, err := s.getOwned(ctx, link.AppointmentID, userID)
	if err != nil {
		return err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		remaining, err := s.appointmentRepo.DeleteServiceLink(ctx, linkID)
		if err != nil {
			return err
		}

		if remaining == 0 {
			s.logger.Info("RemoveServiceLink: appointment id=%d lost its last service, deleting", appointment.ID)
			return s.appointmentRepo.Delete(ctx, appointment.ID)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, appointmentRepo.ErrServiceLinkNotFound) {
			return ErrServiceLinkNotFound
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("RemoveServiceLink: transaction error for link id=%d: %v", linkID, err)
		return fmt.Errorf("%w: RemoveServiceLink - transaction error: %v", ErrInternal, err)
	}

	s.invalidateDays(ctx, userID, appointment.StartTime)

	s.logger.Info("RemoveServiceLink: successfully removed service link id=%d from appointment id=%d", linkID, appointment.ID)
	return nil
}

// RecentCustomers возвращает недавних клиентов аккаунта для автодополнения формы
func (s *Service) RecentCustomers(ctx context.Context, userID int64) (*models.RecentCustomersResponse, error) {
	s.logger.Info("RecentCustomers: fetching recent customers for user=%d", userID)

	customers, err := s.appointmentRepo.RecentCustomers(ctx, userID, recentCustomersLimit)
	if err != nil {
		s.logger.Error("RecentCustomers: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: RecentCustomers - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecentCustomers(customers), nil
}

// AppointmentDates возвращает даты периода, на которые есть активные записи
func (s *Service) AppointmentDates(ctx context.Context, userID int64, from, to time.Time) (*models.AppointmentDatesResponse, error) {
	s.logger.Info("AppointmentDates: fetching dates for user=%d, period=%s to %s",
		userID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end before start", ErrInvalidInput)
	}

	dates, err := s.appointmentRepo.AppointmentDates(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("AppointmentDates: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: AppointmentDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDates(dates), nil
}

// Вспомогательные методы

// getOwned получает запись и проверяет, что она принадлежит аккаунту
func (s *Service) getOwned(ctx context.Context, id int64, userID int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if appointment.UserID != userID {
		s.logger.Warn("access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

// cacheableDay возвращает дату, если запрос пригоден для кеша дневных расписаний
// Кешируются только запросы одного дня без фильтра статуса и отменённых записей
func (s *Service) cacheableDay(req *models.ListAppointmentsRequest) (time.Time, bool) {
	if s.scheduleCache == nil {
		return time.Time{}, false
	}
	if req.StartDate == nil || req.EndDate == nil || !req.StartDate.Equal(*req.EndDate) {
		return time.Time{}, false
	}
	if req.Status != nil || req.IncludeInactive {
		return time.Time{}, false
	}
	return *req.StartDate, true
}

// invalidateDays сбрасывает кеш расписания для затронутых дат
// Ошибка кеша не прерывает операцию
func (s *Service) invalidateDays(ctx context.Context, userID int64, dates ...time.Time) {
	if s.scheduleCache == nil {
		return
	}
	if err := s.scheduleCache.InvalidateDays(ctx, userID, dates...); err != nil {
		s.logger.Warn("failed to invalidate schedule cache for user=%d: %v", userID, err)
	}
}

package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
	catalogRepo "github.com/apptbook/appointment-service/internal/infra/storage/catalog"
	"github.com/apptbook/appointment-service/internal/schedule"
)

// UseCase use case для редактирования записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	workingHours    WorkingHoursProvider
	scheduleCache   ScheduleCache
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// scheduleCache может быть nil, если кеширование отключено
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	workingHours WorkingHoursProvider,
	scheduleCache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		workingHours:    workingHours,
		scheduleCache:   scheduleCache,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case редактирования записи
// Смена услуг пересчитывает окончание; новое размещение проверяется
// с исключением самой записи из поиска пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: appointment id=%d, user=%d", req.AppointmentID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// Новый набор услуг резолвится вне транзакции
	var newServices []*domain.Service
	if req.ServiceIDs != nil {
		services, err := uc.catalogRepo.GetByIDs(ctx, *req.ServiceIDs)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("UpdateAppointment: some services not found: %v", *req.ServiceIDs)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get services: %v", err)
			return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
		}

		for _, svc := range services {
			if svc.UserID != req.UserID {
				return nil, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, svc.ID)
			}
			if !svc.CanBeBooked() {
				return nil, fmt.Errorf("%w: service id=%d", ErrServiceNotBookable, svc.ID)
			}
		}
		newServices = services
	}

	rules, err := uc.workingHours.GetRules(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	evaluator := schedule.NewEvaluator(schedule.NewWorkingHoursPolicy(rules))

	var result *domain.Appointment
	var oldStart time.Time

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if appointment.UserID != req.UserID {
			uc.logger.Warn("UpdateAppointment: access denied for user=%d to appointment id=%d",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		oldStart = appointment.StartTime

		applyFields(appointment, req)

		// Пересчитываем размещение
		startTime := appointment.StartTime
		if req.StartTime != nil {
			startTime = *req.StartTime
		}

		durationMinutes := appointment.DurationMinutes()
		if newServices != nil {
			durationMinutes = domain.TotalDurationMinutes(newServices)
		}

		timeChanged := req.StartTime != nil || newServices != nil
		if timeChanged {
			day := startTime
			filter := domain.AppointmentsFilter{
				UserID:    req.UserID,
				StartDate: &day,
				EndDate:   &day,
			}

			existing, err := uc.appointmentRepo.ListByFilter(txCtx, filter)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
			}

			opts := schedule.PlacementOptions{
				IgnoreWorkingHours: appointment.IsManual || req.IgnoreWorkingHours,
				ExcludeID:          appointment.ID,
			}

			verdict := evaluator.CanPlace(startTime, durationMinutes, deref(existing), opts)
			if !verdict.OK {
				return verdictError(verdict)
			}
		}

		appointment.StartTime = startTime
		appointment.EndTime = startTime.Add(time.Duration(durationMinutes) * time.Minute)

		if err := uc.appointmentRepo.Update(txCtx, appointment); err != nil {
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		if newServices != nil {
			links := serviceLinks(appointment.ID, newServices)
			if err := uc.appointmentRepo.ReplaceServiceLinks(txCtx, appointment.ID, links); err != nil {
				uc.logger.Error("UpdateAppointment: failed to replace service links for id=%d: %v",
					appointment.ID, err)
				return fmt.Errorf("%w: failed to replace service links: %v", ErrInternal, err)
			}
			appointment.Services = links
		}

		result = appointment
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.invalidateDays(ctx, req.UserID, oldStart, result.StartTime)

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", result.ID)
	return toResponse(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.CustomerName != nil {
		if strings.TrimSpace(*req.CustomerName) == "" {
			return fmt.Errorf("%w: customerName must not be empty", ErrInvalidInput)
		}
		if len(*req.CustomerName) > domain.MaxCustomerNameLength {
			return fmt.Errorf("%w: customerName too long", ErrInvalidInput)
		}
	}

	if req.CustomerPhone != nil {
		if strings.TrimSpace(*req.CustomerPhone) == "" {
			return fmt.Errorf("%w: customerPhone must not be empty", ErrInvalidInput)
		}
		if len(*req.CustomerPhone) > domain.MaxCustomerPhoneLength {
			return fmt.Errorf("%w: customerPhone too long", ErrInvalidInput)
		}
	}

	if req.ServiceIDs != nil && len(*req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if req.Status != nil && !domain.ValidStatus(domain.AppointmentStatus(*req.Status)) {
		return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// applyFields применяет скалярные поля запроса без пересчёта времени
func applyFields(appointment *domain.Appointment, req *Request) {
	if req.CustomerName != nil {
		appointment.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		appointment.CustomerPhone = *req.CustomerPhone
	}
	if req.Status != nil {
		appointment.Status = domain.AppointmentStatus(*req.Status)
	}
	if req.Notes != nil {
		appointment.Notes = req.Notes
	}
}

// verdictError конвертирует отказ проверки доступности в типизированную ошибку
func verdictError(verdict schedule.Verdict) error {
	switch verdict.Reason {
	case schedule.ReasonClosedDay:
		return ErrClosedDay
	case schedule.ReasonOutsideHours:
		return ErrOutsideHours
	case schedule.ReasonBreakTime:
		return ErrBreakTime
	case schedule.ReasonOverlap:
		return &ConflictError{Conflicts: toConflicts(verdict.Conflicts)}
	default:
		return fmt.Errorf("%w: unexpected verdict %q", ErrInternal, verdict.Reason)
	}
}

// serviceLinks строит связи записи с услугами, денормализуя их данные
func serviceLinks(appointmentID int64, services []*domain.Service) []domain.AppointmentService {
	links := make([]domain.AppointmentService, 0, len(services))
	for _, svc := range services {
		links = append(links, domain.AppointmentService{
			AppointmentID:   appointmentID,
			ServiceID:       svc.ID,
			ServiceName:     svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Color:           svc.Color,
		})
	}
	return links
}

func deref(appointments []*domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, *a)
	}
	return out
}

func (uc *UseCase) invalidateDays(ctx context.Context, userID int64, dates ...time.Time) {
	if uc.scheduleCache == nil {
		return
	}
	if err := uc.scheduleCache.InvalidateDays(ctx, userID, dates...); err != nil {
		uc.logger.Warn("UpdateAppointment: failed to invalidate schedule cache for user=%d: %v", userID, err)
	}
}

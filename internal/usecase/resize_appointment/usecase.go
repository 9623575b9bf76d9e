package resize_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
	"github.com/apptbook/appointment-service/internal/schedule"
)

// UseCase use case для изменения длительности записи (drag-resize нижней кромки)
type UseCase struct {
	appointmentRepo AppointmentRepository
	workingHours    WorkingHoursProvider
	scheduleCache   ScheduleCache
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// scheduleCache может быть nil, если кеширование отключено
func NewUseCase(
	appointmentRepo AppointmentRepository,
	workingHours WorkingHoursProvider,
	scheduleCache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		workingHours:    workingHours,
		scheduleCache:   scheduleCache,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case изменения длительности записи
// Длительность ниже минимума поднимается до 15 минут, а не отклоняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResizeAppointment: appointment id=%d, user=%d, newDuration=%d",
		req.AppointmentID, req.UserID, req.NewDurationMinutes)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.NewDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: newDurationMinutes must be positive", ErrInvalidInput)
	}

	// Изменение длительности перетаскиванием не должно схлопывать запись в ноль
	duration := req.NewDurationMinutes
	if duration < domain.MinAppointmentDurationMinutes {
		uc.logger.Info("ResizeAppointment: clamping duration %d to minimum %d",
			duration, domain.MinAppointmentDurationMinutes)
		duration = domain.MinAppointmentDurationMinutes
	}

	rules, err := uc.workingHours.GetRules(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("ResizeAppointment: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	evaluator := schedule.NewEvaluator(schedule.NewWorkingHoursPolicy(rules))

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ResizeAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ResizeAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if appointment.UserID != req.UserID {
			uc.logger.Warn("ResizeAppointment: access denied for user=%d to appointment id=%d",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// Записи этого дня с блокировкой (FOR UPDATE)
		day := appointment.StartTime
		filter := domain.AppointmentsFilter{
			UserID:    req.UserID,
			StartDate: &day,
			EndDate:   &day,
		}

		existing, err := uc.appointmentRepo.ListByFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("ResizeAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		opts := schedule.PlacementOptions{
			IgnoreWorkingHours: appointment.IsManual || req.IgnoreWorkingHours,
			ExcludeID:          appointment.ID,
		}

		verdict := evaluator.CanPlace(appointment.StartTime, duration, deref(existing), opts)
		if !verdict.OK {
			return verdictError(verdict)
		}

		appointment.EndTime = appointment.StartTime.Add(time.Duration(duration) * time.Minute)

		if err := uc.appointmentRepo.Update(txCtx, appointment); err != nil {
			uc.logger.Error("ResizeAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = appointment
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.invalidateDay(ctx, req.UserID, result.StartTime)

	uc.logger.Info("ResizeAppointment: successfully resized appointment id=%d to %d minutes",
		result.ID, result.DurationMinutes())
	return toResponse(result), nil
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

func deref(appointments []*domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, *a)
	}
	return out
}

func (uc *UseCase) invalidateDay(ctx context.Context, userID int64, date time.Time) {
	if uc.scheduleCache == nil {
		return
	}
	if err := uc.scheduleCache.InvalidateDay(ctx, userID, date); err != nil {
		uc.logger.Warn("ResizeAppointment: failed to invalidate schedule cache for user=%d: %v", userID, err)
	}
}

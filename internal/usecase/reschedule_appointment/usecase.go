package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
	"github.com/apptbook/appointment-service/internal/schedule"
)

// UseCase use case для переноса записи на новое время (drag-and-drop)
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

// Execute выполняет use case переноса записи
// Длительность записи сохраняется; сама запись исключается из проверки пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment id=%d, user=%d, newStart=%s",
		req.AppointmentID, req.UserID, req.NewStartTime.Format(time.RFC3339))

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return nil, fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	rules, err := uc.workingHours.GetRules(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	evaluator := schedule.NewEvaluator(schedule.NewWorkingHoursPolicy(rules))

	var result *domain.Appointment
	var oldStart time.Time

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if appointment.UserID != req.UserID {
			uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		oldStart = appointment.StartTime
		duration := appointment.DurationMinutes()
		newEnd := req.NewStartTime.Add(time.Duration(duration) * time.Minute)

		// Записи целевого дня с блокировкой (FOR UPDATE)
		day := req.NewStartTime
		filter := domain.AppointmentsFilter{
			UserID:    req.UserID,
			StartDate: &day,
			EndDate:   &day,
		}

		existing, err := uc.appointmentRepo.ListByFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		opts := schedule.PlacementOptions{
			// Ручная запись сохраняет обход рабочих часов при переносе
			IgnoreWorkingHours: appointment.IsManual || req.IgnoreWorkingHours,
			ExcludeID:          appointment.ID,
		}

		verdict := evaluator.CanPlace(req.NewStartTime, duration, deref(existing), opts)
		if !verdict.OK {
			return verdictError(verdict)
		}

		appointment.StartTime = req.NewStartTime
		appointment.EndTime = newEnd

		if err := uc.appointmentRepo.Update(txCtx, appointment); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = appointment
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Перенос на другой день затрагивает кеш обеих дат
	uc.invalidateDays(ctx, req.UserID, oldStart, req.NewStartTime)

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d to %s",
		result.ID, result.StartTime.Format(time.RFC3339))
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

func (uc *UseCase) invalidateDays(ctx context.Context, userID int64, dates ...time.Time) {
	if uc.scheduleCache == nil {
		return
	}
	if err := uc.scheduleCache.InvalidateDays(ctx, userID, dates...); err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to invalidate schedule cache for user=%d: %v", userID, err)
	}
}

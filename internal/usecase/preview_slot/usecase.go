package preview_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/internal/schedule"
)

// UseCase use case предпросмотра слота при перетаскивании
// Ничего не изменяет: возвращает цель привязки и вердикт доступности
type UseCase struct {
	appointmentRepo AppointmentRepository
	workingHours    WorkingHoursProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	workingHours WorkingHoursProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		workingHours:    workingHours,
		logger:          logger,
	}
}

// Execute выполняет предпросмотр слота
// Позиция курсора притягивается к ближайшей четверти часа; цель привязки,
// дающая пересечение или выпадающая из рабочих часов, помечается недоступной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CellStart.IsZero() {
		return nil, fmt.Errorf("%w: cellStart is required", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	startTime, snapped := schedule.SnapTime(req.CellStart, req.RawQuarter)
	if !snapped {
		// Курсор слишком далёк от границы четверти - индикатор не показывается
		return &Response{Snapped: false}, nil
	}

	rules, err := uc.workingHours.GetRules(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("PreviewSlot: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	evaluator := schedule.NewEvaluator(schedule.NewWorkingHoursPolicy(rules))

	day := startTime
	filter := domain.AppointmentsFilter{
		UserID:    req.UserID,
		StartDate: &day,
		EndDate:   &day,
	}

	existing, err := uc.appointmentRepo.ListByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("PreviewSlot: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	opts := schedule.PlacementOptions{
		IgnoreWorkingHours: req.IgnoreWorkingHours,
		ExcludeID:          req.ExcludeID,
	}

	verdict := evaluator.CanPlace(startTime, req.DurationMinutes, deref(existing), opts)

	endTime := startTime.Add(time.Duration(req.DurationMinutes) * time.Minute)
	resp := &Response{
		Snapped:   true,
		StartTime: &startTime,
		EndTime:   &endTime,
		Available: verdict.OK,
		Reason:    string(verdict.Reason),
	}
	if len(verdict.Conflicts) > 0 {
		resp.Conflicts = toConflicts(verdict.Conflicts)
	}

	return resp, nil
}

func deref(appointments []*domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, *a)
	}
	return out
}

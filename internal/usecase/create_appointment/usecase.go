package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	catalogRepo "github.com/apptbook/appointment-service/internal/infra/storage/catalog"
	"github.com/apptbook/appointment-service/internal/schedule"
)

// UseCase use case для создания записи
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

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, customer=%q, start=%s, services=%v, manual=%v",
		req.UserID, req.CustomerName, req.StartTime.Format(time.RFC3339), req.ServiceIDs, req.IsManual)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем выбранные услуги
	services, err := uc.catalogRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: some services not found: %v", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	if err := validateServices(services, req.UserID); err != nil {
		uc.logger.Warn("CreateAppointment: service validation failed: %v", err)
		return nil, err
	}

	// 3. Длительность записи - сумма длительностей услуг
	durationMinutes := domain.TotalDurationMinutes(services)
	endTime := req.StartTime.Add(time.Duration(durationMinutes) * time.Minute)

	// 4. Получаем правила рабочих часов аккаунта
	rules, err := uc.workingHours.GetRules(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	evaluator := schedule.NewEvaluator(schedule.NewWorkingHoursPolicy(rules))

	opts := schedule.PlacementOptions{
		// Ручная запись обходит и рабочие часы, и занятость слота
		IgnoreWorkingHours: req.IsManual || req.IgnoreWorkingHours,
		IgnoreConflicts:    req.IsManual,
	}

	var result *domain.Appointment

	// 5. Выполняем проверку доступности и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Записи этого дня с блокировкой (FOR UPDATE)
		day := req.StartTime
		filter := domain.AppointmentsFilter{
			UserID:    req.UserID,
			StartDate: &day,
			EndDate:   &day,
		}

		existing, err := uc.appointmentRepo.ListByFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 5.2. Проверяем, что слот можно занять
		verdict := evaluator.CanPlace(req.StartTime, durationMinutes, deref(existing), opts)
		if !verdict.OK {
			return verdictError(verdict)
		}

		// 5.3. Создаем запись вместе со связями на услуги
		appointment := &domain.Appointment{
			UserID:        req.UserID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			Status:        domain.StatusConfirmed,
			IsManual:      req.IsManual,
			Notes:         req.Notes,
			Services:      serviceLinks(services),
		}

		result, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 6. Сбрасываем кеш расписания затронутого дня
	uc.invalidateDay(ctx, req.UserID, req.StartTime)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d for user=%d", result.ID, req.UserID)
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

// serviceLinks строит связи записи с услугами, денормализуя их данные
func serviceLinks(services []*domain.Service) []domain.AppointmentService {
	links := make([]domain.AppointmentService, 0, len(services))
	for _, svc := range services {
		links = append(links, domain.AppointmentService{
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

func (uc *UseCase) invalidateDay(ctx context.Context, userID int64, date time.Time) {
	if uc.scheduleCache == nil {
		return
	}
	if err := uc.scheduleCache.InvalidateDay(ctx, userID, date); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate schedule cache for user=%d: %v", userID, err)
	}
}

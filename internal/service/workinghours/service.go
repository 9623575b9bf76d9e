package workinghours

import (
	"context"
	"errors"
	"fmt"

	"github.com/apptbook/appointment-service/internal/domain"
	workingHoursRepo "github.com/apptbook/appointment-service/internal/infra/storage/workinghours"
	"github.com/apptbook/appointment-service/internal/service/workinghours/models"
)

// Service сервис для работы с рабочими часами аккаунта
type Service struct {
	workingHoursRepo WorkingHoursRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(
	workingHoursRepo WorkingHoursRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo: workingHoursRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Get возвращает рабочие часы аккаунта
// Если аккаунт ещё не настраивал расписание, создаётся и возвращается неделя по умолчанию
func (s *Service) Get(ctx context.Context, userID int64) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Get: fetching working hours for user=%d", userID)

	rules, err := s.workingHoursRepo.GetByUserID(ctx, userID)
	if errors.Is(err, workingHoursRepo.ErrRulesNotFound) {
		s.logger.Info("Get: no working hours for user=%d, seeding defaults", userID)
		return s.seedDefaults(ctx, userID)
	}
	if err != nil {
		s.logger.Error("Get: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// GetRules возвращает правила рабочих часов аккаунта в domain виде
// Используется use case'ами размещения записей; отсутствующие настройки
// заменяются неделей по умолчанию без записи в БД
func (s *Service) GetRules(ctx context.Context, userID int64) ([]domain.WorkingHoursRule, error) {
	rules, err := s.workingHoursRepo.GetByUserID(ctx, userID)
	if errors.Is(err, workingHoursRepo.ErrRulesNotFound) {
		return domain.DefaultWorkingHours(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - repository error: %v", ErrInternal, err)
	}
	return rules, nil
}

// Put полностью заменяет рабочие часы аккаунта
// Запрос обязан содержать все семь дней недели, каждый ровно один раз
func (s *Service) Put(ctx context.Context, req *models.PutWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Put: replacing working hours for user=%d", req.UserID)

	rules := make([]domain.WorkingHoursRule, 0, len(req.Rules))
	for _, dayReq := range req.Rules {
		rules = append(rules, dayReq.ToDomainRule(req.UserID))
	}

	if err := validateRules(rules); err != nil {
		s.logger.Warn("Put: invalid working hours for user=%d: %v", req.UserID, err)
		return nil, err
	}

	var saved []domain.WorkingHoursRule
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.workingHoursRepo.ReplaceAll(ctx, req.UserID, rules)
		return err
	})

	if err != nil {
		s.logger.Error("Put: transaction error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Put - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Put: successfully replaced working hours for user=%d", req.UserID)
	return models.FromDomainRules(saved), nil
}

// seedDefaults создает рабочую неделю по умолчанию для нового аккаунта
func (s *Service) seedDefaults(ctx context.Context, userID int64) (*models.WorkingHoursResponse, error) {
	var saved []domain.WorkingHoursRule
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.workingHoursRepo.ReplaceAll(ctx, userID, domain.DefaultWorkingHours(userID))
		return err
	})

	if err != nil {
		s.logger.Error("seedDefaults: transaction error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: seedDefaults - transaction error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(saved), nil
}

// validateRules проверяет консистентность правил рабочих часов
// Требования:
// - все семь дней недели, каждый ровно один раз
// - для открытого дня: валидные времена и start < end
// - перерыв задаётся парой и целиком лежит внутри рабочего окна
func validateRules(rules []domain.WorkingHoursRule) error {
	if len(rules) != len(domain.AllWeekdays) {
		return fmt.Errorf("%w: expected %d day rules, got %d", ErrInvalidInput, len(domain.AllWeekdays), len(rules))
	}

	seen := make(map[domain.Weekday]bool, len(rules))
	for _, rule := range rules {
		if !rule.Day.Valid() {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidDay, rule.Day)
		}
		if seen[rule.Day] {
			return fmt.Errorf("%w: duplicate day %q", ErrInvalidDay, rule.Day)
		}
		seen[rule.Day] = true

		if !rule.IsOpen {
			continue
		}

		if err := rule.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s start time: %v", ErrInvalidTimeRange, rule.Day, err)
		}
		if err := rule.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s end time: %v", ErrInvalidTimeRange, rule.Day, err)
		}
		if !rule.StartTime.IsBefore(rule.EndTime) {
			return fmt.Errorf("%w: %s start must be before end", ErrInvalidTimeRange, rule.Day)
		}

		hasBreakStart := !rule.BreakStart.IsZero()
		hasBreakEnd := !rule.BreakEnd.IsZero()
		if hasBreakStart != hasBreakEnd {
			return fmt.Errorf("%w: %s break must define both start and end", ErrInvalidBreak, rule.Day)
		}
		if !hasBreakStart {
			continue
		}

		if err := rule.BreakStart.Validate(); err != nil {
			return fmt.Errorf("%w: %s break start: %v", ErrInvalidBreak, rule.Day, err)
		}
		if err := rule.BreakEnd.Validate(); err != nil {
			return fmt.Errorf("%w: %s break end: %v", ErrInvalidBreak, rule.Day, err)
		}
		if !rule.BreakStart.IsBefore(rule.BreakEnd) {
			return fmt.Errorf("%w: %s break start must be before break end", ErrInvalidBreak, rule.Day)
		}
		if rule.BreakStart.IsBefore(rule.StartTime) || rule.EndTime.IsBefore(rule.BreakEnd) {
			return fmt.Errorf("%w: %s", ErrInvalidBreak, rule.Day)
		}
	}

	return nil
}

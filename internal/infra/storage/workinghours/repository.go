package workinghours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/pkg/dbmetrics"
	"github.com/apptbook/appointment-service/pkg/psqlbuilder"
	"github.com/apptbook/appointment-service/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с рабочими часами аккаунта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает все правила рабочих часов аккаунта
// Возвращает ErrRulesNotFound, если настройки ещё не создавались
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"day_of_week",
		"is_open",
		"start_time",
		"end_time",
		"break_start",
		"break_end",
		"created_at",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.WorkingHoursRule, 0, len(domain.AllWeekdays))
	for rows.Next() {
		var rule domain.WorkingHoursRule
		var startTime, endTime, breakStart, breakEnd sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.UserID,
			&rule.Day,
			&rule.IsOpen,
			&startTime,
			&endTime,
			&breakStart,
			&breakEnd,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}

		rule.StartTime = timeString(startTime)
		rule.EndTime = timeString(endTime)
		rule.BreakStart = timeString(breakStart)
		rule.BreakEnd = timeString(breakEnd)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	if len(rules) == 0 {
		return nil, ErrRulesNotFound
	}

	return rules, nil
}

// ReplaceAll атомарно заменяет все правила рабочих часов аккаунта
// Вызывать внутри транзакции: старые правила удаляются и вставляются новые
func (r *Repository) ReplaceAll(ctx context.Context, userID int64, rules []domain.WorkingHoursRule) ([]domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceAll - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns(
			"user_id",
			"day_of_week",
			"is_open",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
		)

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(
			userID,
			rule.Day,
			rule.IsOpen,
			nullable(rule.StartTime),
			nullable(rule.EndTime),
			nullable(rule.BreakStart),
			nullable(rule.BreakEnd),
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceAll - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceAll - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByUserID(ctx, userID)
}

// timeString конвертирует nullable колонку времени в TimeString
func timeString(v sql.NullString) types.TimeString {
	if !v.Valid {
		return ""
	}

	ts := types.TimeString(v.String)
	// PostgreSQL отдаёт колонки TIME в формате HH:MM:SS
	if len(ts) > 5 {
		ts = ts[:5]
	}
	return ts
}

// nullable конвертирует пустую TimeString в NULL
func nullable(ts types.TimeString) interface{} {
	if ts.IsZero() {
		return nil
	}
	return string(ts)
}

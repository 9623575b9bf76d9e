package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/pkg/dbmetrics"
	"github.com/apptbook/appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись вместе со связями на услуги
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Иначе выполняет обычные запросы без транзакции.
//
// Когда использовать транзакцию:
// - При создании записи с проверкой пересечений (для предотвращения race condition)
// - При создании записи с одновременной привязкой услуг
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"customer_name",
			"customer_phone",
			"start_time",
			"end_time",
			"status",
			"is_manual",
			"notes",
		).
		Values(
			appointment.UserID,
			appointment.CustomerName,
			appointment.CustomerPhone,
			appointment.StartTime,
			appointment.EndTime,
			appointment.Status,
			appointment.IsManual,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	if err := r.insertServiceLinks(ctx, executor, appointment.ID, appointment.Services); err != nil {
		return nil, err
	}

	return appointment, nil
}

// GetByID получает запись по ID вместе с привязанными услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"customer_name",
		"customer_phone",
		"start_time",
		"end_time",
		"status",
		"is_manual",
		"notes",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.CustomerName,
		&appointment.CustomerPhone,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.IsManual,
		&appointment.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	if err := r.loadServiceLinks(ctx, executor, []*domain.Appointment{&appointment}); err != nil {
		return nil, err
	}

	return &appointment, nil
}

// ListByFilter получает записи аккаунта с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (StartDate, EndDate) - опционально, границы по дате начала записи
// - Статусу (Status) - опционально
// - Включению отменённых записей (IncludeInactive)
//
// Примеры использования:
//
// 1. Все активные записи аккаунта:
//    filter := domain.AppointmentsFilter{UserID: 42}
//
// 2. Записи на конкретную дату:
//    date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
//    filter := domain.AppointmentsFilter{UserID: 42, StartDate: &date, EndDate: &date}
//
// 3. Все записи включая отменённые:
//    filter := domain.AppointmentsFilter{UserID: 42, IncludeInactive: true}
func (r *Repository) ListByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"customer_name",
		"customer_phone",
		"start_time",
		"end_time",
		"status",
		"is_manual",
		"notes",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"user_id": filter.UserID})

	// Фильтрация по периоду (по дате начала записи)
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": dayStart(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": dayStart(*filter.EndDate).AddDate(0, 0, 1)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны отменённые - исключаем их
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	// Если используется транзакция, добавляем FOR UPDATE для блокировки
	// (только для конкретной даты - для usecase размещения записи)
	if dbmetrics.IsInTransaction(ctx) && filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServiceLinks(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// Update обновляет изменяемые поля записи
// Услуги обновляются отдельно через ReplaceServiceLinks
func (r *Repository) Update(ctx context.Context, appointment *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("customer_name", appointment.CustomerName).
		Set("customer_phone", appointment.CustomerPhone).
		Set("start_time", appointment.StartTime).
		Set("end_time", appointment.EndTime).
		Set("status", appointment.Status).
		Set("is_manual", appointment.IsManual).
		Set("notes", appointment.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appointment.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись (связи на услуги удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// ReplaceServiceLinks заменяет набор услуг записи на новый
// Используется при редактировании записи; вызывать внутри транзакции
func (r *Repository) ReplaceServiceLinks(ctx context.Context, appointmentID int64, services []domain.AppointmentService) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertServiceLinks(ctx, executor, appointmentID, services)
}

// GetServiceLink получает связь записи с услугой по её ID
func (r *Repository) GetServiceLink(ctx context.Context, linkID int64) (*domain.AppointmentService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"service_id",
		"service_name",
		"duration_minutes",
		"price",
		"color",
	).
		From("appointment_services").
		Where(squirrel.Eq{"id": linkID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceLink - build select query: %v", ErrBuildQuery, err)
	}

	var link domain.AppointmentService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&link.ID,
		&link.AppointmentID,
		&link.ServiceID,
		&link.ServiceName,
		&link.DurationMinutes,
		&link.Price,
		&link.Color,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceLink - scan link: %v", ErrScanRow, err)
	}

	return &link, nil
}

// DeleteServiceLink удаляет одну связь записи с услугой
// Возвращает количество оставшихся связей, чтобы вызывающая сторона
// могла удалить запись, потерявшую последнюю услугу
func (r *Repository) DeleteServiceLink(ctx context.Context, linkID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"id": linkID}).
		Suffix("RETURNING appointment_id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteServiceLink - build delete query: %v", ErrBuildQuery, err)
	}

	var appointmentID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appointmentID)
	if err == sql.ErrNoRows {
		return 0, ErrServiceLinkNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteServiceLink - execute delete: %v", ErrExecQuery, err)
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteServiceLink - build count query: %v", ErrBuildQuery, err)
	}

	var remaining int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&remaining); err != nil {
		return 0, fmt.Errorf("%w: DeleteServiceLink - scan count: %v", ErrScanRow, err)
	}

	return remaining, nil
}

// RecentCustomers возвращает последних клиентов аккаунта для автодополнения формы
// Клиенты дедуплицируются по паре имя+телефон, сортировка - от недавних к старым
func (r *Repository) RecentCustomers(ctx context.Context, userID int64, limit uint64) ([]domain.RecentCustomer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"customer_name",
		"customer_phone",
		"MAX(start_time) AS last_visit",
	).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		GroupBy("customer_name", "customer_phone").
		OrderBy("last_visit DESC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RecentCustomers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RecentCustomers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]domain.RecentCustomer, 0)
	for rows.Next() {
		var customer domain.RecentCustomer
		var lastVisit time.Time
		if err := rows.Scan(&customer.Name, &customer.Phone, &lastVisit); err != nil {
			return nil, fmt.Errorf("%w: RecentCustomers - scan row: %v", ErrScanRow, err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RecentCustomers - rows error: %v", ErrScanRow, err)
	}

	return customers, nil
}

// AppointmentDates возвращает даты периода, на которые есть активные записи
// Используется для подсветки дней в мини-календаре
func (r *Repository) AppointmentDates(ctx context.Context, userID int64, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT DATE(start_time) AS day").
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.GtOrEq{"start_time": dayStart(from)}).
		Where(squirrel.Lt{"start_time": dayStart(to).AddDate(0, 0, 1)}).
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AppointmentDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AppointmentDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: AppointmentDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AppointmentDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// insertServiceLinks вставляет связи записи с услугами
func (r *Repository) insertServiceLinks(ctx context.Context, executor DBExecutor, appointmentID int64, services []domain.AppointmentService) error {
	if len(services) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns(
			"appointment_id",
			"service_id",
			"service_name",
			"duration_minutes",
			"price",
			"color",
		)

	for _, svc := range services {
		insertBuilder = insertBuilder.Values(
			appointmentID,
			svc.ServiceID,
			svc.ServiceName,
			svc.DurationMinutes,
			svc.Price,
			svc.Color,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServiceLinks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServiceLinks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadServiceLinks загружает связи на услуги для набора записей
func (r *Repository) loadServiceLinks(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for _, a := range appointments {
		ids = append(ids, a.ID)
		byID[a.ID] = a
		a.Services = make([]domain.AppointmentService, 0)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"service_id",
		"service_name",
		"duration_minutes",
		"price",
		"color",
	).
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServiceLinks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServiceLinks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var link domain.AppointmentService
		if err := rows.Scan(
			&link.ID,
			&link.AppointmentID,
			&link.ServiceID,
			&link.ServiceName,
			&link.DurationMinutes,
			&link.Price,
			&link.Color,
		); err != nil {
			return fmt.Errorf("%w: loadServiceLinks - scan row: %v", ErrScanRow, err)
		}

		if appointment, ok := byID[link.AppointmentID]; ok {
			appointment.Services = append(appointment.Services, link)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServiceLinks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.UserID,
			&appointment.CustomerName,
			&appointment.CustomerPhone,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.Status,
			&appointment.IsManual,
			&appointment.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// dayStart нормализует дату к началу календарного дня
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Package calendar хранит справочные данные календаря мастерской:
// временные слоты, переопределения рабочих дней и выходные
package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/BikeRepair-BookingService/pkg/pgerrors"
	"github.com/m04kA/BikeRepair-BookingService/pkg/psqlbuilder"
)

const (
	tableTimeSlots    = "time_slots"
	tableBusinessDays = "business_days"
	tableHolidays     = "holidays"
)

// Repository репозиторий календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListTimeSlots возвращает временные слоты по времени начала
func (r *Repository) ListTimeSlots(ctx context.Context) ([]*domain.SlotDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"to_char(start_time, 'HH24:MI')",
		"to_char(end_time, 'HH24:MI')",
		"capacity",
	).
		From(tableTimeSlots).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.SlotDefinition, 0)
	for rows.Next() {
		var s domain.SlotDefinition
		if err := rows.Scan(&s.ID, &s.StartTime, &s.EndTime, &s.Capacity); err != nil {
			return nil, fmt.Errorf("%w: ListTimeSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CreateTimeSlot создает временной слот
func (r *Repository) CreateTimeSlot(ctx context.Context, slot *domain.SlotDefinition) (*domain.SlotDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableTimeSlots).
		Columns("start_time", "end_time", "capacity").
		Values(slot.StartTime, slot.EndTime, slot.Capacity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeSlot - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeSlot - execute insert: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// ListBusinessDays возвращает переопределения рабочих дней в диапазоне дат (включительно)
func (r *Repository) ListBusinessDays(ctx context.Context, from, to time.Time) ([]*domain.BusinessDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "is_open").
		From(tableBusinessDays).
		Where(squirrel.GtOrEq{"date": dateArg(from)}).
		Where(squirrel.LtOrEq{"date": dateArg(to)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.BusinessDay, 0)
	for rows.Next() {
		var d domain.BusinessDay
		if err := rows.Scan(&d.ID, &d.Date, &d.IsOpen); err != nil {
			return nil, fmt.Errorf("%w: ListBusinessDays - scan row: %v", ErrScanRow, err)
		}
		d.Date = domain.DateOf(d.Date)
		days = append(days, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusinessDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// UpsertBusinessDay создает или обновляет переопределение для даты
func (r *Repository) UpsertBusinessDay(ctx context.Context, day *domain.BusinessDay) (*domain.BusinessDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBusinessDays).
		Columns("date", "is_open").
		Values(dateArg(day.Date), day.IsOpen).
		Suffix("ON CONFLICT (date) DO UPDATE SET is_open = EXCLUDED.is_open RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertBusinessDay - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertBusinessDay - execute upsert: %v", ErrExecQuery, err)
	}
	day.Date = domain.DateOf(day.Date)

	return day, nil
}

// ListHolidays возвращает все выходные (постоянные и разовые)
func (r *Repository) ListHolidays(ctx context.Context) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "name", "is_permanent", "day_of_week").
		From(tableHolidays).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListHolidays - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// GetHoliday получает выходной по ID
func (r *Repository) GetHoliday(ctx context.Context, id int64) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "name", "is_permanent", "day_of_week").
		From(tableHolidays).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHoliday - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHoliday - scan row: %v", ErrScanRow, err)
	}

	return h, nil
}

// CreateHoliday создает выходной
func (r *Repository) CreateHoliday(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableHolidays).
		Columns("date", "name", "is_permanent", "day_of_week").
		Values(dateArg(h.Date), h.Name, h.IsPermanent, h.DayOfWeek).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - execute insert: %v", ErrExecQuery, err)
	}
	h.Date = domain.DateOf(h.Date)

	return h, nil
}

// UpdateHoliday сохраняет выходной
func (r *Repository) UpdateHoliday(ctx context.Context, h *domain.Holiday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableHolidays).
		Set("date", dateArg(h.Date)).
		Set("name", h.Name).
		Set("is_permanent", h.IsPermanent).
		Set("day_of_week", h.DayOfWeek).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateHoliday - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateHoliday - execute update: %v", ErrExecQuery, err)
	}

	return requireAffected("UpdateHoliday", result, ErrHolidayNotFound)
}

// DeleteHoliday удаляет выходной
func (r *Repository) DeleteHoliday(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableHolidays).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteHoliday - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteHoliday - execute delete: %v", ErrExecQuery, err)
	}

	return requireAffected("DeleteHoliday", result, ErrHolidayNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHoliday(row rowScanner) (*domain.Holiday, error) {
	var (
		h         domain.Holiday
		dayOfWeek sql.NullInt16
	)
	if err := row.Scan(&h.ID, &h.Date, &h.Name, &h.IsPermanent, &dayOfWeek); err != nil {
		return nil, err
	}
	h.Date = domain.DateOf(h.Date)
	if dayOfWeek.Valid {
		dow := int(dayOfWeek.Int16)
		h.DayOfWeek = &dow
	}
	return &h, nil
}

func requireAffected(op string, result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

func dateArg(t time.Time) string {
	return domain.DateOf(t).Format(domain.DateFormat)
}

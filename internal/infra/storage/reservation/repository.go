package reservation

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
	tableReservations = "reservations"

	// uniqueConfirmedSlot частичный уникальный индекс (date, time_slot) WHERE status = 'confirmed'
	uniqueConfirmedSlot = "uq_reservations_confirmed_slot"
)

// selectColumns колонки бронирования вместе с данными меню (LEFT JOIN)
var selectColumns = []string{
	"r.id",
	"r.user_id",
	"r.name",
	"r.date",
	"r.time_slot",
	"r.visit_reason",
	"r.service_menu_id",
	"r.status",
	"r.note",
	"r.admin_memo",
	"r.created_at",
	"r.updated_at",
	"sm.name",
	"sm.price_estimate",
	"sm.price_display",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если слот уже занят подтвержденным бронированием, БД отклоняет вставку
// по уникальному индексу и возвращается ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"user_id",
			"name",
			"date",
			"time_slot",
			"visit_reason",
			"service_menu_id",
			"status",
			"note",
			"admin_memo",
		).
		Values(
			res.UserID,
			res.Name,
			dateArg(res.Date),
			res.TimeSlot,
			res.VisitReason,
			res.ServiceMenuID,
			res.Status,
			res.Note,
			res.AdminMemo,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, classifyWriteError("Create", err)
	}

	return res, nil
}

// GetByID получает бронирование по ID вместе с названием и ценой меню
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := baseSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования по фильтру.
// По умолчанию сортировка date DESC, time_slot ASC (AM раньше PM), без ограничения количества.
//
// Примеры:
//
//	// Все бронирования пользователя
//	domain.ReservationFilter{UserID: &userID}
//
//	// Подтвержденные на период
//	domain.ReservationFilter{Status: &confirmed, DateFrom: &from, DateTo: &to}
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(baseSelect(), filter)

	if filter.OrderAsc {
		selectBuilder = selectBuilder.OrderBy("r.date ASC", "r.time_slot ASC", "r.id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("r.date DESC", "r.time_slot ASC", "r.id ASC")
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ExistsConfirmed проверяет, занят ли слот подтвержденным бронированием.
// excludeID исключает само редактируемое бронирование.
// Внутри транзакции найденная строка блокируется (FOR UPDATE).
func (r *Repository) ExistsConfirmed(ctx context.Context, slot domain.Slot, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From(tableReservations).
		Where(squirrel.Eq{
			"date":      dateArg(slot.Date),
			"time_slot": slot.TimeSlot,
			"status":    domain.StatusConfirmed,
		}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsConfirmed - scan id: %w", ErrScanRow, err)
	}

	return true, nil
}

// GetBookedSlots возвращает слоты, занятые подтвержденными бронированиями начиная с даты from
func (r *Repository) GetBookedSlots(ctx context.Context, from time.Time) ([]domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "time_slot").
		From(tableReservations).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"date": dateArg(from)}).
		OrderBy("date ASC", "time_slot ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(&slot.Date, &slot.TimeSlot); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlots - scan slot: %v", ErrScanRow, err)
		}
		slot.Date = domain.DateOf(slot.Date)
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CountByStatus считает бронирования по статусам начиная с даты from
func (r *Repository) CountByStatus(ctx context.Context, from time.Time) ([]domain.StatusCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From(tableReservations).
		Where(squirrel.GtOrEq{"date": dateArg(from)}).
		GroupBy("status").
		OrderBy("status ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Update сохраняет редактируемые поля бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("name", res.Name).
		Set("date", dateArg(res.Date)).
		Set("time_slot", res.TimeSlot).
		Set("visit_reason", res.VisitReason).
		Set("service_menu_id", res.ServiceMenuID).
		Set("status", res.Status).
		Set("note", res.Note).
		Set("admin_memo", res.AdminMemo).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("Update", err)
	}

	return requireAffected("Update", result)
}

// TransitionStatus переводит бронирование из статуса from в статус to.
// Если бронирование уже в другом статусе (или удалено), возвращает ErrStatusChanged.
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("TransitionStatus", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// DetachServiceMenu обнуляет ссылку на меню у всех бронирований (перед удалением меню)
func (r *Repository) DetachServiceMenu(ctx context.Context, menuID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("service_menu_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"service_menu_id": menuID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DetachServiceMenu - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DetachServiceMenu - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет бронирование.
// Связанные bike_infos / bike_images / work_histories должны быть удалены до вызова
// в той же транзакции (см. сервис бронирований).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableReservations).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return requireAffected("Delete", result)
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(selectColumns...).
		From(tableReservations + " r").
		LeftJoin("service_menus sm ON sm.id = r.service_menu_id")
}

func applyFilter(b squirrel.SelectBuilder, filter domain.ReservationFilter) squirrel.SelectBuilder {
	if filter.UserID != nil {
		b = b.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		b = b.Where(squirrel.Eq{"r.status": statuses})
	}
	if filter.DateFrom != nil {
		b = b.Where(squirrel.GtOrEq{"r.date": dateArg(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		b = b.Where(squirrel.LtOrEq{"r.date": dateArg(*filter.DateTo)})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res         domain.Reservation
		menuName    sql.NullString
		menuPrice   sql.NullInt64
		menuDisplay sql.NullString
	)

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Name,
		&res.Date,
		&res.TimeSlot,
		&res.VisitReason,
		&res.ServiceMenuID,
		&res.Status,
		&res.Note,
		&res.AdminMemo,
		&res.CreatedAt,
		&res.UpdatedAt,
		&menuName,
		&menuPrice,
		&menuDisplay,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.DateOf(res.Date)
	if res.ServiceMenuID != nil && menuName.Valid {
		res.ServiceMenu = &domain.ServiceMenuRef{
			ID:            *res.ServiceMenuID,
			Name:          menuName.String,
			PriceEstimate: menuPrice.Int64,
			PriceDisplay:  menuDisplay.String,
		}
	}

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// classifyWriteError переводит ошибки postgres в ошибки репозитория.
// Ошибка сериализации пробрасывается обернутой через %w, чтобы вызывающий код мог её распознать.
func classifyWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err) && pgerrors.Constraint(err) == uniqueConfirmedSlot:
		return fmt.Errorf("%w: %s", ErrSlotTaken, op)
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s - %v", ErrServiceMenuNotFound, op, err)
	default:
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
}

func requireAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// dateArg передает дату строкой YYYY-MM-DD, чтобы часовой пояс сессии не сдвигал день
func dateArg(t time.Time) string {
	return domain.DateOf(t).Format(domain.DateFormat)
}

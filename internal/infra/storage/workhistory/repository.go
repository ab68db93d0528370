package workhistory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/BikeRepair-BookingService/pkg/psqlbuilder"
)

const tableWorkHistories = "work_histories"

// Repository репозиторий истории работ (одна запись на бронирование)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByReservationID получает историю работ бронирования.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы частичные обновления не перетирали друг друга.
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.WorkHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"reservation_id",
		"estimated_amount",
		"actual_amount",
		"status",
		"completion_photo_path",
		"admin_comment",
		"created_at",
		"updated_at",
	).
		From(tableWorkHistories).
		Where(squirrel.Eq{"reservation_id": reservationID})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkHistory
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.ReservationID,
		&wh.EstimatedAmount,
		&wh.ActualAmount,
		&wh.Status,
		&wh.CompletionPhotoPath,
		&wh.AdminComment,
		&wh.CreatedAt,
		&wh.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkHistoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - scan row: %v", ErrScanRow, err)
	}

	return &wh, nil
}

// Create создает историю работ; при гонке возвращает существующую запись без изменений
func (r *Repository) Create(ctx context.Context, wh *domain.WorkHistory) (*domain.WorkHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableWorkHistories).
		Columns(
			"reservation_id",
			"estimated_amount",
			"actual_amount",
			"status",
			"completion_photo_path",
			"admin_comment",
		).
		Values(
			wh.ReservationID,
			wh.EstimatedAmount,
			wh.ActualAmount,
			wh.Status,
			wh.CompletionPhotoPath,
			wh.AdminComment,
		).
		Suffix("ON CONFLICT (reservation_id) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&wh.ID, &wh.CreatedAt, &wh.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Запись уже создана параллельным запросом
		return r.GetByReservationID(ctx, wh.ReservationID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return wh, nil
}

// Update сохраняет историю работ
func (r *Repository) Update(ctx context.Context, wh *domain.WorkHistory) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableWorkHistories).
		Set("estimated_amount", wh.EstimatedAmount).
		Set("actual_amount", wh.ActualAmount).
		Set("status", wh.Status).
		Set("completion_photo_path", wh.CompletionPhotoPath).
		Set("admin_comment", wh.AdminComment).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": wh.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&wh.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrWorkHistoryNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteByReservationID удаляет историю работ бронирования (если есть)
func (r *Repository) DeleteByReservationID(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableWorkHistories).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

package servicemenu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/BikeRepair-BookingService/pkg/pgerrors"
	"github.com/m04kA/BikeRepair-BookingService/pkg/psqlbuilder"
)

const tableServiceMenus = "service_menus"

var selectColumns = []string{
	"id",
	"name",
	"description",
	"estimated_duration",
	"price_estimate",
	"price_display",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий меню услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает меню, отсортированные по названию
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.ServiceMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableServiceMenus).
		OrderBy("name ASC")
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
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

	menus := make([]*domain.ServiceMenu, 0)
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return menus, nil
}

// GetByID получает меню по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableServiceMenus).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	menu, err := scanMenu(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return menu, nil
}

// Create создает пункт меню
func (r *Repository) Create(ctx context.Context, menu *domain.ServiceMenu) (*domain.ServiceMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableServiceMenus).
		Columns("name", "description", "estimated_duration", "price_estimate", "price_display", "is_active").
		Values(menu.Name, menu.Description, menu.EstimatedDuration, menu.PriceEstimate, menu.PriceDisplay, menu.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&menu.ID, &menu.CreatedAt, &menu.UpdatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return menu, nil
}

// Update сохраняет пункт меню
func (r *Repository) Update(ctx context.Context, menu *domain.ServiceMenu) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableServiceMenus).
		Set("name", menu.Name).
		Set("description", menu.Description).
		Set("estimated_duration", menu.EstimatedDuration).
		Set("price_estimate", menu.PriceEstimate).
		Set("price_display", menu.PriceDisplay).
		Set("is_active", menu.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": menu.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return requireAffected("Update", result)
}

// Delete удаляет пункт меню
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableServiceMenus).
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenu(row rowScanner) (*domain.ServiceMenu, error) {
	var menu domain.ServiceMenu
	err := row.Scan(
		&menu.ID,
		&menu.Name,
		&menu.Description,
		&menu.EstimatedDuration,
		&menu.PriceEstimate,
		&menu.PriceDisplay,
		&menu.IsActive,
		&menu.CreatedAt,
		&menu.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func requireAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrServiceMenuNotFound
	}
	return nil
}

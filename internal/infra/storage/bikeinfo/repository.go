package bikeinfo

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

const (
	tableBikeInfos  = "bike_infos"
	tableBikeImages = "bike_images"
)

// Repository репозиторий информации о велосипеде и его фотографий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает BikeInfo для бронирования (одна запись на бронирование)
func (r *Repository) Create(ctx context.Context, info *domain.BikeInfo) (*domain.BikeInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBikeInfos).
		Columns("reservation_id", "manufacturer", "model_name", "details", "has_parts_brought_in").
		Values(info.ReservationID, info.Manufacturer, info.ModelName, info.Details, info.HasPartsBroughtIn).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&info.ID)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return info, nil
}

// AddImage прикрепляет фотографию к BikeInfo
func (r *Repository) AddImage(ctx context.Context, image *domain.BikeImage) (*domain.BikeImage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBikeImages).
		Columns("bike_info_id", "image_path").
		Values(image.BikeInfoID, image.ImagePath).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddImage - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&image.ID, &image.UploadedAt); err != nil {
		return nil, fmt.Errorf("%w: AddImage - execute insert: %w", ErrExecQuery, err)
	}

	return image, nil
}

// GetByReservationID получает BikeInfo вместе с фотографиями (по времени загрузки)
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.BikeInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"manufacturer",
		"model_name",
		"details",
		"has_parts_brought_in",
	).
		From(tableBikeInfos).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - build select query: %v", ErrBuildQuery, err)
	}

	var info domain.BikeInfo
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&info.ID,
		&info.ReservationID,
		&info.Manufacturer,
		&info.ModelName,
		&info.Details,
		&info.HasPartsBroughtIn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBikeInfoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - scan bike info: %v", ErrScanRow, err)
	}

	images, err := r.listImages(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	info.Images = images

	return &info, nil
}

// ListImagePaths возвращает пути всех фотографий бронирования (для удаления файлов)
func (r *Repository) ListImagePaths(ctx context.Context, reservationID int64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bi.image_path").
		From(tableBikeImages + " bi").
		Join(tableBikeInfos + " b ON b.id = bi.bike_info_id").
		Where(squirrel.Eq{"b.reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListImagePaths - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListImagePaths - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("%w: ListImagePaths - scan row: %v", ErrScanRow, err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListImagePaths - rows error: %v", ErrScanRow, err)
	}

	return paths, nil
}

// DeleteByReservationID удаляет BikeInfo и его фотографии
func (r *Repository) DeleteByReservationID(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	imagesQuery, imagesArgs, err := psqlbuilder.Delete(tableBikeImages).
		Where(squirrel.Expr("bike_info_id IN (SELECT id FROM bike_infos WHERE reservation_id = ?)", reservationID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - build images delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, imagesQuery, imagesArgs...); err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - delete images: %v", ErrExecQuery, err)
	}

	infoQuery, infoArgs, err := psqlbuilder.Delete(tableBikeInfos).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - build info delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, infoQuery, infoArgs...); err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - delete info: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) listImages(ctx context.Context, bikeInfoID int64) ([]domain.BikeImage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "bike_info_id", "image_path", "uploaded_at").
		From(tableBikeImages).
		Where(squirrel.Eq{"bike_info_id": bikeInfoID}).
		OrderBy("uploaded_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listImages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listImages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	images := make([]domain.BikeImage, 0)
	for rows.Next() {
		var img domain.BikeImage
		if err := rows.Scan(&img.ID, &img.BikeInfoID, &img.ImagePath, &img.UploadedAt); err != nil {
			return nil, fmt.Errorf("%w: listImages - scan row: %v", ErrScanRow, err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listImages - rows error: %v", ErrScanRow, err)
	}

	return images, nil
}

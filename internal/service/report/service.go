// Package report выгружает списки бронирований в XLSX
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

const (
	// SheetName имя листа с бронированиями
	SheetName = "Reservations"

	// ContentType MIME тип выгрузки
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []interface{}{
	"ID", "Date", "Time slot", "Name", "Visit reason", "Service menu",
	"Price estimate", "Status", "Note", "Admin memo", "Created at",
}

// Service выгрузка бронирований
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса выгрузки
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Export пишет в w книгу с бронированиями, отобранными фильтром (порядок как в списке сотрудников)
func (s *Service) Export(ctx context.Context, filter domain.ReservationFilter, w io.Writer) (int, error) {
	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Export: failed to list reservations: %v", err)
		return 0, fmt.Errorf("%w: Export - list reservations: %v", ErrInternal, err)
	}

	f, err := build(reservations)
	if err != nil {
		s.logger.Error("Export: %v", err)
		return 0, err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		s.logger.Error("Export: failed to write workbook: %v", err)
		return 0, fmt.Errorf("%w: write: %v", ErrRender, err)
	}

	s.logger.Info("Export: exported %d reservations", len(reservations))
	return len(reservations), nil
}

// build формирует книгу: заголовок в первой строке, далее по строке на бронирование
func build(reservations []*domain.Reservation) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: rename sheet: %v", ErrRender, err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: header: %v", ErrRender, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(SheetName, "A1", lastHeader, bold)
	}

	for i, res := range reservations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: cell name: %v", ErrRender, err)
		}

		row := toRow(res)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: row %d: %v", ErrRender, i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "D", "F", 20)
	_ = f.SetColWidth(SheetName, "I", "J", 40)

	return f, nil
}

func toRow(res *domain.Reservation) []interface{} {
	var price interface{} = ""
	if res.ServiceMenu != nil {
		price = res.ServiceMenu.PriceEstimate
	}

	return []interface{}{
		res.ID,
		res.Date.Format(domain.DateFormat),
		string(res.TimeSlot),
		res.Name,
		string(res.VisitReason),
		res.MenuName(),
		price,
		string(res.Status),
		res.Note,
		res.AdminMemo,
		res.CreatedAt.Format("2006-01-02 15:04"),
	}
}

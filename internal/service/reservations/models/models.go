package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// URLFunc переводит сохраненный путь файла в публичный адрес
type URLFunc func(path string) string

// Request модели

// ListReservationsRequest фильтр списка бронирований для сотрудников
type ListReservationsRequest struct {
	Status   string `json:"status,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"` // "2025-10-15"
	DateTo   string `json:"dateTo,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр (пустые поля не фильтруют)
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	var filter domain.ReservationFilter

	if status := strings.TrimSpace(r.Status); status != "" {
		s, err := ToDomainReservationStatus(status)
		if err != nil {
			return filter, err
		}
		filter.Status = &s
	}

	if r.DateFrom != "" {
		from, err := domain.ParseDate(r.DateFrom)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.DateFrom = &from
	}

	if r.DateTo != "" {
		to, err := domain.ParseDate(r.DateTo)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.DateTo = &to
	}

	return filter, nil
}

// UpdateReservationRequest редактирование бронирования сотрудником (полная замена полей)
type UpdateReservationRequest struct {
	Name          string `json:"name"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	VisitReason   string `json:"visitReason"`
	ServiceMenuID *int64 `json:"serviceMenuId"`
	Status        string `json:"status"`
	Note          string `json:"note"`
	AdminMemo     string `json:"adminMemo"`
}

// Response модели

// ServiceMenuRefResponse краткие данные меню в бронировании
type ServiceMenuRefResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PriceEstimate int64  `json:"priceEstimate"`
	PriceDisplay  string `json:"priceDisplay,omitempty"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64                   `json:"id"`
	UserID      *int64                  `json:"userId,omitempty"`
	Name        string                  `json:"name"`
	Date        string                  `json:"date"` // "2025-10-15"
	TimeSlot    string                  `json:"timeSlot"`
	VisitReason string                  `json:"visitReason"`
	ServiceMenu *ServiceMenuRefResponse `json:"serviceMenu,omitempty"`
	Status      string                  `json:"status"`
	Note        string                  `json:"note"`

	// Только для сотрудников
	AdminMemo *string `json:"adminMemo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BikeImageResponse фотография велосипеда
type BikeImageResponse struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// BikeInfoResponse данные о велосипеде
type BikeInfoResponse struct {
	ID                int64               `json:"id"`
	Manufacturer      string              `json:"manufacturer"`
	ModelName         string              `json:"modelName"`
	Details           string              `json:"details"`
	HasPartsBroughtIn bool                `json:"hasPartsBroughtIn"`
	Images            []BikeImageResponse `json:"images"`
}

// WorkHistoryResponse история работ
type WorkHistoryResponse struct {
	ID                 int64     `json:"id"`
	ReservationID      int64     `json:"reservationId"`
	EstimatedAmount    *int64    `json:"estimatedAmount"`
	ActualAmount       *int64    `json:"actualAmount"`
	Status             string    `json:"status"`
	CompletionPhotoURL string    `json:"completionPhotoUrl,omitempty"`
	AdminComment       string    `json:"adminComment"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ReservationDetailResponse бронирование с велосипедом (и историей работ для сотрудников)
type ReservationDetailResponse struct {
	Reservation ReservationResponse  `json:"reservation"`
	BikeInfo    *BikeInfoResponse    `json:"bikeInfo"`
	WorkHistory *WorkHistoryResponse `json:"workHistory,omitempty"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// MyReservationsResponse бронирования клиента
type MyReservationsResponse struct {
	Upcoming []ReservationResponse `json:"upcoming"`
	Past     []ReservationResponse `json:"past"`
}

// DashboardResponse сводка для сотрудников
type DashboardResponse struct {
	Date         string                `json:"date"`
	Today        []ReservationResponse `json:"today"`
	Upcoming     []ReservationResponse `json:"upcoming"`
	StatusCounts map[string]int        `json:"statusCounts"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO.
// staff=false скрывает служебную заметку.
func FromDomainReservation(r *domain.Reservation, staff bool) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Date:        r.Date.Format(domain.DateFormat),
		TimeSlot:    string(r.TimeSlot),
		VisitReason: string(r.VisitReason),
		Status:      string(r.Status),
		Note:        r.Note,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.ServiceMenu != nil {
		resp.ServiceMenu = &ServiceMenuRefResponse{
			ID:            r.ServiceMenu.ID,
			Name:          r.ServiceMenu.Name,
			PriceEstimate: r.ServiceMenu.PriceEstimate,
			PriceDisplay:  r.ServiceMenu.PriceDisplay,
		}
	}

	if staff {
		memo := r.AdminMemo
		resp.AdminMemo = &memo
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation, staff bool) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		if resp := FromDomainReservation(r, staff); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}

// FromDomainBikeInfo конвертирует данные о велосипеде
func FromDomainBikeInfo(b *domain.BikeInfo, url URLFunc) *BikeInfoResponse {
	if b == nil {
		return nil
	}

	resp := &BikeInfoResponse{
		ID:                b.ID,
		Manufacturer:      b.Manufacturer,
		ModelName:         b.ModelName,
		Details:           b.Details,
		HasPartsBroughtIn: b.HasPartsBroughtIn,
		Images:            make([]BikeImageResponse, 0, len(b.Images)),
	}

	for _, img := range b.Images {
		resp.Images = append(resp.Images, BikeImageResponse{
			ID:         img.ID,
			URL:        url(img.ImagePath),
			UploadedAt: img.UploadedAt,
		})
	}

	return resp
}

// FromDomainWorkHistory конвертирует историю работ
func FromDomainWorkHistory(w *domain.WorkHistory, url URLFunc) *WorkHistoryResponse {
	if w == nil {
		return nil
	}

	return &WorkHistoryResponse{
		ID:                 w.ID,
		ReservationID:      w.ReservationID,
		EstimatedAmount:    w.EstimatedAmount,
		ActualAmount:       w.ActualAmount,
		Status:             string(w.Status),
		CompletionPhotoURL: url(w.CompletionPhotoPath),
		AdminComment:       w.AdminComment,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(strings.TrimSpace(status))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

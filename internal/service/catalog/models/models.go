package models

import (
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// Request модели

// ServiceMenuRequest создание/редактирование пункта меню
type ServiceMenuRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	EstimatedDuration int    `json:"estimatedDuration"` // минуты
	PriceEstimate     int64  `json:"priceEstimate"`     // иены
	PriceDisplay      string `json:"priceDisplay"`
	IsActive          *bool  `json:"isActive,omitempty"` // по умолчанию true
}

// ToDomain конвертирует request в domain модель
func (r *ServiceMenuRequest) ToDomain() *domain.ServiceMenu {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.ServiceMenu{
		Name:              r.Name,
		Description:       r.Description,
		EstimatedDuration: r.EstimatedDuration,
		PriceEstimate:     r.PriceEstimate,
		PriceDisplay:      r.PriceDisplay,
		IsActive:          active,
	}
}

// HolidayRequest создание/редактирование выходного
type HolidayRequest struct {
	Date        string `json:"date"` // "2025-10-15"
	Name        string `json:"name"`
	IsPermanent bool   `json:"isPermanent"`
	DayOfWeek   *int   `json:"dayOfWeek,omitempty"` // 0 = понедельник ... 6 = воскресенье
}

// TimeSlotRequest создание временного слота
type TimeSlotRequest struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`
	Capacity  int    `json:"capacity"`
}

// BusinessDayRequest переопределение рабочего дня
type BusinessDayRequest struct {
	IsOpen bool `json:"isOpen"`
}

// Response модели

// ServiceMenuResponse пункт меню
type ServiceMenuResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	EstimatedDuration int       `json:"estimatedDuration"`
	PriceEstimate     int64     `json:"priceEstimate"`
	PriceDisplay      string    `json:"priceDisplay"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ServiceMenuListResponse список пунктов меню
type ServiceMenuListResponse struct {
	ServiceMenus []ServiceMenuResponse `json:"serviceMenus"`
}

// HolidayResponse выходной
type HolidayResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	IsPermanent bool   `json:"isPermanent"`
	DayOfWeek   *int   `json:"dayOfWeek,omitempty"`
}

// HolidayListResponse список выходных
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// TimeSlotResponse временной слот
type TimeSlotResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Capacity  int    `json:"capacity"`
}

// TimeSlotListResponse список временных слотов
type TimeSlotListResponse struct {
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}

// BusinessDayResponse переопределение рабочего дня
type BusinessDayResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	IsOpen bool   `json:"isOpen"`
}

// Методы конвертации

// FromDomainServiceMenu конвертирует пункт меню
func FromDomainServiceMenu(m *domain.ServiceMenu) *ServiceMenuResponse {
	if m == nil {
		return nil
	}
	return &ServiceMenuResponse{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		EstimatedDuration: m.EstimatedDuration,
		PriceEstimate:     m.PriceEstimate,
		PriceDisplay:      m.PriceDisplay,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomainServiceMenuList конвертирует список пунктов меню
func FromDomainServiceMenuList(list []*domain.ServiceMenu) *ServiceMenuListResponse {
	resp := &ServiceMenuListResponse{ServiceMenus: make([]ServiceMenuResponse, 0, len(list))}
	for _, m := range list {
		resp.ServiceMenus = append(resp.ServiceMenus, *FromDomainServiceMenu(m))
	}
	return resp
}

// FromDomainHoliday конвертирует выходной
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}
	return &HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format(domain.DateFormat),
		Name:        h.Name,
		IsPermanent: h.IsPermanent,
		DayOfWeek:   h.DayOfWeek,
	}
}

// FromDomainHolidayList конвертирует список выходных
func FromDomainHolidayList(list []*domain.Holiday) *HolidayListResponse {
	resp := &HolidayListResponse{Holidays: make([]HolidayResponse, 0, len(list))}
	for _, h := range list {
		resp.Holidays = append(resp.Holidays, *FromDomainHoliday(h))
	}
	return resp
}

// FromDomainTimeSlot конвертирует временной слот
func FromDomainTimeSlot(s *domain.SlotDefinition) *TimeSlotResponse {
	if s == nil {
		return nil
	}
	return &TimeSlotResponse{
		ID:        s.ID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Capacity:  s.Capacity,
	}
}

// FromDomainTimeSlotList конвертирует список временных слотов
func FromDomainTimeSlotList(list []*domain.SlotDefinition) *TimeSlotListResponse {
	resp := &TimeSlotListResponse{TimeSlots: make([]TimeSlotResponse, 0, len(list))}
	for _, s := range list {
		resp.TimeSlots = append(resp.TimeSlots, *FromDomainTimeSlot(s))
	}
	return resp
}

// FromDomainBusinessDay конвертирует переопределение рабочего дня
func FromDomainBusinessDay(d *domain.BusinessDay) *BusinessDayResponse {
	if d == nil {
		return nil
	}
	return &BusinessDayResponse{
		ID:     d.ID,
		Date:   d.Date.Format(domain.DateFormat),
		IsOpen: d.IsOpen,
	}
}

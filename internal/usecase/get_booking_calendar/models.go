package get_booking_calendar

import (
	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// Response данные для формы бронирования
type Response struct {
	// BookedSlots занятые слоты: дата (YYYY-MM-DD) -> [AM, PM]
	BookedSlots map[string][]domain.TimeSlot
	// ClosedDates нерабочие дни в горизонте бронирования (только для информации)
	ClosedDates []string
	// ServiceMenus активные меню
	ServiceMenus []*domain.ServiceMenu
}

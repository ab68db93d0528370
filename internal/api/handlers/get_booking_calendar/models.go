package get_booking_calendar

import (
	"sort"

	catalogModels "github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
	getBookingCalendar "github.com/m04kA/BikeRepair-BookingService/internal/usecase/get_booking_calendar"
)

// BookingCalendarResponse данные для формы бронирования
type BookingCalendarResponse struct {
	BookedSlots  map[string][]string                 `json:"bookedSlots"` // "2025-10-15": ["AM", "PM"]
	BookedDates  []string                            `json:"bookedDates"`
	ClosedDates  []string                            `json:"closedDates"`
	ServiceMenus []catalogModels.ServiceMenuResponse `json:"serviceMenus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingCalendar.Response) *BookingCalendarResponse {
	out := &BookingCalendarResponse{
		BookedSlots:  make(map[string][]string, len(resp.BookedSlots)),
		BookedDates:  make([]string, 0, len(resp.BookedSlots)),
		ClosedDates:  resp.ClosedDates,
		ServiceMenus: catalogModels.FromDomainServiceMenuList(resp.ServiceMenus).ServiceMenus,
	}

	for date, slots := range resp.BookedSlots {
		list := make([]string, len(slots))
		for i, s := range slots {
			list[i] = string(s)
		}
		out.BookedSlots[date] = list
		out.BookedDates = append(out.BookedDates, date)
	}
	sort.Strings(out.BookedDates)

	if out.ClosedDates == nil {
		out.ClosedDates = []string{}
	}

	return out
}

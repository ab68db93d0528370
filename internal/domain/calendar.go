package domain

import "time"

// SlotDefinition admin-configured bookable time window.
// Reference data only: capacity is not consulted by the reservation conflict check.
type SlotDefinition struct {
	ID        int64
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Capacity  int
}

// BusinessDay per-date override of whether the shop is open
type BusinessDay struct {
	ID     int64
	Date   time.Time
	IsOpen bool
}

// Holiday recurring (weekly) or one-off closure
type Holiday struct {
	ID          int64
	Date        time.Time
	Name        string
	IsPermanent bool
	DayOfWeek   *int // 0 = Monday ... 6 = Sunday
}

// MatchesDate returns true if the holiday closes the shop on the given date
func (h *Holiday) MatchesDate(date time.Time) bool {
	if h.IsPermanent && h.DayOfWeek != nil {
		return MondayBasedWeekday(date) == *h.DayOfWeek
	}
	return SameDay(h.Date, date)
}

// IsClosed resolves whether the shop is closed on a date.
// A BusinessDay override wins over holidays.
func IsClosed(date time.Time, businessDays []*BusinessDay, holidays []*Holiday) bool {
	for _, bd := range businessDays {
		if SameDay(bd.Date, date) {
			return !bd.IsOpen
		}
	}
	for _, h := range holidays {
		if h.MatchesDate(date) {
			return true
		}
	}
	return false
}

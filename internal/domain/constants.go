package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MinSlotCapacity           = 1
	MaxNameLength             = 100
	MaxNoteLength             = 2000
	MaxBikeImages             = 10
	UpcomingDashboardLimit    = 10
	DefaultBookingHorizonDays = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

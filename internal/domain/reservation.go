package domain

import "time"

// TimeSlot coarse time-of-day bucket of a reservation
type TimeSlot string

const (
	TimeSlotAM TimeSlot = "AM"
	TimeSlotPM TimeSlot = "PM"
)

// TimeSlots all bookable buckets in display order
var TimeSlots = []TimeSlot{TimeSlotAM, TimeSlotPM}

// IsValid returns true for AM/PM
func (s TimeSlot) IsValid() bool {
	return s == TimeSlotAM || s == TimeSlotPM
}

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusCompleted  ReservationStatus = "completed"
)

// ReservationStatuses all known reservation statuses
var ReservationStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusInProgress,
	StatusCancelled,
	StatusCompleted,
}

// IsValid returns true if the status is known
func (s ReservationStatus) IsValid() bool {
	for _, known := range ReservationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// VisitReason why the customer is coming in
type VisitReason string

const (
	VisitReasonRepair       VisitReason = "repair"
	VisitReasonMaintenance  VisitReason = "maintenance"
	VisitReasonFitting      VisitReason = "fitting"
	VisitReasonConsultation VisitReason = "consultation"
	VisitReasonOther        VisitReason = "other"
)

// VisitReasons all accepted visit reasons
var VisitReasons = []VisitReason{
	VisitReasonRepair,
	VisitReasonMaintenance,
	VisitReasonFitting,
	VisitReasonConsultation,
	VisitReasonOther,
}

// IsValid returns true if the reason is known
func (r VisitReason) IsValid() bool {
	for _, known := range VisitReasons {
		if r == known {
			return true
		}
	}
	return false
}

// RequiresNote returns true if a free-form note must accompany the reason
func (r VisitReason) RequiresNote() bool {
	return r == VisitReasonOther
}

// Reservation is the aggregate root: one booking of a (date, time slot) by a customer
type Reservation struct {
	ID            int64
	UserID        *int64 // NULL = created by staff on behalf of a walk-in customer
	Name          string
	Date          time.Time // date only, see DateOf
	TimeSlot      TimeSlot
	VisitReason   VisitReason
	ServiceMenuID *int64
	Status        ReservationStatus
	Note          string
	AdminMemo     string // только для сотрудников, клиенту не показывается

	// Joined from service_menus, nil when no menu is linked
	ServiceMenu *ServiceMenuRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceMenuRef denormalized menu data shown next to a reservation
type ServiceMenuRef struct {
	ID            int64
	Name          string
	PriceEstimate int64
	PriceDisplay  string
}

// Slot returns the (date, time slot) pair occupied by the reservation
func (r *Reservation) Slot() Slot {
	return Slot{Date: DateOf(r.Date), TimeSlot: r.TimeSlot}
}

// OccupiesSlot returns true if the reservation counts toward slot uniqueness
func (r *Reservation) OccupiesSlot() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the customer may cancel the reservation
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// IsOwnedBy returns true if the reservation belongs to the given user
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.UserID != nil && *r.UserID == userID
}

// MenuName returns the linked menu name or an empty string
func (r *Reservation) MenuName() string {
	if r.ServiceMenu == nil {
		return ""
	}
	return r.ServiceMenu.Name
}

// Slot is the pairing of a calendar date and a coarse time-of-day bucket
type Slot struct {
	Date     time.Time
	TimeSlot TimeSlot
}

// ReservationFilter filter for staff reservation listings
type ReservationFilter struct {
	UserID   *int64             // only reservations of this customer
	Status   *ReservationStatus // exact status
	Statuses []ReservationStatus
	DateFrom *time.Time // inclusive
	DateTo   *time.Time // inclusive
	Limit    uint64     // 0 = unbounded
	// OrderAsc sorts by date ASC instead of the default date DESC
	OrderAsc bool
}

// StatusCount number of reservations in a status
type StatusCount struct {
	Status ReservationStatus
	Count  int
}

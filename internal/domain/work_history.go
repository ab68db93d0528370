package domain

import "time"

// WorkStatus progress of the repair work
type WorkStatus string

const (
	WorkStatusPending    WorkStatus = "pending"
	WorkStatusInProgress WorkStatus = "in_progress"
	WorkStatusCompleted  WorkStatus = "completed"
)

// IsValid returns true if the status is known
func (s WorkStatus) IsValid() bool {
	return s == WorkStatusPending || s == WorkStatusInProgress || s == WorkStatusCompleted
}

// WorkHistory staff-recorded outcome of a reservation (one per reservation)
type WorkHistory struct {
	ID                  int64
	ReservationID       int64
	EstimatedAmount     *int64 // yen
	ActualAmount        *int64 // yen
	Status              WorkStatus
	CompletionPhotoPath string
	AdminComment        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewWorkHistory default construction used by the get-or-create operation
func NewWorkHistory(reservationID int64) *WorkHistory {
	return &WorkHistory{
		ReservationID: reservationID,
		Status:        WorkStatusPending,
	}
}

// IsCompleted returns true if the work is done
func (w *WorkHistory) IsCompleted() bool {
	return w.Status == WorkStatusCompleted
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Reservation rule violations
var (
	ErrPastDate               = errors.New("date is in the past")
	ErrSlotNotAvailable       = errors.New("this time slot is already booked")
	ErrNoteRequired           = errors.New("note is required when visit reason is \"other\"")
	ErrRequired               = errors.New("this field is required")
	ErrTooLong                = errors.New("value is too long")
	ErrInvalidChoice          = errors.New("invalid choice")
	ErrInvalidFormat          = errors.New("invalid format")
	ErrServiceMenuUnavailable = errors.New("service menu is not available")
	ErrTooManyImages          = errors.New("too many images")
)

// Field names used in validation errors
const (
	FieldName        = "name"
	FieldDate        = "date"
	FieldTimeSlot    = "time_slot"
	FieldVisitReason = "visit_reason"
	FieldServiceMenu = "service_menu"
	FieldNote        = "note"
	FieldImages      = "images"
	FieldStatus      = "status"
)

// FieldError rule violation bound to an input field
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every violated rule of one request.
// errors.Is matches any of the contained rule errors.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, fe := range v {
		errs[i] = fe
	}
	return errs
}

// Add appends a violation
func (v *ValidationErrors) Add(field string, err error) {
	*v = append(*v, &FieldError{Field: field, Err: err})
}

// Err returns nil when there are no violations
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Fields groups messages by field name
func (v ValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, fe := range v {
		out[fe.Field] = append(out[fe.Field], fe.Err.Error())
	}
	return out
}

// AsValidationErrors extracts ValidationErrors from an error chain
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// SlotUnavailable validation error for an occupied slot
func SlotUnavailable() ValidationErrors {
	return ValidationErrors{{Field: FieldTimeSlot, Err: ErrSlotNotAvailable}}
}

// ValidateDate rejects dates before today
func ValidateDate(date, today time.Time) error {
	if IsBeforeDay(date, today) {
		return ErrPastDate
	}
	return nil
}

// ValidateSlotFree rejects a slot already held by a confirmed reservation
func ValidateSlotFree(occupied bool) error {
	if occupied {
		return ErrSlotNotAvailable
	}
	return nil
}

// ValidateVisitReason checks the reason and its note requirement
func ValidateVisitReason(reason VisitReason, note string) error {
	if !reason.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, reason)
	}
	if reason.RequiresNote() && strings.TrimSpace(note) == "" {
		return ErrNoteRequired
	}
	return nil
}

// ValidateReservationFields runs the static (storage independent) checks of a reservation
func ValidateReservationFields(r *Reservation) ValidationErrors {
	var errs ValidationErrors

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs.Add(FieldName, ErrRequired)
	case len([]rune(name)) > MaxNameLength:
		errs.Add(FieldName, ErrTooLong)
	}

	if r.Date.IsZero() {
		errs.Add(FieldDate, ErrRequired)
	}

	if !r.TimeSlot.IsValid() {
		errs.Add(FieldTimeSlot, ErrInvalidChoice)
	}

	if err := ValidateVisitReason(r.VisitReason, r.Note); err != nil {
		if errors.Is(err, ErrNoteRequired) {
			errs.Add(FieldNote, err)
		} else {
			errs.Add(FieldVisitReason, ErrInvalidChoice)
		}
	}

	if len([]rune(r.Note)) > MaxNoteLength {
		errs.Add(FieldNote, ErrTooLong)
	}

	return errs
}

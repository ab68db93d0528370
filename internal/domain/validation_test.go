package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	today := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)

	for d := 1; d <= 30; d++ {
		assert.ErrorIs(t, ValidateDate(today.AddDate(0, 0, -d), today), ErrPastDate)
	}
	assert.NoError(t, ValidateDate(today, today))
	assert.NoError(t, ValidateDate(today.AddDate(0, 0, 1), today))
}

func TestValidateVisitReason(t *testing.T) {
	assert.ErrorIs(t, ValidateVisitReason(VisitReasonOther, ""), ErrNoteRequired)
	assert.ErrorIs(t, ValidateVisitReason(VisitReasonOther, "   "), ErrNoteRequired)
	assert.NoError(t, ValidateVisitReason(VisitReasonOther, "squeaky brakes"))
	assert.NoError(t, ValidateVisitReason(VisitReasonRepair, ""))
	assert.ErrorIs(t, ValidateVisitReason("shopping", ""), ErrInvalidChoice)
}

func TestValidateReservationFields(t *testing.T) {
	r := &Reservation{
		Name:        "",
		TimeSlot:    "NOON",
		VisitReason: VisitReasonOther,
	}

	errs := ValidateReservationFields(r)
	require.Len(t, errs, 4)

	fields := errs.Fields()
	assert.Contains(t, fields, FieldName)
	assert.Contains(t, fields, FieldDate)
	assert.Contains(t, fields, FieldTimeSlot)
	assert.Contains(t, fields, FieldNote)

	err := errs.Err()
	assert.ErrorIs(t, err, ErrNoteRequired)
	assert.ErrorIs(t, err, ErrRequired)
	assert.False(t, errors.Is(err, ErrPastDate))

	v, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Len(t, v, 4)
}

func TestValidationErrors_Empty(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	_, ok := AsValidationErrors(errors.New("other"))
	assert.False(t, ok)
}

func TestSlotUnavailable(t *testing.T) {
	err := error(SlotUnavailable())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, map[string][]string{FieldTimeSlot: {ErrSlotNotAvailable.Error()}}, SlotUnavailable().Fields())
}

package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/pkg/pgerrors"
	"github.com/m04kA/BikeRepair-BookingService/pkg/ptr"
)

func TestClassifyWriteError(t *testing.T) {
	slotTaken := &pq.Error{Code: pgerrors.CodeUniqueViolation, Constraint: uniqueConfirmedSlot}
	otherUnique := &pq.Error{Code: pgerrors.CodeUniqueViolation, Constraint: "reservations_pkey"}
	fk := &pq.Error{Code: pgerrors.CodeForeignKeyViolation}
	serialization := &pq.Error{Code: pgerrors.CodeSerializationFailure}

	assert.ErrorIs(t, classifyWriteError("Create", slotTaken), ErrSlotTaken)
	assert.ErrorIs(t, classifyWriteError("Create", otherUnique), ErrExecQuery)
	assert.ErrorIs(t, classifyWriteError("Create", fk), ErrServiceMenuNotFound)

	err := classifyWriteError("Create", serialization)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, pgerrors.IsSerializationFailure(err))

	assert.ErrorIs(t, classifyWriteError("Create", errors.New("boom")), ErrExecQuery)
}

func TestFilterQuery(t *testing.T) {
	from := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	filter := domain.ReservationFilter{
		Status:   ptr.Ptr(domain.StatusConfirmed),
		DateFrom: &from,
	}

	query, args, err := applyFilter(baseSelect(), filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "LEFT JOIN service_menus sm ON sm.id = r.service_menu_id")
	assert.Contains(t, query, "r.status = $1")
	assert.Contains(t, query, "r.date >= $2")
	assert.Equal(t, []interface{}{domain.StatusConfirmed, "2026-10-16"}, args)
}

func TestDateArg_IgnoresClock(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "2026-10-17", dateArg(time.Date(2026, 10, 17, 8, 0, 0, 0, jst)))
}

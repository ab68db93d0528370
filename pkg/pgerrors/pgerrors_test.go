package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "reservations_confirmed_slot_key"}
	wrapped := fmt.Errorf("insert reservation: %w", unique)

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(wrapped))
	assert.Equal(t, "reservations_confirmed_slot_key", Constraint(wrapped))
	assert.False(t, IsSerializationFailure(wrapped))

	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))
}

func TestClassification_NonPostgresError(t *testing.T) {
	err := errors.New("connection refused")

	_, ok := Code(err)
	assert.False(t, ok)
	assert.False(t, IsUniqueViolation(err))
	assert.Empty(t, Constraint(err))
	assert.False(t, IsUniqueViolation(nil))
}

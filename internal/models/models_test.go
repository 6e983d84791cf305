package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripRecord_OwnedBy(t *testing.T) {
	owner := int64(7)

	t.Run("matching account", func(t *testing.T) {
		trip := TripRecord{AccountID: &owner}
		assert.True(t, trip.OwnedBy(7))
		assert.False(t, trip.OwnedBy(8))
	})

	t.Run("orphaned trip has no owner", func(t *testing.T) {
		trip := TripRecord{}
		assert.False(t, trip.OwnedBy(7))
	})
}

func TestRoles(t *testing.T) {
	assert.True(t, (&Account{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Account{Role: RoleUser}).IsAdmin())
	assert.True(t, (&Session{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Session{Role: RoleUser}).IsAdmin())
}

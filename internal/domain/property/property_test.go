package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProperty(t *testing.T) {
	owner := uuid.New()
	p := NewProperty(owner, "Lake house")

	require.NotNil(t, p)
	assert.NotEqual(t, uuid.Nil, p.PropertyID)
	assert.Equal(t, owner, p.OwnerID)
	assert.Equal(t, StatusFree, p.Status)
	assert.Equal(t, int64(1), p.Version)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusFree, StatusFree, true},
		{StatusFree, StatusReserved, true},
		{StatusFree, StatusSold, true},
		{StatusReserved, StatusFree, true},
		{StatusReserved, StatusSold, true},
		{StatusReserved, StatusReserved, false},
		{StatusSold, StatusFree, true},
		{StatusSold, StatusReserved, false},
		{StatusSold, StatusSold, false},
		{Status("UNKNOWN"), StatusFree, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestProperty_MoveTo(t *testing.T) {
	t.Run("applies legal move", func(t *testing.T) {
		p := NewProperty(uuid.New(), "Flat")
		before := p.UpdatedAt

		require.NoError(t, p.MoveTo(StatusReserved))

		assert.Equal(t, StatusReserved, p.Status)
		assert.Equal(t, int64(2), p.Version)
		assert.False(t, p.UpdatedAt.Before(before))
	})

	t.Run("rejects second reservation", func(t *testing.T) {
		p := NewProperty(uuid.New(), "Flat")
		require.NoError(t, p.MoveTo(StatusReserved))

		err := p.MoveTo(StatusReserved)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, int64(2), p.Version)
	})
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []Status{StatusFree, StatusReserved, StatusSold} {
		assert.NoError(t, ValidateStatus(s))
	}
	assert.ErrorIs(t, ValidateStatus("LEASED"), ErrInvalidStatus)
}

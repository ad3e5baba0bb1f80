package sale

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale(t *testing.T) {
	buyer, seller := uuid.New(), uuid.New()
	s := NewSale(buyer, seller, uuid.New(), 250000)

	assert.Equal(t, StatusPending, s.Status)
	assert.Equal(t, []uuid.UUID{buyer, seller}, s.Parties())
	assert.NoError(t, s.Validate())
}

func TestSale_Complete(t *testing.T) {
	s := NewSale(uuid.New(), uuid.New(), uuid.New(), 1)

	require.NoError(t, s.Complete())
	assert.Equal(t, StatusCompleted, s.Status)

	assert.ErrorIs(t, s.Complete(), ErrInvalidTransition)
}

func TestSale_Decline(t *testing.T) {
	s := NewSale(uuid.New(), uuid.New(), uuid.New(), 1)
	require.NoError(t, s.Complete())

	s.Decline()

	assert.Equal(t, StatusDeclined, s.Status)
}

func TestPatch_ApplyLeavesStatus(t *testing.T) {
	s := NewSale(uuid.New(), uuid.New(), uuid.New(), 100)
	price := int64(90)
	notes := "counter offer"

	Patch{Price: &price, Notes: &notes}.Apply(s)

	assert.Equal(t, price, s.Price)
	assert.Equal(t, notes, s.Notes)
	assert.Equal(t, StatusPending, s.Status)
}

func TestSale_Validate(t *testing.T) {
	same := uuid.New()
	assert.ErrorIs(t, NewSale(same, same, uuid.New(), 1).Validate(), ErrInvalid)
	assert.ErrorIs(t, NewSale(uuid.New(), uuid.New(), uuid.New(), -5).Validate(), ErrInvalid)
}

package agreement

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRentAgreement(t *testing.T) {
	buyer, seller, prop := uuid.New(), uuid.New(), uuid.New()
	a := NewRentAgreement(buyer, seller, prop)

	require.NotNil(t, a)
	assert.NotEqual(t, uuid.Nil, a.AgreementID)
	assert.Equal(t, StatusPending, a.Status)
	assert.True(t, a.IsParticipant(buyer))
	assert.True(t, a.IsParticipant(seller))
	assert.False(t, a.IsParticipant(prop))
}

func TestRentAgreement_Settle(t *testing.T) {
	a := NewRentAgreement(uuid.New(), uuid.New(), uuid.New())

	require.NoError(t, a.Settle())
	assert.Equal(t, StatusSettled, a.Status)

	assert.ErrorIs(t, a.Settle(), ErrInvalidTransition)
}

func TestRentAgreement_DeclineAndCompleteFromAnyStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusSettled, StatusDeclined, StatusCompleted} {
		a := NewRentAgreement(uuid.New(), uuid.New(), uuid.New())
		a.Status = s
		a.Decline()
		assert.Equal(t, StatusDeclined, a.Status)

		a.Status = s
		a.Complete()
		assert.Equal(t, StatusCompleted, a.Status)
	}
}

func TestPatch_Apply(t *testing.T) {
	a := NewRentAgreement(uuid.New(), uuid.New(), uuid.New())
	rent := int64(150000)
	terms := "no pets"
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	Patch{MonthlyRent: &rent, Terms: &terms, StartDate: &start}.Apply(a)

	assert.Equal(t, rent, a.MonthlyRent)
	assert.Equal(t, terms, a.Terms)
	require.NotNil(t, a.StartDate)
	assert.Equal(t, start, *a.StartDate)
	assert.Nil(t, a.EndDate)
	assert.Equal(t, StatusPending, a.Status)
}

func TestRentAgreement_Validate(t *testing.T) {
	a := NewRentAgreement(uuid.New(), uuid.New(), uuid.New())
	assert.NoError(t, a.Validate())

	a.MonthlyRent = -1
	assert.ErrorIs(t, a.Validate(), ErrInvalid)
	a.MonthlyRent = 0

	start := time.Now()
	end := start.Add(-time.Hour)
	a.StartDate, a.EndDate = &start, &end
	assert.ErrorIs(t, a.Validate(), ErrInvalid)

	same := uuid.New()
	b := NewRentAgreement(same, same, uuid.New())
	assert.ErrorIs(t, b.Validate(), ErrInvalid)
}

func TestPaging(t *testing.T) {
	assert.Equal(t, 0, Offset(0))
	assert.Equal(t, 0, Offset(1))
	assert.Equal(t, PageLimit, Offset(2))
	assert.Equal(t, (MaxPage-1)*PageLimit, Offset(MaxPage))
	assert.Equal(t, Offset(MaxPage), Offset(math.MaxInt))
	assert.GreaterOrEqual(t, Offset(math.MaxInt), 0)

	assert.Equal(t, 0, PageCount(0))
	assert.Equal(t, 1, PageCount(1))
	assert.Equal(t, 1, PageCount(PageLimit))
	assert.Equal(t, 2, PageCount(PageLimit+1))
}

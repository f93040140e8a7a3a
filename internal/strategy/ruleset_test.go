package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSet_ValidateRejectsBadDeckCount(t *testing.T) {
	r := Default6DeckS17DAS()
	r.NumDecks = 3
	assert.Error(t, r.Validate())
}

func TestRuleSet_ValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, Default6DeckS17DAS().Validate())
}

func TestBlackjackPayout_Ratios(t *testing.T) {
	assert.Equal(t, int64(3), Payout3to2.Numerator())
	assert.Equal(t, int64(2), Payout3to2.Denominator())
	assert.Equal(t, int64(6), Payout6to5.Numerator())
	assert.Equal(t, int64(5), Payout6to5.Denominator())
}

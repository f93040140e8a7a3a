package counting

import (
	"testing"

	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiLo_FullSingleDeckSumsToZero(t *testing.T) {
	s := NewState(HiLo, 1)
	for _, suit := range deck.AllSuits {
		for _, rank := range deck.AllRanks {
			s.Observe(deck.NewCard(rank, suit))
		}
	}
	assert.Equal(t, 0, s.RunningCount)
	assert.Equal(t, 52, s.CardsSeen)
}

func TestKO_IRCSixDecks(t *testing.T) {
	s := NewState(KO, 6)
	require.Equal(t, -20, s.RunningCount)

	// Deal all 144 low cards (2-7, 24 each of six ranks): tag +1 each.
	lowRanks := []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven}
	for _, r := range lowRanks {
		for i := 0; i < 24; i++ {
			s.Observe(deck.NewCard(r, deck.Spades))
		}
	}
	assert.Equal(t, 124, s.RunningCount)

	// Deal the 48 neutrals (8,9 - 24 each): tag 0, no change.
	for _, r := range []deck.Rank{deck.Eight, deck.Nine} {
		for i := 0; i < 24; i++ {
			s.Observe(deck.NewCard(r, deck.Spades))
		}
	}
	assert.Equal(t, 124, s.RunningCount)

	// Deal the 120 high cards (10,J,Q,K,A - 24 each of five ranks): tag -1.
	for _, r := range []deck.Rank{deck.Ten, deck.Jack, deck.Queen, deck.King, deck.Ace} {
		for i := 0; i < 24; i++ {
			s.Observe(deck.NewCard(r, deck.Spades))
		}
	}
	assert.Equal(t, 4, s.RunningCount)
	assert.Equal(t, 52*6, s.CardsSeen)
}

func TestWongHalves_DoubledAndDisplay(t *testing.T) {
	s := NewState(WongHalves, 1)
	s.Observe(deck.NewCard(deck.Five, deck.Spades)) // +1.5 -> stored +3
	assert.Equal(t, 3, s.RunningCount)
	assert.Equal(t, 1.5, s.Display())
}

func TestOmegaII_AceRichness(t *testing.T) {
	s := NewState(OmegaII, 1)
	for i := 0; i < 13; i++ {
		s.Observe(deck.NewCard(deck.Ace, deck.Spades))
	}
	// 13 aces seen against an expected (13/52)*4 = 1 ace.
	assert.InDelta(t, 12.0, s.AceRichness(), 1e-9)
	assert.Equal(t, 0, s.RunningCount, "Omega II tags aces 0 in the main count")
}

func TestTrueCount_BalancedVsUnbalanced(t *testing.T) {
	hiLo := NewState(HiLo, 6)
	hiLo.RunningCount = 6
	assert.InDelta(t, 2.0, hiLo.TrueCount(3.0), 1e-9)

	ko := NewState(KO, 6)
	ko.RunningCount = 10
	assert.Equal(t, 10.0, ko.TrueCount(3.0), "unbalanced true count is the running count itself")
}

func TestResetForShoe_RestoresIRC(t *testing.T) {
	s := NewState(HiLo, 6)
	s.Observe(deck.NewCard(deck.Ten, deck.Spades))
	require.NotEqual(t, 0, s.RunningCount)

	s.ResetForShoe(6)
	assert.Equal(t, 0, s.RunningCount)
	assert.Equal(t, 0, s.CardsSeen)
}

func TestByName(t *testing.T) {
	sys, ok := ByName("KO")
	require.True(t, ok)
	assert.Equal(t, KO.Name, sys.Name)

	_, ok = ByName("nonexistent")
	assert.False(t, ok)
}

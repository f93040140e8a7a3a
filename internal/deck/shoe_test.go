package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoe_Composition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s, err := NewShoe(6, 0.75, rng)
	require.NoError(t, err)

	assert.Equal(t, 52*6, s.CardsRemaining())
	comp := s.Composition()
	for _, r := range AllRanks {
		assert.Equal(t, 24, comp.Count(r), "rank %s should have 4*6 cards", r)
	}
}

func TestShoe_DealPreservesMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := NewShoe(1, 1.0, rng)
	require.NoError(t, err)

	seen := map[Card]int{}
	for i := 0; i < 52; i++ {
		c, err := s.Deal()
		require.NoError(t, err)
		seen[c]++
	}

	assert.Equal(t, 0, s.CardsRemaining())
	assert.Len(t, seen, 52)
	for _, count := range seen {
		assert.Equal(t, 1, count)
	}
}

func TestShoe_ExhaustedReturnsSentinel(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s, err := NewShoe(1, 1.0, rng)
	require.NoError(t, err)

	for i := 0; i < 52; i++ {
		_, err := s.Deal()
		require.NoError(t, err)
	}

	_, err = s.Deal()
	assert.ErrorIs(t, err, ErrShoeExhausted)
}

func TestShoe_NeedsShuffle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s, err := NewShoe(1, 0.5, rng)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		_, err := s.Deal()
		require.NoError(t, err)
		assert.False(t, s.NeedsShuffle())
	}

	_, err = s.Deal()
	require.NoError(t, err)
	assert.True(t, s.NeedsShuffle())
}

type fakeSubscriber struct {
	resetCalls int
	lastDecks  int
}

func (f *fakeSubscriber) ResetForShoe(numDecks int) {
	f.resetCalls++
	f.lastDecks = numDecks
}

func TestShoe_ReshuffleResetsSubscribers(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	s, err := NewShoe(2, 0.8, rng)
	require.NoError(t, err)

	sub := &fakeSubscriber{}
	s.Subscribe(sub)

	for i := 0; i < 10; i++ {
		_, _ = s.Deal()
	}

	s.Reshuffle()

	assert.Equal(t, 1, sub.resetCalls)
	assert.Equal(t, 2, sub.lastDecks)
	assert.Equal(t, 52*2, s.CardsRemaining())
}

func TestShoe_DecksRemainingFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s, err := NewShoe(1, 1.0, rng)
	require.NoError(t, err)

	for i := 0; i < 45; i++ {
		_, _ = s.Deal()
	}

	assert.Equal(t, 0.5, s.DecksRemaining())
}

func TestNewShoe_RejectsBadPenetration(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	_, err := NewShoe(6, 0, rng)
	assert.Error(t, err)

	_, err = NewShoe(6, 1.5, rng)
	assert.Error(t, err)
}

package counting

import "github.com/ckhausman/blackjack-engine/internal/deck"

// acesPerDeck is the expected number of aces in one 52-card deck.
const acesPerDeck = 4.0

// State tracks one counting system's running state across a shoe's
// life. It satisfies deck.Resettable so a Shoe can reset it on reshuffle.
type State struct {
	System       System
	RunningCount int
	AceSideCount int
	CardsSeen    int

	numDecks int
}

// NewState creates a counting state bound to a shoe with numDecks decks,
// initialized to the system's IRC.
func NewState(system System, numDecks int) *State {
	s := &State{System: system, numDecks: numDecks}
	s.ResetForShoe(numDecks)
	return s
}

// ResetForShoe reinitializes the state for a (re)shuffled shoe with the
// given deck count, satisfying deck.Resettable.
func (s *State) ResetForShoe(numDecks int) {
	s.numDecks = numDecks
	s.RunningCount = s.System.InitialRunningCount(numDecks)
	s.AceSideCount = 0
	s.CardsSeen = 0
}

// Observe records one seen card, updating the running count and the ace
// side count. The ace side count is kept for every system; AceRichness
// (Omega II, whose main tag table assigns aces 0) is what reads it.
func (s *State) Observe(c deck.Card) {
	s.RunningCount += s.System.Tag(c.Rank)
	s.CardsSeen++
	if c.IsAce() {
		s.AceSideCount++
	}
}

// Display returns the running count in natural units: Wong Halves
// values are stored doubled internally and halved here for display.
func (s *State) Display() float64 {
	if s.System.Doubled {
		return float64(s.RunningCount) / 2.0
	}
	return float64(s.RunningCount)
}

// TrueCount converts the running count to a true count for balanced
// systems (RC/decksRemaining, decksRemaining floored at 0.5 by the
// caller/shoe). For unbalanced systems the running count itself is
// actionable and is returned unconverted (callers should prefer
// RunningCount/Display directly and consult System.Pivot/Key).
func (s *State) TrueCount(decksRemaining float64) float64 {
	rc := s.Display()
	if !s.System.Balanced {
		return rc
	}
	if decksRemaining < 0.5 {
		decksRemaining = 0.5
	}
	return rc / decksRemaining
}

// AceRichness returns Omega II's ace-richness metric: actual aces seen
// vs the expected count given cards seen so far. Only meaningful for
// Omega II, which tracks an ace side count separately from its main tag
// table (where aces tag 0).
func (s *State) AceRichness() float64 {
	expected := (float64(s.CardsSeen) / 52.0) * acesPerDeck
	return float64(s.AceSideCount) - expected
}

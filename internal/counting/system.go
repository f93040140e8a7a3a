// Package counting implements the four pluggable card-counting systems
// (Hi-Lo, KO, Omega II, Wong Halves) as data-driven capability records
// rather than a class hierarchy, per the engine's "variants are values,
// not types" design note.
package counting

import "github.com/ckhausman/blackjack-engine/internal/deck"

// System is the shared contract every counting variant satisfies: a tag
// table, balance classification, an IRC function, and published metadata
// used by training/UI.
type System struct {
	Name    string
	Tags    map[deck.Rank]int
	Doubled bool // true only for Wong Halves: values are stored *2 internally
	Balanced bool

	// InitialRunningCount returns the starting running count for a shoe
	// with the given deck count (0 for balanced systems, nonzero for KO).
	InitialRunningCount func(numDecks int) int

	BettingCorrelation float64
	PlayingEfficiency  float64

	// Pivot and Key are only meaningful for unbalanced systems (KO):
	// Pivot is the running count at which the deck favors the player
	// regardless of decks remaining, Key is the practical betting
	// threshold just below it.
	Pivot int
	Key   int
}

// Tag returns the system's tag value for a card's rank. For Wong Halves
// this is the doubled integer representation (±1 unit = ±0.5).
func (s System) Tag(r deck.Rank) int {
	return s.Tags[r]
}

func tags(two, three, four, five, six, seven, eight, nine, ten, ace int) map[deck.Rank]int {
	return map[deck.Rank]int{
		deck.Two: two, deck.Three: three, deck.Four: four, deck.Five: five,
		deck.Six: six, deck.Seven: seven, deck.Eight: eight, deck.Nine: nine,
		deck.Ten: ten, deck.Jack: ten, deck.Queen: ten, deck.King: ten,
		deck.Ace: ace,
	}
}

// HiLo is the classic balanced level-1 count.
var HiLo = System{
	Name:                "Hi-Lo",
	Tags:                tags(1, 1, 1, 1, 1, 0, 0, 0, -1, -1),
	Balanced:            true,
	InitialRunningCount: func(int) int { return 0 },
	BettingCorrelation:  0.97,
	PlayingEfficiency:   0.51,
}

// KO (Knock-Out) is unbalanced: running count alone is actionable via
// pivot/key points, no true-count conversion needed.
var KO = System{
	Name:                "KO",
	Tags:                tags(1, 1, 1, 1, 1, 1, 0, 0, -1, -1),
	Balanced:            false,
	InitialRunningCount: func(numDecks int) int { return 4 - 4*numDecks },
	BettingCorrelation:  0.98,
	PlayingEfficiency:   0.55,
	Pivot:               4,
	Key:                 3,
}

// OmegaII is a balanced level-2 count with an auxiliary ace side count
// (aces tag 0 in the main count).
var OmegaII = System{
	Name:                "Omega II",
	Tags:                tags(1, 1, 2, 2, 2, 1, 0, -1, -2, 0),
	Balanced:            true,
	InitialRunningCount: func(int) int { return 0 },
	BettingCorrelation:  0.92,
	PlayingEfficiency:   0.67,
}

// WongHalves is balanced with half-integer tags; Doubled stores values
// *2 internally (0.5 -> 1) to keep running-count arithmetic exact.
var WongHalves = System{
	Name:                "Wong Halves",
	Tags:                tags(1, 2, 2, 3, 2, 1, 0, -1, -2, -2),
	Doubled:             true,
	Balanced:            true,
	InitialRunningCount: func(int) int { return 0 },
	BettingCorrelation:  0.99,
	PlayingEfficiency:   0.56,
}

// ByName resolves a system by its canonical name ("Hi-Lo") or by its
// config/CLI identifier ("hi_lo", "ko", "omega_ii", "wong_halves"), used
// when loading sessions/config from external identifiers.
func ByName(name string) (System, bool) {
	ids := map[string]System{"hi_lo": HiLo, "ko": KO, "omega_ii": OmegaII, "wong_halves": WongHalves}
	if s, ok := ids[name]; ok {
		return s, true
	}
	for _, s := range []System{HiLo, KO, OmegaII, WongHalves} {
		if s.Name == name {
			return s, true
		}
	}
	return System{}, false
}

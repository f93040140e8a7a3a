package strategy

// SurrenderPolicy enumerates the surrender rule variants.
type SurrenderPolicy int

const (
	SurrenderNone SurrenderPolicy = iota
	SurrenderLate
	SurrenderEarly
)

// BlackjackPayout enumerates the natural-blackjack payout ratios.
type BlackjackPayout int

const (
	Payout3to2 BlackjackPayout = iota
	Payout6to5
	Payout1to1
)

// Numerator and Denominator return the payout ratio's integer parts for
// fixed-point cent arithmetic.
func (p BlackjackPayout) Numerator() int64 {
	switch p {
	case Payout6to5:
		return 6
	case Payout1to1:
		return 1
	default:
		return 3
	}
}

func (p BlackjackPayout) Denominator() int64 {
	switch p {
	case Payout6to5:
		return 5
	case Payout1to1:
		return 1
	default:
		return 2
	}
}

// DoubleRestriction enumerates which player totals may double down.
type DoubleRestriction int

const (
	DoubleAnyTwoCards DoubleRestriction = iota
	Double9to11Only
	Double10to11Only
)

// RuleSet is an explicit, enumerated configuration record; unknown
// fields in an external (e.g. HCL) representation are rejected at
// construction by the decoder, not silently accepted here (§9).
type RuleSet struct {
	NumDecks              int
	DealerHitsSoft17      bool
	DoubleAfterSplit      bool
	SurrenderAllowed      SurrenderPolicy
	BlackjackPayout       BlackjackPayout
	DealerPeeksOnTenOrAce bool
	ResplitAces           bool
	HitSplitAces          bool
	MaxSplits             int
	DoubleRestriction     DoubleRestriction
	Penetration           float64
}

// Default6DeckS17DAS is the canonical reference rule set the basic
// strategy tables in §4.4 are authoritative for: 6-deck, dealer stands
// on soft 17, double after split allowed.
func Default6DeckS17DAS() RuleSet {
	return RuleSet{
		NumDecks:              6,
		DealerHitsSoft17:      false,
		DoubleAfterSplit:      true,
		SurrenderAllowed:      SurrenderNone,
		BlackjackPayout:       Payout3to2,
		DealerPeeksOnTenOrAce: true,
		ResplitAces:           false,
		HitSplitAces:          false,
		MaxSplits:             4,
		DoubleRestriction:     DoubleAnyTwoCards,
		Penetration:           0.75,
	}
}

// Validate rejects rule sets the engine cannot reason about.
func (r RuleSet) Validate() error {
	switch r.NumDecks {
	case 1, 2, 4, 6, 8:
	default:
		return errInvalidRuleSet("num_decks must be one of {1,2,4,6,8}")
	}
	if r.MaxSplits <= 0 {
		return errInvalidRuleSet("max_splits must be positive")
	}
	if r.Penetration <= 0 || r.Penetration > 1 {
		return errInvalidRuleSet("penetration must be in (0,1]")
	}
	return nil
}

type ruleSetError string

func (e ruleSetError) Error() string { return "strategy: " + string(e) }

func errInvalidRuleSet(msg string) error { return ruleSetError(msg) }

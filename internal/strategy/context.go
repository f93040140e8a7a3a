package strategy

import (
	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
)

// ComputeContext derives the can_double/can_split/can_surrender flags a
// conditional cell resolves against, from the rule set and the current
// hand (§4.4: "resolved at lookup time ... against (can_double,
// can_split, can_surrender) flags computed from rule set + current
// hand"). splitsSoFar is the number of splits already performed on this
// hand's lineage.
func ComputeContext(r RuleSet, h *hand.Hand, splitsSoFar int) Context {
	twoCards := len(h.Cards) == 2

	canDouble := twoCards
	if canDouble {
		switch r.DoubleRestriction {
		case Double9to11Only:
			total := h.Total()
			canDouble = total >= 9 && total <= 11
		case Double10to11Only:
			total := h.Total()
			canDouble = total == 10 || total == 11
		}
	}
	if h.FromSplit && !r.DoubleAfterSplit {
		canDouble = false
	}

	canSplit := h.IsPair() && splitsSoFar < r.MaxSplits
	if canSplit && isAcePair(h) && splitsSoFar > 0 && !r.ResplitAces {
		canSplit = false
	}

	// Early vs. late surrender only changes *when* the option is offered
	// (pre- vs. post-peek), not whether it's offered on this hand, so
	// both collapse to the same flag here.
	canSurrender := twoCards && !h.FromSplit && r.SurrenderAllowed != SurrenderNone

	return Context{
		CanDouble:    canDouble,
		CanSplit:     canSplit,
		CanSurrender: canSurrender,
	}
}

func isAcePair(h *hand.Hand) bool {
	return h.IsPair() && h.Cards[0].Rank == deck.Ace
}

package game

import (
	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// AvailableActions returns exactly the commands that would not
// ValidationError if issued right now, against the hand currently awaiting
// a decision. It is the same guard logic Step's PLAYER_TURN handler
// consults, so the two can never drift apart.
func (s *Session) AvailableActions() map[CommandKind]bool {
	h := s.CurrentHand()
	if h == nil {
		return map[CommandKind]bool{}
	}
	return s.availableActionsForHand(h)
}

func (s *Session) availableActionsForHand(h *hand.Hand) map[CommandKind]bool {
	twoCards := len(h.Cards) == 2

	canDouble := twoCards && !h.Doubled && s.pendingBet <= s.bankroll
	if canDouble {
		switch s.rules.DoubleRestriction {
		case strategy.Double9to11Only:
			t := h.Total()
			canDouble = t >= 9 && t <= 11
		case strategy.Double10to11Only:
			t := h.Total()
			canDouble = t >= 10 && t <= 11
		}
		if canDouble && h.FromSplit && !s.rules.DoubleAfterSplit {
			canDouble = false
		}
	}

	canSplit := twoCards && h.IsPair() && s.splitCount < s.rules.MaxSplits && s.pendingBet <= s.bankroll
	if canSplit && h.FromSplit {
		// Already a child of a split; resplitting further only allowed
		// for non-aces, or aces when the rule set permits it.
		if h.Cards[0].Rank == deck.Ace && !s.rules.ResplitAces {
			canSplit = false
		}
	}

	canSurrender := twoCards && !h.FromSplit && s.rules.SurrenderAllowed != strategy.SurrenderNone

	return map[CommandKind]bool{
		CmdHit:       true,
		CmdStand:     true,
		CmdDouble:    canDouble,
		CmdSplit:     canSplit,
		CmdSurrender: canSurrender,
	}
}

// StrategyContext derives the strategy.Context a Chart lookup needs for
// the hand currently awaiting a decision, from this session's rules and
// live table state (not a static per-rule-set constant, since double and
// surrender availability depend on the specific hand).
func (s *Session) StrategyContext() strategy.Context {
	h := s.CurrentHand()
	if h == nil {
		return strategy.Context{}
	}
	avail := s.availableActionsForHand(h)
	return strategy.Context{
		CanDouble:    avail[CmdDouble],
		CanSplit:     avail[CmdSplit],
		CanSurrender: avail[CmdSurrender],
	}
}

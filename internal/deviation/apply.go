package deviation

import (
	"github.com/ckhausman/blackjack-engine/internal/counting"
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// Result is the outcome of applying the deviation table on top of a
// basic-strategy recommendation.
type Result struct {
	Action      strategy.Action
	IsDeviation bool
	BasicAction strategy.Action
}

// Apply evaluates the deviation table for the given situation and true
// count, returning the effective action. If the matching deviation's
// action is disallowed by ctx (e.g. surrender requested but
// ctx.CanSurrender is false), the basic action is kept (§4.5: "Deviations
// never enable an action the rules forbid").
func (t *Table) Apply(basic strategy.Action, classification hand.Classification, playerTotal, dealerUpcard int, trueCount float64, ctx strategy.Context) Result {
	rule, ok := t.Lookup(classification, playerTotal, dealerUpcard)
	if !ok || !rule.Crosses(trueCount) {
		return Result{Action: basic, BasicAction: basic}
	}
	if !actionAllowed(rule.Action, ctx) {
		return Result{Action: basic, BasicAction: basic}
	}
	return Result{Action: rule.Action, IsDeviation: true, BasicAction: basic}
}

func actionAllowed(a strategy.Action, ctx strategy.Context) bool {
	switch a {
	case strategy.Double:
		return ctx.CanDouble
	case strategy.SplitAction:
		return ctx.CanSplit
	case strategy.Surrender:
		return ctx.CanSurrender
	default:
		return true
	}
}

// RescaleIndex converts a balanced-system index threshold to an
// unbalanced running-count threshold per §4.5:
// index*decksRemaining + irc.
func RescaleIndex(index float64, decksRemaining float64, system counting.System, numDecks int) float64 {
	irc := float64(system.InitialRunningCount(numDecks))
	return index*decksRemaining + irc
}

package training

import (
	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// StrategyOracle builds the Hand a synthesized Scenario's cards describe
// and returns the chart's recommended action, trusting the hand's own
// Classify/Total/PairRankValue rather than the scenario's descriptive
// PlayerTotal field (which may use a different pair convention than the
// strategy table's lookup key).
func StrategyOracle(scenario Scenario, chart *strategy.Chart, rules strategy.RuleSet) strategy.Action {
	h := hand.New(0)
	for _, c := range scenario.PlayerCards {
		h.AddCard(c)
	}
	classification := h.Classify()
	playerKey := h.Total()
	if classification == hand.Pair {
		playerKey = h.PairRankValue()
	}
	upcard := dealerUpcardKey(scenario.DealerUpcard)
	ctx := strategy.ComputeContext(rules, h, 0)
	return chart.Recommend(classification, playerKey, upcard, ctx)
}

// dealerUpcardKey converts a dealer's up-card rank into the strategy
// table's lookup convention (ace as 11).
func dealerUpcardKey(r deck.Rank) int {
	if r == deck.Ace {
		return 11
	}
	return r.BlackjackValue()
}

package probability

import (
	"context"
	"fmt"

	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Engine holds a rule set's precomputed, full-shoe dealer-outcome tables —
// one per dealer upcard — so per-decision EV lookups during a session
// don't repeat the same recursive enumeration every hand. Grounded on the
// teacher's range-equity precompute, which parallelizes one independent
// unit of work per opposing range across golang.org/x/sync/errgroup
// rather than per-hand (here: one unit per upcard).
type Engine struct {
	rules       strategy.RuleSet
	freshDealer map[deck.Rank]Distribution
}

// NewEngine builds an Engine for rules, precomputing the dealer-outcome
// distribution for a fresh (full) shoe under every possible upcard. The
// thirteen upcard tables are independent and computed concurrently.
func NewEngine(rules strategy.RuleSet) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("probability: %w", err)
	}

	e := &Engine{
		rules:       rules,
		freshDealer: make(map[deck.Rank]Distribution, len(deck.AllRanks)),
	}

	g, _ := errgroup.WithContext(context.Background())
	results := make([]Distribution, len(deck.AllRanks))
	for i, upcard := range deck.AllRanks {
		i, upcard := i, upcard
		g.Go(func() error {
			comp := deck.NewRankCounts(rules.NumDecks).Remove(upcard)
			results[i] = DealerDistribution(upcard, comp, rules.DealerHitsSoft17)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("probability: precompute: %w", err)
	}
	for i, upcard := range deck.AllRanks {
		e.freshDealer[upcard] = results[i]
	}
	return e, nil
}

// FreshShoeDealerDistribution returns the precomputed dealer-outcome
// distribution for upcard against a full, untouched shoe under e's rules.
func (e *Engine) FreshShoeDealerDistribution(upcard deck.Rank) Distribution {
	return e.freshDealer[upcard]
}

// Rules returns the rule set the engine was built for.
func (e *Engine) Rules() strategy.RuleSet { return e.rules }

// HouseEdge returns the precomputed engine's rule set's house edge.
func (e *Engine) HouseEdge() float64 {
	return HouseEdge(e.rules)
}

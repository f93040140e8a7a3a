package training

import (
	"math"
	"math/rand"

	"github.com/ckhausman/blackjack-engine/internal/deviation"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// thresholdBand bounds how far a sampled true count is allowed to drift
// from the chosen rule's own trigger threshold, so a drawn scenario lands
// near where its index play actually crosses rather than uniformly
// anywhere in the requested range.
const thresholdBand = 2.0

// DeviationScenario presents one Illustrious 18 / Fab 4 situation at a
// sampled true count, contrasting the index play against the basic
// strategy action it overrides.
type DeviationScenario struct {
	Rule        deviation.Rule
	TrueCount   float64
	BasicAction strategy.Action
	Result      deviation.Result
}

// DeviationDrill samples one of table's rules and a true count from
// tcRange, returning both the deviation table's recommendation and the
// basic-strategy action it would override. The
// sampled true count is biased toward the chosen rule's own threshold
// (within tcRange) rather than drawn uniformly over the whole range, so a
// learner is shown situations near where the index play actually
// triggers instead of far outside it most of the time.
func DeviationDrill(table *deviation.Table, basicChart *strategy.Chart, rng *rand.Rand, tcRange [2]float64, ctx strategy.Context) DeviationScenario {
	situations := table.Situations()
	rule := situations[rng.Intn(len(situations))]

	lo := math.Max(tcRange[0], rule.Threshold-thresholdBand)
	hi := math.Min(tcRange[1], rule.Threshold+thresholdBand)
	if lo >= hi {
		lo, hi = tcRange[0], tcRange[1]
	}
	tc := lo + rng.Float64()*(hi-lo)

	basic := basicChart.Recommend(rule.Classification, rule.PlayerTotal, rule.DealerUpcard, ctx)
	result := table.Apply(basic, rule.Classification, rule.PlayerTotal, rule.DealerUpcard, tc, ctx)

	return DeviationScenario{
		Rule:        rule,
		TrueCount:   tc,
		BasicAction: basic,
		Result:      result,
	}
}

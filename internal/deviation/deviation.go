// Package deviation implements the Illustrious 18 + Fab 4 index plays
// applied on top of basic strategy (§4.5).
package deviation

import (
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// Direction is the comparison a threshold is evaluated with.
type Direction int

const (
	AtLeast Direction = iota // tc >= threshold
	AtMost                   // tc <= threshold
)

// Rule is one ordered index play.
type Rule struct {
	Classification hand.Classification
	PlayerTotal    int
	DealerUpcard   int
	Threshold      float64
	Direction      Direction
	Action         strategy.Action
}

// Crosses reports whether tc triggers this rule.
func (r Rule) Crosses(tc float64) bool {
	if r.Direction == AtLeast {
		return tc >= r.Threshold
	}
	return tc <= r.Threshold
}

type key struct {
	classification hand.Classification
	playerTotal     int
	dealerUpcard    int
}

// Table holds the Illustrious 18 + Fab 4, keyed by
// (classification, playerTotal, dealerUpcard) — one rule per key.
type Table struct {
	rules map[key]Rule
}

// Illustrious18Fab4 is the authoritative deviation set named in §4.5.
// Per §9 Open Question (i), the reference's duplicate "10 vs A" / "10 vs
// 11" keys collapse into the single "10 vs A, double at TC>=+4" entry
// below (dealerUpcard 11 is the ace, per §4.4's lookup convention).
var Illustrious18Fab4 = buildTable()

func buildTable() *Table {
	t := &Table{rules: make(map[key]Rule)}
	add := func(c hand.Classification, total, upcard int, threshold float64, dir Direction, action strategy.Action) {
		t.rules[key{c, total, upcard}] = Rule{
			Classification: c, PlayerTotal: total, DealerUpcard: upcard,
			Threshold: threshold, Direction: dir, Action: action,
		}
	}

	// Illustrious 18.
	add(hand.Hard, 16, 10, 0, AtLeast, strategy.Stand)
	add(hand.Hard, 15, 10, 4, AtLeast, strategy.Stand)
	add(hand.Pair, 10, 5, 5, AtLeast, strategy.SplitAction)
	add(hand.Pair, 10, 6, 4, AtLeast, strategy.SplitAction)
	add(hand.Hard, 10, 10, 4, AtLeast, strategy.Double)
	add(hand.Hard, 12, 3, 2, AtLeast, strategy.Stand)
	add(hand.Hard, 12, 2, 3, AtLeast, strategy.Stand)
	add(hand.Hard, 11, 11, 1, AtLeast, strategy.Double)
	add(hand.Hard, 9, 2, 1, AtLeast, strategy.Double)
	add(hand.Hard, 10, 11, 4, AtLeast, strategy.Double) // 10 vs A, collapsed dup key
	add(hand.Hard, 9, 7, 3, AtLeast, strategy.Double)
	add(hand.Hard, 16, 9, 5, AtLeast, strategy.Stand)
	add(hand.Hard, 13, 2, -1, AtMost, strategy.Hit)
	add(hand.Hard, 12, 4, 0, AtMost, strategy.Hit)
	add(hand.Hard, 12, 5, -2, AtMost, strategy.Hit)
	add(hand.Hard, 12, 6, -1, AtMost, strategy.Hit)
	add(hand.Hard, 13, 3, -2, AtMost, strategy.Hit)

	// Fab 4 late surrenders.
	add(hand.Hard, 14, 10, 3, AtLeast, strategy.Surrender)
	add(hand.Hard, 15, 9, 2, AtLeast, strategy.Surrender)
	add(hand.Hard, 15, 11, 1, AtLeast, strategy.Surrender)
	add(hand.Hard, 15, 10, 0, AtLeast, strategy.Surrender)

	return t
}

// Lookup returns the deviation rule for a (classification, playerTotal,
// dealerUpcard) triple, if one exists.
func (t *Table) Lookup(classification hand.Classification, playerTotal, dealerUpcard int) (Rule, bool) {
	r, ok := t.rules[key{classification, playerTotal, dealerUpcard}]
	return r, ok
}

// Situations returns every rule in the table, for callers (e.g. the
// deviation drill) that need to sample uniformly over the known index
// plays rather than look one up by key.
func (t *Table) Situations() []Rule {
	out := make([]Rule, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r)
	}
	return out
}

// InsuranceThreshold is the true-count threshold at which insurance is
// recommended (§4.5 item 3).
const InsuranceThreshold = 3.0

// InsuranceRecommended reports whether insurance should be taken at the
// given true count.
func InsuranceRecommended(trueCount float64) bool {
	return trueCount >= InsuranceThreshold
}

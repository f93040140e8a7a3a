package strategy

import "github.com/ckhausman/blackjack-engine/internal/hand"

// Hand17Rule selects which resolved chart variant to use.
type Hand17Rule int

const (
	Stands17 Hand17Rule = iota
	Hits17
)

// Key identifies a (playerTotal, dealerUpcard) cell; dealerUpcard
// represents an ace as 11 per §4.4.
type Key struct {
	PlayerTotal int
	DealerUpcard int
}

// Chart is a materialized, immutable basic-strategy table for one
// Hand17Rule variant. Charts are built once at process start from
// declarative data and may be shared across sessions (§5, §9).
type Chart struct {
	hard map[Key]Cell
	soft map[Key]Cell
	pair map[Key]Cell
}

var (
	s17Chart *Chart
	h17Chart *Chart
)

func init() {
	s17Chart = buildS17Chart()
	h17Chart = applyH17Deltas(buildS17Chart())
}

// New returns the immutable, pre-materialized chart for the requested
// dealer-hits/stands-on-soft-17 variant.
func New(variant Hand17Rule) *Chart {
	if variant == Hits17 {
		return h17Chart
	}
	return s17Chart
}

// ForRuleSet selects the chart matching the rule set's soft-17 rule.
func ForRuleSet(r RuleSet) *Chart {
	if r.DealerHitsSoft17 {
		return New(Hits17)
	}
	return New(Stands17)
}

// Recommend resolves the chart cell for a hand's classification against
// a dealer upcard (2..11, ace as 11) and a resolved Context.
func (c *Chart) Recommend(classification hand.Classification, playerTotal, dealerUpcard int, ctx Context) Action {
	key := Key{PlayerTotal: playerTotal, DealerUpcard: dealerUpcard}
	var table map[Key]Cell
	switch classification {
	case hand.Pair:
		table = c.pair
	case hand.Soft:
		table = c.soft
	default:
		table = c.hard
	}
	if cell, ok := table[key]; ok {
		return cell.Resolve(ctx)
	}
	return Hit
}

func forEachUpcard(f func(u int)) {
	for u := 2; u <= 11; u++ {
		f(u)
	}
}

func buildS17Chart() *Chart {
	c := &Chart{
		hard: make(map[Key]Cell),
		soft: make(map[Key]Cell),
		pair: make(map[Key]Cell),
	}
	c.buildHard()
	c.buildSoft()
	c.buildPairs()
	return c
}

func (c *Chart) buildHard() {
	for total := 5; total <= 8; total++ {
		forEachUpcard(func(u int) { c.hard[Key{total, u}] = Concrete(Hit) })
	}
	forEachUpcard(func(u int) {
		if u >= 3 && u <= 6 {
			c.hard[Key{9, u}] = DoubleOr(Hit)
		} else {
			c.hard[Key{9, u}] = Concrete(Hit)
		}
	})
	forEachUpcard(func(u int) {
		if u >= 2 && u <= 9 {
			c.hard[Key{10, u}] = DoubleOr(Hit)
		} else {
			c.hard[Key{10, u}] = Concrete(Hit)
		}
	})
	forEachUpcard(func(u int) {
		if u <= 10 {
			c.hard[Key{11, u}] = DoubleOr(Hit)
		} else {
			c.hard[Key{11, u}] = Concrete(Hit) // vs A: hit under S17, see H17 delta
		}
	})
	forEachUpcard(func(u int) {
		if u >= 4 && u <= 6 {
			c.hard[Key{12, u}] = Concrete(Stand)
		} else {
			c.hard[Key{12, u}] = Concrete(Hit)
		}
	})
	for total := 13; total <= 16; total++ {
		t := total
		forEachUpcard(func(u int) {
			if u >= 2 && u <= 6 {
				c.hard[Key{t, u}] = Concrete(Stand)
			} else {
				c.hard[Key{t, u}] = Concrete(Hit)
			}
		})
	}
	for total := 17; total <= 21; total++ {
		t := total
		forEachUpcard(func(u int) { c.hard[Key{t, u}] = Concrete(Stand) })
	}

	// Late surrender candidates under S17: hard 15 vs 10, hard 16 vs
	// 9/10/A. §4.4's H17 delta list adds 15 vs A and 17 vs A on top of
	// this base (applyH17Deltas).
	c.hard[Key{15, 10}] = SurrenderOr(Hit)
	c.hard[Key{16, 9}] = SurrenderOr(Hit)
	c.hard[Key{16, 10}] = SurrenderOr(Hit)
	c.hard[Key{16, 11}] = SurrenderOr(Hit)
}

func (c *Chart) buildSoft() {
	for _, total := range []int{13, 14} {
		t := total
		forEachUpcard(func(u int) {
			if u >= 5 && u <= 6 {
				c.soft[Key{t, u}] = DoubleOr(Hit)
			} else {
				c.soft[Key{t, u}] = Concrete(Hit)
			}
		})
	}
	for _, total := range []int{15, 16} {
		t := total
		forEachUpcard(func(u int) {
			if u >= 4 && u <= 6 {
				c.soft[Key{t, u}] = DoubleOr(Hit)
			} else {
				c.soft[Key{t, u}] = Concrete(Hit)
			}
		})
	}
	forEachUpcard(func(u int) {
		if u >= 3 && u <= 6 {
			c.soft[Key{17, u}] = DoubleOr(Hit)
		} else {
			c.soft[Key{17, u}] = Concrete(Hit)
		}
	})
	forEachUpcard(func(u int) {
		switch {
		// §4.4 notes A,7 vs 2 is already a double under S17 ("already
		// so" — the H17 delta list calls it out without changing it).
		case u == 2 || (u >= 3 && u <= 6):
			c.soft[Key{18, u}] = DoubleOr(Stand)
		case u == 7 || u == 8:
			c.soft[Key{18, u}] = Concrete(Stand)
		default: // 9, 10, A
			c.soft[Key{18, u}] = Concrete(Hit)
		}
	})
	for _, total := range []int{19, 20, 21} {
		t := total
		forEachUpcard(func(u int) { c.soft[Key{t, u}] = Concrete(Stand) })
	}
}

func (c *Chart) buildPairs() {
	forEachUpcard(func(u int) { c.pair[Key{11, u}] = Concrete(SplitAction) }) // A,A always split
	for _, pv := range []int{2, 3} {
		v := pv
		forEachUpcard(func(u int) {
			if u >= 2 && u <= 7 {
				c.pair[Key{v, u}] = SplitOr(Hit)
			} else {
				c.pair[Key{v, u}] = Concrete(Hit)
			}
		})
	}
	forEachUpcard(func(u int) {
		if u >= 5 && u <= 6 {
			c.pair[Key{4, u}] = SplitOr(Hit)
		} else {
			c.pair[Key{4, u}] = Concrete(Hit)
		}
	})
	// 5,5: never split, treated as hard 10.
	forEachUpcard(func(u int) {
		if u >= 2 && u <= 9 {
			c.pair[Key{5, u}] = DoubleOr(Hit)
		} else {
			c.pair[Key{5, u}] = Concrete(Hit)
		}
	})
	forEachUpcard(func(u int) {
		if u >= 2 && u <= 6 {
			c.pair[Key{6, u}] = SplitOr(Hit)
		} else {
			c.pair[Key{6, u}] = Concrete(Hit)
		}
	})
	forEachUpcard(func(u int) {
		if u >= 2 && u <= 7 {
			c.pair[Key{7, u}] = SplitOr(Hit)
		} else {
			c.pair[Key{7, u}] = Concrete(Hit)
		}
	})
	forEachUpcard(func(u int) { c.pair[Key{8, u}] = Concrete(SplitAction) }) // 8,8 always split
	forEachUpcard(func(u int) {
		if u == 7 || u == 10 || u == 11 {
			c.pair[Key{9, u}] = Concrete(Stand)
		} else {
			c.pair[Key{9, u}] = SplitOr(Stand)
		}
	})
	forEachUpcard(func(u int) { c.pair[Key{10, u}] = Concrete(Stand) }) // 10,10 never split
}

// applyH17Deltas clones base and overlays the H17-specific cells named
// in §4.4: A,8 vs 6 double, hard 11 vs A double, late surrender 15/17
// vs A.
func applyH17Deltas(base *Chart) *Chart {
	c := &Chart{
		hard: cloneCells(base.hard),
		soft: cloneCells(base.soft),
		pair: cloneCells(base.pair),
	}
	c.soft[Key{19, 6}] = DoubleOr(Stand) // A,8 vs 6 -> Ds
	c.hard[Key{11, 11}] = DoubleOr(Hit)  // hard 11 vs A -> double
	c.hard[Key{15, 11}] = SurrenderOr(Hit)
	c.hard[Key{17, 11}] = SurrenderOr(Stand)
	return c
}

func cloneCells(src map[Key]Cell) map[Key]Cell {
	out := make(map[Key]Cell, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

package strategy

// Action is a resolved, concrete basic-strategy recommendation.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	SplitAction
	Surrender
)

// String names the action.
func (a Action) String() string {
	switch a {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case SplitAction:
		return "P"
	case Surrender:
		return "R"
	default:
		return "?"
	}
}

// Cell is a strategy-table entry: either a concrete action, or a
// conditional action that falls back to Fallback when the context
// forbids it (§4.4: "conditional action... if permitted by rules and
// context, else the stated fallback").
type Cell struct {
	Action   Action
	Fallback Action
	// gate distinguishes which context flag gates the conditional:
	// 'D' for can_double, 'P' for can_split, 'R' for can_surrender. Zero
	// value means Action is unconditional.
	gate byte
}

// Concrete builds an unconditional cell.
func Concrete(a Action) Cell {
	return Cell{Action: a}
}

// DoubleOr builds a "double if allowed, else fallback" cell (Dh/Ds).
func DoubleOr(fallback Action) Cell {
	return Cell{Action: Double, Fallback: fallback, gate: 'D'}
}

// SplitOr builds a "split if allowed, else fallback" cell (Ph).
func SplitOr(fallback Action) Cell {
	return Cell{Action: SplitAction, Fallback: fallback, gate: 'P'}
}

// SurrenderOr builds a "surrender if allowed, else fallback" cell (Rh/Rs).
func SurrenderOr(fallback Action) Cell {
	return Cell{Action: Surrender, Fallback: fallback, gate: 'R'}
}

// Context carries the rule/hand-derived flags a conditional cell
// resolves against.
type Context struct {
	CanDouble    bool
	CanSplit     bool
	CanSurrender bool
}

// Resolve returns the cell's effective action given ctx.
func (c Cell) Resolve(ctx Context) Action {
	switch c.gate {
	case 'D':
		if ctx.CanDouble {
			return Double
		}
		return c.Fallback
	case 'P':
		if ctx.CanSplit {
			return SplitAction
		}
		return c.Fallback
	case 'R':
		if ctx.CanSurrender {
			return Surrender
		}
		return c.Fallback
	default:
		return c.Action
	}
}

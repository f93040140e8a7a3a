package training

import (
	"math/rand"
	"time"

	"github.com/ckhausman/blackjack-engine/internal/clock"
	"github.com/ckhausman/blackjack-engine/internal/counting"
	"github.com/ckhausman/blackjack-engine/internal/deck"
)

// SpeedDrill times how long a player takes to count a dealt sequence,
// scoring both accuracy and speed.
type SpeedDrill struct {
	clk     clock.Clock
	started time.Time
	cards   []deck.Card
	answer  int
}

// NewSpeedDrill deals numCards cards via CountingDrill and starts the
// clock immediately.
func NewSpeedDrill(clk clock.Clock, numCards int, system counting.System, rng *rand.Rand) *SpeedDrill {
	cards, expected := CountingDrill(numCards, system, rng)
	return &SpeedDrill{clk: clk, started: clk.Now(), cards: cards, answer: expected}
}

// Cards returns the dealt sequence.
func (d *SpeedDrill) Cards() []deck.Card { return d.cards }

// Submit stops the clock and scores a player's guessed running count.
func (d *SpeedDrill) Submit(guess int) (correct bool, elapsed time.Duration, points int) {
	elapsed = d.clk.Now().Sub(d.started)
	correct = guess == d.answer
	points = Score(correct, elapsed, len(d.cards))
	return correct, elapsed, points
}

// Score rewards speed only when the count was right: a flat per-card base
// score, plus a time bonus that decays piecewise as elapsed time grows,
// zeroed out entirely on a wrong answer.
func Score(correct bool, elapsed time.Duration, n int) int {
	if !correct {
		return 0
	}
	base := 10 * n
	seconds := elapsed.Seconds()
	var bonus int
	switch {
	case seconds <= 2:
		bonus = 50
	case seconds <= 5:
		bonus = 25
	case seconds <= 10:
		bonus = 10
	default:
		bonus = 0
	}
	return base + bonus
}

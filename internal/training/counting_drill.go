package training

import (
	"math/rand"

	"github.com/ckhausman/blackjack-engine/internal/counting"
	"github.com/ckhausman/blackjack-engine/internal/deck"
)

// CountingDrill deals numCards random cards and returns them alongside
// the running-count delta a perfect count of system would report for
// exactly those cards (the drill's answer key). Cards are dealt with
// replacement from a full 52-card distribution — the drill is a flash-
// card exercise, not a depleting shoe.
func CountingDrill(numCards int, system counting.System, rng *rand.Rand) ([]deck.Card, int) {
	cards := make([]deck.Card, numCards)
	expected := 0
	for i := range cards {
		r := deck.AllRanks[rng.Intn(len(deck.AllRanks))]
		s := deck.AllSuits[rng.Intn(len(deck.AllSuits))]
		cards[i] = deck.NewCard(r, s)
		expected += system.Tag(r)
	}
	return cards, expected
}

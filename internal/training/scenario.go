// Package training implements the drill oracles used to quiz a player on
// card counting, basic strategy, and index plays, checking their answers
// against the engine's own strategy/deviation/counting packages.
package training

import (
	"math/rand"

	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
)

// Scenario is one synthesized practice hand: a classification, the
// concrete cards dealt to reach it, the resulting total, and the dealer's
// upcard to react to.
type Scenario struct {
	Classification hand.Classification
	PlayerCards    []deck.Card
	PlayerTotal    int
	DealerUpcard   deck.Rank
}

// generateHandCards synthesizes a minimal card combination that totals to
// playerTotal under the given classification, ported from the reference
// trainer's card-synthesis algorithm (pairs: two equal cards; soft: ace
// plus the complement; hard: two cards when possible, else a longer chain
// built up without busting).
func generateHandCards(rng *rand.Rand, classification hand.Classification, playerTotal int) []deck.Card {
	switch classification {
	case hand.Pair:
		r := pairRankForTotal(playerTotal)
		return []deck.Card{deck.NewCard(r, deck.Spades), deck.NewCard(r, deck.Hearts)}
	case hand.Soft:
		other := playerTotal - 11
		return []deck.Card{deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(rankForValue(other), deck.Hearts)}
	default:
		return generateHardCards(rng, playerTotal)
	}
}

func pairRankForTotal(playerTotal int) deck.Rank {
	half := playerTotal / 2
	if half == 1 {
		return deck.Ace
	}
	return rankForValue(half)
}

func rankForValue(v int) deck.Rank {
	switch {
	case v == 1:
		return deck.Ace
	case v >= 10:
		return deck.Ten
	default:
		return deck.Rank(v + int(deck.Two) - 2)
	}
}

func generateHardCards(rng *rand.Rand, playerTotal int) []deck.Card {
	if playerTotal <= 11 {
		first := 2
		if playerTotal > 4 {
			first += rng.Intn(playerTotal - 3)
		}
		return []deck.Card{deck.NewCard(rankForValue(first), deck.Spades), deck.NewCard(rankForValue(playerTotal-first), deck.Hearts)}
	}
	first := 2 + rng.Intn(min(9, playerTotal-2))
	second := playerTotal - first
	if second >= 2 && second <= 10 {
		return []deck.Card{deck.NewCard(rankForValue(first), deck.Spades), deck.NewCard(rankForValue(second), deck.Hearts)}
	}

	// second is out of single-card range; build a longer chain that
	// never exceeds playerTotal.
	cards := []deck.Card{deck.NewCard(rankForValue(first), deck.Spades)}
	remaining := playerTotal - first
	for remaining > 10 {
		maxCard := min(10, remaining-2)
		if maxCard < 2 {
			break
		}
		card := 2 + rng.Intn(maxCard-1)
		cards = append(cards, deck.NewCard(rankForValue(card), deck.Hearts))
		remaining -= card
	}
	if remaining >= 2 {
		cards = append(cards, deck.NewCard(rankForValue(remaining), deck.Clubs))
	}
	return cards
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// StrategyDrill synthesizes a random strategy-practice scenario: an even
// mix of hard, soft, and pair hands against a random dealer upcard.
func StrategyDrill(rng *rand.Rand) Scenario {
	classification := hand.Classification(rng.Intn(3))
	var total int
	switch classification {
	case hand.Pair:
		total = 2 * (2 + rng.Intn(9)) // pairs of 2..10, plus ace-pair below
		if rng.Intn(10) == 0 {
			total = 2
		}
	case hand.Soft:
		total = 13 + rng.Intn(8) // soft 13..20 (A,2..A,9)
	default:
		total = 5 + rng.Intn(17) // hard 5..21
	}
	upcard := deck.AllRanks[rng.Intn(len(deck.AllRanks))]
	return Scenario{
		Classification: classification,
		PlayerCards:    generateHandCards(rng, classification, total),
		PlayerTotal:    total,
		DealerUpcard:   upcard,
	}
}

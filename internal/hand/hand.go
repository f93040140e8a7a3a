// Package hand implements blackjack hand evaluation: totals, soft/hard
// classification, pairs, busts, and naturals.
package hand

import "github.com/ckhausman/blackjack-engine/internal/deck"

// Hand is an ordered sequence of cards belonging to one seat (player or
// dealer). A split produces two child hands from one parent.
type Hand struct {
	Cards       []deck.Card
	Bet         int64
	Doubled     bool
	FromSplit   bool
	Surrendered bool
}

// New constructs an empty hand with the given bet.
func New(bet int64) *Hand {
	return &Hand{Bet: bet}
}

// AddCard appends a card to the hand.
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// hardTotal sums the hand counting every ace as 1.
func (h *Hand) hardTotal() int {
	total := 0
	for _, c := range h.Cards {
		total += c.Rank.BlackjackValue()
	}
	return total
}

func (h *Hand) numAces() int {
	n := 0
	for _, c := range h.Cards {
		if c.IsAce() {
			n++
		}
	}
	return n
}

// Total returns the best total: aces promoted from 1 to 11 one at a time
// while the running sum stays at or below 21, otherwise the hard total.
func (h *Hand) Total() int {
	total := h.hardTotal()
	aces := h.numAces()
	for i := 0; i < aces && total+10 <= 21; i++ {
		total += 10
	}
	return total
}

// IsSoft reports whether the best total counts at least one ace as 11.
func (h *Hand) IsSoft() bool {
	total := h.hardTotal()
	aces := h.numAces()
	promoted := 0
	for i := 0; i < aces && total+10 <= 21; i++ {
		total += 10
		promoted++
	}
	return promoted > 0
}

// IsPair reports whether the hand is exactly two cards of equal
// blackjack value (two different ten-value cards count as a pair for
// splitting purposes).
func (h *Hand) IsPair() bool {
	if len(h.Cards) != 2 {
		return false
	}
	return h.Cards[0].Rank.BlackjackValue() == h.Cards[1].Rank.BlackjackValue()
}

// IsBust reports whether the hand's best total exceeds 21. Since Total
// only ever promotes aces upward, a hard total over 21 always yields the
// same bust total (no promotion can help), so comparing Total alone
// suffices.
func (h *Hand) IsBust() bool {
	return h.Total() > 21
}

// IsNatural reports a two-card 21 that did not come from a split.
func (h *Hand) IsNatural() bool {
	return len(h.Cards) == 2 && h.Total() == 21 && !h.FromSplit
}

// PairValue returns the shared blackjack value of a two-card pair hand
// (K,Q both collapse to 10); callers must check IsPair first.
func (h *Hand) PairValue() int {
	return h.Cards[0].Rank.BlackjackValue()
}

// PairRankValue returns the pair's strategy-table key value: aces report
// 11 (matching the dealer-upcard convention in §4.4), tens/faces collapse
// to 10, everything else is its face value. Callers must check IsPair
// first.
func (h *Hand) PairRankValue() int {
	if h.Cards[0].Rank == deck.Ace {
		return 11
	}
	return h.Cards[0].Rank.BlackjackValue()
}

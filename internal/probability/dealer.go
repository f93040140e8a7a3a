package probability

import "github.com/ckhausman/blackjack-engine/internal/deck"

// handState tracks a dealer hand as it is built out during recursion:
// every ace counted as 1 (hardTotal) plus how many aces are still
// available for promotion, mirroring hand.Hand's own total algorithm
// without needing a []Card slice at every step.
type handState struct {
	hardTotal int
	aces      int
}

func (hs handState) bestTotal() (total int, soft bool) {
	total = hs.hardTotal
	for i := 0; i < hs.aces && total+10 <= 21; i++ {
		total += 10
		soft = true
	}
	return total, soft
}

func (hs handState) draw(r deck.Rank) handState {
	out := hs
	if r == deck.Ace {
		out.hardTotal++
		out.aces++
	} else {
		out.hardTotal += r.BlackjackValue()
	}
	return out
}

type dealerMemoKey struct {
	hs   handState
	comp deck.RankCounts
}

// DealerDistribution computes the exact probability-weighted distribution
// of the dealer's final total by recursive enumeration over composition,
// starting from the dealer's face-up card (§4.6). composition must already
// exclude the upcard and any cards visible in the player's hand(s).
func DealerDistribution(upcard deck.Rank, composition deck.RankCounts, hitsSoft17 bool) Distribution {
	memo := make(map[dealerMemoKey]Distribution)
	start := handState{}.draw(upcard)
	return dealerRecurse(start, composition, hitsSoft17, memo)
}

func dealerRecurse(hs handState, comp deck.RankCounts, hitsSoft17 bool, memo map[dealerMemoKey]Distribution) Distribution {
	total, soft := hs.bestTotal()
	if total > 21 {
		return singleOutcome(DealerBust)
	}
	mustHit := total < 17 || (total == 17 && soft && hitsSoft17)
	if !mustHit {
		return singleOutcome(outcomeForTotal(total))
	}

	key := dealerMemoKey{hs: hs, comp: comp}
	if d, ok := memo[key]; ok {
		return d
	}

	remaining := comp.Total()
	if remaining == 0 {
		// Degenerate (fully depleted) composition: resolve on what we
		// have rather than divide by zero.
		return singleOutcome(outcomeForTotal(total))
	}

	var result Distribution
	for _, r := range deck.AllRanks {
		count := comp.Count(r)
		if count == 0 {
			continue
		}
		p := float64(count) / float64(remaining)
		sub := dealerRecurse(hs.draw(r), comp.Remove(r), hitsSoft17, memo)
		result = result.Add(sub.Scale(p))
	}
	memo[key] = result
	return result
}

// InfiniteDeckTable returns the dealer-outcome distribution under an
// approximation of an infinite deck for the given upcard: the same exact
// recursion as DealerDistribution, card removal included, run over a
// 1000-deck composition so per-rank density barely moves.
func InfiniteDeckTable(upcard deck.Rank, hitsSoft17 bool) Distribution {
	return DealerDistribution(upcard, infiniteDeckComposition(), hitsSoft17)
}

// infiniteDeckComposition returns a large, evenly-weighted composition
// standing in for an unlimited shoe. 1000 decks of headroom is enough
// that per-rank density never meaningfully shifts over any realistic
// dealer draw-out depth, while keeping recursion bounded.
func infiniteDeckComposition() deck.RankCounts {
	return deck.NewRankCounts(1000)
}

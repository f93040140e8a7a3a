package probability

import (
	"math"

	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// standEV returns the player's expected return (in units of the original
// bet) from standing at playerTotal against the given dealer distribution.
// A player total over 21 always loses regardless of the dealer's hand.
func standEV(playerTotal int, dist Distribution) float64 {
	if playerTotal > 21 {
		return -1
	}
	var ev float64
	ev += dist.PBust() * 1
	for o := Dealer17; o <= Dealer21; o++ {
		dealerTotal := 17 + int(o)
		switch {
		case dealerTotal > playerTotal:
			ev += dist[o] * -1
		case dealerTotal < playerTotal:
			ev += dist[o] * 1
		default:
			ev += dist[o] * 0
		}
	}
	return ev
}

// hitEV recursively computes the expected value of taking exactly one
// more card and then playing optimally (stand-or-hit) to resolution,
// given the remaining composition.
func hitEV(playerHand *hand.Hand, comp deck.RankCounts, dealerDist Distribution, depth int) float64 {
	total := comp.Total()
	if total == 0 || depth > 10 {
		return standEV(playerHand.Total(), dealerDist)
	}
	var ev float64
	for _, r := range deck.AllRanks {
		count := comp.Count(r)
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		next := &hand.Hand{Cards: append(append([]deck.Card{}, playerHand.Cards...), deck.NewCard(r, deck.Spades))}
		if next.IsBust() {
			ev += p * -1
			continue
		}
		stand := standEV(next.Total(), dealerDist)
		hit := hitEV(next, comp.Remove(r), dealerDist, depth+1)
		ev += p * math.Max(stand, hit)
	}
	return ev
}

// ActionEV returns the expected value, in units of the original bet, of
// taking the given action with playerHand against dealerUpcard and the
// remaining shoe composition (§4.6). Double and split values already
// account for the doubled/split wager scale.
func ActionEV(action strategy.Action, playerHand *hand.Hand, dealerUpcard deck.Rank, composition deck.RankCounts, rules strategy.RuleSet) float64 {
	dealerDist := DealerDistribution(dealerUpcard, composition, rules.DealerHitsSoft17)
	return actionEVWithDist(action, playerHand, dealerUpcard, composition, rules, dealerDist)
}

// actionEVWithDist is ActionEV with the dealer distribution already
// computed, letting callers that evaluate multiple actions against the
// same upcard (e.g. a best-of sweep) avoid recomputing it per action.
func actionEVWithDist(action strategy.Action, playerHand *hand.Hand, dealerUpcard deck.Rank, composition deck.RankCounts, rules strategy.RuleSet, dealerDist Distribution) float64 {
	switch action {
	case strategy.Stand:
		return standEV(playerHand.Total(), dealerDist)
	case strategy.Hit:
		return hitEV(playerHand, composition, dealerDist, 0)
	case strategy.Double:
		return 2 * oneCardEV(playerHand, composition, dealerDist)
	case strategy.Surrender:
		return -0.5
	case strategy.SplitAction:
		return splitEV(playerHand, composition, dealerUpcard, rules)
	default:
		return 0
	}
}

// oneCardEV values the hand after exactly one forced card (the double-down
// draw), standing on whatever results.
func oneCardEV(playerHand *hand.Hand, comp deck.RankCounts, dealerDist Distribution) float64 {
	total := comp.Total()
	if total == 0 {
		return standEV(playerHand.Total(), dealerDist)
	}
	var ev float64
	for _, r := range deck.AllRanks {
		count := comp.Count(r)
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		next := &hand.Hand{Cards: append(append([]deck.Card{}, playerHand.Cards...), deck.NewCard(r, deck.Spades))}
		if next.IsBust() {
			ev += p * -1
			continue
		}
		ev += p * standEV(next.Total(), dealerDist)
	}
	return ev
}

// splitEV approximates the value of splitting a pair: each resulting hand
// draws one card and is then played to the better of stand/hit, the two
// hands' values summed (one original bet unit staked on each). Split aces
// stand on their one card unless rules.HitSplitAces; resplits are not
// modelled.
func splitEV(playerHand *hand.Hand, comp deck.RankCounts, dealerUpcard deck.Rank, rules strategy.RuleSet) float64 {
	dealerDist := DealerDistribution(dealerUpcard, comp, rules.DealerHitsSoft17)
	rank := playerHand.Cards[0].Rank
	isAceSplit := rank == deck.Ace

	total := comp.Total()
	if total == 0 {
		return 0
	}
	var perHandEV float64
	for _, r := range deck.AllRanks {
		count := comp.Count(r)
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		resultHand := &hand.Hand{Cards: []deck.Card{{Rank: rank}, deck.NewCard(r, deck.Spades)}, FromSplit: true}
		nextComp := comp.Remove(r)
		if isAceSplit && !rules.HitSplitAces {
			perHandEV += p * standEV(resultHand.Total(), dealerDist)
			continue
		}
		stand := standEV(resultHand.Total(), dealerDist)
		hit := hitEV(resultHand, nextComp, dealerDist, 0)
		perHandEV += p * math.Max(stand, hit)
	}
	return 2 * perHandEV
}

// HouseEdge returns the house's expected advantage (positive favors the
// house) for the given rule set, computed as minus the player's
// pre-deviation expected value over a representative hand/upcard sweep at
// true count zero (§4.6: "computed, never hand-entered").
func HouseEdge(rules strategy.RuleSet) float64 {
	comp := deck.NewRankCounts(rules.NumDecks)
	var totalEV float64
	var n int
	baseActions := []strategy.Action{strategy.Stand, strategy.Hit, strategy.Double}
	// Sweep the 13x13 starting-card grid (paired and unpaired) against
	// every upcard, mirroring the range-grid shape used elsewhere in the
	// engine's EV sweeps rather than pairs alone. Split and surrender
	// are added to the per-hand action set (gated on the hand actually
	// being a pair, and on the rule set allowing surrender at all) so the
	// best-action sweep matches what basic strategy can actually play,
	// rather than silently overstating the house's edge.
	for _, upcard := range deck.AllRanks {
		dealerDist := DealerDistribution(upcard, comp, rules.DealerHitsSoft17)
		for _, c1 := range deck.AllRanks {
			for _, c2 := range deck.AllRanks {
				h := &hand.Hand{Cards: []deck.Card{deck.NewCard(c1, deck.Spades), deck.NewCard(c2, deck.Hearts)}}
				if h.IsNatural() {
					// A natural pays the blackjack ratio unless the dealer also has one.
					hole := 0
					if upcard == deck.Ace {
						hole = comp.Count(deck.Ten) + comp.Count(deck.Jack) + comp.Count(deck.Queen) + comp.Count(deck.King)
					} else if upcard.BlackjackValue() == 10 {
						hole = comp.Count(deck.Ace)
					}
					ratio := float64(rules.BlackjackPayout.Numerator()) / float64(rules.BlackjackPayout.Denominator())
					totalEV += ratio * (1 - float64(hole)/float64(comp.Total()))
					n++
					continue
				}
				actions := baseActions
				if rules.SurrenderAllowed != strategy.SurrenderNone {
					actions = append(append([]strategy.Action{}, actions...), strategy.Surrender)
				}
				if h.IsPair() {
					actions = append(append([]strategy.Action{}, actions...), strategy.SplitAction)
				}
				best := math.Inf(-1)
				for _, a := range actions {
					if ev := actionEVWithDist(a, h, upcard, comp, rules, dealerDist); ev > best {
						best = ev
					}
				}
				totalEV += best
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return -(totalEV / float64(n))
}

// Kelly returns the recommended bet size (in the bankroll's integer unit,
// e.g. cents) under a fractional-Kelly criterion: fraction *
// (edge/variance) * bankroll (§4.6 scenario 8).
func Kelly(edge, variance float64, bankroll int64, fraction float64) int64 {
	if variance <= 0 {
		return 0
	}
	f := fraction * (edge / variance)
	if f < 0 {
		f = 0
	}
	return int64(f * float64(bankroll))
}

// RiskOfRuin estimates the probability of losing the entire bankroll
// (measured in betting units) with no stopping goal, under the classical
// exponential gambler's-ruin approximation for a positive-edge game
// (§4.6). bankrollUnits is expressed as a count of base betting units.
func RiskOfRuin(edge, variance float64, bankrollUnits float64) float64 {
	if edge <= 0 {
		return 1
	}
	if bankrollUnits <= 0 {
		return 1
	}
	// Exponential approximation: exp(-2 * edge * bankroll / variance).
	return math.Exp(-2 * edge * bankrollUnits / variance)
}

// BetSpread maps a true count to a bet size in betting units, linearly
// ramping between minUnits at tc<=0 and maxUnits at tc>=spreadTop, per the
// flat-bet-below-zero convention counters use (§4.6).
func BetSpread(trueCount float64, minUnits, maxUnits int64, spreadTop float64) int64 {
	if trueCount <= 0 {
		return minUnits
	}
	if trueCount >= spreadTop {
		return maxUnits
	}
	span := float64(maxUnits - minUnits)
	return minUnits + int64(span*trueCount/spreadTop)
}

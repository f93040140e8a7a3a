package game

import (
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// HandSettlement is the resolved outcome of one player hand at the end of
// a round: Payout is the net change to the bankroll (negative for a loss)
// in cents, not the gross amount returned.
type HandSettlement struct {
	HandIdx int
	Outcome string
	Payout  int64
}

// settleRound resolves every player hand against the dealer's final hand
// and applies the net payouts to the bankroll, all in integer cents.
func (s *Session) settleRound(events []Event) ([]Event, *EngineError) {
	dealerNatural := s.dealerHand.IsNatural()

	if len(s.dealerHand.Cards) >= 2 {
		events = append(events, CardRevealedEvent{baseEvent: newEvent(EventCardRevealed), Seat: "dealer", RankName: s.dealerHand.Cards[1].Rank.String()})
	}
	if dealerNatural {
		events = append(events, DealerBlackjackEvent{baseEvent: newEvent(EventDealerBlackjack)})
	}
	if s.dealerHand.IsBust() {
		events = append(events, BustEvent{baseEvent: newEvent(EventBust), Seat: "dealer"})
	}

	settlements := make([]HandSettlement, len(s.playerHands))
	for i, h := range s.playerHands {
		if h.IsNatural() {
			events = append(events, PlayerBlackjackEvent{baseEvent: newEvent(EventPlayerBlackjack), HandIdx: i})
		}
		if h.IsBust() {
			events = append(events, BustEvent{baseEvent: newEvent(EventBust), Seat: "player", HandIdx: i})
		}
		outcome, payout := settleHand(h, s.dealerHand, dealerNatural, s.rules)
		settlements[i] = HandSettlement{HandIdx: i, Outcome: outcome, Payout: payout}
		s.adjustBankroll(payout, &events)
	}

	events = append(events, RoundEndedEvent{
		baseEvent:   newEvent(EventRoundEnded),
		HandID:      s.handID,
		Settlements: settlements,
		BankrollEnd: s.bankroll,
	})

	if s.bankroll <= 0 {
		s.state = GameOver
	} else {
		s.state = RoundSettlement
	}
	return events, nil
}

// settleHand returns the outcome label and net bankroll delta (cents) for
// one player hand against the dealer's final hand.
func settleHand(h *hand.Hand, dealerHand *hand.Hand, dealerNatural bool, rules strategy.RuleSet) (string, int64) {
	if h.Surrendered {
		return "surrender", -h.Bet / 2
	}
	if h.IsBust() {
		return "bust", -h.Bet
	}
	playerNatural := h.IsNatural()
	if playerNatural && dealerNatural {
		return "push", 0
	}
	if playerNatural {
		payout := h.Bet * rules.BlackjackPayout.Numerator() / rules.BlackjackPayout.Denominator()
		return "blackjack", payout
	}
	if dealerNatural {
		return "loss", -h.Bet
	}
	if dealerHand.IsBust() {
		return "win", h.Bet
	}
	playerTotal, dealerTotal := h.Total(), dealerHand.Total()
	switch {
	case playerTotal > dealerTotal:
		return "win", h.Bet
	case playerTotal < dealerTotal:
		return "loss", -h.Bet
	default:
		return "push", 0
	}
}

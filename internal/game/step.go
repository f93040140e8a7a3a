package game

import (
	"github.com/google/uuid"

	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
)

// Step is the single dispatch point for every state transition: it
// validates cmd against the current state, and either returns a
// ValidationError with the session left unmodified, or applies the
// command and returns the events it produced.
func (s *Session) Step(cmd Command) ([]Event, *EngineError) {
	if cmd.Kind == CmdResetGame {
		return s.publishAll(s.resetGame()), nil
	}

	var events []Event
	var err *EngineError
	switch s.state {
	case WaitingForBet:
		events, err = s.stepWaitingForBet(cmd)
	case WaitingForInsurance:
		events, err = s.stepWaitingForInsurance(cmd)
	case PlayerTurn:
		events, err = s.stepPlayerTurn(cmd)
	case RoundSettlement, GameOver:
		events, err = s.stepAfterRound(cmd)
	default:
		return nil, newInvariantViolation("step called in unreachable state " + s.state.String())
	}
	if err != nil {
		if err.Kind() == ShoeExhaustedError {
			pushed, pushErr := s.settleAsShoeExhaustedPush(err.Error())
			if pushErr != nil {
				return nil, pushErr
			}
			return s.publishAll(pushed), nil
		}
		return nil, err
	}
	s.logger.Debug("step", "command", cmd.Kind.String(), "state", s.state.String(), "events", len(events))
	return s.publishAll(events), nil
}

// settleAsShoeExhaustedPush forces the in-progress round to a push
// settlement and emits a diagnostic event, rather than surfacing a raw
// ShoeExhausted error to the caller mid-round.
func (s *Session) settleAsShoeExhaustedPush(message string) ([]Event, *EngineError) {
	events := []Event{ShoeExhaustedEvent{baseEvent: newEvent(EventShoeExhausted), Message: message}}

	settlements := make([]HandSettlement, len(s.playerHands))
	for i := range s.playerHands {
		settlements[i] = HandSettlement{HandIdx: i, Outcome: "push", Payout: 0}
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

func (s *Session) stepWaitingForBet(cmd Command) ([]Event, *EngineError) {
	if cmd.Kind != CmdPlaceBet {
		return nil, newValidationError("expected PLACE_BET in " + s.state.String())
	}
	if cmd.BetAmount <= 0 {
		return nil, newValidationError("bet amount must be positive")
	}
	if cmd.BetAmount > s.bankroll {
		return nil, newValidationError("bet exceeds bankroll")
	}

	if s.shoe.NeedsShuffle() {
		s.shoe.Reshuffle()
	}

	s.handID = uuid.NewString()
	s.pendingBet = cmd.BetAmount
	s.insuranceBet = 0
	s.insuranceTaken = false
	s.splitCount = 0
	s.playerHands = []*hand.Hand{hand.New(cmd.BetAmount)}
	s.currentHandIdx = 0
	s.dealerHand = hand.New(0)

	var events []Event
	events = append(events, RoundStartedEvent{baseEvent: newEvent(EventRoundStarted), HandID: s.handID, Bet: cmd.BetAmount})

	// Standard two-round dealing order: player, dealer, player, dealer.
	for i := 0; i < 2; i++ {
		pc, err := s.dealCard()
		if err != nil {
			return nil, err
		}
		s.playerHands[0].AddCard(pc)
		events = append(events, cardDealtEvent("player", 0, pc))

		dc, err := s.dealCard()
		if err != nil {
			return nil, err
		}
		s.dealerHand.AddCard(dc)
		events = append(events, cardDealtEvent("dealer", 0, dc))
	}

	upcard := s.dealerHand.Cards[0].Rank
	if upcard == deck.Ace {
		s.state = WaitingForInsurance
		events = append(events, InsuranceOfferedEvent{baseEvent: newEvent(EventInsuranceOffered)})
		return events, nil
	}
	return s.concludeDealOrAdvance(events)
}

func (s *Session) stepWaitingForInsurance(cmd Command) ([]Event, *EngineError) {
	if cmd.Kind != CmdInsurance {
		return nil, newValidationError("expected INSURANCE in " + s.state.String())
	}
	var events []Event
	if cmd.TakeInsurance {
		s.insuranceBet = s.pendingBet / 2
		s.insuranceTaken = true
		events = append(events, InsuranceTakenEvent{baseEvent: newEvent(EventInsuranceTaken), Amount: s.insuranceBet})
	}
	return s.concludeDealOrAdvance(events)
}

// concludeDealOrAdvance checks for naturals (including a dealer natural
// revealed only after insurance is resolved) and either settles the round
// immediately or moves to PlayerTurn. Insurance is always settled here
// (it is, by definition, a side bet on a peek at the hole card), but
// whether a dealer ten/ace-up natural is allowed to end the round before
// the player acts is gated on DealerPeeksOnTenOrAce: American peek rules
// check and settle immediately, European no-hole-card rules defer the
// dealer's natural to settleRound once the player's hand is done.
func (s *Session) concludeDealOrAdvance(events []Event) ([]Event, *EngineError) {
	dealerNatural := s.dealerHand.IsNatural()

	if s.insuranceTaken {
		payout := int64(0)
		if dealerNatural {
			payout = s.insuranceBet * 2
		}
		events = append(events, InsuranceSettledEvent{baseEvent: newEvent(EventInsuranceSettled), Won: dealerNatural, Payout: payout})
		delta := -s.insuranceBet
		if dealerNatural {
			delta = payout
		}
		s.adjustBankroll(delta, &events)
	}

	if !s.rules.DealerPeeksOnTenOrAce {
		s.state = PlayerTurn
		return events, nil
	}

	playerNatural := s.playerHands[0].IsNatural()
	if dealerNatural || playerNatural {
		s.state = RoundSettlement
		return s.settleRound(events)
	}

	s.state = PlayerTurn
	return events, nil
}

func (s *Session) stepPlayerTurn(cmd Command) ([]Event, *EngineError) {
	h := s.CurrentHand()
	if h == nil {
		return nil, newInvariantViolation("no current hand in PLAYER_TURN")
	}
	avail := s.availableActionsForHand(h)

	switch cmd.Kind {
	case CmdHit:
		if !avail[CmdHit] {
			return nil, newValidationError("hit not available")
		}
		return s.applyHit(h)
	case CmdStand:
		if !avail[CmdStand] {
			return nil, newValidationError("stand not available")
		}
		return s.advanceAfterHandDone(nil)
	case CmdDouble:
		if !avail[CmdDouble] {
			return nil, newValidationError("double not available")
		}
		return s.applyDouble(h)
	case CmdSplit:
		if !avail[CmdSplit] {
			return nil, newValidationError("split not available")
		}
		return s.applySplit(h)
	case CmdSurrender:
		if !avail[CmdSurrender] {
			return nil, newValidationError("surrender not available")
		}
		h.Surrendered = true
		events := []Event{SurrenderedEvent{baseEvent: newEvent(EventSurrendered), HandIdx: s.currentHandIdx}}
		return s.advanceAfterHandDone(events)
	default:
		return nil, newValidationError("unexpected command in PLAYER_TURN")
	}
}

func (s *Session) applyHit(h *hand.Hand) ([]Event, *EngineError) {
	c, err := s.dealCard()
	if err != nil {
		return nil, err
	}
	h.AddCard(c)
	events := []Event{cardDealtEvent("player", s.currentHandIdx, c), PlayerActedEvent{baseEvent: newEvent(EventPlayerActed), HandIdx: s.currentHandIdx, Action: "HIT"}}
	if h.IsBust() {
		return s.advanceAfterHandDone(events)
	}
	return events, nil
}

func (s *Session) applyDouble(h *hand.Hand) ([]Event, *EngineError) {
	if s.pendingBet > s.bankroll {
		return nil, newValidationError("insufficient bankroll to double")
	}
	h.Bet *= 2
	h.Doubled = true
	c, err := s.dealCard()
	if err != nil {
		return nil, err
	}
	h.AddCard(c)
	events := []Event{
		cardDealtEvent("player", s.currentHandIdx, c),
		PlayerActedEvent{baseEvent: newEvent(EventPlayerActed), HandIdx: s.currentHandIdx, Action: "DOUBLE"},
		DoubledEvent{baseEvent: newEvent(EventDoubled), HandIdx: s.currentHandIdx},
	}
	return s.advanceAfterHandDone(events)
}

func (s *Session) applySplit(h *hand.Hand) ([]Event, *EngineError) {
	if s.pendingBet > s.bankroll {
		return nil, newValidationError("insufficient bankroll to split")
	}
	rank := h.Cards[0].Rank
	other := h.Cards[1]

	left := hand.New(h.Bet)
	left.FromSplit = true
	left.AddCard(deck.Card{Rank: rank, Suit: h.Cards[0].Suit})

	right := hand.New(h.Bet)
	right.FromSplit = true
	right.AddCard(other)

	s.playerHands[s.currentHandIdx] = left
	s.playerHands = append(s.playerHands[:s.currentHandIdx+1], append([]*hand.Hand{right}, s.playerHands[s.currentHandIdx+1:]...)...)
	s.splitCount++

	var events []Event
	events = append(events, HandSplitEvent{baseEvent: newEvent(EventHandSplit), FromHandIdx: s.currentHandIdx, NewHandIdx: s.currentHandIdx + 1})

	for i, child := range []*hand.Hand{left, right} {
		c, err := s.dealCard()
		if err != nil {
			return nil, err
		}
		child.AddCard(c)
		events = append(events, cardDealtEvent("player", s.currentHandIdx+i, c))
	}

	isAceSplit := rank == deck.Ace
	if isAceSplit && !s.rules.HitSplitAces {
		// Both resulting hands are forced to stand immediately.
		return s.advanceAfterHandDone(events)
	}
	return events, nil
}

// advanceAfterHandDone moves to the next not-yet-resolved player hand, or
// to dealer play once all hands are resolved.
func (s *Session) advanceAfterHandDone(events []Event) ([]Event, *EngineError) {
	s.currentHandIdx++
	if s.currentHandIdx < len(s.playerHands) {
		h := s.playerHands[s.currentHandIdx]
		isAceSplit := h.FromSplit && h.Cards[0].Rank == deck.Ace
		if isAceSplit && !s.rules.HitSplitAces {
			return s.advanceAfterHandDone(events)
		}
		return events, nil
	}
	return s.playDealerHand(events)
}

// playDealerHand runs the dealer's hand to completion per the rule set,
// then settles the round. When every player hand has busted or
// surrendered the dealer draws no further cards; the hole card is still
// revealed when settleRound runs.
func (s *Session) playDealerHand(events []Event) ([]Event, *EngineError) {
	s.state = DealerTurn
	allBust := true
	for _, h := range s.playerHands {
		if !h.IsBust() && !h.Surrendered {
			allBust = false
			break
		}
	}
	if !allBust {
		for {
			total, soft := s.dealerHand.Total(), s.dealerHand.IsSoft()
			mustHit := total < 17 || (total == 17 && soft && s.rules.DealerHitsSoft17)
			if !mustHit {
				break
			}
			c, err := s.dealCard()
			if err != nil {
				return nil, err
			}
			s.dealerHand.AddCard(c)
			events = append(events, cardDealtEvent("dealer", 0, c))
		}
	}
	s.state = RoundSettlement
	return s.settleRound(events)
}

func (s *Session) stepAfterRound(cmd Command) ([]Event, *EngineError) {
	if cmd.Kind != CmdNewRound {
		return nil, newValidationError("expected NEW_ROUND in " + s.state.String())
	}
	if s.bankroll <= 0 {
		return nil, newValidationError("cannot start a new round with an empty bankroll")
	}
	s.state = WaitingForBet
	return nil, nil
}

func (s *Session) resetGame() []Event {
	s.state = WaitingForBet
	s.playerHands = nil
	s.currentHandIdx = 0
	s.dealerHand = nil
	s.pendingBet = 0
	s.insuranceBet = 0
	s.insuranceTaken = false
	s.splitCount = 0
	s.bankroll = s.startingBankroll
	s.shoe.Reshuffle()
	return []Event{ShuffledEvent{baseEvent: newEvent(EventShuffled)}}
}

func (s *Session) adjustBankroll(delta int64, events *[]Event) {
	s.bankroll += delta
	*events = append(*events, BankrollChangedEvent{baseEvent: newEvent(EventBankrollChanged), Delta: delta, Balance: s.bankroll})
}

func cardDealtEvent(seat string, handIdx int, c deck.Card) CardDealtEvent {
	return CardDealtEvent{baseEvent: newEvent(EventCardDealt), Seat: seat, HandIdx: handIdx, RankName: c.Rank.String()}
}

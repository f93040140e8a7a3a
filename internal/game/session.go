// Package game implements the single-seat blackjack round state machine:
// betting, insurance, player turn (including splits), dealer turn, and
// cents-denominated settlement, driven by a single Session.Step dispatch
// point.
package game

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/ckhausman/blackjack-engine/internal/counting"
	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// Session is one player's seat across rounds against a single shoe: bet,
// deal, play, settle, repeat.
type Session struct {
	shoe       *deck.Shoe
	countState *counting.State
	rules      strategy.RuleSet

	state State

	playerHands    []*hand.Hand
	currentHandIdx int
	dealerHand     *hand.Hand

	bankroll         int64
	startingBankroll int64
	pendingBet     int64
	insuranceBet   int64
	insuranceTaken bool
	splitCount     int

	handID string

	eventBus EventBus
	logger   *log.Logger
}

// NewSession constructs a Session over shoe/countState/rules with the
// given starting bankroll (cents). The shoe and counting state must
// already be wired together (shoe.Subscribe(countState)) by the caller.
func NewSession(shoe *deck.Shoe, countState *counting.State, rules strategy.RuleSet, startingBankroll int64, logger *log.Logger) (*Session, *EngineError) {
	if err := rules.Validate(); err != nil {
		return nil, &EngineError{kind: ConfigurationError, msg: "invalid rule set", err: err}
	}
	if logger == nil {
		logger = log.New(os.Stdout)
	}
	return &Session{
		shoe:             shoe,
		countState:       countState,
		rules:            rules,
		state:            WaitingForBet,
		bankroll:         startingBankroll,
		startingBankroll: startingBankroll,
		eventBus:         NewEventBus(),
		logger:           logger,
	}, nil
}

// EventBus returns the session's event bus for external subscribers
// (stats aggregation, UI, logging).
func (s *Session) EventBus() EventBus { return s.eventBus }

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// Bankroll returns the current bankroll in cents.
func (s *Session) Bankroll() int64 { return s.bankroll }

// CurrentHand returns the hand currently awaiting a player decision, or
// nil outside PlayerTurn.
func (s *Session) CurrentHand() *hand.Hand {
	if s.state != PlayerTurn || s.currentHandIdx >= len(s.playerHands) {
		return nil
	}
	return s.playerHands[s.currentHandIdx]
}

// DealerHand returns the dealer's hand for the in-progress round.
func (s *Session) DealerHand() *hand.Hand { return s.dealerHand }

func (s *Session) dealCard() (deck.Card, *EngineError) {
	c, err := s.shoe.Deal()
	if err != nil {
		return deck.Card{}, wrapShoeExhausted(err)
	}
	s.countState.Observe(c)
	return c, nil
}

func (s *Session) publishAll(events []Event) []Event {
	for _, e := range events {
		s.eventBus.Publish(e)
	}
	return events
}

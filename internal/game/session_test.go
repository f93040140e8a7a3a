package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckhausman/blackjack-engine/internal/counting"
	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
)

// stackedRNG wraps a seeded *rand.Rand so every test shoe shuffles the
// same way. It does not fix which cards are dealt to whom; tests that
// need specific cards assign them to the hands directly after the deal.
type stackedRNG struct{ r *rand.Rand }

func (s stackedRNG) Intn(n int) int { return s.r.Intn(n) }

func newTestSession(t *testing.T, rules strategy.RuleSet, bankroll int64) *Session {
	t.Helper()
	shoe, err := deck.NewShoe(rules.NumDecks, rules.Penetration, stackedRNG{rand.New(rand.NewSource(1))})
	require.NoError(t, err)
	cs := counting.NewState(counting.HiLo, rules.NumDecks)
	shoe.Subscribe(cs)
	sess, engErr := NewSession(shoe, cs, rules, bankroll, nil)
	require.Nil(t, engErr)
	return sess
}

func TestSession_PlaceBetDealsFourCards(t *testing.T) {
	sess := newTestSession(t, strategy.Default6DeckS17DAS(), 10000)
	events, err := sess.Step(PlaceBet(500))
	require.Nil(t, err)
	assert.NotEmpty(t, events)
	assert.Len(t, sess.playerHands[0].Cards, 2)
	assert.Len(t, sess.dealerHand.Cards, 2)
}

func TestSession_BetExceedingBankrollIsValidationError(t *testing.T) {
	sess := newTestSession(t, strategy.Default6DeckS17DAS(), 100)
	_, err := sess.Step(PlaceBet(500))
	require.NotNil(t, err)
	assert.Equal(t, ValidationError, err.Kind())
	assert.Equal(t, WaitingForBet, sess.State())
}

func TestSession_BlackjackPayoutThreeToTwo(t *testing.T) {
	rules := strategy.Default6DeckS17DAS()
	rules.BlackjackPayout = strategy.Payout3to2
	dealer := hand17NoBust()
	result, _ := settleHand(playerNatural(100_00), dealer, false, rules)
	assert.Equal(t, "blackjack", result)
}

func TestSession_BlackjackPayoutAmounts(t *testing.T) {
	// $100 bet at 3:2 pays $150 net; at 6:5 pays $120 net (scenario 6).
	rules3to2 := strategy.Default6DeckS17DAS()
	rules3to2.BlackjackPayout = strategy.Payout3to2
	_, payout := settleHand(playerNatural(100_00), hand17NoBust(), false, rules3to2)
	assert.Equal(t, int64(150_00), payout)

	rules6to5 := strategy.Default6DeckS17DAS()
	rules6to5.BlackjackPayout = strategy.Payout6to5
	_, payout = settleHand(playerNatural(100_00), hand17NoBust(), false, rules6to5)
	assert.Equal(t, int64(120_00), payout)
}

func TestSession_SplitAcesAutoStandsWhenHitSplitAcesDisabled(t *testing.T) {
	rules := strategy.Default6DeckS17DAS()
	rules.HitSplitAces = false
	sess := newTestSession(t, rules, 10000)

	_, err := sess.Step(PlaceBet(100))
	require.Nil(t, err)
	// Force a pair of aces regardless of what the shoe actually dealt,
	// then drive the split through Step directly.
	sess.state = PlayerTurn
	sess.playerHands[0].Cards = []deck.Card{deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.Ace, deck.Hearts)}
	sess.currentHandIdx = 0

	events, err := sess.Step(SplitHand())
	require.Nil(t, err)
	require.NotEmpty(t, events)

	// Both resulting hands must already be resolved (one card each, no
	// further hit), so the session has moved past PLAYER_TURN.
	assert.NotEqual(t, PlayerTurn, sess.State())
	for _, h := range sess.playerHands {
		assert.Len(t, h.Cards, 2)
	}
}

func TestSession_DoubleDoublesTheBetAndDealsOneCard(t *testing.T) {
	rules := strategy.Default6DeckS17DAS()
	sess := newTestSession(t, rules, 10000)
	_, err := sess.Step(PlaceBet(100))
	require.Nil(t, err)

	sess.state = PlayerTurn
	sess.playerHands[0].Cards = []deck.Card{deck.NewCard(deck.Five, deck.Spades), deck.NewCard(deck.Six, deck.Hearts)}
	sess.currentHandIdx = 0

	_, err = sess.Step(Double())
	require.Nil(t, err)
	assert.Equal(t, int64(200), sess.playerHands[0].Bet)
	assert.Len(t, sess.playerHands[0].Cards, 3)
}

func TestSession_AvailableActionsMatchesStepValidation(t *testing.T) {
	sess := newTestSession(t, strategy.Default6DeckS17DAS(), 10000)
	_, err := sess.Step(PlaceBet(100))
	require.Nil(t, err)
	if sess.State() != PlayerTurn {
		t.Skip("round resolved immediately on a natural")
	}
	avail := sess.AvailableActions()
	for kind, ok := range avail {
		_, stepErr := sess.Step(Command{Kind: kind})
		if ok {
			assert.Nilf(t, stepErr, "expected %v to be available", kind)
			return // first successful command may change state; stop here
		}
		assert.NotNilf(t, stepErr, "expected %v to be unavailable", kind)
	}
}

func TestSession_ShoeExhaustedMidDealForcesPushSettlement(t *testing.T) {
	rules := strategy.Default6DeckS17DAS()
	rules.NumDecks = 1
	rules.Penetration = 1.0
	shoe, err := deck.NewShoe(1, 1.0, stackedRNG{rand.New(rand.NewSource(1))})
	require.NoError(t, err)
	// Drain all but two cards so PlaceBet's four-card deal loop runs out
	// of shoe partway through, instead of exhausting on the very first
	// card (which would never have reached this scenario naturally).
	for shoe.CardsRemaining() > 2 {
		_, dealErr := shoe.Deal()
		require.NoError(t, dealErr)
	}
	cs := counting.NewState(counting.HiLo, rules.NumDecks)
	shoe.Subscribe(cs)
	sess, engErr := NewSession(shoe, cs, rules, 10000, nil)
	require.Nil(t, engErr)

	events, stepErr := sess.Step(PlaceBet(100))
	require.Nil(t, stepErr)
	require.NotEmpty(t, events)

	sawExhausted, sawRoundEnded := false, false
	var settlements []HandSettlement
	for _, e := range events {
		switch ev := e.(type) {
		case ShoeExhaustedEvent:
			sawExhausted = true
		case RoundEndedEvent:
			sawRoundEnded = true
			settlements = ev.Settlements
		}
	}
	assert.True(t, sawExhausted, "expected a ShoeExhaustedEvent diagnostic")
	assert.True(t, sawRoundEnded, "expected the round to be force-settled")
	require.NotEmpty(t, settlements)
	for _, s := range settlements {
		assert.Equal(t, "push", s.Outcome)
		assert.Equal(t, int64(0), s.Payout)
	}
	assert.Equal(t, int64(10000), sess.Bankroll())
	assert.Equal(t, RoundSettlement, sess.State())
}

func TestSession_EuropeanNoHoleCardDefersDealerNaturalPastPlayerTurn(t *testing.T) {
	rules := strategy.Default6DeckS17DAS()
	rules.DealerPeeksOnTenOrAce = false
	sess := newTestSession(t, rules, 10000)

	_, err := sess.Step(PlaceBet(100))
	require.Nil(t, err)
	// Force a dealer ten-up natural that an American-peek ruleset would
	// catch immediately; under no-hole-card rules the player must still
	// get to act first.
	sess.dealerHand.Cards = []deck.Card{deck.NewCard(deck.King, deck.Spades), deck.NewCard(deck.Ace, deck.Hearts)}
	sess.playerHands[0].Cards = []deck.Card{deck.NewCard(deck.Five, deck.Spades), deck.NewCard(deck.Six, deck.Hearts)}
	_, stepErr := sess.concludeDealOrAdvance(nil)
	require.Nil(t, stepErr)

	assert.Equal(t, PlayerTurn, sess.State())
	assert.True(t, sess.dealerHand.IsNatural())
}

func TestSession_AmericanPeekSettlesImmediatelyOnDealerNatural(t *testing.T) {
	rules := strategy.Default6DeckS17DAS()
	rules.DealerPeeksOnTenOrAce = true
	sess := newTestSession(t, rules, 10000)
	sess.handID = "test-hand"
	sess.pendingBet = 100
	sess.playerHands = []*hand.Hand{hand.New(100)}
	sess.playerHands[0].Cards = []deck.Card{deck.NewCard(deck.Nine, deck.Spades), deck.NewCard(deck.Seven, deck.Hearts)}
	sess.dealerHand = hand.New(0)
	sess.dealerHand.Cards = []deck.Card{deck.NewCard(deck.King, deck.Spades), deck.NewCard(deck.Ace, deck.Hearts)}

	events, stepErr := sess.concludeDealOrAdvance(nil)
	require.Nil(t, stepErr)
	assert.Equal(t, RoundSettlement, sess.State())

	sawDealerBlackjack := false
	for _, e := range events {
		if _, ok := e.(DealerBlackjackEvent); ok {
			sawDealerBlackjack = true
		}
	}
	assert.True(t, sawDealerBlackjack)
}

func playerNatural(bet int64) *hand.Hand {
	h := hand.New(bet)
	h.AddCard(deck.NewCard(deck.Ace, deck.Spades))
	h.AddCard(deck.NewCard(deck.King, deck.Hearts))
	return h
}

func hand17NoBust() *hand.Hand {
	h := hand.New(0)
	h.AddCard(deck.NewCard(deck.Ten, deck.Spades))
	h.AddCard(deck.NewCard(deck.Seven, deck.Hearts))
	return h
}

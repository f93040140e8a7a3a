package stats

import "github.com/ckhausman/blackjack-engine/internal/game"

// Recorder adapts an Aggregator to game.EventSubscriber for one session,
// closing over the session id so a single Aggregator can back many
// concurrently running sessions.
type Recorder struct {
	agg       *Aggregator
	sessionID string
}

// NewRecorder returns an EventSubscriber that feeds events from one
// session's EventBus into agg under sessionID.
func (a *Aggregator) NewRecorder(sessionID string) *Recorder {
	return &Recorder{agg: a, sessionID: sessionID}
}

// OnEvent implements game.EventSubscriber.
func (r *Recorder) OnEvent(event game.Event) {
	r.agg.onEvent(r.sessionID, event)
}

func (a *Aggregator) onEvent(sessionID string, event game.Event) {
	switch e := event.(type) {
	case game.RoundEndedEvent:
		a.recordRoundEnded(sessionID, e)
	case game.BankrollChangedEvent:
		a.recordBankrollChanged(sessionID, e)
	}
}

func (a *Aggregator) recordRoundEnded(sessionID string, e game.RoundEndedEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.getOrCreate(sessionID)
	s.HandsPlayed += int64(len(e.Settlements))
	for _, settlement := range e.Settlements {
		s.NetResult += settlement.Payout
		switch settlement.Outcome {
		case "win":
			s.Wins++
		case "blackjack":
			s.Wins++
			s.Blackjacks++
		case "push":
			s.Pushes++
		case "surrender":
			s.Losses++
			s.Surrenders++
		case "loss", "bust":
			s.Losses++
		}
	}
}

func (a *Aggregator) recordBankrollChanged(sessionID string, e game.BankrollChangedEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.getOrCreate(sessionID)
	s.BankrollHistory = append(s.BankrollHistory, e.Balance)
}

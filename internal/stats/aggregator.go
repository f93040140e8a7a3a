// Package stats aggregates session results and drill accuracy for display,
// without ever feeding back into game or training decisions. It is a pure
// consumer: it observes game.Events and RecordDrillResult calls and never
// mutates engine state.
package stats

import "sync"

// CategoryData tracks attempted/correct counts for one drill category,
// mirroring the accuracy bookkeeping shape used for strategy-chart drills.
type CategoryData struct {
	Attempted int
	Correct   int
}

// SessionStats holds the running tallies for one training session.
type SessionStats struct {
	HandsPlayed     int64
	Wins            int64
	Losses          int64
	Pushes          int64
	Blackjacks      int64
	Surrenders      int64
	NetResult       int64
	BankrollHistory []int64
	DrillStats      map[string]*CategoryData
	SpeedBestScore  int
}

func newSessionStats() *SessionStats {
	return &SessionStats{DrillStats: make(map[string]*CategoryData)}
}

// Aggregator tracks SessionStats keyed by session id. A single mutex guards
// the whole map, matching the engine's single-writer discipline rather than
// a lock per session.
type Aggregator struct {
	mu       sync.RWMutex
	sessions map[string]*SessionStats
}

// NewAggregator creates an empty stats aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{sessions: make(map[string]*SessionStats)}
}

func (a *Aggregator) getOrCreate(sessionID string) *SessionStats {
	s, ok := a.sessions[sessionID]
	if !ok {
		s = newSessionStats()
		a.sessions[sessionID] = s
	}
	return s
}

// Session returns a snapshot copy of one session's stats. The zero value is
// returned for a session id that has recorded nothing yet.
func (a *Aggregator) Session(sessionID string) SessionStats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.sessions[sessionID]
	if !ok {
		return SessionStats{}
	}
	return cloneSessionStats(s)
}

func cloneSessionStats(s *SessionStats) SessionStats {
	out := SessionStats{
		HandsPlayed:    s.HandsPlayed,
		Wins:           s.Wins,
		Losses:         s.Losses,
		Pushes:         s.Pushes,
		Blackjacks:     s.Blackjacks,
		Surrenders:     s.Surrenders,
		NetResult:      s.NetResult,
		SpeedBestScore: s.SpeedBestScore,
		DrillStats:     make(map[string]*CategoryData, len(s.DrillStats)),
	}
	out.BankrollHistory = append(out.BankrollHistory, s.BankrollHistory...)
	for kind, cd := range s.DrillStats {
		copied := *cd
		out.DrillStats[kind] = &copied
	}
	return out
}

// RecordDrillResult tallies one drill attempt under the named category
// ("count", "strategy", "deviation", "speed").
func (a *Aggregator) RecordDrillResult(sessionID, kind string, correct bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.getOrCreate(sessionID)
	cd, ok := s.DrillStats[kind]
	if !ok {
		cd = &CategoryData{}
		s.DrillStats[kind] = cd
	}
	cd.Attempted++
	if correct {
		cd.Correct++
	}
}

// RecordSpeedScore updates a session's best speed-drill score if the given
// score beats it.
func (a *Aggregator) RecordSpeedScore(sessionID string, score int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.getOrCreate(sessionID)
	if score > s.SpeedBestScore {
		s.SpeedBestScore = score
	}
	RecordHighScore(sessionID, "speed", score)
}

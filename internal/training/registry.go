package training

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ckhausman/blackjack-engine/internal/game"
)

// drillTTL is how long an issued drill ID stays verifiable before a
// VerifyCount/VerifyAction call reports it as expired.
const drillTTL = 2 * time.Minute

type drillRecord struct {
	expected  int
	action    string
	expiresAt time.Time
}

// Registry tracks in-flight drill answers by UUID so a later verify call
// can check a player's submission without the caller threading the
// expected answer back through itself. A single mutex guards the map,
// matching the engine's single-writer discipline for shared state.
type Registry struct {
	mu     sync.Mutex
	drills map[string]drillRecord
}

// NewRegistry creates an empty drill registry.
func NewRegistry() *Registry {
	return &Registry{drills: make(map[string]drillRecord)}
}

// IssueCount registers a counting-drill answer key and returns its ID.
func (r *Registry) IssueCount(expected int) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drills[id] = drillRecord{expected: expected, expiresAt: time.Now().Add(drillTTL)}
	return id
}

// IssueAction registers a strategy/deviation-drill answer key and returns
// its ID.
func (r *Registry) IssueAction(action string) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drills[id] = drillRecord{action: action, expiresAt: time.Now().Add(drillTTL)}
	return id
}

// VerifyCount checks a player's guessed running count against the drill
// named by id, consuming it (each ID is single-use).
func (r *Registry) VerifyCount(id string, guess int) (bool, *game.EngineError) {
	rec, err := r.takeDrill(id)
	if err != nil {
		return false, err
	}
	return rec.expected == guess, nil
}

// VerifyAction checks a player's submitted action name against the drill
// named by id, consuming it.
func (r *Registry) VerifyAction(id string, action string) (bool, *game.EngineError) {
	rec, err := r.takeDrill(id)
	if err != nil {
		return false, err
	}
	return rec.action == action, nil
}

func (r *Registry) takeDrill(id string) (drillRecord, *game.EngineError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.drills[id]
	if !ok {
		return drillRecord{}, game.NewDrillProtocolError("unknown drill id")
	}
	delete(r.drills, id)
	if time.Now().After(rec.expiresAt) {
		return drillRecord{}, game.NewDrillProtocolError("drill id expired")
	}
	return rec, nil
}

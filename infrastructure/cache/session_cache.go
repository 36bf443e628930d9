package cache

import (
	"sync"

	"storeops/models"
	"storeops/workflow"
)

type entry struct {
	session models.Session
	state   *workflow.State
}

// SessionCache holds the live anonymous sessions and their workflow state,
// keyed by token. It is the only owner of workflow state; handlers mutate
// it exclusively through MutateState.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewSessionCache() *SessionCache {
	return &SessionCache{entries: make(map[string]*entry)}
}

// Add registers a session with a fresh workflow state.
func (c *SessionCache) Add(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[s.Token] = &entry{session: s, state: workflow.NewState()}
}

// Find returns the session for a token.
func (c *SessionCache) Find(token string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[token]
	if !ok {
		return models.Session{}, false
	}
	return e.session, true
}

// SetProfile updates the store code and employee id stamped onto new tickets.
func (c *SessionCache) SetProfile(token, storeCode, employeeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[token]
	if !ok {
		return false
	}
	e.session.StoreCode = storeCode
	e.session.EmployeeID = employeeID
	return true
}

// MutateState applies fn to the session's workflow state under the lock.
func (c *SessionCache) MutateState(token string, fn func(*workflow.State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[token]
	if !ok {
		return false
	}
	fn(e.state)
	return true
}

// StateSnapshot returns a copy of the session's workflow state for
// rendering. The selection set is copied so readers never alias it.
func (c *SessionCache) StateSnapshot(token string) (workflow.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[token]
	if !ok {
		return workflow.State{}, false
	}
	snap := *e.state
	snap.Selected = make(map[string]struct{}, len(e.state.Selected))
	for id := range e.state.Selected {
		snap.Selected[id] = struct{}{}
	}
	return snap, true
}

// Delete drops a session and its workflow state.
func (c *SessionCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}

package conversation

import (
	"errors"
	"time"
)

var ErrNoWorkflow = errors.New("conversation: no workflow active")

// Session is the per-actor record of the in-flight workflow and the fields
// collected so far. A session holds at most one workflow; starting another
// one replaces it wholesale.
type Session struct {
	ActorID   string
	Workflow  Workflow
	Step      Step
	Fields    map[string]string
	StartedAt time.Time
	UpdatedAt time.Time
}

func NewSession(actorID string, w Workflow) *Session {
	now := time.Now().UTC()
	return &Session{
		ActorID:   actorID,
		Workflow:  w,
		Step:      w.First(),
		Fields:    make(map[string]string),
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Set stores a validated field value under its fixed key.
func (s *Session) Set(key, value string) {
	s.Fields[key] = value
	s.touch()
}

func (s *Session) Get(key string) string { return s.Fields[key] }

// Advance moves to the next step. Advancing to a step outside the workflow's
// declared sequence is a programming error, not user input, so it panics.
func (s *Session) Advance(next Step) {
	if !s.Workflow.Declared(next) {
		panic("conversation: step " + string(next) + " not declared for workflow " + string(s.Workflow))
	}
	s.Step = next
	s.touch()
}

// Expired reports whether the session has been idle past ttl. A zero ttl
// disables expiry.
func (s *Session) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.UpdatedAt) > ttl
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

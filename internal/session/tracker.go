// Package session tracks the one open question of each chat session.
package session

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoOpenQuestion is returned when the session has no question open.
	ErrNoOpenQuestion = errors.New("no open question in session")
	// ErrStaleQuestion is returned when an action refers to a question that is not the session's open question.
	ErrStaleQuestion = errors.New("question is not open in session")
	// ErrAnswerNotRevealed is returned when a question is resolved before its answer was shown.
	ErrAnswerNotRevealed = errors.New("answer has not been revealed")
)

// State is where a session is in the present-reveal-resolve cycle.
type State int

const (
	StateIdle State = iota
	StatePresented
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresented:
		return "presented"
	case StateRevealed:
		return "revealed"
	}
	return "unknown"
}

// Entry is the open question of a session.
type Entry struct {
	QuestionID int64
	State      State
	UpdatedAt  time.Time
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// Tracker holds at most one open question per session id. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]Entry
	locks   map[string]*sessionLock
	now     func() time.Time
}

type Option func(*Tracker)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		entries: make(map[string]Entry),
		locks:   make(map[string]*sessionLock),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Lock serializes actions of one session; the returned func releases it.
// Different sessions never wait on each other.
func (t *Tracker) Lock(sessionID string) func() {
	t.mu.Lock()
	l, ok := t.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		t.locks[sessionID] = l
	}
	l.refs++
	t.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		t.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(t.locks, sessionID)
		}
		t.mu.Unlock()
	}
}

// Open presents a question, silently replacing whatever the session had open.
func (t *Tracker) Open(sessionID string, questionID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[sessionID] = Entry{
		QuestionID: questionID,
		State:      StatePresented,
		UpdatedAt:  t.now(),
	}
}

// Reveal moves the open question to Revealed. Revealing twice is allowed.
func (t *Tracker) Reveal(sessionID string, questionID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[sessionID]
	if !ok || entry.QuestionID != questionID {
		return ErrStaleQuestion
	}
	entry.State = StateRevealed
	entry.UpdatedAt = t.now()
	t.entries[sessionID] = entry
	return nil
}

// Resolve closes a revealed question.
func (t *Tracker) Resolve(sessionID string, questionID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[sessionID]
	if !ok || entry.QuestionID != questionID {
		return ErrStaleQuestion
	}
	if entry.State != StateRevealed {
		return ErrAnswerNotRevealed
	}
	delete(t.entries, sessionID)
	return nil
}

// TakeOpen closes and returns the open question, whether or not its answer was revealed.
func (t *Tracker) TakeOpen(sessionID string) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[sessionID]
	if !ok {
		return Entry{}, ErrNoOpenQuestion
	}
	delete(t.entries, sessionID)
	return entry, nil
}

// Current returns the open question. An Idle session returns false.
func (t *Tracker) Current(sessionID string) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[sessionID]
	return entry, ok
}

func (t *Tracker) Discard(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, sessionID)
}

// Sweep drops entries not touched for longer than ttl and returns how many were dropped.
func (t *Tracker) Sweep(ttl time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-ttl)
	swept := 0
	for id, entry := range t.entries {
		if entry.UpdatedAt.Before(cutoff) {
			delete(t.entries, id)
			swept++
		}
	}
	return swept
}

// Len returns the number of sessions with an open question.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

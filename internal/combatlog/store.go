// Package combatlog records attacks against game targets. Each target keeps
// its own append-only history; the active target and every history are
// persisted after each mutation.
package combatlog

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fakeyudi/hollowlog/internal/logger"
)

// ErrUnsaved is returned by Reload while changes that failed to save are
// still only in memory.
var ErrUnsaved = errors.New("unsaved changes kept in memory")

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for non-fatal storage failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDefaultTarget sets the target selected when no state is persisted.
func WithDefaultTarget(id string) Option {
	return func(s *Store) {
		if id != "" {
			s.defaultTarget = id
		}
	}
}

// WithTargetNames sets the lookup used by ActiveTargetLabel.
func WithTargetNames(fn func(id string) (string, bool)) Option {
	return func(s *Store) {
		if fn != nil {
			s.names = fn
		}
	}
}

// WithClock overrides time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is the authoritative holder of per-target histories.
type Store struct {
	mu            sync.Mutex
	storage       Storage
	log           logger.Logger
	defaultTarget string
	names         func(string) (string, bool)
	now           func() time.Time

	state      *State
	persistErr error
}

// Open builds a Store and loads whatever storage holds. Missing or unreadable
// state is replaced by an empty log on the default target.
func Open(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:       storage,
		log:           logger.Nop(),
		defaultTarget: "gruz-mother",
		names:         func(string) (string, bool) { return "", false },
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.load()
	return s
}

func (s *Store) load() *State {
	st, err := s.storage.Load()
	switch {
	case errors.Is(err, ErrNoState):
		return s.fresh()
	case err != nil:
		s.log.Warn("discarding unreadable combat log", logger.Error(err))
		return s.fresh()
	}
	s.normalize(st)
	return st
}

func (s *Store) fresh() *State {
	return &State{
		Version:      stateVersion,
		ActiveTarget: s.defaultTarget,
		NextSeq:      1,
		Histories:    map[string][]Event{},
	}
}

// normalize repairs states written by hand or by older builds.
func (s *Store) normalize(st *State) {
	st.Version = stateVersion
	if st.Histories == nil {
		st.Histories = map[string][]Event{}
	}
	if st.ActiveTarget == "" {
		st.ActiveTarget = s.defaultTarget
	}
	for _, events := range st.Histories {
		for _, e := range events {
			if e.Seq >= st.NextSeq {
				st.NextSeq = e.Seq + 1
			}
		}
	}
	if st.NextSeq == 0 {
		st.NextSeq = 1
	}
}

// persist saves the current state. Failures are logged and remembered; the
// in-memory state stays authoritative. Caller holds s.mu.
func (s *Store) persist() {
	if err := s.storage.Save(s.state); err != nil {
		s.log.Warn("combat log not saved", logger.Error(err))
		s.persistErr = err
		return
	}
	s.persistErr = nil
}

// PersistErr returns the error of the most recent save, or nil.
func (s *Store) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// SelectTarget makes id the active target. No history is modified; a target
// seen for the first time gets an empty history.
func (s *Store) SelectTarget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveTarget = id
	if _, ok := s.state.Histories[id]; !ok {
		s.state.Histories[id] = []Event{}
	}
	s.persist()
}

// RecordAttack appends an attack to the active target's history and returns
// the stored event. attackID is not validated.
func (s *Store) RecordAttack(attackID, displayName string, damage int) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.newEvent(KindAttack, attackID, displayName, damage)
	id := s.state.ActiveTarget
	s.state.Histories[id] = append(s.state.Histories[id], e)
	s.persist()
	return e
}

// ClearActiveHistory replaces the active target's history with a single
// baseline marker. Other targets are untouched.
func (s *Store) ClearActiveHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	marker := s.newEvent(KindMarker, MarkerAttackID, MarkerDisplayName, 0)
	s.state.Histories[s.state.ActiveTarget] = []Event{marker}
	s.persist()
}

func (s *Store) newEvent(kind Kind, attackID, displayName string, damage int) Event {
	e := Event{
		ID:          uuid.NewString(),
		Seq:         s.state.NextSeq,
		Kind:        kind,
		AttackID:    attackID,
		DisplayName: displayName,
		Damage:      damage,
		RecordedAt:  s.now().UTC(),
	}
	s.state.NextSeq++
	return e
}

// ActiveTarget returns the id of the active target.
func (s *Store) ActiveTarget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveTarget
}

// ActiveHistory returns a copy of the active target's history, oldest first.
func (s *Store) ActiveHistory() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEvents(s.state.Histories[s.state.ActiveTarget])
}

// History returns a copy of any target's history, oldest first.
func (s *Store) History(id string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEvents(s.state.Histories[id])
}

// Targets returns the ids that have a history, sorted.
func (s *Store) Targets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.state.Histories))
	for id := range s.state.Histories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Totals summarises the active target's history.
func (s *Store) Totals() Totals {
	return Summarize(s.ActiveHistory())
}

// ActiveTargetLabel returns header text such as "Target: False Knight".
// Unknown ids are shown verbatim.
func (s *Store) ActiveTargetLabel() string {
	id := s.ActiveTarget()
	if name, ok := s.names(id); ok {
		return "Target: " + name
	}
	return "Target: " + id
}

// Reload replaces the in-memory state with what storage holds. A missing
// state leaves the current one in place.
//
// While the last save failed, memory wins: Reload retries the save instead of
// loading, and returns ErrUnsaved if it fails again.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persistErr != nil {
		s.persist()
		if s.persistErr != nil {
			return fmt.Errorf("%w: %v", ErrUnsaved, s.persistErr)
		}
		return nil
	}

	st, err := s.storage.Load()
	if errors.Is(err, ErrNoState) {
		return nil
	}
	if err != nil {
		return err
	}
	s.normalize(st)
	s.state = st
	return nil
}

func copyEvents(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

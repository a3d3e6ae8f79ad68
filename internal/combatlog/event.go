package combatlog

import "time"

// Kind distinguishes real attacks from bookkeeping entries.
type Kind string

const (
	KindAttack Kind = "attack"
	KindMarker Kind = "marker"
)

// Baseline marker written by ClearActiveHistory.
const (
	MarkerAttackID    = "log-started"
	MarkerDisplayName = "Log started"
)

// Event is one recorded entry in a target's history. Events are never
// modified after they are appended.
type Event struct {
	ID          string    `json:"id"`
	Seq         uint64    `json:"seq"`
	Kind        Kind      `json:"kind"`
	AttackID    string    `json:"attack_id"`
	DisplayName string    `json:"display_name"`
	Damage      int       `json:"damage,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// IsMarker reports whether e is a baseline marker rather than an attack.
func (e Event) IsMarker() bool {
	return e.Kind == KindMarker
}

// State is the persisted form of the combat log.
type State struct {
	Version      int                `json:"version"`
	ActiveTarget string             `json:"active_target"`
	NextSeq      uint64             `json:"next_seq"`
	Histories    map[string][]Event `json:"histories"`
}

// stateVersion is written into every saved State.
const stateVersion = 1

// Totals summarises the attacks in one history. Markers are not counted.
type Totals struct {
	Hits     int
	Damage   int
	ByAttack map[string]int // display name -> hit count
}

// Summarize computes Totals for events.
func Summarize(events []Event) Totals {
	t := Totals{ByAttack: make(map[string]int)}
	for _, e := range events {
		if e.IsMarker() {
			continue
		}
		t.Hits++
		t.Damage += e.Damage
		t.ByAttack[e.DisplayName]++
	}
	return t
}

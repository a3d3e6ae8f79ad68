// Package export renders a target's combat history to shareable files and
// reads them back.
package export

import (
	"time"

	"github.com/fakeyudi/hollowlog/internal/catalog"
	"github.com/fakeyudi/hollowlog/internal/combatlog"
)

// Report is the complete, renderable representation of one target's log.
type Report struct {
	Target      string            `json:"target"`
	TargetName  string            `json:"target_name"`
	Version     string            `json:"version,omitempty"`
	Arena       string            `json:"arena,omitempty"`
	HP          int               `json:"hp,omitempty"`
	Order       combatlog.Order   `json:"order"`
	GeneratedAt time.Time         `json:"generated_at"`
	Hits        int               `json:"hits"`
	Damage      int               `json:"damage"`
	Events      []combatlog.Event `json:"events"` // already in Order
}

// Build assembles a Report for target from its stored (oldest-first) history.
func Build(target string, history []combatlog.Event, order combatlog.Order, now time.Time) *Report {
	r := &Report{
		Target:      target,
		TargetName:  target,
		Order:       order,
		GeneratedAt: now.UTC(),
		Events:      combatlog.Ordered(history, order),
	}
	if e, ok := catalog.Encounter(target); ok && e.ID == target {
		r.TargetName = e.Name
		r.Version = e.Version
		r.Arena = e.Arena
		r.HP = e.HP
	}
	totals := combatlog.Summarize(history)
	r.Hits = totals.Hits
	r.Damage = totals.Damage
	return r
}

// Remaining returns HP left after the recorded damage, clamped at zero, and
// false when the target has no known HP.
func (r *Report) Remaining() (int, bool) {
	if r.HP <= 0 {
		return 0, false
	}
	left := r.HP - r.Damage
	if left < 0 {
		left = 0
	}
	return left, true
}

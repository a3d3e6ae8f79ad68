// Package catalog holds the static encounter and attack tables the CLI and
// TUI offer to the player. The combat log never validates against it.
package catalog

import "strings"

// CustomTargetID is the sentinel id for a user-defined opponent.
const CustomTargetID = "custom"

// DefaultTargetID is selected when no persisted state or config names one.
const DefaultTargetID = "gruz-mother"

// EncounterInfo describes a selectable target.
type EncounterInfo struct {
	ID      string
	Name    string
	Version string // e.g. "Attuned"
	Arena   string
	HP      int // 0 when unknown (custom target)
}

// AttackInfo describes an attack the player can log.
type AttackInfo struct {
	ID     string
	Name   string
	Damage int // base damage with the starting nail and no charms
}

var encounters = []EncounterInfo{
	{ID: "gruz-mother", Name: "Gruz Mother", Version: "Attuned", Arena: "Forgotten Crossroads", HP: 90},
	{ID: "false-knight", Name: "False Knight", Version: "Attuned", Arena: "Forgotten Crossroads", HP: 260},
	{ID: "hornet-protector", Name: "Hornet Protector", Version: "Attuned", Arena: "Greenpath", HP: 225},
	{ID: "mantis-lords", Name: "Mantis Lords", Version: "Attuned", Arena: "Mantis Village", HP: 210},
	{ID: "soul-master", Name: "Soul Master", Version: "Attuned", Arena: "Soul Sanctum", HP: 565},
	{ID: "dung-defender", Name: "Dung Defender", Version: "Attuned", Arena: "Royal Waterways", HP: 800},
	{ID: CustomTargetID, Name: "Custom target", Version: "", Arena: ""},
}

var attacks = []AttackInfo{
	{ID: "nail-strike", Name: "Nail Strike", Damage: 5},
	{ID: "great-slash", Name: "Great Slash", Damage: 12},
	{ID: "dash-slash", Name: "Dash Slash", Damage: 10},
	{ID: "cyclone-slash", Name: "Cyclone Slash", Damage: 5},
	{ID: "vengeful-spirit", Name: "Vengeful Spirit", Damage: 15},
	{ID: "desolate-dive", Name: "Desolate Dive", Damage: 15},
	{ID: "howling-wraiths", Name: "Howling Wraiths", Damage: 13},
}

// Encounters returns every selectable target in display order, ending with
// the custom target.
func Encounters() []EncounterInfo {
	out := make([]EncounterInfo, len(encounters))
	copy(out, encounters)
	return out
}

// Attacks returns the attack table in display order.
func Attacks() []AttackInfo {
	out := make([]AttackInfo, len(attacks))
	copy(out, attacks)
	return out
}

// Encounter looks up a target by id, display name or slug of the name.
func Encounter(key string) (EncounterInfo, bool) {
	for _, e := range encounters {
		if matches(key, e.ID, e.Name) {
			return e, true
		}
	}
	return EncounterInfo{}, false
}

// EncounterIndex returns the zero-based position of id in Encounters, or -1.
func EncounterIndex(id string) int {
	for i, e := range encounters {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Attack looks up an attack by id, display name or slug of the name.
func Attack(key string) (AttackInfo, bool) {
	for _, a := range attacks {
		if matches(key, a.ID, a.Name) {
			return a, true
		}
	}
	return AttackInfo{}, false
}

// TargetName returns the display name for a target id.
func TargetName(id string) (string, bool) {
	for _, e := range encounters {
		if e.ID == id {
			return e.Name, true
		}
	}
	return "", false
}

// Slug lowercases s and joins its words with '-', so "False Knight" becomes
// "false-knight".
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func matches(key, id, name string) bool {
	key = strings.TrimSpace(key)
	return key == id || strings.EqualFold(key, name) || Slug(key) == id
}

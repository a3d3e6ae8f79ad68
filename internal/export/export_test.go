package export_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/fakeyudi/hollowlog/internal/combatlog"
	"github.com/fakeyudi/hollowlog/internal/export"
)

var at = time.Date(2024, 5, 4, 18, 30, 0, 0, time.UTC)

func sampleHistory() []combatlog.Event {
	return []combatlog.Event{
		{ID: "m", Seq: 1, Kind: combatlog.KindMarker, AttackID: combatlog.MarkerAttackID, DisplayName: combatlog.MarkerDisplayName, RecordedAt: at},
		{ID: "a", Seq: 2, Kind: combatlog.KindAttack, AttackID: "nail-strike", DisplayName: "Nail Strike", Damage: 5, RecordedAt: at},
		{ID: "b", Seq: 3, Kind: combatlog.KindAttack, AttackID: "vengeful-spirit", DisplayName: "Vengeful Spirit", Damage: 15, RecordedAt: at},
	}
}

func TestBuildUsesCatalogAndOrder(t *testing.T) {
	r := export.Build("false-knight", sampleHistory(), combatlog.NewestFirst, at)

	assert.Equal(t, "False Knight", r.TargetName)
	assert.Equal(t, "Forgotten Crossroads", r.Arena)
	assert.Equal(t, 2, r.Hits)
	assert.Equal(t, 20, r.Damage)
	require.Len(t, r.Events, 3)
	assert.Equal(t, uint64(3), r.Events[0].Seq)

	left, ok := r.Remaining()
	require.True(t, ok)
	assert.Equal(t, 240, left)
}

func TestBuildUnknownTarget(t *testing.T) {
	r := export.Build("the-radiance", nil, combatlog.OldestFirst, at)
	assert.Equal(t, "the-radiance", r.TargetName)
	assert.Empty(t, r.Arena)
	_, ok := r.Remaining()
	assert.False(t, ok)
}

func TestRemainingClampsAtZero(t *testing.T) {
	r := &export.Report{HP: 10, Damage: 25}
	left, ok := r.Remaining()
	require.True(t, ok)
	assert.Zero(t, left)
}

func TestMarkdownRendererSections(t *testing.T) {
	r := export.Build("false-knight", sampleHistory(), combatlog.OldestFirst, at)
	data, err := export.MarkdownRenderer{}.Render(r)
	require.NoError(t, err)
	out := string(data)

	sections := []string{"## Summary", "## Attacks", "## History (oldest first)"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.NotEqual(t, -1, idx, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
	assert.Contains(t, out, "- HP remaining: 240/260")
	assert.Contains(t, out, "_Log started_")
	assert.Less(t, strings.Index(out, "#2 Nail Strike"), strings.Index(out, "#3 Vengeful Spirit"))
}

func TestMarkdownRendererEmptyHistory(t *testing.T) {
	r := export.Build("custom", nil, combatlog.NewestFirst, at)
	data, err := export.MarkdownRenderer{}.Render(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), "_No attacks recorded._")
	assert.Contains(t, string(data), "_Log started._")
}

// Feature: hollowlog, Property 8: Export round-trip through both formats
func TestExportRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 10).Draw(t, "n")
		history := make([]combatlog.Event, n)
		for i := range history {
			history[i] = combatlog.Event{
				ID:          rapid.StringMatching(`[a-f0-9]{8}`).Draw(t, "id"),
				Seq:         uint64(i + 1),
				Kind:        combatlog.KindAttack,
				AttackID:    rapid.StringMatching(`[a-z-]{1,16}`).Draw(t, "attack_id"),
				DisplayName: rapid.StringN(1, 30, -1).Draw(t, "name"),
				Damage:      rapid.IntRange(0, 50).Draw(t, "damage"),
				RecordedAt:  time.Unix(rapid.Int64Range(1_000_000_000, 1_700_000_000).Draw(t, "ts"), 0).UTC(),
			}
		}
		order := rapid.SampledFrom([]combatlog.Order{combatlog.NewestFirst, combatlog.OldestFirst}).Draw(t, "order")
		format := rapid.SampledFrom([]string{"json", "markdown"}).Draw(t, "format")

		r := export.Build("custom", history, order, at)
		renderer, ext := export.For(format)
		data, err := renderer.Render(r)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		parsed, err := export.ParserFor("log" + ext).Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		if parsed.Target != r.Target || parsed.Order != r.Order || parsed.Hits != r.Hits || parsed.Damage != r.Damage {
			t.Fatalf("header mismatch: got %+v, want %+v", parsed, r)
		}
		if len(parsed.Events) != len(r.Events) {
			t.Fatalf("events: got %d, want %d", len(parsed.Events), len(r.Events))
		}
		for i, e := range r.Events {
			g := parsed.Events[i]
			if g.ID != e.ID || g.Seq != e.Seq || g.DisplayName != e.DisplayName || !g.RecordedAt.Equal(e.RecordedAt) {
				t.Fatalf("event %d: got %+v, want %+v", i, g, e)
			}
		}
	})
}

func TestMarkdownParserRejectsForeignFiles(t *testing.T) {
	p := export.MarkdownParser{}

	_, err := p.Parse([]byte("# just notes\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing version sentinel")

	_, err = p.Parse([]byte("<!-- hollowlog-export-version: 1 -->\n# no data\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing data payload")

	bad := base64.StdEncoding.EncodeToString([]byte("not json {{{"))
	_, err = p.Parse([]byte("<!-- hollowlog-export-version: 1 -->\n<!-- hollowlog-data: " + bad + " -->\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse embedded JSON")
}

func TestJSONParserMalformed(t *testing.T) {
	for _, in := range []string{"", `{"target": `, "not json at all", `[1, 2, 3]`} {
		_, err := export.JSONParser{}.Parse([]byte(in))
		require.Error(t, err, "input %q", in)
		assert.Contains(t, err.Error(), "failed to parse JSON export")
	}
}

func TestForPicksRenderer(t *testing.T) {
	_, ext := export.For("JSON")
	assert.Equal(t, ".json", ext)
	_, ext = export.For("markdown")
	assert.Equal(t, ".md", ext)
	_, ext = export.For("")
	assert.Equal(t, ".md", ext)
}

package export

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/fakeyudi/hollowlog/internal/combatlog"
	"github.com/fakeyudi/hollowlog/internal/label"
)

const (
	versionSentinel = "<!-- hollowlog-export-version: 1 -->"
	dataPrefix      = "<!-- hollowlog-data: "
	dataSuffix      = " -->"
)

// Renderer serializes a Report to bytes.
type Renderer interface {
	Render(r *Report) ([]byte, error)
}

// JSONRenderer renders a Report as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Render(r *Report) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(r, "", "  ")
}

// MarkdownRenderer renders a Report as Markdown with an embedded base64 JSON
// payload so MarkdownParser can read it back losslessly.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(r *Report) ([]byte, error) {
	jsonBytes, err := sonic.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder
	sb.WriteString(versionSentinel + "\n")
	fmt.Fprintf(&sb, "%s%s%s\n\n", dataPrefix, encoded, dataSuffix)

	fmt.Fprintf(&sb, "# Combat log — %s — %s\n\n",
		r.TargetName,
		r.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
	)

	// ## Summary
	sb.WriteString("## Summary\n\n")
	if r.Arena != "" {
		fmt.Fprintf(&sb, "- Arena: %s\n", r.Arena)
	}
	if r.Version != "" {
		fmt.Fprintf(&sb, "- Version: %s\n", r.Version)
	}
	fmt.Fprintf(&sb, "- Hits: %d\n", r.Hits)
	fmt.Fprintf(&sb, "- Damage: %d\n", r.Damage)
	if left, ok := r.Remaining(); ok {
		fmt.Fprintf(&sb, "- HP remaining: %d/%d\n", left, r.HP)
	}
	sb.WriteString("\n")

	// ## Attacks
	sb.WriteString("## Attacks\n\n")
	counts := combatlog.Summarize(r.Events).ByAttack
	if len(counts) == 0 {
		sb.WriteString("_No attacks recorded._\n")
	} else {
		names := make([]string, 0, len(counts))
		width := len("Attack")
		for name := range counts {
			names = append(names, name)
			if w := label.Width(name); w > width {
				width = w
			}
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "| %s | Hits |\n", label.PadRight("Attack", width))
		fmt.Fprintf(&sb, "|%s|------|\n", strings.Repeat("-", width+2))
		for _, name := range names {
			fmt.Fprintf(&sb, "| %s | %4d |\n", label.PadRight(name, width), counts[name])
		}
	}
	sb.WriteString("\n")

	// ## History
	fmt.Fprintf(&sb, "## History (%s first)\n\n", r.Order)
	if len(r.Events) == 0 {
		sb.WriteString("_Log started._\n")
	} else {
		for _, e := range r.Events {
			if e.IsMarker() {
				fmt.Fprintf(&sb, "- [%s] _%s_\n", e.RecordedAt.Format("2006-01-02 15:04:05"), e.DisplayName)
				continue
			}
			fmt.Fprintf(&sb, "- [%s] #%d %s (%d)\n",
				e.RecordedAt.Format("2006-01-02 15:04:05"), e.Seq, e.DisplayName, e.Damage)
		}
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

// For returns the renderer and file extension for format ("json" or
// anything else for Markdown).
func For(format string) (Renderer, string) {
	if strings.EqualFold(format, "json") {
		return JSONRenderer{}, ".json"
	}
	return MarkdownRenderer{}, ".md"
}

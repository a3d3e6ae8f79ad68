package label

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestProgressExamples(t *testing.T) {
	cases := []struct {
		name           string
		current, total int
		want           string
	}{
		{"False Knight", 2, 5, "False Knight (2/5)"},
		{"False Knight", 0, 5, "False Knight (1/5)"},
		{"False Knight", 9, 5, "False Knight (5/5)"},
		{"Custom target", 3, 0, "Custom target (1/0)"},
		{"Hornet", -4, -1, "Hornet (1/-1)"},
	}
	for _, c := range cases {
		if got := Progress(c.name, c.current, c.total); got != c.want {
			t.Errorf("Progress(%q, %d, %d) = %q, want %q", c.name, c.current, c.total, got, c.want)
		}
	}
}

// Feature: hollowlog, Property 7: Progress label clamping
func TestProgressClampsCurrent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(t, "name")
		current := rapid.IntRange(-100, 100).Draw(t, "current")
		total := rapid.IntRange(-10, 50).Draw(t, "total")

		upper := total
		if upper < 1 {
			upper = 1
		}
		want := current
		if want < 1 {
			want = 1
		}
		if want > upper {
			want = upper
		}

		got := Progress(name, current, total)
		if exp := fmt.Sprintf("%s (%d/%d)", name, want, total); got != exp {
			t.Fatalf("got %q, want %q", got, exp)
		}
	})
}

func TestPadRight(t *testing.T) {
	if got := PadRight("Nail", 8); got != "Nail    " {
		t.Errorf("PadRight: got %q", got)
	}
	if got := PadRight("Vengeful Spirit", 4); got != "Vengeful Spirit" {
		t.Errorf("PadRight over width: got %q", got)
	}
	if got := Width("ホロウ"); got != 6 {
		t.Errorf("Width of wide runes: got %d, want 6", got)
	}
	if got := Width(PadRight("ホロウ", 8)); got != 8 {
		t.Errorf("PadRight wide runes: got width %d, want 8", got)
	}
}

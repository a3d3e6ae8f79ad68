package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/hollowlog/internal/combatlog"
)

// TestCombatLogScenario runs record / switch / restart / clear through the CLI.
// Every command is a fresh process-equivalent that reopens the state file.
func TestCombatLogScenario(t *testing.T) {
	isolate(t)

	out := mustRun(t, "status")
	if !strings.Contains(out, "Target: Gruz Mother") {
		t.Fatalf("default target: got %q", out)
	}

	mustRun(t, "hit", "Nail", "Strike")
	if n := strings.Count(mustRun(t, "log"), "Nail Strike"); n != 1 {
		t.Fatalf("default target after one hit: %d Nail Strikes", n)
	}

	out = mustRun(t, "select", "Custom target")
	if !strings.Contains(out, "Target: Custom target") {
		t.Fatalf("select output: %q", out)
	}
	history := mustRun(t, "log")
	if strings.Contains(history, "Nail Strike") {
		t.Fatalf("custom target leaked Gruz Mother history:\n%s", history)
	}
	if !strings.Contains(history, combatlog.MarkerDisplayName) {
		t.Fatalf("empty history should show the placeholder:\n%s", history)
	}

	mustRun(t, "hit", "nail-strike")
	history = mustRun(t, "log")
	if !strings.Contains(history, "Target: Custom target") || strings.Count(history, "Nail Strike") != 1 {
		t.Fatalf("custom target after hit:\n%s", history)
	}

	mustRun(t, "clear")
	history = mustRun(t, "log")
	if strings.Count(history, "Nail Strike") != 0 || strings.Count(history, combatlog.MarkerDisplayName) != 1 {
		t.Fatalf("after clear:\n%s", history)
	}

	out = mustRun(t, "select", "False Knight")
	if !strings.Contains(out, "Target: False Knight") {
		t.Fatalf("select output: %q", out)
	}
	if n := strings.Count(mustRun(t, "log"), "Nail Strike"); n != 0 {
		t.Fatalf("False Knight before any hit: %d Nail Strikes", n)
	}

	mustRun(t, "hit", "Nail Strike")
	if n := strings.Count(mustRun(t, "log"), "Nail Strike"); n != 1 {
		t.Fatalf("False Knight after one hit: %d Nail Strikes", n)
	}

	mustRun(t, "select", "gruz-mother")
	if n := strings.Count(mustRun(t, "log"), "Nail Strike"); n != 1 {
		t.Fatalf("Gruz Mother history changed by other targets: %d Nail Strikes", n)
	}
}

func TestHitUnknownAttackRecordedAsGiven(t *testing.T) {
	isolate(t)

	out := mustRun(t, "hit", "Abyss Shriek", "--damage", "30")
	if !strings.Contains(out, "Abyss Shriek (30)") {
		t.Fatalf("hit output: %q", out)
	}
	out = mustRun(t, "status")
	if !strings.Contains(out, "Damage: 30") || !strings.Contains(out, "HP remaining: 60/90") {
		t.Fatalf("status: %q", out)
	}

	// Flag values do not leak into the next run.
	out = mustRun(t, "hit", "Nail Strike")
	if !strings.Contains(out, "Nail Strike (5)") {
		t.Fatalf("hit output: %q", out)
	}
}

func TestSelectUnknownTarget(t *testing.T) {
	isolate(t)

	out := mustRun(t, "select", "the-radiance")
	if !strings.Contains(out, "Target: the-radiance") {
		t.Fatalf("select output: %q", out)
	}
	out = mustRun(t, "targets")
	if !strings.Contains(out, "* the-radiance (uncataloged)") {
		t.Fatalf("targets output: %q", out)
	}
}

func TestLogOrder(t *testing.T) {
	isolate(t)
	mustRun(t, "hit", "Nail Strike")
	mustRun(t, "hit", "Vengeful Spirit")

	newest := mustRun(t, "log")
	if strings.Index(newest, "Vengeful Spirit") > strings.Index(newest, "Nail Strike") {
		t.Fatalf("default order should be newest first:\n%s", newest)
	}
	oldest := mustRun(t, "log", "--order", "oldest")
	if strings.Index(oldest, "Nail Strike") > strings.Index(oldest, "Vengeful Spirit") {
		t.Fatalf("--order oldest:\n%s", oldest)
	}

	if _, err := executeCommand(rootCmd, "log", "--order", "sideways"); err == nil {
		t.Fatal("expected error for unknown order")
	}
}

func TestEnvOverridesOrderAndDataDir(t *testing.T) {
	isolate(t)
	dataDir := filepath.Join(t.TempDir(), "elsewhere")
	t.Setenv("HOLLOWLOG_DATA_DIR", dataDir)
	t.Setenv("HOLLOWLOG_ORDER", "oldest")

	mustRun(t, "hit", "Nail Strike")
	mustRun(t, "hit", "Great Slash")

	if _, err := os.Stat(filepath.Join(dataDir, "state.json")); err != nil {
		t.Fatalf("state not written to HOLLOWLOG_DATA_DIR: %v", err)
	}
	history := mustRun(t, "log")
	if strings.Index(history, "Nail Strike") > strings.Index(history, "Great Slash") {
		t.Fatalf("HOLLOWLOG_ORDER=oldest ignored:\n%s", history)
	}
	if got := GetConfig(); got.Order != "oldest" || got.DataDir != dataDir {
		t.Fatalf("merged config: %+v", got)
	}
}

func TestCorruptStateStartsFresh(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, "data", "hollowlog")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "status")
	if !strings.Contains(out, "Target: Gruz Mother") || !strings.Contains(out, "Hits: 0") {
		t.Fatalf("status after corrupt state: %q", out)
	}
}

// Feature: hollowlog, Property 6: History survives restarts command by command
func TestHitCountAcrossRuns(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		isolate(t)
		n := rapid.IntRange(0, 8).Draw(rt, "hits")
		for i := 0; i < n; i++ {
			if _, err := executeCommand(rootCmd, "hit", "Nail Strike"); err != nil {
				rt.Fatalf("hit: %v", err)
			}
		}
		out, err := executeCommand(rootCmd, "status")
		if err != nil {
			rt.Fatalf("status: %v", err)
		}
		want := "Hits: " + strconv.Itoa(n) + "\n"
		if !strings.Contains(out, want) {
			rt.Fatalf("expected %q in:\n%s", want, out)
		}
	})
}

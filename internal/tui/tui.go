// Package tui provides a Bubble Tea TUI for logging attacks live.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/hollowlog/internal/catalog"
	"github.com/fakeyudi/hollowlog/internal/combatlog"
	"github.com/fakeyudi/hollowlog/internal/export"
	"github.com/fakeyudi/hollowlog/internal/label"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Italic(true)
	attackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	damageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabLog tabID = iota
	tabTotals
	tabTargets
	tabCount
)

var tabNames = [tabCount]string{"Log", "Totals", "Targets"}

// ── Messages ────────────────────

type stateChangedMsg struct{}

// waitForChange blocks on the watcher channel; a closed channel ends the loop.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	store     *combatlog.Store
	attacks   []catalog.AttackInfo
	targets   []catalog.EncounterInfo
	changes   <-chan struct{}
	order     combatlog.Order
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
	reloadErr error
}

// New creates a TUI model over store. changes may be nil when the state file
// is not watched.
func New(store *combatlog.Store, order combatlog.Order, changes <-chan struct{}) Model {
	return Model{
		store:   store,
		attacks: catalog.Attacks(),
		targets: catalog.Encounters(),
		changes: changes,
		order:   order,
	}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return waitForChange(m.changes) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if i := int(key[0] - '1'); i < len(m.attacks) {
				a := m.attacks[i]
				m.store.RecordAttack(a.ID, a.Name, a.Damage)
				m.refresh()
			}
			return m, nil
		case "c":
			m.store.ClearActiveHistory()
			m.refresh()
			return m, nil
		case "]", "n":
			m.cycleTarget(1)
			return m, nil
		case "[", "p":
			m.cycleTarget(-1)
			return m, nil
		case "u":
			m.store.SelectTarget(catalog.CustomTargetID)
			m.refresh()
			return m, nil
		case "s":
			if m.order == combatlog.NewestFirst {
				m.order = combatlog.OldestFirst
			} else {
				m.order = combatlog.NewestFirst
			}
			m.refresh()
			m.viewports[tabLog].GotoTop()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case stateChangedMsg:
		m.reloadErr = m.store.Reload()
		m.refresh()
		return m, waitForChange(m.changes)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	// ── Row 1: brand header with the active target ──
	title := titleStyle.Width(m.width).Render("  hollowlog  " + m.store.ActiveTargetLabel())

	// ── Row 2: encounter setup ──
	setup := " " + m.encounterLine()

	// ── Row 3: tab bar ──
	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		name := fmt.Sprintf(" %s ", tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(name))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(name))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	// ── Last row: hints ──
	hint := fmt.Sprintf("  1-%d attack  c clear  [/] target  u custom  s sort (%s first)  q quit",
		len(m.attacks), m.order)
	if err := m.store.PersistErr(); err != nil {
		hint = warnStyle.Render("  not saved: "+err.Error()) + hint
	} else if m.reloadErr != nil {
		hint = warnStyle.Render("  reload failed: "+m.reloadErr.Error()) + hint
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint)

	return lipgloss.JoinVertical(lipgloss.Left, title, setup, tabRow, content, statusBar)
}

// ── Actions ───────────────────────────────────────────────────────────────────

// cycleTarget moves through the encounter catalog. An uncataloged active
// target restarts from the first (or last) entry.
func (m *Model) cycleTarget(step int) {
	n := len(m.targets)
	if n == 0 {
		return
	}
	i := catalog.EncounterIndex(m.store.ActiveTarget())
	switch {
	case i < 0 && step > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = (i + step + n) % n
	}
	m.store.SelectTarget(m.targets[i].ID)
	m.refresh()
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title + setup + tabRow + statusBar = 4 fixed rows
	vpHeight := m.height - 4
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	for i := tabID(0); i < tabCount; i++ {
		m.viewports[i].SetContent(m.renderTab(i))
	}
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *Model) renderTab(t tabID) string {
	switch t {
	case tabLog:
		return m.renderLog()
	case tabTotals:
		return m.renderTotals()
	case tabTargets:
		return m.renderTargets()
	}
	return ""
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *Model) encounterLine() string {
	id := m.store.ActiveTarget()
	i := catalog.EncounterIndex(id)
	if i < 0 {
		return dimStyle.Render("uncataloged target " + id)
	}
	e := m.targets[i]
	parts := []string{label.Progress("Encounter", i+1, len(m.targets))}
	if e.Version != "" {
		parts = append(parts, e.Version)
	}
	if e.Arena != "" {
		parts = append(parts, e.Arena)
	}
	return labelStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderLog() string {
	history := m.store.ActiveHistory()
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Combat history (%s first)", m.order)))
	if len(history) == 0 {
		sb.WriteString(markerStyle.Render("  "+combatlog.MarkerDisplayName) + "\n")
		return sb.String()
	}
	for _, e := range combatlog.Ordered(history, m.order) {
		ts := timeStyle.Render(e.RecordedAt.Local().Format("15:04:05"))
		if e.IsMarker() {
			sb.WriteString(fmt.Sprintf("  %s  %s\n\n", ts, markerStyle.Render(e.DisplayName)))
			continue
		}
		num := dimStyle.Render(fmt.Sprintf("#%-4d", e.Seq))
		dmg := damageStyle.Render(fmt.Sprintf("%d", e.Damage))
		sb.WriteString(fmt.Sprintf("  %s  %s %s  %s\n\n", ts, num, attackStyle.Render(e.DisplayName), dmg))
	}
	return sb.String()
}

func (m *Model) renderTotals() string {
	history := m.store.ActiveHistory()
	r := export.Build(m.store.ActiveTarget(), history, m.order, time.Now())
	totals := combatlog.Summarize(history)
	var sb strings.Builder
	sb.WriteString(heading("Totals"))

	row := func(name, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-16s", name)) + "  " + value + "\n")
	}
	row("Hits:", fmt.Sprintf("%d", r.Hits))
	row("Damage:", fmt.Sprintf("%d", r.Damage))
	if left, ok := r.Remaining(); ok {
		row("HP remaining:", fmt.Sprintf("%d/%d", left, r.HP))
	}

	sb.WriteString(heading("By attack"))
	if len(totals.ByAttack) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	names := make([]string, 0, len(totals.ByAttack))
	for name := range totals.ByAttack {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		row(name, fmt.Sprintf("%d", totals.ByAttack[name]))
	}
	return sb.String()
}

func (m *Model) renderTargets() string {
	active := m.store.ActiveTarget()
	var sb strings.Builder
	sb.WriteString(heading("Encounters"))
	for _, e := range m.targets {
		hits := combatlog.Summarize(m.store.History(e.ID)).Hits
		line := fmt.Sprintf("  %-20s %-22s %4d hits", e.Name, e.Arena, hits)
		if e.ID == active {
			line = selectedRowStyle.Width(m.width - 2).Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString(heading("Attacks"))
	for i, a := range m.attacks {
		sb.WriteString(fmt.Sprintf("  %s  %-18s %s\n", dimStyle.Render(fmt.Sprintf("%d", i+1)), a.Name, damageStyle.Render(fmt.Sprintf("%d", a.Damage))))
	}
	return sb.String()
}

// Run starts the TUI.
func Run(store *combatlog.Store, order combatlog.Order, changes <-chan struct{}) error {
	p := tea.NewProgram(New(store, order, changes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

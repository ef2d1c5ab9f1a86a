package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	advicedto "lifebalance/internal/modules/advice/dto"
	balancedto "lifebalance/internal/modules/balance/dto"
	progressdto "lifebalance/internal/modules/progress/dto"
	"lifebalance/internal/ui/components"
	"lifebalance/internal/ui/theme"
	adviceview "lifebalance/internal/ui/views/advice"
	balanceview "lifebalance/internal/ui/views/balance"
	progressview "lifebalance/internal/ui/views/progress"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type BalancePort interface {
	Score(ctx context.Context) (balancedto.ScoreReportOutput, error)
	Rate(ctx context.Context, area string, satisfaction, risk float64, notes string) (balancedto.RateOutput, error)
}

type ProgressPort interface {
	Overview(ctx context.Context) ([]progressdto.DomainProgressOutput, error)
	UpdateProgress(ctx context.Context, area string, actionIndex, metricIndex int, value float64) (progressdto.UpdateProgressOutput, error)
	Achieve(ctx context.Context, area string, index int, achieved bool) (progressdto.MilestoneOutput, error)
}

type AdvicePort interface {
	Advise(ctx context.Context) ([]advicedto.AdviceOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabBalance tabID = iota
	tabProgress
	tabAdvice
	tabCount
)

var tabLabels = [tabCount]string{
	"Balance", "Progress", "Advice",
}

// ─── async messages ───────────────────────────────────────────────────────────

type ratedMsg struct {
	out balancedto.RateOutput
	err error
}

type progressUpdatedMsg struct {
	out progressdto.UpdateProgressOutput
	err error
}

type milestoneSetMsg struct {
	out progressdto.MilestoneOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; rendering is delegated to the sub-views.
type Model struct {
	vaultPath string

	balance  BalancePort
	progress ProgressPort

	balanceView  balanceview.Model
	progressView progressview.Model
	adviceView   adviceview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(vaultPath string, balance BalancePort, progress ProgressPort, advice AdvicePort) Model {
	return Model{
		vaultPath:    vaultPath,
		balance:      balance,
		progress:     progress,
		balanceView:  balanceview.New(balance),
		progressView: progressview.New(progress),
		adviceView:   adviceview.New(advice),
		activeTab:    tabBalance,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(paletteCommands),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.balanceView.Init(),
		m.progressView.Init(),
		m.adviceView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Loaded messages go to their own view regardless of the active tab.
	case balanceview.ScoreLoadedMsg:
		var cmd tea.Cmd
		m.balanceView, cmd = m.balanceView.Update(msg)
		return m, cmd
	case progressview.OverviewLoadedMsg:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		return m, cmd
	case adviceview.AdviceLoadedMsg:
		var cmd tea.Cmd
		m.adviceView, cmd = m.adviceView.Update(msg)
		return m, cmd

	case ratedMsg:
		if msg.err != nil {
			m.status = "rate failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("rated %s · %s", msg.out.Metric.Title, formatScore(msg.out.Score))
		return m, m.reloadAll()

	case progressUpdatedMsg:
		if msg.err != nil {
			m.status = "progress failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s = %g · completion %.0f%%", msg.out.Event.MetricName, msg.out.Event.NewValue, msg.out.Action.Completion*100)
		if msg.out.Warning != "" {
			m.status = "recorded, completion unchanged: " + msg.out.Warning
		}
		return m, m.progressView.Reload()

	case milestoneSetMsg:
		if msg.err != nil {
			m.status = "milestone failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("milestone %q achieved=%t", msg.out.Description, msg.out.Achieved)
		return m, m.progressView.Reload()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the plan list while its filter is open.
		if m.activeTab == tabProgress && m.progressView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "refreshing"
			return m, m.reloadAll()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabBalance:
		m.balanceView, tabCmd = m.balanceView.Update(msg)
	case tabProgress:
		m.progressView, tabCmd = m.progressView.Update(msg)
	case tabAdvice:
		m.adviceView, tabCmd = m.adviceView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabBalance:
		return m.balanceView.View()
	case tabProgress:
		return m.progressView.View()
	case tabAdvice:
		return m.adviceView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	score := m.balanceView.Score()
	bar := "lifebalance  " + strings.Join(parts, sep) + "   " +
		theme.Score(score.Value, score.Defined && score.AreaCount > 0).Render(formatScore(score)) + "  " +
		theme.Muted.Render(m.vaultPath)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  r:refresh  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

var paletteCommands = []components.PaletteCommand{
	{Name: "rate", Usage: "rate <area> <satisfaction> <risk> [notes]"},
	{Name: "progress", Usage: "progress <action> <metric> <value>  (selected area)"},
	{Name: "achieve", Usage: "achieve <milestone>  (selected area)"},
	{Name: "unachieve", Usage: "unachieve <milestone>  (selected area)"},
	{Name: "refresh", Usage: "refresh"},
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "rate":
		if len(parts) < 4 {
			m.status = "usage: rate <area> <satisfaction> <risk> [notes]"
			return m, nil
		}
		satisfaction, err1 := strconv.ParseFloat(parts[2], 64)
		risk, err2 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil {
			m.status = "satisfaction and risk must be numbers"
			return m, nil
		}
		notes := strings.Join(parts[4:], " ")
		return m, m.rateCmd(parts[1], satisfaction, risk, notes)

	case "progress":
		selected, ok := m.progressView.SelectedArea()
		if !ok {
			m.status = "no area selected"
			return m, nil
		}
		if len(parts) != 4 {
			m.status = "usage: progress <action> <metric> <value>"
			return m, nil
		}
		action, err1 := strconv.Atoi(parts[1])
		metric, err2 := strconv.Atoi(parts[2])
		value, err3 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			m.status = "usage: progress <action> <metric> <value>"
			return m, nil
		}
		m.activeTab = tabProgress
		return m, m.updateProgressCmd(selected, action, metric, value)

	case "achieve", "unachieve":
		selected, ok := m.progressView.SelectedArea()
		if !ok {
			m.status = "no area selected"
			return m, nil
		}
		if len(parts) != 2 {
			m.status = "usage: " + parts[0] + " <milestone>"
			return m, nil
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "milestone index must be a number"
			return m, nil
		}
		m.activeTab = tabProgress
		return m, m.setMilestoneCmd(selected, index, parts[0] == "achieve")

	case "refresh":
		m.status = "refreshing"
		return m, m.reloadAll()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.balanceView, _ = m.balanceView.Update(sz)
	m.progressView, _ = m.progressView.Update(sz)
	m.adviceView, _ = m.adviceView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(m.balanceView.Reload(), m.progressView.Reload(), m.adviceView.Reload())
}

func formatScore(s balancedto.ScoreOutput) string {
	switch {
	case s.AreaCount == 0:
		return "score n/a"
	case !s.Defined:
		return "score undefined"
	default:
		return fmt.Sprintf("score %.3f", s.Value)
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) rateCmd(area string, satisfaction, risk float64, notes string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.balance.Rate(context.Background(), area, satisfaction, risk, notes)
		return ratedMsg{out: out, err: err}
	}
}

func (m Model) updateProgressCmd(area string, action, metric int, value float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.UpdateProgress(context.Background(), area, action, metric, value)
		return progressUpdatedMsg{out: out, err: err}
	}
}

func (m Model) setMilestoneCmd(area string, index int, achieved bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.Achieve(context.Background(), area, index, achieved)
		return milestoneSetMsg{out: out, err: err}
	}
}

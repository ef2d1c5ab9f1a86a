package balance

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	balancedto "lifebalance/internal/modules/balance/dto"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type BalancePort interface {
	Score(ctx context.Context) (balancedto.ScoreReportOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ScoreLoadedMsg struct {
	Report balancedto.ScoreReportOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port         BalancePort
	report       balancedto.ScoreReportOutput
	err          error
	satisfaction progress.Model
	risk         progress.Model
	body         viewport.Model
	spinner      spinner.Model
	loading      bool
	width        int
	height       int
}

func New(port BalancePort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(0, 1)

	return Model{
		port:         port,
		satisfaction: progress.New(progress.WithSolidFill(theme.Hex(theme.Green)), progress.WithoutPercentage(), progress.WithWidth(24)),
		risk:         progress.New(progress.WithSolidFill(theme.Hex(theme.Red)), progress.WithoutPercentage(), progress.WithWidth(24)),
		body:         vp,
		spinner:      sp,
		loading:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the score and metrics again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		report, err := m.port.Score(context.Background())
		return ScoreLoadedMsg{Report: report, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.body.SetContent(m.renderBody())

	case ScoreLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.report = msg.Report
		}
		m.body.SetContent(m.renderBody())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading ratings…")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.body.View())
}

// Score exposes the last loaded report.
func (m Model) Score() balancedto.ScoreOutput {
	return m.report.Score
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.body.Width = m.width
	m.body.Height = m.height - lipgloss.Height(m.renderHeader())
	if m.body.Height < 1 {
		m.body.Height = 1
	}
	barW := (m.width - 30) / 2
	if barW < 10 {
		barW = 10
	}
	m.satisfaction.Width = barW
	m.risk.Width = barW
}

func (m Model) renderHeader() string {
	if m.err != nil {
		return theme.Bad.Render("balance: "+m.err.Error()) + "\n"
	}
	s := m.report.Score
	value := "undefined (no risk recorded)"
	if s.Defined {
		value = fmt.Sprintf("%.3f", s.Value)
	}
	if s.AreaCount == 0 {
		value = "no areas rated yet"
	}
	return fmt.Sprintf("%s %s  %s\n",
		theme.Title.Render("Balance score"),
		theme.Score(s.Value, s.Defined && s.AreaCount > 0).Render(value),
		theme.Muted.Render(fmt.Sprintf("risk-free %.1f · %d/%d areas", s.RiskFreeRate, s.AreaCount, len(area.All()))),
	)
}

func (m Model) renderBody() string {
	rated := make(map[string]balancedto.MetricOutput, len(m.report.Metrics))
	for _, metric := range m.report.Metrics {
		rated[metric.Area] = metric
	}
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-16s %-*s %s", "", m.satisfaction.Width+6, "satisfaction", "risk")) + "\n")
	for _, a := range area.All() {
		metric, ok := rated[string(a)]
		if !ok {
			sb.WriteString(fmt.Sprintf("%-16s %s\n", a.Title(), theme.Muted.Render("not rated")))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-16s %s %4.1f %s %4.1f\n",
			a.Title(),
			m.satisfaction.ViewAs(metric.Satisfaction/10),
			metric.Satisfaction,
			m.risk.ViewAs(metric.Risk/10),
			metric.Risk,
		))
	}
	return sb.String()
}

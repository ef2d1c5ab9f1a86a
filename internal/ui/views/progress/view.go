package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "lifebalance/internal/modules/progress/dto"
	"lifebalance/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProgressPort interface {
	Overview(ctx context.Context) ([]progressdto.DomainProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type OverviewLoadedMsg struct {
	Areas []progressdto.DomainProgressOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type areaItem struct {
	progress progressdto.DomainProgressOutput
}

func (i areaItem) Title() string { return i.progress.Title }
func (i areaItem) Description() string {
	return fmt.Sprintf("%d/%d actions done · %d milestones",
		i.progress.CompletedActions, i.progress.TotalActions, len(i.progress.Milestones))
}
func (i areaItem) FilterValue() string { return i.progress.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ProgressPort
	list    list.Model
	detail  viewport.Model
	bar     progressbar.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ProgressPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Plans"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		bar:     progressbar.New(progressbar.WithGradient(theme.Hex(theme.Peach), theme.Hex(theme.Green)), progressbar.WithWidth(30)),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		areas, err := m.port.Overview(context.Background())
		return OverviewLoadedMsg{Areas: areas, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.detail.SetContent(m.renderDetail())

	case OverviewLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Plans: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Plans"
		items := make([]list.Item, len(msg.Areas))
		for i, a := range msg.Areas {
			items[i] = areaItem{progress: a}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
			m.detail.GotoTop()
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading plans…")
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No plans yet. Add one with `lifebalance action add` or `plan import`."))
	}

	listW := m.width * 3 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedArea returns the area key of the current selection, if any.
func (m Model) SelectedArea() (string, bool) {
	if item, ok := m.list.SelectedItem().(areaItem); ok {
		return item.progress.Area, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 3 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
	if w := detailW - 20; w > 10 {
		m.bar.Width = min(w, 40)
	}
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(areaItem)
	if !ok {
		return theme.Muted.Render("Select an area to see its plan")
	}
	p := item.progress
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.Title) + "  ")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("completion rate %.0f%%", p.CompletionRate*100)) + "\n\n")

	for _, action := range p.Actions {
		marker := theme.Muted.Render("○")
		if action.Completed {
			marker = theme.Good.Render("●")
		}
		sb.WriteString(fmt.Sprintf("%s [%d] %s  %s\n", marker, action.Index, action.Description,
			theme.Muted.Render(fmt.Sprintf("p%d", action.Priority))))
		sb.WriteString("    " + m.bar.ViewAs(clamp(action.Completion)) + "\n")
		for i, metric := range action.Metrics {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("    %d. %s %g / %g", i, metric.Name, metric.Current, metric.Target)) + "\n")
		}
		if !action.Deadline.IsZero() {
			sb.WriteString(theme.Muted.Render("    due "+action.Deadline.Format("2006-01-02")) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(p.Milestones) > 0 {
		sb.WriteString(theme.Title.Render("Milestones") + "\n")
		for _, ms := range p.Milestones {
			marker := theme.Muted.Render("☐")
			if ms.Achieved {
				marker = theme.Good.Render("☑")
			}
			line := fmt.Sprintf("%s [%d] %s", marker, ms.Index, ms.Description)
			if !ms.TargetDate.IsZero() {
				line += theme.Muted.Render("  by " + ms.TargetDate.Format("2006-01-02"))
			}
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render(": progress <action> <metric> <value>   : achieve <milestone>"))
	return sb.String()
}

// clamp keeps over-achieved actions from overflowing the bar.
func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

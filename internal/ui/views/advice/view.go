package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	advicedto "lifebalance/internal/modules/advice/dto"
	"lifebalance/internal/ui/theme"
)

type AdvicePort interface {
	Advise(ctx context.Context) ([]advicedto.AdviceOutput, error)
}

type AdviceLoadedMsg struct {
	Advice []advicedto.AdviceOutput
	Err    error
}

type Model struct {
	port   AdvicePort
	advice []advicedto.AdviceOutput
	err    error
	body   viewport.Model
	width  int
	height int
}

func New(port AdvicePort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)
	return Model{port: port, body: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		advice, err := m.port.Advise(context.Background())
		return AdviceLoadedMsg{Advice: advice, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = msg.Height
	case AdviceLoadedMsg:
		m.advice, m.err = msg.Advice, msg.Err
		m.body.SetContent(m.render())
		m.body.GotoTop()
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.body.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("advice: " + m.err.Error())
	}
	if len(m.advice) == 0 {
		return theme.Muted.Render("Rate an area to get suggestions.")
	}
	var sb strings.Builder
	for _, a := range m.advice {
		label := theme.Good
		switch a.Category {
		case "low_satisfaction":
			label = theme.Hot
		case "high_risk":
			label = theme.Bad
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n", theme.Title.Render(a.Title),
			label.Render(strings.ReplaceAll(a.Category, "_", " ")),
			theme.Muted.Render(fmt.Sprintf("sat %.1f · risk %.1f", a.Satisfaction, a.Risk))))
		for _, s := range a.Suggestions {
			sb.WriteString("  • " + s + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

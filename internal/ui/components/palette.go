package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifebalance/internal/ui/theme"
)

// PaletteCommand describes one command the palette can suggest.
type PaletteCommand struct {
	Name  string
	Usage string
}

// PaletteSubmitMsg carries the trimmed input of a confirmed command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is sent when the palette is dismissed with esc.
type PaletteCancelMsg struct{}

var (
	paletteFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	recallStyle = lipgloss.NewStyle().Foreground(theme.Surface1).Italic(true)
)

// Palette is a one-line command prompt. Up and down recall earlier entries.
type Palette struct {
	input    textinput.Model
	commands []PaletteCommand
	recent   []string
	cursor   int
	open     bool
	width    int
}

func NewPalette(commands []PaletteCommand) Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "command"
	ti.CharLimit = 200
	return Palette{input: ti, commands: commands}
}

func (p Palette) Visible() bool { return p.open }

func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.cursor = len(p.recent)
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.open = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			line := strings.TrimSpace(p.input.Value())
			p.close()
			if line != "" {
				p.recent = append(p.recent, line)
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case tea.KeyUp:
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.recent[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case tea.KeyDown:
			if p.cursor < len(p.recent) {
				p.cursor++
				if p.cursor == len(p.recent) {
					p.input.Reset()
				} else {
					p.input.SetValue(p.recent[p.cursor])
					p.input.CursorEnd()
				}
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Suggestions returns the usage lines of commands whose name starts with the
// first word typed so far.
func (p Palette) Suggestions() []string {
	word := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	var out []string
	for _, c := range p.commands {
		if strings.HasPrefix(c.Name, word) {
			out = append(out, c.Usage)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	lines := []string{theme.Title.Render("Command"), p.input.View()}
	if s := p.Suggestions(); len(s) > 0 {
		lines = append(lines, "")
		for _, u := range s {
			lines = append(lines, usageStyle.Render("  "+u))
		}
	}
	if n := len(p.recent); n > 0 {
		lines = append(lines, "", recallStyle.Render("↑ "+p.recent[n-1]))
	}

	w := p.width
	if w < 24 {
		w = 64
	}
	return paletteFrame.Width(w - 2).Render(strings.Join(lines, "\n"))
}

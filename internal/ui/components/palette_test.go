package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lifebalance/internal/ui/components"
)

var commands = []components.PaletteCommand{
	{Name: "rate", Usage: "rate <area>"},
	{Name: "refresh", Usage: "refresh"},
	{Name: "progress", Usage: "progress <action>"},
}

func typeText(p components.Palette, text string) components.Palette {
	for _, r := range text {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteSuggestionsFollowFirstWord(t *testing.T) {
	t.Parallel()
	p := components.NewPalette(commands)
	p.Open()
	if got := p.Suggestions(); len(got) != 3 {
		t.Fatalf("expected every command for empty input, got %v", got)
	}
	p = typeText(p, "r")
	if got := p.Suggestions(); len(got) != 2 {
		t.Fatalf("expected rate and refresh, got %v", got)
	}
	p = typeText(p, "ate health 5")
	if got := p.Suggestions(); len(got) != 1 || got[0] != "rate <area>" {
		t.Fatalf("expected rate only, got %v", got)
	}
}

func TestPaletteSubmitClosesAndRecalls(t *testing.T) {
	t.Parallel()
	p := components.NewPalette(commands)
	p.Open()
	p = typeText(p, "  refresh ")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "refresh" {
		t.Fatalf("unexpected submit: %#v", msg)
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd().(components.PaletteSubmitMsg); msg.Input != "refresh" {
		t.Fatalf("recall should restore the last entry, got %q", msg.Input)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette(commands)
	p.Open()
	p = typeText(p, "rate")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() || p.View() != "" {
		t.Fatalf("palette should be hidden after esc")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}

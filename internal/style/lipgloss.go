package style

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Lipgloss converts s into a lipgloss style for on-screen previews. A nil
// renderer uses the lipgloss default.
func (s Style) Lipgloss(r *lipgloss.Renderer) lipgloss.Style {
	out := lipgloss.NewStyle()
	if r != nil {
		out = r.NewStyle()
	}
	if s.Fg != nil {
		out = out.Foreground(s.Fg.terminalColor())
	}
	if s.Bg != nil {
		out = out.Background(s.Bg.terminalColor())
	}
	return out.
		Bold(s.Bold()).
		Faint(s.Dim()).
		Italic(s.Italic()).
		Underline(s.Underline() || s.Has(Underline2)).
		Blink(s.Has(Blink) || s.Has(Blink2)).
		Reverse(s.Reverse()).
		Strikethrough(s.Strike())
}

func (c Color) terminalColor() lipgloss.TerminalColor {
	switch c.Type {
	case ColorDefault:
		return lipgloss.NoColor{}
	case ColorStandard, ColorEightBit:
		return lipgloss.Color(strconv.Itoa(c.Number))
	default:
		return lipgloss.Color(c.Hex())
	}
}

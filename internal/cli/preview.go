package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/pattern"
	"github.com/dyeshell/dye/internal/style"
)

var previewInputs inputFlags

func init() {
	rootCmd.AddCommand(previewCmd)
	addInputFlags(previewCmd, &previewInputs, true)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "show a preview of the styles in a theme",
	Long: `Show the colors and styles of a theme, or of a pattern on top of its
theme, along with where each definition came from.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		theme, err := loadTheme(&previewInputs, cfg, false)
		if err != nil {
			return err
		}
		p, err := loadPattern(cmd.Context(), &previewInputs, cfg, false, theme)
		if err != nil {
			return err
		}
		if theme == nil && p == nil {
			return errors.New("nothing to preview")
		}

		out := cmd.OutOrStdout()
		return writePreview(out, newRenderer(out), theme, p)
	},
}

// newRenderer returns a lipgloss renderer for w that honors --force-color
// and NO_COLOR.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case !colorEnabled(w):
		r.SetColorProfile(termenv.Ascii)
	case !isTerminal(w):
		r.SetColorProfile(termenv.TrueColor)
	}
	return r
}

func writePreview(w io.Writer, r *lipgloss.Renderer, theme *pattern.Theme, p *pattern.Pattern) error {
	loadedPattern := p != nil
	if p == nil {
		p = pattern.Empty(theme)
	}

	textStyle, ok := p.Styles.Get("text")
	if !ok {
		return &dyeerr.SyntaxError{Msg: "no 'text' style defined"}
	}
	text := textStyle.Lipgloss(r)

	var summary [][2]string
	if theme != nil {
		summary = append(summary, [2]string{"Theme file:", theme.Filename})
		summary = append(summary, metadataRows(theme.Metadata)...)
	} else {
		summary = append(summary, [2]string{"No theme file.", ""})
	}
	summary = append(summary, [2]string{"", ""})
	if loadedPattern {
		summary = append(summary, [2]string{"Pattern file:", p.Filename})
		summary = append(summary, metadataRows(p.Metadata)...)
	} else {
		summary = append(summary, [2]string{"No pattern file.", ""})
	}

	var colors [][2]string
	for _, name := range p.Colors.Keys() {
		source, def, ok := p.ColorSource(name)
		if !ok {
			continue
		}
		swatch := "██"
		if value, ok := p.Colors.String(name); ok {
			if c, err := style.ParseColor(value); err == nil {
				swatch = style.Style{Fg: &c}.Lipgloss(r).Render(swatch)
			}
		}
		colors = append(colors, [2]string{swatch + " " + name, fmt.Sprintf(` = "%s"  # from %s`, def, source)})
	}

	var styles [][2]string
	for _, name := range p.Styles.Names() {
		source, def, ok := p.StyleSource(name)
		if !ok {
			continue
		}
		s, _ := p.Styles.Get(name)
		styles = append(styles, [2]string{s.Lipgloss(r).Render(name), fmt.Sprintf(` = "%s"  # from %s`, def, source)})
	}

	sections := [][]string{
		{" Inputs"},
		columns(summary),
		{" [colors]"},
		columns(colors),
		{" [styles]"},
		columns(styles),
	}

	width := 0
	for _, section := range sections {
		for _, line := range section {
			if lw := lipgloss.Width(line); lw > width {
				width = lw
			}
		}
	}

	var body []string
	for i, section := range sections {
		if i > 0 {
			body = append(body, strings.Repeat("─", width))
		}
		body = append(body, section...)
	}

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Inherit(text)
	_, err := fmt.Fprintln(w, box.Render(strings.Join(body, "\n")))
	return err
}

func metadataRows(md pattern.Metadata) [][2]string {
	field := func(value string) string {
		if value == "" {
			return " ="
		}
		return ` = "` + value + `"`
	}
	return [][2]string{
		{"  description", field(md.Description)},
		{"  type", field(md.Type)},
		{"  version", field(md.Version)},
	}
}

// columns lays out two-column rows with a one space left pad, aligning the
// second column.
func columns(rows [][2]string) []string {
	left := 0
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		if w := lipgloss.Width(row[0]); w > left {
			left = w
		}
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if row[1] == "" {
			lines = append(lines, " "+row[0])
			continue
		}
		pad := strings.Repeat(" ", left-lipgloss.Width(row[0]))
		lines = append(lines, " "+row[0]+pad+" "+row[1])
	}
	return lines
}

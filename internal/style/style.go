// Package style parses style descriptions such as "bold white on #1e1e2e"
// and renders them as ANSI SGR parameters.
package style

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/dyeshell/dye/internal/dyeerr"
)

// Attr is a single text attribute.
type Attr uint16

const (
	Bold Attr = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Blink2
	Reverse
	Conceal
	Strike
	Underline2
	Frame
	Encircle
	Overline
)

// attrOrder fixes the order attributes are rendered in.
var attrOrder = []struct {
	attr Attr
	name string
	sgr  string
}{
	{Bold, "bold", termenv.BoldSeq},
	{Dim, "dim", termenv.FaintSeq},
	{Italic, "italic", termenv.ItalicSeq},
	{Underline, "underline", termenv.UnderlineSeq},
	{Blink, "blink", termenv.BlinkSeq},
	{Blink2, "blink2", "6"},
	{Reverse, "reverse", termenv.ReverseSeq},
	{Conceal, "conceal", "8"},
	{Strike, "strike", termenv.CrossOutSeq},
	{Underline2, "underline2", "21"},
	{Frame, "frame", "51"},
	{Encircle, "encircle", "52"},
	{Overline, "overline", termenv.OverlineSeq},
}

var attrWords = map[string]Attr{
	"bold":       Bold,
	"b":          Bold,
	"dim":        Dim,
	"d":          Dim,
	"italic":     Italic,
	"i":          Italic,
	"underline":  Underline,
	"u":          Underline,
	"blink":      Blink,
	"blink2":     Blink2,
	"reverse":    Reverse,
	"r":          Reverse,
	"conceal":    Conceal,
	"strike":     Strike,
	"s":          Strike,
	"underline2": Underline2,
	"uu":         Underline2,
	"frame":      Frame,
	"encircle":   Encircle,
	"overline":   Overline,
	"o":          Overline,
}

// Style is a foreground color, a background color, and a set of
// attributes. The zero Style is empty.
type Style struct {
	Fg   *Color
	Bg   *Color
	Link string

	attrs Attr // attributes that are on
	set   Attr // attributes explicitly on or off
}

// Parse converts a style description into a Style. Empty text and "none"
// produce the empty style.
func Parse(text string) (Style, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return Style{}, nil
	}

	var s Style
	words := strings.Fields(trimmed)
	for i := 0; i < len(words); i++ {
		word := strings.ToLower(words[i])
		switch word {
		case "on":
			i++
			if i >= len(words) {
				return Style{}, syntaxErr(text, "color expected after 'on'")
			}
			c, err := ParseColor(words[i])
			if err != nil {
				return Style{}, syntaxErr(text, "unable to parse %q as background color", words[i])
			}
			s.Bg = &c
		case "not":
			i++
			if i >= len(words) {
				return Style{}, syntaxErr(text, "expected style attribute after 'not'")
			}
			attr, ok := attrWords[strings.ToLower(words[i])]
			if !ok {
				return Style{}, syntaxErr(text, "expected style attribute after 'not', found %q", words[i])
			}
			s.attrs &^= attr
			s.set |= attr
		case "link":
			i++
			if i >= len(words) {
				return Style{}, syntaxErr(text, "URL expected after 'link'")
			}
			s.Link = words[i]
		default:
			if attr, ok := attrWords[word]; ok {
				s.attrs |= attr
				s.set |= attr
				continue
			}
			c, err := ParseColor(word)
			if err != nil {
				return Style{}, syntaxErr(text, "unable to parse %q as color", words[i])
			}
			s.Fg = &c
		}
	}
	return s, nil
}

func syntaxErr(text, format string, args ...any) error {
	return &dyeerr.SyntaxError{
		Source: fmt.Sprintf("style '%s'", text),
		Msg:    fmt.Sprintf(format, args...),
	}
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Style {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether attr is switched on.
func (s Style) Has(attr Attr) bool { return s.attrs&attr != 0 }

func (s Style) Bold() bool      { return s.Has(Bold) }
func (s Style) Dim() bool       { return s.Has(Dim) }
func (s Style) Italic() bool    { return s.Has(Italic) }
func (s Style) Underline() bool { return s.Has(Underline) }
func (s Style) Reverse() bool   { return s.Has(Reverse) }
func (s Style) Strike() bool    { return s.Has(Strike) }

// IsEmpty reports whether s carries no colors, attributes, or link.
func (s Style) IsEmpty() bool {
	return s.Fg == nil && s.Bg == nil && s.set == 0 && s.Link == ""
}

// SGR renders the semicolon-separated SGR parameters for s: attributes
// first, then the foreground, then the background.
func (s Style) SGR() string {
	var codes []string
	for _, a := range attrOrder {
		if s.attrs&a.attr != 0 {
			codes = append(codes, a.sgr)
		}
	}
	if s.Fg != nil {
		codes = append(codes, s.Fg.sgr(false))
	}
	if s.Bg != nil {
		codes = append(codes, s.Bg.sgr(true))
	}
	return strings.Join(codes, ";")
}

// On returns the escape sequence that switches s on.
func (s Style) On() string {
	sgr := s.SGR()
	if sgr == "" {
		return ""
	}
	return termenv.CSI + sgr + "m"
}

// Off returns the escape sequence that switches s off.
func (s Style) Off() string {
	if s.SGR() == "" {
		return ""
	}
	return termenv.CSI + termenv.ResetSeq + "m"
}

// Render wraps text in the escape sequences for s.
func (s Style) Render(text string) string {
	return s.On() + text + s.Off()
}

// String returns a description that parses back to s.
func (s Style) String() string {
	var words []string
	for _, a := range attrOrder {
		if s.set&a.attr == 0 {
			continue
		}
		if s.attrs&a.attr != 0 {
			words = append(words, a.name)
		} else {
			words = append(words, "not "+a.name)
		}
	}
	if s.Fg != nil {
		words = append(words, s.Fg.Name)
	}
	if s.Bg != nil {
		words = append(words, "on "+s.Bg.Name)
	}
	if s.Link != "" {
		words = append(words, "link "+s.Link)
	}
	if len(words) == 0 {
		return "none"
	}
	return strings.Join(words, " ")
}

package style

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorType classifies how a color is addressed by the terminal.
type ColorType int

const (
	// ColorDefault is the terminal's own foreground or background.
	ColorDefault ColorType = iota
	// ColorStandard is one of the 16 basic ANSI colors.
	ColorStandard
	// ColorEightBit is an entry 16-255 of the xterm palette.
	ColorEightBit
	// ColorTruecolor is a 24-bit RGB color.
	ColorTruecolor
)

func (t ColorType) String() string {
	switch t {
	case ColorDefault:
		return "default"
	case ColorStandard:
		return "standard"
	case ColorEightBit:
		return "8-bit"
	case ColorTruecolor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// Color is a parsed color.
type Color struct {
	Name    string
	Type    ColorType
	Number  int
	r, g, b uint8
}

// standardPalette is the RGB rendition of colors 0-15.
var standardPalette = [16][3]uint8{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

func paletteRGB(n int) (uint8, uint8, uint8) {
	switch {
	case n < 16:
		c := standardPalette[n]
		return c[0], c[1], c[2]
	case n < 232:
		n -= 16
		return cubeLevels[n/36], cubeLevels[(n/6)%6], cubeLevels[n%6]
	default:
		level := uint8(8 + (n-232)*10)
		return level, level, level
	}
}

// ParseColor parses a single color word.
func ParseColor(text string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(text))
	if name == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if name == "default" {
		return Color{Name: name, Type: ColorDefault}, nil
	}
	if n, ok := lookupName(name); ok {
		return numberedColor(name, n), nil
	}

	switch {
	case strings.HasPrefix(name, "#"):
		hex := name
		if len(hex) == 4 {
			hex = "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
		}
		if len(hex) != 7 {
			return Color{}, fmt.Errorf("unable to parse %q as color", text)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return Color{}, fmt.Errorf("unable to parse %q as color", text)
		}
		r, g, b := c.RGB255()
		return Color{Name: hex, Type: ColorTruecolor, r: r, g: g, b: b}, nil
	case strings.HasPrefix(name, "color(") && strings.HasSuffix(name, ")"):
		n, err := strconv.Atoi(strings.TrimSpace(name[6 : len(name)-1]))
		if err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("color number must be between 0 and 255 in %q", text)
		}
		return numberedColor(name, n), nil
	case strings.HasPrefix(name, "rgb(") && strings.HasSuffix(name, ")"):
		parts := strings.Split(name[4:len(name)-1], ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("expected three components in %q", text)
		}
		var rgb [3]uint8
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || v < 0 || v > 255 {
				return Color{}, fmt.Errorf("color components must be between 0 and 255 in %q", text)
			}
			rgb[i] = uint8(v)
		}
		return Color{Name: name, Type: ColorTruecolor, r: rgb[0], g: rgb[1], b: rgb[2]}, nil
	}
	return Color{}, fmt.Errorf("unable to parse %q as color", text)
}

func numberedColor(name string, n int) Color {
	c := Color{Name: name, Number: n, Type: ColorEightBit}
	if n < 16 {
		c.Type = ColorStandard
	}
	c.r, c.g, c.b = paletteRGB(n)
	return c
}

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool { return c.Type == ColorDefault }

// Truecolor returns the RGB value of c. Standard and 8-bit colors use the
// xterm palette. The default color has no RGB value.
func (c Color) Truecolor() (colorful.Color, bool) {
	if c.Type == ColorDefault {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(c.r) / 255, G: float64(c.g) / 255, B: float64(c.b) / 255}, true
}

// RGB255 returns the 8-bit channels of c.
func (c Color) RGB255() (uint8, uint8, uint8) {
	return c.r, c.g, c.b
}

// Hex returns c as #rrggbb, or "" for the default color.
func (c Color) Hex() string {
	tc, ok := c.Truecolor()
	if !ok {
		return ""
	}
	return tc.Hex()
}

// sgr returns the SGR parameters selecting c as a foreground or background.
func (c Color) sgr(background bool) string {
	base := 30
	if background {
		base = 40
	}
	switch c.Type {
	case ColorDefault:
		return strconv.Itoa(base + 9)
	case ColorStandard:
		if c.Number < 8 {
			return strconv.Itoa(base + c.Number)
		}
		return strconv.Itoa(base + 60 + c.Number - 8)
	case ColorEightBit:
		return fmt.Sprintf("%d;5;%d", base+8, c.Number)
	default:
		return fmt.Sprintf("%d;2;%d;%d;%d", base+8, c.r, c.g, c.b)
	}
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/soapnote/internal/taxonomy"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var chipColors = map[taxonomy.Color]lipgloss.Color{
	taxonomy.ColorBlue:   ColorBlue,
	taxonomy.ColorGreen:  ColorGreen,
	taxonomy.ColorRed:    ColorRed,
	taxonomy.ColorPurple: ColorPurple,
	taxonomy.ColorOrange: ColorOrange,
	taxonomy.ColorGray:   ColorDim,
}

// GroupStyle returns the chip style of a menu group.
func GroupStyle(g taxonomy.MenuGroup) lipgloss.Style {
	c, ok := chipColors[taxonomy.ColorOf(g)]
	if !ok {
		c = ColorDim
	}
	return lipgloss.NewStyle().Foreground(c)
}

// GroupChip renders "● label" in the group's colour.
func GroupChip(g taxonomy.MenuGroup) string {
	return GroupStyle(g).Render("● " + g.Label())
}

// Header renders a section header with an underline sized to its display width.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

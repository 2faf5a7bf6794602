package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorRedDim   = "#d06178"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"

	marqueeTickDuration = time.Duration(time.Second / 20)

	bordersAndPaddingWidth = 4
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	dangerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorGray)).
				Background(lipgloss.Color(colorRed))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
)

// Function to colorize text based on its status
// 0 (default) - unknown, 1 - green, 2 - red
func TextStatusColorize(text string, status int) string {
	switch status {
	case 1:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim)).Render(text)
	case 2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render(text)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(text)
	}
}

// typeSwatch renders a block in the content type's own color, or nothing
// when it has none.
func typeSwatch(color *string) string {
	if color == nil || *color == "" {
		return "  "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(*color)).Render("■ ")
}

// Shorten text to width terminal cells, ending in ".." when cut
func truncate(text string, width int) string {
	if ansi.StringWidth(text) <= width || width <= 3 {
		return text
	}
	return ansi.Truncate(text, width, "..")
}

// Create a padded version marquee text for scrolling. Offsets count runes so
// multi-byte titles are never split mid-character.
func (m model) marqueeText(text string, availableWidth int) string {
	if ansi.StringWidth(text) <= availableWidth {
		return text
	}
	runes := []rune(text)
	padded := []rune(text + "    " + text)
	offset := m.marqueeOffset % (len(runes) + bordersAndPaddingWidth)
	if offset+availableWidth <= len(padded) {
		text = string(padded[offset : offset+availableWidth])
	}
	return ansi.Truncate(text, availableWidth, "")
}

func renderConfirm(confirmIdx int) string {
	yesOpt, noOpt := "Yes", "No"
	if confirmIdx == 0 {
		yesOpt = dangerSelectedStyle.Render(" >" + yesOpt)
		noOpt = inactiveStyle.Render("  " + noOpt)
	} else {
		yesOpt = inactiveStyle.Render("  " + yesOpt)
		noOpt = selectedStyle.Render(" >" + noOpt)
	}
	return fmt.Sprintf("%s\n%s\n\n", yesOpt, noOpt)
}

func (m model) dynamicColumnWidth() (int, int, int) {
	var leftWidth, middleWidth, rightWidth int
	switch m.columnFocus {
	case focusTypes:
		leftWidth = (m.width * 30) / 100
		middleWidth = (m.width * 40) / 100
	case focusItems:
		leftWidth = (m.width * 20) / 100
		middleWidth = (m.width * 40) / 100
	default:
		leftWidth = (m.width * 20) / 100
		middleWidth = (m.width * 20) / 100
	}
	rightWidth = m.width - (leftWidth + middleWidth)
	return leftWidth, middleWidth, rightWidth
}

func joinTagNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}

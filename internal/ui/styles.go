package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Design System Colors - Adaptive based on terminal background
var (
	// Primary brand colors (work well on both light and dark)
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	// Semantic colors
	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	// Neutral colors (contrast-adaptive)
	ColorText       lipgloss.Color
	ColorTextMuted  lipgloss.Color
	ColorTextDim    lipgloss.Color
	ColorBorder     lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorOverlay    lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background and rebuilds the styles
func initializeColors() {
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
	case "dark":
		setDarkThemeColors()
	default:
		if lipgloss.HasDarkBackground() {
			setDarkThemeColors()
		} else {
			setLightThemeColors()
		}
	}
	buildStyles()
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")   // Bright magenta/pink
	ColorSecondary = lipgloss.Color("33")  // Bright cyan/blue
	ColorAccent = lipgloss.Color("214")    // Bright orange/yellow
	ColorSuccess = lipgloss.Color("10")    // Bright green
	ColorWarning = lipgloss.Color("11")    // Bright yellow
	ColorError = lipgloss.Color("9")       // Bright red
	ColorInfo = lipgloss.Color("12")       // Bright blue
	ColorText = lipgloss.Color("252")      // Near white
	ColorTextMuted = lipgloss.Color("244") // Light gray
	ColorTextDim = lipgloss.Color("240")   // Medium gray
	ColorBorder = lipgloss.Color("238")    // Dark gray
	ColorBackground = lipgloss.Color("235")
	ColorSurface = lipgloss.Color("236")
	ColorOverlay = lipgloss.Color("234")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")   // Darker magenta for contrast
	ColorSecondary = lipgloss.Color("24")  // Darker cyan
	ColorAccent = lipgloss.Color("130")    // Darker orange
	ColorSuccess = lipgloss.Color("22")    // Dark green
	ColorWarning = lipgloss.Color("136")   // Dark yellow/orange
	ColorError = lipgloss.Color("160")     // Dark red
	ColorInfo = lipgloss.Color("24")       // Dark blue
	ColorText = lipgloss.Color("232")      // Near black
	ColorTextMuted = lipgloss.Color("240") // Dark gray
	ColorTextDim = lipgloss.Color("244")   // Medium gray
	ColorBorder = lipgloss.Color("248")    // Light gray
	ColorBackground = lipgloss.Color("255")
	ColorSurface = lipgloss.Color("254")
	ColorOverlay = lipgloss.Color("253")
}

// Component Styles
var (
	StyleTitle     lipgloss.Style
	StyleSubtitle  lipgloss.Style
	StyleText      lipgloss.Style
	StyleTextMuted lipgloss.Style
	StyleTextDim   lipgloss.Style

	StyleFocused    lipgloss.Style
	StyleUnselected lipgloss.Style

	StyleSuccess lipgloss.Style
	StyleWarning lipgloss.Style
	StyleError   lipgloss.Style
	StyleInfo    lipgloss.Style

	StyleSidebar          lipgloss.Style
	StyleContentContainer lipgloss.Style
	StyleCard             lipgloss.Style

	StyleFormLabel lipgloss.Style
	StyleFormHelp  lipgloss.Style
	StyleMetadata  lipgloss.Style
	StyleLoading   lipgloss.Style

	StyleScrollIndicator       lipgloss.Style
	StyleScrollIndicatorActive lipgloss.Style
)

func init() {
	setDarkThemeColors()
	buildStyles()
}

// buildStyles derives every style from the current palette
func buildStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleText = lipgloss.NewStyle().Foreground(ColorText)
	StyleTextMuted = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleTextDim = lipgloss.NewStyle().Foreground(ColorTextDim)

	StyleFocused = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")). // Pure white
		Background(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleUnselected = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Padding(0, 1)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Padding(0, 1)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true).Padding(0, 1)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true).Padding(0, 1)

	StyleSidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 1).
		MarginRight(2)

	StyleContentContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 2).
		MarginTop(1).
		MarginBottom(1)

	StyleCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 2).
		MarginBottom(1)

	StyleFormLabel = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Italic(true).
		Padding(0, 3)

	StyleMetadata = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Padding(0, 1)

	StyleLoading = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Italic(true).
		Padding(0, 1)

	StyleScrollIndicator = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Align(lipgloss.Center)

	StyleScrollIndicatorActive = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Align(lipgloss.Center)
}

// Create header for main page (no back button)
func CreateMainHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

// Create header for subpages (title only, back handled via keybind)
func CreateSubPageHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

func CreateMetadata(text string) string {
	return StyleMetadata.Render(text)
}

// Context-aware help creation with proper row display and smart truncation
func CreateContextualHelp(essential []string, additional []string, showExpanded bool, width int) string {
	var lines []string

	firstRowParts := essential
	if len(additional) > 0 && !showExpanded {
		firstRowParts = append(append([]string(nil), essential...), "f1 more")
	}
	lines = append(lines, truncate(strings.Join(firstRowParts, " • "), width))

	if showExpanded {
		for _, row := range additional {
			lines = append(lines, truncate(row, width))
		}
	}

	return StyleTextDim.Render(strings.Join(lines, "\n"))
}

func truncate(text string, width int) string {
	if width > 7 && len(text) > width-4 {
		return text[:width-7] + "..."
	}
	return text
}

// CreateStatus renders a notification line in the style of its kind
func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	case "info":
		return StyleInfo.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// CreateStepItem renders one row of the step sidebar
func CreateStepItem(number int, title string, current, completed, reachable bool) string {
	marker := "○"
	switch {
	case completed:
		marker = "✓"
	case current:
		marker = "●"
	}

	label := marker + " " + strconv.Itoa(number) + ". " + title
	switch {
	case current:
		return StyleFocused.Render(label)
	case completed:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Padding(0, 1).Render(label)
	case reachable:
		return StyleUnselected.Render(label)
	default:
		return lipgloss.NewStyle().Foreground(ColorTextDim).Padding(0, 1).Render(label)
	}
}

// Add consistent padding to main content (left only, no top padding)
func AddMainPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}

// Add consistent padding to form content (left only, no top padding)
func AddFormPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(1).Render(content)
}

// Create scroll indicators based on scroll state
func CreateScrollIndicators(canScrollUp, canScrollDown bool) (string, string) {
	indicator := func(active bool) string {
		if active {
			return StyleScrollIndicatorActive.Render("...")
		}
		return StyleScrollIndicator.Render("─────────")
	}
	return indicator(canScrollUp), indicator(canScrollDown)
}

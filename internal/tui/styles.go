package tui

import (
	"net/http"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/openapi-tui/internal/executor"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleRef = lipgloss.NewStyle().
			Foreground(colorBlue).
			Underline(true)
)

// methodStyle colors an HTTP method
func methodStyle(method string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch method {
	case http.MethodGet:
		return s.Foreground(colorCyan)
	case http.MethodPost:
		return s.Foreground(colorBlue)
	case http.MethodPut:
		return s.Foreground(colorYellow)
	case http.MethodDelete:
		return s.Foreground(colorRed)
	default:
		return s.Foreground(colorGray)
	}
}

// tokenStyle maps chroma YAML tokens onto the palette
func tokenStyle(t chroma.TokenType) lipgloss.Style {
	switch {
	case t.InCategory(chroma.Name):
		return lipgloss.NewStyle().Foreground(colorCyan)
	case t.InSubCategory(chroma.LiteralString):
		return lipgloss.NewStyle().Foreground(colorGreen)
	case t.InSubCategory(chroma.LiteralNumber):
		return lipgloss.NewStyle().Foreground(colorYellow)
	case t.InCategory(chroma.Keyword), t == chroma.Literal:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case t.InCategory(chroma.Comment), t.InCategory(chroma.Punctuation):
		return styleSubtle
	default:
		return lipgloss.NewStyle()
	}
}

// statusStyle colors a response status code
func statusStyle(code int) lipgloss.Style {
	switch {
	case executor.IsSuccessStatus(code):
		return styleSuccess
	case executor.IsClientErrorStatus(code), executor.IsServerErrorStatus(code):
		return styleError
	default:
		return styleWarning
	}
}

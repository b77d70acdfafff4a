// Package ui holds the terminal presentation of procreate: styles, spinners,
// prompts and rendered help text. Business logic lives in internal/core.
package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#1890FF") // Ant blue
	colorSecondary = lipgloss.Color("#69C0FF") // Light blue
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorText      = lipgloss.Color("#D1D5DB")
)

// Shared styles used across commands.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	DimStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	CommandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	// Key column of key/value listings (config get, route listings).
	KeyStyle = lipgloss.NewStyle().
			Foreground(colorText)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

// Theme returns the huh theme for interactive prompts.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(colorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(colorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(colorMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(colorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(colorSecondary)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(colorMuted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(colorMuted).
		Background(colorBorder)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(colorPrimary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(colorMuted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(colorPrimary)

	t.Blurred.Base = t.Blurred.Base.BorderForeground(colorBorder)
	t.Blurred.Title = t.Blurred.Title.Foreground(colorMuted)
	t.Blurred.Description = t.Blurred.Description.Foreground(colorBorder)

	return t
}

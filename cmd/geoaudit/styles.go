package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/seo-optimizer/geoaudit/models"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6C7086")
	colorSuccess = lipgloss.Color("#A6E3A1")
	colorWarning = lipgloss.Color("#F9E2AF")
	colorError   = lipgloss.Color("#F38BA8")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
)

func statusStyle(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusPass:
		return successStyle
	case models.StatusWarning:
		return warningStyle
	default:
		return errorStyle
	}
}

func resultStyle(t models.ResultType) lipgloss.Style {
	switch t {
	case models.ResultSuccess:
		return successStyle
	case models.ResultWarning:
		return warningStyle
	default:
		return errorStyle
	}
}

// score renders "n/100" coloured by its status band.
func score(n int) string {
	return statusStyle(models.StatusForScore(n)).Render(fmt.Sprintf("%d/100", n))
}

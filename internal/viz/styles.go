package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmrivas/phasecrit/internal/sector"
)

var (
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#444466"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	Warn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	sectorStyles = map[sector.Label]lipgloss.Style{
		sector.A: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		sector.B: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffcc00")),
		sector.C: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444")),
	}

	missingCell = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
)

// SectorStyle returns the render style for a sector label.
func SectorStyle(l sector.Label) lipgloss.Style {
	if st, ok := sectorStyles[l]; ok {
		return st
	}
	return missingCell
}

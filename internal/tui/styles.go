package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dynmotion/internal/anim"
)

var (
	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	label  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	metric = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	hint   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
	marker = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff00ff")).Bold(true)
	rail   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var phaseStyles = map[anim.Phase]lipgloss.Style{
	anim.Idle:        lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	anim.Delayed:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
	anim.Running:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
	anim.LoopPending: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
	anim.Completed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff")),
}

func phaseStyle(p anim.Phase) lipgloss.Style {
	if s, ok := phaseStyles[p]; ok {
		return s
	}
	return label
}

// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package repository

import "github.com/charmbracelet/lipgloss"

var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	StyleFamily = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	StyleConfig = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065"))

	StyleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	StyleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AEAFAD"))

	StyleApp = lipgloss.NewStyle().Margin(1, 2)
)

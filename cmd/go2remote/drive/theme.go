// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import "github.com/charmbracelet/lipgloss"

// Theme is the drive view's color palette. Colors are ANSI 256-color
// codes or hex values; lipgloss degrades them to the terminal profile.
type Theme struct {
	TitleForeground lipgloss.Color
	TitleBackground lipgloss.Color
	BorderColor     lipgloss.Color
	LabelText       lipgloss.Color
	FaintText       lipgloss.Color
	Active          lipgloss.Color
	Warning         lipgloss.Color
	Error           lipgloss.Color
}

// DefaultTheme is tuned for dark terminals.
var DefaultTheme = Theme{
	TitleForeground: lipgloss.Color("#f7fcfa"),
	TitleBackground: lipgloss.Color("#344256"),
	BorderColor:     lipgloss.Color("#344256"),
	LabelText:       lipgloss.Color("245"),
	FaintText:       lipgloss.Color("240"),
	Active:          lipgloss.Color("42"),
	Warning:         lipgloss.Color("214"),
	Error:           lipgloss.Color("196"),
}

// styles are a Theme bound to a renderer.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	active lipgloss.Style
	idle   lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
	panel  lipgloss.Style
}

func newStyles(theme Theme, renderer *lipgloss.Renderer) styles {
	return styles{
		title: renderer.NewStyle().
			Bold(true).
			Foreground(theme.TitleForeground).
			Background(theme.TitleBackground).
			Padding(0, 1),
		label:  renderer.NewStyle().Width(8).Foreground(theme.LabelText),
		active: renderer.NewStyle().Foreground(theme.Active),
		idle:   renderer.NewStyle().Foreground(theme.FaintText),
		warn:   renderer.NewStyle().Foreground(theme.Warning),
		err:    renderer.NewStyle().Foreground(theme.Error),
		panel: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(0, 1),
	}
}

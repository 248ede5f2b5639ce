// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/richgrov/go2remote/transport"
)

const (
	DefaultSpeed    = 0.5
	DefaultTurnRate = 1.0
	DefaultRate     = 100 * time.Millisecond

	// DefaultHold covers the delay before a terminal starts
	// auto-repeating a held key.
	DefaultHold = 600 * time.Millisecond
)

// Config configures a Model.
type Config struct {
	Controller transport.Controller

	// Target is shown in the title bar.
	Target string

	// Speed is the x/y velocity for a pressed key.
	Speed float64

	// TurnRate is the z velocity for a pressed key.
	TurnRate float64

	// Rate is the Move period while an axis is active.
	Rate time.Duration

	// Hold is how long an axis stays active after its last key press.
	Hold time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	// Theme defaults to DefaultTheme.
	Theme *Theme

	// Renderer defaults to lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer
}

// DisconnectedMsg ends the program when the robot session ends.
type DisconnectedMsg struct {
	Err error
}

type tickMsg time.Time

type axis struct {
	value float64
	until time.Time
}

func (a *axis) set(value float64, until time.Time) {
	a.value = value
	a.until = until
}

func (a *axis) current(now time.Time) float64 {
	if !now.Before(a.until) {
		a.value = 0
	}
	return a.value
}

// Model is the bubbletea model for keyboard teleoperation.
type Model struct {
	config Config
	keys   KeyMap
	help   help.Model
	styles styles

	x, y, z axis
	moving  bool
	sent    int
	sendErr error

	status      string
	statusLevel slog.Level

	disconnected bool
	err          error
}

// New returns a Model driving config.Controller.
func New(config Config) Model {
	if config.Speed == 0 {
		config.Speed = DefaultSpeed
	}
	if config.TurnRate == 0 {
		config.TurnRate = DefaultTurnRate
	}
	if config.Rate <= 0 {
		config.Rate = DefaultRate
	}
	if config.Hold <= 0 {
		config.Hold = DefaultHold
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	theme := DefaultTheme
	if config.Theme != nil {
		theme = *config.Theme
	}
	renderer := config.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return Model{
		config: config,
		keys:   DefaultKeyMap,
		help:   help.New(),
		styles: newStyles(theme, renderer),
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return model.tick()
}

func (model Model) tick() tea.Cmd {
	return tea.Tick(model.config.Rate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tickMsg:
		model.step(time.Time(message))
		return model, model.tick()

	case DisconnectedMsg:
		model.disconnected = true
		model.err = message.Err
		return model, tea.Quit

	case logRecordMsg:
		model.status = message.Summary
		model.statusLevel = message.Level
		return model, nil

	case tea.WindowSizeMsg:
		model.help.Width = message.Width
		return model, nil
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	until := model.config.Now().Add(model.config.Hold)
	speed := model.config.Speed
	turn := model.config.TurnRate

	switch {
	case key.Matches(message, model.keys.Quit):
		model.halt()
		return model, tea.Quit
	case key.Matches(message, model.keys.Stop):
		model.halt()
	case key.Matches(message, model.keys.Forward):
		model.x.set(speed, until)
	case key.Matches(message, model.keys.Back):
		model.x.set(-speed, until)
	case key.Matches(message, model.keys.Left):
		model.y.set(speed, until)
	case key.Matches(message, model.keys.Right):
		model.y.set(-speed, until)
	case key.Matches(message, model.keys.TurnLeft):
		model.z.set(turn, until)
	case key.Matches(message, model.keys.TurnRight):
		model.z.set(-turn, until)
	}
	return model, nil
}

// halt clears every axis and sends a zero Move if the robot was moving.
func (model *Model) halt() {
	model.x = axis{}
	model.y = axis{}
	model.z = axis{}
	if model.moving {
		model.move(0, 0, 0)
		model.moving = false
	}
}

// step sends the current velocity for one tick.
func (model *Model) step(now time.Time) {
	x := model.x.current(now)
	y := model.y.current(now)
	z := model.z.current(now)
	if x == 0 && y == 0 && z == 0 {
		if model.moving {
			model.move(0, 0, 0)
			model.moving = false
		}
		return
	}
	model.moving = true
	model.move(x, y, z)
}

func (model *Model) move(x, y, z float64) {
	if err := model.config.Controller.Move(x, y, z); err != nil {
		model.sendErr = err
		return
	}
	model.sendErr = nil
	model.sent++
}

// Sent returns the number of Move commands sent.
func (model Model) Sent() int {
	return model.sent
}

// Velocity returns the currently commanded velocity.
func (model Model) Velocity() (x, y, z float64) {
	return model.x.value, model.y.value, model.z.value
}

// Err returns the disconnect cause, or nil if the user quit.
func (model Model) Err() error {
	return model.err
}

const gaugeWidth = 21

// View implements tea.Model.
func (model Model) View() string {
	var builder strings.Builder

	target := model.config.Target
	if target == "" {
		target = "robot"
	}
	builder.WriteString(model.styles.title.Render("go2remote drive: " + target))
	builder.WriteString("\n\n")

	gauges := lipgloss.JoinVertical(lipgloss.Left,
		model.gauge("forward", model.x.value, model.config.Speed),
		model.gauge("strafe", model.y.value, model.config.Speed),
		model.gauge("yaw", model.z.value, model.config.TurnRate),
	)
	builder.WriteString(model.styles.panel.Render(gauges))
	builder.WriteString("\n")

	state := model.styles.idle.Render("idle")
	if model.moving {
		state = model.styles.active.Render("moving")
	}
	fmt.Fprintf(&builder, "%s  sent %d\n", state, model.sent)

	switch {
	case model.sendErr != nil:
		builder.WriteString(model.styles.err.Render("send failed: " + model.sendErr.Error()))
	case model.status != "" && model.statusLevel >= slog.LevelError:
		builder.WriteString(model.styles.err.Render(model.status))
	case model.status != "" && model.statusLevel >= slog.LevelWarn:
		builder.WriteString(model.styles.warn.Render(model.status))
	case model.status != "":
		builder.WriteString(model.styles.idle.Render(model.status))
	}
	builder.WriteString("\n\n")
	builder.WriteString(model.help.View(model.keys))
	return builder.String()
}

// gauge renders value in [-limit, limit] as a centered bar.
func (model Model) gauge(label string, value, limit float64) string {
	cells := []rune(strings.Repeat("·", gaugeWidth))
	center := gaugeWidth / 2
	cells[center] = '|'
	if limit > 0 && value != 0 {
		span := int(math.Round(math.Abs(value) / limit * float64(center)))
		for i := 1; i <= span && i <= center; i++ {
			if value > 0 {
				cells[center+i] = '█'
			} else {
				cells[center-i] = '█'
			}
		}
	}
	bar := model.styles.idle.Render(string(cells))
	if value != 0 {
		bar = model.styles.active.Render(string(cells))
	}
	return fmt.Sprintf("%s %s %+.2f", model.styles.label.Render(label), bar, value)
}

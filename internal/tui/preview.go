// Package tui renders a motion live in the terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dynmotion/internal/anim"
	"github.com/san-kum/dynmotion/internal/clock"
	"github.com/san-kum/dynmotion/internal/motion"
	"github.com/san-kum/dynmotion/internal/value"
)

const (
	frameInterval = 16 * time.Millisecond
	historyLen    = 60
	defaultWidth  = 60
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// Scene describes what a preview plays and how to draw it.
type Scene[T value.Animatable[T]] struct {
	Name string
	// Play (re)starts the animation on m.
	Play func(m *motion.Motion[T]) error
	// Flip retargets a running animation; nil disables the key.
	Flip func(m *motion.Motion[T]) error
	// Position maps a value onto the rail, 0 at the left and 1 at the right.
	Position func(T) float64
	// Swatch optionally renders the value as a color block.
	Swatch func(T) (value.Color, bool)
}

type tickMsg time.Time

// tickClock reports the time carried by the latest tick so frame deltas
// follow the message stream.
type tickClock struct{ now time.Time }

func (c *tickClock) Now() time.Time { return c.now }

type Preview[T value.Animatable[T]] struct {
	scene  Scene[T]
	motion *motion.Motion[T]
	clock  *tickClock
	frames *clock.Frame

	paused  bool
	err     error
	history []float64
	elapsed time.Duration
	width   int
}

func NewPreview[T value.Animatable[T]](m *motion.Motion[T], scene Scene[T]) *Preview[T] {
	c := &tickClock{}
	return &Preview[T]{
		scene:   scene,
		motion:  m,
		clock:   c,
		frames:  clock.NewFrame(c, 100*time.Millisecond),
		history: make([]float64, 0, historyLen),
		width:   defaultWidth,
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (p *Preview[T]) Init() tea.Cmd {
	p.restart()
	return tick()
}

func (p *Preview[T]) restart() {
	p.motion.Reset()
	p.history = p.history[:0]
	p.elapsed = 0
	p.frames = clock.NewFrame(p.clock, p.frames.MaxDelta)
	if p.scene.Play != nil {
		p.err = p.scene.Play(p.motion)
	}
}

func (p *Preview[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ", "space":
			p.paused = !p.paused
		case "r":
			p.restart()
		case "t":
			if p.scene.Flip != nil {
				p.err = p.scene.Flip(p.motion)
			}
		}
		return p, nil
	case tea.WindowSizeMsg:
		p.width = max(20, msg.Width-8)
		return p, nil
	case tickMsg:
		p.clock.now = time.Time(msg)
		dt := p.frames.Delta()
		if !p.paused {
			p.advance(dt)
		}
		return p, tick()
	}
	return p, nil
}

func (p *Preview[T]) advance(dt time.Duration) {
	v, _ := p.motion.Advance(dt)
	p.elapsed += dt
	if p.scene.Position == nil {
		return
	}
	if len(p.history) == historyLen {
		copy(p.history, p.history[1:])
		p.history = p.history[:historyLen-1]
	}
	p.history = append(p.history, p.scene.Position(v))
}

func (p *Preview[T]) View() string {
	v := p.motion.Value()
	st := p.motion.State()

	var b strings.Builder
	b.WriteString(title.Render(p.scene.Name))
	b.WriteString("  ")
	b.WriteString(phaseStyle(st.Phase).Render(st.String()))
	b.WriteString("\n\n")

	if p.scene.Position != nil {
		b.WriteString(p.rail(p.scene.Position(v)))
		b.WriteString("\n")
		b.WriteString(sparkline(p.history))
		b.WriteString("\n")
	}
	if p.scene.Swatch != nil {
		if c, ok := p.scene.Swatch(v); ok {
			block := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(strings.Repeat(" ", 12))
			b.WriteString(block + " " + label.Render(c.Hex()) + "\n")
		}
	}

	fmt.Fprintf(&b, "\n%s %s   %s %s   %s %s\n",
		label.Render("value"), metric.Render(fmt.Sprint(v)),
		label.Render("t"), metric.Render(fmt.Sprintf("%.2fs", p.elapsed.Seconds())),
		label.Render("scheme"), metric.Render(p.motion.Scheme().String()))
	if p.err != nil {
		b.WriteString(phaseStyle(anim.Idle).Render("error: "+p.err.Error()) + "\n")
	}

	keys := "space pause · r restart · q quit"
	if p.scene.Flip != nil {
		keys = "space pause · r restart · t retarget · q quit"
	}
	if p.paused {
		keys = "paused · " + keys
	}
	b.WriteString(hint.Render(keys))
	return panel.Render(b.String())
}

func (p *Preview[T]) rail(pos float64) string {
	at := int(value.Clamp(pos, 0, 1)*float64(p.width-1) + 0.5)
	return rail.Render(strings.Repeat("─", at)) +
		marker.Render("●") +
		rail.Render(strings.Repeat("─", p.width-1-at))
}

func sparkRunes(xs []float64) string {
	var b strings.Builder
	for _, x := range xs {
		i := int(value.Clamp(x, 0, 1) * float64(len(sparks)-1))
		b.WriteRune(sparks[i])
	}
	return b.String()
}

func sparkline(xs []float64) string { return label.Render(sparkRunes(xs)) }

// Run blocks until the user quits the preview.
func Run[T value.Animatable[T]](m *motion.Motion[T], scene Scene[T]) error {
	_, err := tea.NewProgram(NewPreview(m, scene)).Run()
	return err
}

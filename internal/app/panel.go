package app

import (
	"fmt"
	"strings"

	"github.com/Faultbox/wavy-plane/internal/wave"
)

// slider is one adjustable control value.
type slider struct {
	name string
	step float32
	min  float32
	max  float32
	ptr  func(c *wave.Controls) *float32
}

var sliders = []slider{
	{"frequency", 0.1, 0, 50, func(c *wave.Controls) *float32 { return &c.Frequency }},
	{"amplitude", 0.01, 0, 2, func(c *wave.Controls) *float32 { return &c.Amplitude }},
	{"position", 0.5, 0, 200, func(c *wave.Controls) *float32 { return &c.PositionMultiple }},
	{"brightness", 0.05, 0, 10, func(c *wave.Controls) *float32 { return &c.Brightness }},
	{"rotation", 5, -720, 720, func(c *wave.Controls) *float32 { return &c.RotationSpeed }},
	{"camera x", 0.1, -50, 50, func(c *wave.Controls) *float32 { return &c.CameraX }},
	{"camera y", 0.1, -50, 50, func(c *wave.Controls) *float32 { return &c.CameraY }},
	{"camera z", 0.1, -50, 50, func(c *wave.Controls) *float32 { return &c.CameraZ }},
}

// Panel is the keyboard control panel. It owns the live control values the renderer reads.
type Panel struct {
	controls *wave.Controls
	selected int
}

var _ wave.ControlSource = (*Panel)(nil)

// NewPanel edits c in place.
func NewPanel(c *wave.Controls) *Panel {
	return &Panel{controls: c}
}

// Values returns a snapshot of the current controls.
func (p *Panel) Values() wave.Controls {
	return *p.controls
}

// Selected returns the name of the focused slider.
func (p *Panel) Selected() string {
	return sliders[p.selected].name
}

// Next focuses the following slider, wrapping around.
func (p *Panel) Next() {
	p.selected = (p.selected + 1) % len(sliders)
}

// Prev focuses the previous slider, wrapping around.
func (p *Panel) Prev() {
	p.selected = (p.selected + len(sliders) - 1) % len(sliders)
}

// Adjust moves the focused slider by steps increments, clamped to its range.
func (p *Panel) Adjust(steps int) float32 {
	s := sliders[p.selected]
	v := s.ptr(p.controls)
	*v += float32(steps) * s.step
	if *v < s.min {
		*v = s.min
	}
	if *v > s.max {
		*v = s.max
	}
	return *v
}

// ToggleAutoRotate flips the auto-rotate checkbox.
func (p *Panel) ToggleAutoRotate() bool {
	p.controls.AutoRotate = !p.controls.AutoRotate
	return p.controls.AutoRotate
}

// HUD formats the controls for the window title, marking the focused slider.
func (p *Panel) HUD() string {
	var b strings.Builder
	for i, s := range sliders {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == p.selected {
			b.WriteString("[")
		}
		fmt.Fprintf(&b, "%s %.2f", s.name, *s.ptr(p.controls))
		if i == p.selected {
			b.WriteString("]")
		}
	}
	if p.controls.AutoRotate {
		b.WriteString("  auto")
	}
	return b.String()
}

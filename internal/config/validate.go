package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/wavy-plane/internal/color"
)

// ErrInvalid wraps every problem Validate finds.
var ErrInvalid = errors.New("invalid config")

// Validate checks the values the viewer cannot recover from at runtime. All problems are
// reported together.
func (c *Config) Validate() error {
	var err error

	switch c.Graphics.Backend {
	case "sdl", "glfw":
	default:
		err = multierr.Append(err, fmt.Errorf("graphics.backend %q: want sdl or glfw", c.Graphics.Backend))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("graphics size %dx%d: must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("graphics.fps_limit %d: must not be negative", c.Graphics.FPSLimit))
	}

	err = multierr.Append(err, validateGrid("scene", c.Scene.SegmentsX, c.Scene.SegmentsZ, c.Scene.Background))
	p := c.Scene.Projection
	if p.FOV <= 0 || p.FOV >= 180 {
		err = multierr.Append(err, fmt.Errorf("scene.projection.fov %g: want (0, 180)", p.FOV))
	}
	if p.Near <= 0 || p.Far <= p.Near {
		err = multierr.Append(err, fmt.Errorf("scene.projection near %g far %g: want 0 < near < far", p.Near, p.Far))
	}

	for i, preset := range c.Presets {
		name := fmt.Sprintf("presets[%d] (%s)", i, preset.Name)
		err = multierr.Append(err, validateGrid(name, preset.SegmentsX, preset.SegmentsZ, preset.Background))
	}

	switch c.Screenshot.Format {
	case "", "png", "bmp":
	default:
		err = multierr.Append(err, fmt.Errorf("screenshot.format %q: want png or bmp", c.Screenshot.Format))
	}
	if c.Remote.Enabled && c.Remote.Addr == "" {
		err = multierr.Append(err, errors.New("remote.addr: required when remote is enabled"))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func validateGrid(section string, sx, sz int, background string) error {
	var err error
	if sx <= 0 || sz <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s segments %dx%d: must be positive", section, sx, sz))
	}
	if _, perr := color.HexToRGBA(background); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%s background: %w", section, perr))
	}
	return err
}

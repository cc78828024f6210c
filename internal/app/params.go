package app

import (
	"github.com/Faultbox/wavy-plane/internal/config"
	"github.com/Faultbox/wavy-plane/internal/wave"
)

// RenderParams selects the grid and background of a render and optionally
// overrides control values. Nil overrides keep the current value.
type RenderParams struct {
	SegmentsX  int
	SegmentsZ  int
	Background string

	Frequency        *float32
	Amplitude        *float32
	PositionMultiple *float32
	CameraX          *float32
	CameraY          *float32
	CameraZ          *float32
}

// Apply writes the non-nil overrides into c.
func (p RenderParams) Apply(c *wave.Controls) {
	set := func(dst *float32, v *float32) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Frequency, p.Frequency)
	set(&c.Amplitude, p.Amplitude)
	set(&c.PositionMultiple, p.PositionMultiple)
	set(&c.CameraX, p.CameraX)
	set(&c.CameraY, p.CameraY)
	set(&c.CameraZ, p.CameraZ)
}

// SceneParams builds the initial render from the scene config.
func SceneParams(s config.SceneConfig) RenderParams {
	return RenderParams{
		SegmentsX:  s.SegmentsX,
		SegmentsZ:  s.SegmentsZ,
		Background: s.Background,
	}
}

// PresetParams converts a configured preset into render params.
func PresetParams(p config.Preset) RenderParams {
	return RenderParams{
		SegmentsX:        p.SegmentsX,
		SegmentsZ:        p.SegmentsZ,
		Background:       p.Background,
		Frequency:        p.Frequency,
		Amplitude:        p.Amplitude,
		PositionMultiple: p.PositionMultiple,
		CameraX:          p.CameraX,
		CameraY:          p.CameraY,
		CameraZ:          p.CameraZ,
	}
}

package app

import (
	"testing"

	"github.com/Faultbox/wavy-plane/internal/config"
	"github.com/Faultbox/wavy-plane/internal/wave"
)

func TestApplyOverrides(t *testing.T) {
	v := func(f float32) *float32 { return &f }
	tests := []struct {
		name   string
		params RenderParams
		check  func(wave.Controls) bool
	}{
		{"none", RenderParams{}, func(c wave.Controls) bool { return c == wave.DefaultControls() }},
		{"frequency", RenderParams{Frequency: v(5)}, func(c wave.Controls) bool { return c.Frequency == 5 }},
		{"amplitude", RenderParams{Amplitude: v(0)}, func(c wave.Controls) bool { return c.Amplitude == 0 }},
		{"position", RenderParams{PositionMultiple: v(3)}, func(c wave.Controls) bool { return c.PositionMultiple == 3 }},
		{"camera", RenderParams{CameraX: v(1), CameraY: v(2), CameraZ: v(-3)}, func(c wave.Controls) bool {
			return c.CameraX == 1 && c.CameraY == 2 && c.CameraZ == -3
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := wave.DefaultControls()
			tt.params.Apply(&c)
			if !tt.check(c) {
				t.Errorf("unexpected controls %+v", c)
			}
		})
	}
}

func TestPresetParams(t *testing.T) {
	cfg := config.Default()
	for _, preset := range cfg.Presets {
		p := PresetParams(preset)
		if p.SegmentsX != preset.SegmentsX || p.Background != preset.Background {
			t.Errorf("%s: params %+v", preset.Name, p)
		}
		if p.Frequency != preset.Frequency || p.CameraY != preset.CameraY {
			t.Errorf("%s: overrides not carried", preset.Name)
		}
	}

	s := SceneParams(cfg.Scene)
	if s.SegmentsX != 64 || s.Background != "#1c1228" || s.Frequency != nil {
		t.Errorf("scene params %+v", s)
	}
}

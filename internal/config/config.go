// Package config handles viewer configuration loading and management.
package config

import "github.com/Faultbox/wavy-plane/internal/wave"

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Scene      SceneConfig      `yaml:"scene"`
	Controls   wave.Controls    `yaml:"controls"`
	Renderer   wave.Options     `yaml:"renderer"`
	Presets    []Preset         `yaml:"presets"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Remote     RemoteConfig     `yaml:"remote"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Backend    string `yaml:"backend"` // "sdl" or "glfw"
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// SceneConfig holds the grid and frustum used by the first render.
type SceneConfig struct {
	SegmentsX  int             `yaml:"segments_x"`
	SegmentsZ  int             `yaml:"segments_z"`
	Background string          `yaml:"background"`
	Projection wave.Projection `yaml:"projection"`
}

// Preset is a named scene bound to a number key. Nil overrides keep the current control value.
type Preset struct {
	Name             string   `yaml:"name"`
	SegmentsX        int      `yaml:"segments_x"`
	SegmentsZ        int      `yaml:"segments_z"`
	Background       string   `yaml:"background"`
	Frequency        *float32 `yaml:"frequency,omitempty"`
	Amplitude        *float32 `yaml:"amplitude,omitempty"`
	PositionMultiple *float32 `yaml:"position_multiple,omitempty"`
	CameraX          *float32 `yaml:"camera_x,omitempty"`
	CameraY          *float32 `yaml:"camera_y,omitempty"`
	CameraZ          *float32 `yaml:"camera_z,omitempty"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "bmp"
}

// RemoteConfig holds the WebSocket control endpoint settings.
type RemoteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

func f32(v float32) *float32 { return &v }

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Backend:    "sdl",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			SegmentsX:  64,
			SegmentsZ:  64,
			Background: "#1c1228",
			Projection: wave.DefaultProjection(),
		},
		Controls: wave.DefaultControls(),
		Renderer: wave.DefaultOptions(),
		Presets: []Preset{
			{Name: "default", SegmentsX: 64, SegmentsZ: 64, Background: "#1c1228"},
			{Name: "coarse", SegmentsX: 2, SegmentsZ: 2, Background: "#1c1228"},
			{
				Name: "calm", SegmentsX: 128, SegmentsZ: 128, Background: "#0b1d2a",
				Frequency: f32(0.5), Amplitude: f32(0.05), PositionMultiple: f32(4),
			},
			{
				Name: "storm", SegmentsX: 96, SegmentsZ: 96, Background: "#222",
				Frequency: f32(5), Amplitude: f32(0.2), PositionMultiple: f32(20),
			},
			{
				Name: "overhead", SegmentsX: 48, SegmentsZ: 48, Background: "#000",
				CameraX: f32(0.5), CameraY: f32(5), CameraZ: f32(0.5),
			},
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Remote: RemoteConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8090",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Preset returns the preset bound to slot i, if any.
func (c *Config) Preset(i int) (Preset, bool) {
	if i < 0 || i >= len(c.Presets) {
		return Preset{}, false
	}
	return c.Presets[i], true
}

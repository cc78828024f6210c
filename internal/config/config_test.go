package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Backend != "sdl" {
		t.Errorf("expected backend sdl, got %s", cfg.Graphics.Backend)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.Background != "#1c1228" {
		t.Errorf("expected background #1c1228, got %s", cfg.Scene.Background)
	}
	if cfg.Scene.Projection.FOV != 20 || cfg.Scene.Projection.Near != 1 || cfg.Scene.Projection.Far != 100 {
		t.Errorf("unexpected projection %+v", cfg.Scene.Projection)
	}

	if cfg.Controls.Frequency != 2 || cfg.Controls.Amplitude != 0.1 {
		t.Errorf("unexpected controls %+v", cfg.Controls)
	}
	if !cfg.Controls.AutoRotate {
		t.Error("expected auto rotate on by default")
	}
	if cfg.Renderer.RotationRate != 40 {
		t.Errorf("expected rotation rate 40, got %f", cfg.Renderer.RotationRate)
	}

	if len(cfg.Presets) == 0 {
		t.Error("expected built-in presets")
	}

	if cfg.Screenshot.Format != "png" {
		t.Errorf("expected screenshot format png, got %s", cfg.Screenshot.Format)
	}
	if cfg.Remote.Enabled {
		t.Error("expected remote control to be off by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  backend: glfw
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

scene:
  segments_x: 10
  segments_z: 20
  background: "#fff"
  projection:
    fov: 45
    near: 0.5
    far: 50

controls:
  frequency: 3
  amplitude: 0.25
  auto_rotate: false

renderer:
  use_rotation_speed_control: true
  use_position_multiple: false

presets:
  - name: flat
    segments_x: 4
    segments_z: 4
    background: "#000000"
    amplitude: 0

screenshot:
  format: bmp

remote:
  enabled: true
  addr: ":7000"

logging:
  level: "debug"
  log_file: "wavy.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Backend != "glfw" {
		t.Errorf("expected backend glfw, got %s", cfg.Graphics.Backend)
	}
	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Scene.SegmentsX != 10 || cfg.Scene.SegmentsZ != 20 {
		t.Errorf("expected 10x20 segments, got %dx%d", cfg.Scene.SegmentsX, cfg.Scene.SegmentsZ)
	}
	if cfg.Scene.Projection.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Scene.Projection.FOV)
	}

	if cfg.Controls.Frequency != 3 || cfg.Controls.Amplitude != 0.25 {
		t.Errorf("unexpected controls %+v", cfg.Controls)
	}
	if cfg.Controls.AutoRotate {
		t.Error("expected auto rotate to be false")
	}
	// Keys missing from the file keep their defaults.
	if cfg.Controls.Brightness != 1 {
		t.Errorf("expected brightness default 1, got %f", cfg.Controls.Brightness)
	}

	if !cfg.Renderer.UseRotationSpeedControl || cfg.Renderer.UsePositionMultiple {
		t.Errorf("unexpected renderer options %+v", cfg.Renderer)
	}

	if len(cfg.Presets) != 1 {
		t.Fatalf("expected file presets to replace defaults, got %d", len(cfg.Presets))
	}
	p := cfg.Presets[0]
	if p.Name != "flat" || p.Amplitude == nil || *p.Amplitude != 0 {
		t.Errorf("unexpected preset %+v", p)
	}
	if p.Frequency != nil {
		t.Error("unset preset override should stay nil")
	}

	if cfg.Screenshot.Format != "bmp" {
		t.Errorf("expected screenshot format bmp, got %s", cfg.Screenshot.Format)
	}
	if cfg.Screenshot.Dir != "screenshots" {
		t.Errorf("expected default screenshot dir, got %s", cfg.Screenshot.Dir)
	}
	if !cfg.Remote.Enabled || cfg.Remote.Addr != ":7000" {
		t.Errorf("unexpected remote config %+v", cfg.Remote)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "wavy.log" {
		t.Errorf("expected log file 'wavy.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "backend flag",
			setup: func() { *flagBackend = "glfw" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Backend != "glfw" {
					t.Errorf("expected backend glfw, got %s", cfg.Graphics.Backend)
				}
			},
			teardown: func() { *flagBackend = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagSegments = 8
				*flagBackground = "#abc"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.SegmentsX != 8 || cfg.Scene.SegmentsZ != 8 {
					t.Errorf("expected 8x8 segments, got %dx%d", cfg.Scene.SegmentsX, cfg.Scene.SegmentsZ)
				}
				if cfg.Scene.Background != "#abc" {
					t.Errorf("expected background #abc, got %s", cfg.Scene.Background)
				}
			},
			teardown: func() {
				*flagSegments = 0
				*flagBackground = ""
			},
		},
		{
			name:  "remote flag",
			setup: func() { *flagRemote = ":9000" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Remote.Enabled || cfg.Remote.Addr != ":9000" {
					t.Errorf("unexpected remote config %+v", cfg.Remote)
				}
			},
			teardown: func() { *flagRemote = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Controls.Frequency = 7.5
	cfg.Scene.Background = "#123456"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Controls.Frequency != 7.5 {
		t.Errorf("expected frequency 7.5, got %f", loaded.Controls.Frequency)
	}
	if loaded.Scene.Background != "#123456" {
		t.Errorf("expected background #123456, got %s", loaded.Scene.Background)
	}
	if len(loaded.Presets) != len(cfg.Presets) {
		t.Errorf("expected %d presets, got %d", len(cfg.Presets), len(loaded.Presets))
	}
}

func TestPresetLookup(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.Preset(-1); ok {
		t.Error("negative slot should not resolve")
	}
	if _, ok := cfg.Preset(len(cfg.Presets)); ok {
		t.Error("slot past the end should not resolve")
	}
	p, ok := cfg.Preset(0)
	if !ok || p.Name != "default" {
		t.Errorf("slot 0 = %+v, %v", p, ok)
	}
}

func TestValidateDefault(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Graphics.Backend = "vulkan" }, "graphics.backend"},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "graphics size"},
		{"negative fps limit", func(c *Config) { c.Graphics.FPSLimit = -1 }, "fps_limit"},
		{"zero segments", func(c *Config) { c.Scene.SegmentsX = 0 }, "scene segments"},
		{"negative segments", func(c *Config) { c.Scene.SegmentsZ = -4 }, "scene segments"},
		{"bad background", func(c *Config) { c.Scene.Background = "#12345" }, "scene background"},
		{"empty background", func(c *Config) { c.Scene.Background = "" }, "scene background"},
		{"flat fov", func(c *Config) { c.Scene.Projection.FOV = 180 }, "fov"},
		{"inverted clip planes", func(c *Config) { c.Scene.Projection.Far = 0.5 }, "near"},
		{"preset segments", func(c *Config) { c.Presets[1].SegmentsX = 0 }, "presets[1] (coarse) segments"},
		{"preset background", func(c *Config) { c.Presets[3].Background = "red" }, "presets[3] (storm) background"},
		{"screenshot format", func(c *Config) { c.Screenshot.Format = "jpeg" }, "screenshot.format"},
		{"remote without addr", func(c *Config) { c.Remote = RemoteConfig{Enabled: true} }, "remote.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Scene.SegmentsX = 0
	cfg.Scene.Background = "nope"
	cfg.Graphics.Backend = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"scene segments", "scene background", "graphics.backend"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
scene:
  segments_x: 0
  background: "#zzz"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	cfg, err := Load()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got cfg=%v err=%v", cfg, err)
	}
	if cfg != nil {
		t.Error("invalid config should not be returned")
	}
}

func TestLoadFlagFixesInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  segments_x: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagSegments = 16
	defer func() {
		*flagConfig = ""
		*flagSegments = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("flags are applied before validation: %v", err)
	}
	if cfg.Scene.SegmentsX != 16 {
		t.Errorf("expected 16 segments from flag, got %d", cfg.Scene.SegmentsX)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  background: \"#abc\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Scene.Background != "#abc" {
		t.Errorf("expected background from env file, got %s", cfg.Scene.Background)
	}

	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("a missing file named by the environment should fail")
	}
}

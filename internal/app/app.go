// Package app wires the window, the GL pipeline and the wave renderer into the viewer.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/color"
	"github.com/Faultbox/wavy-plane/internal/config"
	"github.com/Faultbox/wavy-plane/internal/engine/debug"
	"github.com/Faultbox/wavy-plane/internal/engine/input"
	"github.com/Faultbox/wavy-plane/internal/engine/renderer"
	"github.com/Faultbox/wavy-plane/internal/engine/window"
	"github.com/Faultbox/wavy-plane/internal/logger"
	"github.com/Faultbox/wavy-plane/internal/remote"
	"github.com/Faultbox/wavy-plane/internal/wave"
)

const (
	title           = "Wavy Plane"
	shutdownTimeout = 2 * time.Second
)

// Pipeline is the GL pipeline as the app sees it: a wave pipeline that can also read back frames.
type Pipeline interface {
	wave.Pipeline
	ReadPixels() ([]byte, int, int)
}

// App is the viewer instance.
type App struct {
	cfg         *config.Config
	log         *zap.Logger
	window      window.Window
	newPipeline func() Pipeline

	frames  *wave.FrameQueue
	panel   *Panel
	angle   [2]float32
	drag    *wave.Drag
	shots   *debug.Screenshots
	limiter *FPSLimiter
	remote  *remote.Server

	current  *wave.Renderer
	pipeline Pipeline
	params   RenderParams

	now        func() time.Time
	start      time.Time
	running    bool
	capture    bool
	configPath string

	fpsFrames int
	fpsTimer  time.Time
	fps       int
	hudDirty  bool
}

// New creates the window and GL context and prepares an idle viewer.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")

	win, err := window.New(window.Config{
		Backend:    cfg.Graphics.Backend,
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL entry points need the context created above.
	if err := renderer.Init(logger.Named("gl")); err != nil {
		win.Close()
		return nil, err
	}

	glLog := logger.Named("pipeline")
	a := newApp(cfg, win, func() Pipeline {
		return renderer.New(win.DrawableSize, glLog)
	}, log)
	a.configPath = config.ConfigPath()

	if cfg.Remote.Enabled {
		srv := remote.New(logger.Named("remote"))
		if err := srv.Start(cfg.Remote.Addr); err != nil {
			log.Warn("remote control disabled", zap.String("addr", cfg.Remote.Addr), zap.Error(err))
		} else {
			a.remote = srv
		}
	}
	return a, nil
}

func newApp(cfg *config.Config, win window.Window, newPipeline func() Pipeline, log *zap.Logger) *App {
	limit := cfg.Graphics.FPSLimit
	if cfg.Graphics.VSync {
		limit = 0
	}
	a := &App{
		cfg:         cfg,
		log:         log,
		window:      win,
		newPipeline: newPipeline,
		frames:      wave.NewFrameQueue(),
		panel:       NewPanel(&cfg.Controls),
		shots:       debug.NewScreenshots(cfg.Screenshot.Dir, "wavyplane", cfg.Screenshot.Format),
		limiter:     NewFPSLimiter(limit),
		now:         time.Now,
		hudDirty:    true,
	}
	a.drag = wave.NewDrag(&a.angle)
	a.start = a.now()
	a.fpsTimer = a.start
	return a
}

// Render cancels the running effect and starts a new one. Overrides in p are applied to
// the live controls. An invalid background colour is an error and nothing is started.
func (a *App) Render(p RenderParams) error {
	a.stop()

	bg, err := color.FromHex(p.Background)
	if err != nil {
		a.log.Error("render rejected", zap.String("background", p.Background), zap.Error(err))
		return err
	}
	p.Apply(&a.cfg.Controls)
	a.hudDirty = true

	pl := a.newPipeline()
	r := wave.New(wave.Config{
		SegmentsX:  p.SegmentsX,
		SegmentsZ:  p.SegmentsZ,
		Background: bg,
		Projection: a.cfg.Scene.Projection,
		Options:    a.cfg.Renderer,
		DragAngle:  &a.angle,
		Logger:     logger.Named("wave"),
	}, pl, a.frames, a.panel)

	a.params = p
	if err := r.Start(a.elapsed()); err != nil {
		return err
	}
	a.current = r
	a.pipeline = pl
	return nil
}

// Renderer returns the running renderer, nil when nothing is running.
func (a *App) Renderer() *wave.Renderer {
	return a.current
}

func (a *App) stop() {
	if a.current == nil {
		return
	}
	a.current.Stop()
	a.current = nil
	a.pipeline = nil
}

func (a *App) elapsed() time.Duration {
	return a.now().Sub(a.start)
}

// Run drives the main loop until the window is closed or Escape is pressed.
func (a *App) Run() {
	a.running = true
	a.log.Info("starting main loop")
	for a.running {
		a.step()
		a.limiter.Wait()
	}
	a.log.Info("main loop finished")
}

// step handles pending input and presents one refresh.
func (a *App) step() {
	for _, ev := range a.window.PollEvents() {
		a.handle(ev)
	}
	if !a.running {
		return
	}
	a.drainRemote()

	a.frames.Dispatch(a.elapsed())
	if a.capture {
		a.capture = false
		a.screenshot()
	}
	a.window.SwapBuffers()
	a.updateTitle()
}

func (a *App) handle(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		a.running = false
	case input.EventWindowResize:
		a.log.Debug("window resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
	case input.EventMouseDown:
		if ev.Button == input.ButtonLeft {
			w, h := a.window.Size()
			a.drag.Press(ev.MouseX, ev.MouseY, wave.Rect{W: float32(w), H: float32(h)})
		}
	case input.EventMouseUp:
		if ev.Button == input.ButtonLeft {
			a.drag.Release()
		}
	case input.EventMouseMove:
		_, h := a.window.Size()
		a.drag.Move(ev.MouseX, ev.MouseY, h)
	case input.EventKeyDown:
		a.handleKey(ev)
	}
}

// drainRemote applies every queued remote update without blocking.
func (a *App) drainRemote() {
	if a.remote == nil {
		return
	}
	for {
		select {
		case u := <-a.remote.Updates():
			a.applyRemote(u)
		default:
			return
		}
	}
}

func (a *App) applyRemote(u remote.Update) {
	u.Apply(&a.cfg.Controls)
	a.hudDirty = true
	switch {
	case u.Preset != nil:
		a.loadPreset(*u.Preset)
	case u.Reload:
		a.reload()
	}
}

func (a *App) handleKey(ev input.Event) {
	steps := 1
	if ev.Has(input.ModShift) {
		steps = 10
	}

	switch ev.Key {
	case input.KeyEscape:
		a.running = false
	case input.KeyTab:
		if ev.Has(input.ModShift) {
			a.panel.Prev()
		} else {
			a.panel.Next()
		}
	case input.KeyRight:
		a.panel.Next()
	case input.KeyLeft:
		a.panel.Prev()
	case input.KeyUp:
		a.panel.Adjust(steps)
	case input.KeyDown:
		a.panel.Adjust(-steps)
	case input.KeySpace:
		a.panel.ToggleAutoRotate()
	case input.KeyR, input.KeyF5:
		a.reload()
	case input.KeyS:
		if ev.Has(input.ModCtrl) {
			a.save()
		}
	case input.KeyF12:
		a.capture = true
	default:
		if i := ev.Key.PresetIndex(); i >= 0 {
			a.loadPreset(i)
		}
	}
	a.hudDirty = true
}

// reload rebuilds the pipeline with the current grid and background, keeping live control values.
func (a *App) reload() {
	p := RenderParams{
		SegmentsX:  a.params.SegmentsX,
		SegmentsZ:  a.params.SegmentsZ,
		Background: a.params.Background,
	}
	a.log.Info("reloading", zap.Int("segments_x", p.SegmentsX), zap.Int("segments_z", p.SegmentsZ))
	if err := a.Render(p); err != nil {
		a.log.Warn("reload failed", zap.Error(err))
	}
}

func (a *App) loadPreset(i int) {
	preset, ok := a.cfg.Preset(i)
	if !ok {
		a.log.Debug("no preset in slot", zap.Int("slot", i+1))
		return
	}
	a.log.Info("loading preset", zap.String("name", preset.Name), zap.Int("slot", i+1))
	if err := a.Render(PresetParams(preset)); err != nil {
		a.log.Warn("preset failed", zap.String("name", preset.Name), zap.Error(err))
	}
}

func (a *App) save() {
	var err error
	if a.configPath != "" {
		err = a.cfg.SaveTo(a.configPath)
	} else {
		err = a.cfg.Save()
	}
	if err != nil {
		a.log.Error("failed to save config", zap.Error(err))
		return
	}
	a.log.Info("config saved")
}

func (a *App) screenshot() {
	if a.pipeline == nil {
		a.log.Warn("screenshot skipped: nothing rendered")
		return
	}
	pixels, w, h := a.pipeline.ReadPixels()
	path, err := a.shots.Save(pixels, w, h)
	if err != nil {
		if errors.Is(err, debug.ErrSizeMismatch) {
			a.log.Warn("screenshot skipped", zap.Error(err))
			return
		}
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// updateTitle refreshes the HUD in the window title when the controls change and once a second.
func (a *App) updateTitle() {
	a.fpsFrames++
	if now := a.now(); now.Sub(a.fpsTimer) >= time.Second {
		a.fps = a.fpsFrames
		a.fpsFrames = 0
		a.fpsTimer = now
		a.hudDirty = true
		a.log.Debug("fps", zap.Int("count", a.fps))
	}
	if !a.hudDirty {
		return
	}
	a.hudDirty = false
	a.window.SetTitle(fmt.Sprintf("%s | %d fps | %s", title, a.fps, a.panel.HUD()))
	if a.remote != nil {
		a.remote.Broadcast(a.panel.Values())
	}
}

// Close stops the renderer and destroys the window.
func (a *App) Close() {
	a.log.Info("closing viewer")
	a.stop()
	if a.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.remote.Shutdown(ctx); err != nil {
			a.log.Warn("remote shutdown", zap.Error(err))
		}
		cancel()
	}
	if a.window != nil {
		a.window.Close()
	}
}

package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/engine/input"
)

// sdlWindow wraps an SDL2 window and OpenGL context.
type sdlWindow struct {
	log       *zap.Logger
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	queue     *input.Queue
}

func newSDL(cfg Config, log *zap.Logger) (*sdlWindow, error) {
	w := &sdlWindow{log: log, queue: input.NewQueue()}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	log.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// PollEvents polls SDL events and converts them to input events.
func (w *sdlWindow) PollEvents() []input.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.queue.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.queue.Push(input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := input.Event{Key: sdlKey(e.Keysym.Sym), Mods: sdlMods(sdl.GetModState())}
			if e.Type == sdl.KEYDOWN {
				ev.Type = input.EventKeyDown
			} else {
				ev.Type = input.EventKeyUp
			}
			w.queue.Push(ev)

		case *sdl.MouseMotionEvent:
			w.queue.Push(input.Event{
				Type:   input.EventMouseMove,
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
				Button: sdlButton(e.Button),
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = input.EventMouseDown
			} else {
				ev.Type = input.EventMouseUp
			}
			w.queue.Push(ev)
		}
	}
	return w.queue.Drain()
}

func sdlKey(k sdl.Keycode) input.Key {
	switch k {
	case sdl.K_ESCAPE:
		return input.KeyEscape
	case sdl.K_TAB:
		return input.KeyTab
	case sdl.K_UP:
		return input.KeyUp
	case sdl.K_DOWN:
		return input.KeyDown
	case sdl.K_LEFT:
		return input.KeyLeft
	case sdl.K_RIGHT:
		return input.KeyRight
	case sdl.K_SPACE:
		return input.KeySpace
	case sdl.K_r:
		return input.KeyR
	case sdl.K_s:
		return input.KeyS
	case sdl.K_F5:
		return input.KeyF5
	case sdl.K_F12:
		return input.KeyF12
	}
	if k >= sdl.K_1 && k <= sdl.K_9 {
		return input.Key1 + input.Key(k-sdl.K_1)
	}
	return input.KeyUnknown
}

func sdlMods(m sdl.Keymod) input.Modifier {
	var mods input.Modifier
	if m&sdl.KMOD_SHIFT != 0 {
		mods |= input.ModShift
	}
	if m&sdl.KMOD_CTRL != 0 {
		mods |= input.ModCtrl
	}
	if m&sdl.KMOD_ALT != 0 {
		mods |= input.ModAlt
	}
	return mods
}

func sdlButton(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return 0
}

// SwapBuffers swaps the OpenGL buffers.
func (w *sdlWindow) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the window size in points.
func (w *sdlWindow) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels.
func (w *sdlWindow) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *sdlWindow) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Close destroys the window and cleans up SDL2.
func (w *sdlWindow) Close() {
	w.log.Info("closing window")
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

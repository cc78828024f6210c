package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/engine/input"
)

// glfwWindow wraps a GLFW window. Input arrives through callbacks during PollEvents.
type glfwWindow struct {
	log    *zap.Logger
	window *glfw.Window
	queue  *input.Queue
}

func newGLFW(cfg Config, log *zap.Logger) (*glfwWindow, error) {
	log.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window failed: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{log: log, window: win, queue: input.NewQueue()}
	w.installCallbacks()

	log.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *glfwWindow) installCallbacks() {
	w.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.queue.Push(input.Event{
			Type:   input.EventMouseMove,
			MouseX: float32(xpos),
			MouseY: float32(ypos),
		})
	})

	w.window.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		ev := input.Event{
			Type:   input.EventMouseDown,
			MouseX: float32(x),
			MouseY: float32(y),
			Button: glfwButton(button),
		}
		if action == glfw.Release {
			ev.Type = input.EventMouseUp
		}
		w.queue.Push(ev)
	})

	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		ev := input.Event{Type: input.EventKeyDown, Key: glfwKey(key), Mods: glfwMods(mods)}
		if action == glfw.Release {
			ev.Type = input.EventKeyUp
		}
		w.queue.Push(ev)
	})

	w.window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.queue.Push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
	})

	w.window.SetCloseCallback(func(_ *glfw.Window) {
		w.queue.Push(input.Event{Type: input.EventQuit})
	})
}

func glfwKey(k glfw.Key) input.Key {
	switch k {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyTab:
		return input.KeyTab
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyLeft:
		return input.KeyLeft
	case glfw.KeyRight:
		return input.KeyRight
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyR:
		return input.KeyR
	case glfw.KeyS:
		return input.KeyS
	case glfw.KeyF5:
		return input.KeyF5
	case glfw.KeyF12:
		return input.KeyF12
	}
	if k >= glfw.Key1 && k <= glfw.Key9 {
		return input.Key1 + input.Key(k-glfw.Key1)
	}
	return input.KeyUnknown
}

func glfwMods(m glfw.ModifierKey) input.Modifier {
	var mods input.Modifier
	if m&glfw.ModShift != 0 {
		mods |= input.ModShift
	}
	if m&glfw.ModControl != 0 {
		mods |= input.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		mods |= input.ModAlt
	}
	return mods
}

func glfwButton(b glfw.MouseButton) input.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	case glfw.MouseButtonRight:
		return input.ButtonRight
	}
	return 0
}

// PollEvents runs GLFW callbacks and returns the events they produced.
func (w *glfwWindow) PollEvents() []input.Event {
	glfw.PollEvents()
	return w.queue.Drain()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

// Size returns the window size in screen coordinates.
func (w *glfwWindow) Size() (int, int) {
	return w.window.GetSize()
}

// DrawableSize returns the framebuffer size in pixels.
func (w *glfwWindow) DrawableSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// SetTitle sets the window title.
func (w *glfwWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Close destroys the window and terminates GLFW.
func (w *glfwWindow) Close() {
	w.log.Info("closing window")
	w.window.Destroy()
	glfw.Terminate()
}

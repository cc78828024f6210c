// Package window creates the OpenGL window and context on SDL2 or GLFW.
package window

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names accepted by Config.Backend.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds window configuration.
type Config struct {
	Backend    string
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is an OpenGL 4.1 core window with a current context.
type Window interface {
	// PollEvents pumps the window system and returns the events since the last call.
	PollEvents() []input.Event
	SwapBuffers()
	// Size returns the window size in points (the coordinate space of mouse events).
	Size() (int, int)
	// DrawableSize returns the framebuffer size in pixels.
	DrawableSize() (int, int)
	SetTitle(title string)
	Close()
}

// New creates a window on the configured backend. SDL is the default.
func New(cfg Config, log *zap.Logger) (Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case "", BackendSDL:
		w, err := newSDL(cfg, log)
		if err != nil {
			return nil, err
		}
		return w, nil
	case BackendGLFW:
		w, err := newGLFW(cfg, log)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}

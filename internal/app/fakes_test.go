package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wavy-plane/internal/color"
	"github.com/Faultbox/wavy-plane/internal/engine/input"
	"github.com/Faultbox/wavy-plane/internal/mesh"
)

type fakeWindow struct {
	batches [][]input.Event
	width   int
	height  int
	swaps   int
	title   string
	closed  bool
}

func (w *fakeWindow) PollEvents() []input.Event {
	if len(w.batches) == 0 {
		return nil
	}
	ev := w.batches[0]
	w.batches = w.batches[1:]
	return ev
}

func (w *fakeWindow) SwapBuffers() { w.swaps++ }
func (w *fakeWindow) Size() (int, int) { return w.width, w.height }
func (w *fakeWindow) DrawableSize() (int, int) { return w.width, w.height }
func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) Close() { w.closed = true }
func (w *fakeWindow) push(events ...input.Event) { w.batches = append(w.batches, events) }

type fakePipeline struct {
	prepareErr error
	prepared   *mesh.Mesh
	clear      color.Color
	floats     map[string]float32
	model      mgl32.Mat4
	draws      int
	released   int
}

func (p *fakePipeline) Prepare(m *mesh.Mesh, clear color.Color) error {
	if p.prepareErr != nil {
		return p.prepareErr
	}
	p.prepared = m
	p.clear = clear
	return nil
}

func (p *fakePipeline) SetFloat(name string, v float32) error {
	p.floats[name] = v
	return nil
}

func (p *fakePipeline) SetMat4(name string, m mgl32.Mat4) error {
	if name == "uModel" {
		p.model = m
	}
	return nil
}

func (p *fakePipeline) Size() (int, int) { return 640, 480 }
func (p *fakePipeline) Clear() {}
func (p *fakePipeline) Draw(int) { p.draws++ }
func (p *fakePipeline) Release() { p.released++ }

func (p *fakePipeline) ReadPixels() ([]byte, int, int) {
	return make([]byte, 2*2*4), 2, 2
}

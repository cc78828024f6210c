package wave

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wavy-plane/internal/color"
	"github.com/Faultbox/wavy-plane/internal/mesh"
)

// fakePipeline records every call the renderer makes.
type fakePipeline struct {
	prepareErr error
	missing    map[string]bool
	width      int
	height     int

	prepared *mesh.Mesh
	clear    color.Color
	floats   map[string]float32
	mats     map[string]mgl32.Mat4
	clears   int
	draws    []int
	released int

	onDraw func()
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{
		missing: make(map[string]bool),
		width:   800,
		height:  600,
		floats:  make(map[string]float32),
		mats:    make(map[string]mgl32.Mat4),
	}
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
	if p.missing[name] {
		return fmt.Errorf("%w: %s", ErrUniformNotFound, name)
	}
	p.floats[name] = v
	return nil
}

func (p *fakePipeline) SetMat4(name string, m mgl32.Mat4) error {
	if p.missing[name] {
		return fmt.Errorf("%w: %s", ErrUniformNotFound, name)
	}
	p.mats[name] = m
	return nil
}

func (p *fakePipeline) Size() (int, int) { return p.width, p.height }

func (p *fakePipeline) Clear() { p.clears++ }

func (p *fakePipeline) Draw(n int) {
	p.draws = append(p.draws, n)
	if p.onDraw != nil {
		p.onDraw()
	}
}

func (p *fakePipeline) Release() { p.released++ }

var errCompile = errors.New("vertex shader: syntax error")

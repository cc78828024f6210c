// Package renderer provides the OpenGL pipeline behind the wave renderer.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/color"
	"github.com/Faultbox/wavy-plane/internal/engine/renderer/shaders"
	"github.com/Faultbox/wavy-plane/internal/engine/shader"
	"github.com/Faultbox/wavy-plane/internal/mesh"
	"github.com/Faultbox/wavy-plane/internal/wave"
)

const floatSize = 4

// Attribute locations fixed by layout qualifiers in wave.vert.
const (
	attribPosition = 0
	attribColor    = 1
)

// SizeFunc reports the current drawable size in pixels.
type SizeFunc func() (width, height int)

// Init loads the OpenGL function pointers and logs driver info.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init(log *zap.Logger) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return nil
}

// Pipeline owns one shader program and one vertex buffer for the wave mesh.
type Pipeline struct {
	size SizeFunc
	log  *zap.Logger

	program *shader.Program
	vao     uint32
	vbo     uint32
	clear   color.Color
}

var _ wave.Pipeline = (*Pipeline)(nil)

// New creates a pipeline. No GL objects exist until Prepare.
func New(size SizeFunc, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{size: size, log: log}
}

// Prepare compiles the displacement shader and uploads the mesh.
// On failure everything created so far is released.
func (p *Pipeline) Prepare(m *mesh.Mesh, clear color.Color) error {
	if m == nil {
		return errors.New("prepare: nil mesh")
	}

	program, err := shader.NewProgram(shaders.WaveVertexShader, shaders.WaveFragmentShader)
	if err != nil {
		return fmt.Errorf("shader program: %w", err)
	}
	p.program = program

	if _, err := p.program.Attrib("aPosition"); err != nil {
		p.Release()
		return err
	}

	if err := p.upload(m); err != nil {
		p.Release()
		return err
	}

	p.clear = clear
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	p.program.Use()

	p.log.Debug("pipeline prepared",
		zap.Uint32("program", p.program.ID),
		zap.Uint32("vao", p.vao),
		zap.Uint32("vbo", p.vbo),
		zap.Int("vertices", m.VertexCount()),
		zap.Bool("color_attribute", m.Layout.HasColor),
	)
	return nil
}

func (p *Pipeline) upload(m *mesh.Mesh) error {
	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	if p.vao == 0 || p.vbo == 0 {
		return errors.New("failed to create vertex buffer")
	}

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	if len(m.Data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Data)*floatSize, unsafe.Pointer(&m.Data[0]), gl.STATIC_DRAW)
	}

	stride := int32(m.Layout.Stride * floatSize)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, uintptr(m.Layout.PositionOff*floatSize))
	gl.EnableVertexAttribArray(attribPosition)

	if m.Layout.HasColor {
		gl.VertexAttribPointerWithOffset(attribColor, 3, gl.FLOAT, false, stride, uintptr(m.Layout.ColorOff*floatSize))
		gl.EnableVertexAttribArray(attribColor)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

// SetFloat uploads a scalar uniform.
func (p *Pipeline) SetFloat(name string, v float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	gl.Uniform1f(loc, v)
	return nil
}

// SetMat4 uploads a matrix uniform.
func (p *Pipeline) SetMat4(name string, m mgl32.Mat4) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return nil
}

func (p *Pipeline) uniform(name string) (int32, error) {
	if p.program == nil {
		return -1, fmt.Errorf("%w: %s (no program)", wave.ErrUniformNotFound, name)
	}
	p.program.Use()
	loc, err := p.program.Uniform(name)
	if err != nil {
		return -1, fmt.Errorf("%w: %w", wave.ErrUniformNotFound, err)
	}
	return loc, nil
}

// Size returns the current drawable size.
func (p *Pipeline) Size() (int, int) {
	if p.size == nil {
		return 0, 0
	}
	return p.size()
}

// Clear resets the viewport to the drawable and clears colour and depth.
func (p *Pipeline) Clear() {
	w, h := p.Size()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(p.clear.R, p.clear.G, p.clear.B, p.clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues a non-indexed triangle draw.
func (p *Pipeline) Draw(vertexCount int) {
	if p.program == nil || vertexCount <= 0 {
		return
	}
	p.program.Use()
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
	gl.BindVertexArray(0)
}

// ReadPixels reads the current back buffer as tightly packed RGBA rows, bottom row first.
func (p *Pipeline) ReadPixels() ([]byte, int, int) {
	w, h := p.Size()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Release frees the program and buffers.
func (p *Pipeline) Release() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
		p.vbo = 0
	}
	if p.program != nil {
		p.program.Delete()
		p.program = nil
	}
	p.log.Debug("pipeline released")
}

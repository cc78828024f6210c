package wave

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wavy-plane/internal/color"
	"github.com/Faultbox/wavy-plane/internal/mesh"
)

// Uniform names shared by the displacement shader and the renderer.
const (
	UniformModel       = "uModel"
	UniformView        = "uView"
	UniformProjection  = "uProjection"
	UniformTime        = "uTime"
	UniformFrequency   = "uFrequency"
	UniformAmplitude   = "uAmplitude"
	UniformPosMultiple = "uPosMultiple"
	UniformBrightness  = "uBrightness"
)

// Pipeline is the graphics boundary the renderer drives.
type Pipeline interface {
	// Prepare compiles and links the displacement shader, uploads the mesh into a
	// single vertex buffer and stores the clear colour.
	Prepare(m *mesh.Mesh, clear color.Color) error

	// SetFloat uploads a scalar uniform. Returns ErrUniformNotFound for unknown names.
	SetFloat(name string, v float32) error

	// SetMat4 uploads a matrix uniform. Returns ErrUniformNotFound for unknown names.
	SetMat4(name string, m mgl32.Mat4) error

	// Size returns the current drawable size in pixels.
	Size() (width, height int)

	// Clear clears colour and depth with the prepared clear colour.
	Clear()

	// Draw issues a non-indexed triangle draw over vertexCount vertices.
	Draw(vertexCount int)

	// Release frees GPU resources created by Prepare.
	Release()
}

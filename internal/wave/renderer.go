// Package wave drives the animated wave plane: per-frame clock, uniforms, rotation and
// camera transforms, scheduled as a cancellable repeating task on the host's refresh.
package wave

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/color"
	"github.com/Faultbox/wavy-plane/internal/mesh"
)

// State is the renderer lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options toggle optional parts of the effect.
type Options struct {
	// AutoRotate honours the auto-rotate control. When false the drag angles always apply.
	AutoRotate bool `yaml:"auto_rotate"`
	// RotationRate is the fixed auto-rotation speed in degrees per second.
	RotationRate float32 `yaml:"rotation_rate"`
	// UseRotationSpeedControl takes the rate from Controls.RotationSpeed instead of RotationRate.
	UseRotationSpeedControl bool `yaml:"use_rotation_speed_control"`
	// UsePositionMultiple feeds Controls.PositionMultiple to the shader; otherwise 1 is sent.
	UsePositionMultiple bool `yaml:"use_position_multiple"`
	// UseVertexColorAttribute interleaves a colour attribute into the vertex buffer.
	UseVertexColorAttribute bool `yaml:"use_vertex_color_attribute"`
}

// DefaultOptions rotates at a fixed 40 degrees/s with the other options on.
func DefaultOptions() Options {
	return Options{
		AutoRotate:              true,
		RotationRate:            40,
		UsePositionMultiple:     true,
		UseVertexColorAttribute: true,
	}
}

// Config describes one renderer run.
type Config struct {
	SegmentsX  int
	SegmentsZ  int
	Background color.Color
	Projection Projection
	Options    Options

	// DragAngle is the pitch/yaw accumulator shared with the pointer handler. May be nil.
	DragAngle *[2]float32
	Logger    *zap.Logger
}

// Frame records what the last tick computed and uploaded.
// Uniforms and Skipped are owned by the renderer and overwritten by the next tick.
type Frame struct {
	Time       float64
	Delta      float64
	Angle      float32
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Uniforms   map[string]float32
	Skipped    []string
}

// Renderer owns the mesh, clock and rotation state for one run of the effect.
type Renderer struct {
	cfg      Config
	pipeline Pipeline
	host     Host
	controls ControlSource
	log      *zap.Logger

	mesh     *mesh.Mesh
	clock    Clock
	rotation AutoRotation

	state      State
	pending    FrameID
	hasPending bool
	inTick     bool
	released   bool

	frameFn  FrameFunc
	uniforms map[string]float32
	skipped  []string
	warned   map[string]bool
	frames   uint64
	last     Frame
}

// New creates a renderer in the Uninitialized state. Nothing touches the pipeline until Start.
func New(cfg Config, pipeline Pipeline, host Host, controls ControlSource) *Renderer {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Projection == (Projection{}) {
		cfg.Projection = DefaultProjection()
	}
	r := &Renderer{
		cfg:      cfg,
		pipeline: pipeline,
		host:     host,
		controls: controls,
		log:      log,
		uniforms: make(map[string]float32, 5),
		skipped:  make([]string, 0, 8),
		warned:   make(map[string]bool),
	}
	r.frameFn = r.onFrame
	return r
}

// State returns the lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Mesh returns the generated mesh, nil before Start.
func (r *Renderer) Mesh() *mesh.Mesh {
	return r.mesh
}

// Last returns the most recent frame.
func (r *Renderer) Last() Frame {
	return r.last
}

// Frames returns the number of ticks run so far.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Start builds and uploads the mesh, runs the first frame at ts and schedules the next.
// On setup failure the renderer stays Uninitialized and the error wraps ErrSetup.
func (r *Renderer) Start(ts time.Duration) error {
	if r.state != StateUninitialized {
		return fmt.Errorf("%w: renderer is %s", ErrStarted, r.state)
	}
	if r.pipeline == nil || r.host == nil || r.controls == nil {
		r.log.Error("renderer missing collaborators")
		return fmt.Errorf("%w: missing pipeline, host or controls", ErrSetup)
	}

	r.mesh = mesh.Build(r.cfg.SegmentsX, r.cfg.SegmentsZ, r.cfg.Options.UseVertexColorAttribute)
	if err := r.pipeline.Prepare(r.mesh, r.cfg.Background); err != nil {
		r.log.Error("pipeline setup failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}

	r.state = StateRunning
	r.clock.Reset(ts)
	r.log.Info("frame loop started",
		zap.Int("segments_x", r.cfg.SegmentsX),
		zap.Int("segments_z", r.cfg.SegmentsZ),
		zap.Int("vertices", r.mesh.VertexCount()),
		zap.String("background", r.cfg.Background.Hex()),
	)

	r.onFrame(ts)
	return nil
}

// Stop cancels the schedule. A tick already running completes; no further tick is scheduled.
// GPU resources are released once no tick is in flight.
func (r *Renderer) Stop() {
	if r.state != StateRunning {
		return
	}
	r.state = StateCancelled
	if r.hasPending {
		r.host.CancelFrame(r.pending)
		r.hasPending = false
	}
	r.log.Info("frame loop cancelled", zap.Uint64("frames", r.frames))
	if !r.inTick {
		r.release()
	}
}

func (r *Renderer) release() {
	if r.released {
		return
	}
	r.released = true
	r.pipeline.Release()
}

// onFrame is the repeating unit of work registered with the host.
func (r *Renderer) onFrame(ts time.Duration) {
	r.hasPending = false
	if r.state != StateRunning {
		return
	}

	r.inTick = true
	r.last = r.tick(ts)
	r.inTick = false

	if r.state != StateRunning {
		r.release()
		return
	}
	r.pending = r.host.RequestFrame(r.frameFn)
	r.hasPending = true
}

// tick renders exactly one frame.
func (r *Renderer) tick(ts time.Duration) Frame {
	r.frames++
	now, dt := r.clock.Advance(ts)
	c := r.controls.Values()

	clear(r.uniforms)
	r.skipped = r.skipped[:0]
	f := Frame{
		Time:     now,
		Delta:    dt,
		Uniforms: r.uniforms,
	}

	posMultiple := float32(1)
	if r.cfg.Options.UsePositionMultiple {
		posMultiple = c.PositionMultiple
	}
	r.setFloat(&f, UniformTime, float32(now))
	r.setFloat(&f, UniformFrequency, c.Frequency)
	r.setFloat(&f, UniformAmplitude, c.Amplitude)
	r.setFloat(&f, UniformPosMultiple, posMultiple)
	r.setFloat(&f, UniformBrightness, c.Brightness)

	if r.cfg.Options.AutoRotate && c.AutoRotate {
		rate := r.cfg.Options.RotationRate
		if r.cfg.Options.UseRotationSpeedControl {
			rate = c.RotationSpeed
		}
		f.Angle = r.rotation.Advance(rate, dt)
		f.Model = AutoModel(f.Angle)
	} else {
		var angle [2]float32
		if r.cfg.DragAngle != nil {
			angle = *r.cfg.DragAngle
		}
		f.Angle = r.rotation.Angle
		f.Model = DragModel(angle)
	}

	f.View = ViewMatrix(mgl32.Vec3{c.CameraX, c.CameraY, c.CameraZ})
	width, height := r.pipeline.Size()
	f.Projection = r.cfg.Projection.Matrix(width, height)

	r.setMat4(UniformModel, f.Model)
	r.setMat4(UniformView, f.View)
	r.setMat4(UniformProjection, f.Projection)

	r.pipeline.Clear()
	r.pipeline.Draw(r.mesh.VertexCount())
	f.Skipped = r.skipped
	return f
}

func (r *Renderer) setFloat(f *Frame, name string, v float32) {
	if err := r.pipeline.SetFloat(name, v); err != nil {
		r.lookupFailed(name, err)
		return
	}
	f.Uniforms[name] = v
}

func (r *Renderer) setMat4(name string, m mgl32.Mat4) {
	if err := r.pipeline.SetMat4(name, m); err != nil {
		r.lookupFailed(name, err)
	}
}

// lookupFailed records a skipped uniform. The first failure per name is a warning.
func (r *Renderer) lookupFailed(name string, err error) {
	r.skipped = append(r.skipped, name)
	if !errors.Is(err, ErrUniformNotFound) || !r.warned[name] {
		r.warned[name] = true
		r.log.Warn("uniform upload skipped", zap.String("uniform", name), zap.Error(err))
		return
	}
	r.log.Debug("uniform upload skipped", zap.String("uniform", name))
}

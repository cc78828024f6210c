package wave

import "github.com/go-gl/mathgl/mgl32"

// Projection settings. The field of view is in degrees.
type Projection struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// DefaultProjection is the fixed 20 degree, 1..100 frustum.
func DefaultProjection() Projection {
	return Projection{FOV: 20, Near: 1, Far: 100}
}

// Matrix builds the perspective matrix for a drawable of the given size.
// A zero height falls back to a square aspect.
func (p Projection) Matrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), aspect, p.Near, p.Far)
}

// ViewMatrix looks from eye at the origin with +Y up.
// An eye at the origin yields identity; an eye on the Y axis uses -Z as up.
func ViewMatrix(eye mgl32.Vec3) mgl32.Mat4 {
	if eye.Len() < 1e-6 {
		return mgl32.Ident4()
	}
	up := mgl32.Vec3{0, 1, 0}
	if eye.Normalize().Cross(up).Len() < 1e-6 {
		up = mgl32.Vec3{0, 0, -1}
	}
	return mgl32.LookAtV(eye, mgl32.Vec3{}, up)
}

// AutoModel rotates about Y by angle degrees.
func AutoModel(angle float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(angle))
}

// DragModel rotates about X by pitch then about Y by yaw, both in degrees.
func DragModel(angle [2]float32) mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(angle[0]))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(angle[1]))
	return rx.Mul4(ry)
}

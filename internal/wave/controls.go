package wave

// Controls is the set of user-adjustable scalars read by the renderer every frame.
type Controls struct {
	Frequency        float32 `yaml:"frequency" json:"frequency"`
	Amplitude        float32 `yaml:"amplitude" json:"amplitude"`
	PositionMultiple float32 `yaml:"position_multiple" json:"position_multiple"`
	Brightness       float32 `yaml:"brightness" json:"brightness"`
	RotationSpeed    float32 `yaml:"rotation_speed" json:"rotation_speed"`
	CameraX          float32 `yaml:"camera_x" json:"camera_x"`
	CameraY          float32 `yaml:"camera_y" json:"camera_y"`
	CameraZ          float32 `yaml:"camera_z" json:"camera_z"`
	AutoRotate       bool    `yaml:"auto_rotate" json:"auto_rotate"`
}

// DefaultControls returns the values used when no config overrides them.
func DefaultControls() Controls {
	return Controls{
		Frequency:        2,
		Amplitude:        0.1,
		PositionMultiple: 10,
		Brightness:       1,
		RotationSpeed:    40,
		CameraX:          2,
		CameraY:          2,
		CameraZ:          3,
		AutoRotate:       true,
	}
}

// ControlSource exposes the current control values. The renderer only reads through it.
type ControlSource interface {
	Values() Controls
}

// Values returns a copy of c, so a plain Controls value can act as a fixed source.
func (c *Controls) Values() Controls {
	return *c
}

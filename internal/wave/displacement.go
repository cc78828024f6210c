package wave

import "math"

// Displacement returns the vertical offset the vertex shader applies at (x, z).
// It mirrors wave.vert so the effect can be checked without a GPU.
func Displacement(x, z, t, frequency, amplitude, posMultiple float32) float32 {
	phase := float64(frequency) * float64(t)
	s := math.Sin(phase + float64(x)*float64(posMultiple))
	c := math.Cos(phase + float64(z)*float64(posMultiple))
	return amplitude*float32(s) + amplitude*float32(c)
}

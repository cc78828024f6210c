// Package mesh builds the procedural grid geometry for the wave plane.
package mesh

// VerticesPerCell is the number of vertices emitted per grid cell (two triangles, no indexing).
const VerticesPerCell = 6

// Layout describes how vertex attributes are packed in a flat float stream.
type Layout struct {
	Stride      int  // Floats per vertex
	PositionOff int  // Float offset of the xyz position
	ColorOff    int  // Float offset of the rgb colour, valid when HasColor
	HasColor    bool // Whether the stream carries a colour attribute
}

// PositionOnly is the layout produced by GeneratePlane.
var PositionOnly = Layout{Stride: 3}

// PositionColor interleaves xyz position and rgb colour.
var PositionColor = Layout{Stride: 6, ColorOff: 3, HasColor: true}

// Mesh holds a non-indexed triangle stream ready for GPU upload.
type Mesh struct {
	Data      []float32
	Layout    Layout
	SegmentsX int
	SegmentsZ int
}

// VertexCount returns the number of vertices in the stream.
func (m *Mesh) VertexCount() int {
	if m == nil || m.Layout.Stride == 0 {
		return 0
	}
	return len(m.Data) / m.Layout.Stride
}

// GeneratePlane returns xyz positions for a unit square on the XZ plane, centred on the origin,
// split into segmentsX*segmentsZ cells of two triangles each.
// Non-positive segment counts produce an empty slice.
func GeneratePlane(segmentsX, segmentsZ int) []float32 {
	if segmentsX <= 0 || segmentsZ <= 0 {
		return []float32{}
	}

	positions := make([]float32, 0, segmentsX*segmentsZ*VerticesPerCell*3)
	widthX := 1 / float32(segmentsX)
	widthZ := 1 / float32(segmentsZ)

	for x := 0; x < segmentsX; x++ {
		for z := 0; z < segmentsZ; z++ {
			x0 := float32(x)*widthX - 0.5
			x1 := float32(x+1)*widthX - 0.5
			z0 := float32(z)*widthZ - 0.5
			z1 := float32(z+1)*widthZ - 0.5

			//   (x0, z1)     (x1, z1)
			//          *-----*
			//          | A / |
			//          | / B |
			//          *-----*
			//   (x0, z0)     (x1, z0)
			positions = append(positions,
				x0, 0, z0,
				x0, 0, z1,
				x1, 0, z1,
				x1, 0, z1,
				x1, 0, z0,
				x0, 0, z0,
			)
		}
	}
	return positions
}

// Build generates the plane and packs it with the requested layout.
func Build(segmentsX, segmentsZ int, withColor bool) *Mesh {
	positions := GeneratePlane(segmentsX, segmentsZ)
	m := &Mesh{
		Data:      positions,
		Layout:    PositionOnly,
		SegmentsX: segmentsX,
		SegmentsZ: segmentsZ,
	}
	if withColor {
		m.Data = interleaveColor(positions)
		m.Layout = PositionColor
	}
	return m
}

// interleaveColor appends an rgb colour derived from the xz position to each vertex.
func interleaveColor(positions []float32) []float32 {
	out := make([]float32, 0, len(positions)*2)
	for i := 0; i+2 < len(positions); i += 3 {
		x, y, z := positions[i], positions[i+1], positions[i+2]
		out = append(out, x, y, z, x+0.5, 0.5, z+0.5)
	}
	return out
}

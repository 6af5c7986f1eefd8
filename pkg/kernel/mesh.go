package kernel

// Mesh is a triangle mesh produced from a solid, suitable for STL
// export or preview rendering. All arrays are flat: vertices has 3
// floats per vertex (x,y,z), normals has 3 floats per vertex, indices
// has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 // [nx0,ny0,nz0, ...]
	Indices  []uint32  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangle returns the three vertex positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c [3]float32) {
	va := m.Indices[i*3] * 3
	vb := m.Indices[i*3+1] * 3
	vc := m.Indices[i*3+2] * 3
	copy(a[:], m.Vertices[va:va+3])
	copy(b[:], m.Vertices[vb:vb+3])
	copy(c[:], m.Vertices[vc:vc+3])
	return a, b, c
}

package mesh

import (
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// degenerateArea is the squared cross-product magnitude below which a
// triangle contributes nothing to normals or tangents.
const degenerateArea float32 = 1e-12

// New creates a mesh from a position buffer and triangle index buffer.
// Normals, tangents and bounds are left zero until recalculated.
func New(name string, positions []math.Vec3, indices []uint32) *Mesh {
	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i].Position = p
	}
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Positions returns a copy of the vertex positions.
func (m *Mesh) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(m.Vertices))
	for i := range m.Vertices {
		out[i] = m.Vertices[i].Position
	}
	return out
}

// Recalculate recomputes normals, tangents and bounds in that order.
func (m *Mesh) Recalculate() {
	m.RecalculateNormals()
	m.RecalculateTangents()
	m.RecalculateBounds()
}

// RecalculateNormals averages area-weighted face normals at each vertex.
// Vertices referenced only by degenerate triangles (or by none) get Up.
func (m *Mesh) RecalculateNormals() {
	sums := make([]math.Vec3, len(m.Vertices))

	m.eachTriangle(func(i0, i1, i2 uint32) {
		p0 := m.Vertices[i0].Position
		e1 := m.Vertices[i1].Position.Sub(p0)
		e2 := m.Vertices[i2].Position.Sub(p0)

		// Unnormalized cross product weights by triangle area
		n := e1.Cross(e2)
		if n.Dot(n) < degenerateArea {
			return
		}
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	})

	for i := range m.Vertices {
		n := sums[i].Normalize()
		if n == (math.Vec3{}) {
			n = math.Up
		}
		m.Vertices[i].Normal = n
	}
}

// RecalculateTangents derives a tangent per vertex from the first edge of
// every adjacent triangle, orthogonalized against the vertex normal.
// The mesh carries no texture coordinates, so the edge direction stands in
// for the U axis. Call after RecalculateNormals.
func (m *Mesh) RecalculateTangents() {
	sums := make([]math.Vec3, len(m.Vertices))

	m.eachTriangle(func(i0, i1, i2 uint32) {
		p0 := m.Vertices[i0].Position
		e1 := m.Vertices[i1].Position.Sub(p0)
		e2 := m.Vertices[i2].Position.Sub(p0)
		n := e1.Cross(e2)
		if n.Dot(n) < degenerateArea {
			return
		}
		sums[i0] = sums[i0].Add(e1)
		sums[i1] = sums[i1].Add(e1)
		sums[i2] = sums[i2].Add(e1)
	})

	for i := range m.Vertices {
		normal := m.Vertices[i].Normal
		t := orthogonalize(sums[i], normal)
		if t == (math.Vec3{}) {
			t = fallbackTangent(normal)
		}
		m.Vertices[i].Tangent = math.Vec4{X: t.X, Y: t.Y, Z: t.Z, W: 1}
	}
}

// RecalculateBounds recomputes the axis-aligned bounding box.
func (m *Mesh) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	bounds := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
	for i := range m.Vertices {
		updateBounds(&bounds, m.Vertices[i].Position)
	}
	m.Bounds = bounds
}

// eachTriangle calls fn for every complete, in-range triangle.
func (m *Mesh) eachTriangle(fn func(i0, i1, i2 uint32)) {
	n := uint32(len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		fn(i0, i1, i2)
	}
}

// orthogonalize removes the component of t along n (Gram-Schmidt).
// Returns zero when t is (nearly) parallel to n.
func orthogonalize(t, n math.Vec3) math.Vec3 {
	r := t.Sub(n.Scale(n.Dot(t)))
	if r.Length() < 1e-6 {
		return math.Vec3{}
	}
	return r.Normalize()
}

func fallbackTangent(n math.Vec3) math.Vec3 {
	t := orthogonalize(math.Right, n)
	if t == (math.Vec3{}) {
		t = orthogonalize(math.Forward, n)
	}
	return t
}

func updateBounds(b *Bounds, p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

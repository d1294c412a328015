package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/crystal-twine/pkg/math"
)

// quad returns a unit square in the XZ plane wound so its normal points up.
func quad() *Mesh {
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 0},
	}
	return New("quad", positions, []uint32{0, 1, 2, 0, 2, 3})
}

func TestNew(t *testing.T) {
	m := quad()
	assert.Equal(t, "quad", m.Name)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.False(t, m.IsEmpty())
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 1}, m.Positions()[2])
}

func TestRecalculateNormalsFlat(t *testing.T) {
	m := quad()
	m.RecalculateNormals()
	for i, v := range m.Vertices {
		assert.True(t, v.Normal.ApproxEqual(math.Up, 1e-6), "vertex %d normal = %v", i, v.Normal)
	}
}

func TestRecalculateNormalsDegenerate(t *testing.T) {
	// Every triangle collapses to a point: normals fall back to Up.
	positions := []math.Vec3{{}, {X: 1}, {X: 1}}
	m := New("degenerate", positions, []uint32{0, 1, 2, 1, 1, 1})
	m.RecalculateNormals()
	for _, v := range m.Vertices {
		assert.Equal(t, math.Up, v.Normal)
	}
}

func TestRecalculateNormalsSkipsOutOfRange(t *testing.T) {
	m := quad()
	m.Indices = append(m.Indices, 0, 1, 99)
	require.NotPanics(t, m.RecalculateNormals)
}

func TestRecalculateTangents(t *testing.T) {
	m := quad()
	m.RecalculateNormals()
	m.RecalculateTangents()
	for i, v := range m.Vertices {
		tan := v.Tangent.XYZ()
		assert.InDelta(t, 1, tan.Length(), 1e-5, "vertex %d tangent not unit", i)
		assert.InDelta(t, 0, tan.Dot(v.Normal), 1e-5, "vertex %d tangent not orthogonal", i)
		assert.Equal(t, float32(1), v.Tangent.W)
	}
}

func TestRecalculateTangentsIsolatedVertex(t *testing.T) {
	m := New("point", []math.Vec3{{X: 3, Y: 2, Z: 1}}, nil)
	m.Recalculate()
	v := m.Vertices[0]
	assert.Equal(t, math.Up, v.Normal)
	assert.Equal(t, math.Vec4{X: 1, Y: 0, Z: 0, W: 1}, v.Tangent)
}

func TestRecalculateBounds(t *testing.T) {
	m := quad()
	m.Vertices[1].Position.Y = -2
	m.RecalculateBounds()
	assert.Equal(t, math.Vec3{X: 0, Y: -2, Z: 0}, m.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 1}, m.Bounds.Max)
	assert.Equal(t, math.Vec3{X: 0.5, Y: -1, Z: 0.5}, m.Bounds.Center())
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 1}, m.Bounds.Size())

	empty := New("empty", nil, nil)
	empty.RecalculateBounds()
	assert.Equal(t, Bounds{}, empty.Bounds)
}

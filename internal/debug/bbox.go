// Package debug generates line geometry for visualizing generated twines.
// Nothing here changes the generated mesh.
package debug

import (
	"github.com/Faultbox/crystal-twine/internal/mesh"
	"github.com/Faultbox/crystal-twine/internal/twine"
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// Marker sizes, as edge lengths of the marker cube.
const (
	VertexMarkerSize float32 = 0.075
	NodeMarkerSize   float32 = 0.05
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// GenerateBBoxWireframeVertices creates line vertices for a wireframe box.
// Returns 24 vertices (12 edges × 2 endpoints).
func GenerateBBoxWireframeVertices(min, max math.Vec3) []math.Vec3 {
	c := [8]math.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	return []math.Vec3{
		// Bottom face
		c[0], c[1], c[1], c[2], c[2], c[3], c[3], c[0],
		// Top face
		c[4], c[5], c[5], c[6], c[6], c[7], c[7], c[4],
		// Vertical edges
		c[0], c[4], c[1], c[5], c[2], c[6], c[3], c[7],
	}
}

// MarkerAt returns a wireframe cube of edge size centered on p.
func MarkerAt(p math.Vec3, size float32) []math.Vec3 {
	h := size / 2
	half := math.Vec3{X: h, Y: h, Z: h}
	return GenerateBBoxWireframeVertices(p.Sub(half), p.Add(half))
}

// VertexMarkers returns a marker for every position.
func VertexMarkers(positions []math.Vec3, size float32) []math.Vec3 {
	lines := make([]math.Vec3, 0, len(positions)*BBoxWireframeVertexCount)
	for _, p := range positions {
		lines = append(lines, MarkerAt(p, size)...)
	}
	return lines
}

// NodeMarkers returns a marker for every node of the chain.
func NodeMarkers(chain twine.Chain, size float32) []math.Vec3 {
	lines := make([]math.Vec3, 0, len(chain)*BBoxWireframeVertexCount)
	for _, n := range chain {
		lines = append(lines, MarkerAt(n.Position, size)...)
	}
	return lines
}

// BoundsWireframe returns the wireframe of the mesh bounds grown by padding.
func BoundsWireframe(b mesh.Bounds, padding float32) []math.Vec3 {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	return GenerateBBoxWireframeVertices(b.Min.Sub(pad), b.Max.Add(pad))
}

// Gizmos collects every debug line set for one generation.
func Gizmos(chain twine.Chain, m *mesh.Mesh) []math.Vec3 {
	lines := VertexMarkers(m.Positions(), VertexMarkerSize)
	lines = append(lines, NodeMarkers(chain, NodeMarkerSize)...)
	return lines
}

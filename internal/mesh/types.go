// Package mesh holds generated triangle meshes and recomputes their derived
// vertex attributes (normals, tangents, bounds).
package mesh

import "github.com/Faultbox/crystal-twine/pkg/math"

// Vertex represents a mesh vertex with position, normal and tangent.
// Tangent.W carries the bitangent sign.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec4
}

// Mesh holds the complete mesh data ready for upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

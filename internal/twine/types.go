// Package twine generates crystal twine meshes from a chain of control nodes.
//
// Generation runs three stages against one seeded random source: the ring-size
// planner decides how many vertices ring each node, the placement engine
// positions them, and the triangulator fans every ring to the apex.
package twine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/crystal-twine/internal/mesh"
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// Generation errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyChain   = fmt.Errorf("%w: node chain is empty", ErrInvalidInput)
)

// RadiusEpsilon is the radius below which a node gets a single-vertex ring.
const RadiusEpsilon float32 = 1e-6

// Randomized radius range for nodes carrying a negative radius.
const (
	MinRandomRadius float32 = 0.1
	MaxRandomRadius float32 = 1.0
)

// Node is one control point of the twine.
// A negative BaseRadius asks the density planner to pick a random radius,
// which is then stored back on the node.
type Node struct {
	Name       string
	Position   math.Vec3
	BaseRadius float32
}

// Chain is the ordered node sequence, apex first.
type Chain []*Node

// Len returns the number of nodes.
func (c Chain) Len() int {
	return len(c)
}

// SizingPolicy selects how ring vertex counts are derived.
type SizingPolicy int

// Sizing policies.
const (
	// SizingIncremental grows every ring from the one above it.
	SizingIncremental SizingPolicy = iota
	// SizingDensity derives each ring independently from its node radius.
	SizingDensity
)

// String returns the config name of the policy.
func (p SizingPolicy) String() string {
	switch p {
	case SizingIncremental:
		return "incremental"
	case SizingDensity:
		return "density"
	default:
		return fmt.Sprintf("SizingPolicy(%d)", int(p))
	}
}

// ParseSizingPolicy parses a config name into a SizingPolicy.
func ParseSizingPolicy(s string) (SizingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "incremental", "":
		return SizingIncremental, nil
	case "density":
		return SizingDensity, nil
	default:
		return 0, fmt.Errorf("unknown sizing policy %q", s)
	}
}

// JitterMode selects the single placement jitter strategy of a run.
type JitterMode int

// Jitter modes.
const (
	// JitterNone places ring vertices at uniform angular steps.
	JitterNone JitterMode = iota
	// JitterCircular perturbs the angular step between ring vertices.
	JitterCircular
	// JitterLinear adds a per-axis offset to every ring vertex.
	JitterLinear
)

// String returns the config name of the mode.
func (m JitterMode) String() string {
	switch m {
	case JitterNone:
		return "none"
	case JitterCircular:
		return "circular"
	case JitterLinear:
		return "linear"
	default:
		return fmt.Sprintf("JitterMode(%d)", int(m))
	}
}

// ParseJitterMode parses a config name into a JitterMode.
func ParseJitterMode(s string) (JitterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return JitterNone, nil
	case "circular":
		return JitterCircular, nil
	case "linear":
		return JitterLinear, nil
	default:
		return 0, fmt.Errorf("unknown jitter mode %q", s)
	}
}

// Params configures one generation run.
type Params struct {
	Sizing SizingPolicy
	// MinVertexAddPerNode is the minimum growth per ring (incremental sizing).
	MinVertexAddPerNode int
	// VertexDensityPerUnitRadius scales radius into a vertex count (density sizing).
	VertexDensityPerUnitRadius float32
	// MaxVerticesPerNode caps ring sizes. 0 means unbounded.
	MaxVerticesPerNode int

	Jitter JitterMode
	// CircularVertexOffset is the angular jitter budget as a fraction of the
	// uniform step, in [0, 1].
	CircularVertexOffset float32
	// MaxVertexOffset bounds the linear jitter per axis.
	MaxVertexOffset math.Vec3
}

// DefaultParams returns the parameters of the plain incremental twine.
func DefaultParams() Params {
	return Params{
		Sizing:                     SizingIncremental,
		MinVertexAddPerNode:        2,
		VertexDensityPerUnitRadius: 8,
		MaxVerticesPerNode:         0,
		Jitter:                     JitterNone,
		CircularVertexOffset:       0,
	}
}

// Result is the output of one generation run.
type Result struct {
	Seed               Seed
	VertexCountPerNode []int
	Mesh               *mesh.Mesh
}

// TotalVertexCount returns 1 + the sum of all ring sizes.
func (r *Result) TotalVertexCount() int {
	return totalVertexCount(r.VertexCountPerNode)
}

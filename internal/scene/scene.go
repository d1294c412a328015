// Package scene stores twine node hierarchies and flattens them into the
// ordered node chain consumed by the generator.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/crystal-twine/internal/twine"
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// Scene errors.
var (
	ErrChainMismatch = errors.New("chain does not belong to this scene")
)

// Scene is one twine instance: its persisted seed and node hierarchy.
type Scene struct {
	Name string `yaml:"name"`
	// Seed is the textual generation seed. Empty means "generate one";
	// the generated text is written back so the result can be reproduced.
	Seed string `yaml:"seed"`
	// Origin is the world position of the node container.
	Origin [3]float32 `yaml:"origin,flow"`
	Nodes  []*Node    `yaml:"nodes"`

	// bound holds the scene nodes behind the last chain, index-aligned.
	bound []*Node
}

// Node is a twine node in the hierarchy. Offset is relative to the parent.
type Node struct {
	Name     string     `yaml:"name"`
	Offset   [3]float32 `yaml:"offset,flow"`
	Radius   float32    `yaml:"radius"`
	Children []*Node    `yaml:"children,omitempty"`
}

// Load reads a scene from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scene from YAML bytes.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return &s, nil
}

// SaveTo writes the scene to path, creating parent directories.
func (s *Scene) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Chain flattens the hierarchy depth-first (parent before children, siblings
// in order) into a twine chain with world positions. The chain nodes are
// copies; use WriteBack to persist radii resolved during generation.
func (s *Scene) Chain() twine.Chain {
	var chain twine.Chain
	s.bound = s.bound[:0]

	origin := vec(s.Origin)
	var walk func(nodes []*Node, parent math.Vec3)
	walk = func(nodes []*Node, parent math.Vec3) {
		for _, n := range nodes {
			pos := parent.Add(vec(n.Offset))
			chain = append(chain, &twine.Node{
				Name:       n.Name,
				Position:   pos,
				BaseRadius: n.Radius,
			})
			s.bound = append(s.bound, n)
			walk(n.Children, pos)
		}
	}
	walk(s.Nodes, origin)

	return chain
}

// WriteBack copies node radii from chain, which must be the last chain
// returned by Chain, into the scene. It returns the number of nodes changed.
func (s *Scene) WriteBack(chain twine.Chain) (int, error) {
	if len(chain) != len(s.bound) {
		return 0, fmt.Errorf("%w: %d nodes, scene has %d", ErrChainMismatch, len(chain), len(s.bound))
	}

	changed := 0
	for i, n := range chain {
		if s.bound[i].Radius != n.BaseRadius {
			s.bound[i].Radius = n.BaseRadius
			changed++
		}
	}
	return changed, nil
}

// NodeCount returns the number of twine nodes in the hierarchy.
func (s *Scene) NodeCount() int {
	count := 0
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			count++
			walk(n.Children)
		}
	}
	walk(s.Nodes)
	return count
}

// NewLinear builds a scene whose nodes hang straight down from origin,
// spacing apart, with the given radii. Each node is the child of the one
// above it; the first radius is the apex's.
func NewLinear(name string, origin math.Vec3, spacing float32, radii []float32) *Scene {
	s := &Scene{Name: name, Origin: origin.Array()}
	var parent *Node
	for i, r := range radii {
		n := &Node{Name: fmt.Sprintf("node%d", i), Radius: r}
		if parent == nil {
			s.Nodes = append(s.Nodes, n)
		} else {
			n.Offset = [3]float32{0, -spacing, 0}
			parent.Children = append(parent.Children, n)
		}
		parent = n
	}
	return s
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

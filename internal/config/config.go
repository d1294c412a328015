// Package config handles generator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/crystal-twine/internal/logger"
	"github.com/Faultbox/crystal-twine/internal/twine"
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Output formats.
const (
	FormatOBJ = "obj"
	FormatTWM = "twm"
)

// Config holds all generator settings.
type Config struct {
	Generation GenerationConfig `yaml:"generation" toml:"generation"`
	Scene      SceneConfig      `yaml:"scene" toml:"scene"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Debug      DebugConfig      `yaml:"debug" toml:"debug"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// GenerationConfig holds the twine generation parameters.
type GenerationConfig struct {
	// Seed is the textual seed. Empty picks a random one.
	Seed string `yaml:"seed" toml:"seed"`
	// NumericSeed uses Seed as an integer instead of hashing it.
	NumericSeed bool `yaml:"numeric_seed" toml:"numeric_seed"`

	Sizing                     string  `yaml:"sizing" toml:"sizing"` // incremental | density
	MinVertexAddPerNode        int     `yaml:"min_vertex_add_per_node" toml:"min_vertex_add_per_node"`
	VertexDensityPerUnitRadius float32 `yaml:"vertex_density_per_unit_radius" toml:"vertex_density_per_unit_radius"`
	MaxVerticesPerNode         int     `yaml:"max_vertices_per_node" toml:"max_vertices_per_node"` // 0 = unbounded

	Jitter               string     `yaml:"jitter" toml:"jitter"` // none | circular | linear
	CircularVertexOffset float32    `yaml:"circular_vertex_offset" toml:"circular_vertex_offset"`
	MaxVertexOffset      [3]float32 `yaml:"max_vertex_offset,flow" toml:"max_vertex_offset"`
}

// SceneConfig holds the node source settings.
type SceneConfig struct {
	Path string `yaml:"path" toml:"path"`
	// WriteBack saves resolved radii and seed into the scene file.
	WriteBack bool `yaml:"write_back" toml:"write_back"`
}

// OutputConfig holds mesh output settings.
type OutputConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Format string `yaml:"format" toml:"format"` // obj | twm
}

// DebugConfig holds debug visualization settings.
type DebugConfig struct {
	DrawGizmos bool `yaml:"draw_gizmos" toml:"draw_gizmos"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := twine.DefaultParams()
	return &Config{
		Generation: GenerationConfig{
			Sizing:                     p.Sizing.String(),
			MinVertexAddPerNode:        p.MinVertexAddPerNode,
			VertexDensityPerUnitRadius: p.VertexDensityPerUnitRadius,
			MaxVerticesPerNode:         p.MaxVerticesPerNode,
			Jitter:                     p.Jitter.String(),
			CircularVertexOffset:       0.5,
			MaxVertexOffset:            [3]float32{0.1, 0.1, 0.1},
		},
		Scene: SceneConfig{
			Path: "twine.yaml",
		},
		Output: OutputConfig{
			Path:   "twine.obj",
			Format: FormatOBJ,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if c.Output.Format != FormatOBJ && c.Output.Format != FormatTWM {
		return fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.Output.Format)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Params converts the generation settings into generator parameters.
func (c *Config) Params() (twine.Params, error) {
	g := c.Generation

	sizing, err := twine.ParseSizingPolicy(g.Sizing)
	if err != nil {
		return twine.Params{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	jitter, err := twine.ParseJitterMode(g.Jitter)
	if err != nil {
		return twine.Params{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch {
	case g.MinVertexAddPerNode < 0:
		return twine.Params{}, fmt.Errorf("%w: min_vertex_add_per_node %d < 0", ErrInvalidConfig, g.MinVertexAddPerNode)
	case g.VertexDensityPerUnitRadius < 0:
		return twine.Params{}, fmt.Errorf("%w: vertex_density_per_unit_radius %g < 0", ErrInvalidConfig, g.VertexDensityPerUnitRadius)
	case g.MaxVerticesPerNode < 0:
		return twine.Params{}, fmt.Errorf("%w: max_vertices_per_node %d < 0", ErrInvalidConfig, g.MaxVerticesPerNode)
	case g.CircularVertexOffset < 0 || g.CircularVertexOffset > 1:
		return twine.Params{}, fmt.Errorf("%w: circular_vertex_offset %g not in [0, 1]", ErrInvalidConfig, g.CircularVertexOffset)
	}
	for i, v := range g.MaxVertexOffset {
		if v < 0 {
			return twine.Params{}, fmt.Errorf("%w: max_vertex_offset[%d] %g < 0", ErrInvalidConfig, i, v)
		}
	}

	return twine.Params{
		Sizing:                     sizing,
		MinVertexAddPerNode:        g.MinVertexAddPerNode,
		VertexDensityPerUnitRadius: g.VertexDensityPerUnitRadius,
		MaxVerticesPerNode:         g.MaxVerticesPerNode,
		Jitter:                     jitter,
		CircularVertexOffset:       g.CircularVertexOffset,
		MaxVertexOffset: math.Vec3{
			X: g.MaxVertexOffset[0],
			Y: g.MaxVertexOffset[1],
			Z: g.MaxVertexOffset[2],
		},
	}, nil
}

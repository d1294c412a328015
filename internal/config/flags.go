package config

import "flag"

// Overrides holds command-line settings that take priority over the
// config file. Zero values leave the file setting alone.
type Overrides struct {
	ConfigPath string
	Seed       string
	Scene      string
	Output     string
	Format     string
	Sizing     string
	Jitter     string
	Debug      bool
	WriteBack  bool
	Gizmos     bool
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *flag.FlagSet) *Overrides {
	ov := &Overrides{}
	fs.StringVar(&ov.ConfigPath, "config", "", "Path to config file (.yaml or .toml)")
	fs.StringVar(&ov.Seed, "seed", "", "Generation seed")
	fs.StringVar(&ov.Scene, "scene", "", "Path to scene file")
	fs.StringVar(&ov.Output, "o", "", "Output file")
	fs.StringVar(&ov.Format, "format", "", "Output format (obj, twm)")
	fs.StringVar(&ov.Sizing, "sizing", "", "Ring sizing policy (incremental, density)")
	fs.StringVar(&ov.Jitter, "jitter", "", "Jitter mode (none, circular, linear)")
	fs.BoolVar(&ov.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&ov.WriteBack, "write-back", false, "Save resolved seed and radii into the scene file")
	fs.BoolVar(&ov.Gizmos, "gizmos", false, "Export debug gizmo lines (OBJ only)")
	return ov
}

// apply applies CLI flag overrides to the config.
func (ov *Overrides) apply(cfg *Config) {
	if ov == nil {
		return
	}
	if ov.Seed != "" {
		cfg.Generation.Seed = ov.Seed
	}
	if ov.Scene != "" {
		cfg.Scene.Path = ov.Scene
	}
	if ov.Output != "" {
		cfg.Output.Path = ov.Output
	}
	if ov.Format != "" {
		cfg.Output.Format = ov.Format
	}
	if ov.Sizing != "" {
		cfg.Generation.Sizing = ov.Sizing
	}
	if ov.Jitter != "" {
		cfg.Generation.Jitter = ov.Jitter
	}
	if ov.Debug {
		cfg.Logging.Level = "debug"
	}
	if ov.WriteBack {
		cfg.Scene.WriteBack = true
	}
	if ov.Gizmos {
		cfg.Debug.DrawGizmos = true
	}
}

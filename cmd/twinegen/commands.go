package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/crystal-twine/internal/config"
	"github.com/Faultbox/crystal-twine/internal/logger"
	"github.com/Faultbox/crystal-twine/internal/twine"
	"github.com/Faultbox/crystal-twine/pkg/formats"
)

// setup parses the shared options, loads the configuration and starts
// logging. Flags registered on fs by the caller are parsed too.
func setup(fs *flag.FlagSet, args []string) (*config.Config, *config.Overrides) {
	ov := config.BindFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(ov)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	return cfg, ov
}

func newGenerator(cfg *config.Config) *twine.Generator {
	// Validated by config.Load
	params, _ := cfg.Params()
	return twine.NewGenerator(params)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfg, _ := setup(fs, args)
	defer logger.Sync()

	if err := runGenerate(cfg); err != nil {
		fail(err)
	}
}

func runGenerate(cfg *config.Config) error {
	s, err := loadScene(cfg.Scene.Path)
	if err != nil {
		return err
	}

	seed, err := twine.ResolveSeed(seedText(cfg, s), cfg.Generation.NumericSeed)
	if err != nil {
		return err
	}

	res, chain, err := generateScene(cfg, newGenerator(cfg), s, seed)
	if err != nil {
		return err
	}
	if err := export(cfg, cfg.Output.Path, res, chain); err != nil {
		return err
	}

	fmt.Printf("Seed:      %s\n", res.Seed)
	fmt.Printf("Rings:     %v\n", res.VertexCountPerNode)
	fmt.Printf("Vertices:  %d\n", res.Mesh.VertexCount())
	fmt.Printf("Triangles: %d\n", res.Mesh.TriangleCount())
	fmt.Printf("Output:    %s\n", cfg.Output.Path)
	return nil
}

func cmdBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	count := fs.Int("n", 10, "Number of variants")
	dir := fs.String("dir", "variants", "Output directory")
	cfg, _ := setup(fs, args)
	defer logger.Sync()

	if *count < 1 {
		fmt.Fprintln(os.Stderr, "Usage: twinegen batch -n N (N >= 1)")
		os.Exit(1)
	}

	seeds, err := runBatch(cfg, *count, *dir, true)
	if err != nil {
		fail(err)
	}
	for _, s := range seeds {
		fmt.Println(s.Text)
	}
}

// runBatch generates count variants of the scene, each with a fresh random
// seed, into dir. Write-back is ignored: every variant starts from the
// scene as loaded.
func runBatch(cfg *config.Config, count int, dir string, progress bool) ([]twine.Seed, error) {
	s, err := loadScene(cfg.Scene.Path)
	if err != nil {
		return nil, err
	}

	batchCfg := *cfg
	batchCfg.Scene.WriteBack = false
	gen := newGenerator(cfg)

	base := strings.TrimSuffix(filepath.Base(cfg.Output.Path), filepath.Ext(cfg.Output.Path))

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(count), "generating")
	}

	seeds := make([]twine.Seed, 0, count)
	for range count {
		seed := twine.SeedFromText("")
		res, chain, err := generateScene(&batchCfg, gen, s, seed)
		if err != nil {
			return seeds, err
		}

		path := variantPath(dir, base, seed.Text, cfg.Output.Format)
		if err := export(cfg, path, res, chain); err != nil {
			return seeds, err
		}
		seeds = append(seeds, seed)

		if bar != nil {
			bar.Add(1)
		}
	}
	return seeds, nil
}

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cfg, ov := setup(fs, args)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runWatch(ctx, cfg, ov); err != nil {
		fail(err)
	}
}

// runWatch regenerates the mesh on every change to the scene file or the
// explicit config file until ctx is done. Each regeneration replaces the
// previous mesh.
func runWatch(ctx context.Context, cfg *config.Config, ov *config.Overrides) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch directories: editors often replace files instead of writing them.
	watched := map[string]bool{filepath.Clean(cfg.Scene.Path): true}
	var configPath string
	if ov != nil && ov.ConfigPath != "" {
		if configPath, err = homedir.Expand(ov.ConfigPath); err != nil {
			return err
		}
		configPath = filepath.Clean(configPath)
		watched[configPath] = true
	}
	dirs := map[string]bool{}
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	gen := newGenerator(cfg)
	regenerate := func() {
		if err := regenerateOnce(cfg, gen); err != nil {
			logger.Error("regeneration failed", zap.Error(err))
		}
	}

	logger.Info("watching for changes", zap.String("scene", cfg.Scene.Path))
	regenerate()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))

			if filepath.Clean(event.Name) == configPath {
				newCfg, err := config.Load(ov)
				if err != nil {
					logger.Error("config reload failed", zap.Error(err))
					continue
				}
				cfg = newCfg
				params, _ := cfg.Params()
				gen.SetParams(params)
			}
			regenerate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// regenerateOnce reloads the scene and replaces the generator's mesh.
func regenerateOnce(cfg *config.Config, gen *twine.Generator) error {
	s, err := loadScene(cfg.Scene.Path)
	if err != nil {
		return err
	}
	seed, err := twine.ResolveSeed(seedText(cfg, s), cfg.Generation.NumericSeed)
	if err != nil {
		return err
	}
	res, chain, err := generateScene(cfg, gen, s, seed)
	if err != nil {
		return err
	}
	return export(cfg, cfg.Output.Path, res, chain)
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: twinegen inspect <file.twm>")
		os.Exit(1)
	}

	m, err := formats.LoadTWM(args[0])
	if err != nil {
		fail(err)
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Version:   %s\n", m.Version)
	fmt.Printf("Name:      %s\n", m.Name)
	fmt.Printf("Seed:      %s (%d)\n", m.SeedText, m.SeedValue)
	fmt.Printf("Nodes:     %d\n", len(m.RingCounts))
	fmt.Printf("Rings:     %v\n", m.RingCounts)
	fmt.Printf("Vertices:  %d\n", len(m.Vertices))
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Bounds:    %v - %v\n", m.BoundsMin, m.BoundsMax)
}

func cmdSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	count := fs.Int("n", 1, "Number of seeds to print")
	fs.Parse(args)

	if fs.NArg() > 0 {
		text := fs.Arg(0)
		fmt.Printf("%s %d\n", text, twine.HashSeed(text))
		return
	}

	for range *count {
		fmt.Println(twine.RandomSeedText(twine.SeedTextLength))
	}
}

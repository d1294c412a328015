// twinegen generates crystal twine meshes from node scene files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "batch":
		cmdBatch(args)
	case "watch":
		cmdWatch(args)
	case "inspect", "info":
		cmdInspect(args)
	case "seed":
		cmdSeed(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`twinegen - crystal twine mesh generator

Usage:
  twinegen <command> [options]

Commands:
  generate [options]          Generate one mesh from the scene
  batch -n N [options]        Generate N variants with random seeds
  watch [options]             Regenerate whenever the scene or config changes
  inspect <file.twm>          Show TWM file information
  seed [-n count] [text]      Print random seeds, or the value of a seed text

Options (generate, batch, watch):
  -config <file>    Config file (.yaml or .toml)
  -scene <file>     Scene file
  -o <file>         Output file
  -format obj|twm   Output format
  -seed <text>      Generation seed
  -sizing <policy>  incremental or density
  -jitter <mode>    none, circular or linear
  -gizmos           Export debug gizmo lines (OBJ)
  -write-back       Save resolved seed and radii into the scene
  -debug            Enable debug logging

Examples:
  twinegen generate -scene cave.yaml -o cave.obj -seed AMETHYST
  twinegen batch -n 20 -dir variants -format twm
  twinegen watch -scene cave.yaml -gizmos
  twinegen inspect cave.twm`)
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

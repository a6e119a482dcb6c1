// Command moldcheck runs the DFM analysis pipeline against one of the
// built-in demonstration parts and prints the findings. It exists to
// exercise the engine end to end from a shell; host applications embed
// the runner package directly.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rquillo/moldcheck/pkg/analyze"
	"github.com/rquillo/moldcheck/pkg/brep"
	"github.com/rquillo/moldcheck/pkg/process"
	"github.com/rquillo/moldcheck/pkg/runner"
)

func main() {
	var (
		processesDir = flag.String("processes", "processes", "directory of process definition YAML files")
		processID    = flag.String("process", "injection_molding", "process ID to check against")
		materialName = flag.String("material", "ABS", "material name within the process")
		partName     = flag.String("part", "box", "demonstration part: slab, box, cylinder, frustum, twoslabs")
		pullSpec     = flag.String("pull", "0,0,1", "pull direction as x,y,z")
		samples      = flag.Int("samples", 0, "per-axis sample count (0 uses analyzer defaults)")
		classify     = flag.Bool("classify", false, "classify faces into core/cavity mold sides")
		verbose      = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	shape, err := buildPart(*partName)
	if err != nil {
		log.Error("invalid part", "part", *partName, "error", err)
		os.Exit(1)
	}
	pull, err := parsePull(*pullSpec)
	if err != nil {
		log.Error("invalid pull direction", "pull", *pullSpec, "error", err)
		os.Exit(1)
	}

	procs, err := process.LoadDir(*processesDir)
	if err != nil {
		log.Error("loading process definitions", "dir", *processesDir, "error", err)
		os.Exit(1)
	}
	registry := process.NewRegistry(procs...)

	r := runner.New(runner.DefaultRegistry(), registry)
	r.SetLogger(log)

	findings := r.Run(shape, *processID, *materialName, analyze.Config{
		PullDirection:     pull,
		Samples:           *samples,
		ClassifyMoldSides: *classify,
	})
	if r.State() == runner.StateFailed {
		os.Exit(1)
	}

	if len(findings) == 0 {
		fmt.Println("No findings.")
		return
	}
	for _, f := range findings {
		fmt.Printf("[%s] %s: %s\n", f.Severity, f.Rule.Label(), f.Overview)
		for _, face := range f.Faces {
			fmt.Printf("    face %s: %s\n", face.Name, f.Message)
		}
	}
	os.Exit(2)
}

func buildPart(name string) (*brep.Shape, error) {
	switch name {
	case "slab":
		return brep.NewSlab(40, 40, 2), nil
	case "box":
		return brep.NewBox(v3.Vec{}, 20, 20, 10), nil
	case "cylinder":
		return brep.NewSolidCylinder(10, 20), nil
	case "frustum":
		return brep.NewFrustum(10, 11, 20), nil
	case "twoslabs":
		return brep.NewTwoSlabs(30, 30, 2, 6), nil
	default:
		return nil, fmt.Errorf("unknown part %q", name)
	}
}

func parsePull(spec string) (v3.Vec, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return v3.Vec{}, fmt.Errorf("want three comma-separated components")
	}
	var c [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v3.Vec{}, fmt.Errorf("component %d: %w", i, err)
		}
		c[i] = v
	}
	vec := v3.Vec{X: c[0], Y: c[1], Z: c[2]}
	if vec == (v3.Vec{}) {
		return v3.Vec{}, fmt.Errorf("pull direction must be non-zero")
	}
	return vec.Normalize(), nil
}

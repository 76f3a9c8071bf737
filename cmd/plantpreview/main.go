// Command plantpreview scatters plant kinds over a small field and writes a
// top-down preview of where their meshes, shadows and leaves end up.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"image/png"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/gekko3d/decoplant"
)

//go:embed plants.toml
var defaultDefs string

func main() {
	var (
		defsPath = flag.String("defs", "", "plant definition file (TOML); built-in kinds when empty")
		size     = flag.Int("size", 8, "field side length in cells")
		ticks    = flag.Int("ticks", 4000, "simulation ticks to run before rendering leaves")
		scale    = flag.Int("scale", 64, "pixels per cell")
		out      = flag.String("out", "plants.png", "output PNG path")
		seed     = flag.Uint64("seed", 1, "seed for kind selection and leaves")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := decoplant.NewDefaultLogger("plantpreview", *debug)
	if err := run(log, *defsPath, *size, *ticks, *scale, *out, *seed); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(log decoplant.Logger, defsPath string, size, ticks, scale int, out string, seed uint64) error {
	var (
		defs *decoplant.Defs
		err  error
	)
	if defsPath == "" {
		defs, err = decoplant.LoadDefs(strings.NewReader(defaultDefs), log)
	} else {
		defs, err = decoplant.LoadDefsFile(defsPath, log)
	}
	if err != nil {
		return err
	}
	if len(defs.Plants) == 0 {
		return fmt.Errorf("no plant kinds defined")
	}
	if size <= 0 || scale <= 0 {
		return fmt.Errorf("size and scale must be positive")
	}

	atlas := decoplant.NewAtlas()
	bases := make([]decoplant.MaterialID, 0, len(defs.Plants))
	for _, def := range defs.Plants {
		bases = append(bases, def.Material)
	}
	if _, err := atlas.PackGrid("plants", 4, uniqueMaterials(bases)...); err != nil {
		return err
	}

	pool := decoplant.NewLeafPool(size * size * 4)
	leaves := decoplant.NewLeafEmitter(defs.Leaves, pool, rand.NewPCG(seed, seed+1), log)
	field := decoplant.NewField(decoplant.NewPlacer(atlas, log), leaves, log)

	pick := rand.New(rand.NewPCG(seed, seed^0x5bd1e995))
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			def := defs.Plants[pick.IntN(len(defs.Plants))]
			field.Spawn(def, decoplant.CellPos{x, 0, z})
		}
	}

	step := time.Second / decoplant.TicksPerSecond
	for i := 0; i < ticks; i++ {
		field.Tick()
		pool.Update(step)
	}

	batch := &decoplant.PlaneBatch{}
	planes := field.Print(batch)
	for _, p := range field.Plants() {
		placement := p.Print(&decoplant.PlaneBatch{})
		fmt.Printf("#%-4d %-14s %v instances=%d clamped=%v\n",
			p.ID, p.LabelMouseover(), p.Pos, len(placement.Instances), placement.Clamped)
	}

	img := renderPreview(field, pool.Instances(), size, scale)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	log.Infof("wrote %s: %d plants, %d planes, %d shadows, %d leaves",
		out, len(field.Plants()), planes, len(batch.Shadows), pool.Alive())
	return nil
}

func uniqueMaterials(in []decoplant.MaterialID) []decoplant.MaterialID {
	seen := make(map[decoplant.MaterialID]struct{}, len(in))
	out := in[:0]
	for _, m := range in {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

package decoplant

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml"
)

// PlantConfig is the per-kind placement configuration.
type PlantConfig struct {
	VisualSize       float32
	MaxInstanceCount int
	TopWindExposure  float32
}

// ShadowData describes the blob shadow printed under a plant.
type ShadowData struct {
	Volume mgl32.Vec3
	Offset mgl32.Vec3
}

// PlantDef is everything known about one plant kind.
type PlantDef struct {
	Name     string
	Label    string
	Material MaterialID
	Category AtlasGroup
	Altitude float32
	DrawSize mgl32.Vec2

	PlantConfig

	// Shadow is nil for kinds without a shadow.
	Shadow *ShadowData

	reports configReporter
}

// LeafConfig tunes leaf emission.
type LeafConfig struct {
	SpawnRadius   float32
	SpawnYMin     float32
	SpawnYMax     float32
	IntervalTicks int
}

func DefaultPlantConfig() PlantConfig {
	return PlantConfig{
		VisualSize:       1,
		MaxInstanceCount: 1,
		TopWindExposure:  0.25,
	}
}

func DefaultLeafConfig() LeafConfig {
	return LeafConfig{
		SpawnRadius:   0.4,
		SpawnYMin:     0.3,
		SpawnYMax:     1,
		IntervalTicks: 2000,
	}
}

// SideCount maps a supported instance count to the number of instances per
// side of the sub-grid.
func SideCount(count int) (int, error) {
	switch count {
	case 1:
		return 1, nil
	case 4:
		return 2, nil
	case 9:
		return 3, nil
	case 16:
		return 4, nil
	case 25:
		return 5, nil
	}
	return 0, &ConfigurationError{Field: "max_instance_count", Value: count}
}

// Validate reports the first configuration problem of the kind.
func (d *PlantDef) Validate() error {
	if problems := d.problems(); len(problems) > 0 {
		return problems[0]
	}
	return nil
}

func (d *PlantDef) problems() []*ConfigurationError {
	var out []*ConfigurationError
	if _, err := SideCount(d.MaxInstanceCount); err != nil {
		out = append(out, &ConfigurationError{Kind: d.Name, Field: "max_instance_count", Value: d.MaxInstanceCount})
	}
	if !(d.VisualSize > 0) {
		out = append(out, &ConfigurationError{Kind: d.Name, Field: "visual_size", Value: d.VisualSize})
	}
	if d.TopWindExposure < 0 || d.TopWindExposure > 1 {
		out = append(out, &ConfigurationError{Kind: d.Name, Field: "top_wind_exposure", Value: d.TopWindExposure})
	}
	if d.DrawSize[0] <= 0 || d.DrawSize[1] <= 0 {
		out = append(out, &ConfigurationError{Kind: d.Name, Field: "draw_size", Value: d.DrawSize})
	}
	return out
}

// report logs a configuration problem of the kind unless it was logged
// before, whoever logged it.
func (d *PlantDef) report(log Logger, err *ConfigurationError) {
	d.reports.report(log, err)
}

// Defs is the decoded content of a plant definition file.
type Defs struct {
	Plants []*PlantDef
	Leaves LeafConfig
}

// Kind finds a plant kind by name.
func (d *Defs) Kind(name string) (*PlantDef, bool) {
	for _, p := range d.Plants {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

type defsFile struct {
	Plant  []plantEntry `toml:"plant"`
	Leaves leavesEntry  `toml:"leaves"`
}

// Pointers distinguish absent keys from zero values.
type plantEntry struct {
	Name             string       `toml:"name"`
	Label            string       `toml:"label"`
	Material         string       `toml:"material"`
	Category         string       `toml:"category"`
	Altitude         tomlFloat    `toml:"altitude"`
	DrawSize         []tomlFloat  `toml:"draw_size"`
	VisualSize       *tomlFloat   `toml:"visual_size"`
	MaxInstanceCount *int64       `toml:"max_instance_count"`
	TopWindExposure  *tomlFloat   `toml:"top_wind_exposure"`
	Shadow           *shadowEntry `toml:"shadow"`
}

type shadowEntry struct {
	Volume []tomlFloat `toml:"volume"`
	Offset []tomlFloat `toml:"offset"`
}

type leavesEntry struct {
	SpawnRadius   *tomlFloat `toml:"spawn_radius"`
	SpawnYMin     *tomlFloat `toml:"spawn_y_min"`
	SpawnYMax     *tomlFloat `toml:"spawn_y_max"`
	IntervalTicks *int64     `toml:"interval_ticks"`
}

// tomlFloat accepts both `1` and `1.0`.
type tomlFloat float64

func (f *tomlFloat) UnmarshalTOML(v interface{}) error {
	switch n := v.(type) {
	case int64:
		*f = tomlFloat(n)
	case float64:
		*f = tomlFloat(n)
	default:
		return fmt.Errorf("want a number, got %v (%T)", v, v)
	}
	return nil
}

// LoadDefs decodes plant kinds from TOML. Kinds that fail validation are kept
// and reported through log; the placer degrades them at print time without
// logging the same problem again.
func LoadDefs(r io.Reader, log Logger) (*Defs, error) {
	log = loggerOrNop(log)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read plant defs: %w", err)
	}
	var file defsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode plant defs: %w", err)
	}

	defs := &Defs{Leaves: file.Leaves.config()}
	seen := make(map[string]struct{}, len(file.Plant))
	for i, entry := range file.Plant {
		if entry.Name == "" {
			return nil, fmt.Errorf("plant #%d: missing name", i)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("plant %q declared twice", entry.Name)
		}
		seen[entry.Name] = struct{}{}

		def, err := entry.def()
		if err != nil {
			return nil, fmt.Errorf("plant %q: %w", entry.Name, err)
		}
		for _, problem := range def.problems() {
			def.report(log, problem)
		}
		defs.Plants = append(defs.Plants, def)
	}
	log.Debugf("loaded %d plant kinds", len(defs.Plants))
	return defs, nil
}

func (e plantEntry) def() (*PlantDef, error) {
	def := &PlantDef{
		Name:        e.Name,
		Label:       e.Label,
		Material:    MaterialID(e.Material),
		Category:    AtlasGroup(e.Category),
		Altitude:    float32(e.Altitude),
		DrawSize:    mgl32.Vec2{1, 1},
		PlantConfig: DefaultPlantConfig(),
	}
	if def.Label == "" {
		def.Label = def.Name
	}
	if e.DrawSize != nil {
		v, err := vecN(e.DrawSize, 2, "draw_size")
		if err != nil {
			return nil, err
		}
		def.DrawSize = mgl32.Vec2{v[0], v[1]}
	}
	if e.VisualSize != nil {
		def.VisualSize = float32(*e.VisualSize)
	}
	if e.MaxInstanceCount != nil {
		def.MaxInstanceCount = int(*e.MaxInstanceCount)
	}
	if e.TopWindExposure != nil {
		def.TopWindExposure = float32(*e.TopWindExposure)
	}
	if e.Shadow != nil {
		volume, err := vecN(e.Shadow.Volume, 3, "shadow.volume")
		if err != nil {
			return nil, err
		}
		offset, err := vecN(e.Shadow.Offset, 3, "shadow.offset")
		if err != nil {
			return nil, err
		}
		def.Shadow = &ShadowData{
			Volume: mgl32.Vec3{volume[0], volume[1], volume[2]},
			Offset: mgl32.Vec3{offset[0], offset[1], offset[2]},
		}
	}
	return def, nil
}

func (e leavesEntry) config() LeafConfig {
	c := DefaultLeafConfig()
	if e.SpawnRadius != nil {
		c.SpawnRadius = float32(*e.SpawnRadius)
	}
	if e.SpawnYMin != nil {
		c.SpawnYMin = float32(*e.SpawnYMin)
	}
	if e.SpawnYMax != nil {
		c.SpawnYMax = float32(*e.SpawnYMax)
	}
	if e.IntervalTicks != nil && *e.IntervalTicks > 0 {
		c.IntervalTicks = int(*e.IntervalTicks)
	}
	return c
}

// vecN accepts an absent vector as all zeroes.
func vecN(in []tomlFloat, n int, field string) ([]float32, error) {
	out := make([]float32, n)
	if len(in) == 0 {
		return out, nil
	}
	if len(in) != n {
		return nil, fmt.Errorf("%s wants %d components, got %d", field, n, len(in))
	}
	for i, v := range in {
		out[i] = float32(v)
	}
	return out, nil
}

// LoadDefsFile is LoadDefs on a file path.
func LoadDefsFile(path string, log Logger) (*Defs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plant defs: %w", err)
	}
	defer f.Close()
	return LoadDefs(f, log)
}

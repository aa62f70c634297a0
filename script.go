package adventure

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownScript reports a manifest naming a unit type missing from the
// catalog.
var ErrUnknownScript = errors.New("adventure: unknown script type")

// ScriptUnit is an independently timed behavior. Initialize runs once when
// the unit is loaded at world setup; Execute runs every frame in both game
// states. A unit keeps its own timer and touches the world only through the
// handle.
type ScriptUnit interface {
	Initialize()
	Execute(w WorldHandle)
}

// ScriptEnv is what units are built with: the shared clock and random
// source. It is not reachable from Execute's handle.
type ScriptEnv struct {
	Clock Clock
	Rand  *rand.Rand
}

// ScriptFactory builds a unit from its manifest parameters. decode fills a
// parameter struct from the manifest's params block; a missing block leaves
// the struct untouched.
type ScriptFactory func(env ScriptEnv, decode func(v any) error) (ScriptUnit, error)

// ScriptCatalog is the closed set of unit types manifests may name.
type ScriptCatalog map[string]ScriptFactory

// DefaultScriptCatalog returns the built-in units.
func DefaultScriptCatalog() ScriptCatalog {
	return ScriptCatalog{
		"random_bomb":   newRandomBomb,
		"random_pickup": newRandomPickup,
	}
}

// Register adds or replaces a unit type.
func (c ScriptCatalog) Register(typ string, f ScriptFactory) {
	c[typ] = f
}

// scriptManifest is the YAML shape of one unit file.
type scriptManifest struct {
	Name   string    `yaml:"name"`
	Type   string    `yaml:"type"`
	Params yaml.Node `yaml:"params"`
}

type loadedUnit struct {
	name string
	unit ScriptUnit
}

// ScriptHost drives the loaded units. Its only state is the list of units;
// it neither throttles nor retries them.
type ScriptHost struct {
	catalog ScriptCatalog
	env     ScriptEnv
	units   []loadedUnit
	log     *zap.Logger
}

// NewScriptHost creates a host that builds units from catalog.
func NewScriptHost(catalog ScriptCatalog, env ScriptEnv, log *zap.Logger) *ScriptHost {
	if catalog == nil {
		catalog = DefaultScriptCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ScriptHost{catalog: catalog, env: env, log: log}
}

// LoadAll replaces the loaded units with those declared by the *.yaml and
// *.yml manifests in dir, in file-name order, and initializes each one.
// A manifest that fails to parse or build is logged and skipped. A missing
// directory yields no units. It returns the number of units loaded.
func (h *ScriptHost) LoadAll(fsys fs.FS, dir string) int {
	h.units = h.units[:0]
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		h.log.Warn("script directory unavailable", zap.String("dir", dir), zap.Error(err))
		return 0
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		file := path.Join(dir, entry.Name())
		lu, err := h.load(fsys, file)
		if err != nil {
			h.log.Warn("skipping script unit", zap.String("file", file), zap.Error(err))
			continue
		}
		h.units = append(h.units, lu)
	}
	for _, lu := range h.units {
		lu.unit.Initialize()
	}
	h.log.Info("script units loaded", zap.Int("count", len(h.units)), zap.Strings("units", h.Names()))
	return len(h.units)
}

func (h *ScriptHost) load(fsys fs.FS, file string) (loadedUnit, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return loadedUnit{}, err
	}
	var m scriptManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return loadedUnit{}, fmt.Errorf("adventure: parse script manifest: %w", err)
	}
	factory, ok := h.catalog[m.Type]
	if !ok {
		return loadedUnit{}, fmt.Errorf("%w %q", ErrUnknownScript, m.Type)
	}
	decode := func(v any) error {
		if m.Params.Kind == 0 {
			return nil
		}
		return m.Params.Decode(v)
	}
	unit, err := factory(h.env, decode)
	if err != nil {
		return loadedUnit{}, fmt.Errorf("adventure: build %s unit: %w", m.Type, err)
	}
	name := m.Name
	if name == "" {
		name = strings.TrimSuffix(path.Base(file), path.Ext(file))
	}
	return loadedUnit{name: name, unit: unit}, nil
}

// Add appends an already built unit and initializes it.
func (h *ScriptHost) Add(name string, u ScriptUnit) {
	u.Initialize()
	h.units = append(h.units, loadedUnit{name: name, unit: u})
}

// ExecuteAll calls every unit's Execute exactly once, in load order.
func (h *ScriptHost) ExecuteAll(w WorldHandle) {
	for _, lu := range h.units {
		lu.unit.Execute(w)
	}
}

// Names returns the loaded unit names in load order.
func (h *ScriptHost) Names() []string {
	names := make([]string, len(h.units))
	for i, lu := range h.units {
		names[i] = lu.name
	}
	return names
}

// Len returns the number of loaded units.
func (h *ScriptHost) Len() int { return len(h.units) }

// Package fixture loads a region-inference scenario -- a CFG shape, a
// universal-region catalogue, liveness facts, and outlives constraints --
// from YAML, the same Config/LoadConfig/Validate shape
// pkg/dungeon/config.go uses for its dungeon generation parameters.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nllgo/regioninfer/diagnostic"
	"github.com/nllgo/regioninfer/infer"
	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
	"github.com/nllgo/regioninfer/universalregions"
)

// BlockSpec describes one basic block: its statement count and successor
// block indices.
type BlockSpec struct {
	NumStmts   int   `yaml:"num_stmts"`
	Successors []int `yaml:"successors"`
}

// UniversalRegionSpec declares one universal region and the other
// universal regions (by name) it is known to outlive.
type UniversalRegionSpec struct {
	Name     string   `yaml:"name"`
	Local    bool     `yaml:"local"`
	Outlives []string `yaml:"outlives"`
}

// LivePointSpec records that a region variable must be live at a point.
type LivePointSpec struct {
	Region string `yaml:"region"`
	Block  int    `yaml:"block"`
	Stmt   int    `yaml:"stmt"`
}

// OutlivesSpec records one pre-solve outlives constraint.
type OutlivesSpec struct {
	Sup   string `yaml:"sup"`
	Sub   string `yaml:"sub"`
	Block int    `yaml:"block"`
	Stmt  int    `yaml:"stmt"`
	Span  string `yaml:"span"`
}

// Program is a complete, self-contained region-inference scenario.
type Program struct {
	NumVars          int                   `yaml:"num_vars"`
	Blocks           []BlockSpec           `yaml:"blocks"`
	UniversalRegions []UniversalRegionSpec `yaml:"universal_regions"`
	FnBody           string                `yaml:"fn_body"`
	LivePoints       []LivePointSpec       `yaml:"live_points"`
	Outlives         []OutlivesSpec        `yaml:"outlives"`
	IsClosure        bool                  `yaml:"is_closure"`
	NumExternalVids  int                   `yaml:"num_external_vids"`
}

// LoadConfig reads and validates a Program from path.
func LoadConfig(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %s: %w", path, err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates a Program from raw YAML.
func LoadConfigFromBytes(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("fixture: parsing YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("fixture: invalid program: %w", err)
	}
	return &p, nil
}

// ToYAML serializes the program back to YAML.
func (p *Program) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("fixture: marshaling program: %w", err)
	}
	return data, nil
}

// Validate checks structural well-formedness: block ranges, unique region
// names, and a declared fn-body region.
func (p *Program) Validate() error {
	if len(p.Blocks) == 0 {
		return fmt.Errorf("program has no blocks")
	}
	for i, b := range p.Blocks {
		if b.NumStmts < 1 {
			return fmt.Errorf("block %d: num_stmts must be >= 1", i)
		}
		for _, s := range b.Successors {
			if s < 0 || s >= len(p.Blocks) {
				return fmt.Errorf("block %d: successor %d out of range", i, s)
			}
		}
	}

	seen := make(map[string]bool, len(p.UniversalRegions))
	for _, r := range p.UniversalRegions {
		if r.Name == "" {
			return fmt.Errorf("universal region with an empty name")
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate universal region name %q", r.Name)
		}
		seen[r.Name] = true
	}
	for _, r := range p.UniversalRegions {
		for _, o := range r.Outlives {
			if !seen[o] {
				return fmt.Errorf("universal region %q declares outlives of unknown region %q", r.Name, o)
			}
		}
	}
	if p.FnBody == "" {
		return fmt.Errorf("fn_body must name a universal region")
	}
	if !seen[p.FnBody] {
		return fmt.Errorf("fn_body %q is not among the declared universal regions", p.FnBody)
	}
	if p.NumVars < len(p.UniversalRegions) {
		return fmt.Errorf("num_vars (%d) smaller than universal region count (%d)", p.NumVars, len(p.UniversalRegions))
	}
	return nil
}

// Build assembles the CFG, universal-region catalogue, and a fresh,
// unsolved infer.Context for the program, along with a name resolver for
// its universal regions.
func (p *Program) Build() (*infer.Context, universalregions.Regions, func(name string) (region.Vid, bool), error) {
	mb := mir.NewBuilder()
	for _, b := range p.Blocks {
		mb.AddBlock(b.NumStmts)
	}
	for i, b := range p.Blocks {
		for _, s := range b.Successors {
			mb.AddEdge(i, s)
		}
	}
	body, err := mb.Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fixture: building CFG: %w", err)
	}

	ub := universalregions.NewBuilder()
	vids := make(map[string]region.Vid, len(p.UniversalRegions))
	for _, r := range p.UniversalRegions {
		vids[r.Name] = ub.AddRegion(r.Name, r.Local)
	}
	for _, r := range p.UniversalRegions {
		for _, o := range r.Outlives {
			ub.AddOutlives(vids[r.Name], vids[o])
		}
	}
	ub.SetFnBody(vids[p.FnBody])
	universal, err := ub.Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fixture: building universal regions: %w", err)
	}

	elements := region.NewElements(body, universal.Len())
	ctx, err := infer.New(elements, universal, p.NumVars)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fixture: constructing inference context: %w", err)
	}

	resolve := func(name string) (region.Vid, bool) {
		if v, ok := vids[name]; ok {
			return v, true
		}
		// Existential region variables have no user-visible name; fixtures
		// address them as "r<index>", index counted from 0 across the
		// full variable space (so existential indices start at
		// universal.Len()).
		var idx int
		if _, err := fmt.Sscanf(name, "r%d", &idx); err == nil && idx >= universal.Len() && idx < p.NumVars {
			return region.Vid(idx), true
		}
		return 0, false
	}

	for _, lp := range p.LivePoints {
		v, ok := resolve(lp.Region)
		if !ok {
			return nil, nil, nil, fmt.Errorf("fixture: live point names unknown region %q", lp.Region)
		}
		ctx.AddLivePoint(v, mir.Location{Block: lp.Block, Stmt: lp.Stmt})
	}

	for _, oc := range p.Outlives {
		sup, ok := resolve(oc.Sup)
		if !ok {
			return nil, nil, nil, fmt.Errorf("fixture: outlives names unknown sup region %q", oc.Sup)
		}
		sub, ok := resolve(oc.Sub)
		if !ok {
			return nil, nil, nil, fmt.Errorf("fixture: outlives names unknown sub region %q", oc.Sub)
		}
		ctx.AddOutlives(diagnostic.Span{Label: oc.Span}, sup, sub, mir.Location{Block: oc.Block, Stmt: oc.Stmt})
	}

	return ctx, universal, resolve, nil
}

// Package process models manufacturing process definitions: each
// process declares the DFM rules it enforces and, per material, the
// numeric parameters those rules compare against. Definitions are
// loaded from YAML files; the analysis engine only consumes the parsed
// values and never touches their storage format again.
package process

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Material is one material option within a process.
type Material struct {
	Name       string             `yaml:"name"`
	Parameters map[string]float64 `yaml:"parameters"`
}

// Process is one manufacturing process definition.
type Process struct {
	ID        string              `yaml:"id"`
	Name      string              `yaml:"name"`
	Category  string              `yaml:"category"`
	Rules     []string            `yaml:"rules"`
	Materials map[string]Material `yaml:"materials"`
}

// Material returns the named material, if defined.
func (p *Process) Material(name string) (Material, bool) {
	m, ok := p.Materials[name]
	return m, ok
}

// Parse decodes a single process definition.
func Parse(data []byte) (*Process, error) {
	var p Process
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("process: parse: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("process: definition has no id")
	}
	if len(p.Rules) == 0 {
		return nil, fmt.Errorf("process: %s declares no rules", p.ID)
	}
	return &p, nil
}

// LoadFile reads one process definition from a YAML file.
func LoadFile(path string) (*Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("process: %s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// LoadDir reads every .yaml/.yml file in dir as a process definition.
func LoadDir(dir string) ([]*Process, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	var procs []*Process
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		p, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		procs = append(procs, p)
	}
	return procs, nil
}

// Registry holds the known process definitions. It is constructed
// explicitly at startup; there is no global instance.
type Registry struct {
	procs map[string]*Process
}

// NewRegistry builds a registry over the given processes.
func NewRegistry(procs ...*Process) *Registry {
	r := &Registry{procs: make(map[string]*Process, len(procs))}
	for _, p := range procs {
		r.procs[p.ID] = p
	}
	return r
}

// Add registers a process, replacing any previous definition of its ID.
func (r *Registry) Add(p *Process) {
	r.procs[p.ID] = p
}

// Get returns the process with the given ID.
func (r *Registry) Get(id string) (*Process, bool) {
	p, ok := r.procs[id]
	return p, ok
}

// Len returns the number of registered processes.
func (r *Registry) Len() int {
	return len(r.procs)
}

// Categories returns the sorted set of distinct category names.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range r.procs {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// ForCategory returns the processes in a category, sorted by name.
func (r *Registry) ForCategory(category string) []*Process {
	var procs []*Process
	for _, p := range r.procs {
		if p.Category == category {
			procs = append(procs, p)
		}
	}
	sort.Slice(procs, func(i, j int) bool { return procs[i].Name < procs[j].Name })
	return procs
}

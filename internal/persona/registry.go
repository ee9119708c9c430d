package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cadre-sh/cadre/internal/logger"
)

// Registry indexes persona definitions loaded from a directory. Reads are
// lock-free after load except during Reload, which swaps the whole index.
type Registry struct {
	mu       sync.RWMutex
	dir      string
	personas map[string]*Persona
	order    []string // ids in filename order, for deterministic iteration
}

// Load enumerates persona definition files in dir and parses each one
// independently. A malformed file is logged and skipped. A missing directory
// yields an empty registry and a warning, not an error.
func Load(dir string) *Registry {
	r := &Registry{
		dir:      dir,
		personas: make(map[string]*Persona),
	}
	r.loadAll()
	return r
}

func (r *Registry) loadAll() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		logger.Warn("persona directory %s not readable: %v - starting with zero personas", r.dir, err)
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(r.dir, name)
		p, err := ParseFile(path)
		if err != nil {
			logger.Warn("skipping persona file %s: %v", path, err)
			continue
		}
		if p.ID == "" {
			p.ID = strings.TrimSuffix(name, ".md")
		}
		if _, dup := r.personas[p.ID]; dup {
			logger.Warn("duplicate persona id %q in %s - keeping first definition", p.ID, path)
			continue
		}
		r.personas[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	logger.Debug("persona registry loaded %d personas from %s", len(r.personas), r.dir)
}

// ParseFile reads one persona definition: a YAML metadata header delimited by
// "---" lines, followed by a free-text instructional body.
func ParseFile(path string) (*Persona, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := string(content)
	if !strings.HasPrefix(text, "---") {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	parts := strings.SplitN(text[3:], "---", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unterminated frontmatter")
	}

	p := &Persona{}
	if err := yaml.Unmarshal([]byte(parts[0]), p); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	p.Body = strings.TrimSpace(parts[1])

	return p, nil
}

// Get returns a persona by id.
func (r *Registry) Get(id string) (*Persona, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.personas[id]
	return p, ok
}

// All returns every persona in filename order.
func (r *Registry) All() []*Persona {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.personas[id])
	}
	return out
}

// ByTeam groups personas by their team label. Personas without a team land
// under the empty key.
func (r *Registry) ByTeam() map[string][]*Persona {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make(map[string][]*Persona)
	for _, id := range r.order {
		p := r.personas[id]
		teams[p.Team] = append(teams[p.Team], p)
	}
	return teams
}

// Len returns the number of loaded personas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas)
}

// Reload clears the registry and reloads every file from disk. No
// incremental diffing: the index is rebuilt wholesale.
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.personas = make(map[string]*Persona)
	r.order = nil
	r.loadAll()
}

// Dir returns the directory the registry loads from.
func (r *Registry) Dir() string {
	return r.dir
}

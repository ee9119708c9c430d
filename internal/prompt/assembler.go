package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cadre-sh/cadre/internal/logger"
	"github.com/cadre-sh/cadre/internal/persona"
)

// toolCategories is the static list of external capability groups advertised
// in synthesized prompts. The actual tool catalog is supplied per request by
// the conversation loop; this text only primes the persona's voice.
var toolCategories = []string{
	"documentation lookup",
	"code analysis",
	"best-practice guidance",
	"dependency information",
	"team knowledge search",
}

// Assembler builds the system prompt for a persona. A pre-authored bootstrap
// instruction document wins over synthesis; either result is cached per
// persona id for the process lifetime.
type Assembler struct {
	bootstrapDir string

	mu    sync.Mutex
	cache map[string]string // lowercase persona id -> prompt
}

// NewAssembler creates an assembler reading bootstrap documents from dir.
func NewAssembler(bootstrapDir string) *Assembler {
	return &Assembler{
		bootstrapDir: bootstrapDir,
		cache:        make(map[string]string),
	}
}

// BuildSystemPrompt returns the system prompt for p. It never fails: any
// bootstrap read problem degrades to the synthesized fallback.
func (a *Assembler) BuildSystemPrompt(p *persona.Persona) string {
	key := strings.ToLower(p.ID)

	a.mu.Lock()
	if cached, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return cached
	}
	a.mu.Unlock()

	prompt := a.loadBootstrap(p.ID)
	if prompt == "" {
		prompt = Synthesize(p)
	}

	a.mu.Lock()
	// First writer wins; later invocations for the same persona read the
	// cached copy until an explicit Invalidate.
	if cached, ok := a.cache[key]; ok {
		prompt = cached
	} else {
		a.cache[key] = prompt
	}
	a.mu.Unlock()

	return prompt
}

// loadBootstrap finds a bootstrap document whose filename matches the persona
// id case-insensitively and returns its body, or "" when absent or unreadable.
func (a *Assembler) loadBootstrap(id string) string {
	entries, err := os.ReadDir(a.bootstrapDir)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		if !strings.EqualFold(strings.TrimSuffix(name, ".md"), id) {
			continue
		}

		path := filepath.Join(a.bootstrapDir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("bootstrap document %s unreadable: %v - synthesizing prompt", path, err)
			return ""
		}
		return stripFrontmatter(string(content))
	}
	return ""
}

// stripFrontmatter drops a leading YAML header if present; bootstrap bodies
// share the persona definition file format.
func stripFrontmatter(text string) string {
	if strings.HasPrefix(text, "---") {
		if parts := strings.SplitN(text[3:], "---", 2); len(parts) == 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(text)
}

// Invalidate clears the prompt cache. Called alongside a registry reload.
func (a *Assembler) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache = make(map[string]string)
}

// Synthesize builds a fallback prompt from the persona record alone. Pure
// function over the Persona value.
func Synthesize(p *persona.Persona) string {
	var b strings.Builder

	title := p.Title
	if title == "" {
		title = p.ID
	}
	fmt.Fprintf(&b, "You are %s", title)
	if p.Role != "" {
		fmt.Fprintf(&b, ", specializing in %s", p.Role)
	}
	b.WriteString(".\n")

	if p.Body != "" {
		b.WriteString("\n")
		b.WriteString(p.Body)
		b.WriteString("\n")
	}

	if len(p.Personality) > 0 || p.Style != "" {
		b.WriteString("\nVoice:\n")
		for _, trait := range p.Personality {
			fmt.Fprintf(&b, "- %s\n", trait)
		}
		if p.Style != "" {
			fmt.Fprintf(&b, "- Communication style: %s\n", p.Style)
		}
	}

	if len(p.Expertise.Primary) > 0 {
		fmt.Fprintf(&b, "\nPrimary expertise: %s\n", strings.Join(p.Expertise.Primary, ", "))
	}
	if len(p.Expertise.Secondary) > 0 {
		fmt.Fprintf(&b, "Secondary expertise: %s\n", strings.Join(p.Expertise.Secondary, ", "))
	}

	if len(p.WhenToUse) > 0 {
		b.WriteString("\nUsers come to you for:\n")
		for _, use := range p.WhenToUse {
			fmt.Fprintf(&b, "- %s\n", use)
		}
	}

	b.WriteString("\nYou can call external tools for: ")
	b.WriteString(strings.Join(toolCategories, ", "))
	b.WriteString(". Use them when the answer depends on facts you do not have.\n")

	return b.String()
}

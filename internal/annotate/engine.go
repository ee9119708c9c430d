package annotate

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/cadre-sh/cadre/internal/logger"
)

// Suggestion anchors a persona affordance to a line of a document. Line and
// Column are zero-based; the anchor is zero-width at the match start.
type Suggestion struct {
	Line      int
	Column    int
	PersonaID string
	Label     string
	Emoji     string
}

// compiledMapping pairs a mapping record with its executable pattern.
type compiledMapping struct {
	Mapping
	re *regexp.Regexp
}

// Source fetches a replacement mapping set, typically from the knowledge
// server.
type Source interface {
	FetchMappings(ctx context.Context) ([]Mapping, error)
}

// Engine scans documents against the current mapping set. The set is
// replaced wholesale by Refresh; scanning and refreshing may interleave.
type Engine struct {
	maxPerDocument int

	mu       sync.RWMutex
	mappings []compiledMapping
}

// NewEngine creates an engine with the given mapping set and per-document
// cap. Mappings that fail to compile are logged and dropped.
func NewEngine(mappings []Mapping, maxPerDocument int) *Engine {
	e := &Engine{maxPerDocument: maxPerDocument}
	e.mappings = compile(mappings)
	return e
}

func compile(mappings []Mapping) []compiledMapping {
	out := make([]compiledMapping, 0, len(mappings))
	for _, m := range mappings {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			logger.Warn("dropping annotation mapping %q: %v", m.Pattern, err)
			continue
		}
		out = append(out, compiledMapping{Mapping: m, re: re})
	}
	return out
}

// Refresh replaces the mapping set from source. Any failure leaves the
// current set in force; the caller never sees the error.
func (e *Engine) Refresh(ctx context.Context, source Source) {
	mappings, err := source.FetchMappings(ctx)
	if err != nil {
		logger.Warn("annotation mapping refresh failed, keeping current set: %v", err)
		return
	}
	if len(mappings) == 0 {
		logger.Warn("annotation mapping refresh returned no mappings, keeping current set")
		return
	}

	compiled := compile(mappings)
	e.mu.Lock()
	e.mappings = compiled
	e.mu.Unlock()
	logger.Debug("annotation mappings refreshed: %d entries", len(compiled))
}

// MappingCount returns the size of the current mapping set.
func (e *Engine) MappingCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.mappings)
}

// ProvideSuggestions scans document and returns at most one suggestion per
// line, first mapping wins, capped per document. Matches at or after a
// comment start on their line are suppressed. Results are ordered by line.
func (e *Engine) ProvideSuggestions(document string) []Suggestion {
	e.mu.RLock()
	mappings := e.mappings
	e.mu.RUnlock()

	lines := newLineIndex(document)
	taken := make(map[int]bool)
	var suggestions []Suggestion

	for _, m := range mappings {
		if len(suggestions) >= e.maxPerDocument {
			break
		}
		for _, loc := range m.re.FindAllStringIndex(document, -1) {
			line, col := lines.position(loc[0])
			if taken[line] {
				continue
			}
			if commentedAt(lines.text(document, line), col) {
				continue
			}

			taken[line] = true
			suggestions = append(suggestions, Suggestion{
				Line:      line,
				Column:    col,
				PersonaID: m.PersonaID,
				Label:     m.Label,
				Emoji:     m.Emoji,
			})
			if len(suggestions) >= e.maxPerDocument {
				break
			}
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Line < suggestions[j].Line
	})
	return suggestions
}

// commentedAt reports whether column col of line falls at or after the start
// of a line or block comment on that line.
func commentedAt(line string, col int) bool {
	earliest := -1
	for _, marker := range []string{"//", "#", "/*"} {
		if i := strings.Index(line, marker); i >= 0 && (earliest < 0 || i < earliest) {
			earliest = i
		}
	}
	return earliest >= 0 && col >= earliest
}

// lineIndex maps byte offsets to line positions.
type lineIndex struct {
	starts []int // byte offset of each line start
}

func newLineIndex(document string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(document); i++ {
		if document[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// position returns the zero-based line and column for a byte offset.
func (li *lineIndex) position(offset int) (line, col int) {
	line = sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	return line, offset - li.starts[line]
}

// text returns the content of one line without its trailing newline.
func (li *lineIndex) text(document string, line int) string {
	start := li.starts[line]
	end := len(document)
	if line+1 < len(li.starts) {
		end = li.starts[line+1] - 1
	}
	return document[start:end]
}

package handoff

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/cadre-sh/cadre/internal/logger"
	"github.com/cadre-sh/cadre/internal/persona"
)

// Confidence ranks how strongly a message points at another persona.
type Confidence int

const (
	Low Confidence = iota
	Medium
	High
)

func (c Confidence) String() string {
	switch c {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// Suggestion recommends switching from one persona to another. Ephemeral:
// computed per message, never stored.
type Suggestion struct {
	From       string
	To         string
	Reason     string
	Confidence Confidence
}

// scoring weights and thresholds
const (
	keywordWeight  = 1
	patternWeight  = 2
	handoffBonus   = 1
	highThreshold  = 4
	medThreshold   = 2
	maxSuggestions = 2
)

// Engine scores user messages against persona trigger tables. The trigger
// data lives in the persona records; the engine only compiles and caches
// their patterns.
type Engine struct {
	registry *persona.Registry

	mu       sync.Mutex
	compiled map[string]*regexp.Regexp // pattern source -> compiled (nil for invalid)
}

// NewEngine creates a handoff engine over a persona registry.
func NewEngine(registry *persona.Registry) *Engine {
	return &Engine{
		registry: registry,
		compiled: make(map[string]*regexp.Regexp),
	}
}

// Suggest returns at most two alternate personas for message, sorted by
// confidence rank (ties keep registry encounter order). The current persona
// is never suggested. Deterministic for identical input and trigger tables.
func (e *Engine) Suggest(currentID, message string) []Suggestion {
	current, _ := e.registry.Get(currentID)
	lowerMsg := strings.ToLower(message)

	var suggestions []Suggestion
	for _, candidate := range e.registry.All() {
		if candidate.ID == currentID {
			continue
		}

		score, matched := e.score(candidate, message, lowerMsg)
		if score == 0 {
			continue
		}

		adjusted := score
		if current != nil && isNaturalHandoff(current, candidate.ID) {
			adjusted += handoffBonus
		}

		suggestions = append(suggestions, Suggestion{
			From:       currentID,
			To:         candidate.ID,
			Reason:     reason(candidate, matched),
			Confidence: confidence(adjusted),
		})
	}

	// Rank by confidence, not raw score; stable to preserve encounter order.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// score computes the raw trigger score and returns the matched keywords in
// trigger-table order.
func (e *Engine) score(p *persona.Persona, message, lowerMsg string) (int, []string) {
	score := 0
	var matched []string

	for _, kw := range p.Triggers.Keywords {
		if strings.Contains(lowerMsg, strings.ToLower(kw)) {
			score += keywordWeight
			matched = append(matched, kw)
		}
	}

	for _, src := range p.Triggers.Patterns {
		re := e.compile(src)
		if re != nil && re.MatchString(message) {
			score += patternWeight
		}
	}

	return score, matched
}

// compile caches compiled patterns; an invalid pattern is logged once and
// then ignored.
func (e *Engine) compile(src string) *regexp.Regexp {
	e.mu.Lock()
	defer e.mu.Unlock()

	if re, ok := e.compiled[src]; ok {
		return re
	}
	re, err := regexp.Compile(src)
	if err != nil {
		logger.Warn("invalid handoff trigger pattern %q: %v", src, err)
		re = nil
	}
	e.compiled[src] = re
	return re
}

func isNaturalHandoff(current *persona.Persona, candidateID string) bool {
	for _, id := range current.Collaboration.NaturalHandoffs {
		if id == candidateID {
			return true
		}
	}
	return false
}

func confidence(adjusted int) Confidence {
	switch {
	case adjusted >= highThreshold:
		return High
	case adjusted >= medThreshold:
		return Medium
	default:
		return Low
	}
}

func reason(p *persona.Persona, matched []string) string {
	if len(matched) > 0 {
		if len(matched) > 2 {
			matched = matched[:2]
		}
		return fmt.Sprintf("mentioned %s", strings.Join(matched, ", "))
	}
	title := p.Title
	if title == "" {
		title = p.ID
	}
	return fmt.Sprintf("%s specializes in %s", title, p.Role)
}

package workflow

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	cadreerr "github.com/cadre-sh/cadre/internal/errors"
	"github.com/cadre-sh/cadre/internal/logger"
)

// Status is a workflow session's lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Session tracks one guided multi-phase task. Callers hold the session id as
// their handle; all mutation goes through the Manager. Invariant: while
// Status is active, CurrentPhaseIndex is a valid index into Phases; on
// completion the index freezes at the last phase.
type Session struct {
	ID                string
	WorkflowType      string
	PersonaID         string
	Context           string
	Phases            []Phase
	CurrentPhaseIndex int
	Status            Status
	PhaseResults      map[string]string
	StartedAt         time.Time
	UpdatedAt         time.Time
}

// CurrentPhase returns the phase the session is on (the last phase once
// completed).
func (s *Session) CurrentPhase() Phase {
	return s.Phases[s.CurrentPhaseIndex]
}

// Manager owns all workflow sessions in memory. At most one active session
// per persona context; starting another fails until the prior one is
// completed or abandoned. No ambient "current session" pointer: callers keep
// the handle the Start call returned.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	active   map[string]string // persona id -> active session id
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		active:   make(map[string]string),
	}
}

// Start creates a new active session at phase index 0. Fails with
// UnknownWorkflowType for a type missing from the catalog, and with
// SessionActive when the persona already has an active session.
func (m *Manager) Start(workflowType, personaID, contextNote string) (*Session, error) {
	phases, ok := Phases(workflowType)
	if !ok {
		return nil, cadreerr.UnknownWorkflowType(workflowType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if activeID, ok := m.active[personaID]; ok {
		if s, exists := m.sessions[activeID]; exists && s.Status == StatusActive {
			return nil, cadreerr.SessionActive(personaID)
		}
	}

	now := time.Now()
	s := &Session{
		ID:           uuid.NewString(),
		WorkflowType: workflowType,
		PersonaID:    personaID,
		Context:      contextNote,
		Phases:       phases,
		Status:       StatusActive,
		PhaseResults: make(map[string]string),
		StartedAt:    now,
		UpdatedAt:    now,
	}
	m.sessions[s.ID] = s
	m.active[personaID] = s.ID

	logger.Debug("workflow %s started: session %s for persona %s", workflowType, s.ID, personaID)
	return s.clone(), nil
}

// Advance records results for the current phase and moves to the next one,
// or completes the session on the last phase. Returns the session and whether
// it advanced: unknown ids yield (nil, false); completed or abandoned
// sessions are returned unchanged with false.
func (m *Manager) Advance(sessionID, results string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if s.Status != StatusActive {
		return s.clone(), false
	}

	if results != "" {
		s.PhaseResults[s.CurrentPhase().ID] = results
	}

	if s.CurrentPhaseIndex == len(s.Phases)-1 {
		s.Status = StatusCompleted
		delete(m.active, s.PersonaID)
		logger.Debug("workflow session %s completed", s.ID)
	} else {
		s.CurrentPhaseIndex++
	}
	s.UpdatedAt = time.Now()

	return s.clone(), true
}

// Abandon terminally abandons a session. Returns false for unknown ids or
// sessions already in a terminal state.
func (m *Manager) Abandon(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.Status != StatusActive {
		return false
	}

	s.Status = StatusAbandoned
	s.UpdatedAt = time.Now()
	if m.active[s.PersonaID] == s.ID {
		delete(m.active, s.PersonaID)
	}

	logger.Debug("workflow session %s abandoned", s.ID)
	return true
}

// Get returns a snapshot of a session. Unknown ids fail with SessionNotFound.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, cadreerr.SessionNotFound(sessionID)
	}
	return s.clone(), nil
}

// ActiveFor returns the active session for a persona, if any.
func (m *Manager) ActiveFor(personaID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.active[personaID]
	if !ok {
		return nil, false
	}
	s, exists := m.sessions[id]
	if !exists || s.Status != StatusActive {
		return nil, false
	}
	return s.clone(), true
}

// ProgressSummary formats a session's progress. Pure formatting, no side
// effects.
func (m *Manager) ProgressSummary(sessionID string) string {
	s, err := m.Get(sessionID)
	if err != nil {
		return "unknown workflow session"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", s.WorkflowType, s.Status)
	for i, phase := range s.Phases {
		marker := " "
		switch {
		case i < s.CurrentPhaseIndex || s.Status == StatusCompleted:
			marker = "x"
		case i == s.CurrentPhaseIndex && s.Status == StatusActive:
			marker = ">"
		}
		fmt.Fprintf(&b, "[%s] %d. %s", marker, i+1, phase.Name)
		if result, recorded := s.PhaseResults[phase.ID]; recorded {
			fmt.Fprintf(&b, " - %s", firstLine(result))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// PhaseChecklist formats the current phase's checklist. Pure formatting.
func (m *Manager) PhaseChecklist(sessionID string) string {
	s, err := m.Get(sessionID)
	if err != nil {
		return "unknown workflow session"
	}

	phase := s.CurrentPhase()
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", phase.Name, phase.Description)
	for _, item := range phase.Checklist {
		fmt.Fprintf(&b, "  - %s\n", item)
	}
	if phase.NextPhaseTrigger != "" {
		fmt.Fprintf(&b, "Advance when: %s\n", phase.NextPhaseTrigger)
	}
	return strings.TrimRight(b.String(), "\n")
}

// clone returns a deep copy so callers never share the manager's mutable
// state.
func (s *Session) clone() *Session {
	out := *s
	out.Phases = make([]Phase, len(s.Phases))
	copy(out.Phases, s.Phases)
	out.PhaseResults = make(map[string]string, len(s.PhaseResults))
	for k, v := range s.PhaseResults {
		out.PhaseResults[k] = v
	}
	return &out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

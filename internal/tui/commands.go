package tui

import (
	"fmt"
	"strings"

	"github.com/cadre-sh/cadre/internal/llm"
	"github.com/cadre-sh/cadre/internal/workflow"
)

const helpText = `Commands:
  /persona <id>        switch to another persona
  /personas            list available personas
  /handoff             switch to the last suggested persona
  /workflow start <type> [context]   start a guided workflow
  /workflow advance [notes]          record results and move to the next phase
  /workflow abandon                  abandon the active workflow
  /workflow status                   show progress and current checklist
  /workflow types                    list workflow types
  /clear               clear conversation history
  /quit                exit`

// handleCommand processes a slash command. Output goes through the stream
// channel like everything else.
func (a *App) handleCommand(input string) {
	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/help":
		a.info(helpText)

	case "/quit", "/exit":
		a.streamChan <- QuitMsg{}

	case "/clear":
		a.mu.Lock()
		a.history = nil
		a.mu.Unlock()
		a.info("history cleared")

	case "/personas":
		var b strings.Builder
		for team, members := range a.registry.ByTeam() {
			b.WriteString(team + ":\n")
			for _, p := range members {
				b.WriteString(fmt.Sprintf("  %s - %s\n", p.ID, p.Title))
			}
		}
		if b.Len() == 0 {
			b.WriteString("no personas loaded")
		}
		a.info(strings.TrimRight(b.String(), "\n"))

	case "/persona":
		if len(args) == 0 {
			a.errorOut("usage: /persona <id>")
			break
		}
		a.switchPersona(args[0])

	case "/handoff":
		a.mu.Lock()
		suggestions := a.lastSuggested
		personaID := a.personaID
		lastUser := ""
		for i := len(a.history) - 1; i >= 0; i-- {
			if a.history[i].Role == llm.RoleUser {
				lastUser = a.history[i].Content
				break
			}
		}
		a.mu.Unlock()

		if len(suggestions) == 0 && lastUser != "" {
			suggestions = a.handoffs.Suggest(personaID, lastUser)
		}
		if len(suggestions) == 0 {
			a.info("no handoff suggestion for the last message")
			break
		}
		a.switchPersona(suggestions[0].To)

	case "/workflow":
		a.handleWorkflow(args)

	default:
		a.errorOut("unknown command: " + cmd)
	}

	a.streamChan <- TurnDoneMsg{}
}

func (a *App) switchPersona(id string) {
	p, ok := a.registry.Get(id)
	if !ok {
		a.errorOut("unknown persona: " + id)
		return
	}

	a.mu.Lock()
	a.personaID = p.ID
	a.mu.Unlock()

	a.streamChan <- PersonaChangedMsg{ID: p.ID, Title: p.Title}
	greeting := p.Greeting
	if greeting == "" {
		greeting = "switched to " + p.Title
	}
	a.info(greeting)

	// a workflow may have been waiting on this persona
	if session, ok := a.workflows.ActiveFor(p.ID); ok {
		a.info("active workflow: " + a.workflows.ProgressSummary(session.ID))
	}
}

func (a *App) handleWorkflow(args []string) {
	if len(args) == 0 {
		a.errorOut("usage: /workflow start|advance|abandon|status|types")
		return
	}

	a.mu.Lock()
	personaID := a.personaID
	a.mu.Unlock()

	switch args[0] {
	case "types":
		a.info("workflow types: " + strings.Join(workflow.Types(), ", "))

	case "start":
		if len(args) < 2 {
			a.errorOut("usage: /workflow start <type> [context]")
			return
		}
		contextNote := strings.Join(args[2:], " ")
		session, err := a.workflows.Start(args[1], personaID, contextNote)
		if err != nil {
			a.errorOut(err.Error())
			return
		}
		a.mu.Lock()
		a.sessionID = session.ID
		a.mu.Unlock()
		a.info(a.workflows.PhaseChecklist(session.ID))

	case "advance":
		session, ok := a.activeSession(personaID)
		if !ok {
			a.errorOut("no active workflow for " + personaID)
			return
		}
		notes := strings.Join(args[1:], " ")
		advanced, ok := a.workflows.Advance(session.ID, notes)
		if !ok {
			a.errorOut("workflow could not advance")
			return
		}
		if advanced.Status == workflow.StatusCompleted {
			a.info("workflow completed\n" + a.workflows.ProgressSummary(session.ID))
			return
		}
		a.info(a.workflows.PhaseChecklist(session.ID))

	case "abandon":
		session, ok := a.activeSession(personaID)
		if !ok {
			a.errorOut("no active workflow for " + personaID)
			return
		}
		if a.workflows.Abandon(session.ID) {
			a.info("workflow abandoned")
		}

	case "status":
		session, ok := a.activeSession(personaID)
		if !ok {
			a.errorOut("no active workflow for " + personaID)
			return
		}
		a.info(a.workflows.ProgressSummary(session.ID) + "\n\n" + a.workflows.PhaseChecklist(session.ID))

	default:
		a.errorOut("unknown workflow subcommand: " + args[0])
	}
}

func (a *App) activeSession(personaID string) (*workflow.Session, bool) {
	if session, ok := a.workflows.ActiveFor(personaID); ok {
		return session, true
	}
	return nil, false
}

func (a *App) info(text string) {
	a.streamChan <- NewInfoMsg(text)
}

func (a *App) errorOut(text string) {
	a.streamChan <- NewErrorMsg(text)
}

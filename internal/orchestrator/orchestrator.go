package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/errors"
	"github.com/cadre-sh/cadre/internal/handoff"
	"github.com/cadre-sh/cadre/internal/llm"
	"github.com/cadre-sh/cadre/internal/logger"
	"github.com/cadre-sh/cadre/internal/persona"
	"github.com/cadre-sh/cadre/internal/prompt"
	"github.com/cadre-sh/cadre/internal/tools"
)

// Orchestrator runs the tool-augmented conversation loop for one persona
// turn at a time. It holds no per-conversation state; callers own their
// history.
type Orchestrator struct {
	provider  llm.Provider
	registry  *persona.Registry
	assembler *prompt.Assembler
	tools     *tools.Registry
	handoffs  *handoff.Engine
	cfg       *config.Config
}

func New(provider llm.Provider, registry *persona.Registry, assembler *prompt.Assembler, toolReg *tools.Registry, handoffs *handoff.Engine, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		provider:  provider,
		registry:  registry,
		assembler: assembler,
		tools:     toolReg,
		handoffs:  handoffs,
		cfg:       cfg,
	}
}

// Result is what a completed (or cancelled) turn produced
type Result struct {
	// Text is the full assistant text across all rounds, as streamed
	Text string
	// Rounds is how many provider rounds ran
	Rounds int
	// Suggestions are handoff candidates scored against the user message
	Suggestions []handoff.Suggestion
}

// Respond runs one user turn through the conversation loop. Text streams to
// the sink as it arrives; the returned Result carries the accumulated text
// and any handoff suggestions. History turns are replayed text-only, capped
// at the configured limit. Errors inside the loop are reported as a single
// notice on the sink and returned; they never propagate as panics.
func (o *Orchestrator) Respond(ctx context.Context, personaID string, history []llm.Message, userMessage string, sink Sink) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("conversation loop panic: %v", r)
			err = fmt.Errorf("internal error: %v", r)
			sink.Notice(fmt.Sprintf("something went wrong: %v", r))
			sink.StreamDone()
		}
	}()

	p, ok := o.registry.Get(personaID)
	if !ok {
		return nil, errors.PersonaNotFound(personaID)
	}

	systemPrompt := o.assembler.BuildSystemPrompt(p)

	transcript := make([]llm.Message, 0, o.cfg.Loop.HistoryTurns+2)
	transcript = append(transcript, trimHistory(history, o.cfg.Loop.HistoryTurns)...)
	transcript = append(transcript, llm.Message{Role: llm.RoleUser, Content: userMessage})

	models, err := o.provider.ListModels(ctx)
	if err != nil {
		sink.Notice("model provider unavailable, try again later")
		sink.StreamDone()
		return nil, errors.ProviderUnavailable(err)
	}
	model, err := llm.SelectModel(models, o.cfg.Models.Preferred)
	if err != nil {
		sink.Notice("no models available, service degraded")
		sink.StreamDone()
		return nil, err
	}
	logger.Debug("selected model %s for persona %s", model.ID, personaID)

	toolDefs := o.tools.Definitions()

	var fullText strings.Builder
	maxRounds := o.cfg.Loop.MaxRounds
	if maxRounds == 0 {
		maxRounds = 10
	}

	rounds := 0
	for round := 0; round < maxRounds; round++ {
		select {
		case <-ctx.Done():
			logger.Info("turn cancelled after %d rounds", rounds)
			sink.StreamDone()
			return o.finish(fullText.String(), rounds, personaID, userMessage), nil
		default:
		}

		rounds++
		req := llm.Request{
			Model:       model.ID,
			System:      systemPrompt,
			Messages:    transcript,
			Tools:       toolDefs,
			MaxTokens:   o.cfg.Models.MaxTokens,
			Temperature: o.cfg.Models.Temperature,
		}

		roundText, toolCalls, streamErr := o.consumeStream(o.provider.ChatStream(ctx, req), sink)
		fullText.WriteString(roundText)
		if streamErr != nil {
			if ctx.Err() != nil {
				sink.StreamDone()
				return o.finish(fullText.String(), rounds, personaID, userMessage), nil
			}
			sink.Notice("the model request failed: " + errors.GetUserMessage(streamErr))
			sink.StreamDone()
			return nil, errors.ModelRequestFailed(streamErr)
		}

		if len(toolCalls) == 0 {
			sink.StreamDone()
			return o.finish(fullText.String(), rounds, personaID, userMessage), nil
		}

		transcript = append(transcript, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   roundText,
			ToolCalls: toolCalls,
		})

		results := executeToolCalls(ctx, o.tools, toolCalls, sink)
		for _, r := range results {
			transcript = append(transcript, llm.Message{
				Role:       llm.RoleTool,
				Content:    r.Result,
				ToolCallID: r.ToolCallID,
			})
		}
	}

	maxErr := errors.MaxRoundsReached(maxRounds)
	logger.Warn("%s", maxErr.Error())
	sink.Notice(errors.GetUserMessage(maxErr))
	sink.StreamDone()
	return o.finish(fullText.String(), rounds, personaID, userMessage), nil
}

// consumeStream drains one provider round, forwarding text and buffering
// tool calls
func (o *Orchestrator) consumeStream(stream <-chan llm.StreamChunk, sink Sink) (string, []llm.ToolCall, error) {
	var text strings.Builder
	var toolCalls []llm.ToolCall

	for chunk := range stream {
		switch chunk.Type {
		case "text":
			sink.StreamText(chunk.Text)
			text.WriteString(chunk.Text)
		case "thinking":
			sink.StreamThinking(chunk.Text)
		case "tool_call":
			if chunk.ToolCall != nil {
				toolCalls = append(toolCalls, *chunk.ToolCall)
			}
		case "done":
			if chunk.Usage != nil {
				logger.Debug("round usage: in=%d out=%d", chunk.Usage.InputTokens, chunk.Usage.OutputTokens)
			}
		case "error":
			if chunk.Error != nil {
				return text.String(), toolCalls, chunk.Error
			}
		}
	}

	return text.String(), toolCalls, nil
}

func (o *Orchestrator) finish(text string, rounds int, personaID, userMessage string) *Result {
	return &Result{
		Text:        text,
		Rounds:      rounds,
		Suggestions: o.handoffs.Suggest(personaID, userMessage),
	}
}

// trimHistory keeps the last max text turns. Tool-call turns from earlier
// responses are not replayed.
func trimHistory(history []llm.Message, max int) []llm.Message {
	textOnly := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		if msg.Role == llm.RoleTool || len(msg.ToolCalls) > 0 {
			continue
		}
		textOnly = append(textOnly, msg)
	}
	if max > 0 && len(textOnly) > max {
		textOnly = textOnly[len(textOnly)-max:]
	}
	return textOnly
}

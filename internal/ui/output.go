package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/cadre-sh/cadre/internal/handoff"
	"github.com/cadre-sh/cadre/internal/persona"
	"github.com/cadre-sh/cadre/internal/ui/highlight"
)

// ANSI color codes
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Italic    = "\033[3m"
	Underline = "\033[4m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

// OutputHandler renders conversation output to the terminal. It implements
// orchestrator.Sink for one-shot mode.
type OutputHandler struct {
	useColors   bool
	highlighter *highlight.Highlighter
}

// NewOutputHandler detects terminal capabilities and builds a handler
func NewOutputHandler() *OutputHandler {
	useColors := true
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		useColors = false
	}
	if os.Getenv("NO_COLOR") != "" {
		useColors = false
	}

	return &OutputHandler{
		useColors:   useColors,
		highlighter: highlight.New(useColors),
	}
}

func (o *OutputHandler) color(color, text string) string {
	if !o.useColors {
		return text
	}
	return color + text + Reset
}

// IsTTY returns true when stdout is a terminal
func (o *OutputHandler) IsTTY() bool {
	return o.useColors
}

// StreamText writes a text fragment as it arrives
func (o *OutputHandler) StreamText(text string) {
	fmt.Print(text)
}

// StreamThinking writes a thinking fragment, dimmed
func (o *OutputHandler) StreamThinking(text string) {
	fmt.Print(o.color(Dim+Italic, text))
}

// Notice writes an inline notice line with a marker
func (o *OutputHandler) Notice(text string) {
	fmt.Println()
	fmt.Println(o.color(Yellow, "⚠ "+text))
}

// StreamDone ends the streamed block
func (o *OutputHandler) StreamDone() {
	fmt.Println()
}

// PersonaBanner prints who is answering
func (o *OutputHandler) PersonaBanner(p *persona.Persona) {
	label := p.Title
	if p.Emblem != "" {
		label = p.Emblem + " " + label
	}
	fmt.Println(o.color(Bold+Magenta, label) + o.color(Dim, " ("+p.ID+")"))
}

// Suggestions prints handoff candidates as a footer
func (o *OutputHandler) Suggestions(suggestions []handoff.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(o.color(Dim, "Consider handing off to:"))
	for _, s := range suggestions {
		fmt.Printf("  %s %s %s\n",
			o.color(Cyan, s.To),
			o.color(Dim, "- "+s.Reason),
			o.color(Dim, "["+s.Confidence.String()+"]"))
	}
}

// Highlight renders markdown code fences with terminal colors
func (o *OutputHandler) Highlight(text string) string {
	return o.highlighter.Markdown(text)
}

// Error writes an error line to stderr
func (o *OutputHandler) Error(err error) {
	fmt.Fprintln(os.Stderr, o.color(Red+Bold, "Error: ")+err.Error())
}

// Warning writes a warning line to stderr
func (o *OutputHandler) Warning(msg string) {
	fmt.Fprintln(os.Stderr, o.color(Yellow+Bold, "Warning: ")+msg)
}

// Success writes a success line
func (o *OutputHandler) Success(msg string) {
	fmt.Println(o.color(Green+Bold, "✓ ") + msg)
}

// Info writes an informational line
func (o *OutputHandler) Info(msg string) {
	fmt.Println(o.color(Blue, "ℹ ") + msg)
}

// Header writes a section header
func (o *OutputHandler) Header(text string) {
	fmt.Println()
	fmt.Println(o.color(Bold+Underline, text))
	fmt.Println()
}

// Separator writes a horizontal rule
func (o *OutputHandler) Separator() {
	fmt.Println(o.color(Dim, strings.Repeat("─", 40)))
}

// ModelInfo shows which model is serving the conversation
func (o *OutputHandler) ModelInfo(model string) {
	fmt.Println(o.color(Dim, "Using model: ") + o.color(Cyan, model))
}

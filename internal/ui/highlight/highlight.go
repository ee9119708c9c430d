package highlight

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders code with terminal colors. Disabled it passes text
// through untouched.
type Highlighter struct {
	enabled   bool
	formatter chroma.Formatter
	style     *chroma.Style
}

func New(enabled bool) *Highlighter {
	return &Highlighter{
		enabled:   enabled,
		formatter: formatters.Get("terminal256"),
		style:     styles.Get("monokai"),
	}
}

// Code highlights a snippet in the given language. Unknown languages fall
// back to a plain lexer; any tokenizer or formatter error returns the input
// unchanged.
func (h *Highlighter) Code(code, language string) string {
	if !h.enabled {
		return code
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return code
	}
	return buf.String()
}

var fencedBlock = regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```")

// Markdown highlights fenced code blocks inside markdown text, replacing the
// fences with the colored code.
func (h *Highlighter) Markdown(text string) string {
	if !h.enabled {
		return text
	}

	return fencedBlock.ReplaceAllStringFunc(text, func(match string) string {
		parts := fencedBlock.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}
		code := strings.TrimSuffix(parts[2], "\n")
		return h.Code(code, parts[1])
	})
}

package llm

import (
	"strings"

	"github.com/cadre-sh/cadre/internal/errors"
)

// SelectModel picks the best available model given an ordered family
// preference list. Families match on id prefix, so "claude-opus" covers every
// dated opus release. If no preference matches, the first available model
// wins; an empty list is an error.
func SelectModel(models []ModelInfo, preferred []string) (ModelInfo, error) {
	if len(models) == 0 {
		return ModelInfo{}, errors.NoModelsAvailable()
	}

	for _, family := range preferred {
		for _, m := range models {
			if m.Family == family || strings.HasPrefix(m.ID, family) {
				return m, nil
			}
		}
	}

	return models[0], nil
}

package annotate

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Mapping binds a regex pattern to a persona and the label shown on matching
// lines.
type Mapping struct {
	Pattern   string `yaml:"pattern" json:"pattern"`
	PersonaID string `yaml:"persona" json:"persona"`
	Label     string `yaml:"label" json:"label"`
	Emoji     string `yaml:"emoji,omitempty" json:"emoji,omitempty"`
}

// DefaultMappings is the built-in table, in force until replaced wholesale by
// a local override file or a knowledge server fetch.
func DefaultMappings() []Mapping {
	return []Mapping{
		{Pattern: `(?i)\bTODO\b|\bFIXME\b`, PersonaID: "generalist", Label: "Ask about this TODO", Emoji: "📝"},
		{Pattern: `(?i)\bpassword\b|\bsecret\b|\bapi[_-]?key\b`, PersonaID: "security", Label: "Security review", Emoji: "🔒"},
		{Pattern: `\bexec\.Command\b|\beval\(`, PersonaID: "security", Label: "Audit external execution", Emoji: "🔒"},
		{Pattern: `(?i)\bO\(n\^?2\)|nested loop`, PersonaID: "performance", Label: "Discuss complexity", Emoji: "⚡"},
		{Pattern: `\bsync\.Mutex\b|\bsync\.RWMutex\b`, PersonaID: "performance", Label: "Review locking", Emoji: "⚡"},
		{Pattern: `(?i)\bSELECT\b.+\bFROM\b`, PersonaID: "database", Label: "Review query", Emoji: "🗄"},
		{Pattern: `(?i)\bdeprecated\b`, PersonaID: "architect", Label: "Plan migration", Emoji: "🏗"},
	}
}

// mappingFile is the shape of a local override file and of the knowledge
// server's response body.
type mappingFile struct {
	Mappings []Mapping `yaml:"mappings" json:"mappings"`
}

// LoadMappingsFile reads a local mapping override file. The file replaces the
// defaults wholesale, matching the remote refresh semantics.
func LoadMappingsFile(path string) ([]Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Mappings, nil
}

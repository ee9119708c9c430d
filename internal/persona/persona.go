package persona

// Expertise lists a persona's primary and secondary specialties
type Expertise struct {
	Primary   []string `yaml:"primary"`
	Secondary []string `yaml:"secondary"`
}

// Collaboration describes how a persona works with the rest of the cadre
type Collaboration struct {
	// NaturalHandoffs lists persona ids this persona commonly hands off to,
	// in preference order. Candidates on this list get a scoring bonus in
	// handoff suggestions.
	NaturalHandoffs []string `yaml:"natural_handoffs"`
	// TeamConsultations lists persona ids worth consulting without a full
	// handoff.
	TeamConsultations []string `yaml:"team_consultations"`
}

// Triggers holds the signals that indicate a message belongs to a persona.
// Keywords match case-insensitively as substrings; Patterns are regular
// expressions run against the raw message.
type Triggers struct {
	Keywords []string `yaml:"keywords"`
	Patterns []string `yaml:"patterns"`
}

// Persona is one domain-expert profile. Immutable once loaded; the registry
// replaces personas wholesale on reload.
type Persona struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Emblem      string   `yaml:"emblem"`
	Team        string   `yaml:"team"`
	Role        string   `yaml:"role"`
	Personality []string `yaml:"personality"`
	Style       string   `yaml:"communication_style"`
	Greeting    string   `yaml:"greeting"`

	Expertise     Expertise     `yaml:"expertise"`
	WhenToUse     []string      `yaml:"when_to_use"`
	Collaboration Collaboration `yaml:"collaboration"`
	Triggers      Triggers      `yaml:"triggers"`

	// Body is the free-text instructional content after the frontmatter,
	// used as the persona's system prompt material.
	Body string `yaml:"-"`
}

package qa

// GlossaryTerm is one approved or forbidden source/target pair.
type GlossaryTerm struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
	// Forbidden marks Target as a rendering that must never be used.
	Forbidden bool `yaml:"forbidden,omitempty" json:"forbidden,omitempty"`
}

// Glossary is a named term list.
type Glossary struct {
	Name  string         `yaml:"name" json:"name"`
	Terms []GlossaryTerm `yaml:"terms" json:"terms"`
}

// ActiveTerms returns the terms of glossaries selected by names.
// An empty selection activates every glossary.
func ActiveTerms(glossaries []Glossary, names []string) []GlossaryTerm {
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}
	var out []GlossaryTerm
	for _, g := range glossaries {
		if len(names) > 0 && !selected[g.Name] {
			continue
		}
		out = append(out, g.Terms...)
	}
	return out
}

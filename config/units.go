package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/qakit/qa"
)

// unitsDoc is the units file: a mapping with a "units" list.
type unitsDoc struct {
	SourceLang string     `yaml:"source_lang,omitempty"`
	TargetLang string     `yaml:"target_lang,omitempty"`
	Units      []*qa.Unit `yaml:"units"`
}

// LoadUnits reads a units file. Units without an ID get a fresh one and
// units without languages inherit the file-level ones. Issues already
// present in the file are kept.
func LoadUnits(path string) ([]*qa.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	units, err := ParseUnits(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return units, nil
}

// ParseUnits decodes a units document. A bare list of units is accepted too.
func ParseUnits(data []byte) ([]*qa.Unit, error) {
	var doc unitsDoc
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("-")) {
		if err := yaml.Unmarshal(data, &doc.Units); err != nil {
			return nil, fmt.Errorf("parsing units: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing units: %w", err)
	}

	for i, u := range doc.Units {
		if u == nil {
			return nil, fmt.Errorf("unit #%d is empty", i+1)
		}
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		if u.SourceLang == "" {
			u.SourceLang = doc.SourceLang
		}
		if u.TargetLang == "" {
			u.TargetLang = doc.TargetLang
		}
	}
	return doc.Units, nil
}

// glossaryDoc is a glossary file: either {terms: [...]} or a bare list.
type glossaryDoc struct {
	Terms []qa.GlossaryTerm `yaml:"terms"`
}

// LoadGlossaryFile reads the terms of a glossary file.
func LoadGlossaryFile(path string) ([]qa.GlossaryTerm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc glossaryDoc
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("-")) {
		err = yaml.Unmarshal(data, &doc.Terms)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc.Terms, nil
}

// Package config loads the .qakit.yaml project file.
//
// The file names the language pair, the preset tables to apply, glossaries,
// the units file and a settings override tree. Settings are resolved in
// three passes: built-in defaults, locale presets, then the overrides, so
// anything written under "settings" wins over the presets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/qakit/baseline"
	"github.com/minios-linux/qakit/preset"
	"github.com/minios-linux/qakit/qa"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .qakit.yaml structure.
type File struct {
	// SourceLang is the source language code (default "en").
	SourceLang string `yaml:"source_lang,omitempty"`
	// TargetLang is the target language code. Required.
	TargetLang string `yaml:"target_lang"`
	// Presets lists the preset tables to apply (default: all of them).
	Presets []string `yaml:"presets,omitempty"`
	// Units is the units file relative to the config file.
	Units string `yaml:"units,omitempty"`
	// Baseline is the suppression baseline file (default "qakit.baseline").
	Baseline string `yaml:"baseline,omitempty"`
	// Glossaries are inline or file-backed term lists.
	Glossaries []GlossaryRef `yaml:"glossaries,omitempty"`
	// Settings is decoded on top of defaults and presets.
	Settings yaml.Node `yaml:"settings,omitempty"`

	// dir is the directory the file was loaded from.
	dir string
}

// GlossaryRef declares one glossary, either inline or in its own file.
type GlossaryRef struct {
	Name  string            `yaml:"name"`
	File  string            `yaml:"file,omitempty"`
	Terms []qa.GlossaryTerm `yaml:"terms,omitempty"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".qakit.yaml"

// DefaultBaseline is the baseline file used when none is configured.
const DefaultBaseline = baseline.FileName

// ErrNoLanguages is returned when the config does not name a target language.
var ErrNoLanguages = errors.New("no target language configured")

// Load loads and validates .qakit.yaml from the given directory.
// Returns nil if no .qakit.yaml exists.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.dir = rootDir
	return f, nil
}

// Parse decodes and validates a config document.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	// Defaults
	if f.SourceLang == "" {
		f.SourceLang = "en"
	}
	if len(f.Presets) == 0 {
		f.Presets = preset.Tables()
	}
	if f.Baseline == "" {
		f.Baseline = DefaultBaseline
	}

	if strings.TrimSpace(f.TargetLang) == "" {
		return nil, ErrNoLanguages
	}
	for _, p := range f.Presets {
		if !slices.Contains(preset.Tables(), p) {
			return nil, fmt.Errorf("unknown preset %q (valid: %s)", p, strings.Join(preset.Tables(), ", "))
		}
	}
	for i, g := range f.Glossaries {
		if g.Name == "" {
			return nil, fmt.Errorf("glossary #%d has no name", i+1)
		}
		if g.File != "" && len(g.Terms) > 0 {
			return nil, fmt.Errorf("glossary %q has both a file and inline terms", g.Name)
		}
	}
	return &f, nil
}

// Path resolves a path from the config relative to its directory.
func (f *File) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.dir, p)
}

// ResolveSettings builds the effective settings: defaults, then presets for
// the configured languages, then the override tree.
func (f *File) ResolveSettings() (*qa.Settings, error) {
	s := qa.DefaultSettings()
	s.SourceLang = f.SourceLang
	s.TargetLang = f.TargetLang
	preset.Apply(&s, f.Presets)

	if !f.Settings.IsZero() {
		// re-encode so unknown keys are rejected like at the top level
		raw, err := yaml.Marshal(&f.Settings)
		if err != nil {
			return nil, fmt.Errorf("encoding settings overrides: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding settings overrides: %w", err)
		}
		// languages are owned by the top level; presets were resolved for them
		s.SourceLang = f.SourceLang
		s.TargetLang = f.TargetLang
	}
	return &s, nil
}

// LoadGlossaries returns every declared glossary, reading file-backed ones.
func (f *File) LoadGlossaries() ([]qa.Glossary, error) {
	out := make([]qa.Glossary, 0, len(f.Glossaries))
	for _, ref := range f.Glossaries {
		g := qa.Glossary{Name: ref.Name, Terms: ref.Terms}
		if ref.File != "" {
			terms, err := LoadGlossaryFile(f.Path(ref.File))
			if err != nil {
				return nil, fmt.Errorf("glossary %q: %w", ref.Name, err)
			}
			g.Terms = terms
		}
		out = append(out, g)
	}
	return out, nil
}

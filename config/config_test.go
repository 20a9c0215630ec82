package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/minios-linux/qakit/preset"
	"github.com/minios-linux/qakit/qa"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaultsAndValidation(t *testing.T) {
	t.Run("missing file returns nil", func(t *testing.T) {
		f, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if f != nil {
			t.Fatalf("Load expected nil, got %#v", f)
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, FileName, "target_lang: fr\n")

		f, err := Load(dir)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if f.SourceLang != "en" {
			t.Fatalf("SourceLang = %q, want en", f.SourceLang)
		}
		if !reflect.DeepEqual(f.Presets, preset.Tables()) {
			t.Fatalf("Presets = %v, want %v", f.Presets, preset.Tables())
		}
		if f.Baseline != DefaultBaseline {
			t.Fatalf("Baseline = %q, want %q", f.Baseline, DefaultBaseline)
		}
	})

	cases := []struct {
		name string
		yaml string
		want string
	}{
		{name: "target language required", yaml: "source_lang: en\n", want: "no target language"},
		{name: "unknown preset", yaml: "target_lang: fr\npresets: [colors]\n", want: `unknown preset "colors"`},
		{name: "unknown key", yaml: "target_lang: fr\nlanguages: [ru]\n", want: "languages"},
		{name: "unnamed glossary", yaml: "target_lang: fr\nglossaries:\n  - file: g.yaml\n", want: "has no name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tc.yaml)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err, tc.want)
			}
			if !strings.Contains(err.Error(), FileName) {
				t.Fatalf("error %q does not name the file", err)
			}
		})
	}

	t.Run("sentinel", func(t *testing.T) {
		if _, err := Parse([]byte("")); !errors.Is(err, ErrNoLanguages) {
			t.Fatalf("Parse(empty) error = %v, want ErrNoLanguages", err)
		}
	})
}

func TestResolveSettingsOverridesWinOverPresets(t *testing.T) {
	f, err := Parse([]byte(`
target_lang: fr
settings:
  numbers:
    spelled_out: true
    target:
      decimal: "."
  misc:
    urls: false
`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	s, err := f.ResolveSettings()
	if err != nil {
		t.Fatalf("ResolveSettings error: %v", err)
	}

	if s.TargetLang != "fr" {
		t.Fatalf("TargetLang = %q, want fr", s.TargetLang)
	}
	if s.Numbers.Target.Decimal != "." {
		t.Fatalf("Target.Decimal = %q, want override %q", s.Numbers.Target.Decimal, ".")
	}
	if s.Numbers.Target.Thousands != "\u202f" {
		t.Fatalf("Target.Thousands = %q, want preset value kept", s.Numbers.Target.Thousands)
	}
	if !s.Numbers.SpelledOut || !s.Numbers.Enabled {
		t.Fatalf("Numbers = %+v, want spelled_out on and defaults kept", s.Numbers)
	}
	if s.Misc.URLs || !s.Misc.RepeatedWords {
		t.Fatalf("Misc = %+v, want only urls disabled", s.Misc)
	}
	if s.Punctuation.SpacingRules.NBSPBefore == "" {
		t.Fatal("punctuation preset was not applied")
	}
}

func TestResolveSettingsSelectedPresets(t *testing.T) {
	f, err := Parse([]byte("target_lang: fr\npresets: [numbers]\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	s, err := f.ResolveSettings()
	if err != nil {
		t.Fatalf("ResolveSettings error: %v", err)
	}
	if s.Numbers.Target.Decimal != "," {
		t.Fatalf("Target.Decimal = %q, want the fr preset", s.Numbers.Target.Decimal)
	}
	if len(s.Quotes.TargetPairs) != 0 {
		t.Fatalf("TargetPairs = %v, want quotes preset skipped", s.Quotes.TargetPairs)
	}
}

func TestResolveSettingsRejectsUnknownOverride(t *testing.T) {
	f, err := Parse([]byte("target_lang: fr\nsettings:\n  numbres:\n    enabled: false\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if _, err := f.ResolveSettings(); err == nil || !strings.Contains(err.Error(), "numbres") {
		t.Fatalf("ResolveSettings error = %v, want unknown key error", err)
	}
}

func TestLoadGlossaries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ui.yaml", "- source: file\n  target: fichier\n- source: folder\n  target: dossier\n")
	writeFile(t, dir, "docs.yaml", "terms:\n  - source: click\n    target: cliquer\n")
	writeFile(t, dir, FileName, `
target_lang: fr
glossaries:
  - name: ui
    file: ui.yaml
  - name: docs
    file: docs.yaml
  - name: inline
    terms:
      - source: bug
        target: beugue
        forbidden: true
`)

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	gs, err := f.LoadGlossaries()
	if err != nil {
		t.Fatalf("LoadGlossaries error: %v", err)
	}
	if len(gs) != 3 {
		t.Fatalf("got %d glossaries, want 3", len(gs))
	}
	if len(gs[0].Terms) != 2 || gs[0].Terms[1].Target != "dossier" {
		t.Fatalf("ui terms = %+v", gs[0].Terms)
	}
	if len(gs[1].Terms) != 1 || gs[1].Terms[0].Source != "click" {
		t.Fatalf("docs terms = %+v", gs[1].Terms)
	}
	if !gs[2].Terms[0].Forbidden {
		t.Fatalf("inline terms = %+v, want forbidden flag", gs[2].Terms)
	}

	t.Run("missing file", func(t *testing.T) {
		f := &File{dir: dir, Glossaries: []GlossaryRef{{Name: "gone", File: "gone.yaml"}}}
		if _, err := f.LoadGlossaries(); err == nil || !strings.Contains(err.Error(), `"gone"`) {
			t.Fatalf("LoadGlossaries error = %v, want it to name the glossary", err)
		}
	})
}

func TestParseUnits(t *testing.T) {
	units, err := ParseUnits([]byte(`
source_lang: en
target_lang: fr
units:
  - id: u1
    source: {text: "Click {1}here{/1}"}
    target: {text: "Cliquez {1}ici{/1}"}
  - source: {text: "Save"}
    target: {text: ""}
    status: empty
    target_lang: fr-CA
`))
	if err != nil {
		t.Fatalf("ParseUnits error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2", len(units))
	}
	if units[0].ID != "u1" || units[0].Target.Text != "Cliquez {1}ici{/1}" {
		t.Fatalf("unit 0 = %+v", units[0])
	}
	if units[1].ID == "" {
		t.Fatal("unit without id did not get one")
	}
	if units[1].Status != qa.StatusEmpty {
		t.Fatalf("Status = %q, want empty", units[1].Status)
	}
	if units[0].TargetLang != "fr" || units[1].TargetLang != "fr-CA" {
		t.Fatalf("target langs = %q, %q", units[0].TargetLang, units[1].TargetLang)
	}

	t.Run("bare list", func(t *testing.T) {
		units, err := ParseUnits([]byte("- source: {text: a}\n  target: {text: b}\n"))
		if err != nil || len(units) != 1 || units[0].Target.Text != "b" {
			t.Fatalf("ParseUnits(list) = %+v, %v", units, err)
		}
	})
}

func TestLoadUnitsNamesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "units.yaml", "units: [\n")
	_, err := LoadUnits(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("LoadUnits error = %v, want it to name %s", err, path)
	}
}

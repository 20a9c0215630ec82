// Package baseline implements qakit.baseline, a file of MD5 fingerprints of
// issues that were reviewed and accepted. Later runs mark matching issues
// as suppressed instead of reporting them again, so a project can adopt
// qakit without fixing every existing finding first.
//
// A fingerprint covers the issue code and the unit texts. Editing either
// side of a unit brings its issues back.
package baseline

import (
	"crypto/md5"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/qakit/qa"
)

// FileName is the default baseline file name.
const FileName = "qakit.baseline"

// Version is the baseline file format version.
const Version = 1

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Baseline represents the qakit.baseline file structure.
type Baseline struct {
	Version      int                          `yaml:"version"`
	Fingerprints map[string]map[string]string `yaml:"fingerprints"` // language -> fingerprint -> code

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a baseline file. Returns an empty baseline if the file doesn't
// exist.
func Load(path string) (*Baseline, error) {
	b := &Baseline{
		Version:      Version,
		Fingerprints: make(map[string]map[string]string),
		path:         path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if b.Version > Version {
		return nil, fmt.Errorf("%s: unsupported baseline version %d", path, b.Version)
	}
	b.path = path

	if b.Fingerprints == nil {
		b.Fingerprints = make(map[string]map[string]string)
	}
	return b, nil
}

// Save writes the baseline to disk.
func (b *Baseline) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path == "" {
		return fmt.Errorf("baseline path not set")
	}

	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling baseline: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", b.path, err)
	}
	return nil
}

// Path returns the baseline file path.
func (b *Baseline) Path() string {
	return b.path
}

// ---------------------------------------------------------------------------
// Fingerprints
// ---------------------------------------------------------------------------

// Hash computes the MD5 hex digest of a string.
func Hash(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}

// Fingerprint identifies an issue across runs. Issue IDs and messages are
// not part of it: IDs are fresh every run and messages are localized.
func Fingerprint(u *qa.Unit, iss qa.Issue) string {
	return Hash(strings.Join([]string{
		string(iss.Code),
		iss.RuleID,
		u.ExternalID,
		u.Source.Text,
		u.Target.Text,
	}, "\x00"))
}

// languageKey groups fingerprints by target language.
func languageKey(u *qa.Unit) string {
	if u.TargetLang == "" {
		return "und"
	}
	return u.TargetLang
}

// Update replaces the fingerprints of every language present in units with
// their current issues. Unsuppressed issues are accepted; suppressed ones
// stay accepted only if they already were. Fingerprints of fixed issues are
// dropped and other languages are untouched.
func (b *Baseline) Update(units []*qa.Unit) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fresh := make(map[string]map[string]string)
	for _, u := range units {
		lang := languageKey(u)
		if fresh[lang] == nil {
			fresh[lang] = make(map[string]string)
		}
		for _, iss := range u.Issues {
			fp := Fingerprint(u, iss)
			if _, known := b.Fingerprints[lang][fp]; iss.Suppressed && !known {
				continue
			}
			fresh[lang][fp] = string(iss.Code)
		}
	}
	for lang, fps := range fresh {
		b.Fingerprints[lang] = fps
	}
}

// Apply marks every issue found in the baseline as suppressed and returns
// how many were marked.
func (b *Baseline) Apply(units []*qa.Unit) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, u := range units {
		fps := b.Fingerprints[languageKey(u)]
		if len(fps) == 0 {
			continue
		}
		for i := range u.Issues {
			iss := &u.Issues[i]
			if iss.Suppressed {
				continue
			}
			if _, ok := fps[Fingerprint(u, *iss)]; ok {
				iss.Suppressed = true
				n++
			}
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of languages and total fingerprints.
func (b *Baseline) Stats() (languages, fingerprints int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, m := range b.Fingerprints {
		if len(m) > 0 {
			languages++
		}
		fingerprints += len(m)
	}
	return
}

// Languages returns the sorted list of languages with fingerprints.
func (b *Baseline) Languages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	langs := make([]string, 0, len(b.Fingerprints))
	for l, m := range b.Fingerprints {
		if len(m) > 0 {
			langs = append(langs, l)
		}
	}
	sort.Strings(langs)
	return langs
}

// Summary returns a human-readable summary string.
func (b *Baseline) Summary() string {
	languages, fingerprints := b.Stats()
	if languages == 0 {
		return "empty"
	}

	var parts []string
	for _, l := range b.Languages() {
		parts = append(parts, fmt.Sprintf("%s: %d", l, len(b.Fingerprints[l])))
	}
	return fmt.Sprintf("%d accepted issues in %d languages (%s)", fingerprints, languages, strings.Join(parts, ", "))
}

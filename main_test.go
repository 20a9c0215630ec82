package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minios-linux/qakit/baseline"
	"github.com/minios-linux/qakit/config"
	"github.com/minios-linux/qakit/qa"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		width   int
		want    string
	}{
		{
			name:    "clamps below zero",
			percent: -10,
			width:   4,
			want:    colorRed + "░░░░" + colorReset + "   0%",
		},
		{
			name:    "mid range uses yellow",
			percent: 50,
			width:   4,
			want:    colorYellow + "██░░" + colorReset + "  50%",
		},
		{
			name:    "clamps above hundred",
			percent: 120,
			width:   4,
			want:    colorGreen + "████" + colorReset + " 100%",
		},
	}

	for _, tc := range tests {
		if got := progressBar(tc.percent, tc.width); got != tc.want {
			t.Fatalf("%s: progressBar() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	u := &qa.Unit{}
	u.AddIssues(
		qa.NewIssue(qa.SeverityError, qa.CodeEmptyTarget, "a"),
		qa.NewIssue(qa.SeverityWarning, qa.CodeRepeatedWord, "b"),
		qa.NewIssue(qa.SeverityInfo, qa.CodeSameAsSource, "c"),
	)
	suppressed := qa.NewIssue(qa.SeverityError, qa.CodeTagMismatch, "d")
	suppressed.Suppressed = true
	u.AddIssues(suppressed)

	sum := summarize([]*qa.Unit{u, {}})
	want := summary{Units: 2, Errors: 1, Warnings: 1, Infos: 1, Suppressed: 1}
	if sum != want {
		t.Fatalf("summarize() = %+v, want %+v", sum, want)
	}

	cases := []struct {
		sev  qa.Severity
		want int
	}{
		{qa.SeverityError, 1},
		{qa.SeverityWarning, 2},
		{qa.SeverityInfo, 3},
	}
	for _, tc := range cases {
		if got := sum.atOrAbove(tc.sev); got != tc.want {
			t.Fatalf("atOrAbove(%q) = %d, want %d", tc.sev, got, tc.want)
		}
	}
}

func TestReportUnits(t *testing.T) {
	clean := &qa.Unit{ID: "clean"}
	muted := &qa.Unit{ID: "muted"}
	iss := qa.NewIssue(qa.SeverityWarning, qa.CodeRepeatedWord, "x")
	iss.Suppressed = true
	muted.AddIssues(iss)

	if got := reportUnits([]*qa.Unit{clean, muted}, false); len(got) != 0 {
		t.Fatalf("reportUnits(hide) = %d units, want 0", len(got))
	}
	got := reportUnits([]*qa.Unit{clean, muted}, true)
	if len(got) != 1 || got[0].ID != "muted" {
		t.Fatalf("reportUnits(show) = %+v, want the muted unit", got)
	}
	if got[0] == muted {
		t.Fatal("reportUnits() returned the input unit instead of a copy")
	}
}

func TestHighlighted(t *testing.T) {
	text := "Hello world"
	cases := []struct {
		hs   []qa.Highlight
		want string
	}{
		{nil, ""},
		{[]qa.Highlight{{Start: 6, End: 11}}, `"world"`},
		{[]qa.Highlight{{Start: 0, End: 5}, {Start: 11, End: 11}}, `"Hello", @11`},
	}
	for _, tc := range cases {
		if got := highlighted(text, tc.hs); got != tc.want {
			t.Fatalf("highlighted(%v) = %q, want %q", tc.hs, got, tc.want)
		}
	}
}

func TestResolvePresets(t *testing.T) {
	v, err := resolvePresets("en", "fr", []string{"numbers"})
	if err != nil {
		t.Fatalf("resolvePresets() error: %v", err)
	}
	if v.Numbers.Target.Decimal != "," {
		t.Fatalf("Target.Decimal = %q, want %q", v.Numbers.Target.Decimal, ",")
	}
	if v.Language != "français (fr)" {
		t.Fatalf("Language = %q, want %q", v.Language, "français (fr)")
	}
	if len(v.Quotes.TargetPairs) != 0 {
		t.Fatalf("TargetPairs = %v, want quotes table skipped", v.Quotes.TargetPairs)
	}

	if _, err := resolvePresets("en", "fr", []string{"colors"}); err == nil || !strings.Contains(err.Error(), "colors") {
		t.Fatalf("resolvePresets(colors) error = %v, want unknown table", err)
	}
}

func TestDiscover(t *testing.T) {
	units := []*qa.Unit{
		{Source: qa.Segment{Text: "Edit config-file in JavaScript"}},
		{Source: qa.Segment{Text: "Reload config-file"}},
		{Source: qa.Segment{Text: "Plug in the USB drive"}},
	}
	got := discover(units, []string{"javascript"}, 2)
	if len(got) != 1 || got[0].Term != "config-file" || got[0].Count != 2 {
		t.Fatalf("discover() = %+v, want config-file x2", got)
	}
}

// setupProject writes a .qakit.yaml and units file into a temp root.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "target_lang: fr\nunits: units.yaml\n"
	units := `units:
  - id: n1
    source: {text: "Delete 3 files."}
    target: {text: "Supprimer 4 fichiers."}
`
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfg), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "units.yaml"), []byte(units), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	old := rootDir
	rootDir = dir
	t.Cleanup(func() { rootDir = old })
	return dir
}

func TestRunCheckWithBaseline(t *testing.T) {
	dir := setupProject(t)
	a := checkArgs{format: "yaml", failOn: "error", quiet: true}

	var out bytes.Buffer
	err := runCheck(context.Background(), a, &out)
	if err == nil || !strings.Contains(err.Error(), "at or above error") {
		t.Fatalf("runCheck() error = %v, want a failing error count", err)
	}
	if !strings.Contains(out.String(), string(qa.CodeNumberMismatch)) {
		t.Fatalf("report does not mention %s:\n%s", qa.CodeNumberMismatch, out.String())
	}

	// accept the current issues
	a.updateBaseline = true
	out.Reset()
	if err := runCheck(context.Background(), a, &out); err != nil {
		t.Fatalf("runCheck(update-baseline) error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, baseline.FileName)); err != nil {
		t.Fatalf("baseline not written: %v", err)
	}

	// later runs only count them as suppressed
	a.updateBaseline = false
	a.format = "text"
	out.Reset()
	if err := runCheck(context.Background(), a, &out); err != nil {
		t.Fatalf("runCheck() after baseline error: %v", err)
	}
	if !strings.Contains(out.String(), "0 errors") || strings.Contains(out.String(), ", 0 suppressed") {
		t.Fatalf("text report = %q, want errors suppressed", out.String())
	}
}

func TestRunCheckFlagValidation(t *testing.T) {
	setupProject(t)
	cases := []struct {
		name string
		args checkArgs
		want string
	}{
		{"format", checkArgs{format: "xml", failOn: "error"}, "unknown format"},
		{"fail-on", checkArgs{format: "text", failOn: "fatal"}, "unknown --fail-on"},
		{"baseline", checkArgs{format: "text", failOn: "never", updateBaseline: true, noBaseline: true}, "mutually exclusive"},
		{"units", checkArgs{format: "text", failOn: "never", units: "missing.yaml"}, "missing.yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runCheck(context.Background(), tc.args, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("runCheck() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestLoadProjectWithoutConfig(t *testing.T) {
	old := rootDir
	rootDir = t.TempDir()
	t.Cleanup(func() { rootDir = old })

	if _, err := loadProject(""); err == nil || !strings.Contains(err.Error(), config.FileName) {
		t.Fatalf("loadProject() error = %v, want missing %s", err, config.FileName)
	}
}

// qakit: translation quality checks for source/target segment pairs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/qakit/baseline"
	"github.com/minios-linux/qakit/check"
	"github.com/minios-linux/qakit/config"
	"github.com/minios-linux/qakit/consistency"
	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/langmeta"
	"github.com/minios-linux/qakit/preset"
	"github.com/minios-linux/qakit/qa"
	"github.com/minios-linux/qakit/rules"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	uiLang  string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qakit",
		Short: "Translation quality checks for source/target segment pairs",
		Long: `qakit: translation quality assurance.

Checks translated segments for omissions, tag and placeholder damage,
punctuation, quotes, numbers, measurements, letter case, terminology,
untranslatable terms, forbidden words and custom rules, then looks for
inconsistent translations across the whole project.

The project is described by a .qakit.yaml file in the root directory.

Commands:
  check       Validate the units file and report issues
  discover    Suggest untranslatable terms found in the sources
  presets     Show the locale conventions used for a language
  version     Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			i18n.Init(uiLang)
		},
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().StringVar(&uiLang, "ui-lang", "", "Language of issue messages (default: from LANGUAGE/LC_ALL/LANG)")

	root.AddCommand(
		newCheckCmd(),
		newDiscoverCmd(),
		newPresetsCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qakit version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// Project loading
// ---------------------------------------------------------------------------

// project is everything a command needs from .qakit.yaml.
type project struct {
	file       *config.File
	settings   *qa.Settings
	glossaries []qa.Glossary
	units      []*qa.Unit
}

// loadProject reads .qakit.yaml from the root directory and the units file
// it names. unitsOverride, when set, replaces the configured units file.
func loadProject(unitsOverride string) (*project, error) {
	f, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("no %s found in %s", config.FileName, rootDir)
	}

	s, err := f.ResolveSettings()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.FileName, err)
	}
	glossaries, err := f.LoadGlossaries()
	if err != nil {
		return nil, err
	}

	unitsPath := unitsOverride
	if unitsPath == "" {
		unitsPath = f.Path(f.Units)
	}
	if unitsPath == "" {
		return nil, fmt.Errorf("no units file: set 'units' in %s or pass --units", config.FileName)
	}
	units, err := config.LoadUnits(unitsPath)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if u.SourceLang == "" {
			u.SourceLang = f.SourceLang
		}
		if u.TargetLang == "" {
			u.TargetLang = f.TargetLang
		}
	}

	return &project{file: f, settings: s, glossaries: glossaries, units: units}, nil
}

// ---------------------------------------------------------------------------
// check (validate units)
// ---------------------------------------------------------------------------

// checkArgs holds the flags of the check command.
type checkArgs struct {
	units          string
	format         string
	failOn         string
	maxConcurrent  int
	chunkSize      int
	updateBaseline bool
	noBaseline     bool
	showSuppressed bool
	quiet          bool
}

var (
	reportFormats = []string{"text", "yaml", "json"}
	failLevels    = []string{"error", "warning", "info", "never"}
)

func newCheckCmd() *cobra.Command {
	var a checkArgs

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the units file and report issues",
		Long: `Run every enabled check on every unit, then the project-wide
consistency analysis, and report the issues found.

Issues recorded in the baseline file are suppressed. Use --update-baseline
to accept the current issues, so that only new ones are reported later.

The exit status is 1 when an unsuppressed issue at or above the --fail-on
severity remains.

Examples:
  qakit check
  qakit check --units build/units.yaml --format yaml
  qakit check --fail-on warning
  qakit check --update-baseline
  qakit check --ui-lang ru`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), a, os.Stdout)
		},
	}

	// Input
	cmd.Flags().StringVar(&a.units, "units", "", "Units file (default: 'units' from .qakit.yaml)")

	// Output
	cmd.Flags().StringVar(&a.format, "format", "text", "Report format: "+strings.Join(reportFormats, ", "))
	cmd.Flags().StringVar(&a.failOn, "fail-on", "error", "Lowest severity that fails the run: "+strings.Join(failLevels, ", "))
	cmd.Flags().BoolVar(&a.showSuppressed, "show-suppressed", false, "Include issues suppressed by the baseline")
	cmd.Flags().BoolVarP(&a.quiet, "quiet", "q", false, "Only print the report")

	// Execution
	cmd.Flags().IntVar(&a.maxConcurrent, "jobs", 0, "Parallel workers (default: number of CPUs)")
	cmd.Flags().IntVar(&a.chunkSize, "chunk-size", 0, "Units per work item (default: 64)")

	// Baseline
	cmd.Flags().BoolVar(&a.updateBaseline, "update-baseline", false, "Accept all current issues into the baseline file")
	cmd.Flags().BoolVar(&a.noBaseline, "no-baseline", false, "Ignore the baseline file")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return reportFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("fail-on", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return failLevels, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(parent context.Context, a checkArgs, out io.Writer) error {
	if !slices.Contains(reportFormats, a.format) {
		return fmt.Errorf("unknown format %q (valid: %s)", a.format, strings.Join(reportFormats, ", "))
	}
	if !slices.Contains(failLevels, a.failOn) {
		return fmt.Errorf("unknown --fail-on level %q (valid: %s)", a.failOn, strings.Join(failLevels, ", "))
	}
	if a.updateBaseline && a.noBaseline {
		return errors.New("--update-baseline and --no-baseline are mutually exclusive")
	}

	info := logInfo
	if a.quiet {
		info = func(string, ...any) {}
	}

	proj, err := loadProject(a.units)
	if err != nil {
		return err
	}
	info("Checking %d units (%s → %s)", len(proj.units), langmeta.Label(proj.file.SourceLang), langmeta.Label(proj.file.TargetLang))

	// Setup signal handling for graceful cancellation
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logWarning("Interrupted, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	showBar := !a.quiet && isatty.IsTerminal(os.Stderr.Fd())
	opts := check.Options{
		MaxConcurrent: a.maxConcurrent,
		ChunkSize:     a.chunkSize,
		OnLog:         info,
		OnError: func(format string, args ...any) {
			logError(format, args...)
		},
	}
	if showBar {
		opts.OnProgress = func(done, total int) {
			fmt.Fprintf(os.Stderr, "\r  %s %d/%d", progressBar(done*100/max(total, 1), 30), done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	if err := check.Run(ctx, proj.units, proj.settings, proj.glossaries, opts); err != nil {
		return err
	}

	res, err := consistency.Run(ctx, proj.units, proj.settings.Consistency, consistency.Options{OnLog: info})
	if err != nil {
		return err
	}
	if res.Clusters > 0 {
		info("Found %d inconsistent translation groups", res.Clusters)
	}

	if !a.noBaseline {
		b, err := baseline.Load(proj.file.Path(proj.file.Baseline))
		if err != nil {
			return err
		}
		if a.updateBaseline {
			b.Update(proj.units)
			if err := b.Save(); err != nil {
				return err
			}
			if !a.quiet {
				logSuccess("Baseline %s: %s", b.Path(), b.Summary())
			}
		}
		if n := b.Apply(proj.units); n > 0 {
			info("%d issues suppressed by %s", n, filepath.Base(b.Path()))
		}
	}

	color := a.format == "text" && isStdout(out) && isatty.IsTerminal(os.Stdout.Fd())
	sum := summarize(proj.units)
	if err := writeReport(out, proj.units, sum, a.format, a.showSuppressed, color); err != nil {
		return err
	}

	if a.failOn != "never" {
		if n := sum.atOrAbove(qa.Severity(a.failOn)); n > 0 {
			return fmt.Errorf("%d %s at or above %s", n, i18n.N("issue", "issues", n), a.failOn)
		}
	}
	if !a.quiet && sum.Active() == 0 {
		logSuccess("No issues found")
	}
	return nil
}

func isStdout(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f == os.Stdout
}

// ---------------------------------------------------------------------------
// Report
// ---------------------------------------------------------------------------

// summary counts unsuppressed issues by severity.
type summary struct {
	Units      int `yaml:"units" json:"units"`
	Errors     int `yaml:"errors" json:"errors"`
	Warnings   int `yaml:"warnings" json:"warnings"`
	Infos      int `yaml:"infos" json:"infos"`
	Suppressed int `yaml:"suppressed" json:"suppressed"`
}

func summarize(units []*qa.Unit) summary {
	s := summary{Units: len(units)}
	for _, u := range units {
		for _, iss := range u.Issues {
			if iss.Suppressed {
				s.Suppressed++
				continue
			}
			switch iss.Severity {
			case qa.SeverityError:
				s.Errors++
			case qa.SeverityWarning:
				s.Warnings++
			default:
				s.Infos++
			}
		}
	}
	return s
}

// Active returns the number of unsuppressed issues.
func (s summary) Active() int {
	return s.Errors + s.Warnings + s.Infos
}

// atOrAbove counts unsuppressed issues whose severity ranks at least sev.
func (s summary) atOrAbove(sev qa.Severity) int {
	n := 0
	if qa.SeverityError.Rank() >= sev.Rank() {
		n += s.Errors
	}
	if qa.SeverityWarning.Rank() >= sev.Rank() {
		n += s.Warnings
	}
	if qa.SeverityInfo.Rank() >= sev.Rank() {
		n += s.Infos
	}
	return n
}

// report is the machine-readable output document.
type report struct {
	Summary summary    `yaml:"summary" json:"summary"`
	Units   []*qa.Unit `yaml:"units" json:"units"`
}

// reportUnits returns the units that have issues to show, with suppressed
// issues dropped unless requested.
func reportUnits(units []*qa.Unit, showSuppressed bool) []*qa.Unit {
	var out []*qa.Unit
	for _, u := range units {
		issues := u.Issues
		if !showSuppressed {
			issues = u.ActiveIssues()
		}
		if len(issues) == 0 {
			continue
		}
		cp := *u
		cp.Issues = issues
		out = append(out, &cp)
	}
	return out
}

func writeReport(w io.Writer, units []*qa.Unit, sum summary, format string, showSuppressed, color bool) error {
	shown := reportUnits(units, showSuppressed)

	if format == "text" {
		writeText(w, shown, sum, color)
		return nil
	}
	if err := encode(w, format, report{Summary: sum, Units: shown}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func writeText(w io.Writer, units []*qa.Unit, sum summary, color bool) {
	paint := func(c, s string) string {
		if !color {
			return s
		}
		return c + s + colorReset
	}

	for _, u := range units {
		name := u.ID
		if u.ExternalID != "" {
			name = u.ExternalID
		}
		fmt.Fprintf(w, "%s\n", paint(colorBlue, name))
		fmt.Fprintf(w, "  source: %q\n", u.Source.Text)
		fmt.Fprintf(w, "  target: %q\n", u.Target.Text)
		for _, iss := range u.Issues {
			sev := string(iss.Severity)
			switch iss.Severity {
			case qa.SeverityError:
				sev = paint(colorRed, sev)
			case qa.SeverityWarning:
				sev = paint(colorYellow, sev)
			}
			line := fmt.Sprintf("  %s [%s] %s", sev, iss.Code, iss.Message)
			if iss.Suppressed {
				line += " (suppressed)"
			}
			fmt.Fprintln(w, line)
			if hl := highlighted(u.Source.Text, iss.SourceHighlights); hl != "" {
				fmt.Fprintf(w, "      source: %s\n", hl)
			}
			if hl := highlighted(u.Target.Text, iss.TargetHighlights); hl != "" {
				fmt.Fprintf(w, "      target: %s\n", hl)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d units, %d errors, %d warnings, %d info, %d suppressed\n",
		sum.Units, sum.Errors, sum.Warnings, sum.Infos, sum.Suppressed)
}

// highlighted quotes every highlighted slice of text. Zero-width highlights
// mark a position and are shown by their offset.
func highlighted(text string, hs []qa.Highlight) string {
	if len(hs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(hs))
	for _, h := range hs {
		if h.Len() == 0 {
			parts = append(parts, fmt.Sprintf("@%d", h.Start))
			continue
		}
		parts = append(parts, fmt.Sprintf("%q", h.In(text)))
	}
	return strings.Join(parts, ", ")
}

// progressBar renders a colored bar of the given width followed by the
// percentage. Percent is clamped to [0, 100].
func progressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100

	c := colorRed
	switch {
	case percent >= 100:
		c = colorGreen
	case percent >= 30:
		c = colorYellow
	}
	return c + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + colorReset + fmt.Sprintf(" %3d%%", percent)
}

// ---------------------------------------------------------------------------
// discover (suggest untranslatable terms)
// ---------------------------------------------------------------------------

func newDiscoverCmd() *cobra.Command {
	var (
		units    string
		format   string
		minCount int
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Suggest untranslatable terms found in the sources",
		Long: `Scan the source segments for tokens that usually stay untranslated:
joined identifiers (config-file, max_size), mixed-case names (JavaScript)
and all-caps acronyms (USB). Terms already listed under
settings.untranslatables.terms are left out.

Only the first ` + fmt.Sprint(rules.DiscoveryLimit) + ` units are scanned.

Examples:
  qakit discover
  qakit discover --min-count 3 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(units)
			if err != nil {
				return err
			}
			known := proj.settings.Untranslatables.Terms
			if all {
				known = nil
			}
			cands := discover(proj.units, known, minCount)
			logInfo("Found %d candidates in %d units", len(cands), min(len(proj.units), rules.DiscoveryLimit))
			return encode(os.Stdout, format, cands)
		},
	}

	cmd.Flags().StringVar(&units, "units", "", "Units file (default: 'units' from .qakit.yaml)")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")
	cmd.Flags().IntVar(&minCount, "min-count", 1, "Only show terms seen at least this many times")
	cmd.Flags().BoolVar(&all, "all", false, "Include terms already configured as untranslatable")

	return cmd
}

// discover collects candidates from the unit sources.
func discover(units []*qa.Unit, known []string, minCount int) []rules.Candidate {
	sources := make([]string, 0, len(units))
	for _, u := range units {
		sources = append(sources, u.Source.Text)
	}
	var out []rules.Candidate
	for _, c := range rules.DiscoverUntranslatables(sources, known) {
		if c.Count >= minCount {
			out = append(out, c)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// presets (show locale conventions)
// ---------------------------------------------------------------------------

// presetView is the locale-derived part of the settings.
type presetView struct {
	SourceLang   string                 `yaml:"source_lang" json:"source_lang"`
	TargetLang   string                 `yaml:"target_lang" json:"target_lang"`
	Language     string                 `yaml:"language" json:"language"`
	Punctuation  qa.PunctuationSettings `yaml:"punctuation,omitempty" json:"punctuation,omitempty"`
	Quotes       qa.QuoteSettings       `yaml:"quotes,omitempty" json:"quotes,omitempty"`
	Numbers      qa.NumberSettings      `yaml:"numbers,omitempty" json:"numbers,omitempty"`
	Measurements qa.MeasurementSettings `yaml:"measurements,omitempty" json:"measurements,omitempty"`
}

func newPresetsCmd() *cobra.Command {
	var (
		sourceLang string
		tables     []string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "presets <target-lang>",
		Short: "Show the locale conventions used for a language",
		Long: `Print the punctuation, quote, number and measurement conventions that
qakit applies for a target language, after locale fallback
(pt-BR → pt → defaults).

Examples:
  qakit presets fr
  qakit presets de-CH --source en --tables numbers,quotes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := resolvePresets(sourceLang, args[0], tables)
			if err != nil {
				return err
			}
			return encode(os.Stdout, format, v)
		},
	}

	cmd.Flags().StringVar(&sourceLang, "source", "en", "Source language")
	cmd.Flags().StringSliceVar(&tables, "tables", preset.Tables(), "Preset tables to apply: "+strings.Join(preset.Tables(), ", "))
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")

	_ = cmd.RegisterFlagCompletionFunc("tables", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return preset.Tables(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func resolvePresets(sourceLang, targetLang string, tables []string) (presetView, error) {
	s := qa.DefaultSettings()
	s.SourceLang = sourceLang
	s.TargetLang = targetLang
	if unknown := preset.Apply(&s, tables); len(unknown) > 0 {
		return presetView{}, fmt.Errorf("unknown preset tables: %s (valid: %s)",
			strings.Join(unknown, ", "), strings.Join(preset.Tables(), ", "))
	}
	return presetView{
		SourceLang:   s.SourceLang,
		TargetLang:   s.TargetLang,
		Language:     langmeta.Label(s.TargetLang),
		Punctuation:  s.Punctuation,
		Quotes:       s.Quotes,
		Numbers:      s.Numbers,
		Measurements: s.Measurements,
	}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// encode writes v as yaml or json.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return fmt.Errorf("unknown format %q (valid: yaml, json)", format)
	}
}

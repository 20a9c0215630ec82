package qa

// ---------------------------------------------------------------------------
// Settings schema
// ---------------------------------------------------------------------------

// Settings is the fully resolved validation configuration. Locale-derived
// fields are filled by the preset package; every field can then be
// overridden. A zero-valued group disables its checks.
type Settings struct {
	SourceLang string `yaml:"source_lang,omitempty"`
	TargetLang string `yaml:"target_lang,omitempty"`

	Omissions       OmissionSettings       `yaml:"omissions"`
	LetterCase      LetterCaseSettings     `yaml:"letter_case"`
	Punctuation     PunctuationSettings    `yaml:"punctuation"`
	Quotes          QuoteSettings          `yaml:"quotes"`
	Tags            TagSettings            `yaml:"tags"`
	Measurements    MeasurementSettings    `yaml:"measurements"`
	Numbers         NumberSettings         `yaml:"numbers"`
	Misc            MiscSettings           `yaml:"misc"`
	Terminology     TerminologySettings    `yaml:"terminology"`
	Untranslatables UntranslatableSettings `yaml:"untranslatables"`
	ForbiddenWords  ForbiddenWordSettings  `yaml:"forbidden_words"`
	CustomRules     []CustomRule           `yaml:"custom_rules,omitempty"`
	Consistency     ConsistencySettings    `yaml:"consistency"`

	// ActiveGlossaries selects glossaries by name. Empty means all.
	ActiveGlossaries []string `yaml:"active_glossaries,omitempty"`
}

// OmissionSettings controls empty, untranslated and partial translations.
type OmissionSettings struct {
	EmptyTarget  bool `yaml:"empty_target"`
	SameAsSource bool `yaml:"same_as_source"`
	// IgnoreMathOnly exempts sources made only of digits and operators.
	IgnoreMathOnly     bool    `yaml:"ignore_math_only"`
	PartialTranslation bool    `yaml:"partial_translation"`
	PartialMinTokens   int     `yaml:"partial_min_tokens"`
	PartialOverlap     float64 `yaml:"partial_overlap"`
	SentenceCount      bool    `yaml:"sentence_count"`
}

// LetterCaseSettings controls capitalization checks.
type LetterCaseSettings struct {
	InitialCapital bool     `yaml:"initial_capital"`
	MidWord        bool     `yaml:"mid_word"`
	MidWordAllow   []string `yaml:"mid_word_allow,omitempty"`
	SpecialCasing  bool     `yaml:"special_casing"`
	// SpecialTerms lists words that must keep their exact casing, e.g. "iPhone".
	SpecialTerms []string `yaml:"special_terms,omitempty"`
	// ReferenceLang is the casing locale used for the source side.
	ReferenceLang string `yaml:"reference_lang,omitempty"`
}

// Pair is an opening/closing glyph pair. Open == Close makes it symmetric.
type Pair struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// Symmetric reports whether the same glyph opens and closes.
func (p Pair) Symmetric() bool { return p.Open == p.Close }

// SpacingGrid lists, per character class rule, the characters it applies to.
type SpacingGrid struct {
	SpaceBefore   string `yaml:"space_before"`
	NoSpaceBefore string `yaml:"no_space_before"`
	SpaceAfter    string `yaml:"space_after"`
	NoSpaceAfter  string `yaml:"no_space_after"`
	NBSPBefore    string `yaml:"nbsp_before"`
	NBSPAfter     string `yaml:"nbsp_after"`
}

// PunctuationSettings controls spacing, end punctuation and brackets.
type PunctuationSettings struct {
	MultipleSpaces    bool `yaml:"multiple_spaces"`
	DoublePunctuation bool `yaml:"double_punctuation"`
	// AllowAsInSource exempts patterns the source exhibits too.
	AllowAsInSource bool `yaml:"allow_as_in_source"`

	EndPunctuation bool `yaml:"end_punctuation"`
	// EndIgnore holds trailing characters skipped before comparing end marks.
	EndIgnore string `yaml:"end_ignore"`

	Brackets      bool   `yaml:"brackets"`
	BracketPairs  []Pair `yaml:"bracket_pairs,omitempty"`
	AngleBrackets bool   `yaml:"angle_brackets"`

	Spacing      bool        `yaml:"spacing"`
	SpacingRules SpacingGrid `yaml:"spacing_rules"`
}

// QuoteSettings controls quote pairing and apostrophe glyphs.
type QuoteSettings struct {
	Apostrophes bool `yaml:"apostrophes"`
	// AllowedApostrophes lists the apostrophe glyphs accepted in target.
	AllowedApostrophes string `yaml:"allowed_apostrophes"`
	Quotes             bool   `yaml:"quotes"`
	SourcePairs        []Pair `yaml:"source_pairs,omitempty"`
	TargetPairs        []Pair `yaml:"target_pairs,omitempty"`
}

// TagSettings controls inline tag and entity checks.
type TagSettings struct {
	Identity bool `yaml:"identity"`
	Order    bool `yaml:"order"`
	Pairing  bool `yaml:"pairing"`
	Spacing  bool `yaml:"spacing"`
	Entities bool `yaml:"entities"`
}

// SpacingPolicy describes the separator expected between two tokens.
type SpacingPolicy string

const (
	SpacingAny   SpacingPolicy = "any"
	SpacingSpace SpacingPolicy = "space"
	SpacingNone  SpacingPolicy = "none"
	SpacingNBSP  SpacingPolicy = "nbsp"
)

// MeasurementSettings controls number+unit cross-referencing.
type MeasurementSettings struct {
	Enabled bool          `yaml:"enabled"`
	Units   []string      `yaml:"units,omitempty"`
	Spacing SpacingPolicy `yaml:"spacing"`

	Temperature        bool          `yaml:"temperature"`
	TemperatureUnits   []string      `yaml:"temperature_units,omitempty"`
	TemperatureSpacing SpacingPolicy `yaml:"temperature_spacing"`
}

// ThousandsPolicy says whether grouping is required above three digits.
type ThousandsPolicy string

const (
	ThousandsOptional   ThousandsPolicy = "optional"
	ThousandsRequired   ThousandsPolicy = "required"
	ThousandsDisallowed ThousandsPolicy = "disallowed"
)

// NumberFormat describes how numbers are written in one language.
type NumberFormat struct {
	Decimal         string          `yaml:"decimal"`
	Thousands       string          `yaml:"thousands"`
	ThousandsPolicy ThousandsPolicy `yaml:"thousands_policy"`
	MinusSigns      string          `yaml:"minus_signs"`
	RangeSymbol     string          `yaml:"range_symbol"`
	RangeSpacing    SpacingPolicy   `yaml:"range_spacing"`
	// Words maps spelled-out numbers to their value, e.g. "three": 3.
	Words map[string]float64 `yaml:"words,omitempty"`
}

// NumberSettings controls number cross-referencing and formatting.
type NumberSettings struct {
	Enabled    bool         `yaml:"enabled"`
	SpelledOut bool         `yaml:"spelled_out"`
	Format     bool         `yaml:"format"`
	Ranges     bool         `yaml:"ranges"`
	Source     NumberFormat `yaml:"source"`
	Target     NumberFormat `yaml:"target"`
}

// MiscSettings toggles the small independent checks.
type MiscSettings struct {
	RepeatedWords bool `yaml:"repeated_words"`
	URLs          bool `yaml:"urls"`
	MixedScript   bool `yaml:"mixed_script"`
}

// TerminologySettings controls glossary enforcement.
type TerminologySettings struct {
	Enabled   bool `yaml:"enabled"`
	Forbidden bool `yaml:"forbidden"`
}

// Scope says which side of a unit a check looks at.
type Scope string

const (
	ScopeSource Scope = "source"
	ScopeTarget Scope = "target"
	ScopeBoth   Scope = "both"
)

// IncludesSource reports whether the scope covers the source side.
func (s Scope) IncludesSource() bool { return s == ScopeSource || s == ScopeBoth }

// IncludesTarget reports whether the scope covers the target side.
func (s Scope) IncludesTarget() bool { return s == ScopeTarget || s == ScopeBoth }

// UntranslatableSettings lists terms that must be carried over verbatim.
type UntranslatableSettings struct {
	Enabled    bool     `yaml:"enabled"`
	Terms      []string `yaml:"terms,omitempty"`
	Scope      Scope    `yaml:"scope"`
	CheckCount bool     `yaml:"check_count"`
}

// ForbiddenWordSettings lists expressions that must not appear in target.
type ForbiddenWordSettings struct {
	Enabled     bool     `yaml:"enabled"`
	Expressions []string `yaml:"expressions,omitempty"`
	// AllowIfInSource skips an expression that also matches the source.
	AllowIfInSource bool `yaml:"allow_if_in_source"`
}

// Condition selects how a custom rule combines its two patterns.
type Condition string

const (
	ConditionBothPresent Condition = "both_present"
	ConditionSourceOnly  Condition = "source_only"
	ConditionTargetOnly  Condition = "target_only"
	// ConditionRegexBoth is kept for rule files written for regex mode.
	ConditionRegexBoth Condition = "regex_both"
)

// CustomRule is a user-defined source/target pattern check.
type CustomRule struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Description   string    `yaml:"description,omitempty"`
	Severity      Severity  `yaml:"severity,omitempty"`
	Disabled      bool      `yaml:"disabled,omitempty"`
	SourcePattern string    `yaml:"source,omitempty"`
	TargetPattern string    `yaml:"target,omitempty"`
	Regex         bool      `yaml:"regex,omitempty"`
	WholeWord     bool      `yaml:"whole_word,omitempty"`
	CaseSensitive bool      `yaml:"case_sensitive,omitempty"`
	Condition     Condition `yaml:"condition"`
}

// ConsistencyOptions configures one direction of the consistency analyzer.
type ConsistencyOptions struct {
	Enabled          bool `yaml:"enabled"`
	StripTags        bool `yaml:"strip_tags"`
	IgnoreCase       bool `yaml:"ignore_case"`
	FoldNBSP         bool `yaml:"fold_nbsp"`
	MaskDigits       bool `yaml:"mask_digits"`
	StripPunctuation bool `yaml:"strip_punctuation"`
	// StripPlurals removes English plural suffixes; meaningful for English text only.
	StripPlurals bool `yaml:"strip_plurals"`
}

// ConsistencySettings holds both analyzer directions.
type ConsistencySettings struct {
	// Target flags one source translated several ways.
	Target ConsistencyOptions `yaml:"target"`
	// Source flags several sources sharing one translation.
	Source ConsistencyOptions `yaml:"source"`
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

// DefaultSettings returns a fresh, independently owned settings value with
// every locale-independent check enabled. Locale tables are left to presets.
func DefaultSettings() Settings {
	return Settings{
		SourceLang: "en",
		TargetLang: "en",
		Omissions: OmissionSettings{
			EmptyTarget:        true,
			SameAsSource:       true,
			IgnoreMathOnly:     true,
			PartialTranslation: true,
			PartialMinTokens:   4,
			PartialOverlap:     0.7,
			SentenceCount:      true,
		},
		LetterCase: LetterCaseSettings{
			InitialCapital: true,
			MidWord:        true,
			SpecialCasing:  true,
			ReferenceLang:  "en",
		},
		Punctuation: PunctuationSettings{
			MultipleSpaces:    true,
			DoublePunctuation: true,
			AllowAsInSource:   true,
			EndPunctuation:    true,
			EndIgnore:         "\"'”’»)]} \t\n",
			Brackets:          true,
			BracketPairs:      []Pair{{"(", ")"}, {"[", "]"}, {"{", "}"}},
			Spacing:           true,
		},
		Quotes: QuoteSettings{
			Apostrophes: true,
			Quotes:      true,
		},
		Tags: TagSettings{
			Identity: true,
			Order:    true,
			Pairing:  true,
			Spacing:  true,
			Entities: true,
		},
		Measurements: MeasurementSettings{
			Enabled:            true,
			Spacing:            SpacingAny,
			Temperature:        true,
			TemperatureSpacing: SpacingAny,
		},
		Numbers: NumberSettings{
			Enabled: true,
			Format:  true,
			Ranges:  true,
		},
		Misc: MiscSettings{
			RepeatedWords: true,
			URLs:          true,
			MixedScript:   true,
		},
		Terminology: TerminologySettings{
			Enabled:   true,
			Forbidden: true,
		},
		Untranslatables: UntranslatableSettings{
			Enabled:    true,
			Scope:      ScopeBoth,
			CheckCount: true,
		},
		ForbiddenWords: ForbiddenWordSettings{
			Enabled:         true,
			AllowIfInSource: true,
		},
		Consistency: ConsistencySettings{
			Target: ConsistencyOptions{
				Enabled:   true,
				StripTags: true,
				FoldNBSP:  true,
			},
			Source: ConsistencyOptions{
				Enabled:   true,
				StripTags: true,
				FoldNBSP:  true,
			},
		},
	}
}

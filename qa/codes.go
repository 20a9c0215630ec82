package qa

// Code is a stable issue taxonomy key. Downstream consumers group on it, so a
// new check gets a new code; existing codes are never repurposed.
type Code string

// Omissions
const (
	CodeEmptyTarget           Code = "empty_target"
	CodeSameAsSource          Code = "same_as_source"
	CodePartialTranslation    Code = "partial_translation"
	CodeSentenceCountMismatch Code = "sentence_count_mismatch"
)

// Letter case
const (
	CodeInitialCapitalization Code = "initial_capitalization"
	CodeMidWordCapitalization Code = "mid_word_capitalization"
	CodeSpecialCasing         Code = "special_casing"
)

// Punctuation and spacing
const (
	CodeMultipleSpaces          Code = "multiple_spaces"
	CodeDoublePunctuation       Code = "double_punctuation"
	CodeEndPunctuation          Code = "end_punctuation"
	CodeBracketUnmatchedClosing Code = "bracket_unmatched_closing"
	CodeBracketMismatchedPair   Code = "bracket_mismatched_pair"
	CodeBracketUnclosed         Code = "bracket_unclosed"
	CodeSpaceBefore             Code = "space_before"
	CodeNoSpaceBefore           Code = "no_space_before"
	CodeSpaceAfter              Code = "space_after"
	CodeNoSpaceAfter            Code = "no_space_after"
	CodeNBSPBefore              Code = "nbsp_before"
	CodeNBSPAfter               Code = "nbsp_after"
)

// Quotes and apostrophes
const (
	CodeApostropheNotAllowed Code = "apostrophe_not_allowed"
	CodeQuoteUnclosed        Code = "quote_unclosed"
	CodeQuoteMismatched      Code = "quote_mismatched"
)

// Tags and entities
const (
	CodeTagCountMismatch Code = "tag_count_mismatch"
	CodeTagMismatch      Code = "tag_mismatch"
	CodeTagOrder         Code = "tag_order"
	CodeTagSpacing       Code = "tag_spacing"
	CodeTagPairing       Code = "tag_pairing"
	CodeEntityMalformed  Code = "entity_malformed"
	CodeEntityMissing    Code = "entity_missing"
)

// Measurements
const (
	CodeMeasurementMismatch Code = "measurement_mismatch"
	CodeMeasurementSpacing  Code = "measurement_spacing"
	CodeTemperatureMismatch Code = "temperature_mismatch"
	CodeTemperatureSpacing  Code = "temperature_spacing"
)

// Numbers and ranges
const (
	CodeNumberMismatch          Code = "number_mismatch"
	CodeNumberDecimalSeparator  Code = "number_decimal_separator"
	CodeNumberThousandSeparator Code = "number_thousands_separator"
	CodeRangeSymbol             Code = "range_symbol"
	CodeRangeSpacing            Code = "range_spacing"
)

// Misc
const (
	CodeRepeatedWord Code = "repeated_word"
	CodeURLMismatch  Code = "url_mismatch"
	CodeMixedScript  Code = "mixed_script"
)

// Terminology, untranslatables, forbidden words, custom rules
const (
	CodeTerminologyViolation        Code = "terminology_violation"
	CodeTerminologyCountMismatch    Code = "terminology_count_mismatch"
	CodeForbiddenTerm               Code = "forbidden_term"
	CodeUntranslatableMissing       Code = "untranslatable_missing"
	CodeUntranslatableUnexpected    Code = "untranslatable_unexpected"
	CodeUntranslatableCountMismatch Code = "untranslatable_count_mismatch"
	CodeForbiddenWord               Code = "forbidden_word"
	CodeCustomRule                  Code = "custom_rule"
)

// Consistency
const (
	CodeTargetInconsistency Code = "target_inconsistency"
	CodeSourceInconsistency Code = "source_inconsistency"
)

// Rule families, used as Issue.RuleID for built-in checks.
const (
	RuleOmissions       = "omissions"
	RuleLetterCase      = "letter_case"
	RulePunctuation     = "punctuation"
	RuleQuotes          = "quotes"
	RuleTags            = "tags"
	RuleMeasurements    = "measurements"
	RuleNumbers         = "numbers"
	RuleMisc            = "misc"
	RuleTerminology     = "terminology"
	RuleUntranslatables = "untranslatables"
	RuleForbiddenWords  = "forbidden_words"
	RuleCustom          = "custom"
	RuleConsistency     = "consistency"
)

var codeRules = map[Code]string{
	CodeEmptyTarget:                 RuleOmissions,
	CodeSameAsSource:                RuleOmissions,
	CodePartialTranslation:          RuleOmissions,
	CodeSentenceCountMismatch:       RuleOmissions,
	CodeInitialCapitalization:       RuleLetterCase,
	CodeMidWordCapitalization:       RuleLetterCase,
	CodeSpecialCasing:               RuleLetterCase,
	CodeMultipleSpaces:              RulePunctuation,
	CodeDoublePunctuation:           RulePunctuation,
	CodeEndPunctuation:              RulePunctuation,
	CodeBracketUnmatchedClosing:     RulePunctuation,
	CodeBracketMismatchedPair:       RulePunctuation,
	CodeBracketUnclosed:             RulePunctuation,
	CodeSpaceBefore:                 RulePunctuation,
	CodeNoSpaceBefore:               RulePunctuation,
	CodeSpaceAfter:                  RulePunctuation,
	CodeNoSpaceAfter:                RulePunctuation,
	CodeNBSPBefore:                  RulePunctuation,
	CodeNBSPAfter:                   RulePunctuation,
	CodeApostropheNotAllowed:        RuleQuotes,
	CodeQuoteUnclosed:               RuleQuotes,
	CodeQuoteMismatched:             RuleQuotes,
	CodeTagCountMismatch:            RuleTags,
	CodeTagMismatch:                 RuleTags,
	CodeTagOrder:                    RuleTags,
	CodeTagSpacing:                  RuleTags,
	CodeTagPairing:                  RuleTags,
	CodeEntityMalformed:             RuleTags,
	CodeEntityMissing:               RuleTags,
	CodeMeasurementMismatch:         RuleMeasurements,
	CodeMeasurementSpacing:          RuleMeasurements,
	CodeTemperatureMismatch:         RuleMeasurements,
	CodeTemperatureSpacing:          RuleMeasurements,
	CodeNumberMismatch:              RuleNumbers,
	CodeNumberDecimalSeparator:      RuleNumbers,
	CodeNumberThousandSeparator:     RuleNumbers,
	CodeRangeSymbol:                 RuleNumbers,
	CodeRangeSpacing:                RuleNumbers,
	CodeRepeatedWord:                RuleMisc,
	CodeURLMismatch:                 RuleMisc,
	CodeMixedScript:                 RuleMisc,
	CodeTerminologyViolation:        RuleTerminology,
	CodeTerminologyCountMismatch:    RuleTerminology,
	CodeForbiddenTerm:               RuleTerminology,
	CodeUntranslatableMissing:       RuleUntranslatables,
	CodeUntranslatableUnexpected:    RuleUntranslatables,
	CodeUntranslatableCountMismatch: RuleUntranslatables,
	CodeForbiddenWord:               RuleForbiddenWords,
	CodeCustomRule:                  RuleCustom,
	CodeTargetInconsistency:         RuleConsistency,
	CodeSourceInconsistency:         RuleConsistency,
}

// Valid reports whether c belongs to the taxonomy.
func (c Code) Valid() bool {
	_, ok := codeRules[c]
	return ok
}

// Rule returns the rule family owning the code, or "" for unknown codes.
func (c Code) Rule() string {
	return codeRules[c]
}

// Codes returns every code of the taxonomy.
func Codes() []Code {
	out := make([]Code, 0, len(codeRules))
	for c := range codeRules {
		out = append(out, c)
	}
	return out
}

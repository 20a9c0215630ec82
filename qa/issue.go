package qa

import "github.com/google/uuid"

// Severity of an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities, higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Highlight is a half-open byte range [Start, End) into the original,
// tag-inline text of a segment.
type Highlight struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Len returns the highlight width in bytes.
func (h Highlight) Len() int { return h.End - h.Start }

// In returns the highlighted slice of text, clamped to its bounds.
func (h Highlight) In(text string) string {
	start, end := h.Start, h.End
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	return text[start:end]
}

// Issue is one finding produced by a validator.
type Issue struct {
	ID               string      `yaml:"id" json:"id"`
	Severity         Severity    `yaml:"severity" json:"severity"`
	Code             Code        `yaml:"code" json:"code"`
	Message          string      `yaml:"message" json:"message"`
	RuleID           string      `yaml:"rule_id" json:"rule_id"`
	GroupID          string      `yaml:"group_id,omitempty" json:"group_id,omitempty"`
	SourceHighlights []Highlight `yaml:"source_highlights,omitempty" json:"source_highlights,omitempty"`
	TargetHighlights []Highlight `yaml:"target_highlights,omitempty" json:"target_highlights,omitempty"`
	Suppressed       bool        `yaml:"suppressed,omitempty" json:"suppressed,omitempty"`
}

// NewIssue builds an issue with a fresh ID. The rule ID defaults to the
// rule family that owns the code.
func NewIssue(sev Severity, code Code, msg string) Issue {
	return Issue{
		ID:       uuid.NewString(),
		Severity: sev,
		Code:     code,
		Message:  msg,
		RuleID:   code.Rule(),
	}
}

// WithSource attaches source highlights.
func (i Issue) WithSource(h ...Highlight) Issue {
	i.SourceHighlights = append(i.SourceHighlights, h...)
	return i
}

// WithTarget attaches target highlights.
func (i Issue) WithTarget(h ...Highlight) Issue {
	i.TargetHighlights = append(i.TargetHighlights, h...)
	return i
}

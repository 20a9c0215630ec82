// Package qa holds the data model shared by every qakit package:
// segments, translation units, issues and validation settings.
package qa

// TagKind classifies an inline tag.
type TagKind string

const (
	TagOpen  TagKind = "open"
	TagClose TagKind = "close"
	TagSelf  TagKind = "self"
)

// Tag describes one inline formatting tag replaced by a placeholder token.
type Tag struct {
	// ID is the placeholder token as it appears in Segment.Text, e.g. "{1}".
	ID   string  `yaml:"id" json:"id"`
	Kind TagKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	// RawContent is the original markup the token stands for.
	RawContent string `yaml:"raw,omitempty" json:"raw,omitempty"`
	// OriginalIndex is the index attribute of the source format, if any.
	OriginalIndex string `yaml:"original_index,omitempty" json:"original_index,omitempty"`
}

// Segment is one side of a translation unit.
type Segment struct {
	Text string `yaml:"text" json:"text"`
	Tags []Tag  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Status is the workflow state of a unit.
type Status string

const (
	StatusNew        Status = "new"
	StatusDraft      Status = "draft"
	StatusTranslated Status = "translated"
	StatusReviewed   Status = "reviewed"
	StatusApproved   Status = "approved"
	// StatusEmpty marks a unit whose target is intentionally left empty.
	StatusEmpty Status = "empty"
)

// Unit is one source/target pair under validation.
type Unit struct {
	ID         string            `yaml:"id" json:"id"`
	ExternalID string            `yaml:"external_id,omitempty" json:"external_id,omitempty"`
	Source     Segment           `yaml:"source" json:"source"`
	Target     Segment           `yaml:"target" json:"target"`
	Status     Status            `yaml:"status,omitempty" json:"status,omitempty"`
	Locked     bool              `yaml:"locked,omitempty" json:"locked,omitempty"`
	SourceLang string            `yaml:"source_lang,omitempty" json:"source_lang,omitempty"`
	TargetLang string            `yaml:"target_lang,omitempty" json:"target_lang,omitempty"`
	Note       string            `yaml:"note,omitempty" json:"note,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Issues     []Issue           `yaml:"issues,omitempty" json:"issues,omitempty"`
}

// AddIssues appends issues to the unit. Existing issues are never removed.
func (u *Unit) AddIssues(issues ...Issue) {
	u.Issues = append(u.Issues, issues...)
}

// ActiveIssues returns the issues that are not suppressed.
func (u *Unit) ActiveIssues() []Issue {
	var out []Issue
	for _, is := range u.Issues {
		if !is.Suppressed {
			out = append(out, is)
		}
	}
	return out
}

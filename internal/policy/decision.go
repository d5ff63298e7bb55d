package policy

// Status is the compliance verdict for a request.
type Status string

const (
	StatusPass           Status = "PASS"
	StatusRequiresReview Status = "REQUIRES_REVIEW"
	StatusBlocked        Status = "BLOCKED"
)

// Valid reports whether s is one of the enumerated verdicts.
func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusRequiresReview, StatusBlocked:
		return true
	}
	return false
}

// Decision is the outcome of evaluating a request against the selected
// policy documents.
type Decision struct {
	Status       Status   `json:"status"`
	Violations   []string `json:"violations,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	Requirements []string `json:"requirements,omitempty"`

	// AppliedPolicies lists the identifiers of the documents the verdict
	// was evaluated against.
	AppliedPolicies []string `json:"applied_policies,omitempty"`

	// Selection records how phase 1 narrowed the document set.
	Selection SelectionMeta `json:"selection"`
}

// SelectionMeta describes the selection phase: which identifiers were
// offered, which the interpreter picked, and which picks were dropped for
// not being in the index.
type SelectionMeta struct {
	Candidates []string `json:"candidates"`
	Selected   []string `json:"selected"`
	Dropped    []string `json:"dropped,omitempty"`
}

// Document is one externally stored compliance rule document.
// Documents are read-only; a run never mutates them.
type Document struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Rules       string `json:"rules" yaml:"rules"`
}

// Info is the index entry for a document: identifier, title and a one-line
// description, without the full rule text.
type Info struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

package model

// CheckName identifies one predicate of the validation battery
type CheckName string

const (
	CheckAccount     CheckName = "account"
	CheckTitle       CheckName = "title"
	CheckFileScope   CheckName = "file_scope"
	CheckFormatting  CheckName = "formatting"
	CheckHomepage    CheckName = "homepage"
	CheckScholarID   CheckName = "scholar_id"
	CheckNameMatch   CheckName = "name_match"
	CheckEligibility CheckName = "eligibility"

	// CheckInput reports a faculty row that cannot form a commit. It is not
	// part of the battery and replaces it for that row.
	CheckInput CheckName = "input"
)

// Checks lists every check in evaluation order
var Checks = []CheckName{
	CheckAccount,
	CheckTitle,
	CheckFileScope,
	CheckFormatting,
	CheckHomepage,
	CheckScholarID,
	CheckNameMatch,
	CheckEligibility,
}

// Diagnostic is a human-readable message for one failed check
type Diagnostic struct {
	Check   CheckName `json:"check"`
	Message string    `json:"message"`
}

// Verdict is the result of validating one commit. Valid is true iff
// Diagnostics is empty.
type Verdict struct {
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// NewVerdict builds a Verdict from the diagnostics collected in check order
func NewVerdict(diags []Diagnostic) *Verdict {
	if diags == nil {
		diags = []Diagnostic{}
	}
	return &Verdict{
		Valid:       len(diags) == 0,
		Diagnostics: diags,
	}
}

// Messages returns the diagnostic messages in order
func (v *Verdict) Messages() []string {
	msgs := make([]string, 0, len(v.Diagnostics))
	for _, d := range v.Diagnostics {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

// Failed reports whether the named check produced a diagnostic
func (v *Verdict) Failed(check CheckName) bool {
	for _, d := range v.Diagnostics {
		if d.Check == check {
			return true
		}
	}
	return false
}

// EntryVerdict pairs a validated faculty entry with its verdict
type EntryVerdict struct {
	Entry   FacultyEntry `json:"entry"`
	Verdict *Verdict     `json:"verdict"`
}

// Report aggregates the verdicts of every entry added by a change. Change
// holds the commit-level verdict when the change adds no entry.
type Report struct {
	Change  *Verdict       `json:"change,omitempty"`
	Entries []EntryVerdict `json:"entries"`
}

// Valid reports whether the commit-level verdict and every entry passed
func (r *Report) Valid() bool {
	if r.Change != nil && !r.Change.Valid {
		return false
	}
	for _, e := range r.Entries {
		if !e.Verdict.Valid {
			return false
		}
	}
	return true
}

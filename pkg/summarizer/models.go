// Package summarizer implements the grade-guided summarization loop and the
// agents it drives: a generator and a judge per summary type.
package summarizer

// SummaryType selects the summarization style.
type SummaryType string

const (
	// SummaryTypeMachine produces a dense summary meant for indexing and
	// downstream processing.
	SummaryTypeMachine SummaryType = "machine"
	// SummaryTypePretty produces a reader-facing summary.
	SummaryTypePretty SummaryType = "pretty"
)

// AllSummaryTypes lists every summary type the multi-type workflow fans out to.
func AllSummaryTypes() []SummaryType {
	return []SummaryType{SummaryTypeMachine, SummaryTypePretty}
}

// Valid reports whether t names a known summary type.
func (t SummaryType) Valid() bool {
	return t == SummaryTypeMachine || t == SummaryTypePretty
}

// SummaryInput is the request for one summarization run.
type SummaryInput struct {
	Content string `json:"content"`

	// Feedbacks carries reviewer feedback for the next generation attempt.
	Feedbacks []string `json:"feedbacks,omitempty"`

	// ToLanguage is the output language code, e.g. "en" or "de".
	ToLanguage string `json:"to_language,omitempty"`

	SummaryType SummaryType `json:"summary_type,omitempty"`

	// Iterations bounds the generate-grade loop. Zero means one.
	Iterations int `json:"iterations,omitempty"`
}

// Entity names something the judge found missing from a summary.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SummaryOutput is one generated summary.
type SummaryOutput struct {
	// ShortVersion is the summary body in Markdown.
	ShortVersion string `json:"short_version"`

	// Description is a one-to-three sentence overview.
	Description string `json:"description"`

	Title    string   `json:"title"`
	Tags     []string `json:"tags,omitempty"`
	Language string   `json:"language"`
}

// SummaryGrade is the judge's verdict on one summary.
type SummaryGrade struct {
	// Grade is 0 to 10, 10 best.
	Grade int `json:"grade"`

	Feedbacks      []string `json:"feedbacks"`
	GradeReasoning string   `json:"grade_reasoning"`

	// MissingEntities lists entities present in the original but absent
	// from the summary. Empty when nothing is missing.
	MissingEntities []Entity `json:"missing_entities"`
}

// GradeContext is the judge's input: the summary under review plus the
// original text.
type GradeContext struct {
	SummaryOutput
	OriginalText string `json:"original_text"`
}

// InternalSummaryResult is the full result of one refinement loop, including
// every candidate and grade. It is not exposed in API responses.
type InternalSummaryResult struct {
	// Summary is the best candidate after all iterations.
	Summary SummaryOutput `json:"summary"`

	Grades    []SummaryGrade  `json:"grades,omitempty"`
	Summaries []SummaryOutput `json:"summaries,omitempty"`

	SummaryType SummaryType `json:"summary_type"`
}

// InternalSummariesAllResult holds the detailed results of the multi-type
// run. A nil entry marks a type whose branch failed.
type InternalSummariesAllResult struct {
	Summaries map[SummaryType]*InternalSummaryResult `json:"summaries"`
}

// SummariesResult is the public multi-type result: final outputs only, no
// grades or intermediate candidates.
type SummariesResult struct {
	Summaries map[SummaryType]*SummaryOutput `json:"summaries"`
}

// Public strips the internal detail from a multi-type result.
func (r *InternalSummariesAllResult) Public() *SummariesResult {
	out := &SummariesResult{Summaries: make(map[SummaryType]*SummaryOutput, len(r.Summaries))}
	for t, res := range r.Summaries {
		if res == nil {
			out.Summaries[t] = nil
			continue
		}
		s := res.Summary
		out.Summaries[t] = &s
	}
	return out
}

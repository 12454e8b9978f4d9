package compliance

// CheckType selects which pass threshold applies to a scoring run.
type CheckType string

const (
	CheckSubmission CheckType = "submission"
	CheckRevision   CheckType = "revision"
	CheckAmendment  CheckType = "amendment"
)

func (c CheckType) Valid() bool {
	switch c {
	case CheckSubmission, CheckRevision, CheckAmendment:
		return true
	}
	return false
}

// Thresholds are the pass marks per check type.
type Thresholds struct {
	Submission float64
	Revision   float64
	Amendment  float64
}

func (t Thresholds) For(c CheckType) float64 {
	switch c {
	case CheckRevision:
		return t.Revision
	case CheckAmendment:
		return t.Amendment
	default:
		return t.Submission
	}
}

// Principle is one named, weighted compliance rule.
type Principle struct {
	Code        string
	Name        string
	Description string
	Weight      float64
}

// PrincipleScore is one principle's result within a scoring run.
type PrincipleScore struct {
	Code      string  `json:"code"`
	Weight    float64 `json:"weight"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
	Degraded  bool    `json:"degraded,omitempty"` // evaluator failed, neutral score assigned
}

// Evaluation is the immutable result of one scoring run.
type Evaluation struct {
	CheckType      CheckType
	Threshold      float64
	Overall        float64
	Compliant      bool
	Recommendation string
	Scores         []PrincipleScore
	SafetyFlags    []string
}

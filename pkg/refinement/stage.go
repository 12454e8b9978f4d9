package refinement

import (
	"fmt"

	"communal-canon-be/internal/pkg/apperror"
)

// Stage is one step of the refinement progression. The progression is
// one-directional with no skipping and no rollback.
type Stage string

const (
	StageRaw       Stage = "raw"
	StageDraft     Stage = "draft"
	StageRefined   Stage = "refined"
	StageCanonical Stage = "canonical"
)

var stageOrder = []Stage{StageRaw, StageDraft, StageRefined, StageCanonical}

func (s Stage) Valid() bool {
	switch s {
	case StageRaw, StageDraft, StageRefined, StageCanonical:
		return true
	}
	return false
}

// Next returns the successor stage. ok is false at the end of the progression.
func (s Stage) Next() (next Stage, ok bool) {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return "", false
}

func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown refinement stage %q", raw)
	}
	return s, nil
}

// ValidateAdvance enforces that target is exactly the successor of current.
func ValidateAdvance(current, target Stage) error {
	if !target.Valid() {
		return apperror.Validation(apperror.CodeInvalidTransition,
			fmt.Sprintf("unknown target stage %q", string(target)))
	}
	next, ok := current.Next()
	if !ok {
		return apperror.Validation(apperror.CodeInvalidTransition,
			fmt.Sprintf("stage %s is final and cannot advance", current))
	}
	if target != next {
		return apperror.Validation(apperror.CodeInvalidTransition,
			fmt.Sprintf("cannot advance from %s to %s, next stage is %s", current, target, next))
	}
	return nil
}

// Instructions returns the rewriting brief for a target stage. Each later
// stage demands more compression and poeticism while preserving meaning.
func Instructions(target Stage) string {
	switch target {
	case StageDraft:
		return "Produce a clean first draft: fix grammar and flow, keep the author's wording and meaning intact."
	case StageRefined:
		return "Tighten the draft: remove redundancy, sharpen imagery, aim for roughly two-thirds of the length while preserving every idea."
	case StageCanonical:
		return "Produce the canonical form: concise, cadenced, memorable phrasing suitable for recitation. Meaning must survive unchanged."
	default:
		return ""
	}
}

package refinement

import (
	"testing"

	"communal-canon-be/internal/pkg/apperror"
)

func TestStageNext(t *testing.T) {
	tests := []struct {
		stage  Stage
		next   Stage
		wantOk bool
	}{
		{StageRaw, StageDraft, true},
		{StageDraft, StageRefined, true},
		{StageRefined, StageCanonical, true},
		{StageCanonical, "", false},
	}

	for _, tt := range tests {
		next, ok := tt.stage.Next()
		if ok != tt.wantOk || next != tt.next {
			t.Errorf("%s.Next() = (%s, %v), want (%s, %v)", tt.stage, next, ok, tt.next, tt.wantOk)
		}
	}
}

func TestValidateAdvance(t *testing.T) {
	tests := []struct {
		name    string
		current Stage
		target  Stage
		wantErr bool
	}{
		{"raw to draft", StageRaw, StageDraft, false},
		{"draft to refined", StageDraft, StageRefined, false},
		{"refined to canonical", StageRefined, StageCanonical, false},
		{"skip a stage", StageRaw, StageRefined, true},
		{"skip to canonical", StageRaw, StageCanonical, true},
		{"rollback", StageRefined, StageDraft, true},
		{"same stage", StageDraft, StageDraft, true},
		{"advance past final", StageCanonical, StageCanonical, true},
		{"unknown target", StageRaw, Stage("polished"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdvance(tt.current, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAdvance(%s, %s) error = %v, wantErr %v", tt.current, tt.target, err, tt.wantErr)
			}
			if err != nil && apperror.CodeOf(err) != apperror.CodeInvalidTransition {
				t.Errorf("error code = %q, want %q", apperror.CodeOf(err), apperror.CodeInvalidTransition)
			}
		})
	}
}

func TestParseStage(t *testing.T) {
	if _, err := ParseStage("draft"); err != nil {
		t.Errorf("ParseStage(draft) unexpected error: %v", err)
	}
	if _, err := ParseStage("final"); err == nil {
		t.Error("ParseStage(final) expected error")
	}
}

func TestInstructionsCoverAllAdvanceTargets(t *testing.T) {
	for _, stage := range []Stage{StageDraft, StageRefined, StageCanonical} {
		if Instructions(stage) == "" {
			t.Errorf("Instructions(%s) is empty", stage)
		}
	}
}

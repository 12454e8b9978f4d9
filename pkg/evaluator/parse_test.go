package evaluator

import (
	"testing"
)

func TestDecodeStrict(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantScore float64
		wantErr   bool
	}{
		{
			name:      "bare object",
			raw:       `{"score": 0.85, "rationale": "clear and kind"}`,
			wantScore: 0.85,
		},
		{
			name:      "markdown fenced",
			raw:       "```json\n{\"score\": 0.5, \"rationale\": \"ok\"}\n```",
			wantScore: 0.5,
		},
		{
			name:      "prose wrapped",
			raw:       "Here is my evaluation:\n{\"score\": 0.92, \"rationale\": \"strong\"}\nHope that helps!",
			wantScore: 0.92,
		},
		{
			name:    "no object",
			raw:     "I would rate this about 0.7 out of 1.",
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			raw:     `{"score": 0.7, "rationale": "fine", "confidence": 0.9}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			raw:     `{"score": 0.7, "rationale": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp judgmentResponse
			err := decodeStrict(tt.raw, &resp)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("decodeStrict(%q) expected error, got %+v", tt.raw, resp)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeStrict(%q) unexpected error: %v", tt.raw, err)
			}
			if resp.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", resp.Score, tt.wantScore)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.71, 0.71},
		{1, 1},
		{1.3, 1},
	}

	for _, tt := range tests {
		if got := clampScore(tt.in); got != tt.want {
			t.Errorf("clampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package consensus

import (
	"testing"
)

func TestPanelSize(t *testing.T) {
	tests := []struct {
		eligible int
		want     int
	}{
		{0, 5},
		{3, 5},
		{5, 5},
		{12, 12},
		{50, 50},
	}
	for _, tt := range tests {
		if got := PanelSize(tt.eligible); got != tt.want {
			t.Errorf("PanelSize(%d) = %d, want %d", tt.eligible, got, tt.want)
		}
	}
}

func TestSplitPanel(t *testing.T) {
	t.Run("size 7", func(t *testing.T) {
		counts := SplitPanel(7)
		want := map[PanelCategory]int{
			CategoryTradition:  3, // round(7*0.4)
			CategoryFunction:   2, // round(7*0.3)
			CategoryContrarian: 1, // round(7*0.2)
			CategoryMeta:       1, // remainder
		}
		for cat, n := range want {
			if counts[cat] != n {
				t.Errorf("counts[%s] = %d, want %d", cat, counts[cat], n)
			}
		}
	})

	for _, size := range []int{5, 6, 7, 10, 13, 25, 50} {
		counts := SplitPanel(size)
		total := 0
		for cat, n := range counts {
			if n < 1 {
				t.Errorf("size %d: category %s has %d members, want >= 1", size, cat, n)
			}
			total += n
		}
		if total != size {
			t.Errorf("size %d: counts sum to %d", size, total)
		}
	}
}

func TestBuildPanel(t *testing.T) {
	members := BuildPanel(13)
	if len(members) != 13 {
		t.Fatalf("got %d members, want 13", len(members))
	}

	// Voter IDs must be unique within the session.
	seen := make(map[string]bool)
	for _, m := range members {
		if seen[m.VoterID] {
			t.Errorf("duplicate voter id %s", m.VoterID)
		}
		seen[m.VoterID] = true
		if m.Perspective == "" {
			t.Errorf("member %s has empty perspective", m.VoterID)
		}
	}

	// Tradition pool has 4 entries; a panel of 13 asks it for 5, so the pool
	// must cycle back to its first perspective.
	var tradition []PanelMember
	for _, m := range members {
		if m.Category == CategoryTradition {
			tradition = append(tradition, m)
		}
	}
	if len(tradition) != 5 {
		t.Fatalf("got %d tradition members for size 13, want 5", len(tradition))
	}
	if tradition[4].Perspective != tradition[0].Perspective {
		t.Error("expected pool cycling for the fifth tradition member")
	}
}

package consensus

import (
	"fmt"
	"math"
)

// Fixed perspective pools per category. Cycled when a session requests more
// members than a pool holds.
var perspectivePools = map[PanelCategory][]string{
	CategoryTradition: {
		"elder keeper of received texts",
		"liturgical historian",
		"guardian of established doctrine",
		"scholar of canonical precedent",
	},
	CategoryFunction: {
		"teacher who will recite this aloud",
		"translator concerned with both tongues",
		"newcomer reading the canon for the first time",
	},
	CategoryContrarian: {
		"devil's advocate against inclusion",
		"skeptic of poetic embellishment",
	},
	CategoryMeta: {
		"steward of the canon's overall coherence",
		"observer of the governance process itself",
	},
}

// panelRatios: tradition 40%, function 30%, contrarian 20%, meta takes the
// remainder so the counts always sum to the panel size.
var panelRatios = []struct {
	category PanelCategory
	ratio    float64
}{
	{CategoryTradition, 0.4},
	{CategoryFunction, 0.3},
	{CategoryContrarian, 0.2},
}

// PanelMember is one synthesized automated voter, generated fresh per session.
type PanelMember struct {
	Category    PanelCategory
	Perspective string
	VoterID     string
}

// PanelSize returns the automated panel size for a session: at least 5, and
// never outnumbered by the eligible human electorate.
func PanelSize(eligibleHumanCount int) int {
	if eligibleHumanCount > 5 {
		return eligibleHumanCount
	}
	return 5
}

// SplitPanel distributes size members across the four categories at the fixed
// ratios. Every category gets at least one member; meta absorbs the rounding
// remainder, borrowing from the largest ratio category when the remainder
// would leave it empty.
func SplitPanel(size int) map[PanelCategory]int {
	counts := make(map[PanelCategory]int, 4)

	used := 0
	for _, r := range panelRatios {
		n := int(math.Round(float64(size) * r.ratio))
		if n < 1 {
			n = 1
		}
		counts[r.category] = n
		used += n
	}

	meta := size - used
	for meta < 1 {
		// Borrow one from the largest non-meta category that can spare it.
		largest := PanelCategory("")
		for _, r := range panelRatios {
			if counts[r.category] > 1 && (largest == "" || counts[r.category] > counts[largest]) {
				largest = r.category
			}
		}
		if largest == "" {
			break
		}
		counts[largest]--
		meta++
	}
	counts[CategoryMeta] = meta

	return counts
}

// BuildPanel synthesizes the concrete member list for a session, cycling each
// category's perspective pool as needed. VoterIDs are stable within a session
// so the one-vote-per-identity rule applies to panel members too.
func BuildPanel(size int) []PanelMember {
	counts := SplitPanel(size)

	members := make([]PanelMember, 0, size)
	for _, r := range append(panelRatios, struct {
		category PanelCategory
		ratio    float64
	}{CategoryMeta, 0}) {
		pool := perspectivePools[r.category]
		for i := 0; i < counts[r.category]; i++ {
			perspective := pool[i%len(pool)]
			members = append(members, PanelMember{
				Category:    r.category,
				Perspective: perspective,
				VoterID:     fmt.Sprintf("panel:%s:%d", r.category, i+1),
			})
		}
	}
	return members
}

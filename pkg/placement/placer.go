package placement

import (
	"context"
	"fmt"

	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/pkg/evaluator"
)

// ChapterStat summarizes one published chapter for placement.
type ChapterStat struct {
	Chapter    int
	Theme      string
	VerseCount int
	MaxVerse   int
}

// Catalog is the read view of the published canon the placer needs.
type Catalog interface {
	ChapterStats(ctx context.Context) ([]ChapterStat, error)
	RefExists(ctx context.Context, ref string) (bool, error)
}

// Spot is a resolved, collision-checked position for a new entry.
type Spot struct {
	Chapter    int
	Verse      int
	Ref        string // "{chapter}:{verse}"
	Theme      string
	NewChapter bool
	Fallback   bool // analyst failed, deterministic fallback used
}

// Placer chooses where approved content lives. The analyst picks a chapter;
// if it fails, placement falls back deterministically to the largest existing
// chapter. A ref collision is a hard error, never auto-resolved.
type Placer struct {
	analyst evaluator.PlacementAnalyst
	logger  logger.ILogger
}

func NewPlacer(analyst evaluator.PlacementAnalyst, logger logger.ILogger) *Placer {
	return &Placer{analyst: analyst, logger: logger}
}

func Ref(chapter, verse int) string {
	return fmt.Sprintf("%d:%d", chapter, verse)
}

func (p *Placer) Place(ctx context.Context, text string, catalog Catalog, verseOverride *int) (*Spot, error) {
	stats, err := catalog.ChapterStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("chapter stats: %w", err)
	}

	spot := p.choose(ctx, text, stats)

	if verseOverride != nil {
		if *verseOverride < 1 {
			return nil, apperror.Validation("INVALID_VERSE", fmt.Sprintf("verse override %d out of range", *verseOverride))
		}
		spot.Verse = *verseOverride
	}
	spot.Ref = Ref(spot.Chapter, spot.Verse)

	exists, err := catalog.RefExists(ctx, spot.Ref)
	if err != nil {
		return nil, fmt.Errorf("ref lookup: %w", err)
	}
	if exists {
		return nil, apperror.Conflict(apperror.CodeRefCollision,
			fmt.Sprintf("entry %s already exists", spot.Ref))
	}

	return spot, nil
}

func (p *Placer) choose(ctx context.Context, text string, stats []ChapterStat) *Spot {
	infos := make([]evaluator.ChapterInfo, len(stats))
	byChapter := make(map[int]ChapterStat, len(stats))
	maxChapter := 0
	for i, s := range stats {
		infos[i] = evaluator.ChapterInfo{Chapter: s.Chapter, Theme: s.Theme, VerseCount: s.VerseCount}
		byChapter[s.Chapter] = s
		if s.Chapter > maxChapter {
			maxChapter = s.Chapter
		}
	}

	decision, err := p.analyst.Analyze(ctx, text, infos)
	if err != nil {
		p.logger.Warn("PLACEMENT", "Placement analyst failed, using largest-chapter fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return p.fallback(stats, maxChapter)
	}

	if decision.NewChapter {
		return &Spot{Chapter: maxChapter + 1, Verse: 1, Theme: decision.Theme, NewChapter: true}
	}

	stat, ok := byChapter[decision.Chapter]
	if !ok {
		// Analyst named a chapter that does not exist; treat like a failure.
		p.logger.Warn("PLACEMENT", "Placement analyst chose unknown chapter, using fallback", map[string]interface{}{
			"chapter": decision.Chapter,
		})
		return p.fallback(stats, maxChapter)
	}

	theme := decision.Theme
	if theme == "" {
		theme = stat.Theme
	}
	return &Spot{Chapter: stat.Chapter, Verse: stat.MaxVerse + 1, Theme: theme}
}

// fallback places into the chapter with the most verses; an empty canon
// starts chapter 1.
func (p *Placer) fallback(stats []ChapterStat, maxChapter int) *Spot {
	if len(stats) == 0 {
		return &Spot{Chapter: 1, Verse: 1, NewChapter: true, Fallback: true}
	}
	largest := stats[0]
	for _, s := range stats[1:] {
		if s.VerseCount > largest.VerseCount {
			largest = s
		}
	}
	return &Spot{Chapter: largest.Chapter, Verse: largest.MaxVerse + 1, Theme: largest.Theme, Fallback: true}
}

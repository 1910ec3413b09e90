package filter

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/dnovikov/defect-inspector/internal/entity"
)

// BatchSize is the fixed number of pages scored between rate-limit pauses.
// Batch boundaries never influence the scores themselves.
const BatchSize = 5

type Config struct {
	ScoreThreshold float64       // minimum similarity to keep a page, default 0.5
	TopLimit       int           // maximum pages selected, default 10
	BatchDelay     time.Duration // pause between scoring batches; zero in tests
}

type Filter struct {
	router *Router
	cfg    Config
	logger *slog.Logger
}

func New(router *Router, cfg Config, logger *slog.Logger) *Filter {
	if cfg.ScoreThreshold <= 0 {
		cfg.ScoreThreshold = 0.5
	}
	if cfg.TopLimit <= 0 {
		cfg.TopLimit = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{router: router, cfg: cfg, logger: logger}
}

// Score produces one PageRelevanceScore per page, in page-number order.
// Pages are processed in fixed-size sequential batches with an inter-batch
// pause to respect the similarity capability's rate limits. Empty pages are
// reported unmatched without an embedding call.
func (f *Filter) Score(ctx context.Context, doc *entity.Document) ([]entity.PageRelevanceScore, error) {
	start := time.Now()
	f.logger.Info("filter.score.start", "filename", doc.Filename, "pages", doc.TotalPages())

	scores := make([]entity.PageRelevanceScore, 0, doc.TotalPages())
	pages := doc.Pages
	for i := 0; i < len(pages); i += BatchSize {
		end := i + BatchSize
		if end > len(pages) {
			end = len(pages)
		}
		for _, page := range pages[i:end] {
			score := entity.PageRelevanceScore{PageNumber: page.PageNumber}
			if page.IsEmpty() {
				f.logger.Debug("filter.score.empty_page", "page", page.PageNumber)
				scores = append(scores, score)
				continue
			}
			label, sim, err := f.router.Route(ctx, page.FullText)
			if err != nil {
				return nil, err
			}
			if label != "" {
				score.MatchedLabel = RouteName
				score.Similarity = sim
				score.Matched = true
			}
			f.logger.Debug("filter.score.page",
				"page", page.PageNumber,
				"similarity", score.Similarity,
				"matched", score.Matched,
			)
			scores = append(scores, score)
		}

		if end < len(pages) && f.cfg.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.cfg.BatchDelay):
			}
		}
	}

	f.logger.Info("filter.score.ok",
		"filename", doc.Filename,
		"pages", len(scores),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return scores, nil
}

// Select applies the configured threshold and top limit; see SelectPages.
func (f *Filter) Select(scores []entity.PageRelevanceScore) []int {
	selected := SelectPages(scores, f.cfg.ScoreThreshold, f.cfg.TopLimit)
	f.logger.Info("filter.select.ok", "relevant_pages", selected)
	return selected
}

// SelectPages keeps matched pages with similarity >= threshold, orders them
// by similarity descending (stable, so equal scores keep page order),
// truncates to topLimit and returns the page numbers sorted ascending.
func SelectPages(scores []entity.PageRelevanceScore, threshold float64, topLimit int) []int {
	kept := make([]entity.PageRelevanceScore, 0, len(scores))
	for _, s := range scores {
		if s.Matched && s.Similarity >= threshold {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Similarity > kept[j].Similarity
	})
	if topLimit > 0 && len(kept) > topLimit {
		kept = kept[:topLimit]
	}
	pages := make([]int, len(kept))
	for i, s := range kept {
		pages[i] = s.PageNumber
	}
	sort.Ints(pages)
	return pages
}

// LimitByRelevance re-filters an already-selected page set with the defect
// stage's own threshold and caps it to at most limit pages, keeping the
// highest-similarity ones (ties go to the lower page number). Survivors come
// back in ascending page order.
func LimitByRelevance(selected []int, scores []entity.PageRelevanceScore, threshold float64, limit int) []int {
	byPage := make(map[int]float64, len(scores))
	for _, s := range scores {
		byPage[s.PageNumber] = s.Similarity
	}
	kept := make([]int, 0, len(selected))
	for _, p := range selected {
		if byPage[p] >= threshold {
			kept = append(kept, p)
		}
	}
	if limit > 0 && len(kept) > limit {
		sort.SliceStable(kept, func(i, j int) bool {
			si, sj := byPage[kept[i]], byPage[kept[j]]
			if si != sj {
				return si > sj
			}
			return kept[i] < kept[j]
		})
		kept = kept[:limit]
	}
	sort.Ints(kept)
	return kept
}

// Package filter scores document pages against a fixed set of
// defect-describing utterances and selects the most relevant subset.
package filter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/philippgille/chromem-go"

	"github.com/dnovikov/defect-inspector/internal/common"
	"github.com/dnovikov/defect-inspector/internal/embedding"
)

// RouteName labels pages matched by the utterance set.
const RouteName = "problems"

// Router answers "how close is this text to the nearest utterance". The
// utterance vectors live in an in-memory chromem collection built once at
// construction; routing is then one embedding call plus a local cosine
// nearest-neighbor lookup.
type Router struct {
	embedder embedding.Embedder
	col      *chromem.Collection
	logger   *slog.Logger
}

func NewRouter(ctx context.Context, embedder embedding.Embedder, utterances []string, logger *slog.Logger) (*Router, error) {
	if len(utterances) == 0 {
		return nil, common.NewAppError(common.ErrInvalidInput, "utterance set must not be empty", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	vecs, err := embedder.EmbedBatch(ctx, utterances)
	if err != nil {
		return nil, common.NewAppError(common.ErrFilterService, "embedding utterance set failed", err)
	}

	db := chromem.NewDB()
	col, err := db.CreateCollection(RouteName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create route collection: %w", err)
	}
	ids := make([]string, len(utterances))
	for i := range utterances {
		ids[i] = fmt.Sprintf("utterance-%d", i)
	}
	if err := col.Add(ctx, ids, vecs, nil, utterances); err != nil {
		return nil, fmt.Errorf("seed route collection: %w", err)
	}

	logger.Debug("filter.router.ready", "route", RouteName, "utterances", len(utterances))
	return &Router{embedder: embedder, col: col, logger: logger}, nil
}

// Route embeds the text and returns the nearest utterance with its cosine
// similarity. Pure function of the text given fixed embeddings.
func (r *Router) Route(ctx context.Context, text string) (utterance string, similarity float64, err error) {
	qv, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return "", 0, common.NewAppError(common.ErrFilterService, "embedding page text failed", err)
	}
	results, err := r.col.QueryEmbedding(ctx, qv, 1, nil, nil)
	if err != nil {
		return "", 0, common.NewAppError(common.ErrFilterService, "route lookup failed", err)
	}
	if len(results) == 0 {
		return "", 0, nil
	}
	return results[0].Content, float64(results[0].Similarity), nil
}

package async

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnovikov/defect-inspector/internal/entity"
	"github.com/dnovikov/defect-inspector/internal/llm"
	"github.com/dnovikov/defect-inspector/internal/pipeline"
)

type stubSource struct{ runs *atomic.Int32 }

func (s *stubSource) Fetch(_ context.Context, destDir string) (string, string, error) {
	s.runs.Add(1)
	return filepath.Join(destDir, "doc.pdf"), "doc.pdf", nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, _ string, name string) (*entity.Document, error) {
	return &entity.Document{Filename: name, Pages: []entity.Page{{PageNumber: 1, FullText: "текст"}}}, nil
}

type stubFilter struct{}

func (stubFilter) Score(_ context.Context, d *entity.Document) ([]entity.PageRelevanceScore, error) {
	return []entity.PageRelevanceScore{{PageNumber: 1}}, nil
}
func (stubFilter) Select(_ []entity.PageRelevanceScore) []int { return nil }

type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeDefects(_ context.Context, _ llm.AnalyzeRequest) ([]entity.DefectRecord, []byte, llm.Usage, error) {
	return nil, nil, llm.Usage{}, nil
}

type stubAssembler struct{}

func (stubAssembler) Assemble(_ []entity.DefectRecord, dir string) (string, error) {
	return filepath.Join(dir, "out.xlsx"), nil
}

func newTestOrchestrator(t *testing.T) *pipeline.Orchestrator {
	t.Helper()
	return pipeline.NewOrchestrator(
		pipeline.Config{OutputDir: t.TempDir()},
		stubExtractor{}, stubFilter{}, stubAnalyzer{}, stubAssembler{}, nil,
	)
}

func TestRunQueueProcessesJobs(t *testing.T) {
	var runs atomic.Int32
	q := NewRunQueue(newTestOrchestrator(t), nil, WithWorkers(2), WithQueueSize(8))

	for i := 0; i < 5; i++ {
		err := q.Enqueue(context.Background(), Job{
			ID:          uuid.New(),
			Source:      &stubSource{runs: &runs},
			SubmittedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.Equal(t, int32(5), runs.Load())
}

func TestRunQueueShutdownIsIdempotent(t *testing.T) {
	q := NewRunQueue(newTestOrchestrator(t), nil, WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)
	q.Shutdown(ctx)

	// Enqueue after shutdown is a no-op, not a panic.
	err := q.Enqueue(context.Background(), Job{ID: uuid.New(), Source: &stubSource{runs: &atomic.Int32{}}})
	assert.NoError(t, err)
}

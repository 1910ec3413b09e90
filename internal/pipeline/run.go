package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dnovikov/defect-inspector/internal/entity"
	"github.com/dnovikov/defect-inspector/internal/llm"
)

// Run is the ephemeral per-run state. Owned exclusively by the Orchestrator,
// discarded once the artifact is handed back or the run fails; a retry
// starts a fresh Run from Idle.
type Run struct {
	ID        uuid.UUID
	State     State
	Dir       string
	StartedAt time.Time

	Document      *entity.Document
	Scores        []entity.PageRelevanceScore
	SelectedPages []int
	Defects       []entity.DefectRecord

	ArtifactPath  string
	FailureReason error
}

// newRun creates the run with its own timestamped artifact directory.
func newRun(outputDir string) (*Run, error) {
	id := uuid.New()
	dir := filepath.Join(outputDir, fmt.Sprintf("%s_%s",
		time.Now().Format("20060102_150405"), id.String()[:8]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	return &Run{ID: id, State: StateIdle, Dir: dir, StartedAt: time.Now()}, nil
}

// Summary reports the run outcome in caller-friendly terms.
type Summary struct {
	Filename        string
	TotalPages      int
	RelevantPages   []int
	DefectCount     int
	NoRelevantPages bool
	Usage           llm.Usage
	Elapsed         time.Duration
}

func (s Summary) String() string {
	if s.NoRelevantPages {
		return fmt.Sprintf("Документ: %s, страниц: %d. Релевантных страниц с описанием дефектов не найдено (%.1f с).",
			s.Filename, s.TotalPages, s.Elapsed.Seconds())
	}
	pages := make([]string, len(s.RelevantPages))
	for i, p := range s.RelevantPages {
		pages[i] = fmt.Sprintf("%d", p)
	}
	return fmt.Sprintf("Документ: %s, страниц: %d, релевантные страницы: %s, найдено дефектов: %d (%.1f с).",
		s.Filename, s.TotalPages, strings.Join(pages, ", "), s.DefectCount, s.Elapsed.Seconds())
}

// Result is what the caller gets back from a completed run.
type Result struct {
	ArtifactPath string
	Summary      Summary
}

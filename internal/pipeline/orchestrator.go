// Package pipeline drives the document-analysis stages in order: acquire,
// extract, filter, analyze, assemble. One Run per input document; runs are
// independent and share only read-only configuration.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dnovikov/defect-inspector/internal/acquire"
	"github.com/dnovikov/defect-inspector/internal/entity"
	"github.com/dnovikov/defect-inspector/internal/extract"
	"github.com/dnovikov/defect-inspector/internal/filter"
	"github.com/dnovikov/defect-inspector/internal/llm"
)

// PageExtractor is the page-extraction stage contract.
type PageExtractor interface {
	Extract(ctx context.Context, pdfPath, originalName string) (*entity.Document, error)
}

// RelevanceFilter is the relevance-scoring stage contract.
type RelevanceFilter interface {
	Score(ctx context.Context, doc *entity.Document) ([]entity.PageRelevanceScore, error)
	Select(scores []entity.PageRelevanceScore) []int
}

// ReportAssembler is the artifact-writing stage contract.
type ReportAssembler interface {
	Assemble(defects []entity.DefectRecord, dir string) (string, error)
}

// Config is the orchestrator's slice of the process configuration.
type Config struct {
	OutputDir       string
	OutputPageLimit int     // max pages combined into one extraction request
	ScoreThreshold  float64 // defect-stage threshold re-applied before extraction
	SaveArtifacts   bool    // persist ocr_result_*.json / full_text_*.txt
}

type Orchestrator struct {
	cfg       Config
	extractor PageExtractor
	filter    RelevanceFilter
	analyzer  llm.Analyzer
	assembler ReportAssembler
	logger    *slog.Logger
}

func NewOrchestrator(cfg Config, extractor PageExtractor, f RelevanceFilter, analyzer llm.Analyzer, assembler ReportAssembler, logger *slog.Logger) *Orchestrator {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./result"
	}
	if cfg.OutputPageLimit <= 0 {
		cfg.OutputPageLimit = 8
	}
	if cfg.ScoreThreshold <= 0 {
		cfg.ScoreThreshold = 0.5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:       cfg,
		extractor: extractor,
		filter:    f,
		analyzer:  analyzer,
		assembler: assembler,
		logger:    logger,
	}
}

// Run executes one full pipeline for the given source. Every stage error is
// fatal to the run; there are no retries and no partial-result reuse.
func (o *Orchestrator) Run(ctx context.Context, source acquire.Source) (*Result, error) {
	run, err := newRun(o.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	log := o.logger.With("run_id", run.ID.String())
	log.Info("pipeline.run.start", "dir", run.Dir)

	o.transition(run, log, StateAcquiring)
	pdfPath, filename, err := source.Fetch(ctx, run.Dir)
	if err != nil {
		return nil, o.fail(run, log, err)
	}
	log.Info("pipeline.acquired", "path", pdfPath, "filename", filename)

	o.transition(run, log, StateExtracting)
	doc, err := o.extractor.Extract(ctx, pdfPath, filename)
	if err != nil {
		return nil, o.fail(run, log, err)
	}
	run.Document = doc
	if o.cfg.SaveArtifacts {
		if jsonPath, txtPath, aerr := extract.SaveArtifacts(doc, run.Dir); aerr != nil {
			log.Warn("pipeline.artifacts.save_failed", "error", aerr)
		} else {
			log.Debug("pipeline.artifacts.saved", "json", jsonPath, "txt", txtPath)
		}
	}

	o.transition(run, log, StateFiltering)
	scores, err := o.filter.Score(ctx, doc)
	if err != nil {
		return nil, o.fail(run, log, err)
	}
	run.Scores = scores
	run.SelectedPages = o.filter.Select(scores)

	summary := Summary{
		Filename:      doc.Filename,
		TotalPages:    doc.TotalPages(),
		RelevantPages: run.SelectedPages,
	}

	pages := filter.LimitByRelevance(run.SelectedPages, scores, o.cfg.ScoreThreshold, o.cfg.OutputPageLimit)
	if len(pages) == 0 {
		// A valid outcome, not an error: the report still materializes,
		// with headers only, and the summary says why it is empty.
		summary.NoRelevantPages = true
		log.Info("pipeline.no_relevant_pages", "filename", doc.Filename)
	} else {
		o.transition(run, log, StateAnalyzing)
		defects, _, usage, err := o.analyzer.AnalyzeDefects(ctx, llm.AnalyzeRequest{
			CombinedText: doc.CombinedText(pages),
			Filename:     doc.Filename,
			PageNumbers:  pages,
		})
		if err != nil {
			return nil, o.fail(run, log, err)
		}
		run.Defects = defects
		summary.DefectCount = len(defects)
		summary.Usage = usage
	}

	o.transition(run, log, StateAssembling)
	artifactPath, err := o.assembler.Assemble(run.Defects, run.Dir)
	if err != nil {
		return nil, o.fail(run, log, err)
	}
	run.ArtifactPath = artifactPath

	o.transition(run, log, StateDone)
	summary.Elapsed = time.Since(run.StartedAt)
	log.Info("pipeline.run.done",
		"artifact", artifactPath,
		"pages", summary.TotalPages,
		"relevant", len(summary.RelevantPages),
		"defects", summary.DefectCount,
		"prompt_tokens", summary.Usage.PromptTokens,
		"completion_tokens", summary.Usage.CompletionTokens,
		"total_tokens", summary.Usage.TotalTokens,
		"elapsed_ms", summary.Elapsed.Milliseconds(),
	)
	return &Result{ArtifactPath: artifactPath, Summary: summary}, nil
}

func (o *Orchestrator) transition(run *Run, log *slog.Logger, to State) {
	log.Debug("pipeline.state", "from", string(run.State), "to", string(to))
	run.State = to
}

func (o *Orchestrator) fail(run *Run, log *slog.Logger, err error) error {
	from := run.State
	run.State = StateFailed
	run.FailureReason = err
	log.Error("pipeline.run.failed", "stage", string(from), "error", err)
	return err
}

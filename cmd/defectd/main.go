// Command defectd watches inbox directories for inspection PDFs and runs the
// defect-analysis pipeline for each one that appears.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dnovikov/defect-inspector/internal/acquire"
	"github.com/dnovikov/defect-inspector/internal/async"
	"github.com/dnovikov/defect-inspector/internal/common"
	"github.com/dnovikov/defect-inspector/internal/embedding"
	"github.com/dnovikov/defect-inspector/internal/extract"
	"github.com/dnovikov/defect-inspector/internal/filter"
	"github.com/dnovikov/defect-inspector/internal/ingest"
	"github.com/dnovikov/defect-inspector/internal/llm/openai"
	"github.com/dnovikov/defect-inspector/internal/ocr"
	"github.com/dnovikov/defect-inspector/internal/pipeline"
	"github.com/dnovikov/defect-inspector/internal/report"
)

func main() {
	var (
		inbox    = flag.String("inbox", "", "comma-separated inbox directories to watch (required)")
		workers  = flag.Int("workers", 2, "concurrent pipeline runs")
		scan     = flag.Bool("scan", true, "process PDFs already present in the inbox on startup")
		debounce = flag.Duration("debounce", 2*time.Second, "settle time before a new file is queued")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *inbox == "" {
		fmt.Fprintln(os.Stderr, "Error: --inbox is required")
		os.Exit(1)
	}
	roots := strings.Split(*inbox, ",")

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("pipeline setup failed", "error", err)
		os.Exit(1)
	}

	queue := async.NewRunQueue(orch, logger, async.WithWorkers(*workers))

	files, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       roots,
		InitialScan: *scan,
		Debounce:    *debounce,
	})
	if err != nil {
		logger.Error("watcher start failed", "error", err)
		os.Exit(1)
	}
	logger.Info("watching for documents", "roots", roots, "workers", *workers)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			queue.Shutdown(shutdownCtx)
			cancel()
			return
		case path, ok := <-files:
			if !ok {
				continue
			}
			_ = queue.Enqueue(ctx, async.Job{
				ID:          uuid.New(),
				Source:      &acquire.LocalFile{Path: path},
				SubmittedAt: time.Now(),
			})
		case werr, ok := <-errs:
			if ok && werr != nil {
				logger.Warn("watcher error", "error", werr)
			}
		}
	}
}

func buildPipeline(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*pipeline.Orchestrator, error) {
	utterances, err := filter.LoadUtterances(cfg.Filter.UtterancesFile)
	if err != nil {
		return nil, err
	}

	embedder := embedding.NewClient(embedding.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.EmbeddingModel,
		Timeout: cfg.OpenAI.Timeout,
	}, logger)

	router, err := filter.NewRouter(ctx, embedder, utterances, logger)
	if err != nil {
		return nil, err
	}
	relevance := filter.New(router, filter.Config{
		ScoreThreshold: cfg.Filter.ScoreThreshold,
		TopLimit:       cfg.Filter.TopLimit,
		BatchDelay:     cfg.Filter.BatchDelay,
	}, logger)

	engine := ocr.NewExtractor(ocr.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, logger)
	extractor := extract.New(engine, cfg.OCR.Language, logger)

	analyzer := openai.NewClient(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.ChatModel,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
	}, logger)

	assembler := report.NewAssembler(logger)

	return pipeline.NewOrchestrator(pipeline.Config{
		OutputDir:       cfg.Output.Dir,
		OutputPageLimit: cfg.Analysis.OutputPageLimit,
		ScoreThreshold:  cfg.Analysis.ScoreThreshold,
		SaveArtifacts:   true,
	}, extractor, relevance, analyzer, assembler, logger), nil
}

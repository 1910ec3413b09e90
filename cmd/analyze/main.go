// Command analyze runs the defect-analysis pipeline once for a local PDF or
// a share link and prints the summary and artifact path.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dnovikov/defect-inspector/internal/acquire"
	"github.com/dnovikov/defect-inspector/internal/common"
	"github.com/dnovikov/defect-inspector/internal/embedding"
	"github.com/dnovikov/defect-inspector/internal/extract"
	"github.com/dnovikov/defect-inspector/internal/filter"
	"github.com/dnovikov/defect-inspector/internal/llm/openai"
	"github.com/dnovikov/defect-inspector/internal/ocr"
	"github.com/dnovikov/defect-inspector/internal/pipeline"
	"github.com/dnovikov/defect-inspector/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file    = flag.String("file", "", "path to a local PDF")
		url     = flag.String("url", "", "share link or direct URL to a PDF")
		out     = flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if (*file == "") == (*url == "") {
		printError("Error: exactly one of --file or --url is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	orch, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("pipeline setup failed", "error", err)
		printError("Ошибка: %s\n", common.UserMessage(err))
		os.Exit(1)
	}

	input := *file
	if *url != "" {
		input = *url
	}
	source := acquire.ParseSource(input, acquire.URLOptions{
		MaxBytes: cfg.Acquire.MaxDownloadBytes,
		Timeout:  cfg.Acquire.Timeout,
	})

	res, err := orch.Run(ctx, source)
	if err != nil {
		printError("Ошибка: %s\n", common.UserMessage(err))
		os.Exit(1)
	}

	fmt.Println(res.Summary.String())
	fmt.Printf("Отчет: %s\n", res.ArtifactPath)
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

// Command runocr extracts page text from a PDF without the rest of the
// pipeline. Useful for checking what the OCR toolchain sees.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dnovikov/defect-inspector/internal/common"
	"github.com/dnovikov/defect-inspector/internal/extract"
	"github.com/dnovikov/defect-inspector/internal/ocr"
)

func main() {
	var (
		file = flag.String("file", "", "path to a PDF (required)")
		out  = flag.String("out", ".", "directory for the extraction artifacts")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	pages, err := ocr.PageCount(*file)
	if err != nil {
		logger.Error("not a readable PDF", "path", *file, "error", err)
		os.Exit(1)
	}
	logger.Info("document opened", "path", *file, "pages", pages)

	cfg := common.LoadConfig()
	engine := ocr.NewExtractor(ocr.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, logger)
	extractor := extract.New(engine, cfg.OCR.Language, logger)

	doc, err := extractor.Extract(context.Background(), *file, *file)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	jsonPath, txtPath, err := extract.SaveArtifacts(doc, *out)
	if err != nil {
		logger.Error("saving artifacts failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("pages: %d\n", doc.TotalPages())
	fmt.Printf("json:  %s\n", jsonPath)
	fmt.Printf("text:  %s\n", txtPath)
}

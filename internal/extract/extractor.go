// Package extract turns a PDF into an ordered, page-complete Document.
package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/dnovikov/defect-inspector/internal/common"
	"github.com/dnovikov/defect-inspector/internal/entity"
	"github.com/dnovikov/defect-inspector/internal/ocr"
)

type Extractor struct {
	engine   ocr.Engine
	language string
	logger   *slog.Logger
}

func New(engine ocr.Engine, language string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if language == "" {
		language = "rus"
	}
	return &Extractor{engine: engine, language: language, logger: logger}
}

// Extract runs the OCR capability and groups its fragments into a Document
// with pages 1..P, P being the PDF's page count. Pages without fragments
// still appear, with empty text. Idempotent and re-runnable.
func (e *Extractor) Extract(ctx context.Context, pdfPath, originalName string) (*entity.Document, error) {
	start := time.Now()
	e.logger.Info("extract.start", "path", pdfPath, "filename", originalName)

	fragments, total, err := e.engine.ExtractPages(ctx, pdfPath, e.language)
	if err != nil {
		return nil, common.NewAppError(common.ErrExtraction, "OCR failed for "+originalName, err)
	}

	doc := buildDocument(originalName, fragments, total)
	e.logger.Info("extract.ok",
		"filename", originalName,
		"pages", doc.TotalPages(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}

// buildDocument groups fragments by page, preserving fragment order, and
// materializes every page number from 1 to totalPages.
func buildDocument(filename string, fragments []ocr.PageFragment, totalPages int) *entity.Document {
	byPage := make(map[int][]entity.TextElement, totalPages)
	for _, f := range fragments {
		if f.PageNumber < 1 || f.PageNumber > totalPages {
			continue
		}
		byPage[f.PageNumber] = append(byPage[f.PageNumber], entity.TextElement{
			Category: f.Category,
			Content:  f.Content,
		})
	}

	pages := make([]entity.Page, 0, totalPages)
	for n := 1; n <= totalPages; n++ {
		pages = append(pages, entity.NewPage(n, byPage[n]))
	}
	return &entity.Document{Filename: filename, Pages: pages}
}

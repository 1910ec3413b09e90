// Package ocr extracts page-structured text from a PDF. Digital PDFs are
// read through their text layer; scanned ones are rasterized with pdftoppm
// and recognized with tesseract.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// PageFragment is one raw text fragment attributed to a source page.
type PageFragment struct {
	PageNumber int
	Category   string
	Content    string
}

// Engine is the OCR capability the page extractor depends on.
type Engine interface {
	// ExtractPages returns page-grouped fragments and the total page count.
	// Fragment order within a page is the order of recognition.
	ExtractPages(ctx context.Context, pdfPath string, language string) ([]PageFragment, int, error)
}

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	DPI       int    // rasterization DPI for scanned PDFs, default 300
	MaxPages  int    // 0 = no limit

	// MinTextChars is the per-page character count below which the text
	// layer is considered absent and the OCR fallback kicks in.
	MinTextChars int
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = 32
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// PageCount opens the PDF just far enough to count pages. Cheap validation
// before any OCR work.
func PageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return r.NumPage(), nil
}

func (e *Extractor) ExtractPages(ctx context.Context, pdfPath string, language string) ([]PageFragment, int, error) {
	start := time.Now()

	pageTexts, total, err := e.textLayer(pdfPath)
	if err != nil {
		return nil, 0, err
	}
	if e.cfg.MaxPages > 0 && total > e.cfg.MaxPages {
		total = e.cfg.MaxPages
	}

	if !e.hasUsableTextLayer(pageTexts) {
		e.logger.Info("ocr.fallback.raster", "path", pdfPath, "pages", total)
		pageTexts, err = e.rasterOCR(ctx, pdfPath, total, language)
		if err != nil {
			return nil, 0, err
		}
	}

	var fragments []PageFragment
	for n := 1; n <= total; n++ {
		fragments = append(fragments, Categorize(n, pageTexts[n])...)
	}

	e.logger.Info("ocr.extract.ok",
		"path", pdfPath,
		"pages", total,
		"fragments", len(fragments),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fragments, total, nil
}

// textLayer reads each page's embedded text. Pages without a text layer
// yield empty strings.
func (e *Extractor) textLayer(path string) (map[int]string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	texts := make(map[int]string, total)
	for n := 1; n <= total; n++ {
		if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
			break
		}
		p := r.Page(n)
		if p.V.IsNull() {
			texts[n] = ""
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			// A broken page is not fatal; the raster fallback may still read it.
			e.logger.Warn("ocr.textlayer.page_failed", "page", n, "error", err)
			texts[n] = ""
			continue
		}
		texts[n] = content
	}
	return texts, total, nil
}

func (e *Extractor) hasUsableTextLayer(pageTexts map[int]string) bool {
	withText := 0
	for _, t := range pageTexts {
		if len(strings.TrimSpace(t)) >= e.cfg.MinTextChars {
			withText++
		}
	}
	return withText*2 > len(pageTexts)
}

// rasterOCR renders every page to PNG and runs tesseract on each image.
func (e *Extractor) rasterOCR(ctx context.Context, path string, total int, language string) (map[int]string, error) {
	tmpDir, err := os.MkdirTemp("", "di-ocr-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("ocr.tmpdir.cleanup_failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	if language == "" {
		language = "rus"
	}
	texts := make(map[int]string, total)
	for _, img := range matches {
		n := pageIndexFromImage(img)
		if n == 0 || (e.cfg.MaxPages > 0 && n > e.cfg.MaxPages) || n > total {
			continue
		}
		// tesseract <img> stdout -l <lang>
		out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout", "-l", language)
		if err != nil {
			return nil, fmt.Errorf("tesseract page %d: %w (%s)", n, err, truncate(string(errb), 512))
		}
		texts[n] = string(out)
	}
	return texts, nil
}

// pageIndexFromImage parses the trailing page number of pdftoppm output
// files (page-1.png, page-01.png, ...).
func pageIndexFromImage(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndex(base, "-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[i+1:])
	if err != nil {
		return 0
	}
	return n
}

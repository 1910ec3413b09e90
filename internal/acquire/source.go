// Package acquire resolves a document source (local path or URL) to a local
// PDF inside the run directory. The pipeline treats this purely as
// "give me a path".
package acquire

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dnovikov/defect-inspector/constants"
	"github.com/dnovikov/defect-inspector/internal/common"
)

// Source yields a local PDF path for one pipeline run.
type Source interface {
	Fetch(ctx context.Context, destDir string) (path string, filename string, err error)
}

// ParseSource builds a Source from user input: http(s) inputs become a URL
// download, anything else is treated as a local file path.
func ParseSource(input string, opts URLOptions) Source {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return &URL{Raw: trimmed, Options: opts}
	}
	return &LocalFile{Path: trimmed}
}

// LocalFile copies an existing PDF into the run directory so the run owns a
// stable snapshot of its input.
type LocalFile struct {
	Path string
}

func (s *LocalFile) Fetch(ctx context.Context, destDir string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "canceled", err)
	}
	if !constants.IsAllowedExt(filepath.Ext(s.Path)) {
		return "", "", common.NewAppError(common.ErrAcquisition,
			fmt.Sprintf("unsupported file type %q, expected a PDF", filepath.Ext(s.Path)), nil)
	}
	in, err := os.Open(s.Path)
	if err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "cannot open input file", err)
	}
	defer in.Close()

	filename := SafeFilename(filepath.Base(s.Path), "document")
	dest := filepath.Join(destDir, filename)
	out, err := os.Create(dest)
	if err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "cannot create run copy", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "cannot copy input file", err)
	}
	return dest, filename, nil
}

// SafeFilename strips unsafe characters and guarantees a .pdf suffix.
func SafeFilename(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	var b strings.Builder
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == '_' || ch == '-' || ch == '.':
			b.WriteRune(ch)
		case ch == ' ':
			b.WriteRune('_')
		case ch >= 0x0400 && ch <= 0x04FF: // Cyrillic block, common in expertise filenames
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 || b.String() == ".pdf" {
		return fallback + ".pdf"
	}
	return b.String()
}

// FormatSize renders a byte count for run summaries.
func FormatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d Б", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f КБ", float64(size)/1024)
	default:
		return fmt.Sprintf("%.2f МБ", float64(size)/(1024*1024))
	}
}

package ocr

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptRunner plays both OCR binaries: "pdftoppm" materializes page images
// at the prefix it is given, "tesseract" returns canned text per image.
type scriptRunner struct {
	pages int
	calls []string
}

func (r *scriptRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, name)
	switch name {
	case "pdftoppm":
		prefix := args[len(args)-1]
		for n := 1; n <= r.pages; n++ {
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, n), []byte("png"), 0o644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case "tesseract":
		img := args[0]
		return []byte("распознанный текст " + img), nil, nil
	default:
		return nil, nil, fmt.Errorf("unexpected binary %s", name)
	}
}

func TestRasterOCR(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	runner := &scriptRunner{pages: 3}
	e.runner = runner

	texts, err := e.rasterOCR(context.Background(), "in.pdf", 3, "rus")
	require.NoError(t, err)
	require.Len(t, texts, 3)
	for n := 1; n <= 3; n++ {
		assert.Contains(t, texts[n], "распознанный текст")
	}
	// One rasterization plus one recognition per page.
	assert.Equal(t, []string{"pdftoppm", "tesseract", "tesseract", "tesseract"}, runner.calls)
}

func TestRasterOCRRespectsMaxPages(t *testing.T) {
	e := NewExtractor(Config{MaxPages: 2}, nil)
	e.runner = &scriptRunner{pages: 5}

	texts, err := e.rasterOCR(context.Background(), "in.pdf", 2, "rus")
	require.NoError(t, err)
	assert.Len(t, texts, 2)
}

func TestHasUsableTextLayer(t *testing.T) {
	e := NewExtractor(Config{MinTextChars: 10}, nil)

	long := "достаточно длинный текст страницы"
	assert.True(t, e.hasUsableTextLayer(map[int]string{1: long, 2: long, 3: ""}))
	assert.False(t, e.hasUsableTextLayer(map[int]string{1: long, 2: "", 3: "", 4: ""}))
	assert.False(t, e.hasUsableTextLayer(map[int]string{1: "   ", 2: "кор."}))
}

func TestPageIndexFromImage(t *testing.T) {
	assert.Equal(t, 1, pageIndexFromImage("/tmp/x/page-1.png"))
	assert.Equal(t, 12, pageIndexFromImage("/tmp/x/page-012.png"))
	assert.Equal(t, 0, pageIndexFromImage("/tmp/x/cover.png"))
	assert.Equal(t, 0, pageIndexFromImage("/tmp/x/page-final.png"))
}

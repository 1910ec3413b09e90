package acquire

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dnovikov/defect-inspector/internal/common"
)

// URLOptions bounds remote downloads.
type URLOptions struct {
	Client   *http.Client
	MaxBytes int64
	Timeout  time.Duration
}

// URL downloads a PDF from a share link or direct URL into the run
// directory. Google Drive links are normalized to their direct-download
// form first.
type URL struct {
	Raw     string
	Options URLOptions
}

func (s *URL) Fetch(ctx context.Context, destDir string) (string, string, error) {
	client := s.Options.Client
	if client == nil {
		timeout := s.Options.Timeout
		if timeout <= 0 {
			timeout = 2 * time.Minute
		}
		client = &http.Client{Timeout: timeout}
	}

	target := NormalizeURL(s.Raw)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "invalid download URL", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "download request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", common.NewAppError(common.ErrAcquisition,
			fmt.Sprintf("download returned HTTP %d", resp.StatusCode), nil)
	}

	filename := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = filepath.Base(req.URL.Path)
	}
	filename = SafeFilename(filename, "document_"+time.Now().Format("20060102_150405"))

	dest := filepath.Join(destDir, filename)
	out, err := os.Create(dest)
	if err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "cannot create download target", err)
	}
	defer out.Close()

	var body io.Reader = resp.Body
	if s.Options.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, s.Options.MaxBytes+1)
	}
	written, err := io.Copy(out, body)
	if err != nil {
		return "", "", common.NewAppError(common.ErrAcquisition, "download interrupted", err)
	}
	if s.Options.MaxBytes > 0 && written > s.Options.MaxBytes {
		return "", "", common.NewAppError(common.ErrAcquisition,
			fmt.Sprintf("file exceeds download limit of %s", FormatSize(s.Options.MaxBytes)), nil)
	}
	return dest, filename, nil
}

func filenameFromDisposition(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	if name := params["filename*"]; name != "" {
		return name
	}
	return params["filename"]
}

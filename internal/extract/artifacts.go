package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dnovikov/defect-inspector/internal/entity"
)

// SaveArtifacts persists the extraction side artifacts: a serialized
// Document (ocr_result_<stem>.json) and the page-tagged plain text
// (full_text_<stem>.txt). Write-only debugging aids; later stages never
// read them back within the same run.
func SaveArtifacts(doc *entity.Document, dir string) (jsonPath, txtPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	stem := strings.TrimSuffix(doc.Filename, filepath.Ext(doc.Filename))

	jsonPath = filepath.Join(dir, "ocr_result_"+stem+".json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", err
	}

	txtPath = filepath.Join(dir, "full_text_"+stem+".txt")
	if err := os.WriteFile(txtPath, []byte(doc.AllText()), 0o644); err != nil {
		return "", "", err
	}
	return jsonPath, txtPath, nil
}

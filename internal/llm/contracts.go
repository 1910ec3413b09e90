// Package llm turns page text into validated defect records through a
// schema-constrained structured-extraction capability.
package llm

import (
	"context"

	"github.com/dnovikov/defect-inspector/internal/entity"
)

// AnalyzeRequest carries one combined, page-tagged text block.
type AnalyzeRequest struct {
	CombinedText string
	Filename     string
	PageNumbers  []int
}

// Usage is the token consumption the capability reported for one call.
// Zero when the call was short-circuited.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Analyzer is the interface the pipeline depends on. Implementations must
// reject responses that do not validate against the defect list schema
// rather than parse them heuristically.
type Analyzer interface {
	// AnalyzeDefects returns the extracted records, the raw JSON the
	// capability produced (for offline debugging) and the token usage of
	// the call.
	AnalyzeDefects(ctx context.Context, req AnalyzeRequest) ([]entity.DefectRecord, []byte, Usage, error)
}

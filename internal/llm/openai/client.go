package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dnovikov/defect-inspector/internal/common"
	"github.com/dnovikov/defect-inspector/internal/entity"
	"github.com/dnovikov/defect-inspector/internal/llm"
)

// AnalyzeDefects implements llm.Analyzer using chat/completions with a
// JSON-object response format. The response is validated strictly against
// the defect list schema before any field is trusted; mismatches are
// rejected, never coerced.
func (c *Client) AnalyzeDefects(ctx context.Context, req llm.AnalyzeRequest) ([]entity.DefectRecord, []byte, llm.Usage, error) {
	if len(req.PageNumbers) == 0 || strings.TrimSpace(req.CombinedText) == "" {
		// Nothing to analyze; do not spend a capability call.
		return nil, nil, llm.Usage{}, nil
	}

	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.analyze.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.CombinedText),
		"pages", req.PageNumbers,
	)

	schema := llm.BuildDefectListJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.logger.Error("llm.analyze.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, llm.Usage{}, common.NewAppError(common.ErrExtractionService, "chat completion failed", httpErr)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage llm.Usage `json:"usage"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.analyze.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, llm.Usage{}, common.NewAppError(common.ErrExtractionService, "decode openai response", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.analyze.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, cc.Usage, common.NewAppError(common.ErrExtractionService, "no choices in openai response", nil)
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		c.logger.Error("llm.analyze.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, content, cc.Usage, common.NewAppError(common.ErrExtractionSchema, "response failed schema validation", err)
	}

	var out struct {
		Defects []entity.DefectRecord `json:"defects"`
	}
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, content, cc.Usage, common.NewAppError(common.ErrExtractionSchema, "unmarshal defect list", err)
	}

	for _, d := range out.Defects {
		if err := d.Validate(); err != nil {
			return nil, content, cc.Usage, common.NewAppError(common.ErrExtractionSchema, "defect record failed validation", err)
		}
	}

	c.logger.Info("llm.analyze.ok",
		"req_id", rid,
		"defects", len(out.Defects),
		"prompt_tokens", cc.Usage.PromptTokens,
		"completion_tokens", cc.Usage.CompletionTokens,
		"total_tokens", cc.Usage.TotalTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Defects, content, cc.Usage, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("openai response body close error", "error", cerr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

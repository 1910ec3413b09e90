package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefectJSON() string {
	return `{
		"defects": [
			{
				"source_text": "выявлены трещины и сколы на плитке пола",
				"room": "Санузел",
				"location": "Пол",
				"defect": "floor_tile_cracks_chips",
				"work_type": "Плиточные работы"
			}
		]
	}`
}

func TestValidateAcceptsWellFormedResponse(t *testing.T) {
	schema := BuildDefectListJSONSchema()
	require.NoError(t, ValidateJSONAgainstSchema(schema, []byte(validDefectJSON())))
}

func TestValidateAcceptsEmptyDefectList(t *testing.T) {
	schema := BuildDefectListJSONSchema()
	require.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"defects": []}`)))
}

func TestValidateRejectsBadResponses(t *testing.T) {
	schema := BuildDefectListJSONSchema()
	cases := []struct {
		name    string
		mutate  func(string) string
	}{
		{"unknown room", func(s string) string { return strings.Replace(s, "Санузел", "Кухня", 1) }},
		{"unknown defect key", func(s string) string { return strings.Replace(s, "floor_tile_cracks_chips", "imaginary_defect", 1) }},
		{"unknown work type", func(s string) string { return strings.Replace(s, "Плиточные работы", "Кровельные работы", 1) }},
		{"empty source text", func(s string) string {
			return strings.Replace(s, "выявлены трещины и сколы на плитке пола", "", 1)
		}},
		{"missing field", func(s string) string { return strings.Replace(s, `"location": "Пол",`, "", 1) }},
		{"extra field", func(s string) string {
			return strings.Replace(s, `"room":`, `"severity": "high", "room":`, 1)
		}},
		{"missing defects key", func(string) string { return `{"items": []}` }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJSONAgainstSchema(schema, []byte(tc.mutate(validDefectJSON())))
			assert.Error(t, err)
		})
	}
}

func TestBuildUserPromptIncludesCombinedText(t *testing.T) {
	req := AnalyzeRequest{
		CombinedText: "=== Страница 3 ===\nтекст о дефектах",
		Filename:     "report.pdf",
		PageNumbers:  []int{3},
	}
	prompt := BuildUserPrompt(req)
	assert.Contains(t, prompt, "=== Страница 3 ===")
	assert.Contains(t, prompt, "текст о дефектах")
}

func TestBuildSystemPromptNamesVocabularies(t *testing.T) {
	prompt := BuildSystemPrompt()
	assert.Contains(t, prompt, "Коридор")
	assert.Contains(t, prompt, "Оконный блок")
	assert.Contains(t, prompt, "Плиточные работы")
}

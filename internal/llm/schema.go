package llm

import "github.com/dnovikov/defect-inspector/constants"

// BuildDefectListJSONSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map. We pass it to the extraction capability as a structured
// output constraint and also use it locally to validate the response.
// The controlled-vocabulary fields are enum-constrained so the model cannot
// invent rooms, defect keys or work types.
func BuildDefectListJSONSchema() map[string]any {
	record := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"source_text": map[string]any{"type": "string", "minLength": 1},
			"room":        map[string]any{"type": "string", "enum": constants.Rooms()},
			"location":    map[string]any{"type": "string", "enum": constants.Locations()},
			"defect":      map[string]any{"type": "string", "enum": constants.DefectKeys},
			"work_type":   map[string]any{"type": "string", "enum": constants.WorkTypes()},
		},
		"required": []string{"source_text", "room", "location", "defect", "work_type"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"defects": map[string]any{
				"type":  "array",
				"items": record,
			},
		},
		"required": []string{"defects"},
	}
}

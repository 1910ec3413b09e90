package llm

import (
	"strings"

	"github.com/dnovikov/defect-inspector/constants"
)

// BuildSystemPrompt composes the expert instruction for expertise-report
// analysis. The schema itself travels in a separate system message.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an experienced construction expert and technical quality control specialist.",

		"The provided text is a construction work expertise report organized by sections. " +
			"Each section focuses on a specific construction type in the premises (floor, ceiling, wall, door, window). " +
			"Each section lists specific defects identified for that construction type.",

		"Extract ALL defects from each section and structure them according to the schema fields. " +
			"Each text fragment with a technical reference (СНиП, ГОСТ, СП, ТР, СТО) is a separate defect; " +
			"one paragraph with references to different standards contains multiple defects. " +
			"General phrases without normative references are section headers, not defects.",

		"For 'source_text', copy a characteristic 10-15 word excerpt of the defect description, " +
			"preserving technical terminology and the normative reference if present.",

		"For 'room', choose one of: " + strings.Join(constants.Rooms(), ", ") +
			". If the room is not specified, use \"" + string(constants.RoomLiving) + "\".",

		"For 'location', use the construction type of the section the defect came from: " +
			strings.Join(constants.Locations(), ", ") + ".",

		"For 'defect', select the most semantically appropriate short key from the reference list in the schema enum, " +
			"based on the technical description and construction type. Use the exact key name.",

		"For 'work_type', choose the work performed when the defect appeared: " +
			strings.Join(constants.WorkTypes(), ", ") + ".",

		"Do not skip defects because they seem minor. Do not create separate records for nested details of one defect; " +
			"combine details into the main description. If a section contains no defects, produce no records for it.",

		"Return ONLY JSON that matches the provided JSON Schema. Never output null.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt wraps the combined page-tagged text block.
func BuildUserPrompt(req AnalyzeRequest) string {
	var b strings.Builder
	b.WriteString("Проанализируйте следующий объединенный текст из технического отчета")
	if req.Filename != "" {
		b.WriteString(" (файл: ")
		b.WriteString(req.Filename)
		b.WriteString(")")
	}
	b.WriteString(" и найдите все дефекты:\n\n")
	b.WriteString(req.CombinedText)
	return b.String()
}

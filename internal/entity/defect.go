package entity

import (
	"fmt"

	"github.com/dnovikov/defect-inspector/constants"
)

// DefectRecord is one structured finding extracted from document text.
// Room, Location, Defect and WorkType are drawn from controlled
// vocabularies; SourceText is a short verbatim excerpt for provenance.
// Several records may share a SourceText when one passage describes
// multiple defects.
type DefectRecord struct {
	SourceText string `json:"source_text"`
	Room       string `json:"room"`
	Location   string `json:"location"`
	Defect     string `json:"defect"`
	WorkType   string `json:"work_type"`
}

// Validate checks the controlled-vocabulary fields.
func (r DefectRecord) Validate() error {
	if r.SourceText == "" {
		return fmt.Errorf("source_text is empty")
	}
	if !constants.IsRoom(r.Room) {
		return fmt.Errorf("unknown room %q", r.Room)
	}
	if !constants.IsLocation(r.Location) {
		return fmt.Errorf("unknown location %q", r.Location)
	}
	if !constants.IsDefectKey(r.Defect) {
		return fmt.Errorf("unknown defect key %q", r.Defect)
	}
	if !constants.IsWorkType(r.WorkType) {
		return fmt.Errorf("unknown work type %q", r.WorkType)
	}
	return nil
}

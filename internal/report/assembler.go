// Package report flattens defect records into a spreadsheet artifact.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dnovikov/defect-inspector/internal/common"
	"github.com/dnovikov/defect-inspector/internal/entity"
)

const sheetName = "Анализ дефектов"

// Headers is the fixed column order of the artifact:
// {source_text, room, location, defect, work_type}.
var Headers = []string{
	"Текст из АПО/экспертизы",
	"Помещение",
	"Локализация",
	"Дефект",
	"Наименование работы",
}

type Assembler struct {
	logger *slog.Logger
}

func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Assemble writes one row per defect under a timestamp-qualified filename in
// dir and returns the artifact path. Zero defects still produce a valid
// workbook with the header row only.
func (a *Assembler) Assemble(defects []entity.DefectRecord, dir string) (string, error) {
	start := time.Now()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", common.NewAppError(common.ErrAssembly, "create output directory", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("defect_analysis_%s.xlsx", time.Now().Format("20060102_150405")))

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			a.logger.Warn("xlsx close error", "error", cerr)
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", common.NewAppError(common.ErrAssembly, "rename sheet", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for row, d := range defects {
		values := []string{d.SourceText, d.Room, d.Location, d.Defect, d.WorkType}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 48) // source excerpt
	_ = f.SetColWidth(sheetName, "B", "C", 20) // room, location
	_ = f.SetColWidth(sheetName, "D", "D", 36) // defect key
	_ = f.SetColWidth(sheetName, "E", "E", 26) // work type

	if err := f.SaveAs(path); err != nil {
		return "", common.NewAppError(common.ErrAssembly, "xlsx write", err)
	}

	a.logger.Info("report.assemble.ok",
		"path", path,
		"rows", len(defects),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return path, nil
}

package export

import (
	"fmt"

	"github.com/piwi3910/ShapeFill/internal/model"
	"github.com/xuri/excelize/v2"
)

const shapesSheet = "Shapes"

var xlsxHeaders = []interface{}{
	"ID", "Label", "Color", "X", "Y", "Stretch X", "Stretch Y",
	"Left", "Right", "Bottom", "Top", "Area", "Vertices",
}

// ExportXLSX writes one row per placed shape, in placement order, to a
// workbook with a single "Shapes" sheet.
func ExportXLSX(path string, scene *model.Scene) error {
	if scene == nil || scene.Len() == 0 {
		return fmt.Errorf("no shapes to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), shapesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(shapesSheet, "A1", &xlsxHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(xlsxHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(shapesSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, info := range CollectShapeInfos(scene) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			info.ID, info.Label, info.Color,
			info.X, info.Y, info.StretchX, info.StretchY,
			info.Bounds.Left, info.Bounds.Right, info.Bounds.Bottom, info.Bounds.Top,
			info.Area, info.Vertices,
		}
		if err := f.SetSheetRow(shapesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write shape %s: %w", info.ID, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

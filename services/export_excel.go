package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateStatementExcel creates a spreadsheet from the given ExportData and
// returns the file contents as a byte slice. The file is built fully in
// memory, so a failure leaves nothing partial behind.
func GenerateStatementExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.StatementName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Statement"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("%w: set sheet name: %v", ErrExportFailed, err)
	}

	// Column references (A through F).
	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{18, 18, 32, 32, 14, 10}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("%w: set col width %s: %v", ErrExportFailed, col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create header style: %v", ErrExportFailed, err)
	}

	// Data style: normal with borders.
	dataStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create data style: %v", ErrExportFailed, err)
	}

	// Quantity style: numeric, fixed 2 decimals, right-aligned.
	qtyFormat := "0.00"
	qtyStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		CustomNumFmt: &qtyFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create quantity style: %v", ErrExportFailed, err)
	}

	// ── Row 1: Column Headers ───────────────────────────────────────────

	for i, h := range ExportColumnLabels {
		cell := fmt.Sprintf("%s1", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	// ── Data Rows (starting row 2) ──────────────────────────────────────

	for i, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", i+2)

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.CustomCategory))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.WorkType))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Name))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Specification))
		f.SetCellValue(sheetName, "E"+rowStr, QuantityFloat(r.QuantityCents))
		f.SetCellValue(sheetName, "F"+rowStr, sanitizeExcelCell(r.Unit))

		f.SetCellStyle(sheetName, "A"+rowStr, "D"+rowStr, dataStyle)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, qtyStyle)
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, dataStyle)
	}

	// Freeze the header row.
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("%w: freeze header: %v", ErrExportFailed, err)
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: write excel: %v", ErrExportFailed, err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

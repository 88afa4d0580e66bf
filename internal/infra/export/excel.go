// Package export serializes assembled report documents into
// downloadable artifacts. Exporters are generic over the document:
// they render sections and rows and never recompute any figure.
package export

import (
	"fmt"

	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	colorPrimary = "#6C5CE7"
	colorHeader  = "#00CEC9"
	colorMuted   = "#636E72"
)

// maxColumns bounds merges and column sizing; the widest section
// (transactions) uses seven columns.
const maxColumns = 7

// ExcelExporter renders a report document as an .xlsx workbook.
type ExcelExporter struct{}

// NewExcelExporter creates the xlsx exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Format() string { return "xlsx" }

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) FileExtension() string { return "xlsx" }

// Export writes every section top to bottom on a single sheet, one
// blank row between sections.
func (e *ExcelExporter) Export(doc *domain.ReportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorPrimary}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("build header style: %w", err)
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: colorMuted},
	})
	if err != nil {
		return nil, fmt.Errorf("build section style: %w", err)
	}

	row := 1
	for _, section := range doc.Sections {
		if err := setRow(f, sheet, row, []string{section.Title}); err != nil {
			return nil, err
		}
		if err := styleRow(f, sheet, row, 1, sectionStyle); err != nil {
			return nil, err
		}
		row++

		for _, r := range section.Rows {
			if err := setRow(f, sheet, row, r.Cells); err != nil {
				return nil, err
			}
			if r.SpanColumns > 1 {
				first, _ := excelize.CoordinatesToCellName(1, row)
				last, _ := excelize.CoordinatesToCellName(r.SpanColumns, row)
				if err := f.MergeCell(sheet, first, last); err != nil {
					return nil, fmt.Errorf("merge row %d: %w", row, err)
				}
			}
			if r.IsHeader {
				style := headerStyle
				if r.SpanColumns > 1 {
					style = titleStyle
				}
				if err := styleRow(f, sheet, row, max(len(r.Cells), r.SpanColumns), style); err != nil {
					return nil, err
				}
			}
			row++
		}
		row++
	}

	for col := 1; col <= maxColumns; col++ {
		name, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheet, name, name, 18); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, width int, style int) error {
	if width < 1 {
		width = 1
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(width, row)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/signintech/gopdf"
)

// A4 layout constants, points.
const (
	pageWidth    = 595.0
	pageHeight   = 842.0
	marginX      = 40.0
	marginTop    = 50.0
	marginBottom = 60.0
	lineHeight   = 18.0
)

// PDFExporter renders a report document as a PDF. gopdf ships no
// fonts, so regular and bold TTF files are loaded once from fontDir
// at construction (Roboto-Regular.ttf / Roboto-Bold.ttf).
type PDFExporter struct {
	regular []byte
	bold    []byte
}

// NewPDFExporter loads the font pair from fontDir.
func NewPDFExporter(fontDir string) (*PDFExporter, error) {
	regular, err := os.ReadFile(filepath.Join(fontDir, "Roboto-Regular.ttf"))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := os.ReadFile(filepath.Join(fontDir, "Roboto-Bold.ttf"))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &PDFExporter{regular: regular, bold: bold}, nil
}

func (e *PDFExporter) Format() string { return "pdf" }

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) FileExtension() string { return "pdf" }

// Export renders sections top to bottom, breaking to a new page when a
// row would cross the bottom margin.
func (e *PDFExporter) Export(doc *domain.ReportDocument) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFontData("regular", e.regular); err != nil {
		return nil, fmt.Errorf("register regular font: %w", err)
	}
	if err := pdf.AddTTFFontData("bold", e.bold); err != nil {
		return nil, fmt.Errorf("register bold font: %w", err)
	}

	pdf.AddPage()
	y := marginTop

	for _, section := range doc.Sections {
		y = e.ensureSpace(&pdf, y, lineHeight*2)

		if err := pdf.SetFont("bold", "", 14); err != nil {
			return nil, err
		}
		pdf.SetTextColor(108, 92, 231)
		pdf.SetXY(marginX, y)
		if err := pdf.Cell(nil, section.Title); err != nil {
			return nil, fmt.Errorf("render section title: %w", err)
		}
		y += lineHeight * 1.5

		for _, row := range section.Rows {
			if len(row.Cells) == 0 {
				y += lineHeight
				continue
			}
			y = e.ensureSpace(&pdf, y, lineHeight)

			font, size := "regular", 10.0
			if row.IsHeader {
				font, size = "bold", 10.0
			}
			if err := pdf.SetFont(font, "", size); err != nil {
				return nil, err
			}
			pdf.SetTextColor(45, 52, 54)

			if row.SpanColumns > 1 {
				pdf.SetXY(marginX, y)
				if err := pdf.Cell(nil, joinCells(row.Cells)); err != nil {
					return nil, fmt.Errorf("render row: %w", err)
				}
			} else {
				colWidth := (pageWidth - 2*marginX) / float64(len(row.Cells))
				for i, cell := range row.Cells {
					pdf.SetXY(marginX+float64(i)*colWidth, y)
					if err := pdf.Cell(nil, cell); err != nil {
						return nil, fmt.Errorf("render cell: %w", err)
					}
				}
			}
			y += lineHeight
		}
		y += lineHeight
	}

	return pdf.GetBytesPdf(), nil
}

func (e *PDFExporter) ensureSpace(pdf *gopdf.GoPdf, y, needed float64) float64 {
	if y+needed > pageHeight-marginBottom {
		pdf.AddPage()
		return marginTop
	}
	return y
}

func joinCells(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += "  "
		}
		out += c
	}
	return out
}

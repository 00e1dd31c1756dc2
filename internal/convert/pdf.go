// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package convert

import (
	"context"
	"io"

	"github.com/go-pdf/fpdf"

	"grimm.is/compdoc/internal/configdoc"
)

const (
	pdfFont       = "Helvetica"
	pdfLabelWidth = 45.0
	pdfLineHeight = 5.0
)

// PDFConverter lays the document out as a landscape A4 PDF, one block per
// configuration row.
type PDFConverter struct{}

// Convert writes the PDF rendering of doc to w.
func (c *PDFConverter) Convert(ctx context.Context, doc *configdoc.Document, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := doc.Title
	if title == "" {
		title = DefaultTitle
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator("compdoc", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	if doc.Version != "" {
		pdf.SetFont(pdfFont, "", 10)
		pdf.CellFormat(0, 6, tr("Version "+doc.Version), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, s := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		writePDFSection(pdf, tr, s)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func writePDFSection(pdf *fpdf.Fpdf, tr func(string) string, s *configdoc.Section) {
	pdf.SetFont(pdfFont, "B", 14)
	pdf.MultiCell(0, 8, tr(s.Title), "", "L", false)
	if s.Description != "" {
		pdf.SetFont(pdfFont, "", 10)
		pdf.MultiCell(0, pdfLineHeight, tr(s.Description), "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(0, 7, "Configuration", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	for _, row := range s.Rows {
		pdf.SetFont(pdfFont, "B", 10)
		pdf.MultiCell(0, 6, tr(row.DisplayName), "", "L", false)

		fields := [][2]string{
			{configdoc.Columns[1], row.Description},
			{configdoc.Columns[2], row.Default},
			{configdoc.Columns[3], row.Condition},
			{configdoc.Columns[4], row.Path},
			{configdoc.Columns[5], row.Type},
		}
		pdf.SetFont(pdfFont, "", 9)
		for _, f := range fields {
			if f[1] == "" {
				continue
			}
			pdf.CellFormat(pdfLabelWidth, pdfLineHeight, tr(f[0]+":"), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, pdfLineHeight, tr(f[1]), "", "L", false)
		}
		pdf.Ln(2)
	}
	pdf.Ln(4)
}

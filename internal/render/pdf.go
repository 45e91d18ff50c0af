package render

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily = "Times"
	bodySize   = 12.0
	lineHeight = 6.0
)

// Accent color for level 1 and 2 headings.
const (
	accentR = 0
	accentG = 51
	accentB = 102
)

// RenderPDF converts structured text into a single page-flowing A4 document:
// level-1 headings centered, level 1-2 headings bold in the accent color,
// bullets left-aligned, contact lines centered, body paragraphs justified.
func RenderPDF(text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, block := range Parse(text) {
		switch block.Kind {
		case Heading1:
			pdf.SetTextColor(accentR, accentG, accentB)
			pdf.SetFont(fontFamily, "B", 18)
			pdf.MultiCell(0, 9, tr(block.Text), "", "C", false)
			pdf.Ln(1)

		case Heading2:
			pdf.Ln(2)
			pdf.SetTextColor(accentR, accentG, accentB)
			pdf.SetFont(fontFamily, "B", 14)
			pdf.MultiCell(0, 7, tr(block.Text), "", "L", false)
			pdf.Ln(1)

		case Heading3:
			pdf.Ln(1)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont(fontFamily, "B", bodySize)
			pdf.MultiCell(0, lineHeight, tr(block.Text), "", "L", false)

		case Bullet:
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont(fontFamily, "", bodySize)
			pdf.CellFormat(6, lineHeight, tr("•"), "", 0, "L", false, 0, "")
			writeSpans(pdf, tr, block.Spans)
			pdf.Ln(lineHeight)

		case Contact:
			pdf.SetTextColor(0, 0, 0)
			pdf.SetX(centeredX(pdf, tr, block.Spans))
			writeSpans(pdf, tr, block.Spans)
			pdf.Ln(lineHeight)

		case Paragraph:
			pdf.SetTextColor(0, 0, 0)
			if len(block.Spans) == 1 && !block.Spans[0].Bold {
				pdf.SetFont(fontFamily, "", bodySize)
				pdf.MultiCell(0, lineHeight, tr(block.Spans[0].Text), "", "J", false)
			} else {
				// The Write flow cannot justify text across style changes,
				// so paragraphs with bold runs are left-aligned.
				writeSpans(pdf, tr, block.Spans)
				pdf.Ln(lineHeight)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// centeredX returns the X offset that centers the spans, measured with each
// span's own style so bold runs keep their weight on contact lines.
func centeredX(pdf *gofpdf.Fpdf, tr func(string) string, spans []Span) float64 {
	var width float64
	for _, sp := range spans {
		style := ""
		if sp.Bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, bodySize)
		width += pdf.GetStringWidth(tr(sp.Text))
	}

	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	x := left + (pageWidth-left-right-width)/2
	if x < left {
		x = left
	}
	return x
}

func writeSpans(pdf *gofpdf.Fpdf, tr func(string) string, spans []Span) {
	for _, sp := range spans {
		style := ""
		if sp.Bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, bodySize)
		pdf.Write(lineHeight, tr(sp.Text))
	}
}

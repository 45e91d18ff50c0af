package render

import (
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeadingsAndBullet(t *testing.T) {
	blocks := Parse("# Jane Doe\n## Experience\n- Built **X** using Python")
	require.Len(t, blocks, 3)

	assert.Equal(t, Heading1, blocks[0].Kind)
	assert.Equal(t, "Jane Doe", blocks[0].Text)

	assert.Equal(t, Heading2, blocks[1].Kind)
	assert.Equal(t, "Experience", blocks[1].Text)

	assert.Equal(t, Bullet, blocks[2].Kind)
	require.Len(t, blocks[2].Spans, 3)
	assert.Equal(t, Span{Text: "Built ", Bold: false}, blocks[2].Spans[0])
	assert.Equal(t, Span{Text: "X", Bold: true}, blocks[2].Spans[1])
	assert.Equal(t, Span{Text: " using Python", Bold: false}, blocks[2].Spans[2])
}

func TestParseHeadingLevels(t *testing.T) {
	blocks := Parse("# One\n## Two\n### Three")
	require.Len(t, blocks, 3)
	assert.Equal(t, Heading1, blocks[0].Kind)
	assert.Equal(t, Heading2, blocks[1].Kind)
	assert.Equal(t, Heading3, blocks[2].Kind)
}

func TestParseBlankLinesSkipped(t *testing.T) {
	blocks := Parse("First paragraph.\n\n\nSecond paragraph.\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	assert.Equal(t, Paragraph, blocks[1].Kind)
}

func TestParseContactLine(t *testing.T) {
	blocks := Parse("Lagos, Nigeria | jane@example.com | github.com/jane")
	require.Len(t, blocks, 1)
	assert.Equal(t, Contact, blocks[0].Kind)
	assert.Equal(t, "Lagos, Nigeria | jane@example.com | github.com/jane", flatten(blocks[0].Spans))
}

func TestParseAsteriskBullet(t *testing.T) {
	blocks := Parse("* plain bullet")
	require.Len(t, blocks, 1)
	assert.Equal(t, Bullet, blocks[0].Kind)
	require.Len(t, blocks[0].Spans, 1)
	assert.False(t, blocks[0].Spans[0].Bold)
}

func TestParseBoldInParagraph(t *testing.T) {
	blocks := Parse("Worked on **xplainify-ai** and more.")
	require.Len(t, blocks, 1)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	require.Len(t, blocks[0].Spans, 3)
	assert.True(t, blocks[0].Spans[1].Bold)
	assert.Equal(t, "xplainify-ai", blocks[0].Spans[1].Text)
}

func TestParseLeadingBoldStartsWithBoldSpan(t *testing.T) {
	// Splitting "**Role**" on ** yields an empty first segment which is
	// dropped; the first remaining span is the bold one.
	blocks := Parse("**Role Name** | Company | 2024")
	require.Len(t, blocks, 1)
	require.NotEmpty(t, blocks[0].Spans)
	assert.True(t, blocks[0].Spans[0].Bold)
	assert.Equal(t, "Role Name", blocks[0].Spans[0].Text)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	text := "# Jane Doe\nLagos | jane@example.com\n## Experience\n- Built **X** using Python\n\nA justified body paragraph about the work."
	out, err := RenderPDF(text)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestCenteredXMeasuresSpansWithTheirStyle(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	spans := Parse("**Role Name** | Company | 2024")[0].Spans
	x := centeredX(pdf, tr, spans)

	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	assert.Greater(t, x, left)
	assert.Less(t, x, pageWidth-right)

	// A wider line starts further left.
	wide := Parse("**A much longer role title** | Company Name Incorporated | 2024-present")[0].Spans
	assert.Less(t, centeredX(pdf, tr, wide), x)

	// Bold glyphs are wider than regular ones, so measuring the bold run in
	// its own style shifts the start left of the all-regular measurement.
	plain := []Span{{Text: "Role Name | Company | 2024"}}
	assert.Less(t, x, centeredX(pdf, tr, plain))
}

func TestRenderPDFBoldContactLine(t *testing.T) {
	out, err := RenderPDF("# Jane Doe\n**Role Name** | Company | 2024")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPDFEmptyInput(t *testing.T) {
	out, err := RenderPDF("")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

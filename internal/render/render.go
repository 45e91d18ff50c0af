package render

import "strings"

// BlockKind classifies one line of structured text.
type BlockKind int

const (
	Heading1 BlockKind = iota + 1
	Heading2
	Heading3
	Bullet
	Contact
	Paragraph
)

// Span is a run of text with a single weight. Bold spans come from
// alternating **...** segments.
type Span struct {
	Text string
	Bold bool
}

// Block is one rendered line: a heading with plain text, or a bullet,
// contact or body line made of spans.
type Block struct {
	Kind  BlockKind
	Text  string
	Spans []Span
}

// Parse runs the single-pass, line-oriented transform over structured text.
// Blank lines separate paragraphs and produce no block. A body line
// containing a pipe is treated as a centered contact line; that is a
// heuristic inherited from the generation template, not a grammar.
func Parse(text string) []Block {
	var blocks []Block
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "), strings.HasPrefix(line, "## "), strings.HasPrefix(line, "### "):
			level := Heading1
			if strings.HasPrefix(line, "### ") {
				level = Heading3
			} else if strings.HasPrefix(line, "## ") {
				level = Heading2
			}
			clean := strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
			blocks = append(blocks, Block{Kind: level, Text: clean})

		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			blocks = append(blocks, Block{Kind: Bullet, Spans: boldSpans(line[2:])})

		case strings.Contains(line, "|"):
			blocks = append(blocks, Block{Kind: Contact, Spans: boldSpans(line)})

		default:
			blocks = append(blocks, Block{Kind: Paragraph, Spans: boldSpans(line)})
		}
	}
	return blocks
}

// boldSpans splits on ** pairs; odd-indexed segments are bold.
func boldSpans(s string) []Span {
	parts := strings.Split(s, "**")
	spans := make([]Span, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		spans = append(spans, Span{Text: part, Bold: i%2 == 1})
	}
	return spans
}

func flatten(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

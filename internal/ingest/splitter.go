package ingest

import (
	"strings"

	"github.com/google/uuid"

	"github.com/olajcodes/profile-agent/internal/models"
)

// Splitter cuts documents into overlapping windows, preferring paragraph
// boundaries, then lines, then words, before falling back to a hard cut.
// Overlap between consecutive chunks preserves context across a boundary.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: []string{"\n\n", "\n", " "},
	}
}

// Split chunks every document, propagating the source label unchanged.
func (s *Splitter) Split(documents []models.Document) []models.Chunk {
	var chunks []models.Chunk
	for _, doc := range documents {
		for _, piece := range s.splitText(doc.Content, s.separators) {
			chunks = append(chunks, models.Chunk{
				ID:      uuid.NewString(),
				Source:  doc.Source,
				Content: piece,
			})
		}
	}
	return chunks
}

func (s *Splitter) splitText(text string, separators []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{strings.TrimSpace(text)}
	}
	if len(separators) == 0 {
		return s.hardSplit(text)
	}

	sep := separators[0]
	rest := separators[1:]
	if !strings.Contains(text, sep) {
		return s.splitText(text, rest)
	}

	splits := strings.Split(text, sep)

	var final []string
	var fitting []string
	flush := func() {
		if len(fitting) > 0 {
			final = append(final, s.merge(fitting, sep)...)
			fitting = nil
		}
	}
	for _, piece := range splits {
		if len(piece) <= s.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		// A single split longer than the budget gets re-split at the next
		// finer boundary.
		flush()
		final = append(final, s.splitText(piece, rest)...)
	}
	flush()
	return final
}

// merge greedily packs splits into chunks up to the size budget, then
// carries the tail splits over into the next chunk until the carried text
// fits within the overlap budget.
func (s *Splitter) merge(splits []string, sep string) []string {
	sepLen := len(sep)
	var chunks []string
	var current []string
	total := 0

	join := func() {
		text := strings.TrimSpace(strings.Join(current, sep))
		if text != "" {
			chunks = append(chunks, text)
		}
	}

	for _, piece := range splits {
		pieceLen := len(piece)
		add := pieceLen
		if len(current) > 0 {
			add += sepLen
		}
		if total+add > s.chunkSize && len(current) > 0 {
			join()
			for len(current) > 0 && (total > s.overlap || total+pieceLen+sepLen > s.chunkSize) {
				drop := len(current[0])
				if len(current) > 1 {
					drop += sepLen
				}
				total -= drop
				current = current[1:]
			}
		}
		if len(current) > 0 {
			total += sepLen
		}
		current = append(current, piece)
		total += pieceLen
	}
	join()
	return chunks
}

// hardSplit is the last resort for text with no usable boundaries: fixed
// windows advancing by chunkSize minus overlap.
func (s *Splitter) hardSplit(text string) []string {
	step := s.chunkSize - s.overlap
	if step <= 0 {
		step = s.chunkSize
	}
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}

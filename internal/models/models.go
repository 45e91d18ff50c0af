package models

// Document is a raw text document pulled from one of the ingestion origins.
// Source is a human-readable provenance label, e.g. "GitHub: README.md".
type Document struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// Chunk is a bounded fragment of a Document. It keeps the parent's source
// label so answers can cite where a fact came from.
type Chunk struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Content string `json:"content"`
}

// IndexedChunk pairs a chunk with its embedding for storage.
type IndexedChunk struct {
	Chunk
	Embedding []float32 `json:"embedding"`
}

// SearchResult is a retrieved chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

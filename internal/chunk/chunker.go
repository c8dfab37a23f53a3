package chunk

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/eiga/internal/models"
)

// Chunker groups sentences into windows of maxSentences with overlap
// sentences shared between consecutive windows.
type Chunker struct {
	maxSentences int
	overlap      int
}

// NewChunker creates a chunker. The window advances maxSentences-overlap
// sentences per step; a non-positive step is clamped to 1.
func NewChunker(maxSentences, overlap int) *Chunker {
	if maxSentences <= 0 {
		maxSentences = 1
	}
	return &Chunker{maxSentences: maxSentences, overlap: overlap}
}

// Chunk splits the document's description into overlapping sentence
// windows. A document whose description is empty after stripping produces
// zero chunks. A single unterminated sentence is emitted verbatim.
func (c *Chunker) Chunk(doc models.Document) []models.Chunk {
	sentences := SplitSentences(doc.Description)
	if len(sentences) == 0 {
		return nil
	}
	step := c.maxSentences - c.overlap
	if step <= 0 {
		step = 1
	}
	var chunks []models.Chunk
	for i := 0; i < len(sentences); i += step {
		end := i + c.maxSentences
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, models.Chunk{
			ID:         fmt.Sprintf("%d_%s", doc.ID, uuid.New().String()[:8]),
			DocumentID: doc.ID,
			ChunkIndex: len(chunks),
			Text:       strings.Join(sentences[i:end], " "),
		})
		if end >= len(sentences) {
			break
		}
	}
	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks
}

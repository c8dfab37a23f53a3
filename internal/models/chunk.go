package models

// Chunk is a sentence-window slice of a document's description, the unit of
// semantic embedding. A chunk belongs to exactly one document; a document
// with an empty description owns no chunks.
type Chunk struct {
	ID          string `json:"id"`
	DocumentID  int    `json:"document_id"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	Text        string `json:"text"`
}

package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes where an ingested text came from.
type Metadata struct {
	Source    string `json:"source"` // file name or URL
	Format    Format `json:"format,omitempty"`
	Board     string `json:"board,omitempty"` // job board, for URLs
	Rendered  bool   `json:"rendered,omitempty"`
	SizeBytes int    `json:"size_bytes,omitempty"`
	WordCount int    `json:"word_count"`
	Hash      string `json:"hash"`      // SHA256 of the cleaned text
	Timestamp string `json:"timestamp"` // RFC3339
}

// NewMetadata builds metadata for cleaned content.
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		WordCount: WordCount(content),
		Hash:      computeHash(content),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ToJSON renders m as indented JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return data, nil
}

// Package metadata provides provenance stamping for generated report artifacts.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the provenance block.
	TagStart = "<!-- PROVENANCE_START"
	// TagEnd is the end of the provenance block.
	TagEnd = "PROVENANCE_END -->"
)

// Provenance verification errors.
var (
	ErrNoProvenanceBlock = errors.New("no provenance block found")
	ErrNoHashFound       = errors.New("no hash found in provenance block")
	ErrHashMismatch      = errors.New("hash mismatch")
)

// Metadata records when and by what an artifact was generated.
type Metadata struct {
	GeneratedAt time.Time
	Generator   string
	Hash        string
}

// provenanceRegex matches the entire provenance block including tags.
var provenanceRegex = regexp.MustCompile(`(?s)<!--\s*PROVENANCE_START\s*\n(.*?)\n\s*PROVENANCE_END\s*-->`)

// Extract removes the provenance block from content and returns both the
// metadata and the cleaned content. The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := provenanceRegex.FindStringSubmatch(content)
	cleanContent := provenanceRegex.ReplaceAllString(content, "")
	// Trim trailing newlines for consistent hashing
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	lines := strings.SplitSeq(match[1], "\n")
	for line := range lines {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "GENERATOR":
			meta.Generator = val
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.GeneratedAt = t
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding the
// provenance block).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign appends or refreshes the provenance block with a content hash and
// generation timestamp.
func Sign(content, generator string) string {
	_, clean := Extract(content)

	hash := CalculateHash(clean)
	now := time.Now().UTC().Format(time.RFC3339)

	newBlock := fmt.Sprintf("\n\n%s\nGENERATOR: %s\nGENERATED_AT: %s\nHASH: %s\n%s",
		TagStart, generator, now, hash, TagEnd)

	return clean + newBlock
}

// Verify checks if the content matches the hash in its provenance block.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoProvenanceBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}

package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns a 12-character prefix for display
func (h Hash) Short() string {
	if len(h) > 12 {
		return string(h[:12])
	}
	return string(h)
}

// CohortHash fingerprints the filtered set of rows an analysis ran on
type CohortHash Hash

func (h CohortHash) String() string { return Hash(h).String() }

// ComputeCohortHash hashes the selector and the rows in their given order.
// Rows are rendered with %v so any comparable row type can be fingerprinted.
func ComputeCohortHash(selector string, rows []interface{}) CohortHash {
	var data strings.Builder
	data.WriteString(selector)
	for _, row := range rows {
		data.WriteString("|")
		data.WriteString(fmt.Sprintf("%v", row))
	}
	return CohortHash(NewHash([]byte(data.String())))
}

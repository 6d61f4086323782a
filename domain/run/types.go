package run

import (
	"crypto/sha256"
	"fmt"

	"suicidestats/domain/core"
)

// CodeVersion is stamped into every fingerprint so report changes are traceable
const CodeVersion = "1.0.0"

// RunFingerprint ensures deterministic replay: the same file, country and
// code always produce the same fingerprint and therefore the same report
type RunFingerprint struct {
	Country     string          `json:"country"`
	SourceHash  core.Hash       `json:"source_hash"`
	CohortHash  core.CohortHash `json:"cohort_hash"`
	CodeVersion string          `json:"code_version"`
	Fingerprint core.Hash       `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters
func NewRunFingerprint(country string, sourceHash core.Hash, cohortHash core.CohortHash, codeVersion string) RunFingerprint {
	return RunFingerprint{
		Country:     country,
		SourceHash:  sourceHash,
		CohortHash:  cohortHash,
		CodeVersion: codeVersion,
		Fingerprint: computeRunFingerprint(country, sourceHash, cohortHash, codeVersion),
	}
}

// computeRunFingerprint generates deterministic hash from all determinism parameters
func computeRunFingerprint(country string, sourceHash core.Hash, cohortHash core.CohortHash, codeVersion string) core.Hash {
	data := fmt.Sprintf("country:%s|source:%s|cohort:%s|code:%s",
		country, sourceHash, cohortHash, codeVersion)

	hash := sha256.Sum256([]byte(data))
	return core.Hash(fmt.Sprintf("%x", hash))
}

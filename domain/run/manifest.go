package run

import (
	"fmt"

	"suicidestats/domain/core"
)

// RunManifest records what a report run analysed.
// It is logged before any statistics are printed.
type RunManifest struct {
	RunID       core.RunID      `json:"run_id"`
	Country     string          `json:"country"`
	SourcePath  string          `json:"source_path"`
	SourceHash  core.Hash       `json:"source_hash"`
	CohortHash  core.CohortHash `json:"cohort_hash"`
	RecordCount int             `json:"record_count"`
	CodeVersion string          `json:"code_version"`
	Fingerprint RunFingerprint  `json:"fingerprint"`
	CreatedAt   core.Timestamp  `json:"created_at"`
}

// NewRunManifest creates a run manifest for a cleaned country dataset
func NewRunManifest(
	runID core.RunID,
	country string,
	sourcePath string,
	sourceHash core.Hash,
	cohortHash core.CohortHash,
	recordCount int,
) *RunManifest {
	return &RunManifest{
		RunID:       runID,
		Country:     country,
		SourcePath:  sourcePath,
		SourceHash:  sourceHash,
		CohortHash:  cohortHash,
		RecordCount: recordCount,
		CodeVersion: CodeVersion,
		Fingerprint: NewRunFingerprint(country, sourceHash, cohortHash, CodeVersion),
		CreatedAt:   core.Now(),
	}
}

// Validate checks if the manifest is complete
func (r *RunManifest) Validate() error {
	if core.ID(r.RunID).IsEmpty() {
		return fmt.Errorf("validation failed for run_manifest: run_id cannot be empty")
	}
	if r.Country == "" {
		return fmt.Errorf("validation failed for run_manifest: country cannot be empty")
	}
	if r.SourceHash.IsEmpty() {
		return fmt.Errorf("validation failed for run_manifest: source_hash cannot be empty")
	}
	if r.CohortHash == "" {
		return fmt.Errorf("validation failed for run_manifest: cohort_hash cannot be empty")
	}
	if r.RecordCount <= 0 {
		return fmt.Errorf("validation failed for run_manifest: record_count must be positive")
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("validation failed for run_manifest: created_at cannot be zero")
	}
	return nil
}

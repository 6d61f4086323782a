package run

import (
	"testing"

	"suicidestats/domain/core"
)

func TestRunFingerprint_Deterministic(t *testing.T) {
	sourceHash := core.Hash("test-source")
	cohortHash := core.CohortHash("test-cohort")

	fp1 := NewRunFingerprint("Iceland", sourceHash, cohortHash, "1.0.0")
	fp2 := NewRunFingerprint("Iceland", sourceHash, cohortHash, "1.0.0")

	if fp1.Fingerprint != fp2.Fingerprint {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Fingerprint, fp2.Fingerprint)
	}
	if fp1.Country != "Iceland" {
		t.Errorf("Country mismatch: %s", fp1.Country)
	}
	if fp1.SourceHash != sourceHash {
		t.Errorf("SourceHash mismatch: %s vs %s", fp1.SourceHash, sourceHash)
	}
	if fp1.CohortHash != cohortHash {
		t.Errorf("CohortHash mismatch: %s vs %s", fp1.CohortHash, cohortHash)
	}
}

func TestRunFingerprint_Unique(t *testing.T) {
	base := NewRunFingerprint("Iceland", "test-source", "test-cohort", "1.0.0")

	testCases := []struct {
		name string
		fp   RunFingerprint
	}{
		{"different country", NewRunFingerprint("Norway", "test-source", "test-cohort", "1.0.0")},
		{"different source", NewRunFingerprint("Iceland", "other-source", "test-cohort", "1.0.0")},
		{"different cohort", NewRunFingerprint("Iceland", "test-source", "other-cohort", "1.0.0")},
		{"different code", NewRunFingerprint("Iceland", "test-source", "test-cohort", "1.0.1")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fp.Fingerprint == base.Fingerprint {
				t.Errorf("Fingerprint should be different for %s", tc.name)
			}
		})
	}
}

func TestRunManifest_Complete(t *testing.T) {
	runID := core.NewRunID()
	manifest := NewRunManifest(runID, "Iceland", "master.csv", "test-source", "test-cohort", 12)

	if manifest.RunID != runID {
		t.Errorf("RunID not set correctly")
	}
	if manifest.CodeVersion != CodeVersion {
		t.Errorf("CodeVersion not set correctly")
	}
	if manifest.Fingerprint.Fingerprint == "" {
		t.Errorf("Fingerprint not computed")
	}
	if manifest.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not set")
	}
	if err := manifest.Validate(); err != nil {
		t.Errorf("Manifest validation failed: %v", err)
	}
}

func TestRunManifest_ValidateRejectsIncomplete(t *testing.T) {
	cases := map[string]*RunManifest{
		"no run id":  NewRunManifest("", "Iceland", "master.csv", "src", "cohort", 1),
		"no country": NewRunManifest(core.NewRunID(), "", "master.csv", "src", "cohort", 1),
		"no source":  NewRunManifest(core.NewRunID(), "Iceland", "master.csv", "", "cohort", 1),
		"no cohort":  NewRunManifest(core.NewRunID(), "Iceland", "master.csv", "src", "", 1),
		"no records": NewRunManifest(core.NewRunID(), "Iceland", "master.csv", "src", "cohort", 0),
		"no timestamp": func() *RunManifest {
			m := NewRunManifest(core.NewRunID(), "Iceland", "master.csv", "src", "cohort", 1)
			m.CreatedAt = core.Timestamp{}
			return m
		}(),
	}
	for name, m := range cases {
		if err := m.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

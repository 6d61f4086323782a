package ports

import (
	"suicidestats/domain/core"
	"suicidestats/domain/suicide"
)

// RecordSourcePort loads the raw master table
type RecordSourcePort interface {
	// Path identifies the source in logs and the run manifest
	Path() string

	// ReadRecords decodes the rows of country. Rows of other countries
	// may be skipped undecoded; an empty country means every row.
	ReadRecords(country string) ([]suicide.Record, error)

	// SourceHash fingerprints the source contents
	SourceHash() (core.Hash, error)
}

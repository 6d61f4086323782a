// Package dataset selects and cleans the rows of the country under analysis.
package dataset

import (
	"strconv"
	"strings"

	"suicidestats/domain/core"
	"suicidestats/domain/suicide"
	"suicidestats/internal/errors"
)

// FilterCountry returns copies of the records whose country equals target
// exactly. The source slice is never modified.
func FilterCountry(records []suicide.Record, target string) ([]suicide.Record, error) {
	var out []suicide.Record
	for _, r := range records {
		if r.Country == target {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, errors.EmptyFilter(suicide.ColumnCountry, target)
	}
	return out, nil
}

// ParseGDP strips thousands separators from a currency cell and parses it
func ParseGDP(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.Parse(suicide.ColumnGDPForYear, raw, err)
	}
	return v, nil
}

// Clean filters the records to one country and converts the GDP-for-year
// column to float on the copies
func Clean(records []suicide.Record, country string) (suicide.CountryDataset, error) {
	rows, err := FilterCountry(records, country)
	if err != nil {
		return suicide.CountryDataset{}, err
	}

	for i := range rows {
		gdp, err := ParseGDP(rows[i].GDPForYearRaw)
		if err != nil {
			return suicide.CountryDataset{}, errors.Wrapf(err, "%s %d", country, rows[i].Year)
		}
		rows[i].GDPForYear = gdp
	}

	return suicide.CountryDataset{Country: country, Records: rows}, nil
}

// CohortHash fingerprints the cleaned rows in order
func CohortHash(ds suicide.CountryDataset) core.CohortHash {
	rows := make([]interface{}, len(ds.Records))
	for i, r := range ds.Records {
		rows[i] = r
	}
	return core.ComputeCohortHash(ds.Country, rows)
}

package excel

import (
	"fmt"
	"math"
	"strconv"

	"suicidestats/domain/suicide"
	"suicidestats/internal/errors"
)

// DecodeRecords converts the rows of one country into typed records.
// Rows of other countries are skipped without being decoded, so a bad
// cell elsewhere in the table cannot fail the run. An empty country
// decodes every row. The GDP-for-year cell is kept verbatim; cleaning
// parses it.
func DecodeRecords(data *ExcelData, country string) ([]suicide.Record, error) {
	var missing []string
	for _, col := range suicide.RequiredColumns {
		if !data.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.CodeFileLoad, fmt.Sprintf("table is missing columns %v", missing))
	}

	records := make([]suicide.Record, 0, len(data.Rows))
	for i, row := range data.Rows {
		if country != "" && row[suicide.ColumnCountry] != country {
			continue
		}
		rec, err := decodeRow(row)
		if err != nil {
			// header is line 1
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRow(row RawRowData) (suicide.Record, error) {
	var rec suicide.Record
	var err error

	rec.Country = row[suicide.ColumnCountry]
	rec.Age = row[suicide.ColumnAge]
	rec.Generation = row[suicide.ColumnGeneration]
	rec.CountryYear = row[suicide.ColumnCountryYear]
	rec.GDPForYearRaw = row[suicide.ColumnGDPForYear]

	rec.Sex = suicide.Sex(row[suicide.ColumnSex])
	if !rec.Sex.Valid() {
		return rec, errors.Parse(suicide.ColumnSex, row[suicide.ColumnSex], fmt.Errorf("expected male or female"))
	}

	if rec.Year, err = parseCount(row, suicide.ColumnYear); err != nil {
		return rec, err
	}
	if rec.Suicides, err = parseCount(row, suicide.ColumnSuicides); err != nil {
		return rec, err
	}
	if rec.Population, err = parseCount(row, suicide.ColumnPopulation); err != nil {
		return rec, err
	}
	if rec.GDPPerCapita, err = parseCount(row, suicide.ColumnGDPPerCapita); err != nil {
		return rec, err
	}
	if rec.RatePer100k, err = parseRate(row[suicide.ColumnRatePer100k]); err != nil {
		return rec, err
	}

	return rec, nil
}

func parseCount(row RawRowData, column string) (int, error) {
	raw := row[column]
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Parse(column, raw, err)
	}
	if v < 0 {
		return 0, errors.Parse(column, raw, fmt.Errorf("negative value"))
	}
	return v, nil
}

// parseRate returns NaN for an empty cell so missing rates flow through as nulls
func parseRate(raw string) (float64, error) {
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Parse(suicide.ColumnRatePer100k, raw, err)
	}
	if v < 0 {
		return 0, errors.Parse(suicide.ColumnRatePer100k, raw, fmt.Errorf("negative rate"))
	}
	return v, nil
}

package suicide

import "math"

// Sex is the reported sex of a record
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is one of the two categories the dataset uses
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Column headers of the suicide-rates master table, after trimming spaces
const (
	ColumnCountry      = "country"
	ColumnYear         = "year"
	ColumnSex          = "sex"
	ColumnAge          = "age"
	ColumnSuicides     = "suicides_no"
	ColumnPopulation   = "population"
	ColumnRatePer100k  = "suicides/100k pop"
	ColumnCountryYear  = "country-year"
	ColumnHDI          = "HDI for year"
	ColumnGDPForYear   = "gdp_for_year ($)"
	ColumnGDPPerCapita = "gdp_per_capita ($)"
	ColumnGeneration   = "generation"
)

// RequiredColumns lists the headers a table must carry to be decoded
var RequiredColumns = []string{
	ColumnCountry,
	ColumnYear,
	ColumnSex,
	ColumnAge,
	ColumnSuicides,
	ColumnPopulation,
	ColumnRatePer100k,
	ColumnGDPForYear,
	ColumnGDPPerCapita,
	ColumnGeneration,
}

// Record is one row of the master table.
// RatePer100k is copied from the source as given; a missing cell is NaN.
// GDPForYear stays zero until the dataset is cleaned.
type Record struct {
	Country       string  `json:"country"`
	Year          int     `json:"year"`
	Sex           Sex     `json:"sex"`
	Age           string  `json:"age"`
	Suicides      int     `json:"suicides_no"`
	Population    int     `json:"population"`
	RatePer100k   float64 `json:"suicides_per_100k"`
	CountryYear   string  `json:"country_year,omitempty"`
	GDPForYearRaw string  `json:"gdp_for_year_raw"`
	GDPForYear    float64 `json:"gdp_for_year"`
	GDPPerCapita  int     `json:"gdp_per_capita"`
	Generation    string  `json:"generation"`
}

// HasRate reports whether the per-100k rate is present
func (r Record) HasRate() bool {
	return !math.IsNaN(r.RatePer100k)
}

// CountryDataset is the cleaned subset of records for a single country
type CountryDataset struct {
	Country string
	Records []Record
}

// Len returns the number of records
func (d CountryDataset) Len() int {
	return len(d.Records)
}

// Rates returns the per-100k rate column, missing values included as NaN
func (d CountryDataset) Rates() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.RatePer100k
	}
	return out
}

// GDPs returns the cleaned GDP-for-year column
func (d CountryDataset) GDPs() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.GDPForYear
	}
	return out
}

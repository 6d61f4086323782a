package stats

import (
	"fmt"
	"math"

	"suicidestats/domain/suicide"
)

// Alpha is the fixed significance level of every goodness-of-fit test
const Alpha = 0.05

// StatSummary contains descriptive statistics of one numeric column
// INVARIANTS:
// - Mode is nil iff Count == 0
// - Variance and StdDev use the N-1 denominator
// - Kurtosis is excess kurtosis (normal = 0)
type StatSummary struct {
	Count    int      `json:"count"`
	Missing  int      `json:"missing"` // NaN cells dropped before computing
	Mean     float64  `json:"mean"`
	Median   float64  `json:"median"`
	Mode     *float64 `json:"mode,omitempty"`
	Variance float64  `json:"variance"`
	StdDev   float64  `json:"std_dev"`
	Skewness float64  `json:"skewness"`
	Kurtosis float64  `json:"kurtosis"`
}

// HasMode reports whether a modal value exists
func (s StatSummary) HasMode() bool {
	return s.Mode != nil
}

// NamedValue is one labelled statistic of a summary
type NamedValue struct {
	Name  string
	Value float64
	Valid bool
}

// Entries returns the seven report statistics in display order
func (s StatSummary) Entries() []NamedValue {
	mode := NamedValue{Name: "Mode", Value: math.NaN()}
	if s.Mode != nil {
		mode.Value, mode.Valid = *s.Mode, true
	}
	return []NamedValue{
		{Name: "Mean", Value: s.Mean, Valid: true},
		{Name: "Median", Value: s.Median, Valid: true},
		mode,
		{Name: "Variance", Value: s.Variance, Valid: true},
		{Name: "Standard Deviation", Value: s.StdDev, Valid: true},
		{Name: "Skewness", Value: s.Skewness, Valid: true},
		{Name: "Kurtosis", Value: s.Kurtosis, Valid: true},
	}
}

// SexYearRow is one year of the year x sex pivot
type SexYearRow struct {
	Year  int                 `json:"year"`
	BySex map[suicide.Sex]int `json:"by_sex"`
	Total int                 `json:"total"` // male + female, absent categories count as 0
}

// Count returns the suicide count for a sex, 0 if absent
func (r SexYearRow) Count(sex suicide.Sex) int {
	return r.BySex[sex]
}

// SexByYear is the sum of suicides per year pivoted on sex
type SexByYear struct {
	Sexes []suicide.Sex `json:"sexes"` // lexicographic
	Rows  []SexYearRow  `json:"rows"`  // ascending year
}

// YearSummary aggregates one year of records
type YearSummary struct {
	Year     int     `json:"year"`
	MeanRate float64 `json:"mean_rate"`
	Suicides int     `json:"suicides_no"`
	MeanGDP  float64 `json:"mean_gdp"`
}

// AgeYearRow is one year of the year x age pivot
type AgeYearRow struct {
	Year      int                `json:"year"`
	MeanRates map[string]float64 `json:"mean_rates"`
}

// Rate returns the mean rate of an age bucket, NaN if the bucket has no rows that year
func (r AgeYearRow) Rate(age string) float64 {
	if v, ok := r.MeanRates[age]; ok {
		return v
	}
	return math.NaN()
}

// AgeByYear is the mean rate per year pivoted on age bucket
type AgeByYear struct {
	AgeGroups []string     `json:"age_groups"` // lexicographic
	Rows      []AgeYearRow `json:"rows"`       // ascending year
}

// GenerationSummary aggregates one generation cohort
type GenerationSummary struct {
	Generation string  `json:"generation"`
	Suicides   int     `json:"suicides_no"`
	MeanGDP    float64 `json:"mean_gdp"`
}

// Distribution names a hypothesised distribution family
type Distribution string

const (
	DistributionNormal      Distribution = "normal"
	DistributionPoisson     Distribution = "Poisson"
	DistributionExponential Distribution = "exponential"
)

// Decision is the outcome of a goodness-of-fit test at Alpha
type Decision string

const (
	DecisionFits       Decision = "fits"
	DecisionDoesNotFit Decision = "does not fit"
)

// DecideFit rejects the null hypothesis of a matching distribution when p <= Alpha
func DecideFit(pValue float64) Decision {
	if pValue > Alpha {
		return DecisionFits
	}
	return DecisionDoesNotFit
}

// DistributionTestResult is the outcome of one Kolmogorov-Smirnov test
type DistributionTestResult struct {
	Distribution Distribution       `json:"distribution"`
	Statistic    float64            `json:"statistic"`
	PValue       float64            `json:"p_value"`
	SampleSize   int                `json:"sample_size"`
	Parameters   map[string]float64 `json:"parameters"`
	Decision     Decision           `json:"decision"`
}

// Fits reports whether the sample is consistent with the distribution
func (r DistributionTestResult) Fits() bool {
	return r.Decision == DecisionFits
}

// Sentence renders the decision as a report line
func (r DistributionTestResult) Sentence() string {
	if r.Fits() {
		return fmt.Sprintf("Result: the data fits the %s distribution.", r.Distribution)
	}
	return fmt.Sprintf("Result: the data does not fit the %s distribution.", r.Distribution)
}

// Analysis bundles everything the report and the chart renderer consume
type Analysis struct {
	Dataset     suicide.CountryDataset   `json:"-"`
	Summary     StatSummary              `json:"summary"`
	SexByYear   SexByYear                `json:"sex_by_year"`
	Yearly      []YearSummary            `json:"yearly"`
	AgeByYear   AgeByYear                `json:"age_by_year"`
	Generations []GenerationSummary      `json:"generations"`
	Tests       []DistributionTestResult `json:"tests"`
}

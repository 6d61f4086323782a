package analysis

import (
	"math"
	"sort"

	domainStats "suicidestats/domain/stats"
	"suicidestats/domain/suicide"
	"suicidestats/internal"
	"suicidestats/internal/errors"

	"github.com/montanaflynn/stats"
)

// Aggregator builds the grouped views of a country dataset.
// Means are arithmetic and unweighted by population; missing rates are
// skipped inside a group.
type Aggregator struct {
	logger *internal.Logger
}

// NewAggregator creates an aggregator logging through logger
func NewAggregator(logger *internal.Logger) *Aggregator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Aggregator{logger: logger.With("Aggregator")}
}

// SexByYear sums suicides per (year, sex) and pivots sex into columns.
// A sex with no rows in a year is zero-filled so Total stays defined.
func (a *Aggregator) SexByYear(ds suicide.CountryDataset) domainStats.SexByYear {
	sums := make(map[int]map[suicide.Sex]int)
	sexSet := map[suicide.Sex]bool{suicide.SexMale: true, suicide.SexFemale: true}
	for _, r := range ds.Records {
		if sums[r.Year] == nil {
			sums[r.Year] = make(map[suicide.Sex]int)
		}
		sums[r.Year][r.Sex] += r.Suicides
		sexSet[r.Sex] = true
	}

	sexes := make([]suicide.Sex, 0, len(sexSet))
	for s := range sexSet {
		sexes = append(sexes, s)
	}
	sort.Slice(sexes, func(i, j int) bool { return sexes[i] < sexes[j] })

	out := domainStats.SexByYear{Sexes: sexes}
	for _, year := range sortedYears(sums) {
		bySex := sums[year]
		for _, s := range []suicide.Sex{suicide.SexMale, suicide.SexFemale} {
			if _, ok := bySex[s]; !ok {
				a.logger.Warn("%v in %d, counting %s suicides as 0", errors.MissingKey(string(s)), year, s)
				bySex[s] = 0
			}
		}
		out.Rows = append(out.Rows, domainStats.SexYearRow{
			Year:  year,
			BySex: bySex,
			Total: bySex[suicide.SexMale] + bySex[suicide.SexFemale],
		})
	}
	return out
}

// ByYear computes mean rate, total suicides and mean GDP per year
func (a *Aggregator) ByYear(ds suicide.CountryDataset) []domainStats.YearSummary {
	groups := make(map[int][]suicide.Record)
	for _, r := range ds.Records {
		groups[r.Year] = append(groups[r.Year], r)
	}

	out := make([]domainStats.YearSummary, 0, len(groups))
	for _, year := range sortedYears(groups) {
		rows := groups[year]
		out = append(out, domainStats.YearSummary{
			Year:     year,
			MeanRate: meanRate(rows),
			Suicides: sumSuicides(rows),
			MeanGDP:  meanGDP(rows),
		})
	}
	return out
}

// AgeByYear computes the mean rate per (year, age bucket) and pivots age into columns
func (a *Aggregator) AgeByYear(ds suicide.CountryDataset) domainStats.AgeByYear {
	groups := make(map[int]map[string][]suicide.Record)
	ageSet := make(map[string]bool)
	for _, r := range ds.Records {
		if groups[r.Year] == nil {
			groups[r.Year] = make(map[string][]suicide.Record)
		}
		groups[r.Year][r.Age] = append(groups[r.Year][r.Age], r)
		ageSet[r.Age] = true
	}

	out := domainStats.AgeByYear{AgeGroups: sortedKeys(ageSet)}
	for _, year := range sortedYears(groups) {
		row := domainStats.AgeYearRow{Year: year, MeanRates: make(map[string]float64)}
		for age, rows := range groups[year] {
			row.MeanRates[age] = meanRate(rows)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// ByGeneration computes total suicides and mean GDP per generation
func (a *Aggregator) ByGeneration(ds suicide.CountryDataset) []domainStats.GenerationSummary {
	groups := make(map[string][]suicide.Record)
	genSet := make(map[string]bool)
	for _, r := range ds.Records {
		groups[r.Generation] = append(groups[r.Generation], r)
		genSet[r.Generation] = true
	}

	out := make([]domainStats.GenerationSummary, 0, len(groups))
	for _, gen := range sortedKeys(genSet) {
		rows := groups[gen]
		out = append(out, domainStats.GenerationSummary{
			Generation: gen,
			Suicides:   sumSuicides(rows),
			MeanGDP:    meanGDP(rows),
		})
	}
	return out
}

func meanRate(rows []suicide.Record) float64 {
	rates := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.HasRate() {
			rates = append(rates, r.RatePer100k)
		}
	}
	m, err := stats.Mean(rates)
	if err != nil {
		return math.NaN()
	}
	return m
}

func meanGDP(rows []suicide.Record) float64 {
	gdps := make([]float64, len(rows))
	for i, r := range rows {
		gdps[i] = r.GDPForYear
	}
	m, err := stats.Mean(gdps)
	if err != nil {
		return math.NaN()
	}
	return m
}

func sumSuicides(rows []suicide.Record) int {
	total := 0
	for _, r := range rows {
		total += r.Suicides
	}
	return total
}

func sortedYears[V any](m map[int]V) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

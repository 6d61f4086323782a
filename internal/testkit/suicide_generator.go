package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"suicidestats/domain/suicide"

	"github.com/xuri/excelize/v2"
)

// MasterHeader is the header row of the public suicide-rates master table,
// including its padded GDP column name
var MasterHeader = []string{
	suicide.ColumnCountry, suicide.ColumnYear, suicide.ColumnSex, suicide.ColumnAge,
	suicide.ColumnSuicides, suicide.ColumnPopulation, suicide.ColumnRatePer100k,
	suicide.ColumnCountryYear, suicide.ColumnHDI, " " + suicide.ColumnGDPForYear + " ",
	suicide.ColumnGDPPerCapita, suicide.ColumnGeneration,
}

// SuicideGeneratorConfig configures the synthetic suicide-rate table
type SuicideGeneratorConfig struct {
	Countries   []string `json:"countries"`
	StartYear   int      `json:"start_year"`
	Years       int      `json:"years"`
	Ages        []string `json:"ages"`
	Generations []string `json:"generations"` // parallel to Ages
	Seed        int64    `json:"seed"`
}

// DefaultSuicideConfig returns a two-country, six-age-bucket table over ten years
func DefaultSuicideConfig() SuicideGeneratorConfig {
	return SuicideGeneratorConfig{
		Countries: []string{"Puerto Rico", "Iceland"},
		StartYear: 2000,
		Years:     10,
		Ages: []string{
			"5-14 years", "15-24 years", "25-34 years",
			"35-54 years", "55-74 years", "75+ years",
		},
		Generations: []string{
			"Generation Z", "Millenials", "Generation X",
			"Boomers", "Silent", "G.I. Generation",
		},
		Seed: 42,
	}
}

// SuicideDataGenerator generates deterministic master-table records
type SuicideDataGenerator struct {
	config SuicideGeneratorConfig
	rng    *rand.Rand
}

// NewSuicideDataGenerator creates a new generator
func NewSuicideDataGenerator(config SuicideGeneratorConfig) *SuicideDataGenerator {
	return &SuicideDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRecords produces one record per country, year, sex and age bucket
func (g *SuicideDataGenerator) GenerateRecords() []suicide.Record {
	var records []suicide.Record
	for ci, country := range g.config.Countries {
		for y := 0; y < g.config.Years; y++ {
			year := g.config.StartYear + y
			gdp := int64(50_000_000_000+ci*10_000_000_000) + int64(y)*1_250_000_000
			for _, sex := range []suicide.Sex{suicide.SexFemale, suicide.SexMale} {
				for ai, age := range g.config.Ages {
					population := 100_000 + g.rng.Intn(400_000)
					base := 4.0 + 3.0*float64(ai)
					if sex == suicide.SexMale {
						base *= 3
					}
					count := int(math.Round(base * float64(population) / 100_000 * (0.8 + 0.4*g.rng.Float64())))
					records = append(records, NewRecord(country, year, sex, age, count, population, gdp, g.generation(ai)))
				}
			}
		}
	}
	return records
}

func (g *SuicideDataGenerator) generation(ageIndex int) string {
	if ageIndex < len(g.config.Generations) {
		return g.config.Generations[ageIndex]
	}
	return "Unknown"
}

// NewRecord builds a raw (uncleaned) record whose rate is derived the way
// the source table derives it, rounded to two decimals
func NewRecord(country string, year int, sex suicide.Sex, age string, suicides, population int, gdp int64, generation string) suicide.Record {
	rate := 0.0
	if population > 0 {
		rate = math.Round(float64(suicides)/float64(population)*100_000*100) / 100
	}
	perCapita := 0
	if population > 0 {
		perCapita = int(gdp / int64(population*10))
	}
	return suicide.Record{
		Country:       country,
		Year:          year,
		Sex:           sex,
		Age:           age,
		Suicides:      suicides,
		Population:    population,
		RatePer100k:   rate,
		CountryYear:   fmt.Sprintf("%s%d", country, year),
		GDPForYearRaw: FormatThousands(gdp),
		GDPPerCapita:  perCapita,
		Generation:    generation,
	}
}

// FormatThousands renders n with comma thousands separators
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Rows renders records as master-table string rows, header first
func Rows(records []suicide.Record) [][]string {
	rows := [][]string{MasterHeader}
	for _, r := range records {
		rate := ""
		if r.HasRate() {
			rate = strconv.FormatFloat(r.RatePer100k, 'f', -1, 64)
		}
		rows = append(rows, []string{
			r.Country,
			strconv.Itoa(r.Year),
			string(r.Sex),
			r.Age,
			strconv.Itoa(r.Suicides),
			strconv.Itoa(r.Population),
			rate,
			r.CountryYear,
			"",
			r.GDPForYearRaw,
			strconv.Itoa(r.GDPPerCapita),
			r.Generation,
		})
	}
	return rows
}

// WriteCSV writes records to path in the master-table CSV layout
func WriteCSV(path string, records []suicide.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(Rows(records)); err != nil {
		return err
	}
	return f.Close()
}

// WriteXLSX writes records to the first sheet of a new workbook at path
func WriteXLSX(path string, records []suicide.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range Rows(records) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

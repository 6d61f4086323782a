package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"suicidestats/domain/core"
	"suicidestats/domain/stats"
	"suicidestats/domain/suicide"
	"suicidestats/internal"
	"suicidestats/internal/config"
	"suicidestats/internal/errors"
	"suicidestats/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []suicide.Record
	err     error
}

func (f *fakeSource) Path() string { return "memory://master.csv" }

func (f *fakeSource) ReadRecords(string) ([]suicide.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]suicide.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeSource) SourceHash() (core.Hash, error) {
	return core.NewHash([]byte("fixture")), nil
}

type recordingCharts struct {
	dir   string
	calls int
}

func (r *recordingCharts) Render(_ context.Context, dir string, _ *stats.Analysis) ([]string, error) {
	r.calls++
	r.dir = dir
	return []string{filepath.Join(dir, "01_suicides_by_year.png")}, nil
}

// threeYearsTwoSexes has one age bucket per (year, sex) plus a second
// country that must be filtered out
func threeYearsTwoSexes() []suicide.Record {
	var records []suicide.Record
	counts := map[int][2]int{1990: {10, 40}, 1991: {12, 44}, 1992: {9, 38}}
	for _, year := range []int{1990, 1991, 1992} {
		c := counts[year]
		gdp := int64(20_000_000_000 + (year-1990)*1_000_000_000)
		records = append(records,
			testkit.NewRecord("Puerto Rico", year, suicide.SexFemale, "35-54 years", c[0], 500_000, gdp, "Boomers"),
			testkit.NewRecord("Puerto Rico", year, suicide.SexMale, "35-54 years", c[1], 480_000, gdp, "Boomers"),
			testkit.NewRecord("Iceland", year, suicide.SexMale, "35-54 years", 5, 40_000, 9_000_000_000, "Boomers"),
		)
	}
	return records
}

func testConfig(chartsEnabled bool) config.Config {
	return config.Config{
		Data: config.DataConfig{File: "master.csv", Country: "Puerto Rico"},
		Charts: config.ChartsConfig{
			Enabled:   chartsEnabled,
			OutputDir: "charts",
			WidthCM:   25,
			HeightCM:  15,
			Workers:   1,
		},
		Log: config.LogConfig{Level: "ERROR"},
	}
}

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func TestRun_ThreeYearsTwoSexes(t *testing.T) {
	svc := NewReportService(testConfig(false), &fakeSource{records: threeYearsTwoSexes()}, nil, quietLogger())

	var out bytes.Buffer
	res, err := svc.Run(context.Background(), &out)
	require.NoError(t, err)

	a := res.Analysis
	assert.Equal(t, 6, a.Dataset.Len())
	assert.Equal(t, 6, res.Manifest.RecordCount)
	assert.Equal(t, 6, a.Summary.Count)

	require.Len(t, a.SexByYear.Rows, 3)
	assert.Equal(t, 50, a.SexByYear.Rows[0].Total)
	assert.Equal(t, 56, a.SexByYear.Rows[1].Total)
	assert.Equal(t, 47, a.SexByYear.Rows[2].Total)

	require.Len(t, a.Yearly, 3)
	assert.InDelta(t, 21_000_000_000.0, a.Yearly[1].MeanGDP, 1e-3)

	require.Len(t, a.Tests, 3)
	for _, test := range a.Tests {
		assert.Equal(t, 6, test.SampleSize)
	}

	report := out.String()
	assert.Contains(t, report, "Total Puerto Rico records in the dataset: 6")
	assert.Equal(t, 3, strings.Count(report, "Test statistic:"))
	assert.NotContains(t, report, "Iceland")
	assert.Nil(t, res.ChartPaths)
}

func TestRun_RendersChartsIntoRunDirectory(t *testing.T) {
	charts := &recordingCharts{}
	svc := NewReportService(testConfig(true), &fakeSource{records: threeYearsTwoSexes()}, charts, quietLogger())

	res, err := svc.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 1, charts.calls)
	assert.Equal(t, filepath.Join("charts", res.Manifest.RunID.String()), charts.dir)
	assert.Len(t, res.ChartPaths, 1)
}

func TestRun_ChartsDisabledSkipsRenderer(t *testing.T) {
	charts := &recordingCharts{}
	svc := NewReportService(testConfig(false), &fakeSource{records: threeYearsTwoSexes()}, charts, quietLogger())

	_, err := svc.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, charts.calls)
}

func TestRun_UnknownCountryIsEmptyFilter(t *testing.T) {
	cfg := testConfig(false)
	cfg.Data.Country = "Porto Rico"
	svc := NewReportService(cfg, &fakeSource{records: threeYearsTwoSexes()}, nil, quietLogger())

	var out bytes.Buffer
	_, err := svc.Run(context.Background(), &out)
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmptyFilter, errors.GetCode(err))
	assert.Empty(t, out.String())
}

func TestRun_SourceFailureIsFatal(t *testing.T) {
	src := &fakeSource{err: errors.FileLoad("master.csv", stderrors.New("no such file"))}
	svc := NewReportService(testConfig(false), src, nil, quietLogger())

	_, err := svc.Run(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileLoad)
}

func TestRun_SingleRecordIsInsufficientForFitTests(t *testing.T) {
	records := []suicide.Record{
		testkit.NewRecord("Puerto Rico", 2000, suicide.SexMale, "75+ years", 12, 60_000, 70_000_000_000, "Silent"),
	}
	svc := NewReportService(testConfig(false), &fakeSource{records: records}, nil, quietLogger())

	_, err := svc.Run(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
}

func TestRun_ConstantRatesStillReport(t *testing.T) {
	var records []suicide.Record
	for _, year := range []int{2014, 2015, 2016} {
		for _, sex := range []suicide.Sex{suicide.SexFemale, suicide.SexMale} {
			records = append(records, testkit.NewRecord("Puerto Rico", year, sex, "5-14 years", 0, 250_000, 100_000_000_000, "Generation Z"))
		}
	}
	svc := NewReportService(testConfig(false), &fakeSource{records: records}, nil, quietLogger())

	var out bytes.Buffer
	res, err := svc.Run(context.Background(), &out)
	require.NoError(t, err)

	require.Len(t, res.Analysis.Tests, 3)
	for _, test := range res.Analysis.Tests {
		assert.False(t, test.Fits(), test.Distribution)
	}

	report := out.String()
	assert.Contains(t, report, "Total Puerto Rico records in the dataset: 6")
	assert.Contains(t, report, "Variance            : 0.00000")
	assert.Equal(t, 3, strings.Count(report, "Result: the data does not fit"))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewReportService(testConfig(false), &fakeSource{records: threeYearsTwoSexes()}, nil, quietLogger())
	_, err := svc.Run(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

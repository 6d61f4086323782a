package dataset

import (
	stderrors "errors"
	"testing"

	"suicidestats/domain/suicide"
	"suicidestats/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []suicide.Record {
	return []suicide.Record{
		{Country: "Iceland", Year: 2000, Sex: suicide.SexMale, Age: "15-24 years", Suicides: 5, RatePer100k: 10.5, GDPForYearRaw: "8,993,435,994", Generation: "Millenials"},
		{Country: "Iceland", Year: 2000, Sex: suicide.SexFemale, Age: "15-24 years", Suicides: 1, RatePer100k: 2.1, GDPForYearRaw: "8,993,435,994", Generation: "Millenials"},
		{Country: "iceland", Year: 2000, Sex: suicide.SexMale, Age: "15-24 years", Suicides: 9, RatePer100k: 1, GDPForYearRaw: "not-a-number", Generation: "Millenials"},
		{Country: "Norway", Year: 2000, Sex: suicide.SexMale, Age: "15-24 years", Suicides: 40, RatePer100k: 13.4, GDPForYearRaw: "171,316,019,119", Generation: "Millenials"},
	}
}

func TestParseGDP(t *testing.T) {
	v, err := ParseGDP("1,234,567")
	require.NoError(t, err)
	assert.Equal(t, 1234567.0, v)

	v, err = ParseGDP(" 2,156,624,900 ")
	require.NoError(t, err)
	assert.Equal(t, 2156624900.0, v)

	v, err = ParseGDP("42")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestParseGDPRejectsNonNumeric(t *testing.T) {
	for _, raw := range []string{"", "$1,000", "1.2.3", "n/a"} {
		_, err := ParseGDP(raw)
		require.Error(t, err, raw)
		assert.True(t, stderrors.Is(err, errors.ErrParse), raw)
	}
}

func TestFilterCountryIsExactAndCaseSensitive(t *testing.T) {
	rows, err := FilterCountry(sampleRecords(), "Iceland")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "Iceland", r.Country)
	}
}

func TestFilterCountryEmpty(t *testing.T) {
	_, err := FilterCountry(sampleRecords(), "Porto Rico")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyFilter))
	assert.Contains(t, err.Error(), "Porto Rico")
}

func TestCleanDoesNotMutateSource(t *testing.T) {
	source := sampleRecords()
	before := make([]suicide.Record, len(source))
	copy(before, source)

	ds, err := Clean(source, "Iceland")
	require.NoError(t, err)

	assert.Equal(t, "Iceland", ds.Country)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 8993435994.0, ds.Records[0].GDPForYear)
	assert.Equal(t, before, source)

	ds.Records[0].Suicides = 999
	assert.Equal(t, 5, source[0].Suicides)
}

func TestCleanSurfacesParseError(t *testing.T) {
	_, err := Clean(sampleRecords(), "iceland")
	require.Error(t, err)
	assert.Equal(t, errors.CodeParse, errors.GetCode(err))
}

func TestCohortHashStable(t *testing.T) {
	a, err := Clean(sampleRecords(), "Iceland")
	require.NoError(t, err)
	b, err := Clean(sampleRecords(), "Iceland")
	require.NoError(t, err)
	n, err := Clean(sampleRecords(), "Norway")
	require.NoError(t, err)

	assert.Equal(t, CohortHash(a), CohortHash(b))
	assert.NotEqual(t, CohortHash(a), CohortHash(n))
}

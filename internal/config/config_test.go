package config

import (
	stderrors "errors"
	"testing"

	"suicidestats/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_FILE", "COUNTRY", "CHARTS_ENABLED", "CHART_DIR", "CHART_WIDTH_CM", "CHART_HEIGHT_CM", "CHART_WORKERS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDataFile, cfg.Data.File)
	assert.Equal(t, DefaultCountry, cfg.Data.Country)
	assert.True(t, cfg.Charts.Enabled)
	assert.Equal(t, "charts", cfg.Charts.OutputDir)
	assert.Equal(t, 25.0, cfg.Charts.WidthCM)
	assert.Equal(t, 15.0, cfg.Charts.HeightCM)
	assert.Equal(t, 4, cfg.Charts.Workers)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_FILE", "data/suicides.xlsx")
	t.Setenv("COUNTRY", "Iceland")
	t.Setenv("CHARTS_ENABLED", "false")
	t.Setenv("CHART_WORKERS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/suicides.xlsx", cfg.Data.File)
	assert.Equal(t, "Iceland", cfg.Data.Country)
	assert.False(t, cfg.Charts.Enabled)
	assert.Equal(t, 4, cfg.Charts.Workers)
}

func TestLoadRejectsInvalidCharts(t *testing.T) {
	t.Setenv("CHARTS_ENABLED", "true")
	t.Setenv("CHART_WORKERS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidateConfigRequiresCountry(t *testing.T) {
	err := validateConfig(&Config{Data: DataConfig{File: "master.csv", Country: "  "}})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.CodeConfigInvalid, appErr.Code)
}

func TestValidateConfigNamesEnvVariable(t *testing.T) {
	err := validateConfig(&Config{
		Data:   DataConfig{File: "master.csv", Country: "Iceland"},
		Charts: ChartsConfig{Enabled: true, OutputDir: "charts", WidthCM: -1, HeightCM: 15, Workers: 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHART_WIDTH_CM")

	err = validateConfig(&Config{Data: DataConfig{Country: "Iceland"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_FILE is required")
}

func TestValidateConfigIgnoresChartsWhenDisabled(t *testing.T) {
	err := validateConfig(&Config{
		Data:   DataConfig{File: "master.csv", Country: "Iceland"},
		Charts: ChartsConfig{Enabled: false},
	})
	assert.NoError(t, err)
}

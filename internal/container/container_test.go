package container

import (
	"testing"

	"suicidestats/internal"
	"suicidestats/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNewWiresServices(t *testing.T) {
	cfg := &config.Config{
		Data:   config.DataConfig{File: "master.xlsx", Country: "Iceland"},
		Charts: config.ChartsConfig{Enabled: true, OutputDir: "charts", WidthCM: 25, HeightCM: 15, Workers: 2},
		Log:    config.LogConfig{Level: "debug"},
	}

	c, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "master.xlsx", c.Source.Path())
	assert.NotNil(t, c.Charts)
	assert.NotNil(t, c.ReportService)
	assert.Equal(t, internal.LogLevelDebug, c.Logger.GetLevel())
}

func TestNewWithoutCharts(t *testing.T) {
	cfg := &config.Config{
		Data: config.DataConfig{File: "master.csv", Country: "Iceland"},
		Log:  config.LogConfig{Level: "INFO"},
	}

	c, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, c.Charts)
}

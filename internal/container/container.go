package container

import (
	"fmt"

	"suicidestats/adapters/excel"
	"suicidestats/app"
	"suicidestats/internal"
	"suicidestats/internal/charts"
	"suicidestats/internal/config"
	"suicidestats/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	Source ports.RecordSourcePort
	Charts ports.ChartRendererPort // nil when charts are disabled

	// Services
	ReportService *app.ReportService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level)),
	}

	c.initAdapters()
	c.initServices()

	return c, nil
}

// initAdapters wires the record source and, if enabled, the chart renderer
func (c *Container) initAdapters() {
	c.Source = excel.NewDataReader(c.Config.Data.File, c.Logger)
	if c.Config.Charts.Enabled {
		c.Charts = charts.NewRenderer(c.Config.Charts, c.Logger)
	}
}

func (c *Container) initServices() {
	c.ReportService = app.NewReportService(*c.Config, c.Source, c.Charts, c.Logger)
}

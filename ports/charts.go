package ports

import (
	"context"

	"suicidestats/domain/stats"
)

// ChartRendererPort draws the chart set of an analysis into a directory
// and returns the written file paths
type ChartRendererPort interface {
	Render(ctx context.Context, dir string, analysis *stats.Analysis) ([]string, error)
}

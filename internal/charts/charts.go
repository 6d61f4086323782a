package charts

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	domainStats "suicidestats/domain/stats"
	"suicidestats/domain/suicide"
	"suicidestats/internal"
	"suicidestats/internal/config"
	"suicidestats/internal/errors"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// histogramBins is the bin count of the rate distribution chart
const histogramBins = 20

// kdeSamples is the number of points the density curve is evaluated at
const kdeSamples = 200

// chartJob renders one chart to path
type chartJob struct {
	file   string
	render func(path string) error
}

// Renderer draws the fixed chart set of an analysis as PNG files
type Renderer struct {
	width   vg.Length
	height  vg.Length
	workers int
	logger  *internal.Logger
}

// NewRenderer creates a renderer with the configured size and concurrency
func NewRenderer(cfg config.ChartsConfig, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Renderer{
		width:   vg.Length(cfg.WidthCM) * vg.Centimeter,
		height:  vg.Length(cfg.HeightCM) * vg.Centimeter,
		workers: workers,
		logger:  logger.With("Charts"),
	}
}

// Render writes every chart into dir and returns the written paths in chart
// order. The first failing chart cancels the ones not yet started.
func (r *Renderer) Render(ctx context.Context, dir string, a *domainStats.Analysis) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create chart directory %s", dir)
	}

	country := a.Dataset.Country
	jobs := []chartJob{
		{"01_suicides_by_year.png", r.saver(func() (*plot.Plot, error) { return yearlySuicidesChart(country, a.Yearly) })},
		{"02_suicides_by_sex.png", r.saver(func() (*plot.Plot, error) { return sexChart(country, a.SexByYear) })},
		{"03_gdp_and_suicides.png", func(path string) error { return r.gdpAndSuicidesChart(path, country, a.Yearly) }},
		{"04_suicides_by_generation.png", r.saver(func() (*plot.Plot, error) { return generationChart(country, a.Generations) })},
		{"05_rate_by_age.png", r.saver(func() (*plot.Plot, error) { return ageChart(country, a.AgeByYear) })},
		{"06_gdp_vs_rate.png", r.saver(func() (*plot.Plot, error) { return gdpRateScatter(country, a.Dataset) })},
		{"07_rate_distribution.png", r.saver(func() (*plot.Plot, error) { return rateDistributionChart(country, a.Dataset.Rates(), a.Summary) })},
	}

	start := time.Now()
	paths := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, job := range jobs {
		job := job
		path := filepath.Join(dir, job.file)
		paths[i] = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := job.render(path); err != nil {
				return errors.Wrapf(err, "chart %s", job.file)
			}
			r.logger.Debug("Rendered %s", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("Rendered %d charts into %s in %.2fms", len(paths), dir, float64(time.Since(start).Nanoseconds())/1e6)
	return paths, nil
}

func (r *Renderer) saver(build func() (*plot.Plot, error)) func(string) error {
	return func(path string) error {
		p, err := build()
		if err != nil {
			return err
		}
		return p.Save(r.width, r.height, path)
	}
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func newBars(values plotter.Values, c color.Color) (*plotter.BarChart, error) {
	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	return bars, nil
}

func yearlySuicidesChart(country string, years []domainStats.YearSummary) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s suicides per year", country), "Year", "Suicides")
	values := make(plotter.Values, len(years))
	labels := make([]string, len(years))
	for i, y := range years {
		values[i] = float64(y.Suicides)
		labels[i] = strconv.Itoa(y.Year)
	}

	bars, err := newBars(values, plotutil.Color(0))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func sexChart(country string, pivot domainStats.SexByYear) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s suicides per year by sex", country), "Year", "Suicides")
	for i, sex := range pivot.Sexes {
		pts := make(plotter.XYs, len(pivot.Rows))
		for j, row := range pivot.Rows {
			pts[j] = plotter.XY{X: float64(row.Year), Y: float64(row.Count(sex))}
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(string(sex), line, points)
	}
	p.Legend.Top = true
	return p, nil
}

// gdpAndSuicidesChart stacks the GDP line above the suicides bars on one canvas
func (r *Renderer) gdpAndSuicidesChart(path, country string, years []domainStats.YearSummary) error {
	gdp := newPlot(fmt.Sprintf("%s GDP per year", country), "Year", "GDP ($)")
	pts := make(plotter.XYs, len(years))
	for i, y := range years {
		pts[i] = plotter.XY{X: float64(y.Year), Y: y.MeanGDP}
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(1)
	points.Color = plotutil.Color(1)
	gdp.Add(line, points)

	suicides, err := yearlySuicidesChart(country, years)
	if err != nil {
		return err
	}

	img := vgimg.New(r.width, r.height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 3 * vg.Millimeter,
	}
	plots := [][]*plot.Plot{{gdp}, {suicides}}
	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		plots[row][0].Draw(canvases[row][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func generationChart(country string, gens []domainStats.GenerationSummary) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s suicides by generation", country), "Generation", "Suicides")
	values := make(plotter.Values, len(gens))
	labels := make([]string, len(gens))
	for i, g := range gens {
		values[i] = float64(g.Suicides)
		labels[i] = g.Generation
	}

	bars, err := newBars(values, plotutil.Color(2))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func ageChart(country string, pivot domainStats.AgeByYear) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s mean suicide rate by age group", country), "Year", suicide.ColumnRatePer100k)
	for i, age := range pivot.AgeGroups {
		pts := make(plotter.XYs, 0, len(pivot.Rows))
		for _, row := range pivot.Rows {
			if v := row.Rate(age); !math.IsNaN(v) {
				pts = append(pts, plotter.XY{X: float64(row.Year), Y: v})
			}
		}
		if len(pts) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(age, line, points)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}

func gdpRateScatter(country string, ds suicide.CountryDataset) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s GDP vs suicide rate", country), "GDP ($)", suicide.ColumnRatePer100k)
	gdps, rates := ds.GDPs(), ds.Rates()
	pts := make(plotter.XYs, 0, len(rates))
	for i, rate := range rates {
		if !math.IsNaN(rate) {
			pts = append(pts, plotter.XY{X: gdps[i], Y: rate})
		}
	}
	if len(pts) == 0 {
		return p, nil
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.Color = plotutil.Color(3)
	scatter.Radius = vg.Points(2)
	p.Add(scatter)
	return p, nil
}

// rateDistributionChart draws a density histogram of the rates with a
// Gaussian KDE and dashed markers at the summary statistics
func rateDistributionChart(country string, rates []float64, summary domainStats.StatSummary) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s suicide rate distribution", country), suicide.ColumnRatePer100k, "Density")

	data := make([]float64, 0, len(rates))
	for _, v := range rates {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) < 2 || floats.Min(data) == floats.Max(data) {
		return p, nil
	}

	hist, err := plotter.NewHist(plotter.Values(data), histogramBins)
	if err != nil {
		return nil, err
	}
	hist.Normalize(1)
	hist.FillColor = color.RGBA{R: 135, G: 206, B: 235, A: 200}
	p.Add(hist)

	density := kde(data)
	lo, hi := floats.Min(data), floats.Max(data)
	curve := plotter.NewFunction(density)
	curve.XMin, curve.XMax = lo, hi
	curve.Samples = kdeSamples
	curve.Color = color.RGBA{B: 139, A: 255}
	curve.Width = vg.Points(1.5)
	p.Add(curve)
	p.Legend.Add("KDE", curve)

	top := 0.0
	for _, b := range hist.Bins {
		top = math.Max(top, b.Weight)
	}
	for i := 0; i < kdeSamples; i++ {
		top = math.Max(top, density(lo+(hi-lo)*float64(i)/float64(kdeSamples-1)))
	}

	markers := summaryMarkers(summary)
	for i, m := range markers {
		if math.IsNaN(m.x) {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{{X: m.x, Y: 0}, {X: m.x, Y: top}})
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(m.label, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}

// marker is a vertical line at x whose legend shows the statistic it marks
type marker struct {
	label string
	x     float64
}

// summaryMarkers places the mean, median and mode at their values and
// the spread statistics at their offset from the mean
func summaryMarkers(s domainStats.StatSummary) []marker {
	markers := []marker{
		{fmt.Sprintf("Mean: %.2f", s.Mean), s.Mean},
		{fmt.Sprintf("Median: %.2f", s.Median), s.Median},
	}
	if s.HasMode() {
		markers = append(markers, marker{fmt.Sprintf("Mode: %.2f", *s.Mode), *s.Mode})
	}
	return append(markers,
		marker{fmt.Sprintf("Variance: %.2f", s.Variance), s.Mean + s.Variance},
		marker{fmt.Sprintf("Std Dev (+): %.2f", s.StdDev), s.Mean + s.StdDev},
		marker{fmt.Sprintf("Std Dev (-): %.2f", s.StdDev), s.Mean - s.StdDev},
	)
}

// kde returns a Gaussian kernel density estimate of data using Scott's
// bandwidth, sigma * n^(-1/5)
func kde(data []float64) func(float64) float64 {
	est := &stats.KDE{
		Sample:    stats.Sample{Xs: data},
		Kernel:    stats.GaussianKernel,
		Bandwidth: stat.StdDev(data, nil) * math.Pow(float64(len(data)), -0.2),
	}
	return est.PDF
}

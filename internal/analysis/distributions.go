package analysis

import (
	"fmt"
	"math"

	domainStats "suicidestats/domain/stats"
	"suicidestats/internal"
	"suicidestats/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minFitSample is the smallest sample a Kolmogorov-Smirnov test is defined for
const minFitSample = 2

// FitTester runs one-sample Kolmogorov-Smirnov goodness-of-fit tests with
// parameters estimated from the sample itself
type FitTester struct {
	logger *internal.Logger
}

// NewFitTester creates a fit tester logging through logger
func NewFitTester(logger *internal.Logger) *FitTester {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FitTester{logger: logger.With("FitTester")}
}

// All runs the normal, Poisson and exponential tests in that order
func (ft *FitTester) All(column []float64) ([]domainStats.DistributionTestResult, error) {
	tests := []func([]float64) (domainStats.DistributionTestResult, error){
		ft.Normal,
		ft.Poisson,
		ft.Exponential,
	}

	results := make([]domainStats.DistributionTestResult, 0, len(tests))
	for _, test := range tests {
		res, err := test(column)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Normal tests against Normal(mean, population standard deviation)
func (ft *FitTester) Normal(column []float64) (domainStats.DistributionTestResult, error) {
	data, err := ft.sample(column, domainStats.DistributionNormal)
	if err != nil {
		return domainStats.DistributionTestResult{}, err
	}

	mu, sigma := stat.PopMeanStdDev(data, nil)
	if !(sigma > 0) {
		return ft.undefined(domainStats.DistributionNormal, len(data), map[string]float64{"mean": mu, "std": sigma}, "standard deviation is zero"), nil
	}

	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	return ksResult(domainStats.DistributionNormal, data, dist.CDF, map[string]float64{
		"mean": mu,
		"std":  sigma,
	}), nil
}

// Poisson tests against Poisson(lambda = mean). The step CDF is evaluated at
// the raw, possibly fractional, observations.
func (ft *FitTester) Poisson(column []float64) (domainStats.DistributionTestResult, error) {
	data, err := ft.sample(column, domainStats.DistributionPoisson)
	if err != nil {
		return domainStats.DistributionTestResult{}, err
	}

	lambda, _ := stats.Mean(data)
	if !(lambda > 0) {
		return ft.undefined(domainStats.DistributionPoisson, len(data), map[string]float64{"lambda": lambda}, "mean is not positive"), nil
	}

	dist := distuv.Poisson{Lambda: lambda}
	return ksResult(domainStats.DistributionPoisson, data, dist.CDF, map[string]float64{
		"lambda": lambda,
	}), nil
}

// Exponential tests against Exponential(loc = min, scale = mean)
func (ft *FitTester) Exponential(column []float64) (domainStats.DistributionTestResult, error) {
	data, err := ft.sample(column, domainStats.DistributionExponential)
	if err != nil {
		return domainStats.DistributionTestResult{}, err
	}

	loc, _ := stats.Min(data)
	scale, _ := stats.Mean(data)
	if !(scale > 0) {
		return ft.undefined(domainStats.DistributionExponential, len(data), map[string]float64{"loc": loc, "scale": scale}, "mean is not positive"), nil
	}

	dist := distuv.Exponential{Rate: 1 / scale}
	cdf := func(x float64) float64 { return dist.CDF(x - loc) }
	return ksResult(domainStats.DistributionExponential, data, cdf, map[string]float64{
		"loc":   loc,
		"scale": scale,
	}), nil
}

func (ft *FitTester) sample(column []float64, dist domainStats.Distribution) ([]float64, error) {
	data, missing := dropMissing(column)
	if missing > 0 {
		ft.logger.Warn("%s test: dropped %d missing values", dist, missing)
	}
	if len(data) < minFitSample {
		return nil, errors.InsufficientData(fmt.Sprintf(
			"%s fit test needs at least %d observations, got %d", dist, minFitSample, len(data)))
	}
	return data, nil
}

func ksResult(dist domainStats.Distribution, data []float64, cdf func(float64) float64, params map[string]float64) domainStats.DistributionTestResult {
	d := ksStatistic(data, cdf)
	p := kolmogorovSF(d, len(data))
	return domainStats.DistributionTestResult{
		Distribution: dist,
		Statistic:    d,
		PValue:       p,
		SampleSize:   len(data),
		Parameters:   params,
		Decision:     domainStats.DecideFit(p),
	}
}

// undefined reports a test whose fitted parameters admit no distribution.
// Statistic and p-value are NaN, which DecideFit maps to "does not fit".
func (ft *FitTester) undefined(dist domainStats.Distribution, n int, params map[string]float64, reason string) domainStats.DistributionTestResult {
	ft.logger.Warn("%s fit test is undefined: %s", dist, reason)
	return domainStats.DistributionTestResult{
		Distribution: dist,
		Statistic:    math.NaN(),
		PValue:       math.NaN(),
		SampleSize:   n,
		Parameters:   params,
		Decision:     domainStats.DecideFit(math.NaN()),
	}
}

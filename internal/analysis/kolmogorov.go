package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// asymptoticThreshold is the sample size above which the limiting
// Kolmogorov distribution replaces the exact one
const asymptoticThreshold = 10000

// ksStatistic returns the two-sided one-sample Kolmogorov-Smirnov statistic
// sup|F_n(x) - F(x)| of data against cdf
func ksStatistic(data []float64, cdf func(float64) float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	var d float64
	for i, x := range sorted {
		f := cdf(x)
		dPlus := float64(i+1)/n - f
		dMinus := f - float64(i)/n
		d = math.Max(d, math.Max(dPlus, dMinus))
	}
	return d
}

// kolmogorovSF returns P(D_n >= d) for the two-sided statistic
func kolmogorovSF(d float64, n int) float64 {
	switch {
	case math.IsNaN(d) || n < 1:
		return math.NaN()
	case d <= 0:
		return 1
	case d >= 1:
		return 0
	}
	if n > asymptoticThreshold {
		return kolmogorovAsymptoticSF(d * math.Sqrt(float64(n)))
	}
	return clamp01(1 - kolmogorovCDF(d, n))
}

// kolmogorovCDF computes P(D_n < d) with the Marsaglia-Tsang-Wang (2003)
// matrix method. Powers are rescaled by 1e140 steps tracked in a decimal
// exponent so large n does not overflow.
func kolmogorovCDF(d float64, n int) float64 {
	nf := float64(n)
	s := d * d * nf
	if s > 7.24 || (s > 3.76 && n > 99) {
		return 1 - 2*math.Exp(-(2.000071+0.331/math.Sqrt(nf)+1.409/nf)*s)
	}

	k := int(nf*d) + 1
	m := 2*k - 1
	h := float64(k) - nf*d

	H := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			if i-j+1 >= 0 {
				H.Set(i, j, 1)
			}
		}
	}
	for i := 0; i < m; i++ {
		H.Set(i, 0, H.At(i, 0)-math.Pow(h, float64(i+1)))
		H.Set(m-1, i, H.At(m-1, i)-math.Pow(h, float64(m-i)))
	}
	if 2*h-1 > 0 {
		H.Set(m-1, 0, H.At(m-1, 0)+math.Pow(2*h-1, float64(m)))
	}
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			if i-j+1 > 0 {
				v := H.At(i, j)
				for g := 1; g <= i-j+1; g++ {
					v /= float64(g)
				}
				H.Set(i, j, v)
			}
		}
	}

	Q, eQ := matrixPower(H, 0, n, k-1)
	s = Q.At(k-1, k-1)
	for i := 1; i <= n; i++ {
		s = s * float64(i) / nf
		if s < 1e-140 {
			s *= 1e140
			eQ -= 140
		}
	}
	return s * math.Pow(10, float64(eQ))
}

// matrixPower raises a to the n-th power by repeated squaring, returning the
// mantissa matrix and its decimal exponent
func matrixPower(a *mat.Dense, ea, n, centre int) (*mat.Dense, int) {
	if n == 1 {
		return mat.DenseCopyOf(a), ea
	}

	v, ev := matrixPower(a, ea, n/2, centre)
	sq := new(mat.Dense)
	sq.Mul(v, v)
	e := 2 * ev

	out := sq
	if n%2 == 1 {
		out = new(mat.Dense)
		out.Mul(a, sq)
		e += ea
	}
	if out.At(centre, centre) > 1e140 {
		out.Scale(1e-140, out)
		e += 140
	}
	return out, e
}

// kolmogorovAsymptoticSF is the survival function of the limiting
// Kolmogorov distribution at x = d*sqrt(n)
func kolmogorovAsymptoticSF(x float64) float64 {
	if x <= 0 {
		return 1
	}
	if x < 1 {
		// the theta-function form converges fast for small x
		var cdf float64
		for k := 1; k <= 20; k++ {
			t := float64(2*k - 1)
			cdf += math.Exp(-t * t * math.Pi * math.Pi / (8 * x * x))
		}
		return clamp01(1 - math.Sqrt(2*math.Pi)/x*cdf)
	}

	var sf float64
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * x * x)
		if k%2 == 1 {
			sf += term
		} else {
			sf -= term
		}
		if term < 1e-17 {
			break
		}
	}
	return clamp01(2 * sf)
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}

package model

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// StdDev is the sample standard deviation (n-1 denominator). NaN below two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

// Median uses the same linear interpolation as Quantile.
func Median(values []float64) (float64, error) {
	cp := make([]float64, len(values))
	copy(cp, values)
	sort.Float64s(cp)
	return Quantile(cp, 0.5)
}

// Pearson correlation. NaN when either series has zero variance.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

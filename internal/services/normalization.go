package services

import (
	"math"

	"github.com/alimgiray/gitaudit/internal/models"
)

// Normalized values are clamped to [0, 1] and rounded to three decimals.
const normalizedPlaces = 3

func finishNormalized(v float64) float64 {
	return models.Round(clamp01(v), normalizedPlaces)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// NormalizeRelative is min-max scaling within the population. When every
// value is identical, v scores 1 if it reaches the maximum and 0 otherwise.
func NormalizeRelative(v float64, population []float64) float64 {
	if len(population) == 0 {
		return 0
	}
	lo, hi := population[0], population[0]
	for _, x := range population[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if hi == lo {
		if v >= hi {
			return 1
		}
		return 0
	}
	return finishNormalized((v - lo) / (hi - lo))
}

// NormalizeAbsolute interpolates v between poor and excellent. With
// inverted set, lower values are better and excellent lies below poor.
func NormalizeAbsolute(v, excellent, poor float64, inverted bool) float64 {
	return finishNormalized(linearScore(v, excellent, poor, inverted))
}

// NormalizeAbsoluteRange scores 1 inside [excellentMin, excellentMax] and
// decays linearly to 0 at poorMin below the band and poorMax above it.
func NormalizeAbsoluteRange(v, excellentMin, excellentMax, poorMin, poorMax float64) float64 {
	return finishNormalized(bandScore(v, models.Band{
		ExcellentMin: excellentMin,
		ExcellentMax: excellentMax,
		PoorMin:      poorMin,
		PoorMax:      poorMax,
	}))
}

// NormalizeStatistical is the tie-aware percentile rank of v:
// (count below + half the count equal) / population size.
func NormalizeStatistical(v float64, population []float64) float64 {
	if len(population) == 0 {
		return 0
	}
	below, equal := 0, 0
	for _, x := range population {
		switch {
		case x < v:
			below++
		case x == v:
			equal++
		}
	}
	return finishNormalized((float64(below) + 0.5*float64(equal)) / float64(len(population)))
}

// linearScore is the unrounded [0, 1] interpolation behind NormalizeAbsolute
func linearScore(v, excellent, poor float64, inverted bool) float64 {
	if inverted {
		switch {
		case v <= excellent:
			return 1
		case v >= poor:
			return 0
		}
		return 1 - (v-excellent)/(poor-excellent)
	}

	switch {
	case v >= excellent:
		return 1
	case v <= poor:
		return 0
	}
	return (v - poor) / (excellent - poor)
}

// bandScore is the unrounded [0, 1] score behind NormalizeAbsoluteRange
func bandScore(v float64, b models.Band) float64 {
	switch {
	case v >= b.ExcellentMin && v <= b.ExcellentMax:
		return 1
	case v < b.ExcellentMin:
		if v <= b.PoorMin {
			return 0
		}
		return (v - b.PoorMin) / (b.ExcellentMin - b.PoorMin)
	default:
		if v >= b.PoorMax {
			return 0
		}
		return 1 - (v-b.ExcellentMax)/(b.PoorMax-b.ExcellentMax)
	}
}

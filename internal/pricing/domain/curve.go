package domain

import (
	"math"
	"sort"
)

// RateCurve is a piecewise-linear term structure of zero rates with flat
// extrapolation beyond its endpoints. It is immutable once constructed and
// safe for concurrent read access by every worker in a pricing run.
type RateCurve struct {
	maturities []float64
	rates      []float64
}

// NewRateCurve builds a RateCurve from a maturity (years) to zero-rate
// mapping. It fails when the mapping is empty, any maturity is not
// strictly positive, or any rate is negative.
func NewRateCurve(points map[float64]float64) (*RateCurve, error) {
	if len(points) == 0 {
		return nil, newInvalidArgument("rate curve requires at least one point")
	}

	maturities := make([]float64, 0, len(points))
	for m := range points {
		if m <= 0 {
			return nil, newInvalidArgument("rate curve maturity must be positive, got %v", m)
		}
		if points[m] < 0 {
			return nil, newInvalidArgument("rate curve rate must be non-negative, got %v at maturity %v", points[m], m)
		}
		maturities = append(maturities, m)
	}
	sort.Float64s(maturities)

	rates := make([]float64, len(maturities))
	for i, m := range maturities {
		rates[i] = points[m]
	}

	return &RateCurve{maturities: maturities, rates: rates}, nil
}

// Rate returns the flat-extrapolated, piecewise-linearly-interpolated zero
// rate at maturity tau.
func (c *RateCurve) Rate(tau float64) float64 {
	n := len(c.maturities)
	if tau <= c.maturities[0] {
		return c.rates[0]
	}
	if tau >= c.maturities[n-1] {
		return c.rates[n-1]
	}

	// binary search for the smallest index whose maturity is >= tau
	i := sort.SearchFloat64s(c.maturities, tau)
	if c.maturities[i] == tau {
		return c.rates[i]
	}

	lo, hi := i-1, i
	m0, m1 := c.maturities[lo], c.maturities[hi]
	r0, r1 := c.rates[lo], c.rates[hi]
	weight := (tau - m0) / (m1 - m0)
	return r0 + weight*(r1-r0)
}

// Discount returns the continuously-compounded discount factor exp(-r(tau)*tau).
func (c *RateCurve) Discount(tau float64) float64 {
	return math.Exp(-c.Rate(tau) * tau)
}

// RatesView returns a defensive copy of the underlying maturity-to-rate
// mapping. Go has no read-only map type, so mutating the returned map is a
// programming error by convention: it never feeds back into the curve.
func (c *RateCurve) RatesView() map[float64]float64 {
	view := make(map[float64]float64, len(c.maturities))
	for i, m := range c.maturities {
		view[m] = c.rates[i]
	}
	return view
}

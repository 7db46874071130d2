package domain

import (
	"math"

	"golang.org/x/exp/rand"
)

// largeIntensityThreshold is the λΔt above which Knuth's multiplicative
// Poisson sampler is replaced by a normal approximation, per the design
// note that the naive method degrades for large jump rates: its expected
// iteration count grows linearly with λΔt.
const largeIntensityThreshold = 30.0

// PathGenerator draws a single sample trajectory of the Merton
// jump-diffusion model in log-space, using the Euler-Maruyama
// discretisation. A PathGenerator is not safe for concurrent use; each
// worker owns one, backed by its own PRNG.
type PathGenerator struct {
	market *MarketData
	rng    *rand.Rand
}

// NewPathGenerator builds a generator over market data, drawing randomness
// from rng. Callers are responsible for giving each worker its own rng
// (see newWorkerRand); the generator never shares RNG state.
func NewPathGenerator(market *MarketData, rng *rand.Rand) *PathGenerator {
	return &PathGenerator{market: market, rng: rng}
}

// Generate fills path with M+1 asset prices {S0, S_dt, ..., S_MΔt}, where
// M = len(path)-1 and dt is the step size in years. path is reused
// scratch space owned exclusively by the calling worker.
func (g *PathGenerator) Generate(path []float64, dt float64) {
	m := g.market
	steps := len(path) - 1
	sqrtDt := math.Sqrt(dt)
	muJ := m.MeanJumpLogReturn()
	kappa := m.JumpCompensator()
	halfVar := 0.5 * m.Sigma * m.Sigma

	s := m.S0
	path[0] = s

	for i := 1; i <= steps; i++ {
		t := float64(i) * dt

		var r float64
		if m.RiskNeutral {
			r = m.Curve.Rate(t)
		} else {
			r = m.Mu
		}
		theta := r - m.Lambda*kappa - halfVar

		dw := sqrtDt * g.rng.NormFloat64()

		var jumpSum float64
		numJumps := g.poisson(m.Lambda * dt)
		for j := 0; j < numJumps; j++ {
			y := muJ
			if m.SigmaJ > 0 {
				y += m.SigmaJ * g.rng.NormFloat64()
			}
			jumpSum += y
		}

		dLogS := theta*dt + m.Sigma*dw + jumpSum
		s *= math.Exp(dLogS)
		path[i] = s
	}
}

// poisson draws a Poisson(lambdaDt)-distributed number of jump events.
// For lambdaDt <= largeIntensityThreshold it uses Knuth's multiplicative
// method; above the threshold it falls back to a normal approximation
// with continuity correction to avoid the unbounded iteration count the
// naive method exhibits for large intensities (see design notes).
func (g *PathGenerator) poisson(lambdaDt float64) int {
	if lambdaDt <= 0 {
		return 0
	}
	if lambdaDt > largeIntensityThreshold {
		return g.poissonNormalApprox(lambdaDt)
	}
	return knuthPoisson(lambdaDt, g.rng)
}

func knuthPoisson(lambdaDt float64, rng *rand.Rand) int {
	l := math.Exp(-lambdaDt)
	k := 0
	p := 1.0
	for {
		k++
		p *= rng.Float64()
		if p <= l {
			break
		}
	}
	return k - 1
}

func (g *PathGenerator) poissonNormalApprox(lambdaDt float64) int {
	z := g.rng.NormFloat64()
	x := lambdaDt + math.Sqrt(lambdaDt)*z + 0.5
	if x < 0 {
		return 0
	}
	return int(math.Floor(x))
}

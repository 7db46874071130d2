package domain

import "math"

// MarketData is the immutable bundle of jump-diffusion model parameters
// shared read-only by every worker in a pricing run.
type MarketData struct {
	Curve *RateCurve

	// Sigma is the diffusion volatility (σ), must be >= 0.
	Sigma float64
	// Mu is the real-world drift (μ), unconstrained.
	Mu float64
	// Lambda is the jump intensity (λ), must be >= 0.
	Lambda float64
	// Gamma is the mean jump-size factor (γ), must be >= 0.
	Gamma float64
	// SigmaJ is the jump-size log-volatility (σ_J), must be >= 0.
	SigmaJ float64
	// S0 is the initial spot price, must be > 0.
	S0 float64
	// RiskNeutral selects whether the Path Generator uses the curve's
	// instantaneous rate (true) or Mu (false) as the effective drift.
	RiskNeutral bool
}

// NewMarketData validates and constructs a MarketData record.
func NewMarketData(curve *RateCurve, sigma, mu, lambda, gamma, sigmaJ, s0 float64, riskNeutral bool) (*MarketData, error) {
	if curve == nil {
		return nil, newNullInput("rate curve")
	}
	if sigma < 0 {
		return nil, newInvalidArgument("sigma must be non-negative, got %v", sigma)
	}
	if lambda < 0 {
		return nil, newInvalidArgument("lambda must be non-negative, got %v", lambda)
	}
	if gamma < 0 {
		return nil, newInvalidArgument("gamma must be non-negative, got %v", gamma)
	}
	if sigmaJ < 0 {
		return nil, newInvalidArgument("sigmaJ must be non-negative, got %v", sigmaJ)
	}
	if s0 <= 0 {
		return nil, newInvalidArgument("s0 must be positive, got %v", s0)
	}

	return &MarketData{
		Curve:       curve,
		Sigma:       sigma,
		Mu:          mu,
		Lambda:      lambda,
		Gamma:       gamma,
		SigmaJ:      sigmaJ,
		S0:          s0,
		RiskNeutral: riskNeutral,
	}, nil
}

// MeanJumpLogReturn returns μ_J = ln(1+γ) - ½σ_J², the mean of the
// log-jump-size distribution Y ~ N(μ_J, σ_J²), calibrated so that
// E[e^Y - 1] = γ.
func (m *MarketData) MeanJumpLogReturn() float64 {
	return math.Log1p(m.Gamma) - 0.5*m.SigmaJ*m.SigmaJ
}

// JumpCompensator returns κ = γ, the drift adjustment λκ that keeps the
// discounted asset price a martingale under the risk-neutral measure.
func (m *MarketData) JumpCompensator() float64 {
	return m.Gamma
}

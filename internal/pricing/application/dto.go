// Package application is the pricing engine's boundary layer: it
// translates wire-friendly DTOs (using decimal.Decimal, the way the
// rest of the platform represents money) into domain types, calls the
// domain estimators, and translates the result back.
package application

import (
	"github.com/shopspring/decimal"

	"github.com/white07S/OptionPricing/internal/pricing/domain"
)

// RateCurvePoint is one (maturity, rate) node of a term structure, as
// received over the wire.
type RateCurvePoint struct {
	Maturity float64 `json:"maturity"`
	Rate     float64 `json:"rate"`
}

// MarketDataInput is the wire representation of domain.MarketData.
type MarketDataInput struct {
	Curve       []RateCurvePoint `json:"curve" binding:"required,min=1"`
	Sigma       float64          `json:"sigma"`
	Mu          float64          `json:"mu"`
	Lambda      float64          `json:"lambda"`
	Gamma       float64          `json:"gamma"`
	SigmaJ      float64          `json:"sigma_j"`
	S0          decimal.Decimal  `json:"s0"`
	RiskNeutral bool             `json:"risk_neutral"`
}

// ContractInput is the wire representation of domain.Contract.
type ContractInput struct {
	Family        string          `json:"family" binding:"required"`
	Side          string          `json:"side" binding:"required"`
	Strike        decimal.Decimal `json:"strike"`
	Maturity      float64         `json:"maturity"`
	ExerciseTimes []float64       `json:"exercise_times,omitempty"`
}

// PriceRequest is the full pricing request accepted at the HTTP layer.
type PriceRequest struct {
	Market      MarketDataInput `json:"market"`
	Contract    ContractInput   `json:"contract"`
	Simulations int             `json:"simulations"`
	Workers     int             `json:"workers"`
	Seed        uint64          `json:"seed"`
}

// PriceResult is the response returned for a successful pricing run.
type PriceResult struct {
	Price decimal.Decimal `json:"price"`
	Model string          `json:"model"`
}

func toRateCurve(points []RateCurvePoint) (*domain.RateCurve, error) {
	m := make(map[float64]float64, len(points))
	for _, p := range points {
		m[p.Maturity] = p.Rate
	}
	return domain.NewRateCurve(m)
}

func toMarketData(in MarketDataInput) (*domain.MarketData, error) {
	curve, err := toRateCurve(in.Curve)
	if err != nil {
		return nil, err
	}
	s0, _ := in.S0.Float64()
	return domain.NewMarketData(curve, in.Sigma, in.Mu, in.Lambda, in.Gamma, in.SigmaJ, s0, in.RiskNeutral)
}

func toSide(s string) (domain.Side, error) {
	switch s {
	case "call", "CALL", "Call":
		return domain.Call, nil
	case "put", "PUT", "Put":
		return domain.Put, nil
	default:
		return 0, domain.NewInvalidArgumentError("unknown option side: %q", s)
	}
}

func toContract(in ContractInput) (*domain.Contract, error) {
	side, err := toSide(in.Side)
	if err != nil {
		return nil, err
	}
	strike, _ := in.Strike.Float64()

	switch in.Family {
	case "european", "European":
		return domain.NewEuropeanOption(strike, in.Maturity, side)
	case "american", "American":
		return domain.NewAmericanOption(strike, in.Maturity, side)
	case "bermudan", "Bermudan":
		return domain.NewBermudanOption(strike, in.Maturity, side, in.ExerciseTimes)
	default:
		return nil, domain.NewInvalidArgumentError("unknown option family: %q", in.Family)
	}
}

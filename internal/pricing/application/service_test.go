package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func validMarket() MarketDataInput {
	return MarketDataInput{
		Curve:       []RateCurvePoint{{Maturity: 1, Rate: 0.03}},
		Sigma:       0.2,
		Mu:          0.05,
		Lambda:      0.1,
		Gamma:       0.05,
		SigmaJ:      0.1,
		S0:          decimal.NewFromInt(100),
		RiskNeutral: true,
	}
}

func TestPriceRejectsUnknownFamily(t *testing.T) {
	svc := NewPricingService(1000, 4, 1000000, 32)
	req := PriceRequest{
		Market: validMarket(),
		Contract: ContractInput{
			Family: "bogus",
			Side:   "call",
			Strike: decimal.NewFromInt(100),
			Maturity: 1,
		},
	}
	if _, err := svc.Price(context.Background(), req); err == nil {
		t.Fatal("expected error for unknown contract family")
	}
}

func TestPriceRejectsUnknownSide(t *testing.T) {
	svc := NewPricingService(1000, 4, 1000000, 32)
	req := PriceRequest{
		Market: validMarket(),
		Contract: ContractInput{
			Family:   "european",
			Side:     "sideways",
			Strike:   decimal.NewFromInt(100),
			Maturity: 1,
		},
	}
	if _, err := svc.Price(context.Background(), req); err == nil {
		t.Fatal("expected error for unknown option side")
	}
}

func TestPriceDefaultsSimulationSizing(t *testing.T) {
	svc := NewPricingService(5000, 4, 1000000, 32)
	req := PriceRequest{
		Market: validMarket(),
		Contract: ContractInput{
			Family:   "european",
			Side:     "call",
			Strike:   decimal.NewFromInt(100),
			Maturity: 1,
		},
		Seed: 1,
	}
	result, err := svc.Price(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.Model != "european" {
		t.Errorf("expected european model, got %q", result.Model)
	}
	if result.Price.IsNegative() {
		t.Errorf("expected non-negative price, got %v", result.Price)
	}
}

func TestResolveSizingRejectsOutOfRange(t *testing.T) {
	svc := NewPricingService(1000, 4, 5000, 16)
	if _, _, err := svc.resolveSizing(10000, 4); err == nil {
		t.Fatal("expected error for simulations above max")
	}
	if _, _, err := svc.resolveSizing(1000, 100); err == nil {
		t.Fatal("expected error for workers above max")
	}
}

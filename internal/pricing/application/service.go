package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/white07S/OptionPricing/internal/pricing/domain"
)

// PricingService is the facade the HTTP interface calls: it owns the
// engine-wide defaults for simulation size and worker count, decodes
// wire DTOs into domain types, and dispatches to the estimator that
// matches the contract's exercise family.
type PricingService struct {
	DefaultPaths   int
	DefaultWorkers int
	MaxPaths       int
	MaxWorkers     int
}

// NewPricingService builds a facade with the given engine-wide defaults.
func NewPricingService(defaultPaths, defaultWorkers, maxPaths, maxWorkers int) *PricingService {
	return &PricingService{
		DefaultPaths:   defaultPaths,
		DefaultWorkers: defaultWorkers,
		MaxPaths:       maxPaths,
		MaxWorkers:     maxWorkers,
	}
}

// Price validates and decodes req, then runs the appropriate estimator.
func (s *PricingService) Price(ctx context.Context, req PriceRequest) (*PriceResult, error) {
	market, err := toMarketData(req.Market)
	if err != nil {
		return nil, err
	}
	contract, err := toContract(req.Contract)
	if err != nil {
		return nil, err
	}

	n, w, err := s.resolveSizing(req.Simulations, req.Workers)
	if err != nil {
		return nil, err
	}

	var price float64
	var model string
	switch contract.Family() {
	case domain.European:
		model = "european"
		price, err = domain.PriceEuropean(ctx, contract, market, n, w, req.Seed, nil)
	case domain.American, domain.Bermudan:
		model = "longstaff_schwartz"
		price, err = domain.PriceLSM(ctx, contract, market, n, w, req.Seed, nil)
	default:
		return nil, domain.NewInvalidArgumentError("unhandled contract family %v", contract.Family())
	}
	if err != nil {
		return nil, err
	}

	return &PriceResult{
		Price: decimal.NewFromFloat(price),
		Model: model,
	}, nil
}

func (s *PricingService) resolveSizing(simulations, workers int) (int, int, error) {
	n := simulations
	if n == 0 {
		n = s.DefaultPaths
	}
	w := workers
	if w == 0 {
		w = s.DefaultWorkers
	}
	if n < 0 || (s.MaxPaths > 0 && n > s.MaxPaths) {
		return 0, 0, domain.NewInvalidArgumentError("simulations out of range: %d", n)
	}
	if w < 0 || (s.MaxWorkers > 0 && w > s.MaxWorkers) {
		return 0, 0, domain.NewInvalidArgumentError("workers out of range: %d", w)
	}
	return n, w, nil
}

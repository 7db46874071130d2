package domain

import (
	"context"

	"golang.org/x/exp/rand"
)

// europeanSteps is the fixed path length for European pricing. Only the
// terminal price is consumed, but the source hard-codes 100 steps even
// though a single big step would suffice when there are no path-dependent
// payoffs and λ is small; this repo preserves that behaviour by default
// (see design notes) rather than silently changing the discretisation.
const europeanSteps = 100

// PriceEuropean prices a European contract as the mean discounted
// terminal payoff over N simulated paths, split across W workers.
func PriceEuropean(ctx context.Context, contract *Contract, market *MarketData, n, w int, seed uint64, progress ProgressFunc) (float64, error) {
	if contract == nil {
		return 0, newNullInput("option contract")
	}
	if market == nil {
		return 0, newNullInput("market data")
	}
	if contract.Family() != European {
		return 0, newUnsupportedFamily(contract.Family())
	}
	if err := validateSizing(n, w); err != nil {
		return 0, err
	}

	dt := contract.Maturity() / float64(europeanSteps)
	partialSums := make([]float64, w)

	err := runParallel(ctx, n, w, seed, progress, func(ctx context.Context, workerIndex, start, count int, rng *rand.Rand) error {
		gen := NewPathGenerator(market, rng)
		path := make([]float64, europeanSteps+1)
		var sum float64
		for i := 0; i < count; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			gen.Generate(path, dt)
			sum += contract.ImmediatePayoff(path[europeanSteps])
		}
		partialSums[workerIndex] = sum
		return nil
	})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, s := range partialSums {
		total += s
	}
	mean := total / float64(n)
	return mean * market.Curve.Discount(contract.Maturity()), nil
}

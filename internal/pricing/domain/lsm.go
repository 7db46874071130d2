package domain

import (
	"context"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/white07S/OptionPricing/pkg/logger"
)

// lsmSteps is the number of time steps used for both American and
// Bermudan pricing, per §4.6.
const lsmSteps = 50

// minRegressionPoints is the minimum in-the-money population size the
// continuation-value regression is attempted on. Below it, three basis
// coefficients (1, S, S²) are underdetermined by construction, so the
// step falls back to "continue holding" without ever calling into gonum;
// this is the "implementer's choice of threshold" §4.6 allows.
const minRegressionPoints = 3

// PriceLSM prices an American or Bermudan contract with the
// Longstaff-Schwartz algorithm: N simulated paths, backward induction
// with an OLS continuation-value regression at each exercise step.
func PriceLSM(ctx context.Context, contract *Contract, market *MarketData, n, w int, seed uint64, progress ProgressFunc) (float64, error) {
	if contract == nil {
		return 0, newNullInput("option contract")
	}
	if market == nil {
		return 0, newNullInput("market data")
	}
	if err := validateSizing(n, w); err != nil {
		return 0, err
	}

	var exerciseSteps []bool
	switch contract.Family() {
	case American:
		exerciseSteps = make([]bool, lsmSteps+1)
		for t := 1; t <= lsmSteps; t++ {
			exerciseSteps[t] = true
		}
	case Bermudan:
		dt := contract.Maturity() / float64(lsmSteps)
		exerciseSteps = make([]bool, lsmSteps+1)
		for _, date := range contract.ExerciseTimes() {
			step := int(math.Round(date / dt))
			if step >= 1 && step <= lsmSteps {
				exerciseSteps[step] = true
			}
		}
	default:
		return 0, newUnsupportedFamily(contract.Family())
	}

	dt := contract.Maturity() / float64(lsmSteps)

	prices := mat.NewDense(n, lsmSteps+1, nil)
	cashflows := mat.NewDense(n, lsmSteps+1, nil)

	err := runParallel(ctx, n, w, seed, progress, func(ctx context.Context, workerIndex, start, count int, rng *rand.Rand) error {
		gen := NewPathGenerator(market, rng)
		path := make([]float64, lsmSteps+1)
		for i := 0; i < count; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			gen.Generate(path, dt)
			prices.SetRow(start+i, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Terminal cash flows: exactly the immediate payoff at maturity.
	for i := 0; i < n; i++ {
		cashflows.Set(i, lsmSteps, contract.ImmediatePayoff(prices.At(i, lsmSteps)))
	}

	degenerateSteps := 0
	exerciseStepCount := 0

	// Backward induction, single-threaded per §5.
	for t := lsmSteps - 1; t >= 1; t-- {
		discount := math.Exp(-market.Curve.Rate(float64(t)*dt) * dt)

		// Default: every path propagates its discounted future cash
		// flow. Rows selected for exercise below overwrite this.
		for i := 0; i < n; i++ {
			cashflows.Set(i, t, cashflows.At(i, t+1)*discount)
		}

		if !exerciseSteps[t] {
			continue
		}
		exerciseStepCount++

		itmIndices := make([]int, 0, n)
		itmPrices := make([]float64, 0, n)
		itmPayoffs := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			s := prices.At(i, t)
			payoff := contract.ImmediatePayoff(s)
			if payoff > 0 {
				itmIndices = append(itmIndices, i)
				itmPrices = append(itmPrices, s)
				itmPayoffs = append(itmPayoffs, payoff)
			}
		}
		if len(itmIndices) == 0 {
			continue
		}

		itmTargets := make([]float64, len(itmIndices))
		for idx, i := range itmIndices {
			itmTargets[idx] = cashflows.At(i, t+1) * discount
		}
		coeffs, degenerate := regressContinuation(itmPrices, itmTargets)
		if degenerate {
			degenerateSteps++
			logger.Get().Debug("regression degenerate, defaulting to continue",
				"step", t, "in_the_money_count", len(itmIndices))
			// Every path keeps the propagated value set above.
			continue
		}

		for idx, i := range itmIndices {
			s := itmPrices[idx]
			payoff := itmPayoffs[idx]
			continuation := coeffs[0] + coeffs[1]*s + coeffs[2]*s*s
			if payoff >= continuation {
				cashflows.Set(i, t, payoff)
				for j := t + 1; j <= lsmSteps; j++ {
					cashflows.Set(i, j, 0)
				}
			}
			// else: already holds the propagated value set above.
		}
	}

	if degenerateSteps > 0 {
		logger.Get().Debug("longstaff-schwartz regression degenerate on some steps",
			"degenerate_steps", degenerateSteps, "total_exercise_steps", exerciseStepCount)
	}

	initialDiscount := math.Exp(-market.Curve.Rate(0) * dt)
	var sum float64
	for i := 0; i < n; i++ {
		sum += cashflows.At(i, 1) * initialDiscount
	}
	return sum / float64(n), nil
}

// regressContinuation fits Y = β0 + β1·S + β2·S² over the in-the-money
// subset via ordinary least squares, where prices and targets are
// parallel slices (targets[i] is the discounted future cash flow for
// the path with spot prices[i]). It returns a zero coefficient vector and
// true when there are too few points or the design matrix is singular —
// gonum's own failure signal for a degenerate regression; PriceLSM then
// keeps every path holding at that step.
func regressContinuation(prices, targets []float64) ([3]float64, bool) {
	m := len(prices)
	if m < minRegressionPoints {
		return [3]float64{}, true
	}

	basis := mat.NewDense(m, minRegressionPoints, nil)
	y := mat.NewVecDense(m, targets)
	for row, s := range prices {
		basis.Set(row, 0, 1)
		basis.Set(row, 1, s)
		basis.Set(row, 2, s*s)
	}

	var coeffs mat.VecDense
	if err := coeffs.SolveVec(basis, y); err != nil {
		return [3]float64{}, true
	}
	return [3]float64{coeffs.AtVec(0), coeffs.AtVec(1), coeffs.AtVec(2)}, false
}

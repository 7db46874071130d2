package domain

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestPathGeneratorStartsAtS0(t *testing.T) {
	curve, _ := NewRateCurve(map[float64]float64{1: 0.03})
	market, err := NewMarketData(curve, 0.2, 0.05, 0, 0, 0, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	gen := NewPathGenerator(market, rand.New(rand.NewSource(1)))
	path := make([]float64, 11)
	gen.Generate(path, 0.1)
	if path[0] != 100 {
		t.Errorf("path[0] = %v, want S0 = 100", path[0])
	}
	for i, s := range path {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatalf("path[%d] = %v is not a finite positive price", i, s)
		}
	}
}

func TestPathGeneratorNoJumpsWhenLambdaZero(t *testing.T) {
	curve, _ := NewRateCurve(map[float64]float64{1: 0.03})
	market, err := NewMarketData(curve, 0.2, 0.05, 0, 0.1, 0.1, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	gen := NewPathGenerator(market, rand.New(rand.NewSource(7)))
	if gen.poisson(0) != 0 {
		t.Fatal("poisson(0) must always be 0")
	}
}

func TestKnuthPoissonMeanApproximatesLambda(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	const lambdaDt = 2.5
	const trials = 20000
	sum := 0
	for i := 0; i < trials; i++ {
		sum += knuthPoisson(lambdaDt, rng)
	}
	mean := float64(sum) / float64(trials)
	if math.Abs(mean-lambdaDt) > 0.1 {
		t.Errorf("empirical mean %v too far from lambda*dt %v", mean, lambdaDt)
	}
}

func TestPoissonSwitchesToNormalApproxAboveThreshold(t *testing.T) {
	curve, _ := NewRateCurve(map[float64]float64{1: 0.03})
	market, err := NewMarketData(curve, 0.2, 0.05, 100, 0.05, 0.1, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	gen := NewPathGenerator(market, rand.New(rand.NewSource(9)))
	// lambda*dt = 100*1 = 100, comfortably above largeIntensityThreshold.
	n := gen.poisson(100)
	if n < 0 {
		t.Fatalf("poisson count must be non-negative, got %d", n)
	}
	ref := NewPathGenerator(market, rand.New(rand.NewSource(9)))
	if want := ref.poissonNormalApprox(100); n != want {
		t.Fatalf("poisson(100) = %d, want the normal-approximation draw %d", n, want)
	}
}

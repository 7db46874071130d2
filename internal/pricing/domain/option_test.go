package domain

import "testing"

func TestNewEuropeanOptionValidation(t *testing.T) {
	if _, err := NewEuropeanOption(0, 1, Call); err == nil {
		t.Fatal("expected error for zero strike")
	}
	if _, err := NewEuropeanOption(100, 0, Call); err == nil {
		t.Fatal("expected error for zero maturity")
	}
	c, err := NewEuropeanOption(100, 1, Put)
	if err != nil {
		t.Fatal(err)
	}
	if c.Family() != European || c.Side() != Put {
		t.Fatalf("unexpected contract: %+v", c)
	}
	if c.ExerciseTimes() != nil {
		t.Fatal("European contract should not report exercise times")
	}
}

func TestNewBermudanOptionValidatesExerciseTimes(t *testing.T) {
	if _, err := NewBermudanOption(100, 1, Call, nil); err == nil {
		t.Fatal("expected error for empty exercise times")
	}
	if _, err := NewBermudanOption(100, 1, Call, []float64{0}); err == nil {
		t.Fatal("expected error for exercise time <= 0")
	}
	if _, err := NewBermudanOption(100, 1, Call, []float64{1}); err == nil {
		t.Fatal("expected error for exercise time >= maturity")
	}
	c, err := NewBermudanOption(100, 1, Call, []float64{0.25, 0.5, 0.75})
	if err != nil {
		t.Fatal(err)
	}
	times := c.ExerciseTimes()
	if len(times) != 3 {
		t.Fatalf("expected 3 exercise times, got %d", len(times))
	}
	times[0] = 999
	if c.ExerciseTimes()[0] == 999 {
		t.Fatal("ExerciseTimes() must return a defensive copy")
	}
}

func TestImmediatePayoff(t *testing.T) {
	call, err := NewEuropeanOption(100, 1, Call)
	if err != nil {
		t.Fatal(err)
	}
	if got := call.ImmediatePayoff(120); got != 20 {
		t.Errorf("call ITM payoff = %v, want 20", got)
	}
	if got := call.ImmediatePayoff(80); got != 0 {
		t.Errorf("call OTM payoff = %v, want 0", got)
	}

	put, err := NewEuropeanOption(100, 1, Put)
	if err != nil {
		t.Fatal(err)
	}
	if got := put.ImmediatePayoff(80); got != 20 {
		t.Errorf("put ITM payoff = %v, want 20", got)
	}
	if got := put.ImmediatePayoff(120); got != 0 {
		t.Errorf("put OTM payoff = %v, want 0", got)
	}
}

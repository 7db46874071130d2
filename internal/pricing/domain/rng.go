package domain

import "golang.org/x/exp/rand"

// splitMix64 derives a well-distributed per-worker seed from a single run
// seed and a worker index, so that nearby base seeds (or nearby worker
// indices) don't produce correlated streams. This is the "SplitMix-seeded"
// scheme the design notes call for in place of ambient thread-local
// randomness: every worker gets its own independent rand.Source.
func splitMix64(seed uint64) uint64 {
	seed += 0x9E3779B97F4A7C15
	z := seed
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// newWorkerRand returns a PRNG exclusively owned by one worker, seeded
// deterministically from the run seed and the worker's index so a run is
// reproducible given the same (seed, workerCount) pair.
func newWorkerRand(runSeed uint64, workerIndex int) *rand.Rand {
	s := splitMix64(runSeed + uint64(workerIndex)*0x2545F4914F6CDD1D)
	return rand.New(rand.NewSource(s))
}

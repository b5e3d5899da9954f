package fractal

import "math/rand/v2"

// Source is the random stream consumed by the stochastic generators.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// NewSource returns a deterministic Source for seed. Two sources created with
// the same seed produce identical streams.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newEntropySource returns an unseeded Source, used when a caller does not
// ask for reproducible output.
func newEntropySource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func sourceOrEntropy(src Source) Source {
	if src == nil {
		return newEntropySource()
	}
	return src
}

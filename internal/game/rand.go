package game

import "github.com/valyala/fastrand"

// Rand is the source of randomness for shuffles and draws.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// FastRand draws from fastrand and is safe for concurrent use.
type FastRand struct{}

var _ Rand = FastRand{}

func (FastRand) Intn(n int) int {
	return int(fastrand.Uint32n(uint32(n)))
}

func (f FastRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, f.Intn(i+1))
	}
}

// Pick returns a uniformly drawn element of pool, or "" for an empty pool.
func Pick(rng Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}

// Shuffled returns a shuffled copy of ids.
func Shuffled(rng Rand, ids []string) []string {
	out := append([]string(nil), ids...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

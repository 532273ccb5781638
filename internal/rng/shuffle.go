package rng

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Intn returns a uniform random integer in [0, n) using crypto/rand.
func Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("rng: n must be > 0, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Shuffle performs a Fisher-Yates shuffle over n elements, calling swap for
// each exchange. Every permutation is equally likely, unlike sorting by a
// random key where comparator ties skew the distribution.
func Shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := Intn(i + 1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

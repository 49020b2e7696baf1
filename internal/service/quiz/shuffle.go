package quiz

import "math/rand"

// Shuffle permutes items in place with the Fisher-Yates algorithm.
func Shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

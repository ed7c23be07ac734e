package shelf

import (
	"math/rand/v2"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
)

// Source picks a uniform index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic source for tests and replays.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a freshly seeded source. Use one per fetch so
// shelf order is not cached between loads.
func NewRandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Shuffle performs an in-place Fisher-Yates shuffle.
func Shuffle(products []domain.Product, src Source) {
	if src == nil {
		return
	}
	for i := len(products) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		products[i], products[j] = products[j], products[i]
	}
}

package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Sampler выбирает случайное подмножество без повторов (частичный Фишер-Йетс).
// Безопасен для конкурентного использования.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler создает Sampler. При nil источнике используется PCG с сидом от времени.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
	return &Sampler{rng: rand.New(src)}
}

// Sample возвращает n случайных элементов items. Исходный срез не изменяется.
// Если n <= 0 или n >= len(items), возвращается копия всех элементов.
func Sample[T any](s *Sampler, items []T, n int) []T {
	pool := make([]T, len(items))
	copy(pool, items)
	if n <= 0 || n >= len(pool) {
		return pool
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

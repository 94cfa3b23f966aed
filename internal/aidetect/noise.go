package aidetect

import (
	"math/rand"
	"sync"
	"time"
)

// Noise supplies the symmetric jitter added to the final score.
type Noise interface {
	// Jitter returns a value in [-magnitude, magnitude].
	Jitter(magnitude float64) float64
}

// NoNoise disables jitter.
type NoNoise struct{}

func (NoNoise) Jitter(float64) float64 { return 0 }

// RandomNoise draws uniform jitter from a seeded source. It is safe for concurrent use.
type RandomNoise struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomNoise seeds the source with seed, or with the clock when seed is negative.
func NewRandomNoise(seed int64) *RandomNoise {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomNoise{rng: rand.New(rand.NewSource(seed))}
}

func (n *RandomNoise) Jitter(magnitude float64) float64 {
	n.mu.Lock()
	u := n.rng.Float64()
	n.mu.Unlock()
	return (u - 0.5) * 2 * magnitude
}

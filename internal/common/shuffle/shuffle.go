package shuffle

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_shuffler.go github.com/tmcfarlane/whoami/internal/common/shuffle Shuffler

// Shuffler produces a uniformly random permutation of a set of player IDs
type Shuffler interface {
	Shuffle(ids []string) []string
}

// Config for the default shuffler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// DefaultShuffler implements Shuffler with a seeded math/rand source
type DefaultShuffler struct {
	random *rand.Rand
}

// New creates a new shuffler
func New(cfg *Config) *DefaultShuffler {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &DefaultShuffler{
		random: rand.New(source),
	}
}

// Shuffle returns a shuffled copy of ids. The input is not modified.
func (s *DefaultShuffler) Shuffle(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	s.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

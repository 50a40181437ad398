package charger

import (
	"errors"
	"math/rand"

	"github.com/betsim/betroute/core/model"
)

// ErrNoCharger indicates that no compatible charger exists for a required
// stop. This is a fatal configuration error for the routing request.
var ErrNoCharger = errors.New("charger: no compatible charger")

// DefaultNearestCandidates is the number of nearest chargers the selector
// draws from.
const DefaultNearestCandidates = 2

// Selector picks a charger near a stop location. The random source is
// injected per worker so concurrent requests never share RNG state.
type Selector struct {
	dir *Directory
	k   int
	rng *rand.Rand
}

// NewSelector returns a selector drawing uniformly among the k nearest
// compatible chargers. A non-positive k falls back to the default.
func NewSelector(dir *Directory, k int, rng *rand.Rand) *Selector {
	if k <= 0 {
		k = DefaultNearestCandidates
	}
	return &Selector{dir: dir, k: k, rng: rng}
}

// Select returns a charger compatible with the given charger types near the
// stop location.
func (s *Selector) Select(at model.Coord, chargerTypes []string) (model.Charger, error) {
	candidates := s.dir.Nearest(at, chargerTypes, s.k)
	if len(candidates) == 0 {
		return model.Charger{}, ErrNoCharger
	}
	return candidates[s.rng.Intn(len(candidates))], nil
}

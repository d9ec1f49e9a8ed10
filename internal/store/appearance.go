package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

// AppearanceUpdate restyles a plant. Nil fields are left alone.
type AppearanceUpdate struct {
	Species  *model.Species  `validate:"-"`
	PotStyle *model.PotStyle `validate:"omitnil,pot_style"`
	PotColor *model.PotColor `validate:"omitnil,pot_color"`
}

// SetAppearance applies u to friendID's plant. A species outside the
// friend's tier set is rejected with ErrSpeciesNotAllowed.
func (s *Store) SetAppearance(friendID string, u AppearanceUpdate) (Outcome, error) {
	if err := s.check(u); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.friendIndex(friendID)
	if i < 0 {
		s.log.Debug("set appearance: not found", zap.String("friend_id", friendID))
		return NotFound, nil
	}
	tier := s.friends[i].Tier

	a, ok := s.appearances[friendID]
	if !ok {
		a = randomAppearance(friendID, tier, s.rng)
	}
	next := a
	if u.Species != nil {
		if !u.Species.AllowedFor(tier) {
			return 0, fmt.Errorf("%w: %s for tier %d", ErrSpeciesNotAllowed, *u.Species, tier)
		}
		next.Species = *u.Species
	}
	if u.PotStyle != nil {
		next.PotStyle = *u.PotStyle
	}
	if u.PotColor != nil {
		next.PotColor = *u.PotColor
	}

	s.appearances[friendID] = next
	if ok && next == a {
		return Unchanged, nil
	}
	return Applied, nil
}

// Appearance returns a friend's plant.
func (s *Store) Appearance(friendID string) (model.Appearance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appearances[friendID]
	return a, ok
}

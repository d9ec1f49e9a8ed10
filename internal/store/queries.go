package store

import (
	"github.com/lazypower/tended/internal/health"
	"github.com/lazypower/tended/internal/model"
	"github.com/lazypower/tended/internal/timeline"
)

// Metrics computes the health bundle for a friend in any garden.
func (s *Store) Metrics(friendID string) (health.Metrics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.friendIndex(friendID)
	if i < 0 {
		return health.Metrics{}, false
	}
	return health.MetricsOf(s.friends[i], s.interactions, s.now()), true
}

// AllMetrics computes health for every friend of the active garden, in
// creation order.
func (s *Store) AllMetrics() []health.Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	friends := s.activeFriendsLocked(func(model.Friend) bool { return true })
	out := make([]health.Metrics, 0, len(friends))
	for _, f := range friends {
		out = append(out, health.MetricsOf(f, s.interactions, now))
	}
	return out
}

// NeedingAttention returns the active garden's friends whose status is
// cooling or at risk. Dormant friends are left out.
func (s *Store) NeedingAttention() []model.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	return s.activeFriendsLocked(func(f model.Friend) bool {
		return health.MetricsOf(f, s.interactions, now).Status.NeedsAttention()
	})
}

// UpcomingDates lists birthdays and significant dates of the active garden
// falling within horizonDays of now, soonest first.
func (s *Store) UpcomingDates(horizonDays int) []timeline.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friends := s.activeFriendsLocked(func(model.Friend) bool { return true })
	return timeline.Upcoming(friends, horizonDays, s.now())
}

package store

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

// NewInteraction holds the fields for LogInteraction. A zero At means now.
type NewInteraction struct {
	Type        model.InteractionType `validate:"interaction_type"`
	Note        string                `validate:"max=2000"`
	InitiatedBy model.Initiator       `validate:"initiator"`
	At          time.Time             `validate:"-"`
}

// LogInteraction records a contact with friendID and refreshes the friend's
// UpdatedAt. An unknown friend yields NotFound and a zero Interaction.
func (s *Store) LogInteraction(friendID string, in NewInteraction) (model.Interaction, Outcome, error) {
	if err := s.check(in); err != nil {
		return model.Interaction{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.friendIndex(friendID)
	if i < 0 {
		s.log.Debug("log interaction: friend not found", zap.String("friend_id", friendID))
		return model.Interaction{}, NotFound, nil
	}

	now := s.now()
	at := in.At
	if at.IsZero() {
		at = now
	}
	it := model.Interaction{
		ID:          s.newID(),
		FriendID:    friendID,
		Type:        in.Type,
		At:          at,
		Note:        in.Note,
		InitiatedBy: in.InitiatedBy,
	}
	s.interactions = append(s.interactions, it)
	s.friends[i].UpdatedAt = now

	s.log.Debug("interaction logged",
		zap.String("interaction_id", it.ID),
		zap.String("friend_id", friendID),
		zap.String("type", string(it.Type)))
	return it, Applied, nil
}

// DeleteInteraction removes one interaction. The friend's UpdatedAt is not
// touched.
func (s *Store) DeleteInteraction(id string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.interactionIndex(id)
	if i < 0 {
		s.log.Debug("delete interaction: not found", zap.String("interaction_id", id))
		return NotFound
	}
	s.interactions = slices.Delete(s.interactions, i, i+1)
	return Applied
}

// InteractionsFor returns a friend's interactions, newest first.
func (s *Store) InteractionsFor(friendID string) []model.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Interaction
	for _, it := range s.interactions {
		if it.FriendID == friendID {
			out = append(out, it)
		}
	}
	sortNewestFirst(out)
	return out
}

// RecentInteractions returns the latest interactions across all gardens,
// newest first. limit <= 0 means DefaultRecentLimit.
func (s *Store) RecentInteractions(limit int) []model.Interaction {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.RLock()
	out := slices.Clone(s.interactions)
	s.mu.RUnlock()

	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortNewestFirst(its []model.Interaction) {
	slices.SortStableFunc(its, func(a, b model.Interaction) int {
		return b.At.Compare(a.At)
	})
}

package store

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.Snapshot{
		Gardens:        slices.Clone(s.gardens),
		ActiveGardenID: s.activeGardenID,
		Friends:        make([]model.Friend, 0, len(s.friends)),
		Interactions:   slices.Clone(s.interactions),
		Appearances:    make([]model.Appearance, 0, len(s.appearances)),
	}
	for _, f := range s.friends {
		snap.Friends = append(snap.Friends, f.Clone())
		if a, ok := s.appearances[f.ID]; ok {
			snap.Appearances = append(snap.Appearances, a)
		}
	}
	if snap.Gardens == nil {
		snap.Gardens = []model.Garden{}
	}
	if snap.Interactions == nil {
		snap.Interactions = []model.Interaction{}
	}
	return snap
}

// Restore replaces the whole state with snap. Snapshots with dangling
// references, bad tiers, broken tier histories or misfit species are
// rejected with ErrInvalidSnapshot and the current state is kept. Friends
// without a plant get a fresh one.
func (s *Store) Restore(snap model.Snapshot) error {
	if err := verifySnapshot(snap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gardens = slices.Clone(snap.Gardens)
	s.activeGardenID = snap.ActiveGardenID
	if s.activeGardenID == "" && len(s.gardens) > 0 {
		s.activeGardenID = s.gardens[0].ID
	}

	s.friends = make([]model.Friend, 0, len(snap.Friends))
	for _, f := range snap.Friends {
		s.friends = append(s.friends, f.Clone())
	}
	s.interactions = slices.Clone(snap.Interactions)

	s.appearances = make(map[string]model.Appearance, len(snap.Friends))
	for _, a := range snap.Appearances {
		s.appearances[a.FriendID] = a
	}
	generated := 0
	for _, f := range s.friends {
		if _, ok := s.appearances[f.ID]; !ok {
			s.appearances[f.ID] = randomAppearance(f.ID, f.Tier, s.rng)
			generated++
		}
	}

	s.log.Debug("state restored",
		zap.Int("gardens", len(s.gardens)),
		zap.Int("friends", len(s.friends)),
		zap.Int("interactions", len(s.interactions)),
		zap.Int("appearances_generated", generated))
	return nil
}

func verifySnapshot(snap model.Snapshot) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
	}

	gardens := make(map[string]bool, len(snap.Gardens))
	for _, g := range snap.Gardens {
		if g.ID == "" {
			return invalid("garden with empty id")
		}
		if gardens[g.ID] {
			return invalid("duplicate garden %s", g.ID)
		}
		gardens[g.ID] = true
	}
	if snap.ActiveGardenID != "" && !gardens[snap.ActiveGardenID] {
		return invalid("active garden %s does not exist", snap.ActiveGardenID)
	}

	tiers := make(map[string]model.Tier, len(snap.Friends))
	for _, f := range snap.Friends {
		if f.ID == "" {
			return invalid("friend with empty id")
		}
		if _, dup := tiers[f.ID]; dup {
			return invalid("duplicate friend %s", f.ID)
		}
		if !gardens[f.GardenID] {
			return invalid("friend %s references unknown garden %s", f.ID, f.GardenID)
		}
		if !f.Tier.Valid() {
			return invalid("friend %s has tier %d", f.ID, f.Tier)
		}
		if len(f.TierHistory) == 0 || f.TierHistory[len(f.TierHistory)-1].Tier != f.Tier {
			return invalid("friend %s tier history does not end at tier %d", f.ID, f.Tier)
		}
		for i, c := range f.TierHistory {
			if !c.Tier.Valid() {
				return invalid("friend %s tier history entry %d has tier %d", f.ID, i, c.Tier)
			}
			if i > 0 && c.At.Before(f.TierHistory[i-1].At) {
				return invalid("friend %s tier history is out of order", f.ID)
			}
		}
		for _, r := range f.Roles {
			if !r.Valid() {
				return invalid("friend %s has role %q", f.ID, r)
			}
		}
		if f.Birthday != nil && !f.Birthday.Valid() {
			return invalid("friend %s birthday %s is not a calendar day", f.ID, f.Birthday)
		}
		for _, d := range f.ImportantDates {
			if !d.Date.Valid() {
				return invalid("friend %s date %q is not a calendar day", f.ID, d.Label)
			}
		}
		tiers[f.ID] = f.Tier
	}

	seen := make(map[string]bool, len(snap.Interactions))
	for _, it := range snap.Interactions {
		if seen[it.ID] {
			return invalid("duplicate interaction %s", it.ID)
		}
		seen[it.ID] = true
		if _, ok := tiers[it.FriendID]; !ok {
			return invalid("interaction %s references unknown friend %s", it.ID, it.FriendID)
		}
		if !it.Type.Valid() || !it.InitiatedBy.Valid() {
			return invalid("interaction %s has type %q initiator %q", it.ID, it.Type, it.InitiatedBy)
		}
	}

	plants := make(map[string]bool, len(snap.Appearances))
	for _, a := range snap.Appearances {
		tier, ok := tiers[a.FriendID]
		if !ok {
			return invalid("appearance references unknown friend %s", a.FriendID)
		}
		if plants[a.FriendID] {
			return invalid("friend %s has two appearances", a.FriendID)
		}
		plants[a.FriendID] = true
		if !a.Species.AllowedFor(tier) {
			return invalid("friend %s species %s does not fit tier %d", a.FriendID, a.Species, tier)
		}
		if !a.PotStyle.Valid() || !a.PotColor.Valid() {
			return invalid("friend %s pot %q/%q", a.FriendID, a.PotStyle, a.PotColor)
		}
	}
	return nil
}

package store

import (
	"math/rand"
	"slices"

	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

// NewFriend holds the fields for AddFriend. Name and Tier are required.
type NewFriend struct {
	Name           string                  `validate:"required,max=200"`
	Tier           model.Tier              `validate:"tier"`
	Roles          []model.Role            `validate:"dive,role"`
	Photo          string                  `validate:"max=2048"`
	Location       *model.Location         `validate:"-"`
	Birthday       *model.MonthDay         `validate:"-"`
	ImportantDates []model.SignificantDate `validate:"-"`
	Profile        *model.Profile          `validate:"-"`
}

// FriendUpdate holds the friend fields to change. Nil fields are left alone.
// Tier changes go through ChangeTier.
type FriendUpdate struct {
	Name           *string                  `validate:"omitnil,min=1,max=200"`
	Photo          *string                  `validate:"omitnil,max=2048"`
	Roles          *[]model.Role            `validate:"omitnil,dive,role"`
	Location       *model.Location          `validate:"-"`
	ClearLocation  bool                     `validate:"-"`
	Birthday       *model.MonthDay          `validate:"-"`
	ClearBirthday  bool                     `validate:"-"`
	ImportantDates *[]model.SignificantDate `validate:"-"`
	Profile        *model.Profile           `validate:"-"`
}

// AddFriend creates a friend in gardenID with a freshly drawn plant.
// It returns ErrNoActiveGarden when gardenID is empty or unknown.
func (s *Store) AddFriend(gardenID string, in NewFriend) (model.Friend, error) {
	if err := s.check(in); err != nil {
		return model.Friend{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addFriendLocked(gardenID, in)
}

func (s *Store) addFriendLocked(gardenID string, in NewFriend) (model.Friend, error) {
	if gardenID == "" || s.gardenIndex(gardenID) < 0 {
		return model.Friend{}, ErrNoActiveGarden
	}

	now := s.now()
	f := model.Friend{
		ID:             s.newID(),
		GardenID:       gardenID,
		Name:           in.Name,
		Photo:          in.Photo,
		Tier:           in.Tier,
		Roles:          dedupeRoles(in.Roles),
		Location:       in.Location,
		Birthday:       in.Birthday,
		ImportantDates: in.ImportantDates,
		Profile:        in.Profile,
		TierHistory:    []model.TierChange{{Tier: in.Tier, At: now}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f = f.Clone()

	s.friends = append(s.friends, f)
	s.appearances[f.ID] = randomAppearance(f.ID, f.Tier, s.rng)

	s.log.Debug("friend added",
		zap.String("friend_id", f.ID),
		zap.String("garden_id", gardenID),
		zap.Int("tier", int(f.Tier)))
	return f.Clone(), nil
}

// UpdateFriend merges the non-nil fields of u and always refreshes UpdatedAt.
func (s *Store) UpdateFriend(id string, u FriendUpdate) (Outcome, error) {
	if err := s.check(u); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.friendIndex(id)
	if i < 0 {
		s.log.Debug("update friend: not found", zap.String("friend_id", id))
		return NotFound, nil
	}

	f := &s.friends[i]
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Photo != nil {
		f.Photo = *u.Photo
	}
	if u.Roles != nil {
		f.Roles = dedupeRoles(*u.Roles)
	}
	switch {
	case u.ClearLocation:
		f.Location = nil
	case u.Location != nil:
		loc := *u.Location
		f.Location = &loc
	}
	switch {
	case u.ClearBirthday:
		f.Birthday = nil
	case u.Birthday != nil:
		b := *u.Birthday
		f.Birthday = &b
	}
	if u.ImportantDates != nil {
		f.ImportantDates = slices.Clone(*u.ImportantDates)
	}
	if u.Profile != nil {
		p := u.Profile.Clone()
		f.Profile = &p
	}
	f.UpdatedAt = s.now()
	return Applied, nil
}

// ChangeTier moves a friend to tier, appending to its tier history. The
// plant's species is redrawn only if it does not fit the new tier; pot
// style and color are kept. Changing to the current tier is a no-op.
func (s *Store) ChangeTier(id string, tier model.Tier, reason string) (Outcome, error) {
	if !tier.Valid() {
		return 0, s.check(struct {
			Tier model.Tier `validate:"tier"`
		}{tier})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.friendIndex(id)
	if i < 0 {
		s.log.Debug("change tier: not found", zap.String("friend_id", id))
		return NotFound, nil
	}
	f := &s.friends[i]
	if f.Tier == tier {
		return Unchanged, nil
	}

	now := s.now()
	from := f.Tier
	f.TierHistory = append(f.TierHistory, model.TierChange{Tier: tier, At: now, Reason: reason})
	f.Tier = tier
	f.UpdatedAt = now

	if a, ok := s.appearances[id]; ok {
		if next, changed := reassignSpecies(a, tier, s.rng); changed {
			s.appearances[id] = next
			s.log.Debug("plant reassigned",
				zap.String("friend_id", id),
				zap.String("from", string(a.Species)),
				zap.String("to", string(next.Species)))
		}
	}

	s.log.Debug("tier changed",
		zap.String("friend_id", id),
		zap.Int("from", int(from)),
		zap.Int("to", int(tier)))
	return Applied, nil
}

// RemoveFriend deletes a friend with its interactions and plant.
func (s *Store) RemoveFriend(id string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.friendIndex(id) < 0 {
		s.log.Debug("remove friend: not found", zap.String("friend_id", id))
		return NotFound
	}
	s.removeFriends(map[string]bool{id: true})
	s.log.Debug("friend removed", zap.String("friend_id", id))
	return Applied
}

// Friend returns the friend with the given id, in any garden.
func (s *Store) Friend(id string) (model.Friend, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.friendIndex(id); i >= 0 {
		return s.friends[i].Clone(), true
	}
	return model.Friend{}, false
}

// Friends returns the friends of the active garden in creation order.
func (s *Store) Friends() []model.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeFriendsLocked(func(model.Friend) bool { return true })
}

// FriendsByTier returns the active garden's friends at tier.
func (s *Store) FriendsByTier(tier model.Tier) []model.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeFriendsLocked(func(f model.Friend) bool { return f.Tier == tier })
}

func (s *Store) activeFriendsLocked(keep func(model.Friend) bool) []model.Friend {
	var out []model.Friend
	if s.activeGardenID == "" {
		return out
	}
	for _, f := range s.friends {
		if f.GardenID == s.activeGardenID && keep(f) {
			out = append(out, f.Clone())
		}
	}
	return out
}

func dedupeRoles(roles []model.Role) []model.Role {
	out := make([]model.Role, 0, len(roles))
	for _, r := range roles {
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// randomAppearance draws species from the tier's set, pot style and color
// independently and uniformly.
func randomAppearance(friendID string, tier model.Tier, rng *rand.Rand) model.Appearance {
	return model.Appearance{
		FriendID: friendID,
		Species:  pick(model.SpeciesFor(tier), rng),
		PotStyle: pick(model.PotStyles, rng),
		PotColor: pick(model.PotColors, rng),
	}
}

// reassignSpecies redraws a's species from tier's set when the current one
// does not fit. It reports whether anything changed.
func reassignSpecies(a model.Appearance, tier model.Tier, rng *rand.Rand) (model.Appearance, bool) {
	if a.Species.AllowedFor(tier) {
		return a, false
	}
	a.Species = pick(model.SpeciesFor(tier), rng)
	return a, true
}

func pick[T any](options []T, rng *rand.Rand) T {
	return options[rng.Intn(len(options))]
}

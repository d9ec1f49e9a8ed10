package store

import (
	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

type newGarden struct {
	Name        string `validate:"required,max=100"`
	Icon        string `validate:"max=16"`
	Description string `validate:"max=500"`
}

// GardenUpdate holds the garden fields to change. Nil fields are left alone.
type GardenUpdate struct {
	Name        *string `validate:"omitnil,min=1,max=100"`
	Icon        *string `validate:"omitnil,max=16"`
	Description *string `validate:"omitnil,max=500"`
}

// CreateGarden adds a garden. The first garden created becomes active when
// no garden is active.
func (s *Store) CreateGarden(name, icon, description string) (model.Garden, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createGardenLocked(name, icon, description, false)
}

func (s *Store) createGardenLocked(name, icon, description string, demo bool) (model.Garden, error) {
	if err := s.check(newGarden{Name: name, Icon: icon, Description: description}); err != nil {
		return model.Garden{}, err
	}
	if icon == "" {
		icon = model.DefaultGardenIcon
	}
	g := model.Garden{
		ID:          s.newID(),
		Name:        name,
		Icon:        icon,
		Description: description,
		IsDemo:      demo,
		CreatedAt:   s.now(),
	}
	s.gardens = append(s.gardens, g)
	if s.activeGardenID == "" {
		s.activeGardenID = g.ID
	}
	s.log.Debug("garden created", zap.String("garden_id", g.ID), zap.Bool("demo", demo))
	return g, nil
}

// UpdateGarden changes a garden's name, icon or description.
func (s *Store) UpdateGarden(id string, u GardenUpdate) (Outcome, error) {
	if err := s.check(u); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gardenIndex(id)
	if i < 0 {
		s.log.Debug("update garden: not found", zap.String("garden_id", id))
		return NotFound, nil
	}
	g := &s.gardens[i]
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Icon != nil {
		g.Icon = *u.Icon
		if g.Icon == "" {
			g.Icon = model.DefaultGardenIcon
		}
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	return Applied, nil
}

// DeleteGarden removes a garden with every friend in it and their
// interactions and plants. If it was active, the first remaining garden
// becomes active, or none.
func (s *Store) DeleteGarden(id string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gardenIndex(id)
	if i < 0 {
		s.log.Debug("delete garden: not found", zap.String("garden_id", id))
		return NotFound
	}

	doomed := make(map[string]bool)
	for _, f := range s.friends {
		if f.GardenID == id {
			doomed[f.ID] = true
		}
	}
	s.removeFriends(doomed)
	s.gardens = append(s.gardens[:i], s.gardens[i+1:]...)

	if s.activeGardenID == id {
		s.activeGardenID = ""
		if len(s.gardens) > 0 {
			s.activeGardenID = s.gardens[0].ID
		}
	}
	s.log.Debug("garden deleted",
		zap.String("garden_id", id),
		zap.Int("friends_removed", len(doomed)),
		zap.String("active_garden_id", s.activeGardenID))
	return Applied
}

// SwitchGarden makes id the active garden.
func (s *Store) SwitchGarden(id string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gardenIndex(id) < 0 {
		s.log.Debug("switch garden: not found", zap.String("garden_id", id))
		return NotFound
	}
	if s.activeGardenID == id {
		return Unchanged
	}
	s.activeGardenID = id
	return Applied
}

// ClearGarden removes every friend of the active garden, with their
// interactions and plants. The garden itself stays.
func (s *Store) ClearGarden() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeGardenID == "" {
		return NotFound
	}
	doomed := make(map[string]bool)
	for _, f := range s.friends {
		if f.GardenID == s.activeGardenID {
			doomed[f.ID] = true
		}
	}
	if len(doomed) == 0 {
		return Unchanged
	}
	s.removeFriends(doomed)
	s.log.Debug("garden cleared", zap.String("garden_id", s.activeGardenID), zap.Int("friends_removed", len(doomed)))
	return Applied
}

// Garden returns the garden with the given id.
func (s *Store) Garden(id string) (model.Garden, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.gardenIndex(id); i >= 0 {
		return s.gardens[i], true
	}
	return model.Garden{}, false
}

// Gardens returns all gardens in creation order.
func (s *Store) Gardens() []model.Garden {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Garden(nil), s.gardens...)
}

// ActiveGarden returns the active garden, if any.
func (s *Store) ActiveGarden() (model.Garden, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.gardenIndex(s.activeGardenID); i >= 0 {
		return s.gardens[i], true
	}
	return model.Garden{}, false
}

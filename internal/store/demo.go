package store

import (
	"time"

	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

const (
	demoGardenName = "Demo Garden"
	demoGardenIcon = "🌸"
)

type demoFriend struct {
	name     string
	tier     model.Tier
	birthday *model.MonthDay
}

func birthday(y, m, d int) *model.MonthDay {
	return &model.MonthDay{Year: y, Month: time.Month(m), Day: d}
}

var demoFriends = []demoFriend{
	{"Maya Chen", model.TierInnerCircle, birthday(1992, 3, 15)},
	{"James Wilson", model.TierInnerCircle, birthday(1990, 7, 22)},
	{"Sofia Rodriguez", model.TierCloseFriend, birthday(1994, 11, 8)},
	{"Alex Kim", model.TierCloseFriend, nil},
	{"Emma Thompson", model.TierGoodFriend, birthday(1991, 2, 14)},
	{"Marcus Johnson", model.TierGoodFriend, nil},
	{"Priya Patel", model.TierFriend, nil},
	{"Jordan Lee", model.TierFriend, nil},
	{"Sam Rivera", model.TierAcquaintance, nil},
	{"Taylor Swift", model.TierAcquaintance, nil},
}

// demo interactions leave out group hangouts
var demoInteractionTypes = model.InteractionTypes[:6]

// LoadDemoData switches to the demo garden, creating it if needed, and
// seeds it with ten friends and a spread of past interactions. Closer tiers
// get more and fresher contacts.
func (s *Store) LoadDemoData() (model.Garden, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var garden model.Garden
	found := false
	for _, g := range s.gardens {
		if g.IsDemo {
			garden, found = g, true
			break
		}
	}
	if !found {
		// Creating sets the garden active only when none is.
		g, err := s.createGardenLocked(demoGardenName, demoGardenIcon, "", true)
		if err != nil {
			return model.Garden{}, err
		}
		garden = g
	}
	s.activeGardenID = garden.ID

	now := s.now()
	logged := 0
	for idx, d := range demoFriends {
		f, err := s.addFriendLocked(garden.ID, NewFriend{Name: d.name, Tier: d.tier, Birthday: d.birthday})
		if err != nil {
			return model.Garden{}, err
		}

		count := max(1, 6-int(d.tier))
		for range count {
			daysAgo := s.rng.Intn(int(d.tier) * 20)
			if idx%3 == 0 {
				daysAgo += 30
			}
			by := model.InitiatedByThem
			if s.rng.Float64() > 0.5 {
				by = model.InitiatedByMe
			}
			s.interactions = append(s.interactions, model.Interaction{
				ID:          s.newID(),
				FriendID:    f.ID,
				Type:        pick(demoInteractionTypes, s.rng),
				At:          now.AddDate(0, 0, -daysAgo),
				InitiatedBy: by,
			})
			logged++
		}
	}

	s.log.Info("demo data loaded",
		zap.String("garden_id", garden.ID),
		zap.Int("friends", len(demoFriends)),
		zap.Int("interactions", logged))
	return garden, nil
}

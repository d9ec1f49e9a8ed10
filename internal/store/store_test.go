package store

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/tended/internal/health"
	"github.com/lazypower/tended/internal/model"
)

var testStart = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testStore(t *testing.T) (*Store, *clock) {
	t.Helper()
	c := &clock{t: testStart}
	n := 0
	s := New(
		WithClock(c.now),
		WithRand(rand.New(rand.NewSource(42))),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return s, c
}

func mustGarden(t *testing.T, s *Store, name string) model.Garden {
	t.Helper()
	g, err := s.CreateGarden(name, "", "")
	require.NoError(t, err)
	return g
}

func mustFriend(t *testing.T, s *Store, gardenID, name string, tier model.Tier) model.Friend {
	t.Helper()
	f, err := s.AddFriend(gardenID, NewFriend{Name: name, Tier: tier})
	require.NoError(t, err)
	return f
}

func mustLog(t *testing.T, s *Store, friendID string, in NewInteraction) model.Interaction {
	t.Helper()
	it, out, err := s.LogInteraction(friendID, in)
	require.NoError(t, err)
	require.Equal(t, Applied, out)
	return it
}

func TestCreateGardenActivatesFirst(t *testing.T) {
	s, _ := testStore(t)

	_, ok := s.ActiveGarden()
	assert.False(t, ok)

	home := mustGarden(t, s, "Home")
	assert.Equal(t, model.DefaultGardenIcon, home.Icon)
	work := mustGarden(t, s, "Work")

	active, ok := s.ActiveGarden()
	require.True(t, ok)
	assert.Equal(t, home.ID, active.ID)

	assert.Equal(t, Applied, s.SwitchGarden(work.ID))
	assert.Equal(t, Unchanged, s.SwitchGarden(work.ID))
	assert.Equal(t, NotFound, s.SwitchGarden("nope"))

	active, _ = s.ActiveGarden()
	assert.Equal(t, work.ID, active.ID)
}

func TestCreateGardenValidates(t *testing.T) {
	s, _ := testStore(t)

	_, err := s.CreateGarden("", "", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
	assert.Empty(t, s.Gardens())
}

func TestUpdateGarden(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")

	name, icon := "Family", ""
	out, err := s.UpdateGarden(g.ID, GardenUpdate{Name: &name, Icon: &icon})
	require.NoError(t, err)
	assert.Equal(t, Applied, out)

	got, ok := s.Garden(g.ID)
	require.True(t, ok)
	assert.Equal(t, "Family", got.Name)
	assert.Equal(t, model.DefaultGardenIcon, got.Icon)

	out, err = s.UpdateGarden("nope", GardenUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, NotFound, out)

	empty := ""
	_, err = s.UpdateGarden(g.ID, GardenUpdate{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddFriendNeedsGarden(t *testing.T) {
	s, _ := testStore(t)

	_, err := s.AddFriend("", NewFriend{Name: "Maya", Tier: 1})
	assert.ErrorIs(t, err, ErrNoActiveGarden)

	_, err = s.AddFriend("missing", NewFriend{Name: "Maya", Tier: 1})
	assert.ErrorIs(t, err, ErrNoActiveGarden)
}

func TestAddFriendValidates(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")

	tests := []struct {
		name string
		in   NewFriend
		msg  string
	}{
		{"empty name", NewFriend{Tier: 1}, "name is required"},
		{"tier zero", NewFriend{Name: "Maya"}, "tier 0 out of range"},
		{"tier six", NewFriend{Name: "Maya", Tier: 6}, "tier 6 out of range"},
		{"bad role", NewFriend{Name: "Maya", Tier: 1, Roles: []model.Role{"pilot"}}, "not a known role"},
		{"impossible birthday", NewFriend{Name: "Maya", Tier: 1, Birthday: &model.MonthDay{Month: time.February, Day: 31}}, "birthday 02-31 is not a calendar day"},
		{"impossible important date", NewFriend{Name: "Maya", Tier: 1, ImportantDates: []model.SignificantDate{
			{Label: "Anniversary", Date: model.MonthDay{Month: 13, Day: 1}},
		}}, "importantdates 13-01 is not a calendar day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddFriend(g.ID, tt.in)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
	assert.Empty(t, s.Friends())
}

func TestAddFriendInitialState(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")

	f, err := s.AddFriend(g.ID, NewFriend{
		Name:  "Maya",
		Tier:  model.TierCloseFriend,
		Roles: []model.Role{model.RoleAdventure, model.RoleAdventure, model.RoleFunEnergy},
	})
	require.NoError(t, err)

	assert.Equal(t, g.ID, f.GardenID)
	assert.Equal(t, []model.Role{model.RoleAdventure, model.RoleFunEnergy}, f.Roles)
	require.Len(t, f.TierHistory, 1)
	assert.Equal(t, model.TierCloseFriend, f.TierHistory[0].Tier)
	assert.Equal(t, testStart, f.CreatedAt)
	assert.Equal(t, testStart, f.UpdatedAt)

	a, ok := s.Appearance(f.ID)
	require.True(t, ok)
	assert.True(t, a.Species.AllowedFor(model.TierCloseFriend))
	assert.True(t, a.PotStyle.Valid())
	assert.True(t, a.PotColor.Valid())
}

func TestFriendReturnsCopy(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")
	f, err := s.AddFriend(g.ID, NewFriend{Name: "Maya", Tier: 1, Roles: []model.Role{model.RoleFunEnergy}})
	require.NoError(t, err)

	f.Roles[0] = model.RoleMentor
	f.TierHistory[0].Tier = 5

	got, _ := s.Friend(f.ID)
	assert.Equal(t, model.RoleFunEnergy, got.Roles[0])
	assert.Equal(t, model.Tier(1), got.TierHistory[0].Tier)
}

func TestUpdateFriend(t *testing.T) {
	s, c := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", 1)

	c.advance(time.Hour)
	name := "Maya Chen"
	bday, err := model.ParseMonthDay("1992-03-15")
	require.NoError(t, err)
	out, err := s.UpdateFriend(f.ID, FriendUpdate{
		Name:     &name,
		Birthday: &bday,
		Location: &model.Location{City: "Portland", Region: "OR"},
	})
	require.NoError(t, err)
	assert.Equal(t, Applied, out)

	got, _ := s.Friend(f.ID)
	assert.Equal(t, "Maya Chen", got.Name)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, time.March, got.Birthday.Month)
	assert.Equal(t, "Portland", got.Location.City)
	assert.Equal(t, model.Tier(1), got.Tier)
	assert.Equal(t, testStart.Add(time.Hour), got.UpdatedAt)

	// empty update still refreshes UpdatedAt
	c.advance(time.Hour)
	out, err = s.UpdateFriend(f.ID, FriendUpdate{ClearLocation: true})
	require.NoError(t, err)
	assert.Equal(t, Applied, out)
	got, _ = s.Friend(f.ID)
	assert.Nil(t, got.Location)
	assert.NotNil(t, got.Birthday)
	assert.Equal(t, testStart.Add(2*time.Hour), got.UpdatedAt)

	out, err = s.UpdateFriend("nope", FriendUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, NotFound, out)

	_, err = s.UpdateFriend(f.ID, FriendUpdate{Birthday: &model.MonthDay{Month: time.February, Day: 30}})
	require.ErrorIs(t, err, ErrInvalidInput)
	dates := []model.SignificantDate{{Label: "Graduation", Date: model.MonthDay{Month: 6, Day: 0}}}
	_, err = s.UpdateFriend(f.ID, FriendUpdate{ImportantDates: &dates})
	require.ErrorIs(t, err, ErrInvalidInput)
	got, _ = s.Friend(f.ID)
	assert.Equal(t, time.March, got.Birthday.Month)
	assert.Empty(t, got.ImportantDates)
}

func TestChangeTierSameTierIsNoop(t *testing.T) {
	s, c := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", 2)
	before, _ := s.Appearance(f.ID)

	c.advance(time.Hour)
	out, err := s.ChangeTier(f.ID, 2, "still close")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, out)

	got, _ := s.Friend(f.ID)
	assert.Len(t, got.TierHistory, 1)
	assert.Equal(t, testStart, got.UpdatedAt)
	after, _ := s.Appearance(f.ID)
	assert.Equal(t, before, after)
}

func TestChangeTierReassignsSpecies(t *testing.T) {
	s, c := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", model.TierInnerCircle)
	before, _ := s.Appearance(f.ID)
	require.True(t, before.Species.AllowedFor(model.TierInnerCircle))

	c.advance(24 * time.Hour)
	out, err := s.ChangeTier(f.ID, model.TierAcquaintance, "moved away")
	require.NoError(t, err)
	assert.Equal(t, Applied, out)

	after, _ := s.Appearance(f.ID)
	assert.True(t, after.Species.AllowedFor(model.TierAcquaintance))
	assert.Equal(t, before.PotStyle, after.PotStyle)
	assert.Equal(t, before.PotColor, after.PotColor)

	got, _ := s.Friend(f.ID)
	assert.Equal(t, model.TierAcquaintance, got.Tier)
	require.Len(t, got.TierHistory, 2)
	assert.Equal(t, model.TierChange{Tier: model.TierAcquaintance, At: c.now(), Reason: "moved away"}, got.TierHistory[1])
	assert.Equal(t, c.now(), got.UpdatedAt)
}

func TestChangeTierRejectsBadTier(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", 1)

	_, err := s.ChangeTier(f.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	out, err := s.ChangeTier("nope", 2, "")
	require.NoError(t, err)
	assert.Equal(t, NotFound, out)
}

func TestReassignSpeciesKeepsFittingSpecies(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := model.Appearance{FriendID: "f", Species: model.SpeciesFern, PotStyle: model.PotBasket, PotColor: model.ColorPink}

	got, changed := reassignSpecies(a, model.TierGoodFriend, rng)
	assert.False(t, changed)
	assert.Equal(t, a, got)

	got, changed = reassignSpecies(a, model.TierFriend, rng)
	assert.True(t, changed)
	assert.True(t, got.Species.AllowedFor(model.TierFriend))
	assert.Equal(t, model.PotBasket, got.PotStyle)
	assert.Equal(t, model.ColorPink, got.PotColor)
}

func TestLogInteraction(t *testing.T) {
	s, c := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", 1)

	c.advance(time.Hour)
	it := mustLog(t, s, f.ID, NewInteraction{Type: model.InteractionCall, InitiatedBy: model.InitiatedByMe})
	assert.Equal(t, c.now(), it.At)
	assert.Equal(t, f.ID, it.FriendID)

	got, _ := s.Friend(f.ID)
	assert.Equal(t, c.now(), got.UpdatedAt)

	past := testStart.AddDate(0, 0, -3)
	it = mustLog(t, s, f.ID, NewInteraction{Type: model.InteractionText, At: past})
	assert.Equal(t, past, it.At)
	assert.Empty(t, it.InitiatedBy)
}

func TestLogInteractionUnknownFriend(t *testing.T) {
	s, _ := testStore(t)

	it, out, err := s.LogInteraction("ghost", NewInteraction{Type: model.InteractionCall})
	require.NoError(t, err)
	assert.Equal(t, NotFound, out)
	assert.Equal(t, model.Interaction{}, it)
	assert.Empty(t, s.RecentInteractions(0))
}

func TestLogInteractionValidates(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", 1)

	_, _, err := s.LogInteraction(f.ID, NewInteraction{Type: "carrier_pigeon"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "not a known interaction type")

	_, _, err = s.LogInteraction(f.ID, NewInteraction{Type: model.InteractionCall, InitiatedBy: "nobody"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "not a known initiator")
}

func TestDeleteInteractionLeavesUpdatedAt(t *testing.T) {
	s, c := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", 1)
	it := mustLog(t, s, f.ID, NewInteraction{Type: model.InteractionCall})

	c.advance(time.Hour)
	assert.Equal(t, Applied, s.DeleteInteraction(it.ID))
	assert.Equal(t, NotFound, s.DeleteInteraction(it.ID))

	got, _ := s.Friend(f.ID)
	assert.Equal(t, testStart, got.UpdatedAt)
	assert.Empty(t, s.InteractionsFor(f.ID))
}

func TestRecentInteractions(t *testing.T) {
	s, _ := testStore(t)
	home := mustGarden(t, s, "Home")
	work := mustGarden(t, s, "Work")
	a := mustFriend(t, s, home.ID, "Maya", 1)
	b := mustFriend(t, s, work.ID, "James", 2)

	for i := range 12 {
		friend := a.ID
		if i%2 == 1 {
			friend = b.ID
		}
		mustLog(t, s, friend, NewInteraction{Type: model.InteractionText, At: testStart.AddDate(0, 0, -i)})
	}

	recent := s.RecentInteractions(0)
	require.Len(t, recent, DefaultRecentLimit)
	assert.Equal(t, testStart, recent[0].At)
	for i := 1; i < len(recent); i++ {
		assert.True(t, recent[i-1].At.After(recent[i].At))
	}
	// spans gardens
	assert.Equal(t, b.ID, recent[1].FriendID)

	assert.Len(t, s.RecentInteractions(3), 3)
	assert.Len(t, s.RecentInteractions(100), 12)

	forA := s.InteractionsFor(a.ID)
	assert.Len(t, forA, 6)
	assert.Equal(t, testStart, forA[0].At)
}

func TestRemoveFriendCascades(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")
	a := mustFriend(t, s, g.ID, "Maya", 1)
	b := mustFriend(t, s, g.ID, "James", 1)
	mustLog(t, s, a.ID, NewInteraction{Type: model.InteractionCall})
	mustLog(t, s, b.ID, NewInteraction{Type: model.InteractionCall})

	assert.Equal(t, Applied, s.RemoveFriend(a.ID))
	assert.Equal(t, NotFound, s.RemoveFriend(a.ID))

	_, ok := s.Friend(a.ID)
	assert.False(t, ok)
	_, ok = s.Appearance(a.ID)
	assert.False(t, ok)
	assert.Empty(t, s.InteractionsFor(a.ID))
	assert.Len(t, s.InteractionsFor(b.ID), 1)
}

func TestDeleteGardenCascadeIsolation(t *testing.T) {
	s, _ := testStore(t)
	home := mustGarden(t, s, "Home")
	work := mustGarden(t, s, "Work")
	maya := mustFriend(t, s, home.ID, "Maya", 1)
	james := mustFriend(t, s, work.ID, "James", 2)
	mustLog(t, s, maya.ID, NewInteraction{Type: model.InteractionCall})
	kept := mustLog(t, s, james.ID, NewInteraction{Type: model.InteractionHangout})

	assert.Equal(t, Applied, s.DeleteGarden(home.ID))

	_, ok := s.Friend(maya.ID)
	assert.False(t, ok)
	_, ok = s.Appearance(maya.ID)
	assert.False(t, ok)
	assert.Empty(t, s.InteractionsFor(maya.ID))

	_, ok = s.Friend(james.ID)
	assert.True(t, ok)
	_, ok = s.Appearance(james.ID)
	assert.True(t, ok)
	assert.Equal(t, []model.Interaction{kept}, s.InteractionsFor(james.ID))

	active, ok := s.ActiveGarden()
	require.True(t, ok)
	assert.Equal(t, work.ID, active.ID)

	assert.Equal(t, Applied, s.DeleteGarden(work.ID))
	_, ok = s.ActiveGarden()
	assert.False(t, ok)
	assert.Empty(t, s.Friends())
	assert.Equal(t, NotFound, s.DeleteGarden(work.ID))
}

func TestClearGarden(t *testing.T) {
	s, _ := testStore(t)
	home := mustGarden(t, s, "Home")
	work := mustGarden(t, s, "Work")
	maya := mustFriend(t, s, home.ID, "Maya", 1)
	james := mustFriend(t, s, work.ID, "James", 1)
	mustLog(t, s, maya.ID, NewInteraction{Type: model.InteractionCall})

	assert.Equal(t, Applied, s.ClearGarden())
	assert.Equal(t, Unchanged, s.ClearGarden())

	_, ok := s.Garden(home.ID)
	assert.True(t, ok)
	assert.Empty(t, s.Friends())
	assert.Empty(t, s.InteractionsFor(maya.ID))
	_, ok = s.Friend(james.ID)
	assert.True(t, ok)
}

func TestQueriesScopedToActiveGarden(t *testing.T) {
	s, _ := testStore(t)
	home := mustGarden(t, s, "Home")
	work := mustGarden(t, s, "Work")
	mustFriend(t, s, home.ID, "Maya", 1)
	mustFriend(t, s, home.ID, "Sofia", 3)
	james := mustFriend(t, s, work.ID, "James", 1)

	assert.Len(t, s.Friends(), 2)
	assert.Len(t, s.FriendsByTier(1), 1)
	assert.Len(t, s.AllMetrics(), 2)

	s.SwitchGarden(work.ID)
	friends := s.Friends()
	require.Len(t, friends, 1)
	assert.Equal(t, james.ID, friends[0].ID)
	assert.Empty(t, s.FriendsByTier(3))
}

func TestMetricsAnyGarden(t *testing.T) {
	s, _ := testStore(t)
	mustGarden(t, s, "Home")
	work := mustGarden(t, s, "Work")
	f := mustFriend(t, s, work.ID, "James", 1)

	m, ok := s.Metrics(f.ID)
	require.True(t, ok)
	assert.Equal(t, 60, m.Score)
	assert.Equal(t, health.Healthy, m.Status)
	assert.Equal(t, health.NeverContacted, m.DaysSinceLastContact)

	_, ok = s.Metrics("nope")
	assert.False(t, ok)
}

func TestNeedingAttention(t *testing.T) {
	s, c := testStore(t)
	g := mustGarden(t, s, "Home")

	// created long ago with nothing logged: grace 25, at risk
	c.t = testStart.AddDate(0, 0, -120)
	atRisk := mustFriend(t, s, g.ID, "Quiet", model.TierInnerCircle)
	dormant := mustFriend(t, s, g.ID, "Gone", model.TierInnerCircle)
	thriving := mustFriend(t, s, g.ID, "Close", model.TierInnerCircle)
	cooling := mustFriend(t, s, g.ID, "Drifting", model.TierCloseFriend)
	c.t = testStart

	// last contact 200 days ago for a weekly friend: recency 0, no frequency
	mustLog(t, s, dormant.ID, NewInteraction{Type: model.InteractionText, At: testStart.AddDate(0, 0, -200)})

	for d := 0; d < 90; d += 7 {
		mustLog(t, s, thriving.ID, NewInteraction{Type: model.InteractionDeepConvo, At: testStart.AddDate(0, 0, -d)})
	}

	// 14-day friend, last seen 21 days ago, two hangouts in the window
	mustLog(t, s, cooling.ID, NewInteraction{Type: model.InteractionHangout, At: testStart.AddDate(0, 0, -21)})
	mustLog(t, s, cooling.ID, NewInteraction{Type: model.InteractionHangout, At: testStart.AddDate(0, 0, -60)})

	statuses := map[string]health.Status{}
	for _, m := range s.AllMetrics() {
		statuses[m.FriendID] = m.Status
	}
	require.Equal(t, health.AtRisk, statuses[atRisk.ID])
	require.Equal(t, health.Dormant, statuses[dormant.ID])
	require.Equal(t, health.Thriving, statuses[thriving.ID])
	require.Equal(t, health.Cooling, statuses[cooling.ID])

	var ids []string
	for _, f := range s.NeedingAttention() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{atRisk.ID, cooling.ID}, ids)
}

func TestUpcomingDates(t *testing.T) {
	s, c := testStore(t)
	c.t = time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC)
	home := mustGarden(t, s, "Home")
	work := mustGarden(t, s, "Work")

	jan5, err := model.ParseMonthDay("1992-01-05")
	require.NoError(t, err)
	_, err = s.AddFriend(home.ID, NewFriend{Name: "Maya", Tier: 1, Birthday: &jan5})
	require.NoError(t, err)
	_, err = s.AddFriend(work.ID, NewFriend{Name: "James", Tier: 1, Birthday: &jan5})
	require.NoError(t, err)

	got := s.UpcomingDates(30)
	require.Len(t, got, 1)
	assert.Equal(t, "Maya", got[0].FriendName)
	assert.Equal(t, 16, got[0].DaysUntil)

	assert.Empty(t, s.UpcomingDates(15))
}

func TestSetAppearance(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", model.TierGoodFriend)
	before, _ := s.Appearance(f.ID)

	cactus := model.SpeciesCactus
	_, err := s.SetAppearance(f.ID, AppearanceUpdate{Species: &cactus})
	require.ErrorIs(t, err, ErrSpeciesNotAllowed)
	after, _ := s.Appearance(f.ID)
	assert.Equal(t, before, after)

	herbs, basket := model.SpeciesHerbs, model.PotBasket
	out, err := s.SetAppearance(f.ID, AppearanceUpdate{Species: &herbs, PotStyle: &basket})
	require.NoError(t, err)
	after, _ = s.Appearance(f.ID)
	assert.Equal(t, model.SpeciesHerbs, after.Species)
	assert.Equal(t, model.PotBasket, after.PotStyle)
	assert.Equal(t, before.PotColor, after.PotColor)
	if before.Species == herbs && before.PotStyle == basket {
		assert.Equal(t, Unchanged, out)
	} else {
		assert.Equal(t, Applied, out)
	}

	out, err = s.SetAppearance(f.ID, AppearanceUpdate{Species: &herbs, PotStyle: &basket})
	require.NoError(t, err)
	assert.Equal(t, Unchanged, out)

	bad := model.PotStyle("teacup")
	_, err = s.SetAppearance(f.ID, AppearanceUpdate{PotStyle: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	out, err = s.SetAppearance("nope", AppearanceUpdate{PotStyle: &basket})
	require.NoError(t, err)
	assert.Equal(t, NotFound, out)
}

func TestLoadDemoData(t *testing.T) {
	s, _ := testStore(t)
	home := mustGarden(t, s, "Home")
	mustFriend(t, s, home.ID, "Maya", 1)

	demo, err := s.LoadDemoData()
	require.NoError(t, err)
	assert.True(t, demo.IsDemo)
	assert.Equal(t, "Demo Garden", demo.Name)

	active, _ := s.ActiveGarden()
	assert.Equal(t, demo.ID, active.ID)

	friends := s.Friends()
	require.Len(t, friends, 10)
	for _, f := range friends {
		its := s.InteractionsFor(f.ID)
		assert.Len(t, its, max(1, 6-int(f.Tier)), f.Name)
		for _, it := range its {
			assert.NotEqual(t, model.InteractionGroupHangout, it.Type)
			assert.False(t, it.At.After(testStart))
		}
		a, ok := s.Appearance(f.ID)
		require.True(t, ok)
		assert.True(t, a.Species.AllowedFor(f.Tier))
	}
	assert.NotNil(t, friends[0].Birthday)

	// loading again reuses the garden
	s.SwitchGarden(home.ID)
	again, err := s.LoadDemoData()
	require.NoError(t, err)
	assert.Equal(t, demo.ID, again.ID)
	assert.Len(t, s.Gardens(), 2)
	assert.Len(t, s.Friends(), 20)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	_, err := s.LoadDemoData()
	require.NoError(t, err)
	snap := s.Snapshot()

	other, _ := testStore(t)
	require.NoError(t, other.Restore(snap))
	assert.Equal(t, snap, other.Snapshot())
	assert.Equal(t, s.AllMetrics(), other.AllMetrics())
}

func TestRestoreFillsMissingAppearance(t *testing.T) {
	s, _ := testStore(t)
	g := mustGarden(t, s, "Home")
	f := mustFriend(t, s, g.ID, "Maya", model.TierFriend)
	snap := s.Snapshot()
	snap.Appearances = nil

	other, _ := testStore(t)
	require.NoError(t, other.Restore(snap))
	a, ok := other.Appearance(f.ID)
	require.True(t, ok)
	assert.True(t, a.Species.AllowedFor(model.TierFriend))
}

func TestRestoreRejectsInconsistentState(t *testing.T) {
	base := func(t *testing.T) model.Snapshot {
		s, _ := testStore(t)
		g := mustGarden(t, s, "Home")
		f := mustFriend(t, s, g.ID, "Maya", model.TierCloseFriend)
		mustLog(t, s, f.ID, NewInteraction{Type: model.InteractionCall})
		return s.Snapshot()
	}

	tests := []struct {
		name   string
		mutate func(*model.Snapshot)
	}{
		{"unknown active garden", func(s *model.Snapshot) { s.ActiveGardenID = "gone" }},
		{"friend in unknown garden", func(s *model.Snapshot) { s.Friends[0].GardenID = "gone" }},
		{"bad tier", func(s *model.Snapshot) {
			s.Friends[0].Tier = 9
			s.Friends[0].TierHistory[0].Tier = 9
		}},
		{"history off tier", func(s *model.Snapshot) { s.Friends[0].TierHistory[0].Tier = 4 }},
		{"empty history", func(s *model.Snapshot) { s.Friends[0].TierHistory = nil }},
		{"bad earlier history tier", func(s *model.Snapshot) {
			first := model.TierChange{Tier: 9, At: s.Friends[0].TierHistory[0].At.Add(-time.Hour)}
			s.Friends[0].TierHistory = append([]model.TierChange{first}, s.Friends[0].TierHistory...)
		}},
		{"unknown role", func(s *model.Snapshot) { s.Friends[0].Roles = []model.Role{"bogus"} }},
		{"impossible birthday", func(s *model.Snapshot) {
			s.Friends[0].Birthday = &model.MonthDay{Month: time.February, Day: 31}
		}},
		{"impossible important date", func(s *model.Snapshot) {
			s.Friends[0].ImportantDates = []model.SignificantDate{{Label: "Anniversary", Date: model.MonthDay{Month: 4, Day: 31}}}
		}},
		{"orphan interaction", func(s *model.Snapshot) { s.Interactions[0].FriendID = "gone" }},
		{"misfit species", func(s *model.Snapshot) { s.Appearances[0].Species = model.SpeciesCactus }},
		{"orphan appearance", func(s *model.Snapshot) { s.Appearances[0].FriendID = "gone" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base(t)
			tt.mutate(&snap)

			s, _ := testStore(t)
			g := mustGarden(t, s, "Existing")
			err := s.Restore(snap)
			require.ErrorIs(t, err, ErrInvalidSnapshot)

			gardens := s.Gardens()
			require.Len(t, gardens, 1)
			assert.Equal(t, g.ID, gardens[0].ID)
		})
	}
}

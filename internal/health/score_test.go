package health

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/tended/internal/model"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func testFriend(tier model.Tier, ageDays int) model.Friend {
	return model.Friend{
		ID:        "friend-1",
		Name:      "Maya",
		Tier:      tier,
		CreatedAt: daysAgo(ageDays),
	}
}

func hit(n int, typ model.InteractionType, by model.Initiator) model.Interaction {
	return model.Interaction{
		ID:          fmt.Sprintf("i-%d-%s", n, typ),
		FriendID:    "friend-1",
		Type:        typ,
		At:          daysAgo(n),
		InitiatedBy: by,
	}
}

func TestCadenceStrictlyIncreasing(t *testing.T) {
	allowed := map[int]bool{7: true, 14: true, 30: true, 90: true, 180: true}
	prev := 0
	for _, tier := range model.Tiers {
		d := tier.CadenceDays()
		assert.True(t, allowed[d], "tier %d cadence %d", tier, d)
		assert.Greater(t, d, prev, "tier %d", tier)
		prev = d
	}
}

func TestNoHistoryGrace(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{0, 60},
		{10, 60},
		{29, 60},
		{30, 45},
		{45, 45},
		{59, 45},
		{60, 25},
		{90, 25},
		{400, 25},
	}
	for _, tt := range tests {
		for _, tier := range model.Tiers {
			got := Score(testFriend(tier, tt.age), nil, testNow)
			assert.Equal(t, tt.want, got, "age %d tier %d", tt.age, tier)
		}
	}
}

func TestNoHistoryIgnoresOtherFriends(t *testing.T) {
	other := hit(1, model.InteractionDeepConvo, model.InitiatedByMe)
	other.FriendID = "friend-2"

	c := Breakdown(testFriend(model.TierInnerCircle, 90), []model.Interaction{other}, testNow)
	assert.True(t, c.NoHistory)
	assert.Equal(t, 25, c.Total())
}

func TestRecencyScore(t *testing.T) {
	tests := []struct {
		ratio float64
		want  float64
	}{
		{0, 40},
		{0.5, 40},
		{0.75, 35},
		{1, 30},
		{1.5, 22.5},
		{2, 15},
		{2.5, 10},
		{3, 5},
		{4, 3},
		{5.5, 0},
		{10, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, recencyScore(tt.ratio), 1e-9, "ratio %v", tt.ratio)
	}
}

func TestRecencyAtCadenceBoundary(t *testing.T) {
	friend := testFriend(model.TierInnerCircle, 200)
	c := Breakdown(friend, []model.Interaction{hit(7, model.InteractionText, "")}, testNow)
	require.False(t, c.NoHistory)
	assert.InDelta(t, 30, c.Recency, 1e-9)
}

func TestRecencyIsCadenceRelative(t *testing.T) {
	log := []model.Interaction{hit(60, model.InteractionText, "")}

	inner := Breakdown(testFriend(model.TierInnerCircle, 200), log, testNow)
	acquaintance := Breakdown(testFriend(model.TierAcquaintance, 200), log, testNow)

	assert.InDelta(t, 0, inner.Recency, 1e-9, "60/7 is past the tail")
	assert.InDelta(t, 40, acquaintance.Recency, 1e-9)
}

func TestFrequencyScore(t *testing.T) {
	tests := []struct {
		count   int
		cadence float64
		want    float64
	}{
		{3, 30, 30},
		{5, 30, 30},
		{2, 30, 20 + (2.0/3-0.5)*20},
		{1, 30, 40.0 / 3},
		{0, 30, 0},
		{13, 7, 30},
		{7, 7, 20 + (7.0/13-0.5)*20},
		{1, 90, 30},
		{1, 180, 30},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, frequencyScore(tt.count, tt.cadence), 1e-9, "count %d cadence %v", tt.count, tt.cadence)
	}
}

func TestQualityScore(t *testing.T) {
	text := hit(1, model.InteractionText, "")
	call := hit(2, model.InteractionCall, "")
	deep := hit(3, model.InteractionDeepConvo, "")
	helped := hit(4, model.InteractionHelped, "")
	group := hit(4, model.InteractionGroupHangout, "")

	assert.Equal(t, 0.0, qualityScore(nil))
	assert.Equal(t, 0.0, qualityScore([]model.Interaction{text, call, group}))
	assert.InDelta(t, 10, qualityScore([]model.Interaction{text, call, group, deep}), 1e-9)
	assert.InDelta(t, 20, qualityScore([]model.Interaction{text, call, deep, helped}), 1e-9)
	assert.InDelta(t, 20, qualityScore([]model.Interaction{deep, helped}), 1e-9, "capped at 20")
}

func TestQualityUsesTrailingWindow(t *testing.T) {
	friend := testFriend(model.TierFriend, 400)
	log := []model.Interaction{
		hit(5, model.InteractionText, ""),
		hit(120, model.InteractionDeepConvo, ""),
		hit(150, model.InteractionHangout, ""),
	}
	c := Breakdown(friend, log, testNow)
	assert.Equal(t, 0.0, c.Quality)
}

func TestReciprocity(t *testing.T) {
	me, them, mutual := model.InitiatedByMe, model.InitiatedByThem, model.InitiatedByMutual

	tests := []struct {
		name string
		by   []model.Initiator
		want float64
	}{
		{"below gate all mine", []model.Initiator{me, me, me}, 0},
		{"below gate with untagged", []model.Initiator{me, me, me, "", "", ""}, 0},
		{"all mine", []model.Initiator{me, me, me, me}, -10},
		{"mostly mine", []model.Initiator{me, me, me, them}, -5},
		{"balanced", []model.Initiator{me, me, them, them}, 5},
		{"mutual counts as tagged", []model.Initiator{me, me, mutual, mutual}, 5},
		{"mostly theirs", []model.Initiator{me, them, them, them}, 0},
		{"exact 0.7", []model.Initiator{me, me, me, me, me, me, me, them, them, them}, 5},
		{"exact 0.3", []model.Initiator{me, me, me, them, them, them, them, them, them, them}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []model.Interaction
			for n, by := range tt.by {
				log = append(log, hit(n*40, model.InteractionText, by))
			}
			c := Breakdown(testFriend(model.TierGoodFriend, 500), log, testNow)
			assert.Equal(t, tt.want, c.Reciprocity)
		})
	}
}

func TestReciprocityUsesFullHistory(t *testing.T) {
	// every tagged interaction is older than the 90 day window
	var log []model.Interaction
	for n := 0; n < 4; n++ {
		log = append(log, hit(200+n, model.InteractionCall, model.InitiatedByMe))
	}
	c := Breakdown(testFriend(model.TierAcquaintance, 500), log, testNow)
	assert.Equal(t, -10.0, c.Reciprocity)
}

func TestScoreWorkedExample(t *testing.T) {
	friend := testFriend(model.TierCloseFriend, 365)
	log := []model.Interaction{
		hit(2, model.InteractionDeepConvo, model.InitiatedByMe),
		hit(10, model.InteractionHangout, model.InitiatedByThem),
		hit(20, model.InteractionText, model.InitiatedByMe),
		hit(40, model.InteractionCall, model.InitiatedByThem),
	}

	c := Breakdown(friend, log, testNow)
	assert.InDelta(t, 40, c.Recency, 1e-9)
	assert.InDelta(t, 20+(4.0/7-0.5)*20, c.Frequency, 1e-9)
	assert.InDelta(t, 20, c.Quality, 1e-9)
	assert.Equal(t, 5.0, c.Reciprocity)

	score := Score(friend, log, testNow)
	assert.Equal(t, 86, score)
	assert.Equal(t, Thriving, StatusOf(score))
}

func TestScoreAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	initiators := []model.Initiator{"", model.InitiatedByMe, model.InitiatedByThem, model.InitiatedByMutual}

	for round := 0; round < 500; round++ {
		tier := model.Tiers[rng.Intn(len(model.Tiers))]
		friend := testFriend(tier, rng.Intn(1000))
		var log []model.Interaction
		for n := rng.Intn(40); n > 0; n-- {
			log = append(log, hit(rng.Intn(720)-10,
				model.InteractionTypes[rng.Intn(len(model.InteractionTypes))],
				initiators[rng.Intn(len(initiators))]))
		}
		score := Score(friend, log, testNow)
		require.GreaterOrEqual(t, score, 0)
		require.LessOrEqual(t, score, 100)
	}
}

func TestStatusOfPartition(t *testing.T) {
	counts := map[Status]int{}
	for score := 0; score <= 100; score++ {
		counts[StatusOf(score)]++
	}
	assert.Equal(t, 20, counts[Dormant])
	assert.Equal(t, 20, counts[AtRisk])
	assert.Equal(t, 20, counts[Cooling])
	assert.Equal(t, 20, counts[Healthy])
	assert.Equal(t, 21, counts[Thriving])

	boundaries := map[int]Status{19: Dormant, 20: AtRisk, 39: AtRisk, 40: Cooling, 59: Cooling, 60: Healthy, 79: Healthy, 80: Thriving}
	for score, want := range boundaries {
		assert.Equal(t, want, StatusOf(score), "score %d", score)
	}
}

func TestNeedsAttention(t *testing.T) {
	assert.True(t, Cooling.NeedsAttention())
	assert.True(t, AtRisk.NeedsAttention())
	assert.False(t, Dormant.NeedsAttention())
	assert.False(t, Thriving.NeedsAttention())
	assert.False(t, Healthy.NeedsAttention())
}

func TestExpressionFor(t *testing.T) {
	assert.Equal(t, ExpressionHappy, ExpressionFor(Thriving))
	assert.Equal(t, ExpressionContent, ExpressionFor(Healthy))
	assert.Equal(t, ExpressionContent, ExpressionFor(Cooling))
	assert.Equal(t, ExpressionWorried, ExpressionFor(AtRisk))
	assert.Equal(t, ExpressionSleeping, ExpressionFor(Dormant))
}

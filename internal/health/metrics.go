package health

import (
	"time"

	"github.com/lazypower/tended/internal/model"
)

// NeverContacted is the DaysSinceLastContact sentinel for friends with no
// interactions. It is not a day count.
const NeverContacted = -1

// Metrics is the computed health bundle for one friend. It is never persisted.
type Metrics struct {
	FriendID string `json:"friend_id"`
	// Score is kept for ordering and tests; it is not exposed to people.
	Score                  int      `json:"-"`
	Status                 Status   `json:"status"`
	DaysSinceLastContact   int      `json:"days_since_last_contact"`
	InteractionsLast90Days int      `json:"interactions_last_90_days"`
	CadenceTarget          int      `json:"cadence_target"`
	OnTrack                bool     `json:"on_track"`
	ReciprocityRatio       *float64 `json:"reciprocity_ratio,omitempty"`
}

// MetricsOf assembles the metrics bundle for friend at now.
func MetricsOf(friend model.Friend, all []model.Interaction, now time.Time) Metrics {
	history := historyOf(friend.ID, all)
	score := Score(friend, all, now)

	m := Metrics{
		FriendID:               friend.ID,
		Score:                  score,
		Status:                 StatusOf(score),
		DaysSinceLastContact:   NeverContacted,
		InteractionsLast90Days: len(withinWindow(history, now)),
		CadenceTarget:          friend.Tier.CadenceDays(),
	}
	if len(history) > 0 {
		// future-dated interactions count as today
		m.DaysSinceLastContact = max(0, elapsedDays(history[0].At, now))
		m.OnTrack = m.DaysSinceLastContact <= m.CadenceTarget
	}
	if share, ok := myShare(history); ok {
		m.ReciprocityRatio = &share
	}
	return m
}

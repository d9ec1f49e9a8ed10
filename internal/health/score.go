// Package health turns a friend's interaction log into a health score,
// a qualitative status and a small metrics bundle.
//
// Scoring algorithm (max 100):
//   - Recency     0-40: days since last contact relative to the tier cadence
//   - Frequency   0-30: contacts in the trailing 90 days vs. expected
//   - Quality     0-20: share of deep convos, hangouts, events, help
//   - Reciprocity -10..+5: who initiates, over the whole history, only with
//     at least 4 tagged interactions
//
// Friends with no history score on age alone (60, 45, 25).
// Every function takes now explicitly and is safe for concurrent use.
package health

import (
	"math"
	"slices"
	"time"

	"github.com/lazypower/tended/internal/model"
)

const (
	// WindowDays is the trailing window for frequency and quality.
	WindowDays = 90

	// MinInitiatorSamples gates the reciprocity adjustment.
	MinInitiatorSamples = 4
)

// Components is the per-factor breakdown of a score.
type Components struct {
	NoHistory   bool    `json:"no_history"`
	Baseline    float64 `json:"baseline,omitempty"` // only set when NoHistory
	Recency     float64 `json:"recency"`
	Frequency   float64 `json:"frequency"`
	Quality     float64 `json:"quality"`
	Reciprocity float64 `json:"reciprocity"`
}

// Total sums the components, clamps to [0,100] and rounds.
func (c Components) Total() int {
	sum := c.Baseline
	if !c.NoHistory {
		sum = c.Recency + c.Frequency + c.Quality + c.Reciprocity
	}
	return int(math.Round(math.Max(0, math.Min(100, sum))))
}

// Score returns the health score in [0,100] for friend at now.
func Score(friend model.Friend, all []model.Interaction, now time.Time) int {
	return Breakdown(friend, all, now).Total()
}

// Breakdown computes each scoring component for friend at now.
func Breakdown(friend model.Friend, all []model.Interaction, now time.Time) Components {
	history := historyOf(friend.ID, all)
	if len(history) == 0 {
		return Components{NoHistory: true, Baseline: graceScore(elapsedDays(friend.CreatedAt, now))}
	}

	cadence := float64(friend.Tier.CadenceDays())
	recent := withinWindow(history, now)

	c := Components{
		Recency:   recencyScore(float64(elapsedDays(history[0].At, now)) / cadence),
		Frequency: frequencyScore(len(recent), cadence),
		Quality:   qualityScore(recent),
	}
	if share, ok := myShare(history); ok {
		c.Reciprocity = reciprocityScore(share)
	}
	return c
}

// graceScore gives new friends time before they are flagged.
func graceScore(ageDays int) float64 {
	switch {
	case ageDays < 30:
		return 60
	case ageDays < 60:
		return 45
	default:
		return 25
	}
}

// recencyScore decays piecewise-linearly with ratio = days since last / cadence.
func recencyScore(ratio float64) float64 {
	switch {
	case ratio <= 0.5:
		return 40
	case ratio <= 1:
		return 40 - (ratio-0.5)*20
	case ratio <= 2:
		return 30 - (ratio-1)*15
	case ratio <= 3:
		return 15 - (ratio-2)*10
	default:
		return math.Max(0, 5-(ratio-3)*2)
	}
}

func frequencyScore(count int, cadence float64) float64 {
	expected := math.Ceil(WindowDays / cadence)
	ratio := float64(count) / expected
	switch {
	case ratio >= 1:
		return 30
	case ratio >= 0.5:
		return 20 + (ratio-0.5)*20
	default:
		return ratio * 40
	}
}

func qualityScore(recent []model.Interaction) float64 {
	if len(recent) == 0 {
		return 0
	}
	quality := 0
	for _, i := range recent {
		if i.Type.HighQuality() {
			quality++
		}
	}
	return math.Min(20, float64(quality)/float64(len(recent))*40)
}

// reciprocityScore rewards balance and only penalizes extreme one-sidedness.
func reciprocityScore(share float64) float64 {
	switch {
	case share > 0.8:
		return -10
	case share > 0.7:
		return -5
	case share >= 0.3:
		return 5
	default:
		return 0
	}
}

// myShare is the fraction of initiator-tagged interactions I started.
// ok is false below MinInitiatorSamples.
func myShare(history []model.Interaction) (share float64, ok bool) {
	tagged, mine := 0, 0
	for _, i := range history {
		if i.InitiatedBy == "" {
			continue
		}
		tagged++
		if i.InitiatedBy == model.InitiatedByMe {
			mine++
		}
	}
	if tagged < MinInitiatorSamples {
		return 0, false
	}
	return float64(mine) / float64(tagged), true
}

// historyOf returns friendID's interactions, newest first.
func historyOf(friendID string, all []model.Interaction) []model.Interaction {
	var out []model.Interaction
	for _, i := range all {
		if i.FriendID == friendID {
			out = append(out, i)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Interaction) int {
		return b.At.Compare(a.At)
	})
	return out
}

func withinWindow(history []model.Interaction, now time.Time) []model.Interaction {
	since := now.AddDate(0, 0, -WindowDays)
	var out []model.Interaction
	for _, i := range history {
		if !i.At.Before(since) {
			out = append(out, i)
		}
	}
	return out
}

// elapsedDays counts whole 24h periods from then to now, truncated toward zero.
func elapsedDays(then, now time.Time) int {
	return int(now.Sub(then) / (24 * time.Hour))
}

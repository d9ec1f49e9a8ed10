package model

import "fmt"

// Tier is an importance bucket from 1 (inner circle) to 5 (acquaintance).
type Tier int

const (
	TierInnerCircle  Tier = 1
	TierCloseFriend  Tier = 2
	TierGoodFriend   Tier = 3
	TierFriend       Tier = 4
	TierAcquaintance Tier = 5
)

// Tiers lists every valid tier in ascending order.
var Tiers = []Tier{TierInnerCircle, TierCloseFriend, TierGoodFriend, TierFriend, TierAcquaintance}

var tierCadenceDays = map[Tier]int{
	TierInnerCircle:  7,
	TierCloseFriend:  14,
	TierGoodFriend:   30,
	TierFriend:       90,
	TierAcquaintance: 180,
}

var tierLabels = map[Tier]string{
	TierInnerCircle:  "Inner Circle",
	TierCloseFriend:  "Close Friend",
	TierGoodFriend:   "Good Friend",
	TierFriend:       "Friend",
	TierAcquaintance: "Acquaintance",
}

var tierDescriptions = map[Tier]string{
	TierInnerCircle:  "Ride-or-die. Godparent candidates. You drop everything for them.",
	TierCloseFriend:  "You see them regularly. They help you move. You share real struggles.",
	TierGoodFriend:   "Solid friendships. You attend their major life events.",
	TierFriend:       "Pleasant connections. Coffee catch-ups. Crash on their couch in their city.",
	TierAcquaintance: "New or distant. A text every few months. Potential to grow.",
}

// Valid reports whether t is one of the five tiers.
func (t Tier) Valid() bool {
	_, ok := tierCadenceDays[t]
	return ok
}

// CadenceDays returns the target number of days between contacts.
// Invalid tiers get the loosest cadence.
func (t Tier) CadenceDays() int {
	if d, ok := tierCadenceDays[t]; ok {
		return d
	}
	return tierCadenceDays[TierAcquaintance]
}

func (t Tier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return fmt.Sprintf("Tier %d", int(t))
}

func (t Tier) Description() string {
	return tierDescriptions[t]
}

// ParseTier converts a 1-5 integer into a Tier.
func ParseTier(n int) (Tier, error) {
	t := Tier(n)
	if !t.Valid() {
		return 0, fmt.Errorf("tier %d out of range 1-5", n)
	}
	return t, nil
}

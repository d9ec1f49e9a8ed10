// Package timeline holds calendar arithmetic for recurring dates and the
// fixed phrasing used to describe how long ago someone was contacted.
package timeline

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/lazypower/tended/internal/model"
)

// DateKind distinguishes birthdays from other significant dates.
type DateKind string

const (
	KindBirthday    DateKind = "birthday"
	KindSignificant DateKind = "significant"
)

// Occurrence is the next instance of a friend's recurring date.
type Occurrence struct {
	FriendID   string         `json:"friend_id"`
	FriendName string         `json:"friend_name"`
	Kind       DateKind       `json:"kind"`
	Label      string         `json:"label"`
	Date       model.MonthDay `json:"date"`
	On         time.Time      `json:"on"`
	DaysUntil  int            `json:"days_until"`
}

// NextOccurrence returns the next date md falls on, counting from the
// calendar day of now in now's location, and how many calendar days away
// it is. A date falling today is 0 days away.
func NextOccurrence(md model.MonthDay, now time.Time) (time.Time, int) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	next := md.In(today.Year(), loc)
	if next.Before(today) {
		next = md.In(today.Year()+1, loc)
	}
	return next, CalendarDays(today, next)
}

// CalendarDays counts calendar days from a to b, ignoring clock time and
// DST shifts.
func CalendarDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Upcoming lists birthdays and significant dates of friends falling within
// horizonDays of now (inclusive), soonest first.
func Upcoming(friends []model.Friend, horizonDays int, now time.Time) []Occurrence {
	var out []Occurrence
	add := func(f model.Friend, kind DateKind, label string, md model.MonthDay) {
		on, days := NextOccurrence(md, now)
		if days < 0 || days > horizonDays {
			return
		}
		out = append(out, Occurrence{
			FriendID:   f.ID,
			FriendName: f.Name,
			Kind:       kind,
			Label:      label,
			Date:       md,
			On:         on,
			DaysUntil:  days,
		})
	}

	for _, f := range friends {
		if f.Birthday != nil {
			add(f, KindBirthday, "Birthday", *f.Birthday)
		}
		for _, d := range f.ImportantDates {
			add(f, KindSignificant, d.Label, d.Date)
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int {
		if c := cmp.Compare(a.DaysUntil, b.DaysUntil); c != 0 {
			return c
		}
		return cmp.Compare(a.FriendName, b.FriendName)
	})
	return out
}

// DescribeLastContact phrases a days-since-last-contact count. Negative
// values mean no contact yet.
func DescribeLastContact(days int) string {
	switch {
	case days < 0:
		return "No contact yet"
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "About a week ago"
	case days < 30:
		return "A few weeks ago"
	case days < 60:
		return "About a month ago"
	case days < 90:
		return "A couple months ago"
	case days < 180:
		return "A few months ago"
	case days < 365:
		return "Several months ago"
	default:
		return "Over a year ago"
	}
}

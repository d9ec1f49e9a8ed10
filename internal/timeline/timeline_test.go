package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/tended/internal/model"
)

func md(t *testing.T, s string) *model.MonthDay {
	t.Helper()
	parsed, err := model.ParseMonthDay(s)
	require.NoError(t, err)
	return &parsed
}

func TestNextOccurrenceWrapsYear(t *testing.T) {
	now := time.Date(2025, time.December, 20, 15, 30, 0, 0, time.UTC)

	on, days := NextOccurrence(*md(t, "1990-01-05"), now)
	assert.Equal(t, 16, days)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), on)
}

func TestNextOccurrenceToday(t *testing.T) {
	now := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)

	_, days := NextOccurrence(*md(t, "06-15"), now)
	assert.Equal(t, 0, days)
}

func TestNextOccurrenceJustPassed(t *testing.T) {
	now := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)

	on, days := NextOccurrence(*md(t, "06-14"), now)
	assert.Equal(t, 364, days)
	assert.Equal(t, 2026, on.Year())
}

func TestNextOccurrenceLeapDay(t *testing.T) {
	now := time.Date(2025, time.February, 20, 8, 0, 0, 0, time.UTC)

	on, days := NextOccurrence(*md(t, "2000-02-29"), now)
	assert.Equal(t, time.March, on.Month())
	assert.Equal(t, 1, on.Day())
	assert.Equal(t, 9, days)
}

func TestNextOccurrenceUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)
	// 2025-12-31 12:00 UTC is already Jan 1 in UTC+13
	now := time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC).In(loc)

	_, days := NextOccurrence(*md(t, "01-01"), now)
	assert.Equal(t, 0, days)
}

func TestCalendarDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	a := time.Date(2025, time.March, 8, 23, 0, 0, 0, loc)
	b := time.Date(2025, time.March, 10, 0, 30, 0, 0, loc)
	assert.Equal(t, 2, CalendarDays(a, b))
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC)
	friends := []model.Friend{
		{ID: "a", Name: "Maya", Birthday: md(t, "1992-01-05")},
		{ID: "b", Name: "James", Birthday: md(t, "1990-12-20")},
		{ID: "c", Name: "Sofia", Birthday: md(t, "1994-03-08")},
		{ID: "d", Name: "Alex"},
		{ID: "e", Name: "Emma", ImportantDates: []model.SignificantDate{
			{Label: "Wedding anniversary", Date: *md(t, "01-19")},
			{Label: "Graduation", Date: *md(t, "06-01")},
		}},
		{ID: "f", Name: "Alan", Birthday: md(t, "01-05")},
	}

	got := Upcoming(friends, 30, now)
	require.Len(t, got, 4)

	assert.Equal(t, "b", got[0].FriendID)
	assert.Equal(t, 0, got[0].DaysUntil)
	assert.Equal(t, KindBirthday, got[0].Kind)

	// same day sorts by name
	assert.Equal(t, "f", got[1].FriendID)
	assert.Equal(t, "a", got[2].FriendID)
	assert.Equal(t, 16, got[2].DaysUntil)

	assert.Equal(t, "e", got[3].FriendID)
	assert.Equal(t, KindSignificant, got[3].Kind)
	assert.Equal(t, "Wedding anniversary", got[3].Label)
	assert.Equal(t, 30, got[3].DaysUntil, "horizon is inclusive")
}

func TestUpcomingEmptyHorizon(t *testing.T) {
	now := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	friends := []model.Friend{
		{ID: "a", Name: "Maya", Birthday: md(t, "07-01")},
		{ID: "b", Name: "James", Birthday: md(t, "07-02")},
	}

	got := Upcoming(friends, 0, now)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].FriendID)
}

func TestDescribeLastContact(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-1, "No contact yet"},
		{0, "Today"},
		{1, "Yesterday"},
		{2, "2 days ago"},
		{6, "6 days ago"},
		{7, "About a week ago"},
		{13, "About a week ago"},
		{14, "A few weeks ago"},
		{29, "A few weeks ago"},
		{30, "About a month ago"},
		{59, "About a month ago"},
		{60, "A couple months ago"},
		{89, "A couple months ago"},
		{90, "A few months ago"},
		{179, "A few months ago"},
		{180, "Several months ago"},
		{364, "Several months ago"},
		{365, "Over a year ago"},
		{2000, "Over a year ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DescribeLastContact(tt.days), "days %d", tt.days)
	}
}

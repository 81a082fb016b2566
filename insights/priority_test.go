package insights

import (
	"sort"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyBoundaries(t *testing.T) {
	now := date(2024, time.January, 1)
	cases := []struct {
		event time.Time
		level Level
		text  string
	}{
		{date(2024, time.January, 1), LevelHigh, "0 days left"},
		{date(2024, time.January, 8), LevelHigh, "7 days left"},
		{date(2024, time.January, 9), LevelMedium, "8 days left"},
		{date(2024, time.January, 31), LevelMedium, "30 days left"},
		{date(2024, time.February, 1), LevelLow, "31 days left"},
		{date(2023, time.December, 31), LevelOverdue, "1 days ago"},
		{date(2023, time.November, 1), LevelOverdue, "61 days ago"},
	}
	for _, tc := range cases {
		got := Classify(tc.event, now)
		if got.Level != tc.level || got.Text != tc.text {
			t.Fatalf("Classify(%s): got (%s, %q), want (%s, %q)",
				tc.event.Format("2006-01-02"), got.Level, got.Text, tc.level, tc.text)
		}
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// 23:59 on the previous day is still one whole calendar day away.
	now := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
	event := time.Date(2024, time.January, 2, 0, 1, 0, 0, time.UTC)
	if got := Classify(event, now); got.DaysLeft != 1 {
		t.Fatalf("expected 1 day left, got %d", got.DaysLeft)
	}
}

func TestLevelOrdering(t *testing.T) {
	if !(LevelOverdue < LevelHigh && LevelHigh < LevelMedium && LevelMedium < LevelLow) {
		t.Fatal("levels must order Overdue < High < Medium < Low")
	}
}

func TestSortByUrgency(t *testing.T) {
	now := date(2024, time.January, 1)
	events := []time.Time{
		date(2024, time.March, 10),   // Low
		date(2024, time.January, 20), // Medium
		date(2024, time.January, 3),  // High
		date(2023, time.December, 1), // Overdue
		date(2024, time.January, 2),  // High, earlier date
	}
	sort.SliceStable(events, func(i, j int) bool {
		pi, pj := Classify(events[i], now), Classify(events[j], now)
		if pi.Level != pj.Level {
			return pi.Level < pj.Level
		}
		return events[i].Before(events[j])
	})

	want := []time.Time{
		date(2023, time.December, 1),
		date(2024, time.January, 2),
		date(2024, time.January, 3),
		date(2024, time.January, 20),
		date(2024, time.March, 10),
	}
	for i := range want {
		if !events[i].Equal(want[i]) {
			t.Fatalf("position %d: got %s, want %s", i,
				events[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

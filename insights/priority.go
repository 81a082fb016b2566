// Package insights contains the pure derivation functions behind the
// dashboard, client list, and budget views: urgency classification, budget
// and expense aggregation, and revenue bucketing. Everything here is
// stateless and deterministic; callers pass the current moment explicitly.
package insights

import (
	"fmt"
	"time"
)

// Level is an urgency bucket derived from days-until-event.
// Lower values are more urgent and sort first.
type Level int

const (
	LevelOverdue Level = iota
	LevelHigh
	LevelMedium
	LevelLow
)

func (l Level) String() string {
	switch l {
	case LevelOverdue:
		return "Overdue"
	case LevelHigh:
		return "High"
	case LevelMedium:
		return "Medium"
	case LevelLow:
		return "Low"
	}
	return "Unknown"
}

// MarshalJSON renders the level as its label.
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// Priority is the urgency classification of one client event.
type Priority struct {
	Level    Level  `json:"level"`
	Text     string `json:"text"` // countdown string for badges
	DaysLeft int    `json:"daysLeft"`
}

// Classify maps an event date and the current moment to an urgency level
// with a human-readable countdown. Days are counted as whole calendar days,
// ignoring time of day.
func Classify(eventDate, now time.Time) Priority {
	days := daysUntil(eventDate, now)
	p := Priority{DaysLeft: days}
	switch {
	case days < 0:
		p.Level = LevelOverdue
		p.Text = fmt.Sprintf("%d days ago", -days)
	case days <= 7:
		p.Level = LevelHigh
		p.Text = fmt.Sprintf("%d days left", days)
	case days <= 30:
		p.Level = LevelMedium
		p.Text = fmt.Sprintf("%d days left", days)
	default:
		p.Level = LevelLow
		p.Text = fmt.Sprintf("%d days left", days)
	}
	return p
}

func daysUntil(eventDate, now time.Time) int {
	return int(midnight(eventDate).Sub(midnight(now)) / (24 * time.Hour))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

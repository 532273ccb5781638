package contest

import "time"

// SessionsPerDay is fixed: morning, afternoon, evening.
const SessionsPerDay = 3

// SessionInfo describes one of the three daily contest windows.
type SessionInfo struct {
	Session int    `json:"session"`
	Time    string `json:"time"`
	Label   string `json:"label"`
}

// DefaultSessionTimes lists the advertised draw times per session.
var DefaultSessionTimes = []SessionInfo{
	{Session: 1, Time: "08:00", Label: "Morning Contest (8:00 AM)"},
	{Session: 2, Time: "14:00", Label: "Afternoon Contest (2:00 PM)"},
	{Session: 3, Time: "20:00", Label: "Evening Contest (8:00 PM)"},
}

// Clock partitions each day into exactly three non-overlapping session
// windows: [00:00, b1) is session 1, [b1, b2) is session 2 and [b2, 24:00)
// is session 3. Boundaries are hours in local time.
type Clock struct {
	SecondSessionHour int
	ThirdSessionHour  int
}

// DefaultClock uses the afternoon and evening session start hours as
// boundaries, so every instant of the day maps to exactly one session.
var DefaultClock = Clock{SecondSessionHour: 14, ThirdSessionHour: 20}

// SessionAt maps an instant to its contest session (1, 2 or 3).
func (c Clock) SessionAt(t time.Time) int {
	hour := t.Hour()
	switch {
	case hour < c.SecondSessionHour:
		return 1
	case hour < c.ThirdSessionHour:
		return 2
	default:
		return 3
	}
}

// NextSession returns the session that opens after the one active at t,
// wrapping to session 1 of the next day after the evening window.
func (c Clock) NextSession(t time.Time) int {
	return c.SessionAt(t)%SessionsPerDay + 1
}

// DateKey is the canonical contest-date form used across the ledger.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

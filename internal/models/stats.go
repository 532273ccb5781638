package models

import "github.com/prizeday/contest-backend/internal/contest"

// ContestStats is the live snapshot the landing page polls.
type ContestStats struct {
	CurrentSession             int    `json:"currentSession"`
	CurrentSessionParticipants int    `json:"currentSessionParticipants"`
	TodayTotalParticipants     int    `json:"todayTotalParticipants"`
	TotalParticipants          int64  `json:"totalParticipants"`
	CurrentSessionWinners      int    `json:"currentSessionWinners"`
	AvailablePrizes            int    `json:"availablePrizes"`
	RemainingSlots             int    `json:"remainingSlots"`
	WinnersSelected            bool   `json:"winnersSelected"`
	NextSession                contest.SessionInfo `json:"nextSession"`
}

// SessionWinners groups the winners of one session for the public listing.
type SessionWinners struct {
	Session     int       `json:"session"`
	Time        string    `json:"time"`
	Label       string    `json:"label"`
	TotalPrizes int       `json:"totalPrizes"`
	Winners     []*Winner `json:"winners"`
}

// DayWinners groups a day's sessions, newest day first in the listing.
type DayWinners struct {
	Date     string            `json:"date"`
	Sessions []*SessionWinners `json:"sessions"`
}

package models

// SelectionResult summarizes one winner-selection run. IntendedWinners is
// what the prize tier allowed; ProcessedCount is how many winner records were
// actually persisted. The two are reported separately so a partial batch
// failure is visible to the caller instead of being folded into "success".
type SelectionResult struct {
	Success           bool   `json:"success"`
	ContestDate       string `json:"contestDate"`
	Session           int    `json:"session"`
	TotalParticipants int    `json:"totalParticipants"`
	PrizesAvailable   int    `json:"prizesAvailable"`
	IntendedWinners   int    `json:"winnersCount"`
	ProcessedCount    int    `json:"processedCount"`
	Shortfall         int    `json:"shortfall"`
	Warning           string `json:"warning,omitempty"`
}

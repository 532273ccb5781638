package contest

// Tier maps a minimum participant count to the number of prizes awarded for
// a session. The table is ordered descending by MinParticipants.
type Tier struct {
	MinParticipants int    `mapstructure:"minParticipants" json:"minParticipants"`
	Prizes          int    `mapstructure:"prizes" json:"prizes"`
	Label           string `mapstructure:"label" json:"label"`
}

// DefaultTiers is the production prize ladder.
var DefaultTiers = []Tier{
	{MinParticipants: 100000, Prizes: 10, Label: "10 iPhones"},
	{MinParticipants: 50000, Prizes: 5, Label: "5 iPhones"},
	{MinParticipants: 25000, Prizes: 3, Label: "3 iPhones"},
	{MinParticipants: 10000, Prizes: 1, Label: "1 iPhone"},
}

// PrizesFor returns the number of prizes available for the given participant
// count. Tiers must already be sorted descending by MinParticipants; the first
// tier whose threshold is met (inclusive) wins. Below the lowest threshold the
// session carries no prizes.
func PrizesFor(tiers []Tier, count int) int {
	for _, tier := range tiers {
		if count >= tier.MinParticipants {
			return tier.Prizes
		}
	}
	return 0
}

// TierFor returns the matched tier for a participant count, or false when the
// count is below every threshold.
func TierFor(tiers []Tier, count int) (Tier, bool) {
	for _, tier := range tiers {
		if count >= tier.MinParticipants {
			return tier, true
		}
	}
	return Tier{}, false
}

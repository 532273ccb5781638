package models

// EntryRequest carries a paid contest entry submission.
type EntryRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	PaymentID     string  `json:"paymentId" binding:"required"`
	OrderID       string  `json:"orderId"`
	EntryFee      float64 `json:"entryFee" binding:"required"`
	Session       int     `json:"contestSession"` // 0 means "current session"
}

// EntryResult is returned after a successful paid entry.
type EntryResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	EntryID          string `json:"entryId"`
	PaymentID        string `json:"paymentId"`
	ContestSession   int    `json:"contestSession"`
	ParticipantCount int    `json:"participantCount"`
}

// UserStats summarizes an account's contest history for the profile page.
type UserStats struct {
	TotalEntries int `json:"totalEntries"`
	TotalWins    int `json:"totalWins"`
	BestPosition int `json:"bestPosition,omitempty"`
}

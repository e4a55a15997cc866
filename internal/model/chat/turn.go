package chat

import "time"

// Turn records one exchange: the user's message and the reply it produced.
// User or Bot may be empty for malformed entries already in storage; both
// keys are always written so the persisted format stays stable.
type Turn struct {
	User        string    `json:"user"`
	Bot         string    `json:"bot"`
	Timestamp   time.Time `json:"timestamp"`
	IsEmergency bool      `json:"is_emergency"`
}

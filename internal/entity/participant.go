package entity

import "time"

type PresenceStatus string

const (
	StatusAvailable PresenceStatus = "available"
	StatusInSession PresenceStatus = "in-session"
)

// Participant is a connected client registered in the lobby. ID is the connection id.
type Participant struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Status PresenceStatus `json:"status"`
	Score  *ScoreRecord   `json:"score,omitempty"`
}

func (that *Participant) IsAvailable() bool {
	return that.Status == StatusAvailable
}

// ChallengeIntent lives between a challenge and its accept, decline or expiry.
type ChallengeIntent struct {
	ChallengerID string
	TargetID     string
	CreatedAt    time.Time
}

func (that *ChallengeIntent) Involves(participantID string) bool {
	return that.ChallengerID == participantID || that.TargetID == participantID
}

func (that *ChallengeIntent) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(that.CreatedAt) >= timeout
}

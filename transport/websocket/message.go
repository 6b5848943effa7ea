package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidPayload = errors.New("invalid payload")

// Message is a client to server frame.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type joinLobbyPayload struct {
	DisplayName string `json:"displayName"`
}

type challengePayload struct {
	TargetID string `json:"targetId"`
}

type respondPayload struct {
	ChallengerID string `json:"challengerId"`
}

// movePayload may carry the side the client believes it plays. The bound side always wins.
type movePayload struct {
	GameID    string `json:"gameId"`
	CellIndex *int   `json:"cellIndex"`
	Side      string `json:"side,omitempty"`
}

type sessionPayload struct {
	GameID string `json:"gameId"`
}

func decodePayload(payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: payload is required", ErrInvalidPayload)
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return nil
}

package entity

const (
	ActionLobbyUpdate       = "lobbyUpdate"
	ActionChallengeReceived = "challengeReceived"
	ActionChallengeDeclined = "challengeDeclined"
	ActionChallengeCanceled = "challengeCanceled"
	ActionStartGame         = "startGame"
	ActionUpdateGame        = "updateGame"
	ActionReturnedToLobby   = "returnedToLobby"
	ActionError             = "error"
)

// Notification is a server to client message. Payload is encoded by the transport.
type Notification struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

type LobbyUpdatePayload struct {
	Participants []Participant `json:"participants"`
}

type ChallengeReceivedPayload struct {
	ChallengerID   string `json:"challengerId"`
	ChallengerName string `json:"challengerName"`
}

type ChallengeDeclinedPayload struct {
	TargetID string `json:"targetId"`
	Reason   string `json:"reason"`
}

// ChallengeCanceledPayload tells a target that a challenge it received is no longer open.
type ChallengeCanceledPayload struct {
	ChallengerID string `json:"challengerId"`
	Reason       string `json:"reason"`
}

type StartGamePayload struct {
	GameID       string `json:"gameId"`
	Board        Board  `json:"board"`
	YourTurn     bool   `json:"yourTurn"`
	YourSide     Side   `json:"yourSide"`
	OpponentName string `json:"opponentName"`
}

// SessionView is a session as seen from one bound connection.
type SessionView struct {
	GameID   string `json:"gameId"`
	Board    Board  `json:"board"`
	Turn     Side   `json:"turn"`
	Result   Result `json:"result"`
	Winner   Side   `json:"winner,omitempty"`
	Round    int    `json:"round"`
	YourTurn bool   `json:"yourTurn"`
	YourSide Side   `json:"yourSide"`
}

type ErrorPayload struct {
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

func NewLobbyUpdate(participants []Participant) *Notification {
	return &Notification{Action: ActionLobbyUpdate, Payload: LobbyUpdatePayload{Participants: participants}}
}

func NewStartGame(session *Session, participantID string) *Notification {
	slot, _ := session.SlotOf(participantID)
	opponent, _ := session.OpponentOf(participantID)

	return &Notification{
		Action: ActionStartGame,
		Payload: StartGamePayload{
			GameID:       session.ID,
			Board:        session.Board,
			YourTurn:     session.Turn == slot.Side,
			YourSide:     slot.Side,
			OpponentName: opponent.Name,
		},
	}
}

func NewUpdateGame(session *Session, participantID string) *Notification {
	slot, _ := session.SlotOf(participantID)

	return &Notification{
		Action: ActionUpdateGame,
		Payload: SessionView{
			GameID:   session.ID,
			Board:    session.Board,
			Turn:     session.Turn,
			Result:   session.Result,
			Winner:   session.Winner,
			Round:    session.Round,
			YourTurn: !session.IsTerminal() && session.Turn == slot.Side,
			YourSide: slot.Side,
		},
	}
}

func NewReturnedToLobby() *Notification {
	return &Notification{Action: ActionReturnedToLobby}
}

func NewError(action, message string) *Notification {
	return &Notification{Action: ActionError, Payload: ErrorPayload{Action: action, Message: message}}
}

package usecase

import "github.com/rocketscienceinc/tictactoe-lobby/internal/entity"

// Event is anything the session manager loop can process.
type Event interface{ isEvent() }

// clientEvent is an event sent by one connection. Rejections go back to it.
type clientEvent interface {
	Event
	origin() string
	action() string
}

type JoinLobby struct {
	ConnectionID string
	DisplayName  string
}

type ChallengePlayer struct {
	ConnectionID string
	TargetID     string
}

type RespondChallenge struct {
	ConnectionID string
	ChallengerID string
	Accepted     bool
}

type PlaySolo struct {
	ConnectionID string
}

type MakeMove struct {
	ConnectionID string
	GameID       string
	Cell         int
}

type RequestRematch struct {
	ConnectionID string
	GameID       string
}

type ExitSession struct {
	ConnectionID string
	GameID       string
}

type Disconnect struct {
	ConnectionID string
}

// ExpireChallenges drops challenges older than the configured timeout.
type ExpireChallenges struct{}

type teardownDue struct {
	SessionID string
	Round     int
}

type scoreLoaded struct {
	Record *entity.ScoreRecord
}

type inspection struct {
	fn   func()
	done chan struct{}
}

func (JoinLobby) isEvent()        {}
func (ChallengePlayer) isEvent()  {}
func (RespondChallenge) isEvent() {}
func (PlaySolo) isEvent()         {}
func (MakeMove) isEvent()         {}
func (RequestRematch) isEvent()   {}
func (ExitSession) isEvent()      {}
func (Disconnect) isEvent()       {}
func (ExpireChallenges) isEvent() {}
func (teardownDue) isEvent()      {}
func (scoreLoaded) isEvent()      {}
func (inspection) isEvent()       {}

func (that JoinLobby) origin() string        { return that.ConnectionID }
func (that ChallengePlayer) origin() string  { return that.ConnectionID }
func (that RespondChallenge) origin() string { return that.ConnectionID }
func (that PlaySolo) origin() string         { return that.ConnectionID }
func (that MakeMove) origin() string         { return that.ConnectionID }
func (that RequestRematch) origin() string   { return that.ConnectionID }
func (that ExitSession) origin() string      { return that.ConnectionID }

func (JoinLobby) action() string       { return "joinLobby" }
func (ChallengePlayer) action() string { return "challengePlayer" }
func (PlaySolo) action() string        { return "playSolo" }
func (MakeMove) action() string        { return "makeMove" }
func (RequestRematch) action() string  { return "requestRematch" }
func (ExitSession) action() string     { return "exitSession" }

func (that RespondChallenge) action() string {
	if that.Accepted {
		return "acceptChallenge"
	}

	return "declineChallenge"
}

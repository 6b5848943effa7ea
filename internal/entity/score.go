package entity

import "time"

type ScoreOutcome string

const (
	ScoreWin  ScoreOutcome = "wins"
	ScoreLoss ScoreOutcome = "losses"
	ScoreDraw ScoreOutcome = "draws"
)

// ScoreRecord holds aggregate results keyed by display name.
type ScoreRecord struct {
	Name          string `json:"name"`
	MatchesPlayed int64  `json:"matches_played"`
	Wins          int64  `json:"wins"`
	Losses        int64  `json:"losses"`
	Draws         int64  `json:"draws"`
}

func (that *ScoreRecord) Apply(outcome ScoreOutcome) {
	that.MatchesPlayed++

	switch outcome {
	case ScoreWin:
		that.Wins++
	case ScoreLoss:
		that.Losses++
	case ScoreDraw:
		that.Draws++
	}
}

// MatchRecord is the archived result of one round of a session.
type MatchRecord struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Round      int       `json:"round"`
	Players    [2]Slot   `json:"players"`
	Board      Board     `json:"board"`
	Result     Result    `json:"result"`
	Winner     Side      `json:"winner,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewMatchRecord(id string, session *Session, finishedAt time.Time) *MatchRecord {
	return &MatchRecord{
		ID:         id,
		SessionID:  session.ID,
		Round:      session.Round,
		Players:    session.Slots,
		Board:      session.Board,
		Result:     session.Result,
		Winner:     session.Winner,
		FinishedAt: finishedAt,
	}
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
)

type Result string

const (
	ResultNone      Result = "none"
	ResultWin       Result = "win"
	ResultDraw      Result = "draw"
	ResultAbandoned Result = "abandoned"
)

// Slot binds one participant of a session to a side.
type Slot struct {
	ParticipantID string `json:"id"`
	Name          string `json:"name"`
	Side          Side   `json:"side"`
	Automated     bool   `json:"automated,omitempty"`
}

type Session struct {
	ID     string  `json:"id"`
	Slots  [2]Slot `json:"slots"`
	Board  Board   `json:"board"`
	Turn   Side    `json:"turn"`
	Result Result  `json:"result"`
	Winner Side    `json:"winner,omitempty"`
	Round  int     `json:"round"`

	consents map[string]struct{}
}

// NewSession puts first on X and second on O. X moves first.
func NewSession(id string, first, second Slot) *Session {
	first.Side = SideX
	second.Side = SideO

	return &Session{
		ID:       id,
		Slots:    [2]Slot{first, second},
		Turn:     SideX,
		Result:   ResultNone,
		Round:    1,
		consents: make(map[string]struct{}),
	}
}

func (that *Session) SlotOf(participantID string) (Slot, bool) {
	for _, slot := range that.Slots {
		if !slot.Automated && slot.ParticipantID == participantID {
			return slot, true
		}
	}

	return Slot{}, false
}

func (that *Session) OpponentOf(participantID string) (Slot, bool) {
	for i, slot := range that.Slots {
		if !slot.Automated && slot.ParticipantID == participantID {
			return that.Slots[1-i], true
		}
	}

	return Slot{}, false
}

func (that *Session) SlotBySide(side Side) (Slot, bool) {
	for _, slot := range that.Slots {
		if slot.Side == side {
			return slot, true
		}
	}

	return Slot{}, false
}

// Humans returns the slots bound to real connections.
func (that *Session) Humans() []Slot {
	humans := make([]Slot, 0, len(that.Slots))
	for _, slot := range that.Slots {
		if !slot.Automated {
			humans = append(humans, slot)
		}
	}

	return humans
}

func (that *Session) HasAutomated() bool {
	return len(that.Humans()) < len(that.Slots)
}

func (that *Session) IsTerminal() bool {
	return that.Result != ResultNone
}

func (that *Session) IsAbandoned() bool {
	return that.Result == ResultAbandoned
}

// ApplyMove claims cell for side and re-evaluates the board.
func (that *Session) ApplyMove(side Side, cell int, evaluator OutcomeEvaluator) error {
	if that.IsTerminal() {
		return apperror.ErrSessionFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != side {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != SideNone {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = side

	outcome := evaluator.Evaluate(that.Board)
	switch outcome.Kind {
	case OutcomeWin:
		that.Result = ResultWin
		that.Winner = outcome.Side
		that.Turn = SideNone
	case OutcomeDraw:
		that.Result = ResultDraw
		that.Turn = SideNone
	default:
		that.Turn = side.Opponent()
	}

	return nil
}

// Consent records a rematch request and reports whether every human has asked for one.
func (that *Session) Consent(participantID string) bool {
	if that.consents == nil {
		that.consents = make(map[string]struct{})
	}

	that.consents[participantID] = struct{}{}

	for _, slot := range that.Humans() {
		if _, ok := that.consents[slot.ParticipantID]; !ok {
			return false
		}
	}

	return true
}

func (that *Session) Consents() int {
	return len(that.consents)
}

// Reset starts a new round with the same id and participants.
func (that *Session) Reset() {
	that.Board = Board{}
	that.Turn = SideX
	that.Result = ResultNone
	that.Winner = SideNone
	that.Round++
	that.consents = make(map[string]struct{})
}

func (that *Session) Abandon() {
	that.Result = ResultAbandoned
	that.Winner = SideNone
	that.Turn = SideNone
}

package entity

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return NewSession("session-1",
		Slot{ParticipantID: "a", Name: "A"},
		Slot{ParticipantID: "b", Name: "B"},
	)
}

func TestNewSession(t *testing.T) {
	// When: a session is created
	session := newTestSession()

	// Then: the first slot plays X and moves first
	assert.Equal(t, SideX, session.Slots[0].Side)
	assert.Equal(t, SideO, session.Slots[1].Side)
	assert.Equal(t, SideX, session.Turn)
	assert.Equal(t, ResultNone, session.Result)
	assert.Equal(t, 1, session.Round)
	assert.False(t, session.IsTerminal())
}

func TestSession_ApplyMove(t *testing.T) {
	evaluator := NewLineEvaluator()

	t.Run("Successful move alternates the side to move", func(t *testing.T) {
		// Given: a new session
		session := newTestSession()

		// When: X claims cell 4
		err := session.ApplyMove(SideX, 4, evaluator)

		// Then: the cell is claimed and O moves next
		require.NoError(t, err)
		assert.Equal(t, SideX, session.Board[4])
		assert.Equal(t, SideO, session.Turn)
		assert.Equal(t, ResultNone, session.Result)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a session where X claimed cell 0
		session := newTestSession()
		require.NoError(t, session.ApplyMove(SideX, 0, evaluator))

		// When: O tries the same cell
		err := session.ApplyMove(SideO, 0, evaluator)

		// Then: the move is rejected and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, SideX, session.Board[0])
		assert.Equal(t, SideO, session.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new session where X moves first
		session := newTestSession()

		// When: O tries to move
		err := session.ApplyMove(SideO, 1, evaluator)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, session.Board)
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		session := newTestSession()

		assert.ErrorIs(t, session.ApplyMove(SideX, 9, evaluator), apperror.ErrInvalidCell)
		assert.ErrorIs(t, session.ApplyMove(SideX, -1, evaluator), apperror.ErrInvalidCell)
	})

	t.Run("Win ends the round", func(t *testing.T) {
		// Given: X owns cells 0 and 1, O owns 3 and 4
		session := newTestSession()
		for _, move := range []struct {
			side Side
			cell int
		}{{SideX, 0}, {SideO, 3}, {SideX, 1}, {SideO, 4}} {
			require.NoError(t, session.ApplyMove(move.side, move.cell, evaluator))
		}

		// When: X completes the top row
		err := session.ApplyMove(SideX, 2, evaluator)

		// Then: X wins and nobody is to move
		require.NoError(t, err)
		assert.Equal(t, ResultWin, session.Result)
		assert.Equal(t, SideX, session.Winner)
		assert.Equal(t, SideNone, session.Turn)

		// And: further moves are rejected
		require.ErrorIs(t, session.ApplyMove(SideO, 5, evaluator), apperror.ErrSessionFinished)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a session heading for a draw
		session := newTestSession()
		for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6} {
			require.NoError(t, session.ApplyMove(session.Turn, cell, evaluator))
		}

		// When: the last cell is claimed
		err := session.ApplyMove(SideX, 8, evaluator)

		// Then: the round is a draw
		require.NoError(t, err)
		assert.Equal(t, ResultDraw, session.Result)
		assert.Equal(t, SideNone, session.Winner)
	})
}

func TestSession_Consent(t *testing.T) {
	t.Run("Two humans need both consents", func(t *testing.T) {
		// Given: a session between two humans
		session := newTestSession()

		// When: only A consents
		ready := session.Consent("a")

		// Then: the rematch is not ready
		assert.False(t, ready)
		assert.Equal(t, 1, session.Consents())

		// When: B consents too
		ready = session.Consent("b")

		// Then: the rematch is ready
		assert.True(t, ready)
	})

	t.Run("Automated opponent needs a single consent", func(t *testing.T) {
		// Given: a session against an automated slot
		session := NewSession("solo", Slot{ParticipantID: "a", Name: "A"}, Slot{Name: "Computer", Automated: true})

		// When: the human consents
		ready := session.Consent("a")

		// Then: the rematch is ready
		assert.True(t, ready)
		assert.True(t, session.HasAutomated())
	})
}

func TestSession_Reset(t *testing.T) {
	// Given: a finished session with a pending consent
	session := newTestSession()
	session.Board[0] = SideX
	session.Result = ResultWin
	session.Winner = SideX
	session.Turn = SideNone
	session.Consent("a")

	// When: the session is reset
	session.Reset()

	// Then: the board and result are fresh, id and slots are kept
	assert.Equal(t, "session-1", session.ID)
	assert.Equal(t, Board{}, session.Board)
	assert.Equal(t, SideX, session.Turn)
	assert.Equal(t, ResultNone, session.Result)
	assert.Equal(t, SideNone, session.Winner)
	assert.Equal(t, 2, session.Round)
	assert.Equal(t, 0, session.Consents())
	assert.Equal(t, "A", session.Slots[0].Name)
}

func TestSession_Slots(t *testing.T) {
	session := NewSession("solo", Slot{ParticipantID: "a", Name: "A"}, Slot{Name: "Computer", Automated: true})

	slot, ok := session.SlotOf("a")
	require.True(t, ok)
	assert.Equal(t, SideX, slot.Side)

	opponent, ok := session.OpponentOf("a")
	require.True(t, ok)
	assert.True(t, opponent.Automated)

	_, ok = session.SlotOf("")
	assert.False(t, ok, "automated slot must not match an empty connection id")

	bot, ok := session.SlotBySide(SideO)
	require.True(t, ok)
	assert.Equal(t, "Computer", bot.Name)
	assert.Len(t, session.Humans(), 1)
}

func TestSession_Abandon(t *testing.T) {
	session := newTestSession()

	session.Abandon()

	assert.True(t, session.IsTerminal())
	assert.True(t, session.IsAbandoned())
	assert.Equal(t, SideNone, session.Turn)
}

func TestScoreRecord_Apply(t *testing.T) {
	record := &ScoreRecord{Name: "A"}

	record.Apply(ScoreWin)
	record.Apply(ScoreLoss)
	record.Apply(ScoreDraw)
	record.Apply(ScoreDraw)

	assert.Equal(t, &ScoreRecord{Name: "A", MatchesPlayed: 4, Wins: 1, Losses: 1, Draws: 2}, record)
}

func TestChallengeIntent(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	intent := &ChallengeIntent{ChallengerID: "a", TargetID: "b", CreatedAt: created}

	assert.True(t, intent.Involves("a"))
	assert.True(t, intent.Involves("b"))
	assert.False(t, intent.Involves("c"))
	assert.False(t, intent.Expired(created.Add(10*time.Second), 30*time.Second))
	assert.True(t, intent.Expired(created.Add(30*time.Second), 30*time.Second))
}

func TestNotifications(t *testing.T) {
	session := newTestSession()

	t.Run("Start game is connection specific", func(t *testing.T) {
		first := NewStartGame(session, "a").Payload.(StartGamePayload)
		second := NewStartGame(session, "b").Payload.(StartGamePayload)

		assert.Equal(t, StartGamePayload{GameID: "session-1", YourTurn: true, YourSide: SideX, OpponentName: "B"}, first)
		assert.Equal(t, StartGamePayload{GameID: "session-1", YourTurn: false, YourSide: SideO, OpponentName: "A"}, second)
	})

	t.Run("Update game reports no turn after a terminal result", func(t *testing.T) {
		session.Abandon()

		view := NewUpdateGame(session, "b").Payload.(SessionView)

		assert.Equal(t, ResultAbandoned, view.Result)
		assert.False(t, view.YourTurn)
		assert.Equal(t, SideO, view.YourSide)
	})
}

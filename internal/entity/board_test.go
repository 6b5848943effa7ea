package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	x = SideX
	o = SideO
	e = SideNone
)

func TestLineEvaluator_Evaluate(t *testing.T) {
	evaluator := NewLineEvaluator()

	t.Run("Returns win for every line claimed by one side", func(t *testing.T) {
		for _, side := range []Side{SideX, SideO} {
			for _, line := range WinCombos {
				// Given: a board where only one line is claimed by the side
				var board Board
				for _, cell := range line {
					board[cell] = side
				}

				// When: evaluating the board
				outcome := evaluator.Evaluate(board)

				// Then: the side wins
				assert.Equal(t, Outcome{Kind: OutcomeWin, Side: side}, outcome, "line %v", line)
			}
		}
	})

	t.Run("Returns draw when the board is full without a line", func(t *testing.T) {
		// Given: a full board without a winning line
		board := Board{
			x, o, x,
			o, x, o,
			o, x, o,
		}

		// When: evaluating the board
		outcome := evaluator.Evaluate(board)

		// Then: it is a draw
		assert.Equal(t, Outcome{Kind: OutcomeDraw}, outcome)
		assert.True(t, outcome.IsTerminal())
	})

	t.Run("Returns none while the game continues", func(t *testing.T) {
		// Given: a board with empty cells and no line
		board := Board{
			x, o, e,
			e, x, e,
			e, e, o,
		}

		// When: evaluating the board
		outcome := evaluator.Evaluate(board)

		// Then: there is no result yet
		assert.Equal(t, OutcomeNone, outcome.Kind)
		assert.False(t, outcome.IsTerminal())
	})

	t.Run("Full board with a line is a win, not a draw", func(t *testing.T) {
		// Given: a full board where X completes the diagonal
		board := Board{
			x, o, o,
			o, x, x,
			x, o, x,
		}

		// When: evaluating the board
		outcome := evaluator.Evaluate(board)

		// Then: X wins
		assert.Equal(t, Outcome{Kind: OutcomeWin, Side: SideX}, outcome)
	})

	t.Run("Swapping sides swaps the winner", func(t *testing.T) {
		// Given: a board and its mirror with sides swapped
		board := Board{
			o, o, o,
			x, x, e,
			e, e, e,
		}
		var mirrored Board
		for i, cell := range board {
			mirrored[i] = cell.Opponent()
		}

		// When: evaluating both
		outcome := evaluator.Evaluate(board)
		mirroredOutcome := evaluator.Evaluate(mirrored)

		// Then: only the claim pattern matters
		assert.Equal(t, SideO, outcome.Side)
		assert.Equal(t, SideX, mirroredOutcome.Side)
		assert.Equal(t, outcome.Kind, mirroredOutcome.Kind)
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with three claimed cells
	board := Board{
		x, e, e,
		e, o, e,
		e, e, x,
	}

	// When: listing empty cells
	cells := board.EmptyCells()

	// Then: the unclaimed indexes are returned in order
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, cells)
	assert.False(t, board.IsFull())
}

func TestSide_Opponent(t *testing.T) {
	assert.Equal(t, SideO, SideX.Opponent())
	assert.Equal(t, SideX, SideO.Opponent())
	assert.Equal(t, SideNone, SideNone.Opponent())
}

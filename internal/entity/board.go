package entity

type Side string

const (
	SideX    Side = "X"
	SideO    Side = "O"
	SideNone Side = ""
)

// Opponent returns the other side. SideNone has no opponent.
func (that Side) Opponent() Side {
	switch that {
	case SideX:
		return SideO
	case SideO:
		return SideX
	default:
		return SideNone
	}
}

const BoardSize = 9

type Board [BoardSize]Side

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == SideNone {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == SideNone {
			return false
		}
	}

	return true
}

type OutcomeKind string

const (
	OutcomeNone OutcomeKind = "none"
	OutcomeWin  OutcomeKind = "win"
	OutcomeDraw OutcomeKind = "draw"
)

type Outcome struct {
	Kind OutcomeKind
	Side Side
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

// OutcomeEvaluator decides whether a board has a terminal outcome. Implementations must be pure.
type OutcomeEvaluator interface {
	Evaluate(board Board) Outcome
}

// LineEvaluator reports a win when every cell of one line is claimed by the same side.
type LineEvaluator struct {
	lines [][3]int
}

func NewLineEvaluator() *LineEvaluator {
	return &LineEvaluator{lines: WinCombos}
}

func (that *LineEvaluator) Evaluate(board Board) Outcome {
	for _, line := range that.lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != SideNone && a == b && b == c {
			return Outcome{Kind: OutcomeWin, Side: a}
		}
	}

	// the game continues until every cell is claimed
	if !board.IsFull() {
		return Outcome{Kind: OutcomeNone}
	}

	return Outcome{Kind: OutcomeDraw}
}

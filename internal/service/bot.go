package service

import (
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	ChooseCell(board entity.Board) (int, error)
}

type botService struct{}

// NewBotService returns a bot that picks uniformly among empty cells.
func NewBotService() BotService {
	return &botService{}
}

func (that *botService) ChooseCell(board entity.Board) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}

package lobby

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// Directory is the registry of participants connected to the lobby.
// It is not safe for concurrent use; the session manager owns it.
type Directory struct {
	participants map[string]*entity.Participant
	order        []string
}

func NewDirectory() *Directory {
	return &Directory{
		participants: make(map[string]*entity.Participant),
	}
}

// Join registers an available participant. Joining twice is a no-op and returns false.
func (that *Directory) Join(id, name string) bool {
	if _, ok := that.participants[id]; ok {
		return false
	}

	that.participants[id] = &entity.Participant{
		ID:     id,
		Name:   name,
		Status: entity.StatusAvailable,
	}
	that.order = append(that.order, id)

	return true
}

func (that *Directory) Leave(id string) {
	if _, ok := that.participants[id]; !ok {
		return
	}

	delete(that.participants, id)

	for i, existing := range that.order {
		if existing == id {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

func (that *Directory) SetStatus(id string, status entity.PresenceStatus) error {
	participant, ok := that.participants[id]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrParticipantNotFound, id)
	}

	participant.Status = status

	return nil
}

func (that *Directory) Get(id string) (*entity.Participant, bool) {
	participant, ok := that.participants[id]

	return participant, ok
}

// ApplyScore refreshes the cached score of every participant using the name.
// A record with fewer played matches than one already cached is stale and loses to it.
func (that *Directory) ApplyScore(record *entity.ScoreRecord) bool {
	freshest := *record

	for _, participant := range that.participants {
		if participant.Name == record.Name && participant.Score != nil &&
			participant.Score.MatchesPlayed > freshest.MatchesPlayed {
			freshest = *participant.Score
		}
	}

	updated := false

	for _, participant := range that.participants {
		if participant.Name != record.Name {
			continue
		}

		if participant.Score != nil && *participant.Score == freshest {
			continue
		}

		score := freshest
		participant.Score = &score
		updated = true
	}

	return updated
}

// Snapshot returns copies of all participants in join order.
func (that *Directory) Snapshot() []entity.Participant {
	snapshot := make([]entity.Participant, 0, len(that.order))

	for _, id := range that.order {
		participant := *that.participants[id]
		if participant.Score != nil {
			score := *participant.Score
			participant.Score = &score
		}

		snapshot = append(snapshot, participant)
	}

	return snapshot
}

func (that *Directory) Len() int {
	return len(that.participants)
}

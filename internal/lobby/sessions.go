package lobby

import "github.com/rocketscienceinc/tictactoe-lobby/internal/entity"

// Sessions is the table of live sessions with a participant index.
// It is not safe for concurrent use.
type Sessions struct {
	byID          map[string]*entity.Session
	byParticipant map[string]string
}

func NewSessions() *Sessions {
	return &Sessions{
		byID:          make(map[string]*entity.Session),
		byParticipant: make(map[string]string),
	}
}

func (that *Sessions) Add(session *entity.Session) {
	that.byID[session.ID] = session

	for _, slot := range session.Humans() {
		that.byParticipant[slot.ParticipantID] = session.ID
	}
}

func (that *Sessions) Get(id string) (*entity.Session, bool) {
	session, ok := that.byID[id]

	return session, ok
}

func (that *Sessions) ByParticipant(participantID string) (*entity.Session, bool) {
	id, ok := that.byParticipant[participantID]
	if !ok {
		return nil, false
	}

	return that.Get(id)
}

func (that *Sessions) Remove(id string) {
	session, ok := that.byID[id]
	if !ok {
		return
	}

	for _, slot := range session.Humans() {
		if that.byParticipant[slot.ParticipantID] == id {
			delete(that.byParticipant, slot.ParticipantID)
		}
	}

	delete(that.byID, id)
}

// All returns the live sessions in no particular order.
func (that *Sessions) All() []*entity.Session {
	all := make([]*entity.Session, 0, len(that.byID))
	for _, session := range that.byID {
		all = append(all, session)
	}

	return all
}

func (that *Sessions) Len() int {
	return len(that.byID)
}

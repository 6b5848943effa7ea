package apperror

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionFinished    = errors.New("session is already finished")
	ErrSessionNotFinished = errors.New("session is not finished yet")
	ErrNotInSession       = errors.New("participant is not in this session")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrInvalidCell        = errors.New("invalid cell index")

	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantBusy     = errors.New("participant is busy")
	ErrNotJoined           = errors.New("join the lobby first")
	ErrEmptyName           = errors.New("display name is required")
	ErrSelfChallenge       = errors.New("can't challenge yourself")
	ErrChallengeNotFound   = errors.New("challenge not found")
)

var protocolReasons = []struct {
	err    error
	reason string
}{
	{ErrSessionNotFound, "session_not_found"},
	{ErrSessionFinished, "session_finished"},
	{ErrSessionNotFinished, "session_not_finished"},
	{ErrNotInSession, "not_in_session"},
	{ErrNotYourTurn, "not_your_turn"},
	{ErrCellOccupied, "cell_occupied"},
	{ErrInvalidCell, "invalid_cell"},
	{ErrParticipantNotFound, "participant_not_found"},
	{ErrParticipantBusy, "participant_busy"},
	{ErrNotJoined, "not_joined"},
	{ErrEmptyName, "empty_name"},
	{ErrSelfChallenge, "self_challenge"},
	{ErrChallengeNotFound, "challenge_not_found"},
}

// Reason returns a short label for a rejection a client can cause by sending a bad request.
// The second value is false for any other error.
func Reason(err error) (string, bool) {
	for _, candidate := range protocolReasons {
		if errors.Is(err, candidate.err) {
			return candidate.reason, true
		}
	}

	return "", false
}

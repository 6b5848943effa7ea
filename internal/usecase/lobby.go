package usecase

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	reasonDeclined    = "challenge declined"
	reasonTimedOut    = "challenge timed out"
	reasonLeft        = "player left the lobby"
	reasonUnavailable = "player is no longer available"
)

func (that *SessionManager) joinLobby(ev JoinLobby) error {
	log := that.logger.With("method", "joinLobby", "connectionID", ev.ConnectionID)

	name := strings.TrimSpace(ev.DisplayName)
	if name == "" {
		return apperror.ErrEmptyName
	}

	if !that.directory.Join(ev.ConnectionID, name) {
		// a repeated join only refreshes the caller's view
		that.notifier.Send(ev.ConnectionID, entity.NewLobbyUpdate(that.directory.Snapshot()))
		return nil
	}

	that.lookupScore(name)

	log.Info("participant joined the lobby", "name", name)
	that.broadcastLobby()

	return nil
}

func (that *SessionManager) lookupScore(name string) {
	that.recorder.Lookup(name, func(record *entity.ScoreRecord) {
		that.post(scoreLoaded{Record: record})
	})
}

func (that *SessionManager) challengePlayer(ev ChallengePlayer) error {
	log := that.logger.With("method", "challengePlayer", "connectionID", ev.ConnectionID)

	challenger, ok := that.directory.Get(ev.ConnectionID)
	if !ok {
		return apperror.ErrNotJoined
	}

	target, ok := that.directory.Get(ev.TargetID)
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrParticipantNotFound, ev.TargetID)
	}

	if challenger.ID == target.ID {
		return apperror.ErrSelfChallenge
	}

	if !that.isFree(challenger) || !that.isFree(target) {
		return apperror.ErrParticipantBusy
	}

	intent := &entity.ChallengeIntent{
		ChallengerID: challenger.ID,
		TargetID:     target.ID,
		CreatedAt:    that.opts.Now(),
	}
	that.challenges[challenger.ID] = intent
	that.challenges[target.ID] = intent

	that.notifier.Send(target.ID, &entity.Notification{
		Action: entity.ActionChallengeReceived,
		Payload: entity.ChallengeReceivedPayload{
			ChallengerID:   challenger.ID,
			ChallengerName: challenger.Name,
		},
	})

	log.Info("challenge sent", "targetID", target.ID)

	return nil
}

func (that *SessionManager) respondChallenge(ev RespondChallenge) error {
	log := that.logger.With("method", "respondChallenge", "connectionID", ev.ConnectionID, "accepted", ev.Accepted)

	intent, ok := that.challenges[ev.ConnectionID]
	if !ok || intent.TargetID != ev.ConnectionID || intent.ChallengerID != ev.ChallengerID {
		return apperror.ErrChallengeNotFound
	}

	that.dropChallenge(intent)

	if !ev.Accepted {
		that.sendDeclined(intent, reasonDeclined)
		log.Info("challenge declined", "challengerID", intent.ChallengerID)

		return nil
	}

	challenger, challengerOK := that.directory.Get(intent.ChallengerID)
	target, targetOK := that.directory.Get(intent.TargetID)

	if !challengerOK || !targetOK || !challenger.IsAvailable() || !target.IsAvailable() {
		that.sendDeclined(intent, reasonUnavailable)
		return apperror.ErrParticipantBusy
	}

	session := that.startSession(
		entity.Slot{ParticipantID: challenger.ID, Name: challenger.Name},
		entity.Slot{ParticipantID: target.ID, Name: target.Name},
		kindDuel,
	)

	log.Info("challenge accepted", "sessionID", session.ID)

	return nil
}

func (that *SessionManager) expireChallenges() {
	log := that.logger.With("method", "expireChallenges")

	now := that.opts.Now()

	for key, intent := range that.challenges {
		if key != intent.ChallengerID || !intent.Expired(now, that.opts.ChallengeTimeout) {
			continue
		}

		that.dropChallenge(intent)
		that.sendDeclined(intent, reasonTimedOut)
		that.sendCanceled(intent, reasonTimedOut)

		log.Info("challenge expired", "challengerID", intent.ChallengerID, "targetID", intent.TargetID)
	}
}

// isFree reports whether a participant may take part in a new challenge.
func (that *SessionManager) isFree(participant *entity.Participant) bool {
	if !participant.IsAvailable() {
		return false
	}

	_, pending := that.challenges[participant.ID]

	return !pending
}

func (that *SessionManager) dropChallenge(intent *entity.ChallengeIntent) {
	delete(that.challenges, intent.ChallengerID)
	delete(that.challenges, intent.TargetID)
}

// dropChallengesOf cancels the pending challenge of a participant who is going away
// and tells the other party.
func (that *SessionManager) dropChallengesOf(participantID, reason string) {
	intent, ok := that.challenges[participantID]
	if !ok {
		return
	}

	that.dropChallenge(intent)

	if intent.TargetID == participantID {
		that.sendDeclined(intent, reason)
	} else {
		that.sendCanceled(intent, reason)
	}
}

func (that *SessionManager) sendDeclined(intent *entity.ChallengeIntent, reason string) {
	that.notifier.Send(intent.ChallengerID, &entity.Notification{
		Action: entity.ActionChallengeDeclined,
		Payload: entity.ChallengeDeclinedPayload{
			TargetID: intent.TargetID,
			Reason:   reason,
		},
	})
}

func (that *SessionManager) sendCanceled(intent *entity.ChallengeIntent, reason string) {
	that.notifier.Send(intent.TargetID, &entity.Notification{
		Action: entity.ActionChallengeCanceled,
		Payload: entity.ChallengeCanceledPayload{
			ChallengerID: intent.ChallengerID,
			Reason:       reason,
		},
	})
}

func (that *SessionManager) disconnect(ev Disconnect) {
	log := that.logger.With("method", "disconnect", "connectionID", ev.ConnectionID)

	that.dropChallengesOf(ev.ConnectionID, reasonLeft)

	if session, ok := that.sessions.ByParticipant(ev.ConnectionID); ok {
		log.Info("participant left a session", "sessionID", session.ID)
		that.abandon(session, ev.ConnectionID)
	}

	that.notifier.Unbind(ev.ConnectionID)

	if _, ok := that.directory.Get(ev.ConnectionID); !ok {
		return
	}

	that.directory.Leave(ev.ConnectionID)
	that.broadcastLobby()

	log.Info("participant left the lobby")
}

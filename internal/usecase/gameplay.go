package usecase

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	kindDuel = "duel"
	kindSolo = "solo"
)

func (that *SessionManager) playSolo(ev PlaySolo) error {
	log := that.logger.With("method", "playSolo", "connectionID", ev.ConnectionID)

	participant, ok := that.directory.Get(ev.ConnectionID)
	if !ok {
		return apperror.ErrNotJoined
	}

	if !participant.IsAvailable() {
		return apperror.ErrParticipantBusy
	}

	that.dropChallengesOf(participant.ID, reasonUnavailable)

	session := that.startSession(
		entity.Slot{ParticipantID: participant.ID, Name: participant.Name},
		entity.Slot{Name: that.opts.BotName, Automated: true},
		kindSolo,
	)

	log.Info("solo session started", "sessionID", session.ID)

	return nil
}

func (that *SessionManager) startSession(first, second entity.Slot, kind string) *entity.Session {
	session := entity.NewSession(that.opts.NewID(), first, second)
	that.sessions.Add(session)

	for _, slot := range session.Humans() {
		if err := that.directory.SetStatus(slot.ParticipantID, entity.StatusInSession); err != nil {
			that.logger.Warn("failed to mark participant in session", "connectionID", slot.ParticipantID, "error", err)
		}

		that.notifier.Bind(slot.ParticipantID, session.ID)
		that.notifier.Send(slot.ParticipantID, entity.NewStartGame(session, slot.ParticipantID))
	}

	that.metrics.RecordSessionStarted(kind)
	that.broadcastLobby()

	return session
}

func (that *SessionManager) makeMove(ev MakeMove) error {
	log := that.logger.With("method", "makeMove", "connectionID", ev.ConnectionID, "sessionID", ev.GameID)

	session, ok := that.sessions.Get(ev.GameID)
	if !ok {
		return apperror.ErrSessionNotFound
	}

	slot, ok := session.SlotOf(ev.ConnectionID)
	if !ok {
		return apperror.ErrNotInSession
	}

	if err := session.ApplyMove(slot.Side, ev.Cell, that.evaluator); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	if !session.IsTerminal() && session.HasAutomated() {
		if err := that.botMove(session); err != nil {
			return err
		}
	}

	if session.IsTerminal() {
		that.finishRound(session)
	}

	that.publish(session)

	if session.IsTerminal() {
		log.Info("round finished", "result", session.Result, "winner", session.Winner)
		that.scheduleTeardown(session)
		that.broadcastLobby()
	}

	return nil
}

func (that *SessionManager) botMove(session *entity.Session) error {
	bot, ok := session.SlotBySide(session.Turn)
	if !ok || !bot.Automated {
		return nil
	}

	cell, err := that.bot.ChooseCell(session.Board)
	if err != nil {
		return fmt.Errorf("bot failed to choose a cell: %w", err)
	}

	if err = session.ApplyMove(bot.Side, cell, that.evaluator); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// finishRound records scores for human participants and archives the round.
func (that *SessionManager) finishRound(session *entity.Session) {
	that.metrics.RecordSessionResult(string(session.Result))

	for _, slot := range session.Humans() {
		outcome := entity.ScoreDraw
		if session.Result == entity.ResultWin {
			outcome = entity.ScoreLoss
			if slot.Side == session.Winner {
				outcome = entity.ScoreWin
			}
		}

		that.recorder.Record(slot.Name, outcome)

		if !that.applyLocalScore(slot.ParticipantID, outcome) {
			// the join lookup may still be queued ahead of the increment, read again after it
			that.lookupScore(slot.Name)
		}
	}

	that.recorder.Archive(entity.NewMatchRecord(that.opts.NewID(), session, that.opts.Now()))
}

// applyLocalScore keeps the lobby view current while the write is still queued.
// It reports false when no score is cached yet.
func (that *SessionManager) applyLocalScore(participantID string, outcome entity.ScoreOutcome) bool {
	participant, ok := that.directory.Get(participantID)
	if !ok || participant.Score == nil {
		return false
	}

	score := *participant.Score
	score.Apply(outcome)
	that.directory.ApplyScore(&score)

	return true
}

func (that *SessionManager) publish(session *entity.Session) {
	that.notifier.Publish(session.ID, func(connectionID string) *entity.Notification {
		return entity.NewUpdateGame(session, connectionID)
	})
}

func (that *SessionManager) requestRematch(ev RequestRematch) error {
	log := that.logger.With("method", "requestRematch", "connectionID", ev.ConnectionID, "sessionID", ev.GameID)

	session, ok := that.sessions.Get(ev.GameID)
	if !ok {
		return apperror.ErrSessionNotFound
	}

	if _, ok = session.SlotOf(ev.ConnectionID); !ok {
		return apperror.ErrNotInSession
	}

	if !session.IsTerminal() {
		return apperror.ErrSessionNotFinished
	}

	if session.IsAbandoned() {
		return apperror.ErrSessionFinished
	}

	if !session.Consent(ev.ConnectionID) {
		log.Info("rematch consent recorded", "consents", session.Consents())
		return nil
	}

	that.stopTimer(session.ID)
	session.Reset()
	that.publish(session)

	log.Info("rematch started", "round", session.Round)

	return nil
}

func (that *SessionManager) exitSession(ev ExitSession) error {
	log := that.logger.With("method", "exitSession", "connectionID", ev.ConnectionID, "sessionID", ev.GameID)

	session, ok := that.sessions.Get(ev.GameID)
	if !ok {
		return apperror.ErrSessionNotFound
	}

	if _, ok = session.SlotOf(ev.ConnectionID); !ok {
		return apperror.ErrNotInSession
	}

	that.abandon(session, ev.ConnectionID)
	that.notifier.Send(ev.ConnectionID, entity.NewReturnedToLobby())
	that.broadcastLobby()

	log.Info("participant exited the session")

	return nil
}

// abandon removes the session on behalf of the leaving participant.
// A live round becomes abandoned for the remaining human, who returns to the lobby.
func (that *SessionManager) abandon(session *entity.Session, leaverID string) {
	opponent, _ := session.OpponentOf(leaverID)
	live := !session.IsTerminal()

	if live {
		session.Abandon()
		that.metrics.RecordSessionResult(string(entity.ResultAbandoned))
		that.recorder.Archive(entity.NewMatchRecord(that.opts.NewID(), session, that.opts.Now()))
	}

	that.release(leaverID)

	if !opponent.Automated {
		if live {
			that.notifier.Send(opponent.ParticipantID, entity.NewUpdateGame(session, opponent.ParticipantID))
		} else {
			that.notifier.Send(opponent.ParticipantID, entity.NewReturnedToLobby())
		}

		that.release(opponent.ParticipantID)
	}

	that.stopTimer(session.ID)
	that.sessions.Remove(session.ID)
}

func (that *SessionManager) scheduleTeardown(session *entity.Session) {
	that.stopTimer(session.ID)

	due := teardownDue{SessionID: session.ID, Round: session.Round}
	that.timers[session.ID] = time.AfterFunc(that.opts.TeardownDelay, func() {
		that.post(due)
	})
}

// teardown is a no-op when the session is gone or a rematch started meanwhile.
func (that *SessionManager) teardown(ev teardownDue) {
	log := that.logger.With("method", "teardown", "sessionID", ev.SessionID)

	session, ok := that.sessions.Get(ev.SessionID)
	if !ok || session.Round != ev.Round || !session.IsTerminal() {
		log.Debug("teardown skipped")
		return
	}

	delete(that.timers, ev.SessionID)

	for _, slot := range session.Humans() {
		that.release(slot.ParticipantID)
		that.notifier.Send(slot.ParticipantID, entity.NewReturnedToLobby())
	}

	that.sessions.Remove(session.ID)
	that.broadcastLobby()

	log.Info("session removed")
}

func (that *SessionManager) release(participantID string) {
	that.notifier.Unbind(participantID)

	if _, ok := that.directory.Get(participantID); !ok {
		return
	}

	if err := that.directory.SetStatus(participantID, entity.StatusAvailable); err != nil {
		that.logger.Warn("failed to release participant", "connectionID", participantID, "error", err)
	}
}

func (that *SessionManager) stopTimer(sessionID string) {
	if timer, ok := that.timers[sessionID]; ok {
		timer.Stop()
		delete(that.timers, sessionID)
	}
}

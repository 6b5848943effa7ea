package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
)

func (that *Server) handleJoinLobby(connectionID string, payload json.RawMessage) (usecase.Event, error) {
	var req joinLobbyPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	return usecase.JoinLobby{ConnectionID: connectionID, DisplayName: req.DisplayName}, nil
}

func (that *Server) handleChallengePlayer(connectionID string, payload json.RawMessage) (usecase.Event, error) {
	var req challengePayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if req.TargetID == "" {
		return nil, fmt.Errorf("%w: targetId is required", ErrInvalidPayload)
	}

	return usecase.ChallengePlayer{ConnectionID: connectionID, TargetID: req.TargetID}, nil
}

func (that *Server) handleAcceptChallenge(connectionID string, payload json.RawMessage) (usecase.Event, error) {
	return respond(connectionID, payload, true)
}

func (that *Server) handleDeclineChallenge(connectionID string, payload json.RawMessage) (usecase.Event, error) {
	return respond(connectionID, payload, false)
}

func respond(connectionID string, payload json.RawMessage, accepted bool) (usecase.Event, error) {
	var req respondPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if req.ChallengerID == "" {
		return nil, fmt.Errorf("%w: challengerId is required", ErrInvalidPayload)
	}

	return usecase.RespondChallenge{ConnectionID: connectionID, ChallengerID: req.ChallengerID, Accepted: accepted}, nil
}

func (that *Server) handlePlaySolo(connectionID string, _ json.RawMessage) (usecase.Event, error) {
	return usecase.PlaySolo{ConnectionID: connectionID}, nil
}

func (that *Server) handleMakeMove(connectionID string, payload json.RawMessage) (usecase.Event, error) {
	var req movePayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if req.CellIndex == nil {
		return nil, fmt.Errorf("%w: cellIndex is required", ErrInvalidPayload)
	}

	return usecase.MakeMove{ConnectionID: connectionID, GameID: req.GameID, Cell: *req.CellIndex}, nil
}

func (that *Server) handleRequestRematch(connectionID string, payload json.RawMessage) (usecase.Event, error) {
	var req sessionPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	return usecase.RequestRematch{ConnectionID: connectionID, GameID: req.GameID}, nil
}

func (that *Server) handleExitSession(connectionID string, payload json.RawMessage) (usecase.Event, error) {
	var req sessionPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	return usecase.ExitSession{ConnectionID: connectionID, GameID: req.GameID}, nil
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
)

type lobbyReader interface {
	LobbySnapshot(ctx context.Context) ([]entity.Participant, error)
}

type scoreReader interface {
	Get(ctx context.Context, name string) (*entity.ScoreRecord, error)
}

type matchReader interface {
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
}

type handlers struct {
	logger  *slog.Logger
	lobby   lobbyReader
	scores  scoreReader
	matches matchReader
}

type lobbyResponse struct {
	Participants []entity.Participant `json:"participants"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) getLobby(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getLobby")

	participants, err := that.lobby.LobbySnapshot(r.Context())
	if err != nil {
		log.Error("failed to get lobby snapshot", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "lobby is unavailable"})

		return
	}

	if participants == nil {
		participants = []entity.Participant{}
	}

	writeJSON(w, http.StatusOK, lobbyResponse{Participants: participants})
}

func (that *handlers) getScore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	log := that.logger.With("method", "getScore", "name", name)

	record, err := that.scores.Get(r.Context(), name)
	if errors.Is(err, repository.ErrScoreNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get score", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get score"})

		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (that *handlers) getMatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log := that.logger.With("method", "getMatch", "matchID", id)

	match, err := that.matches.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrMatchNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get match", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get match"})

		return
	}

	writeJSON(w, http.StatusOK, match)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

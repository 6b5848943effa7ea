package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/lobby"
)

var ErrManagerStopped = errors.New("session manager is stopped")

const internalErrorMessage = "something went wrong, please try again"

type notifier interface {
	Send(connectionID string, notification *entity.Notification)
	Broadcast(notification *entity.Notification)
	Bind(connectionID, sessionID string)
	Unbind(connectionID string)
	Publish(sessionID string, build func(connectionID string) *entity.Notification)
}

type scoreRecorder interface {
	Lookup(name string, done func(record *entity.ScoreRecord))
	Record(name string, outcome entity.ScoreOutcome)
	Archive(match *entity.MatchRecord)
}

type botPlayer interface {
	ChooseCell(board entity.Board) (int, error)
}

type managerMetrics interface {
	SetLobbySize(n int)
	SetActiveSessions(n int)
	RecordSessionStarted(kind string)
	RecordSessionResult(result string)
	RecordRejected(reason string)
}

type Options struct {
	ChallengeTimeout time.Duration
	TeardownDelay    time.Duration
	InboxSize        int
	BotName          string

	// NewID and Now default to uuid.NewString and time.Now.
	NewID func() string
	Now   func() time.Time
}

// SessionManager owns the lobby directory, the session table and pending challenges.
// All of them are mutated only from the Run loop, one event at a time.
type SessionManager struct {
	logger *slog.Logger
	opts   Options

	directory *lobby.Directory
	sessions  *lobby.Sessions

	notifier  notifier
	recorder  scoreRecorder
	bot       botPlayer
	evaluator entity.OutcomeEvaluator
	metrics   managerMetrics

	challenges map[string]*entity.ChallengeIntent
	timers     map[string]*time.Timer

	inbox chan Event
	done  chan struct{}
}

func NewSessionManager(
	logger *slog.Logger,
	opts Options,
	directory *lobby.Directory,
	sessions *lobby.Sessions,
	notifier notifier,
	recorder scoreRecorder,
	bot botPlayer,
	evaluator entity.OutcomeEvaluator,
	metrics managerMetrics,
) *SessionManager {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &SessionManager{
		logger: logger,
		opts:   opts,

		directory: directory,
		sessions:  sessions,

		notifier:  notifier,
		recorder:  recorder,
		bot:       bot,
		evaluator: evaluator,
		metrics:   metrics,

		challenges: make(map[string]*entity.ChallengeIntent),
		timers:     make(map[string]*time.Timer),

		inbox: make(chan Event, opts.InboxSize),
		done:  make(chan struct{}),
	}
}

// Run processes events until ctx is canceled. It must be called once.
func (that *SessionManager) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("session manager started")

	defer close(that.done)

	for {
		select {
		case <-ctx.Done():
			for id, timer := range that.timers {
				timer.Stop()
				delete(that.timers, id)
			}

			log.Info("session manager stopped")

			return
		case event := <-that.inbox:
			that.dispatch(event)
		}
	}
}

// Submit queues an event for the loop.
func (that *SessionManager) Submit(ctx context.Context, event Event) error {
	select {
	case <-that.done:
		return ErrManagerStopped
	default:
	}

	select {
	case that.inbox <- event:
		return nil
	case <-that.done:
		return ErrManagerStopped
	case <-ctx.Done():
		return fmt.Errorf("failed to submit event: %w", ctx.Err())
	}
}

// LobbySnapshot returns the current lobby as seen by the loop.
func (that *SessionManager) LobbySnapshot(ctx context.Context) ([]entity.Participant, error) {
	var snapshot []entity.Participant

	if err := that.inspect(ctx, func() { snapshot = that.directory.Snapshot() }); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (that *SessionManager) inspect(ctx context.Context, fn func()) error {
	done := make(chan struct{})

	if err := that.Submit(ctx, inspection{fn: fn, done: done}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-that.done:
		return ErrManagerStopped
	case <-ctx.Done():
		return fmt.Errorf("failed to inspect state: %w", ctx.Err())
	}
}

// post is used by timers and background jobs, which must never block on a stopped loop.
func (that *SessionManager) post(event Event) {
	select {
	case that.inbox <- event:
	case <-that.done:
	}
}

func (that *SessionManager) dispatch(event Event) {
	log := that.logger.With("method", "dispatch", "event", fmt.Sprintf("%T", event))

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic in event handler", "panic", r)
			that.reject(event, fmt.Errorf("panic: %v", r))
		}
	}()

	var err error

	switch ev := event.(type) {
	case JoinLobby:
		err = that.joinLobby(ev)
	case ChallengePlayer:
		err = that.challengePlayer(ev)
	case RespondChallenge:
		err = that.respondChallenge(ev)
	case PlaySolo:
		err = that.playSolo(ev)
	case MakeMove:
		err = that.makeMove(ev)
	case RequestRematch:
		err = that.requestRematch(ev)
	case ExitSession:
		err = that.exitSession(ev)
	case Disconnect:
		that.disconnect(ev)
	case ExpireChallenges:
		that.expireChallenges()
	case teardownDue:
		that.teardown(ev)
	case scoreLoaded:
		if that.directory.ApplyScore(ev.Record) {
			that.broadcastLobby()
		}
	case inspection:
		defer close(ev.done)
		ev.fn()
	default:
		log.Warn("unknown event")
	}

	if err != nil {
		that.reject(event, err)
	}
}

// reject answers only the connection that sent the event.
func (that *SessionManager) reject(event Event, err error) {
	log := that.logger.With("method", "reject")

	client, ok := event.(clientEvent)
	if !ok {
		log.Error("internal event failed", "error", err)
		return
	}

	log = log.With("connectionID", client.origin(), "action", client.action())

	if reason, isProtocol := apperror.Reason(err); isProtocol {
		log.Debug("event rejected", "reason", reason, "error", err)
		that.metrics.RecordRejected(reason)
		that.notifier.Send(client.origin(), entity.NewError(client.action(), err.Error()))

		return
	}

	log.Error("failed to handle event", "error", err)
	that.metrics.RecordRejected("internal")
	that.notifier.Send(client.origin(), entity.NewError(client.action(), internalErrorMessage))
}

func (that *SessionManager) broadcastLobby() {
	that.notifier.Broadcast(entity.NewLobbyUpdate(that.directory.Snapshot()))

	that.metrics.SetLobbySize(that.directory.Len())
	that.metrics.SetActiveSessions(that.sessions.Len())
}

package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/lobby"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/metrics"
)

type fakeNotifier struct {
	mu         sync.Mutex
	messages   map[string][]*entity.Notification
	broadcasts []*entity.Notification
	bindings   map[string]string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		messages: make(map[string][]*entity.Notification),
		bindings: make(map[string]string),
	}
}

func (that *fakeNotifier) Send(connectionID string, notification *entity.Notification) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages[connectionID] = append(that.messages[connectionID], notification)
}

func (that *fakeNotifier) Broadcast(notification *entity.Notification) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.broadcasts = append(that.broadcasts, notification)
}

func (that *fakeNotifier) Bind(connectionID, sessionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.bindings[connectionID] = sessionID
}

func (that *fakeNotifier) Unbind(connectionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.bindings, connectionID)
}

func (that *fakeNotifier) Publish(sessionID string, build func(connectionID string) *entity.Notification) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for connectionID, bound := range that.bindings {
		if bound == sessionID {
			that.messages[connectionID] = append(that.messages[connectionID], build(connectionID))
		}
	}
}

// take returns and forgets everything sent to the connection.
func (that *fakeNotifier) take(connectionID string) []*entity.Notification {
	that.mu.Lock()
	defer that.mu.Unlock()

	messages := that.messages[connectionID]
	delete(that.messages, connectionID)

	return messages
}

func (that *fakeNotifier) lastBroadcast() *entity.Notification {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.broadcasts) == 0 {
		return nil
	}

	return that.broadcasts[len(that.broadcasts)-1]
}

func (that *fakeNotifier) boundTo(connectionID string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	sessionID, ok := that.bindings[connectionID]

	return sessionID, ok
}

type recordedScore struct {
	name    string
	outcome entity.ScoreOutcome
}

type fakeRecorder struct {
	mu      sync.Mutex
	scores  []recordedScore
	matches []*entity.MatchRecord
	lookups map[string]func(record *entity.ScoreRecord)
	queried map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		lookups: make(map[string]func(record *entity.ScoreRecord)),
		queried: make(map[string]int),
	}
}

func (that *fakeRecorder) Lookup(name string, done func(record *entity.ScoreRecord)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.lookups[name] = done
	that.queried[name]++
}

func (that *fakeRecorder) lookupCount(name string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.queried[name]
}

func (that *fakeRecorder) Record(name string, outcome entity.ScoreOutcome) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores = append(that.scores, recordedScore{name: name, outcome: outcome})
}

func (that *fakeRecorder) Archive(match *entity.MatchRecord) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.matches = append(that.matches, match)
}

func (that *fakeRecorder) recorded() []recordedScore {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]recordedScore(nil), that.scores...)
}

func (that *fakeRecorder) archived() []*entity.MatchRecord {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]*entity.MatchRecord(nil), that.matches...)
}

func (that *fakeRecorder) complete(record *entity.ScoreRecord) {
	that.mu.Lock()
	done := that.lookups[record.Name]
	that.mu.Unlock()

	done(record)
}

// firstCellBot always claims the lowest empty cell.
type firstCellBot struct{}

func (firstCellBot) ChooseCell(board entity.Board) (int, error) {
	return board.EmptyCells()[0], nil
}

type panickingBot struct{}

func (panickingBot) ChooseCell(entity.Board) (int, error) {
	panic("bot exploded")
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (that *testClock) Now() time.Time {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.now
}

func (that *testClock) Advance(d time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.now = that.now.Add(d)
}

type testManager struct {
	*SessionManager
	notifier *fakeNotifier
	recorder *fakeRecorder
	clock    *testClock
	t        *testing.T
}

func defaultTestOptions() Options {
	return Options{
		ChallengeTimeout: 30 * time.Second,
		TeardownDelay:    100 * time.Millisecond,
		InboxSize:        64,
		BotName:          "Computer",
	}
}

func newTestManager(t *testing.T, opts Options, bot botPlayer) *testManager {
	t.Helper()

	var counter int
	opts.NewID = func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}

	clock := &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now

	if bot == nil {
		bot = firstCellBot{}
	}

	notifier := newFakeNotifier()
	recorder := newFakeRecorder()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	manager := NewSessionManager(
		logger,
		opts,
		lobby.NewDirectory(),
		lobby.NewSessions(),
		notifier,
		recorder,
		bot,
		entity.NewLineEvaluator(),
		metrics.NewCollector(prometheus.NewRegistry()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Run(ctx)

	t.Cleanup(func() {
		cancel()
		<-manager.done
	})

	return &testManager{
		SessionManager: manager,
		notifier:       notifier,
		recorder:       recorder,
		clock:          clock,
		t:              t,
	}
}

// submit queues the events and waits until the loop processed them.
func (that *testManager) submit(events ...Event) {
	that.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, event := range events {
		require.NoError(that.t, that.Submit(ctx, event))
	}

	require.NoError(that.t, that.inspect(ctx, func() {}))
}

func (that *testManager) participant(id string) entity.Participant {
	that.t.Helper()

	snapshot, err := that.LobbySnapshot(context.Background())
	require.NoError(that.t, err)

	for _, participant := range snapshot {
		if participant.ID == id {
			return participant
		}
	}

	that.t.Fatalf("participant %s not in lobby", id)

	return entity.Participant{}
}

func (that *testManager) sessionCount() int {
	that.t.Helper()

	var count int
	require.NoError(that.t, that.inspect(context.Background(), func() { count = that.sessions.Len() }))

	return count
}

// startDuel joins a and b, lets a challenge b and b accept. The notifier is drained.
func (that *testManager) startDuel() string {
	that.t.Helper()

	that.submit(
		JoinLobby{ConnectionID: "a", DisplayName: "A"},
		JoinLobby{ConnectionID: "b", DisplayName: "B"},
		ChallengePlayer{ConnectionID: "a", TargetID: "b"},
		RespondChallenge{ConnectionID: "b", ChallengerID: "a", Accepted: true},
	)

	sessionID, ok := that.notifier.boundTo("a")
	require.True(that.t, ok)

	that.notifier.take("a")
	that.notifier.take("b")

	return sessionID
}

type move struct {
	connectionID string
	cell         int
}

func (that *testManager) play(sessionID string, moves ...move) {
	that.t.Helper()

	for _, next := range moves {
		that.submit(MakeMove{ConnectionID: next.connectionID, GameID: sessionID, Cell: next.cell})
	}
}

func actions(notifications []*entity.Notification) []string {
	result := make([]string, 0, len(notifications))
	for _, notification := range notifications {
		result = append(result, notification.Action)
	}

	return result
}

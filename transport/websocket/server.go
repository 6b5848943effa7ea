package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
)

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrUnknownAction    = errors.New("unknown action")
	ErrRateLimited      = errors.New("too many messages, slow down")
)

type submitter interface {
	Submit(ctx context.Context, event usecase.Event) error
}

type gatewayMetrics interface {
	RecordRateLimited()
}

type handlerFunc func(connectionID string, payload json.RawMessage) (usecase.Event, error)

type Options struct {
	MessagesPerSecond float64
	Burst             int
	SendBuffer        int
	WriteTimeout      time.Duration
	OriginPatterns    []string
}

// Server is the connection gateway. It turns socket traffic into session manager events
// and delivers notifications to the connections they are addressed to.
type Server struct {
	logger  *slog.Logger
	opts    Options
	metrics gatewayMetrics

	mu          sync.RWMutex
	connections map[string]*connection
	bindings    map[string]string

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, opts Options, metrics gatewayMetrics) *Server {
	server := &Server{
		logger:  logger,
		opts:    opts,
		metrics: metrics,

		connections: make(map[string]*connection),
		bindings:    make(map[string]string),

		handlers: make(map[string]handlerFunc),
	}

	server.handlers["joinLobby"] = server.handleJoinLobby
	server.handlers["challengePlayer"] = server.handleChallengePlayer
	server.handlers["acceptChallenge"] = server.handleAcceptChallenge
	server.handlers["declineChallenge"] = server.handleDeclineChallenge
	server.handlers["playSolo"] = server.handlePlaySolo
	server.handlers["makeMove"] = server.handleMakeMove
	server.handlers["requestRematch"] = server.handleRequestRematch
	server.handlers["exitSession"] = server.handleExitSession

	return server
}

// Start serves the gateway at /ws on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string, sub submitter) error {
	router := chi.NewRouter()
	router.Get("/ws", that.Handler(sub).ServeHTTP)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.opts.WriteTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler accepts websocket connections and feeds their messages to sub.
func (that *Server) Handler(sub submitter) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		that.serve(writer, req, sub)
	})
}

func (that *Server) serve(writer http.ResponseWriter, req *http.Request, sub submitter) {
	log := that.logger.With("method", "serve")

	conn, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: that.opts.OriginPatterns,
	})
	if err != nil {
		log.Error("failed to accept websocket connection", "error", err)
		return
	}

	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	client := newConnection(uuid.NewString(), conn, that.opts, cancel)
	log = log.With("connectionID", client.id)

	that.register(client)
	log.Info("websocket connection established")

	go that.writeLoop(ctx, client)

	err = that.readLoop(ctx, client, sub)

	// unregister first so nothing is queued for a connection that is going away
	that.unregister(client.id)

	disconnectCtx, cancelDisconnect := context.WithTimeout(context.WithoutCancel(req.Context()), that.opts.WriteTimeout)
	defer cancelDisconnect()

	if submitErr := sub.Submit(disconnectCtx, usecase.Disconnect{ConnectionID: client.id}); submitErr != nil {
		log.Error("failed to submit disconnect", "error", submitErr)
	}

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("websocket connection closed")
	default:
		log.Warn("websocket connection dropped", "error", err)
	}

	_ = conn.Close(websocket.StatusNormalClosure, "bye")
}

func (that *Server) readLoop(ctx context.Context, client *connection, sub submitter) error {
	for {
		_, data, err := client.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if !client.limiter.Allow() {
			that.metrics.RecordRateLimited()
			that.Send(client.id, entity.NewError("", ErrRateLimited.Error()))

			continue
		}

		if err = that.dispatch(ctx, client.id, data, sub); err != nil {
			return err
		}
	}
}

// dispatch answers malformed input directly. Only a failed submit ends the connection.
func (that *Server) dispatch(ctx context.Context, connectionID string, data []byte, sub submitter) error {
	log := that.logger.With("method", "dispatch", "connectionID", connectionID)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		that.Send(connectionID, entity.NewError("", ErrMalformedMessage.Error()))

		return nil
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action", "action", message.Action)
		that.Send(connectionID, entity.NewError(message.Action, ErrUnknownAction.Error()))

		return nil
	}

	event, err := handler(connectionID, message.Payload)
	if err != nil {
		log.Debug("invalid payload", "action", message.Action, "error", err)
		that.Send(connectionID, entity.NewError(message.Action, err.Error()))

		return nil
	}

	if err = sub.Submit(ctx, event); err != nil {
		return fmt.Errorf("failed to submit %s: %w", message.Action, err)
	}

	return nil
}

func (that *Server) writeLoop(ctx context.Context, client *connection) {
	log := that.logger.With("method", "writeLoop", "connectionID", client.id)

	for {
		select {
		case <-ctx.Done():
			return
		case data := <-client.outbox:
			writeCtx, cancel := context.WithTimeout(ctx, that.opts.WriteTimeout)
			err := client.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()

			if err != nil {
				log.Warn("failed to write message", "error", err)
				client.cancel()

				return
			}
		}
	}
}

func (that *Server) register(client *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[client.id] = client
}

func (that *Server) unregister(connectionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.connections, connectionID)
	delete(that.bindings, connectionID)
}

// Send delivers a notification to one connection. Unknown connections are ignored.
func (that *Server) Send(connectionID string, notification *entity.Notification) {
	data, ok := that.encode(notification)
	if !ok {
		return
	}

	that.mu.RLock()
	client, found := that.connections[connectionID]
	that.mu.RUnlock()

	if found {
		that.deliver(client, data)
	}
}

func (that *Server) Broadcast(notification *entity.Notification) {
	data, ok := that.encode(notification)
	if !ok {
		return
	}

	that.mu.RLock()
	clients := make([]*connection, 0, len(that.connections))
	for _, client := range that.connections {
		clients = append(clients, client)
	}
	that.mu.RUnlock()

	for _, client := range clients {
		that.deliver(client, data)
	}
}

func (that *Server) Bind(connectionID, sessionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.connections[connectionID]; ok {
		that.bindings[connectionID] = sessionID
	}
}

func (that *Server) Unbind(connectionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.bindings, connectionID)
}

// Publish sends build(connectionID) to every connection bound to the session and nobody else.
func (that *Server) Publish(sessionID string, build func(connectionID string) *entity.Notification) {
	that.mu.RLock()
	clients := make([]*connection, 0, 2)
	for connectionID, bound := range that.bindings {
		if bound != sessionID {
			continue
		}

		if client, ok := that.connections[connectionID]; ok {
			clients = append(clients, client)
		}
	}
	that.mu.RUnlock()

	for _, client := range clients {
		if data, ok := that.encode(build(client.id)); ok {
			that.deliver(client, data)
		}
	}
}

func (that *Server) deliver(client *connection, data []byte) {
	if !client.enqueue(data) {
		that.logger.Warn("outbox is full, dropping slow connection", "method", "deliver", "connectionID", client.id)
	}
}

func (that *Server) encode(notification *entity.Notification) ([]byte, bool) {
	data, err := json.Marshal(notification)
	if err != nil {
		that.logger.Error("failed to marshal notification", "method", "encode", "action", notification.Action, "error", err)
		return nil, false
	}

	return data, true
}

func (that *Server) connectionCount() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.connections)
}

package websocket

import (
	"context"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"
)

type connection struct {
	id      string
	conn    *websocket.Conn
	outbox  chan []byte
	limiter *rate.Limiter
	cancel  context.CancelFunc
}

func newConnection(id string, conn *websocket.Conn, opts Options, cancel context.CancelFunc) *connection {
	return &connection{
		id:      id,
		conn:    conn,
		outbox:  make(chan []byte, opts.SendBuffer),
		limiter: rate.NewLimiter(rate.Limit(opts.MessagesPerSecond), opts.Burst),
		cancel:  cancel,
	}
}

// enqueue never blocks. A connection that can't keep up is canceled.
func (that *connection) enqueue(data []byte) bool {
	select {
	case that.outbox <- data:
		return true
	default:
		that.cancel()
		return false
	}
}

package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"tamirciBul/internal/models"
)

// Logger is a minimal logger interface required by the stream.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// TokenSource supplies the bearer token for the websocket handshake.
type TokenSource interface {
	Token(ctx context.Context) string
}

const (
	pongWait      = 60 * time.Second
	pingPeriod    = 25 * time.Second
	maxBackoff    = 30 * time.Second
	maxMessageLen = 4 << 10
)

// Stream consumes the directory's websocket notification feed and republishes
// every inbound event on the bus. It reconnects with doubling backoff until
// the context is cancelled.
type Stream struct {
	url    string
	tokens TokenSource
	bus    *Bus
	logger Logger
	dialer *websocket.Dialer
}

// NewStream constructs a stream for the given ws:// or wss:// URL.
func NewStream(url string, tokens TokenSource, bus *Bus, logger Logger) *Stream {
	return &Stream{
		url:    url,
		tokens: tokens,
		bus:    bus,
		logger: logger,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// Run blocks until ctx is cancelled.
func (s *Stream) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if err := s.connectAndRead(ctx); err != nil {
			s.logger.Errorf("notify: stream closed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (s *Stream) connectAndRead(ctx context.Context) error {
	header := http.Header{}
	if s.tokens != nil {
		if token := s.tokens.Token(ctx); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	s.logger.Infof("notify: connected to %s", s.url)

	conn.SetReadLimit(maxMessageLen)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(ctx, conn, done)

	for {
		var n models.Notification
		if err := conn.ReadJSON(&n); err != nil {
			return err
		}
		if n.Kind == "" {
			n.Kind = models.NotifyInfo
		}
		s.bus.Publish(n)
	}
}

func (s *Stream) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			conn.Close()
			return
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				conn.Close()
				return
			}
		}
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/formguard/internal/logging"
	"github.com/muurk/formguard/internal/registry"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remoteAddr := conn.RemoteAddr().String()
	s.mu.Lock()
	s.sessions[remoteAddr] = conn
	s.mu.Unlock()
	s.wg.Add(1)
	s.metrics.Sessions.Inc()

	defer func() {
		_ = conn.Close()
		s.mu.Lock()
		delete(s.sessions, remoteAddr)
		s.mu.Unlock()
		s.metrics.Sessions.Dec()
		s.wg.Done()
		logging.Info("Session closed", zap.String("remote_addr", remoteAddr))
	}()

	logging.Info("Session opened", zap.String("remote_addr", remoteAddr))

	// The request context is cancelled once the handler returns, which is
	// after the read loop ends.
	if err := s.serveSession(r.Context(), conn, remoteAddr); err != nil {
		logging.Info("Session ended with error",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
	}
}

// serveSession runs the read loop. Replies are written from this goroutine
// only; the pinger uses WriteControl.
func (s *Server) serveSession(ctx context.Context, conn *websocket.Conn, remoteAddr string) error {
	session := NewSession(
		registry.WithScroll(s.config.Scroll),
		registry.WithMetrics(s.metrics.Registry),
	)
	defer session.Close()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go pinger(ctx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return err
		}

		var msg ClientMessage
		var replies []ServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			replies = []ServerMessage{{Type: TypeError, Error: "invalid JSON: " + err.Error()}}
			s.metrics.Errors.Inc()
		} else {
			logging.LogSessionMessage(remoteAddr, "in", msg.Type, len(data))
			s.metrics.Messages.WithLabelValues(msg.Type).Inc()

			replies, err = session.Handle(ctx, msg)
			if err != nil {
				s.metrics.Errors.Inc()
				var me *MessageError
				if !errors.As(err, &me) {
					return err
				}
				logging.Debug("Message rejected",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
		}

		for _, reply := range replies {
			n, err := writeJSON(conn, reply)
			if err != nil {
				return err
			}
			logging.LogSessionMessage(remoteAddr, "out", reply.Type, n)
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return 0, err
	}
	return len(data), conn.WriteMessage(websocket.TextMessage, data)
}

func pinger(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

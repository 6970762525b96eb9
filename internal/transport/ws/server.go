package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tilecraft.ai/internal/protocol"
	"tilecraft.ai/internal/sim/world"
)

// Server bridges one renderer/UI websocket session to the world loop. The
// world is single-player; a new connection replaces the previous one, and a
// resume token lets the same client keep its session id across reconnects.
type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader

	mu          sync.Mutex
	sessionID   string
	resumeToken string
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		out := make(chan []byte, 8)
		if !s.handshake(conn, out) {
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine: OBS frames from the world loop.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop: ACT intents into the world inbox.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeAct {
				continue
			}
			var act protocol.ActMsg
			if err := json.Unmarshal(msg, &act); err != nil {
				continue
			}
			if act.ProtocolVersion != protocol.Version {
				continue
			}
			s.world.SubmitAct(act)
		}
	}
}

// handshake expects HELLO and answers WELCOME plus one CATALOG message per
// catalog. A valid resume token keeps the previous session id; anything else
// starts a fresh session.
func (s *Server) handshake(conn *websocket.Conn, out chan []byte) bool {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"),
			time.Now().Add(time.Second))
		return false
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"),
			time.Now().Add(time.Second))
		return false
	}

	sessionID, resumeToken := s.session(hello.ResumeToken)
	resp := s.world.Attach(out)

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		ResumeToken:     resumeToken,
		WorldParams:     resp.Params,
		Catalogs:        resp.Digests,
	}
	if err := writeJSON(conn, welcome); err != nil {
		return false
	}
	for _, c := range resp.Catalogs {
		if err := writeJSON(conn, c); err != nil {
			return false
		}
	}

	if s.log != nil {
		s.log.Printf("session %s attached (client=%q)", sessionID, hello.ClientName)
	}
	return true
}

func (s *Server) session(token string) (sessionID, resumeToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || token != s.resumeToken || s.sessionID == "" {
		s.sessionID = uuid.NewString()
		s.resumeToken = uuid.NewString()
	}
	return s.sessionID, s.resumeToken
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}

package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/openclass/class-service/internal/domain"
	"github.com/openclass/class-service/internal/service"
)

// SessionCoordinator is the slice of the coordinator the transport needs.
type SessionCoordinator interface {
	Join(connectionID, roomID string, user service.UserData) error
	SendMessage(connectionID, text string) (domain.Message, error)
	ApproveStudent(connectionID, studentConnectionID string) error
	Disconnect(connectionID string) error
}

type Server struct {
	upgrader    websocket.Upgrader
	hub         *Hub
	coordinator SessionCoordinator

	pingEvery time.Duration
}

func NewServer(hub *Hub, coordinator SessionCoordinator) *Server {
	return &Server{
		hub:         hub,
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	// Server-assigned identity; the client never states it again.
	c := newWsConn(conn, uuid.NewString())
	s.hub.Add(c)
	slog.Debug("ws connected", "conn", c.ID())

	go s.writeLoop(c)
	s.readLoop(c)

	s.hub.Remove(c.ID())
	// A connection that never joined has no registration; that is fine.
	if err := s.coordinator.Disconnect(c.ID()); err != nil {
		slog.Debug("disconnect", "conn", c.ID(), "err", err)
	}
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", c.ID(), "err", err)
	}
}

func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("ws bad frame", "conn", c.ID(), "err", err)
			continue
		}
		s.dispatch(c, msg)
	}
}

// dispatch routes one inbound frame. Malformed or unauthorized events are
// dropped without a reply; the session never sees an error frame.
func (s *Server) dispatch(c *wsConn, msg Message) {
	switch msg.Type {
	case TypeJoinClass:
		var p JoinPayload
		if decode(msg.Payload, &p) != nil {
			return
		}
		if err := ValidateJoin(p); err != nil {
			slog.Debug("ws join rejected", "conn", c.ID(), "err", err)
			return
		}
		userID, name, role := p.UserData.Domain()
		if err := s.coordinator.Join(c.ID(), p.RoomID, service.UserData{
			UserID: userID,
			Name:   name,
			Role:   role,
		}); err != nil {
			slog.Debug("ws join dropped", "conn", c.ID(), "err", err)
		}

	case TypeSendMessage:
		var p SendMessagePayload
		if decode(msg.Payload, &p) != nil {
			return
		}
		if _, err := s.coordinator.SendMessage(c.ID(), p.Text); err != nil {
			slog.Debug("ws message dropped", "conn", c.ID(), "err", err)
		}

	case TypeApproveStudent:
		var p ApproveStudentPayload
		if decode(msg.Payload, &p) != nil {
			return
		}
		if err := ValidateApprove(p); err != nil {
			slog.Debug("ws approve rejected", "conn", c.ID(), "err", err)
			return
		}
		if err := s.coordinator.ApproveStudent(c.ID(), p.StudentConnectionID); err != nil {
			slog.Debug("ws approve dropped", "conn", c.ID(), "err", err)
		}

	default:
		// ignore
	}
}

func (s *Server) writeLoop(c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		}
	}
}

// --- helpers ---

func decode(payload any, dst any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn   *websocket.Conn
	id     string
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn, id string) *wsConn {
	return &wsConn{
		conn:   c,
		id:     id,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(ev service.Event) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(Message{Type: ev.Type, Payload: ev.Payload})
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) ID() string { return c.id }

package service

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/openclass/class-service/internal/domain"
	"github.com/openclass/class-service/internal/registry"
)

// UserData is the caller-supplied identity of a joining participant.
// It is taken at face value; nothing verifies it against an identity
// system.
type UserData struct {
	UserID string
	Name   string
	Role   domain.Role
}

type connEntry struct {
	roomID      string
	participant *domain.Participant
}

// Coordinator owns the session state: the room registry and the
// connection -> participant index. Every handler runs under one mutex,
// so handlers are atomic with respect to each other and all fan-out for
// a room is observed in a single order by every recipient.
type Coordinator struct {
	mu      sync.Mutex
	rooms   *registry.Registry
	index   map[string]connEntry
	emitter Emitter
	now     func() time.Time
}

func NewCoordinator(rooms *registry.Registry, emitter Emitter) *Coordinator {
	return &Coordinator{
		rooms:   rooms,
		index:   make(map[string]connEntry),
		emitter: emitter,
		now:     time.Now,
	}
}

// Join registers a connection in a room and replays the room's history to
// it. Joining again on an already-joined connection is an overwrite: the
// previous registration is detached silently and the join runs fresh.
func (c *Coordinator) Join(connectionID, roomID string, user UserData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.index[connectionID]; ok {
		c.detach(prev)
		delete(c.index, connectionID)
		slog.Debug("re-join overwrites existing registration",
			"conn", connectionID, "prevRoom", prev.roomID, "room", roomID)
	}

	room := c.rooms.GetOrCreate(roomID)
	p := &domain.Participant{
		ConnectionID: connectionID,
		UserID:       user.UserID,
		Name:         user.Name,
		Role:         user.Role,
		JoinTime:     c.now(),
	}
	c.index[connectionID] = connEntry{roomID: roomID, participant: p}

	others := room.ConnectionIDs()

	if p.Role == domain.RoleTeacher {
		room.SetTeacher(p)
	} else {
		room.AddStudent(p)
		// The teacher learns of the pending approval now or never:
		// nothing is queued for a teacher who joins later.
		if room.Teacher != nil {
			c.emitter.Unicast(room.Teacher.ConnectionID, Event{Type: EventNewStudentWaiting, Payload: *p})
		}
	}
	room.AppendAttendance(*p, domain.AttendanceJoin, p.JoinTime)

	ledger := slices.Clone(room.Attendance)
	c.emitter.Unicast(connectionID, Event{Type: EventMessageHistory, Payload: slices.Clone(room.Messages)})
	c.emitter.Unicast(connectionID, Event{Type: EventAttendanceUpdate, Payload: ledger})
	c.emitter.Multicast(others, Event{Type: EventUserJoined, Payload: *p})
	c.emitter.Multicast(others, Event{Type: EventAttendanceUpdate, Payload: ledger})

	slog.Info("participant joined", "room", roomID, "conn", connectionID,
		"user", user.UserID, "role", user.Role)
	return nil
}

// SendMessage appends a chat message and fans it out to the whole room,
// sender included. Text passes through verbatim: empty or oversized
// content is accepted, and students and teacher have equal send rights.
func (c *Coordinator) SendMessage(connectionID, text string) (domain.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index[connectionID]
	if !ok {
		return domain.Message{}, fmt.Errorf("send-message from %s: %w", connectionID, domain.ErrUnknownConnection)
	}
	room := c.rooms.GetOrCreate(entry.roomID)

	msg := room.AppendMessage(*entry.participant, text, c.now())
	c.emitter.Multicast(room.ConnectionIDs(), Event{Type: EventNewMessage, Payload: msg})
	return msg, nil
}

// ApproveStudent marks a student approved and announces it. The flag is
// informational: no other handler gates on it. Approving twice re-sends
// the announcements but changes no state.
func (c *Coordinator) ApproveStudent(connectionID, studentConnectionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index[connectionID]
	if !ok {
		return fmt.Errorf("approve-student from %s: %w", connectionID, domain.ErrUnknownConnection)
	}
	if entry.participant.Role != domain.RoleTeacher {
		return fmt.Errorf("approve-student from %s: %w", connectionID, domain.ErrNotTeacher)
	}
	room := c.rooms.GetOrCreate(entry.roomID)

	student, ok := room.Student(studentConnectionID)
	if !ok {
		// Approving a student who already left is a no-op.
		return fmt.Errorf("approve-student %s: %w", studentConnectionID, domain.ErrUnknownStudent)
	}
	student.Approved = true

	c.emitter.Unicast(student.ConnectionID, Event{Type: EventStudentApproved})
	c.emitter.Multicast(room.ConnectionIDs(), Event{Type: EventUserApproved, Payload: *student})

	slog.Info("student approved", "room", room.ID, "student", student.UserID)
	return nil
}

// Disconnect retires a connection: ledger entry, room removal, user-left
// fan-out. Disconnecting a connection that never joined does nothing
// observable.
func (c *Coordinator) Disconnect(connectionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index[connectionID]
	if !ok {
		return fmt.Errorf("disconnect %s: %w", connectionID, domain.ErrUnknownConnection)
	}
	room := c.rooms.GetOrCreate(entry.roomID)
	p := *entry.participant

	room.AppendAttendance(p, domain.AttendanceLeave, c.now())
	c.detach(entry)
	delete(c.index, connectionID)

	rest := room.ConnectionIDs()
	c.emitter.Multicast(rest, Event{Type: EventUserLeft, Payload: p})
	c.emitter.Multicast(rest, Event{Type: EventAttendanceUpdate, Payload: slices.Clone(room.Attendance)})

	slog.Info("participant left", "room", room.ID, "conn", connectionID, "user", p.UserID)
	return nil
}

// Participant returns a snapshot of the joined participant behind a
// connection, if any.
func (c *Coordinator) Participant(connectionID string) (domain.Participant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index[connectionID]
	if !ok {
		return domain.Participant{}, false
	}
	return *entry.participant, true
}

// RoomStats is a read-only view of a room for the HTTP surface.
type RoomStats struct {
	ID             string `json:"id"`
	TeacherPresent bool   `json:"teacherPresent"`
	Students       int    `json:"students"`
	Approved       int    `json:"approved"`
	Messages       int    `json:"messages"`
	Attendance     int    `json:"attendance"`
}

func (c *Coordinator) Stats(roomID string) (RoomStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms.Get(roomID)
	if !ok {
		return RoomStats{}, false
	}
	students := room.Students()
	return RoomStats{
		ID:             room.ID,
		TeacherPresent: room.Teacher != nil,
		Students:       len(students),
		Approved:       len(lo.Filter(students, func(p domain.Participant, _ int) bool { return p.Approved })),
		Messages:       len(room.Messages),
		Attendance:     len(room.Attendance),
	}, true
}

// detach removes the participant from its room without touching the
// ledger or emitting anything. Used by the re-join overwrite path and
// disconnect.
func (c *Coordinator) detach(entry connEntry) {
	room := c.rooms.GetOrCreate(entry.roomID)
	if entry.participant.Role == domain.RoleTeacher {
		if room.Teacher != nil && room.Teacher.ConnectionID == entry.participant.ConnectionID {
			room.ClearTeacher()
		}
		return
	}
	room.RemoveStudent(entry.participant.ConnectionID)
}

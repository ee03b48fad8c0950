package domain

import (
	"time"

	"github.com/samber/lo"
)

// Room is one isolated classroom session. It is a plain mutable value:
// callers are expected to serialize access (the coordinator runs every
// handler under its own lock).
type Room struct {
	ID         string
	Teacher    *Participant
	Messages   []Message
	Attendance []AttendanceEvent

	students      map[string]*Participant // keyed by connection id
	order         []string                // join order of students
	nextMessageID int64
}

func NewRoom(id string) *Room {
	return &Room{
		ID:       id,
		students: make(map[string]*Participant),
	}
}

// SetTeacher installs p as the room's teacher, replacing any prior one.
// Last writer wins; there is no conflict error.
func (r *Room) SetTeacher(p *Participant) (replaced bool) {
	replaced = r.Teacher != nil
	r.Teacher = p
	return replaced
}

func (r *Room) ClearTeacher() {
	r.Teacher = nil
}

func (r *Room) AddStudent(p *Participant) {
	if _, ok := r.students[p.ConnectionID]; !ok {
		r.order = append(r.order, p.ConnectionID)
	}
	r.students[p.ConnectionID] = p
}

func (r *Room) RemoveStudent(connectionID string) (*Participant, bool) {
	p, ok := r.students[connectionID]
	if !ok {
		return nil, false
	}
	delete(r.students, connectionID)
	r.order = lo.Without(r.order, connectionID)
	return p, true
}

func (r *Room) Student(connectionID string) (*Participant, bool) {
	p, ok := r.students[connectionID]
	return p, ok
}

// Students returns snapshots of the room's students in join order.
// The teacher is never part of this list.
func (r *Room) Students() []Participant {
	return lo.Map(r.order, func(id string, _ int) Participant {
		return *r.students[id]
	})
}

// ConnectionIDs lists every connection in the room, teacher first.
func (r *Room) ConnectionIDs() []string {
	ids := make([]string, 0, len(r.order)+1)
	if r.Teacher != nil {
		ids = append(ids, r.Teacher.ConnectionID)
	}
	return append(ids, r.order...)
}

// AppendMessage snapshots the sender, assigns the next sequence id and
// appends the message to the room history.
func (r *Room) AppendMessage(sender Participant, text string, at time.Time) Message {
	r.nextMessageID++
	msg := Message{
		ID:        r.nextMessageID,
		Sender:    sender,
		Text:      text,
		Timestamp: at,
	}
	r.Messages = append(r.Messages, msg)
	return msg
}

func (r *Room) AppendAttendance(p Participant, action AttendanceAction, at time.Time) {
	r.Attendance = append(r.Attendance, AttendanceEvent{
		ParticipantID:   p.ConnectionID,
		ParticipantName: p.Name,
		Role:            p.Role,
		Action:          action,
		Timestamp:       at,
	})
}

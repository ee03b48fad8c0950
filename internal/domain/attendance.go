package domain

import "time"

type AttendanceAction string

const (
	AttendanceJoin  AttendanceAction = "join"
	AttendanceLeave AttendanceAction = "leave"
)

// AttendanceEvent is one row of a room's append-only join/leave ledger.
type AttendanceEvent struct {
	ParticipantID   string           `json:"participantId"`
	ParticipantName string           `json:"participantName"`
	Role            Role             `json:"role"`
	Action          AttendanceAction `json:"action"`
	Timestamp       time.Time        `json:"timestamp"`
}

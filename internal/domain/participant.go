package domain

import "time"

// Role of a participant inside a room.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

type Participant struct {
	ConnectionID string    `json:"connectionId"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	JoinTime     time.Time `json:"joinTime"`
	Approved     bool      `json:"approved"`
}

package ws

import (
	"github.com/go-playground/validator/v10"

	"github.com/openclass/class-service/internal/domain"
)

// Inbound event types. Disconnect has no frame; it is the socket closing.
const (
	TypeJoinClass      = "join-class"
	TypeSendMessage    = "send-message"
	TypeApproveStudent = "approve-student"
)

// Message is the wire envelope, both directions.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type JoinPayload struct {
	RoomID   string          `json:"roomId" validate:"required"`
	UserData UserDataPayload `json:"userData" validate:"required"`
}

type UserDataPayload struct {
	UserID string `json:"userId" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=teacher student"`
}

// Text is accepted verbatim: empty and arbitrarily large messages are
// valid by contract.
type SendMessagePayload struct {
	Text string `json:"text"`
}

type ApproveStudentPayload struct {
	StudentConnectionID string `json:"studentConnectionId" validate:"required"`
}

var validate = validator.New()

// ValidateJoin rejects frames with missing fields or a role outside
// {teacher, student} instead of letting them leak into snapshots.
func ValidateJoin(p JoinPayload) error {
	return validate.Struct(p)
}

func ValidateApprove(p ApproveStudentPayload) error {
	return validate.Struct(p)
}

func (p UserDataPayload) Domain() (string, string, domain.Role) {
	return p.UserID, p.Name, domain.Role(p.Role)
}

package service

// Outbound event types emitted by the coordinator.
const (
	EventNewStudentWaiting = "new-student-waiting" // teacher only
	EventMessageHistory    = "message-history"     // joining connection only
	EventAttendanceUpdate  = "attendance-update"   // joiner + rest of room
	EventUserJoined        = "user-joined"         // rest of room
	EventNewMessage        = "new-message"         // whole room incl. sender
	EventStudentApproved   = "student-approved"    // approved student only
	EventUserApproved      = "user-approved"       // whole room
	EventUserLeft          = "user-left"           // rest of room
)

// Event is the envelope handed to the transport for delivery.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Emitter delivers coordinator events. Delivery is best-effort and
// fire-and-forget; the coordinator alone decides the recipient set.
type Emitter interface {
	Unicast(connectionID string, ev Event)
	Multicast(connectionIDs []string, ev Event)
}

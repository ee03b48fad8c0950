package domain

import "errors"

// Handler-level failures. None of these ever reach the wire: the
// transport drops the offending event and keeps the connection alive.
var (
	ErrUnknownConnection = errors.New("connection has no joined participant")
	ErrNotTeacher        = errors.New("caller is not the room teacher")
	ErrUnknownStudent    = errors.New("student not present in the room")
)

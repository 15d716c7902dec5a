package attendance

import "errors"

var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrSessionNotOpen   = errors.New("attendance session is not open")
	ErrSessionStillOpen = errors.New("attendance session is still open")
)

package clock

import "errors"

var (
	ErrAlreadyClockedIn = errors.New("you are already clocked in")
	ErrNotClockedIn     = errors.New("you are not clocked in")
	ErrClockNotFound    = errors.New("clock record not found")
)

package device

import "errors"

var (
	ErrNoDevice       = errors.New("no audio output device")
	ErrNotStarted     = errors.New("backend not started")
	ErrAlreadyStarted = errors.New("backend already started")
)

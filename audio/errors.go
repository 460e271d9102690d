// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrFile                    = errors.New("audio source unreadable")
	ErrDecode                  = errors.New("audio payload cannot be decoded")
	ErrUnsupportedSampleRate   = errors.New("unsupported sample rate")
	ErrUnsupportedChannelCount = errors.New("unsupported channel count")

	// ErrUnknownFormat is returned when no decoder is registered for an extension.
	ErrUnknownFormat = fmt.Errorf("%w: unknown format", ErrDecode)
	// ErrEmptyPayload is returned when a container decodes to zero frames.
	ErrEmptyPayload = fmt.Errorf("%w: no samples", ErrDecode)
)

// ErrorKind classifies a failed load.
type ErrorKind int

const (
	KindFile ErrorKind = iota
	KindDecode
	KindSampleRate
	KindChannelCount
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindFile:
		return ErrFile
	case KindSampleRate:
		return ErrUnsupportedSampleRate
	case KindChannelCount:
		return ErrUnsupportedChannelCount
	default:
		return ErrDecode
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindFile:
		return "file error"
	case KindDecode:
		return "decode error"
	case KindSampleRate:
		return "unsupported sample rate"
	case KindChannelCount:
		return "unsupported channel count"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// LoadError is the terminal result of a failed load attempt.
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *LoadError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

// Classify wraps err into a LoadError for path. Errors that already carry a
// kind keep it; anything wrapping ErrDecode is a decode error, everything
// else is treated as a file error.
func Classify(path string, err error) error {
	if err == nil {
		return nil
	}

	var le *LoadError
	if errors.As(err, &le) {
		if le.Path == "" {
			le.Path = path
		}
		return le
	}

	kind := KindFile
	switch {
	case errors.Is(err, ErrUnsupportedSampleRate):
		kind = KindSampleRate
	case errors.Is(err, ErrUnsupportedChannelCount):
		kind = KindChannelCount
	case errors.Is(err, ErrDecode):
		kind = KindDecode
	}
	return &LoadError{Kind: kind, Path: path, Err: err}
}

func rateError(rate int) error {
	return fmt.Errorf("%d Hz", rate)
}

func channelError(n int) error {
	return fmt.Errorf("%d channels", n)
}

package listen

import (
	"context"
	"time"
)

// Outcome classifies a listen attempt. Timeouts and unrecognized audio are
// routine results on every loop iteration, not errors.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeNoMatch     Outcome = "no_match"
	OutcomeTimeout     Outcome = "timeout"
	OutcomeDeviceError Outcome = "device_error"
)

// Result is the tagged outcome of one listen window.
type Result struct {
	Outcome Outcome
	Text    string
}

func OK(text string) Result      { return Result{Outcome: OutcomeOK, Text: text} }
func NoMatch() Result            { return Result{Outcome: OutcomeNoMatch} }
func Timeout() Result            { return Result{Outcome: OutcomeTimeout} }
func DeviceError() Result        { return Result{Outcome: OutcomeDeviceError} }
func (r Result) Recognized() bool { return r.Outcome == OutcomeOK && r.Text != "" }

// Device identifies one audio input.
type Device struct {
	Index int
	Name  string
}

// DefaultDevice is the "blank choice" device: whatever the backend considers
// its default input.
var DefaultDevice = Device{Index: -1}

// Options bound a single listen window.
type Options struct {
	// StartTimeout is how long to wait for speech to begin.
	StartTimeout time.Duration
	// PhraseLimit caps the length of the recorded phrase.
	PhraseLimit time.Duration
	Device      Device
}

// Recognizer produces one utterance per call. Service failures fold into
// NoMatch; the orchestrator treats every non-OK outcome the same way.
type Recognizer interface {
	Listen(ctx context.Context, opts Options) Result
}

// DeviceLister enumerates audio input devices at call time.
type DeviceLister interface {
	InputDevices() []Device
}

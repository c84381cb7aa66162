package listen

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"unicode"
)

// ExecRecognizer shells out to a capture-and-transcribe pipeline (for example
// a whisper.cpp wrapper script). The command is expected to record one phrase,
// print the transcript on stdout and exit. The selected device name, when not
// the default, is appended as the final argument.
type ExecRecognizer struct {
	name string
	args []string
}

// NewExecRecognizer parses a command line. Empty command yields nil; the
// caller should treat voice input as unavailable.
func NewExecRecognizer(command string) *ExecRecognizer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return &ExecRecognizer{name: fields[0], args: fields[1:]}
}

func (r *ExecRecognizer) Listen(ctx context.Context, opts Options) Result {
	window := opts.StartTimeout + opts.PhraseLimit
	if window > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, window)
		defer cancel()
	}

	args := append([]string{}, r.args...)
	if opts.Device.Name != "" {
		args = append(args, opts.Device.Name)
	}
	out, err := exec.CommandContext(ctx, r.name, args...).Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Timeout()
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return DeviceError()
		}
		// Transcriber ran and failed: treat like unrecognized audio.
		return NoMatch()
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return NoMatch()
	}
	return OK(text)
}

// ExecDeviceLister enumerates input devices by running a command such as
// "arecord -L" and taking each unindented non-empty stdout line as a device
// name. Enumeration failure means zero devices.
type ExecDeviceLister struct {
	name string
	args []string
}

func NewExecDeviceLister(command string) *ExecDeviceLister {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return &ExecDeviceLister{name: fields[0], args: fields[1:]}
}

func (l *ExecDeviceLister) InputDevices() []Device {
	if l == nil {
		return nil
	}
	out, err := exec.Command(l.name, l.args...).Output()
	if err != nil {
		return nil
	}
	return ParseDeviceList(string(out))
}

// ParseDeviceList extracts device names from enumeration output: one name per
// unindented line, indented lines are descriptions.
func ParseDeviceList(raw string) []Device {
	var devices []Device
	for _, line := range strings.Split(raw, "\n") {
		if line == "" || unicode.IsSpace(rune(line[0])) {
			continue
		}
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		devices = append(devices, Device{Index: len(devices), Name: name})
	}
	return devices
}

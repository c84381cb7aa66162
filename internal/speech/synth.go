package speech

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ExecSynthesizer shells out to a local TTS engine (espeak, say, piper, ...)
// with the utterance appended as the final argument. The command blocks until
// playback finishes, which is exactly the contract the worker needs.
type ExecSynthesizer struct {
	name string
	args []string
}

// NewExecSynthesizer parses a command line like "espeak -s 160". An empty
// command yields nil; callers should fall back to the console synthesizer.
func NewExecSynthesizer(command string) *ExecSynthesizer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return &ExecSynthesizer{name: fields[0], args: fields[1:]}
}

func (s *ExecSynthesizer) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	args := append(append([]string{}, s.args...), text)
	out, err := exec.CommandContext(ctx, s.name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", s.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ConsoleSynthesizer prints utterances instead of playing them, for sessions
// without a configured TTS engine.
type ConsoleSynthesizer struct {
	out io.Writer
}

func NewConsoleSynthesizer(out io.Writer) *ConsoleSynthesizer {
	return &ConsoleSynthesizer{out: out}
}

func (s *ConsoleSynthesizer) Speak(_ context.Context, text string) error {
	_, err := fmt.Fprintf(s.out, "[speak] %s\n", text)
	return err
}

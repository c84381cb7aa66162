package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/ent0n29/iris/internal/listen"
)

// Controller acquires one raw utterance per call, in whatever mode the
// orchestrator currently holds. The microphone is resolved once at session
// start and kept for the whole session.
type Controller struct {
	recognizer   listen.Recognizer
	devices      listen.DeviceLister
	device       listen.Device
	startTimeout time.Duration
	phraseLimit  time.Duration

	in  *bufio.Reader
	out io.Writer
}

func NewController(
	recognizer listen.Recognizer,
	devices listen.DeviceLister,
	device listen.Device,
	startTimeout, phraseLimit time.Duration,
	in io.Reader,
	out io.Writer,
) *Controller {
	return &Controller{
		recognizer:   recognizer,
		devices:      devices,
		device:       device,
		startTimeout: startTimeout,
		phraseLimit:  phraseLimit,
		in:           bufio.NewReader(in),
		out:          out,
	}
}

// Acquire solicits one utterance in the given mode. It returns the text, the
// mode to use next (text mode auto-falls back to voice on an empty line when a
// microphone is available), and whether input was obtained.
func (c *Controller) Acquire(ctx context.Context, mode Mode) (string, Mode, bool) {
	if mode == ModeText {
		return c.acquireText()
	}
	return c.acquireVoice(ctx)
}

func (c *Controller) acquireText() (string, Mode, bool) {
	fmt.Fprint(c.out, "\n[text] Type your message (or press Enter to skip): ")
	line, err := c.in.ReadString('\n')
	text := strings.TrimSpace(line)
	if err != nil && text == "" {
		// EOF or interrupt behaves like an empty line, never a crash.
		return "", c.textFallback(), false
	}
	if text == "" {
		return "", c.textFallback(), false
	}
	fmt.Fprintf(c.out, "[text] You typed: %s\n", text)
	return text, ModeText, true
}

// textFallback switches back to voice after a skipped line, but only when a
// microphone can actually be found right now.
func (c *Controller) textFallback() Mode {
	if len(c.devices.InputDevices()) > 0 {
		log.Printf("[input] empty line, switching to voice mode")
		return ModeVoice
	}
	log.Printf("[input] no microphone available, staying in text mode")
	return ModeText
}

func (c *Controller) acquireVoice(ctx context.Context) (string, Mode, bool) {
	if c.recognizer == nil {
		log.Printf("[input] no speech recognizer configured, falling back to text mode")
		return "", ModeText, false
	}
	fmt.Fprintf(c.out, "\n[mic] Listening for up to %s...\n", c.phraseLimit)
	res := c.recognizer.Listen(ctx, listen.Options{
		StartTimeout: c.startTimeout,
		PhraseLimit:  c.phraseLimit,
		Device:       c.device,
	})
	if !res.Recognized() {
		log.Printf("[input] no input recognized (%s), continuing to listen", res.Outcome)
		return "", ModeVoice, false
	}
	fmt.Fprintf(c.out, "[mic] You said: %s\n", res.Text)
	return res.Text, ModeVoice, true
}

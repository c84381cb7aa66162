package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ent0n29/iris/internal/listen"
)

// Selection is the startup choice of input: a device and the initial mode.
type Selection struct {
	Device listen.Device
	Mode   Mode
}

// SelectInput runs the interactive startup prompt: devices by index, plus a
// final "text input" option. Blank picks the default device; invalid numbers
// re-prompt; no devices at all forces text mode without prompting.
func SelectInput(in io.Reader, out io.Writer, devices []listen.Device) Selection {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Available input options:")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	for _, d := range devices {
		fmt.Fprintf(out, "  [%d] %s\n", d.Index, d.Name)
	}
	textOption := len(devices)
	fmt.Fprintf(out, "  [%d] Text input (type messages)\n", textOption)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	if len(devices) == 0 {
		fmt.Fprintln(out, "No microphones found, using text input.")
		return Selection{Device: listen.DefaultDevice, Mode: ModeText}
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "\nSelect input option (0-%d) or press Enter for the default microphone: ", textOption)
		line, err := reader.ReadString('\n')
		choice := strings.TrimSpace(line)
		if choice == "" {
			// Blank line or EOF both pick the default microphone.
			fmt.Fprintln(out, "Using the default microphone.")
			return Selection{Device: listen.DefaultDevice, Mode: ModeVoice}
		}

		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 0 || n > textOption {
			if err != nil {
				// Stdin is gone; stop re-prompting.
				fmt.Fprintln(out, "Using the default microphone.")
				return Selection{Device: listen.DefaultDevice, Mode: ModeVoice}
			}
			fmt.Fprintf(out, "Please enter a number between 0 and %d.\n", textOption)
			continue
		}
		if n == textOption {
			fmt.Fprintln(out, "Selected text input mode.")
			return Selection{Device: listen.DefaultDevice, Mode: ModeText}
		}
		fmt.Fprintf(out, "Selected microphone: %s\n", devices[n].Name)
		return Selection{Device: devices[n], Mode: ModeVoice}
	}
}

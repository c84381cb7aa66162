package input

// Mode says how the next utterance is solicited.
type Mode string

const (
	ModeVoice Mode = "voice"
	ModeText  Mode = "text"
)

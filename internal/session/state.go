package session

import "bytes"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRecorded
	PhaseTranscribed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRecorded:
		return "recorded"
	case PhaseTranscribed:
		return "transcribed"
	default:
		return "unknown"
	}
}

// State is the value shape of one consultation session: the current recording
// and the transcript derived from it. The phase is not stored, it follows
// from which fields are populated. All transitions return a new value so the
// rules stay testable without any HTTP or UI in the loop.
type State struct {
	Recording  []byte
	Transcript string
}

func (s State) Phase() Phase {
	switch {
	case len(s.Recording) == 0:
		return PhaseIdle
	case s.Transcript == "":
		return PhaseRecorded
	default:
		return PhaseTranscribed
	}
}

// WithRecording replaces the recording when the payload differs by content.
// Replacing the recording always drops the transcript, so a transcript can
// never describe audio other than the stored recording. An identical payload
// leaves the state untouched.
func (s State) WithRecording(audio []byte) State {
	if bytes.Equal(s.Recording, audio) {
		return s
	}
	dup := make([]byte, len(audio))
	copy(dup, audio)
	return State{Recording: dup}
}

func (s State) WithTranscript(text string) State {
	return State{Recording: s.Recording, Transcript: text}
}

func (s State) Cleared() State {
	return State{}
}

// NeedsTranscription reports whether a recording is waiting on speech-to-text.
func (s State) NeedsTranscription() bool {
	return s.Phase() == PhaseRecorded
}

package session

import "context"

// Transcriber is the transcription gateway seen from the controller.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Adviser is the advice gateway seen from the controller. It never fails:
// the gateway substitutes its fallback message on error.
type Adviser interface {
	Generate(ctx context.Context, transcript string) string
}

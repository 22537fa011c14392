package ports

import (
	"context"

	"medvoice/internal/session"
)

type SessionService interface {
	Create() session.Snapshot
	Get(id string) (session.Snapshot, error)
	SubmitRecording(ctx context.Context, id string, audio []byte) (session.Snapshot, error)
	Advise(ctx context.Context, id string) (string, error)
	Clear(id string) (session.Snapshot, error)
}

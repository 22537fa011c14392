package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyRecording  = errors.New("empty recording payload")
	ErrNoTranscript    = errors.New("no transcript available")
	ErrNotConfigured   = errors.New("missing OPENAI_API_KEY")
)

// Snapshot is the read model handed to delivery. The raw recording never
// leaves the controller; only its size does.
type Snapshot struct {
	ID             string `json:"id"`
	Phase          string `json:"phase"`
	Transcript     string `json:"transcript"`
	HasRecording   bool   `json:"has_recording"`
	RecordingBytes int    `json:"recording_bytes"`
}

// Service owns per-session state and decides when each gateway fires.
// Gateway failures are absorbed here: the session is always left in a
// well-defined state and nothing propagates past delivery untyped.
type Service struct {
	store      *Store
	stt        Transcriber
	adviser    Adviser
	configured bool
}

func NewService(store *Store, stt Transcriber, adviser Adviser, configured bool) *Service {
	return &Service{
		store:      store,
		stt:        stt,
		adviser:    adviser,
		configured: configured,
	}
}

func (s *Service) Create() Snapshot {
	sess := s.store.Create()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(sess)
}

func (s *Service) Get(id string) (Snapshot, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// SubmitRecording stores the new recording and, whenever the session is left
// awaiting transcription, invokes the transcription gateway synchronously.
// A payload identical to the stored one keeps the existing transcript; a
// differing payload drops it before anything else happens, so the transcript
// can never outlive its recording. On transcription failure the recording is
// kept, the transcript stays empty and the error is returned for inline
// display; re-submitting or re-recording retries.
func (s *Service) SubmitRecording(ctx context.Context, id string, audio []byte) (Snapshot, error) {
	if len(audio) == 0 {
		return Snapshot{}, ErrEmptyRecording
	}

	sess, ok := s.store.Get(id)
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state = sess.state.WithRecording(audio)
	sess.updatedAt = time.Now()

	if !sess.state.NeedsTranscription() {
		return s.snapshot(sess), nil
	}
	if !s.configured {
		return s.snapshot(sess), ErrNotConfigured
	}

	text, err := s.stt.Transcribe(ctx, sess.state.Recording)
	if err != nil {
		log.Printf("[session] transcribe fail id=%s err=%v", id, err)
		return s.snapshot(sess), fmt.Errorf("transcription failed: %w", err)
	}

	sess.state = sess.state.WithTranscript(text)
	return s.snapshot(sess), nil
}

// Advise runs the advice gateway against the current transcript. It mutates
// nothing: asking twice yields two independent gateway calls. With no
// transcript present the gateway is never invoked.
func (s *Service) Advise(ctx context.Context, id string) (string, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return "", ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state.Transcript == "" {
		return "", ErrNoTranscript
	}
	if !s.configured {
		return "", ErrNotConfigured
	}

	sess.updatedAt = time.Now()
	return s.adviser.Generate(ctx, sess.state.Transcript), nil
}

// Clear resets the session to idle. Clearing an already idle session is a
// no-op; no gateway is involved either way.
func (s *Service) Clear(id string) (Snapshot, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state = sess.state.Cleared()
	sess.updatedAt = time.Now()
	return s.snapshot(sess), nil
}

// snapshot expects the session lock to be held.
func (s *Service) snapshot(sess *Session) Snapshot {
	return Snapshot{
		ID:             sess.ID,
		Phase:          sess.state.Phase().String(),
		Transcript:     sess.state.Transcript,
		HasRecording:   len(sess.state.Recording) > 0,
		RecordingBytes: len(sess.state.Recording),
	}
}

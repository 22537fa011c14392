package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockTranscriber struct {
	calls   [][]byte
	results map[string]string
	err     error
}

func (m *mockTranscriber) Transcribe(_ context.Context, audio []byte) (string, error) {
	dup := make([]byte, len(audio))
	copy(dup, audio)
	m.calls = append(m.calls, dup)

	if m.err != nil {
		return "", m.err
	}
	return m.results[string(audio)], nil
}

type mockAdviser struct {
	calls []string
	reply string
}

func (m *mockAdviser) Generate(_ context.Context, transcript string) string {
	m.calls = append(m.calls, transcript)
	return m.reply
}

func newTestService(stt *mockTranscriber, adv *mockAdviser, configured bool) *Service {
	return NewService(NewStore(time.Hour), stt, adv, configured)
}

func TestService_SubmitRecording_Transcribes(t *testing.T) {
	stt := &mockTranscriber{results: map[string]string{"payload-a": "patient reports headache"}}
	adv := &mockAdviser{}
	svc := newTestService(stt, adv, true)

	id := svc.Create().ID
	snap, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stt.calls) != 1 || string(stt.calls[0]) != "payload-a" {
		t.Fatalf("expected one transcription call with payload-a, got %d calls", len(stt.calls))
	}
	if snap.Transcript != "patient reports headache" {
		t.Errorf("expected transcript, got %q", snap.Transcript)
	}
	if snap.Phase != "transcribed" {
		t.Errorf("expected transcribed phase, got %q", snap.Phase)
	}
}

func TestService_SubmitRecording_EmptyPayloadRejected(t *testing.T) {
	stt := &mockTranscriber{}
	svc := newTestService(stt, &mockAdviser{}, true)

	id := svc.Create().ID
	if _, err := svc.SubmitRecording(context.Background(), id, nil); !errors.Is(err, ErrEmptyRecording) {
		t.Errorf("expected ErrEmptyRecording, got %v", err)
	}
	if len(stt.calls) != 0 {
		t.Error("gateway must not be called for an empty payload")
	}
}

func TestService_SubmitRecording_NewPayloadResetsTranscript(t *testing.T) {
	// recording A fails to transcribe, recording B replaces it: the eventual
	// transcription must use B and the transcript must never describe A
	stt := &mockTranscriber{err: errors.New("boom")}
	svc := newTestService(stt, &mockAdviser{}, true)

	id := svc.Create().ID
	snap, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a"))
	if err == nil {
		t.Fatal("expected transcription error")
	}
	if snap.Transcript != "" {
		t.Errorf("transcript must stay empty on failure, got %q", snap.Transcript)
	}
	if snap.Phase != "recorded" {
		t.Errorf("expected recorded phase after failure, got %q", snap.Phase)
	}

	stt.err = nil
	stt.results = map[string]string{"payload-b": "from b"}

	snap, err = svc.SubmitRecording(context.Background(), id, []byte("payload-b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Transcript != "from b" {
		t.Errorf("expected transcript from payload-b, got %q", snap.Transcript)
	}
	if len(stt.calls) != 2 || string(stt.calls[1]) != "payload-b" {
		t.Fatalf("expected second call with payload-b, calls=%d", len(stt.calls))
	}
}

func TestService_SubmitRecording_SamePayloadRetriesAfterFailure(t *testing.T) {
	stt := &mockTranscriber{err: errors.New("boom")}
	svc := newTestService(stt, &mockAdviser{}, true)

	id := svc.Create().ID
	if _, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a")); err == nil {
		t.Fatal("expected transcription error")
	}

	stt.err = nil
	stt.results = map[string]string{"payload-a": "second try"}

	snap, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Transcript != "second try" {
		t.Errorf("expected retried transcript, got %q", snap.Transcript)
	}
}

func TestService_SubmitRecording_SamePayloadKeepsTranscriptWithoutNewCall(t *testing.T) {
	stt := &mockTranscriber{results: map[string]string{"payload-a": "text"}}
	svc := newTestService(stt, &mockAdviser{}, true)

	id := svc.Create().ID
	if _, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stt.calls) != 1 {
		t.Errorf("expected one transcription call, got %d", len(stt.calls))
	}
	if snap.Transcript != "text" {
		t.Errorf("expected transcript kept, got %q", snap.Transcript)
	}
}

func TestService_Advise(t *testing.T) {
	stt := &mockTranscriber{results: map[string]string{"payload-a": "patient reports headache"}}
	adv := &mockAdviser{reply: "**Most Likely Diagnosis**\n- Tension headache."}
	svc := newTestService(stt, adv, true)

	id := svc.Create().ID
	if _, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := svc.Advise(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != adv.reply {
		t.Errorf("expected advice verbatim, got %q", text)
	}
	if len(adv.calls) != 1 || adv.calls[0] != "patient reports headache" {
		t.Fatalf("expected one advice call with the transcript, got %v", adv.calls)
	}
}

func TestService_Advise_TwiceMakesTwoCallsAndMutatesNothing(t *testing.T) {
	stt := &mockTranscriber{results: map[string]string{"payload-a": "text"}}
	adv := &mockAdviser{reply: "advice"}
	svc := newTestService(stt, adv, true)

	id := svc.Create().ID
	if _, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Advise(context.Background(), id); err != nil {
			t.Fatalf("advise %d: unexpected error: %v", i, err)
		}
	}

	if len(adv.calls) != 2 {
		t.Errorf("expected two independent advice calls, got %d", len(adv.calls))
	}

	snap, err := svc.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Transcript != "text" || snap.Phase != "transcribed" {
		t.Errorf("advise mutated session state: %+v", snap)
	}
}

func TestService_Advise_NoTranscript(t *testing.T) {
	adv := &mockAdviser{}
	svc := newTestService(&mockTranscriber{}, adv, true)

	id := svc.Create().ID
	if _, err := svc.Advise(context.Background(), id); !errors.Is(err, ErrNoTranscript) {
		t.Errorf("expected ErrNoTranscript, got %v", err)
	}
	if len(adv.calls) != 0 {
		t.Error("advice gateway must not be called without a transcript")
	}
}

func TestService_NotConfigured_NoGatewayEverCalled(t *testing.T) {
	stt := &mockTranscriber{}
	adv := &mockAdviser{}
	svc := newTestService(stt, adv, false)

	id := svc.Create().ID
	snap, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a"))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if snap.Phase != "recorded" {
		t.Errorf("recording should still be stored, got phase %q", snap.Phase)
	}

	if _, err := svc.Advise(context.Background(), id); err == nil {
		t.Error("expected advise to fail without configuration")
	}

	if len(stt.calls) != 0 || len(adv.calls) != 0 {
		t.Error("no gateway may be called when the credential is absent")
	}
}

func TestService_Clear(t *testing.T) {
	stt := &mockTranscriber{results: map[string]string{"payload-a": "text"}}
	adv := &mockAdviser{}
	svc := newTestService(stt, adv, true)

	id := svc.Create().ID
	if _, err := svc.SubmitRecording(context.Background(), id, []byte("payload-a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	callsBefore := len(stt.calls)

	snap, err := svc.Clear(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Phase != "idle" || snap.HasRecording || snap.Transcript != "" {
		t.Errorf("expected idle state after clear, got %+v", snap)
	}
	if len(stt.calls) != callsBefore || len(adv.calls) != 0 {
		t.Error("clear must not invoke any gateway")
	}

	// clearing an idle session is a no-op
	snap, err = svc.Clear(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Phase != "idle" {
		t.Errorf("expected idle state, got %q", snap.Phase)
	}
}

func TestService_UnknownSession(t *testing.T) {
	svc := newTestService(&mockTranscriber{}, &mockAdviser{}, true)

	if _, err := svc.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.SubmitRecording(context.Background(), "nope", []byte("a")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SubmitRecording: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Advise(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Advise: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Clear("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Clear: expected ErrSessionNotFound, got %v", err)
	}
}

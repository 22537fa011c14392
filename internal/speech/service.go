package speech

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

var ErrEmptyAudio = errors.New("empty audio payload")

// Service is the transcription gateway: it hands the current recording to the
// external speech-to-text client and normalizes the result. Failures never
// escape untyped; the caller keeps the transcript empty and surfaces the error.
type Service struct {
	stt STTClient
}

func NewService(stt STTClient) *Service {
	return &Service{stt: stt}
}

func (s *Service) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	ctxSTT, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	start := time.Now()
	text, err := s.stt.Transcribe(ctxSTT, audio)
	if err != nil {
		log.Printf("[speech] transcribe fail bytes=%d err=%v", len(audio), err)
		return "", fmt.Errorf("transcribe: %w", err)
	}
	log.Printf("[speech][%.1fs] transcribed %d bytes -> %d chars", time.Since(start).Seconds(), len(audio), len(text))

	return strings.TrimSpace(text), nil
}

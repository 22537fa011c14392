package advice

import (
	"context"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"medvoice/internal/ai"
)

// Service is the advice gateway. It builds the fixed prompt around the
// transcript, asks the chat model once, and returns the reply verbatim.
// The reply is not parsed or validated against the requested headings;
// whether the model honors the format is up to the model.
type Service struct {
	chat        ai.ChatClient
	model       string
	temperature float32
}

func NewService(chat ai.ChatClient, model string, temperature float32) *Service {
	return &Service{
		chat:        chat,
		model:       model,
		temperature: temperature,
	}
}

// Generate never returns an error: any chat failure is logged and replaced
// with the fixed fallback message. The caller guarantees a non-empty transcript.
func (s *Service) Generate(ctx context.Context, transcript string) string {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
		{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(transcript)},
	}

	ctxGPT, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	start := time.Now()
	reply, err := s.chat.GetCompletion(ctxGPT, messages, s.model, s.temperature)
	log.Printf("[advice][%.1fs] GPT done err=%v", time.Since(start).Seconds(), err)

	if err != nil {
		return FallbackMessage
	}
	return reply
}

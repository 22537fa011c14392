package ai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client          *openai.Client
	transcribeModel string
}

// NewOpenAIClient builds a client for both Whisper and chat completions.
// An empty apiKey is allowed: the caller is expected to gate every call on
// the configuration check, so an unconfigured client is never actually used.
func NewOpenAIClient(apiKey, transcribeModel string) *OpenAIClient {
	return &OpenAIClient{
		client:          openai.NewClient(apiKey),
		transcribeModel: transcribeModel,
	}
}

// Transcribe submits the recorded audio to Whisper from an in-memory reader.
// The payload is expected to be a WAV container.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		FilePath: "recording.wav",
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (c *OpenAIClient) GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, model string, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the outbound chat-completion surface used by the advice gateway.
type ChatClient interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, model string, temperature float32) (string, error)
}

// Package oracle adapts an OpenAI-compatible chat-completions client to the
// narrow contract.Oracle port the extraction services depend on.
package oracle

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/alfredlabs/alfred/agent/contract"
	llmx "github.com/alfredlabs/alfred/pkg/llm"
)

type Adapter struct {
	client      *openaisdk.Client
	model       string
	temperature float64
	log         zerolog.Logger
}

var _ contractx.Oracle = (*Adapter)(nil)

func New(client *openaisdk.Client, cfg llmx.Config) *Adapter {
	return &Adapter{
		client:      client,
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		log:         log.With().Str("component", "oracle").Logger(),
	}
}

// Infer runs one blocking chat completion. Catalog metadata, when present,
// is appended to the system prompt. All failures (transport, service, empty
// reply) surface as ErrOracleInvoke for the callers to degrade on.
func (a *Adapter) Infer(ctx context.Context, req contractx.InferRequest) (string, error) {
	if a == nil || a.client == nil {
		return "", fmt.Errorf("%w: client is not configured", contractx.ErrOracleInvoke)
	}

	system := strings.TrimSpace(req.SystemPrompt)
	if meta := strings.TrimSpace(req.Metadata); meta != "" {
		system = strings.TrimSpace(system + "\n" + meta)
	}

	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openaisdk.SystemMessage(system))
	}
	messages = append(messages, openaisdk.UserMessage(req.Prompt))

	resp, err := a.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(a.model),
		Messages:    messages,
		Temperature: openaisdk.Float(a.temperature),
	})
	if err != nil {
		a.log.Debug().Err(err).Msg("chat completion failed")
		return "", fmt.Errorf("%w: %v", contractx.ErrOracleInvoke, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", contractx.ErrOracleInvoke)
	}
	return resp.Choices[0].Message.Content, nil
}

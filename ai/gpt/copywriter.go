package gpt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"CampaignBot/internal/config"
	"CampaignBot/internal/lib/sl"
)

// CopyWriter generates ad copy proposals for the SUGERIR command.
type CopyWriter struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewCopyWriter(conf *config.Config, log *slog.Logger) *CopyWriter {
	if conf.OpenAI.ApiKey == "" {
		return nil
	}
	return &CopyWriter{
		client: openai.NewClient(conf.OpenAI.ApiKey),
		model:  conf.OpenAI.Model,
		log:    log.With(sl.Module("gpt.copywriter")),
	}
}

// SuggestAdCopy asks the model for a short ad text matching the campaign
// name and objective already collected in the flow.
func (c *CopyWriter) SuggestAdCopy(ctx context.Context, campaignName, objective string) (string, error) {
	prompt := fmt.Sprintf(
		"Escribe un texto publicitario breve (máximo 300 caracteres) en español para una campaña llamada %q con objetivo %s. Responde solo con el texto del anuncio.",
		campaignName, objective,
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 200,
	})
	if err != nil {
		return "", fmt.Errorf("creating completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	suggestion := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug("ad copy suggested", slog.Int("length", len(suggestion)))
	return suggestion, nil
}

// Package anthropic is the text collaborator: message polishing and
// specimen descriptions backed by the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

// ErrEmptyResponse is returned when the model replies without text.
var ErrEmptyResponse = errors.New("empty response")

type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Provider calls the Messages API.
type Provider struct {
	messages  messageCreator
	model     anthropic.Model
	maxTokens int64
	log       *slog.Logger
}

// NewProvider creates a Provider from cfg. The SDK's own retries are
// disabled; callers wrap the provider in a guard instead.
func NewProvider(log *slog.Logger, cfg config.AnthropicConfig, opts ...option.RequestOption) *Provider {
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}, opts...)
	client := anthropic.NewClient(opts...)
	return newProvider(log, &client.Messages, cfg)
}

func newProvider(log *slog.Logger, messages messageCreator, cfg config.AnthropicConfig) *Provider {
	return &Provider{
		messages:  messages,
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		log:       log.With("adapter", "anthropic"),
	}
}

// PolishMessage rewrites text as a short warm postcard message. Length
// capping is left to the caller.
func (p *Provider) PolishMessage(ctx context.Context, text string) (string, error) {
	reply, err := p.complete(ctx, polishPrompt(text))
	if err != nil {
		return "", fmt.Errorf("anthropic: polish: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// DescribeSpecimen returns a naturalist field observation for subject.
func (p *Provider) DescribeSpecimen(ctx context.Context, subject string) (domain.SpecimenEntry, error) {
	reply, err := p.complete(ctx, specimenPrompt(subject))
	if err != nil {
		return domain.SpecimenEntry{}, fmt.Errorf("anthropic: describe specimen: %w", err)
	}

	jsonStr, err := extractJSON(reply)
	if err != nil {
		return domain.SpecimenEntry{}, fmt.Errorf("anthropic: describe specimen: %w", err)
	}

	var entry domain.SpecimenEntry
	if err := json.Unmarshal([]byte(jsonStr), &entry); err != nil {
		return domain.SpecimenEntry{}, fmt.Errorf("anthropic: decode specimen: %w", err)
	}
	return entry, nil
}

func (p *Provider) complete(ctx context.Context, prompt string) (string, error) {
	p.log.DebugContext(ctx, "anthropic request", slog.String("model", string(p.model)))

	msg, err := p.messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, ErrEmptyResponse)
	}
	return b.String(), nil
}

func polishPrompt(text string) string {
	return fmt.Sprintf("Rewrite this message for a family postcard. Keep it under 90 characters. "+
		"Evocative and warm. Reply with the rewritten message only. Original: %q", text)
}

func specimenPrompt(subject string) string {
	return fmt.Sprintf(`Generate a naturalist's field observation based on this subject: %q.
The tone should be structural, scientific, and slightly poetic, focusing on textures, minerals, or botanical details.
Keep the observation under 300 characters.

Output ONLY a valid JSON object matching this exact schema:
{
  "title": "<a short, evocative scientific title>",
  "observation": "<the field observation text>",
  "coordinates": "<fictional latitude and longitude, e.g. 51.20° N, 4.40° W>",
  "status": "<ARCHIVED|VERIFIED|CATALOGUED>"
}`, subject)
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no JSON object found in response")
	}
	return s[start : end+1], nil
}

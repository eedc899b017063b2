// Package gemini is the image collaborator: generation and editing through
// the Gemini generateContent API.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

// ErrNoImage is returned when a response carries no inline image part.
var ErrNoImage = errors.New("no image in response")

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider calls generateContent for an image-capable model.
type Provider struct {
	models contentGenerator
	model  string
	log    *slog.Logger
}

// NewProvider creates a Provider from cfg.
func NewProvider(ctx context.Context, log *slog.Logger, cfg config.GeminiConfig) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newProvider(log, client.Models, cfg.ImageModel), nil
}

func newProvider(log *slog.Logger, models contentGenerator, model string) *Provider {
	return &Provider{
		models: models,
		model:  model,
		log:    log.With("adapter", "gemini"),
	}
}

// GenerateImage renders prompt as a 3:4 image and returns it as a data URL.
func (p *Provider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	out, err := p.generate(ctx, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
		ImageConfig:        &genai.ImageConfig{AspectRatio: "3:4"},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate image: %w", err)
	}
	return out, nil
}

// EditImage applies instructions to the image in dataURL.
func (p *Provider) EditImage(ctx context.Context, dataURL, instructions string) (string, error) {
	mimeType, data, err := splitDataURL(dataURL)
	if err != nil {
		return "", fmt.Errorf("gemini: edit image: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("gemini: edit image: bad base64: %w", domain.ErrValidation)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(raw, mimeType),
			genai.NewPartFromText(instructions),
		}, genai.RoleUser),
	}
	out, err := p.generate(ctx, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: edit image: %w", err)
	}
	return out, nil
}

func (p *Provider) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	p.log.DebugContext(ctx, "gemini request", slog.String("model", p.model), slog.Int("parts", len(contents[0].Parts)))

	resp, err := p.models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return firstInlineImage(resp)
}

// firstInlineImage returns the first inline image part of the first
// candidate as a data URL.
func firstInlineImage(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrNoImage
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			blob := part.InlineData
			return "data:" + blob.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(blob.Data), nil
		}
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("%w: blocked: %s", ErrNoImage, fb.BlockReason)
	}
	return "", ErrNoImage
}

// splitDataURL splits "data:<mime>;base64,<data>".
func splitDataURL(dataURL string) (mimeType, data string, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", "", fmt.Errorf("not a data URL: %w", domain.ErrValidation)
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok || data == "" {
		return "", "", fmt.Errorf("data URL has no payload: %w", domain.ErrValidation)
	}
	mimeType, ok = strings.CutSuffix(meta, ";base64")
	if !ok || mimeType == "" {
		return "", "", fmt.Errorf("data URL is not base64: %w", domain.ErrValidation)
	}
	return mimeType, data, nil
}

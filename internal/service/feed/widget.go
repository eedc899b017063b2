package feed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

//go:embed templates/widget.js.tmpl
var widgetScriptSource string

var widgetScriptTmpl = template.Must(template.New("widget").Parse(widgetScriptSource))

// WidgetData returns the flat payload for name's widget. Fields missing
// from the matching postcard, or the whole payload when nothing matches,
// come from the fixed fallback.
func (s *Service) WidgetData(ctx context.Context, name string) domain.WidgetData {
	fallback := domain.FallbackWidgetData()

	p, ok := s.LatestFor(ctx, name)
	if !ok {
		return fallback
	}

	data := domain.WidgetDataFrom(p)
	data.ImageURL = firstNonEmpty(data.ImageURL, fallback.ImageURL)
	data.Sender = firstNonEmpty(data.Sender, fallback.Sender)
	data.Message = firstNonEmpty(data.Message, fallback.Message)
	data.Location = firstNonEmpty(data.Location, fallback.Location)
	data.Date = firstNonEmpty(data.Date, fallback.Date)
	return data
}

type widgetScriptData struct {
	Recipient     string
	RecipientJSON string
	BaseURLJSON   string
	FallbackJSON  string
}

// WidgetScript renders the Scriptable home-screen script for name. The
// script polls baseURL + "/api/widget" and embeds the current payload as
// its offline fallback.
func (s *Service) WidgetScript(ctx context.Context, name, baseURL string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("recipient", "required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return "", domain.NewValidationError("base_url", "required")
	}

	fallback, err := json.MarshalIndent(s.WidgetData(ctx, name), "    ", "  ")
	if err != nil {
		return "", fmt.Errorf("encode fallback payload: %w", err)
	}
	recipientJSON, _ := json.Marshal(name)
	baseJSON, _ := json.Marshal(baseURL)

	var buf bytes.Buffer
	if err := widgetScriptTmpl.Execute(&buf, widgetScriptData{
		Recipient:     strings.Join(strings.Fields(name), " "),
		RecipientJSON: string(recipientJSON),
		BaseURLJSON:   string(baseJSON),
		FallbackJSON:  string(fallback),
	}); err != nil {
		return "", fmt.Errorf("render widget script: %w", err)
	}

	s.log.DebugContext(ctx, "widget script rendered",
		slog.String("recipient", name),
		slog.String("base_url", baseURL),
	)
	return buf.String(), nil
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

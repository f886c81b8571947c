package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	cfg "postpilot/configs"
	"postpilot/internal/transfer"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

// CaptionService produces advisory caption text. It is orthogonal to
// scheduling; a failure here never touches post state.
type CaptionService interface {
	Generate(ctx context.Context, topic, tone string) (*transfer.CaptionResult, error)
}

type captionService struct {
	config cfg.Config
	client *http.Client
}

func NewCaptionService(config cfg.Config) CaptionService {
	return &captionService{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *captionService) Generate(ctx context.Context, topic, tone string) (*transfer.CaptionResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, invalid("topic is required")
	}
	if s.config.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set on the server")
	}
	if tone == "" {
		tone = "fun"
	}

	prompt := fmt.Sprintf(`Generate a short social media caption and 8-12 relevant hashtags.

Topic: %q
Tone: %s

Return JSON with this structure:
{
  "caption": "...",
  "hashtags": "#tag1 #tag2 #tag3"
}`, topic, tone)

	body, err := json.Marshal(transfer.ChatCompletionRequest{
		Model:       "gpt-4o-mini",
		Messages:    []transfer.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.8,
		MaxTokens:   200,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.OpenAIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var completion transfer.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("caption API returned no choices")
	}

	text := completion.Choices[0].Message.Content

	var result transfer.CaptionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		// Model ignored the JSON instruction; use the raw text.
		result = transfer.CaptionResult{Caption: strings.TrimSpace(text)}
	}

	return &result, nil
}

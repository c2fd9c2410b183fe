package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGPTBaseURL = "https://api.openai.com"

// GiftIdea is one entry of the idea list returned by the completion service.
type GiftIdea struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// GPTService calls the text-generation API and parses its completion into a
// gift idea list.
type GPTService struct {
	settings   *SettingsService
	baseURL    string
	httpClient *http.Client
}

// NewGPTService creates a GPTService. An empty baseURL selects the real API.
func NewGPTService(settings *SettingsService, baseURL string) *GPTService {
	if baseURL == "" {
		baseURL = defaultGPTBaseURL
	}
	return &GPTService{
		settings:   settings,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type gptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type gptRequest struct {
	Model       string       `json:"model"`
	Messages    []gptMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
}

type gptResponse struct {
	Choices []struct {
		Message gptMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateGiftIdeas sends the prompt and parses the completion as a JSON
// array of ideas. A completion that does not parse fails the call.
func (s *GPTService) GenerateGiftIdeas(ctx context.Context, prompt string) ([]GiftIdea, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load gpt settings: %w", err)
	}

	payload := gptRequest{
		Model:       "gpt-4o-mini",
		Messages:    []gptMessage{{Role: "user", Content: prompt}},
		MaxTokens:   1000,
		Temperature: 0,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+settings.GPTKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion service returned status %d: %s", resp.StatusCode, raw)
	}

	var parsed gptResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("completion service error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("completion service returned no choices")
	}

	return parseIdeaList(parsed.Choices[0].Message.Content)
}

// parseIdeaList normalizes the completion text and parses the idea array.
func parseIdeaList(completion string) ([]GiftIdea, error) {
	cleaned := strings.NewReplacer(
		"\n", "",
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	).Replace(completion)
	cleaned = strings.TrimSpace(cleaned)

	// Models occasionally wrap the array in a markdown fence.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var ideas []GiftIdea
	if err := json.Unmarshal([]byte(cleaned), &ideas); err != nil {
		return nil, fmt.Errorf("parse idea list: %w", err)
	}

	return ideas, nil
}

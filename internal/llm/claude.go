package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"happyminds/internal/domain"
)

type ClaudeProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewClaudeProvider(client *http.Client, baseURL, apiKey string) *ClaudeProvider {
	return &ClaudeProvider{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

type claudeRequest struct {
	Model     string          `json:"model"`
	System    string          `json:"system,omitempty"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string        `json:"role"`
	Content []claudeBlock `json:"content"`
}

type claudeBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type claudeResponse struct {
	Content []claudeBlock `json:"content"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *ClaudeProvider) Complete(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	payload := claudeRequest{
		Model:     req.Model,
		System:    req.System,
		MaxTokens: 1024,
		Messages:  make([]claudeMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		switch m.Role {
		case "user", "assistant":
			payload.Messages = append(payload.Messages, claudeMessage{
				Role:    m.Role,
				Content: []claudeBlock{{Type: "text", Text: m.Content}},
			})
		}
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return domain.LLMResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(buf))
	if err != nil {
		return domain.LLMResponse{}, err
	}
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return domain.LLMResponse{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return domain.LLMResponse{}, fmt.Errorf("claude status %d: %s", resp.StatusCode, string(body))
	}

	var parsed claudeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.LLMResponse{}, err
	}
	if parsed.Error != nil {
		return domain.LLMResponse{}, fmt.Errorf("claude error: %s", parsed.Error.Message)
	}

	out := domain.LLMResponse{}
	for _, block := range parsed.Content {
		if block.Type != "text" || block.Text == "" {
			continue
		}
		if out.Content == "" {
			out.Content = block.Text
		} else {
			out.Content += "\n" + block.Text
		}
	}
	return out, nil
}

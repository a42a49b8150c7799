package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"happyminds/internal/domain"
)

// HTTPClient calls a text-classification inference endpoint that accepts
// {"inputs": "..."} and returns per-label scores, either flat or batched.
type HTTPClient struct {
	url  string
	http *http.Client
}

func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		url:  strings.TrimSpace(url),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Enabled() bool {
	return c != nil && c.url != ""
}

func (c *HTTPClient) Classify(ctx context.Context, text string) ([]domain.LabelScore, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("classifier endpoint is not configured")
	}
	payload := map[string]string{"inputs": text}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classifier status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return decodeScores(respBody)
}

// decodeScores accepts both response shapes emitted by text-classification
// pipelines: [{"label","score"},...] for a single input and [[...]] for a
// batch, where the first row is used.
func decodeScores(body []byte) ([]domain.LabelScore, error) {
	var batched [][]domain.LabelScore
	if err := json.Unmarshal(body, &batched); err == nil {
		if len(batched) == 0 {
			return nil, fmt.Errorf("classifier returned an empty batch")
		}
		return batched[0], nil
	}
	var flat []domain.LabelScore
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}
	return nil, fmt.Errorf("unexpected classifier response: %s", strings.TrimSpace(string(body)))
}

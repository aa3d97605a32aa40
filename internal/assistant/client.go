package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the remote compliance-assistant chat API.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type ChatRequest struct {
	SessionID string    `json:"session_id,omitempty"`
	Messages  []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Citation struct {
	Code  string `json:"code"`
	Title string `json:"title,omitempty"`
}

type ChatResponse struct {
	Success   bool       `json:"success"`
	Reply     string     `json:"reply"`
	Citations []Citation `json:"citations,omitempty"`
	Message   string     `json:"message,omitempty"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Send posts the running transcript and returns the assistant reply with
// any code citations it carries.
func (c *Client) Send(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, "/v1/chat", req, &resp); err != nil {
		return ChatResponse{}, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("assistant request failed: %s", resp.Message)
	}
	return resp, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("assistant API returned %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

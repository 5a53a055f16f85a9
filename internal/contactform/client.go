package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"portfolio-web/pkg/logger"
)

const relayPath = "/api/send"

// Receipt is the relay's 2xx body.
type Receipt struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"-"`
}

// Sender delivers one validated payload.
type Sender interface {
	Send(ctx context.Context, p Payload) (*Receipt, error)
}

// StatusError is a non-2xx answer from the relay.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay answered %d", e.Code)
	}
	return fmt.Sprintf("relay answered %d: %s", e.Code, e.Message)
}

// RelayClient posts payloads to a running site.
type RelayClient struct {
	endpoint string
	http     *http.Client
}

// NewRelayClient targets baseURL + /api/send. A nil client uses http.DefaultClient.
func NewRelayClient(baseURL string, client *http.Client) *RelayClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RelayClient{
		endpoint: strings.TrimRight(baseURL, "/") + relayPath,
		http:     client,
	}
}

func (c *RelayClient) Send(ctx context.Context, p Payload) (*Receipt, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error interface{} `json:"error"`
		}
		se := &StatusError{Code: resp.StatusCode}
		if json.Unmarshal(raw, &envelope) == nil {
			if s, ok := envelope.Error.(string); ok {
				se.Message = s
			}
		}
		return nil, se
	}

	receipt := &Receipt{Raw: raw}
	if err := json.Unmarshal(raw, receipt); err != nil {
		logger.Log.Debug("relay response is not JSON", "status", resp.StatusCode, "error", err)
	}
	return receipt, nil
}

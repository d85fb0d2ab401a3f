package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"salon-booking-api/config"

	"github.com/sirupsen/logrus"
)

// Client talks to the Paystack transaction API over HTTPS with bearer-token
// auth. It distinguishes transport failures (retryable) from gateway
// rejections (terminal) via the sentinel errors in this package.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.PaymentConfig, log *logrus.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// InitializeTransaction creates a checkout session scoped to the reference
// and amount, returning the URL the customer is redirected to.
func (c *Client) InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrRejected, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warnf("Paystack initialize transport error for %s: %+v", req.Reference, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var data InitializeResponse
	if err := c.decode(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// VerifyTransaction queries the authoritative status for a reference
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerifyData, error) {
	endpoint := c.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warnf("Paystack verify transport error for %s: %+v", reference, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var data VerifyData
	if err := c.decode(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// decode maps the status code and unwraps the response envelope.
// 2xx -> data; 404 -> not found; other 4xx -> rejected; 5xx -> unavailable.
func (c *Client) decode(resp *http.Response, out interface{}) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrTransactionNotFound
	}
	if resp.StatusCode >= 500 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(body))
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if !envelope.Status {
		return fmt.Errorf("%w: %s", ErrRejected, envelope.Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrUnavailable, err)
	}
	return nil
}

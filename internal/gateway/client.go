package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"storefront-checkout/internal/config"
)

// ErrGateway marks failures talking to the payment provider, so callers can
// tell an upstream outage apart from local faults.
var ErrGateway = errors.New("payment gateway error")

// Client is a Paystack-compatible REST client covering the three operations
// the checkout flow needs: initialize, verify and refund.
type Client struct {
	baseURL     string
	secretKey   string
	callbackURL string
	httpClient  *http.Client
	logger      *log.Logger
}

func New(cfg config.Gateway, logger *log.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		secretKey:   cfg.SecretKey,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

type InitializeInput struct {
	Reference   string
	AmountCents int64
	Currency    string
	Email       string
	OrderID     string
	PaymentID   string
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Initialize opens a payment attempt with the provider. The reference is ours
// (generated before the call) so a timeout here leaves nothing dangling: the
// local payment row stays pending and the attempt can be retried.
func (c *Client) Initialize(ctx context.Context, in InitializeInput) (*InitializeResult, error) {
	payload := map[string]interface{}{
		"amount":    in.AmountCents,
		"currency":  in.Currency,
		"email":     in.Email,
		"reference": in.Reference,
		"metadata": map[string]string{
			"order_id":   in.OrderID,
			"payment_id": in.PaymentID,
		},
	}
	if c.callbackURL != "" {
		payload["callback_url"] = c.callbackURL
	}

	var resp initializeResponse
	if err := c.post(ctx, "/transaction/initialize", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("%w: initialize declined: %s", ErrGateway, resp.Message)
	}
	return &InitializeResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

type verifyResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    outcomeData `json:"data"`
}

// Verify polls the provider for the outcome of a reference and translates the
// response into an Outcome.
func (c *Client) Verify(ctx context.Context, reference string) (Outcome, error) {
	raw, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return Outcome{}, err
	}

	var resp verifyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Outcome{}, fmt.Errorf("%w: decode verify response: %v", ErrGateway, err)
	}
	if !resp.Status {
		return Outcome{}, fmt.Errorf("%w: verify declined: %s", ErrGateway, resp.Message)
	}
	if resp.Data.Reference == "" {
		resp.Data.Reference = reference
	}
	out := outcomeFromData(resp.Data)
	out.Raw = raw
	return out, nil
}

type refundResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Refund asks the provider to return the collected amount for a reference.
func (c *Client) Refund(ctx context.Context, reference string, amountCents int64) error {
	payload := map[string]interface{}{
		"transaction": reference,
		"amount":      amountCents,
	}
	var resp refundResponse
	if err := c.post(ctx, "/refund", payload, &resp); err != nil {
		return err
	}
	if !resp.Status {
		return fmt.Errorf("%w: refund declined: %s", ErrGateway, resp.Message)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	raw, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrGateway, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrGateway, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", ErrGateway, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Printf("gateway %s %s returned %d", method, path, resp.StatusCode)
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrGateway, method, path, resp.StatusCode)
	}
	return raw, nil
}

package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// CheckoutResponse is the provider's answer to a checkout initiation.
type CheckoutResponse struct {
	CheckoutToken string `json:"checkout_token"`
	RedirectURL   string `json:"redirect_url"`
}

// Charge is the provider's view of an authorized or captured charge.
type Charge struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"order_id,omitempty"`
}

type providerError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type Config struct {
	Environment string // "sandbox" or "production"
	APIBaseURL  string
	PublicKey   string
	PrivateKey  string
}

// Client talks to the installment-payment provider over HTTP. Calls are
// fail-fast: initiation is not idempotent, so nothing is ever retried here.
// A circuit breaker sheds calls while the provider is down.
type Client struct {
	cfg     Config
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name: "payment-provider",
		}),
	}
}

// mockMode mirrors the deployed behavior: with no private key, or in the
// sandbox environment, the provider is never contacted.
func (c *Client) mockMode() bool {
	return c.cfg.Environment == "sandbox" || c.cfg.PrivateKey == ""
}

// CreateCheckout registers a checkout attempt and returns the token plus the
// hosted-checkout URL the shopper should be redirected to.
func (c *Client) CreateCheckout(ctx context.Context, payload *domain.CheckoutPayload) (*CheckoutResponse, error) {
	if c.mockMode() {
		token := fmt.Sprintf("mock_checkout_token_%d", time.Now().UnixMilli())
		return &CheckoutResponse{
			CheckoutToken: token,
			RedirectURL:   fmt.Sprintf("%s/checkout/%s", c.cfg.APIBaseURL, token),
		}, nil
	}

	body, err := c.post(ctx, "/checkout/", payload)
	if err != nil {
		return nil, err
	}

	var resp CheckoutResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal checkout response: %w", err)
	}
	return &resp, nil
}

// AuthorizeCharge exchanges a confirmed checkout token for an authorized charge.
func (c *Client) AuthorizeCharge(ctx context.Context, checkoutToken string) (*Charge, error) {
	if c.mockMode() {
		return &Charge{
			ID:       fmt.Sprintf("mock_charge_%d", time.Now().UnixMilli()),
			Status:   "authorized",
			Amount:   99900,
			Currency: "USD",
		}, nil
	}

	body, err := c.post(ctx, "/charges/", map[string]string{"checkout_token": checkoutToken})
	if err != nil {
		return nil, err
	}

	var charge Charge
	if err := json.Unmarshal(body, &charge); err != nil {
		return nil, fmt.Errorf("unmarshal charge: %w", err)
	}
	return &charge, nil
}

// CaptureCharge captures a previously authorized charge.
func (c *Client) CaptureCharge(ctx context.Context, chargeID string) (*Charge, error) {
	if c.mockMode() {
		return &Charge{
			ID:       chargeID,
			Status:   "captured",
			Amount:   99900,
			Currency: "USD",
		}, nil
	}

	body, err := c.post(ctx, fmt.Sprintf("/charges/%s/capture", chargeID), map[string]string{})
	if err != nil {
		return nil, err
	}

	var charge Charge
	if err := json.Unmarshal(body, &charge); err != nil {
		return nil, fmt.Errorf("unmarshal charge: %w", err)
	}
	return &charge, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.SetBasicAuth(c.cfg.PublicKey, c.cfg.PrivateKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("provider request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read provider response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			var pe providerError
			if err := json.Unmarshal(respBody, &pe); err == nil && pe.Error != "" {
				return nil, fmt.Errorf("provider error (status %d): %s", resp.StatusCode, pe.Error)
			}
			log.Printf("provider returned status %d: %s", resp.StatusCode, respBody)
			return nil, fmt.Errorf("provider error (status %d)", resp.StatusCode)
		}

		return respBody, nil
	})
}

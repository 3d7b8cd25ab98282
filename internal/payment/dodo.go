package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Yuvraj13742/dodo-payments/internal/apperr"
)

// DodoClient talks to the Dodo Payments REST API. All calls are
// server-side and authenticated with the secret API key.
type DodoClient struct {
	apiKey    string
	baseURL   string
	returnURL string
	cancelURL string
	http      *http.Client
}

func NewDodoClient(apiKey, baseURL, returnURL, cancelURL string) *DodoClient {
	return &DodoClient{
		apiKey:    apiKey,
		baseURL:   baseURL,
		returnURL: returnURL,
		cancelURL: cancelURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type checkoutSessionPayload struct {
	ProductCart []CartItem      `json:"product_cart"`
	Customer    Customer        `json:"customer"`
	Metadata    Correlation     `json:"metadata"`
	ReturnURL   string          `json:"return_url"`
	CancelURL   string          `json:"cancel_url"`
}

type payoutPayload struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Destination json.RawMessage `json:"destination"`
	Metadata    Correlation     `json:"metadata"`
}

func (c *DodoClient) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	payload := checkoutSessionPayload{
		ProductCart: req.Cart,
		Customer:    req.Customer,
		Metadata:    req.Metadata,
		ReturnURL:   c.returnURL,
		CancelURL:   c.cancelURL,
	}

	var session CheckoutSession
	if err := c.post(ctx, "/checkouts", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *DodoClient) CreatePayout(ctx context.Context, req PayoutRequest) (*Payout, error) {
	payload := payoutPayload{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Destination: req.Destination,
		Metadata: Correlation{
			AccountID:       req.AccountID,
			TransactionKind: "payout",
		},
	}

	var payout Payout
	if err := c.post(ctx, "/payouts", payload, &payout); err != nil {
		return nil, err
	}
	return &payout, nil
}

func (c *DodoClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.Internal("failed to encode provider request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperr.Internal("failed to build provider request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return apperr.ExternalService("payment provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperr.ExternalService(
			"payment provider request failed",
			fmt.Errorf("%s %s: status %d: %s", http.MethodPost, path, resp.StatusCode, respBody),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.ExternalService("failed to decode provider response", err)
	}
	return nil
}

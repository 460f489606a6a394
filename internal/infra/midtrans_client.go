package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type ItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Category string `json:"category,omitempty"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// TransactionRequest is the Snap create-transaction body.
type TransactionRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	ItemDetails        []ItemDetail       `json:"item_details,omitempty"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
}

type PaymentResponse struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

type TransactionStatus struct {
	OrderID           string          `json:"order_id"`
	TransactionStatus string          `json:"transaction_status"`
	Raw               json.RawMessage `json:"-"`
}

type MidtransClient struct {
	serverKey  string
	snapURL    string
	apiURL     string
	httpClient *http.Client
}

func NewMidtransClient(serverKey, snapURL, apiURL string, timeout time.Duration) *MidtransClient {
	return &MidtransClient{
		serverKey:  serverKey,
		snapURL:    snapURL,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *MidtransClient) RequestTransaction(ctx context.Context, tr TransactionRequest) (*PaymentResponse, error) {
	body, err := json.Marshal(tr)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.snapURL+"/snap/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snap request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("snap returned status %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode snap response: %w", err)
	}

	return &PaymentResponse{
		OrderID:     tr.TransactionDetails.OrderID,
		Token:       out.Token,
		RedirectURL: out.RedirectURL,
	}, nil
}

func (c *MidtransClient) GetTransactionStatus(ctx context.Context, orderID string) (*TransactionStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v2/%s/status", c.apiURL, orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status endpoint returned %d: %s", resp.StatusCode, raw)
	}

	ts := TransactionStatus{Raw: json.RawMessage(raw)}
	if err := json.Unmarshal(raw, &ts); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &ts, nil
}

func (c *MidtransClient) authorize(req *http.Request) {
	req.SetBasicAuth(c.serverKey, "")
	req.Header.Set("Accept", "application/json")
}

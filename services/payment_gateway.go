package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	GatewaySuccess   = "success"
	GatewayFailed    = "failed"
	GatewayAbandoned = "abandoned"
)

type PaymentInit struct {
	Email       string
	AmountMinor int64
	Currency    string
	Reference   string
	CallbackURL string
	Metadata    map[string]interface{}
}

type PaymentSession struct {
	AuthorizationURL string
	Reference        string
}

type PaymentVerification struct {
	Reference   string
	Status      string
	AmountMinor int64
	PaidAt      *time.Time
}

// PaymentGateway is the hosted payment page the public booking flow redirects to.
type PaymentGateway interface {
	Initialize(ctx context.Context, in PaymentInit) (PaymentSession, error)
	Verify(ctx context.Context, reference string) (PaymentVerification, error)
}

type PaystackClient struct {
	SecretKey string
	BaseURL   string
	HTTP      *http.Client
}

func NewPaystackClient(secretKey, baseURL string) *PaystackClient {
	return &PaystackClient{
		SecretKey: secretKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *PaystackClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	var env paystackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrPaymentGateway, err)
	}
	if resp.StatusCode >= 300 || !env.Status {
		return fmt.Errorf("%w: %s (status %d)", ErrPaymentGateway, env.Message, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %v", ErrPaymentGateway, err)
		}
	}
	return nil
}

func (c *PaystackClient) Initialize(ctx context.Context, in PaymentInit) (PaymentSession, error) {
	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}
	err := c.do(ctx, http.MethodPost, "/transaction/initialize", map[string]interface{}{
		"email":        in.Email,
		"amount":       in.AmountMinor,
		"currency":     in.Currency,
		"reference":    in.Reference,
		"callback_url": in.CallbackURL,
		"metadata":     in.Metadata,
	}, &data)
	if err != nil {
		return PaymentSession{}, err
	}
	return PaymentSession{AuthorizationURL: data.AuthorizationURL, Reference: data.Reference}, nil
}

func (c *PaystackClient) Verify(ctx context.Context, reference string) (PaymentVerification, error) {
	var data struct {
		Status    string     `json:"status"`
		Reference string     `json:"reference"`
		Amount    int64      `json:"amount"`
		PaidAt    *time.Time `json:"paid_at"`
	}
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return PaymentVerification{}, err
	}
	return PaymentVerification{Reference: data.Reference, Status: data.Status, AmountMinor: data.Amount, PaidAt: data.PaidAt}, nil
}

// MockGateway is used when no Paystack key is configured: every payment succeeds.
type MockGateway struct{}

func (MockGateway) Initialize(_ context.Context, in PaymentInit) (PaymentSession, error) {
	log.Printf("[MOCK PAYMENT] ref:%s amount:%d %s email:%s", in.Reference, in.AmountMinor, in.Currency, in.Email)
	u, err := url.Parse(in.CallbackURL)
	if err != nil {
		return PaymentSession{}, err
	}
	q := u.Query()
	q.Set("reference", in.Reference)
	q.Set("trxref", in.Reference)
	u.RawQuery = q.Encode()
	return PaymentSession{AuthorizationURL: u.String(), Reference: in.Reference}, nil
}

func (MockGateway) Verify(_ context.Context, reference string) (PaymentVerification, error) {
	now := time.Now().UTC()
	return PaymentVerification{Reference: reference, Status: GatewaySuccess, PaidAt: &now}, nil
}

// NewPaymentGateway returns Paystack when a secret key is set, otherwise the mock gateway.
func NewPaymentGateway(secretKey, baseURL string) PaymentGateway {
	if secretKey == "" {
		log.Println("ℹ️  PAYSTACK_SECRET_KEY not set; payments are mocked")
		return MockGateway{}
	}
	return NewPaystackClient(secretKey, baseURL)
}

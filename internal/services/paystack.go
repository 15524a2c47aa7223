package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const paystackAPI = "https://api.paystack.co"

// PaystackCustomField is one metadata field attached by the donation
// form (donor name, method, phone).
type PaystackCustomField struct {
	DisplayName  string      `json:"display_name"`
	VariableName string      `json:"variable_name"`
	Value        interface{} `json:"value"`
}

type PaystackMetadata struct {
	CustomFields []PaystackCustomField `json:"custom_fields"`
}

// PaystackTransaction is the subset of Paystack's verify payload we
// persist.
type PaystackTransaction struct {
	Status          string           `json:"status"`
	Reference       string           `json:"reference"`
	Amount          int64            `json:"amount"` // minor units
	Currency        string           `json:"currency"`
	Channel         string           `json:"channel"`
	GatewayResponse string           `json:"gateway_response"`
	PaidAt          *time.Time       `json:"paid_at"`
	Metadata        PaystackMetadata `json:"metadata"`
	Customer        struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// Field looks up a custom metadata field by variable name.
func (t *PaystackTransaction) Field(name string) string {
	for _, f := range t.Metadata.CustomFields {
		if f.VariableName == name {
			if s, ok := f.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

type PaystackVerifyResponse struct {
	Status  bool                 `json:"status"`
	Message string               `json:"message"`
	Data    *PaystackTransaction `json:"data"`
}

// PaystackClient wraps the two gateway calls this service needs:
// transaction verification and webhook signature checks.
type PaystackClient struct {
	SecretKey string
	HTTP      *http.Client
}

func NewPaystackClient(secretKey string) *PaystackClient {
	return &PaystackClient{
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyTransaction calls GET /transaction/verify/{reference}.
func (p *PaystackClient) VerifyTransaction(reference string) (*PaystackVerifyResponse, error) {
	if p.SecretKey == "" {
		return nil, fmt.Errorf("paystack secret key not configured")
	}

	req, err := http.NewRequest(http.MethodGet,
		paystackAPI+"/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	res, err := p.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var payload PaystackVerifyResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("paystack verify: bad response: %w", err)
	}
	if res.StatusCode >= 400 {
		return &payload, fmt.Errorf("paystack verify: status %d: %s", res.StatusCode, payload.Message)
	}
	return &payload, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header: an
// HMAC-SHA512 of the raw request body keyed with the secret.
func (p *PaystackClient) VerifyWebhookSignature(body []byte, signature string) bool {
	if p.SecretKey == "" || signature == "" {
		return false
	}
	h := hmac.New(sha512.New, []byte(p.SecretKey))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// PaystackWebhookEvent is the envelope Paystack POSTs to the webhook.
type PaystackWebhookEvent struct {
	Event string               `json:"event"`
	Data  *PaystackTransaction `json:"data"`
}

package paystack

import (
	"encoding/json"
	"time"
)

// apiEnvelope is the wrapper every gateway response uses
type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeRequest starts a hosted checkout session. Amount is in the
// currency subunit (kobo/cents).
type InitializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// InitializeResponse carries the redirect URL for the customer
type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction statuses the gateway reports on verify
const (
	TransactionSuccess   = "success"
	TransactionPending   = "pending"
	TransactionFailed    = "failed"
	TransactionAbandoned = "abandoned"
)

// VerifyData is the authoritative transaction state. Amount is in subunits.
type VerifyData struct {
	Status    string     `json:"status"`
	Reference string     `json:"reference"`
	Amount    int64      `json:"amount"`
	Channel   string     `json:"channel"`
	Currency  string     `json:"currency"`
	PaidAt    *time.Time `json:"paid_at"`
}

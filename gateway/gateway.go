package gateway

import (
	"context"
	"fmt"
)

// API abstracts the payment gateway operations needed by the service layer.
// Implemented by Client against the MercadoPago REST API; tests inject fakes.
type API interface {
	CreatePreference(ctx context.Context, pref Preference) (*PreferenceResult, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
}

// Error reports a gateway-side failure (network, validation or not-found).
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway error (status %d): %s", e.StatusCode, e.Message)
}

type Item struct {
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type Payer struct {
	Email string `json:"email"`
}

// Preference describes an intended purchase submitted to obtain a payable
// checkout link. Ephemeral, never persisted.
type Preference struct {
	Items             []Item   `json:"items"`
	Payer             *Payer   `json:"payer,omitempty"`
	BackURLs          BackURLs `json:"back_urls"`
	AutoReturn        string   `json:"auto_return,omitempty"`
	NotificationURL   string   `json:"notification_url,omitempty"`
	ExternalReference string   `json:"external_reference,omitempty"`
	MarketplaceFee    float64  `json:"marketplace_fee,omitempty"`
}

// PreferenceResult is the gateway's answer to a preference creation. The
// redirect URL has moved between fields across SDK revisions, so callers must
// go through CheckoutURL instead of reading a field directly.
type PreferenceResult struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// CheckoutURL extracts the payable redirect URL with an ordered fallback:
// init_point, then sandbox_init_point, then a redirect derived from the
// preference id. Empty when the response carried neither a URL nor an id.
func (p *PreferenceResult) CheckoutURL() string {
	if p.InitPoint != "" {
		return p.InitPoint
	}
	if p.SandboxInitPoint != "" {
		return p.SandboxInitPoint
	}
	if p.ID != "" {
		return "https://www.mercadopago.com/checkout/v1/redirect?pref_id=" + p.ID
	}
	return ""
}

// Payment is the gateway's view of a payment, fetched when a webhook event
// is re-verified before persisting.
type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	TransactionAmount float64 `json:"transaction_amount"`
	ExternalReference string  `json:"external_reference"`
	DateCreated       string  `json:"date_created"`
	Payer             Payer   `json:"payer"`
}

// StatusApproved is the only payment status that results in a ledger write.
const StatusApproved = "approved"

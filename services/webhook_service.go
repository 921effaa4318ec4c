package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/solidario/pagosbackend/gateway"
	"github.com/solidario/pagosbackend/models"
	"github.com/solidario/pagosbackend/repository"
)

// WebhookEvent is the gateway's notification payload, already decoded.
type WebhookEvent struct {
	Type      string
	Action    string
	PaymentID string
	RawBody   string
}

// WebhookService persists payment records notified by the gateway. It is
// memoryless between invocations; the caller acks the gateway regardless of
// the returned error.
type WebhookService struct {
	payments repository.PaymentRepository
	gw       gateway.API

	// Verify controls whether the payment is re-fetched from the gateway and
	// required to be approved before persisting. When false the event payload
	// is trusted as-is, which matches the oldest revision's behavior.
	Verify bool
}

func NewWebhookService(payments repository.PaymentRepository, gw gateway.API, verify bool) *WebhookService {
	return &WebhookService{payments: payments, gw: gw, Verify: verify}
}

// Process handles a single webhook event. Non-payment events and events
// without an id are ignored without touching the ledger.
func (s *WebhookService) Process(ctx context.Context, event WebhookEvent) error {
	if event.Type != "payment" || event.PaymentID == "" {
		return nil
	}

	record := &models.Payment{
		PaymentID: event.PaymentID,
		Status:    "received",
		RawEvent:  event.RawBody,
	}

	if s.Verify {
		payment, err := s.gw.GetPayment(ctx, event.PaymentID)
		if err != nil {
			return fmt.Errorf("failed to verify payment %s: %w", event.PaymentID, err)
		}
		if payment.Status != gateway.StatusApproved {
			log.Printf("webhook: payment %s has status %q, not persisted", event.PaymentID, payment.Status)
			return nil
		}
		alias, _ := DecodeExternalReference(payment.ExternalReference)
		record.PaymentID = strconv.FormatInt(payment.ID, 10)
		record.Status = payment.Status
		record.Amount = payment.TransactionAmount
		record.PayerEmail = payment.Payer.Email
		record.Alias = alias
	}

	created, err := s.payments.Create(record)
	if err != nil {
		return fmt.Errorf("failed to persist payment %s: %w", record.PaymentID, err)
	}
	if !created {
		log.Printf("webhook: payment %s already recorded, event ignored", record.PaymentID)
	}
	return nil
}

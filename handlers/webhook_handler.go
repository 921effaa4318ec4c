package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/solidario/pagosbackend/services"
)

// WebhookHandler receives gateway payment notifications. It always responds
// 200 "OK": the gateway's retry contract expects an acknowledgement even when
// persistence fails internally, so failures are logged and swallowed.
type WebhookHandler struct {
	Svc *services.WebhookService

	// Secret enables HMAC validation of the x-signature header when set.
	Secret string
}

func NewWebhookHandler(svc *services.WebhookService, secret string) *WebhookHandler {
	return &WebhookHandler{Svc: svc, Secret: secret}
}

type webhookPayload struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Receive handles POST /webhook.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		log.Printf("webhook: failed to read body: %v", err)
		ackOK(w)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("webhook: invalid payload: %v", err)
		ackOK(w)
		return
	}

	if h.Secret != "" && !h.verifySignature(r, payload.Data.ID) {
		log.Printf("webhook: invalid signature for payment %q, event dropped", payload.Data.ID)
		ackOK(w)
		return
	}

	event := services.WebhookEvent{
		Type:      payload.Type,
		Action:    payload.Action,
		PaymentID: payload.Data.ID,
		RawBody:   string(body),
	}
	if err := h.Svc.Process(r.Context(), event); err != nil {
		log.Printf("webhook: processing failed: %v", err)
	}

	ackOK(w)
}

func ackOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// verifySignature checks the gateway's x-signature header
// ("ts=<unix>,v1=<hex hmac>") against the documented manifest
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func (h *WebhookHandler) verifySignature(r *http.Request, dataID string) bool {
	signature := r.Header.Get("x-signature")
	if signature == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(signature, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, r.Header.Get("x-request-id"), ts)
	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v1))
}

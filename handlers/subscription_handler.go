package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solidario/pagosbackend/gateway"
	"github.com/solidario/pagosbackend/services"
)

// SubscriptionHandler runs the referred-subscription workflow.
type SubscriptionHandler struct {
	Svc *services.SubscriptionService
}

func NewSubscriptionHandler(svc *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc}
}

// CreateSubscription handles POST /suscripcion/{alias}.
func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	referrerAlias := chi.URLParam(r, "alias")

	var input services.SubscriptionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "payload inválido")
		return
	}

	result, err := h.Svc.Subscribe(r.Context(), referrerAlias, input)
	if err != nil {
		h.writeSubscribeError(w, referrerAlias, err)
		return
	}

	WriteJSON(w, http.StatusCreated, result)
}

func (h *SubscriptionHandler) writeSubscribeError(w http.ResponseWriter, referrerAlias string, err error) {
	var gwErr *gateway.Error
	switch {
	case errors.Is(err, services.ErrValidation):
		WriteError(w, http.StatusBadRequest, "usuario_id y email son obligatorios")
	case errors.Is(err, services.ErrAliasNotFound):
		WriteError(w, http.StatusNotFound, "alias no encontrado")
	case errors.As(err, &gwErr):
		log.Printf("gateway failure during subscription for referrer %q: %v", referrerAlias, err)
		WriteError(w, http.StatusInternalServerError, "no se pudo crear la preferencia: "+gwErr.Message)
	default:
		log.Printf("subscription failure for referrer %q: %v", referrerAlias, err)
		WriteError(w, http.StatusInternalServerError, "error interno del servidor")
	}
}

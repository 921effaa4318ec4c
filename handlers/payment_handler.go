package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solidario/pagosbackend/gateway"
	"github.com/solidario/pagosbackend/services"
)

// PaymentHandler creates one-off payment preferences and resolves aliases to
// their stored payment links.
type PaymentHandler struct {
	Gateway gateway.API
	Builder *services.PreferenceBuilder
	Svc     *services.SubscriptionService
}

func NewPaymentHandler(gw gateway.API, builder *services.PreferenceBuilder, svc *services.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{Gateway: gw, Builder: builder, Svc: svc}
}

type initPointResponse struct {
	InitPoint string `json:"init_point"`
}

// CreatePreference handles GET /pagar/{refId}.
func (h *PaymentHandler) CreatePreference(w http.ResponseWriter, r *http.Request) {
	refID := chi.URLParam(r, "refId")

	pref := h.Builder.OneOff(refID)
	result, err := h.Gateway.CreatePreference(r.Context(), pref)
	if err != nil {
		log.Printf("error creating preference for ref %q: %v", refID, err)
		WriteError(w, http.StatusInternalServerError, "no se pudo crear la preferencia")
		return
	}

	WriteJSON(w, http.StatusOK, initPointResponse{InitPoint: result.CheckoutURL()})
}

// LookupAlias handles GET /pagar/alias/{alias}. Unknown aliases are a 404,
// not a 200 with an error body.
func (h *PaymentHandler) LookupAlias(w http.ResponseWriter, r *http.Request) {
	alias := chi.URLParam(r, "alias")

	initPoint, err := h.Svc.Lookup(alias)
	if err != nil {
		if errors.Is(err, services.ErrAliasNotFound) {
			WriteError(w, http.StatusNotFound, "alias no encontrado")
			return
		}
		log.Printf("error looking up alias %q: %v", alias, err)
		WriteError(w, http.StatusInternalServerError, "error interno del servidor")
		return
	}

	WriteJSON(w, http.StatusOK, initPointResponse{InitPoint: initPoint})
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the public HTTP surface on r.
func RegisterRoutes(
	r chi.Router,
	payment *PaymentHandler,
	subscription *SubscriptionHandler,
	webhook *WebhookHandler,
	report *ReportHandler,
) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Backend Sistema Solidario activo."))
	})

	r.Route("/pagar", func(r chi.Router) {
		r.Get("/alias/{alias}", payment.LookupAlias)
		r.Get("/{refId}", payment.CreatePreference)
	})

	r.Post("/suscripcion/{alias}", subscription.CreateSubscription)
	r.Post("/webhook", webhook.Receive)

	r.Get("/reportes/pagos", report.PaymentSummary)
}

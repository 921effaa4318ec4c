package handlers

import (
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/solidario/pagosbackend/database"
)

// ReportHandler exposes read-only aggregates over persisted payments.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// PaymentSummary handles GET /reportes/pagos.
func (h *ReportHandler) PaymentSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := database.PaymentSummary(h.DB)
	if err != nil {
		log.Printf("error building payment summary: %v", err)
		WriteError(w, http.StatusInternalServerError, "error interno del servidor")
		return
	}
	if summary == nil {
		summary = []database.PaymentSummaryRow{}
	}
	WriteJSON(w, http.StatusOK, summary)
}

package repository

import (
	"github.com/solidario/pagosbackend/models"
)

// RegistrantRepository defines the methods for registrant ledger operations
type RegistrantRepository interface {
	Create(registrant *models.Registrant) error
	// CreateWithUniqueAlias inserts the registrant, regenerating its alias a
	// bounded number of times if the store rejects it as a duplicate.
	CreateWithUniqueAlias(registrant *models.Registrant) error
	GetByAlias(alias string) (*models.Registrant, error)
	GetByUsuarioID(usuarioID string) (*models.Registrant, error)
	ListAll() ([]models.Registrant, error)
}

// PaymentRepository defines the methods for payment record operations
type PaymentRepository interface {
	// Create inserts the payment record. Returns created=false when a record
	// with the same payment id already exists (redelivered webhook event).
	Create(payment *models.Payment) (created bool, err error)
	GetByPaymentID(paymentID string) (*models.Payment, error)
	ListAll() ([]models.Payment, error)
}

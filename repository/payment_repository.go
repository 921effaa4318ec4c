package repository

import (
	"gorm.io/gorm"

	"github.com/solidario/pagosbackend/models"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(payment *models.Payment) (bool, error) {
	err := r.db.Create(payment).Error
	if err == nil {
		return true, nil
	}
	if isDuplicateAliasError(err) {
		// redelivered event, the record already exists
		return false, nil
	}
	return false, err
}

func (r *GormPaymentRepository) GetByPaymentID(paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("payment_id = ?", paymentID).First(&payment).Error
	return &payment, err
}

func (r *GormPaymentRepository) ListAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("id desc").Find(&payments).Error
	return payments, err
}

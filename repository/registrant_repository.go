package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/solidario/pagosbackend/models"
	"github.com/solidario/pagosbackend/token"
)

// aliasRetryLimit bounds alias regeneration when the store reports a
// duplicate. Collisions are astronomically unlikely, so hitting the bound
// means something other than entropy is wrong.
const aliasRetryLimit = 3

type GormRegistrantRepository struct {
	db *gorm.DB
}

func NewGormRegistrantRepository(db *gorm.DB) RegistrantRepository {
	return &GormRegistrantRepository{db: db}
}

func (r *GormRegistrantRepository) Create(registrant *models.Registrant) error {
	return r.db.Create(registrant).Error
}

func (r *GormRegistrantRepository) CreateWithUniqueAlias(registrant *models.Registrant) error {
	var err error
	for attempt := 0; attempt <= aliasRetryLimit; attempt++ {
		if attempt > 0 {
			registrant.Alias = token.NewAlias(registrant.UsuarioID)
		}
		err = r.db.Create(registrant).Error
		if err == nil {
			return nil
		}
		if !isDuplicateAliasError(err) {
			return err
		}
	}
	return fmt.Errorf("alias still duplicated after %d regenerations: %w", aliasRetryLimit, err)
}

func (r *GormRegistrantRepository) GetByAlias(alias string) (*models.Registrant, error) {
	var registrant models.Registrant
	err := r.db.Where("alias = ?", alias).First(&registrant).Error
	return &registrant, err
}

func (r *GormRegistrantRepository) GetByUsuarioID(usuarioID string) (*models.Registrant, error) {
	var registrant models.Registrant
	err := r.db.Where("usuario_id = ?", usuarioID).First(&registrant).Error
	return &registrant, err
}

func (r *GormRegistrantRepository) ListAll() ([]models.Registrant, error) {
	var registrants []models.Registrant
	err := r.db.Order("id desc").Find(&registrants).Error
	return registrants, err
}

func isDuplicateAliasError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite without error translation
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}

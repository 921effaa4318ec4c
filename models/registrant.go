package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/solidario/pagosbackend/token"
)

// Registrant is a user enrolled through the referral flow. Its alias is the
// public lookup key for the checkout/affiliate link and never changes once
// the row exists.
type Registrant struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UsuarioID      string    `json:"usuario_id" gorm:"not null;index"`
	Email          string    `json:"email" gorm:"not null"`
	Alias          string    `json:"alias" gorm:"uniqueIndex;not null"`
	InitPoint      string    `json:"init_point"`
	PatrocinadorID *string   `json:"patrocinador_id,omitempty"` // nullable, root registrants have none
	ReferrerAlias  string    `json:"referrer_alias,omitempty" gorm:"index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate generates an alias if the caller did not supply one.
func (r *Registrant) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Alias == "" {
		r.Alias = token.NewAlias(r.UsuarioID)
	}
	return
}

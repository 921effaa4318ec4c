package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/solidario/pagosbackend/gateway"
	"github.com/solidario/pagosbackend/mailer"
	"github.com/solidario/pagosbackend/models"
	"github.com/solidario/pagosbackend/repository"
	"github.com/solidario/pagosbackend/token"
)

type SubscriptionInput struct {
	UsuarioID      string  `json:"usuario_id"`
	Email          string  `json:"email"`
	PatrocinadorID *string `json:"patrocinador_id,omitempty"`
}

type SubscriptionResult struct {
	InitPoint     string             `json:"init_point"`
	AffiliateLink string             `json:"enlaceAfiliado"`
	Registrant    *models.Registrant `json:"usuario"`
}

// SubscriptionService runs the referred-subscription workflow: validate,
// resolve the referrer, create the gateway preference, persist the new
// registrant and send the affiliate link. Strictly sequential; a failure
// aborts the remaining steps except for notification, which is best effort.
type SubscriptionService struct {
	registrants repository.RegistrantRepository
	gw          gateway.API
	builder     *PreferenceBuilder
	notifier    mailer.Notifier
}

func NewSubscriptionService(
	registrants repository.RegistrantRepository,
	gw gateway.API,
	builder *PreferenceBuilder,
	notifier mailer.Notifier,
) *SubscriptionService {
	return &SubscriptionService{
		registrants: registrants,
		gw:          gw,
		builder:     builder,
		notifier:    notifier,
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, referrerAlias string, in SubscriptionInput) (*SubscriptionResult, error) {
	if in.UsuarioID == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: usuario_id and email are required", ErrValidation)
	}

	referrer, err := s.registrants.GetByAlias(referrerAlias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAliasNotFound
		}
		return nil, fmt.Errorf("failed to resolve referrer alias: %w", err)
	}

	// the alias is generated before the gateway call so the preference's
	// external reference is keyed by it; a failed insert leaves a preference
	// that can be reconciled against the missing alias
	newAlias := token.NewAlias(in.UsuarioID)

	pref := s.builder.Subscription(in.UsuarioID, in.Email, newAlias, referrer.Alias)
	result, err := s.gw.CreatePreference(ctx, pref)
	if err != nil {
		return nil, err
	}
	initPoint := result.CheckoutURL()

	patrocinadorID := in.PatrocinadorID
	if patrocinadorID == nil {
		id := referrer.UsuarioID
		patrocinadorID = &id
	}

	registrant := &models.Registrant{
		UsuarioID:      in.UsuarioID,
		Email:          in.Email,
		Alias:          newAlias,
		InitPoint:      initPoint,
		PatrocinadorID: patrocinadorID,
		ReferrerAlias:  referrer.Alias,
	}
	if err := s.registrants.CreateWithUniqueAlias(registrant); err != nil {
		return nil, fmt.Errorf("failed to persist registrant: %w", err)
	}

	affiliateLink := s.builder.AffiliateLink(registrant.Alias)

	if s.notifier != nil {
		if err := s.notifier.SendAffiliateLink(registrant.Email, registrant.Alias, affiliateLink); err != nil {
			log.Printf("warning: affiliate link email not sent for alias %s: %v", registrant.Alias, err)
		}
	}

	return &SubscriptionResult{
		InitPoint:     initPoint,
		AffiliateLink: affiliateLink,
		Registrant:    registrant,
	}, nil
}

// Lookup resolves an alias to its stored payment link.
func (s *SubscriptionService) Lookup(alias string) (string, error) {
	registrant, err := s.registrants.GetByAlias(alias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAliasNotFound
		}
		return "", fmt.Errorf("failed to look up alias: %w", err)
	}
	return registrant.InitPoint, nil
}

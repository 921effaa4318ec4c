package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/solidario/pagosbackend/config"
	"github.com/solidario/pagosbackend/gateway"
)

// PreferenceBuilder assembles gateway preferences from caller input and
// static catalog configuration.
type PreferenceBuilder struct {
	cfg config.Config
}

func NewPreferenceBuilder(cfg config.Config) *PreferenceBuilder {
	return &PreferenceBuilder{cfg: cfg}
}

// OneOff builds the fixed-catalog preference for GET /pagar/{refId}.
func (b *PreferenceBuilder) OneOff(refID string) gateway.Preference {
	if refID == "" {
		refID = "sin-ref"
	}
	return gateway.Preference{
		Items: []gateway.Item{
			{Title: b.cfg.ItemTitle, UnitPrice: b.cfg.ItemPrice, Quantity: 1},
		},
		BackURLs:          b.backURLs(refID),
		AutoReturn:        "approved",
		NotificationURL:   b.cfg.BaseURL + "/webhook",
		ExternalReference: refID,
	}
}

// Subscription builds the referred-subscription preference. The referral fee
// is withheld from the gross price as the referrer's commission, and the
// external reference embeds the registrant id, its pre-generated alias and
// the referrer's alias so webhook events can be tied back to the ledger.
func (b *PreferenceBuilder) Subscription(usuarioID, email, newAlias, referrerAlias string) gateway.Preference {
	return gateway.Preference{
		Items: []gateway.Item{
			{Title: b.cfg.ItemTitle + " - Suscripción", UnitPrice: b.cfg.SubscriptionPrice, Quantity: 1},
		},
		Payer:             &gateway.Payer{Email: email},
		BackURLs:          b.backURLs(usuarioID),
		AutoReturn:        "approved",
		NotificationURL:   b.cfg.BaseURL + "/webhook",
		ExternalReference: EncodeExternalReference(usuarioID, newAlias, referrerAlias),
		MarketplaceFee:    b.cfg.ReferralFee,
	}
}

func (b *PreferenceBuilder) backURLs(ref string) gateway.BackURLs {
	return gateway.BackURLs{
		Success: fmt.Sprintf("%s/gracias?ref=%s", b.cfg.FrontURL, url.QueryEscape(ref)),
		Failure: b.cfg.FrontURL + "/error",
		Pending: b.cfg.FrontURL + "/pendiente",
	}
}

// AffiliateLink composes the public link registrants share.
func (b *PreferenceBuilder) AffiliateLink(alias string) string {
	return b.cfg.FrontURL + "/suscripcion/" + alias
}

// EncodeExternalReference packs the fields carried through the gateway and
// back on webhook events.
func EncodeExternalReference(usuarioID, alias, referrerAlias string) string {
	return strings.Join([]string{usuarioID, alias, referrerAlias}, "|")
}

// DecodeExternalReference recovers the registrant alias from an external
// reference. One-off preferences carry a bare reference id; those are
// returned as-is with ok=false.
func DecodeExternalReference(extRef string) (alias string, ok bool) {
	parts := strings.Split(extRef, "|")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1], true
	}
	return extRef, false
}

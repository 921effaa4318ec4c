package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOneOffPreference(t *testing.T) {
	b := NewPreferenceBuilder(testConfig())
	pref := b.OneOff("juan-001")

	require.Len(t, pref.Items, 1)
	require.Equal(t, "Sistema Solidario", pref.Items[0].Title)
	require.Equal(t, 2500.0, pref.Items[0].UnitPrice)
	require.Equal(t, 1, pref.Items[0].Quantity)
	require.Equal(t, "juan-001", pref.ExternalReference)
	require.Equal(t, "approved", pref.AutoReturn)
	require.Equal(t, "http://localhost:8080/webhook", pref.NotificationURL)
	require.Equal(t, "https://solidario.example/gracias?ref=juan-001", pref.BackURLs.Success)
	require.Equal(t, "https://solidario.example/error", pref.BackURLs.Failure)
	require.Equal(t, "https://solidario.example/pendiente", pref.BackURLs.Pending)
	require.Nil(t, pref.Payer)
	require.Zero(t, pref.MarketplaceFee)
}

func TestOneOffPreferenceEmptyRef(t *testing.T) {
	b := NewPreferenceBuilder(testConfig())
	pref := b.OneOff("")
	require.Equal(t, "sin-ref", pref.ExternalReference)
}

func TestSubscriptionPreference(t *testing.T) {
	b := NewPreferenceBuilder(testConfig())
	pref := b.Subscription("nuevo-001", "nuevo@example.com", "alias-nuevo-001-x", "alias-padrino")

	require.Equal(t, 3000.0, pref.Items[0].UnitPrice)
	require.NotNil(t, pref.Payer)
	require.Equal(t, "nuevo@example.com", pref.Payer.Email)
	require.Equal(t, 500.0, pref.MarketplaceFee)
	require.Equal(t, "nuevo-001|alias-nuevo-001-x|alias-padrino", pref.ExternalReference)
}

func TestExternalReferenceRoundTrip(t *testing.T) {
	extRef := EncodeExternalReference("nuevo-001", "alias-x", "alias-padrino")
	alias, ok := DecodeExternalReference(extRef)
	require.True(t, ok)
	require.Equal(t, "alias-x", alias)

	// one-off references carry no alias
	alias, ok = DecodeExternalReference("juan-001")
	require.False(t, ok)
	require.Equal(t, "juan-001", alias)
}

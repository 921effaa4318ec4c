package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/solidario/pagosbackend/config"
	"github.com/solidario/pagosbackend/database"
	"github.com/solidario/pagosbackend/gateway"
	"github.com/solidario/pagosbackend/models"
	"github.com/solidario/pagosbackend/repository"
)

type fakeGateway struct {
	prefResult *gateway.PreferenceResult
	prefErr    error
	payment    *gateway.Payment
	paymentErr error

	createCalls int
	lastPref    gateway.Preference
}

func (f *fakeGateway) CreatePreference(ctx context.Context, pref gateway.Preference) (*gateway.PreferenceResult, error) {
	f.createCalls++
	f.lastPref = pref
	if f.prefErr != nil {
		return nil, f.prefErr
	}
	return f.prefResult, nil
}

func (f *fakeGateway) GetPayment(ctx context.Context, id string) (*gateway.Payment, error) {
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return f.payment, nil
}

type fakeNotifier struct {
	err   error
	calls int
	to    string
	link  string
}

func (f *fakeNotifier) SendAffiliateLink(to, alias, affiliateLink string) error {
	f.calls++
	f.to = to
	f.link = affiliateLink
	return f.err
}

func testConfig() config.Config {
	return config.Config{
		BaseURL:           "http://localhost:8080",
		FrontURL:          "https://solidario.example",
		ItemTitle:         "Sistema Solidario",
		ItemPrice:         2500,
		SubscriptionPrice: 3000,
		ReferralFee:       500,
	}
}

func setupLedger(t *testing.T) (repository.RegistrantRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.InitGormDB(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return repository.NewGormRegistrantRepository(db), db
}

func seedReferrer(t *testing.T, repo repository.RegistrantRepository) *models.Registrant {
	t.Helper()
	referrer := &models.Registrant{
		UsuarioID: "padrino-001",
		Email:     "padrino@example.com",
		InitPoint: "https://mp.example/checkout/padrino",
	}
	require.NoError(t, repo.Create(referrer))
	return referrer
}

func TestSubscribeHappyPath(t *testing.T) {
	repo, db := setupLedger(t)
	referrer := seedReferrer(t, repo)

	gw := &fakeGateway{prefResult: &gateway.PreferenceResult{ID: "pref-9", InitPoint: "https://mp.example/checkout/9"}}
	notifier := &fakeNotifier{}
	svc := NewSubscriptionService(repo, gw, NewPreferenceBuilder(testConfig()), notifier)

	result, err := svc.Subscribe(context.Background(), referrer.Alias, SubscriptionInput{
		UsuarioID: "nuevo-001",
		Email:     "nuevo@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "https://mp.example/checkout/9", result.InitPoint)

	// the new registrant's alias must differ from the referrer's
	require.NotEqual(t, referrer.Alias, result.Registrant.Alias)
	require.Contains(t, result.AffiliateLink, result.Registrant.Alias)
	require.True(t, strings.HasPrefix(result.AffiliateLink, "https://solidario.example/suscripcion/"))

	// referrer linkage defaults to the referrer's usuario_id
	require.NotNil(t, result.Registrant.PatrocinadorID)
	require.Equal(t, "padrino-001", *result.Registrant.PatrocinadorID)
	require.Equal(t, referrer.Alias, result.Registrant.ReferrerAlias)

	// row persisted
	var count int64
	require.NoError(t, db.Model(&models.Registrant{}).Where("usuario_id = ?", "nuevo-001").Count(&count).Error)
	require.Equal(t, int64(1), count)

	// preference carried the subscription specifics
	require.Equal(t, 1, gw.createCalls)
	require.NotNil(t, gw.lastPref.Payer)
	require.Equal(t, "nuevo@example.com", gw.lastPref.Payer.Email)
	require.Equal(t, 500.0, gw.lastPref.MarketplaceFee)
	require.Contains(t, gw.lastPref.ExternalReference, result.Registrant.Alias)

	// notification went out
	require.Equal(t, 1, notifier.calls)
	require.Equal(t, "nuevo@example.com", notifier.to)
	require.Equal(t, result.AffiliateLink, notifier.link)
}

func TestSubscribeMissingFields(t *testing.T) {
	repo, db := setupLedger(t)
	referrer := seedReferrer(t, repo)

	gw := &fakeGateway{prefResult: &gateway.PreferenceResult{InitPoint: "https://mp.example/x"}}
	svc := NewSubscriptionService(repo, gw, NewPreferenceBuilder(testConfig()), &fakeNotifier{})

	for _, in := range []SubscriptionInput{
		{Email: "solo-email@example.com"},
		{UsuarioID: "solo-usuario"},
		{},
	} {
		_, err := svc.Subscribe(context.Background(), referrer.Alias, in)
		require.ErrorIs(t, err, ErrValidation)
	}

	require.Zero(t, gw.createCalls, "validation failures must not reach the gateway")

	var count int64
	require.NoError(t, db.Model(&models.Registrant{}).Count(&count).Error)
	require.Equal(t, int64(1), count, "only the seeded referrer may exist")
}

func TestSubscribeUnknownReferrer(t *testing.T) {
	repo, db := setupLedger(t)
	seedReferrer(t, repo)

	gw := &fakeGateway{prefResult: &gateway.PreferenceResult{InitPoint: "https://mp.example/x"}}
	svc := NewSubscriptionService(repo, gw, NewPreferenceBuilder(testConfig()), &fakeNotifier{})

	_, err := svc.Subscribe(context.Background(), "alias-inexistente", SubscriptionInput{
		UsuarioID: "nuevo-001",
		Email:     "nuevo@example.com",
	})
	require.ErrorIs(t, err, ErrAliasNotFound)
	require.Zero(t, gw.createCalls, "unknown referrer must stop before the gateway call")

	var count int64
	require.NoError(t, db.Model(&models.Registrant{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSubscribeGatewayFailure(t *testing.T) {
	repo, db := setupLedger(t)
	referrer := seedReferrer(t, repo)

	gw := &fakeGateway{prefErr: &gateway.Error{StatusCode: http.StatusBadRequest, Message: "invalid items"}}
	notifier := &fakeNotifier{}
	svc := NewSubscriptionService(repo, gw, NewPreferenceBuilder(testConfig()), notifier)

	_, err := svc.Subscribe(context.Background(), referrer.Alias, SubscriptionInput{
		UsuarioID: "nuevo-001",
		Email:     "nuevo@example.com",
	})

	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	require.Zero(t, notifier.calls, "no email after a gateway failure")

	var count int64
	require.NoError(t, db.Model(&models.Registrant{}).Count(&count).Error)
	require.Equal(t, int64(1), count, "no ledger write after a gateway failure")
}

func TestSubscribeNotifierFailureIsAbsorbed(t *testing.T) {
	repo, db := setupLedger(t)
	referrer := seedReferrer(t, repo)

	gw := &fakeGateway{prefResult: &gateway.PreferenceResult{InitPoint: "https://mp.example/checkout/9"}}
	notifier := &fakeNotifier{err: errors.New("smtp: connection refused")}
	svc := NewSubscriptionService(repo, gw, NewPreferenceBuilder(testConfig()), notifier)

	result, err := svc.Subscribe(context.Background(), referrer.Alias, SubscriptionInput{
		UsuarioID: "nuevo-001",
		Email:     "nuevo@example.com",
	})
	require.NoError(t, err, "notification failure must not fail the workflow")
	require.NotNil(t, result)

	var count int64
	require.NoError(t, db.Model(&models.Registrant{}).Where("usuario_id = ?", "nuevo-001").Count(&count).Error)
	require.Equal(t, int64(1), count, "the row must exist despite the failed email")
}

func TestLookup(t *testing.T) {
	repo, _ := setupLedger(t)
	referrer := seedReferrer(t, repo)

	svc := NewSubscriptionService(repo, &fakeGateway{}, NewPreferenceBuilder(testConfig()), nil)

	initPoint, err := svc.Lookup(referrer.Alias)
	require.NoError(t, err)
	require.Equal(t, "https://mp.example/checkout/padrino", initPoint)

	_, err = svc.Lookup("alias-nunca-insertado")
	require.ErrorIs(t, err, ErrAliasNotFound)
}

package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ImAlagar/zohra-admin-core/internal/backend/backendtest"
	"github.com/ImAlagar/zohra-admin-core/internal/moderation"
	"github.com/ImAlagar/zohra-admin-core/internal/pricing"
	"github.com/ImAlagar/zohra-admin-core/pkg/config"
	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
)

func newTestClient(t *testing.T) (*Client, *backendtest.Server) {
	t.Helper()
	fake := backendtest.New()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := New(config.BackendConfig{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)
	return client, fake
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(config.BackendConfig{}, nil, nil)
	require.Error(t, err)
}

func TestListSubcategoriesWithPricingAllEnvelopeStyles(t *testing.T) {
	for _, style := range []backendtest.EnvelopeStyle{backendtest.EnvelopeData, backendtest.EnvelopeNested, backendtest.EnvelopeBare} {
		client, fake := newTestClient(t)
		fake.ListStyle = style
		catID := fake.AddCategory("Nightwear")
		subID := fake.AddSubcategory("Silk Pyjamas", catID, "Nightwear")
		fake.AddRule(subID, 3, "PERCENTAGE", "10", true)

		groups, err := client.ListSubcategoriesWithPricing(context.Background())
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.Equal(t, subID, groups[0].Subcategory.ID)
		require.Equal(t, "Silk Pyjamas", groups[0].Subcategory.Name)
		require.Len(t, groups[0].Rules, 1)
		require.Equal(t, 3, groups[0].Rules[0].Quantity)
		require.Equal(t, pricing.PriceTypePercentage, groups[0].Rules[0].PriceType)
		require.True(t, groups[0].Rules[0].Value.Equal(decimalFromString(t, "10")))
	}
}

func TestCreateRuleRoundTrip(t *testing.T) {
	client, fake := newTestClient(t)
	catID := fake.AddCategory("Nightwear")
	subID := fake.AddSubcategory("Robes", catID, "Nightwear")

	quantity := 3.0
	value := decimalFromString(t, "10.50")
	created, err := client.CreateRule(context.Background(), subID, pricing.RulePayload{
		Quantity:  &quantity,
		PriceType: pricing.PriceTypePercentage,
		Value:     &value,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsActive, "new rules default to active")

	groups, err := client.ListSubcategoriesWithPricing(context.Background())
	require.NoError(t, err)
	require.Len(t, groups[0].Rules, 1)
	got := groups[0].Rules[0]
	require.Equal(t, 3, got.Quantity)
	// Precision survives the round trip.
	require.Equal(t, "10.5", got.Value.String())
}

func TestCreateRuleCarriesBackendReason(t *testing.T) {
	client, fake := newTestClient(t)
	catID := fake.AddCategory("Nightwear")
	subID := fake.AddSubcategory("Robes", catID, "Nightwear")

	fake.FailNext(http.StatusInternalServerError, "duplicate quantity tier")

	quantity := 2.0
	value := decimalFromString(t, "5")
	_, err := client.CreateRule(context.Background(), subID, pricing.RulePayload{
		Quantity:  &quantity,
		PriceType: pricing.PriceTypePercentage,
		Value:     &value,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeCreateFailed, typed.Code())
	require.Equal(t, "duplicate quantity tier", typed.Message())
}

func TestDeleteRuleTwiceSurfacesNotFound(t *testing.T) {
	client, fake := newTestClient(t)
	catID := fake.AddCategory("Nightwear")
	subID := fake.AddSubcategory("Robes", catID, "Nightwear")
	ruleID := fake.AddRule(subID, 2, "FIXED_AMOUNT", "49.99", true)

	require.NoError(t, client.DeleteRule(context.Background(), ruleID))

	err := client.DeleteRule(context.Background(), ruleID)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "second delete should be NotFound, got %v", err)
}

func TestToggleRuleIsIdempotent(t *testing.T) {
	client, fake := newTestClient(t)
	catID := fake.AddCategory("Nightwear")
	subID := fake.AddSubcategory("Robes", catID, "Nightwear")
	ruleID := fake.AddRule(subID, 2, "PERCENTAGE", "15", false)

	first, err := client.ToggleRule(context.Background(), ruleID, true)
	require.NoError(t, err)
	require.True(t, first.IsActive)

	second, err := client.ToggleRule(context.Background(), ruleID, true)
	require.NoError(t, err)
	require.True(t, second.IsActive, "same-state toggle is a no-op success")
}

func TestGetRuleEmbedsDenormalizedNames(t *testing.T) {
	client, fake := newTestClient(t)
	catID := fake.AddCategory("Nightwear")
	subID := fake.AddSubcategory("Slips", catID, "Nightwear")
	ruleID := fake.AddRule(subID, 5, "FIXED_AMOUNT", "120", true)

	detail, err := client.GetRule(context.Background(), ruleID)
	require.NoError(t, err)
	require.Equal(t, "Slips", detail.SubcategoryName)
	require.Equal(t, "Nightwear", detail.CategoryName)
	require.Equal(t, 5, detail.Quantity)
}

func TestListRatingsNestedEnvelope(t *testing.T) {
	client, fake := newTestClient(t)
	fake.AddRating("prod-1", "Mira", 5, "so soft")

	ratings, err := client.ListRatings(context.Background())
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	require.Equal(t, 5, ratings[0].Stars)
	require.Equal(t, moderation.RatingStatusPending, ratings[0].Status)
}

func TestModerationStatusAndDelete(t *testing.T) {
	client, fake := newTestClient(t)
	contactID := fake.AddContact("Ayesha", "a@example.com", "Order query", "Where is my robe?")

	require.NoError(t, client.SetContactStatus(context.Background(), contactID, moderation.ContactStatusResolved))

	contacts, err := client.ListContacts(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	require.Equal(t, moderation.ContactStatusResolved, contacts[0].Status)

	require.NoError(t, client.DeleteContact(context.Background(), contactID))
	err = client.DeleteContact(context.Background(), contactID)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestFetchFailureIsTyped(t *testing.T) {
	client, fake := newTestClient(t)
	fake.FailNext(http.StatusServiceUnavailable, "backend down")

	_, err := client.ListSubcategoriesWithPricing(context.Background())
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeFetchFailed), "expected FetchFailed, got %v", err)

	dump := pkgerrors.Dump(err)
	require.Equal(t, http.StatusServiceUnavailable, dump.UpstreamStatus)
}

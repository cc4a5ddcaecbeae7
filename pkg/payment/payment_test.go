package payment

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/Eximchain/dappbot-types/pkg/dapp"
)

func TestIsStripePlans(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"trial", map[string]any{"standard": 1, "professional": 0, "enterprise": 0}, true},
		{"all zero", map[string]any{"standard": 0, "professional": 0, "enterprise": 0}, true},
		{"missing key", map[string]any{"standard": 1, "professional": 0}, false},
		{"extra key", map[string]any{"standard": 1, "professional": 0, "enterprise": 0, "gold": 1}, false},
		{"string count", map[string]any{"standard": "1", "professional": 0, "enterprise": 0}, false},
		{"null count", map[string]any{"standard": nil, "professional": 0, "enterprise": 0}, false},
		{"fractional count", map[string]any{"standard": 1.5, "professional": 0, "enterprise": 0}, true},
		{"negative count", map[string]any{"standard": -1, "professional": 0, "enterprise": 0}, true},
		{"beyond int64", []byte(`{"standard":1e20,"professional":0,"enterprise":0}`), true},
		{"bool count", map[string]any{"standard": true, "professional": 0, "enterprise": 0}, false},
		{"typed", TrialStripePlan(), true},
		{"nil", nil, false},
		{"array", []int{1, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStripePlans(tt.value))
		})
	}
}

func TestStripePlans(t *testing.T) {
	p := StripePlans{Standard: 2, Professional: 1, Enterprise: 3}
	assert.Equal(t, 2.0, p.Count(dapp.TierStandard))
	assert.Equal(t, 1.0, p.Count(dapp.TierProfessional))
	assert.Equal(t, 3.0, p.Count(dapp.TierEnterprise))
	assert.Equal(t, 0.0, p.Count(dapp.Tier("GOLD")))
	assert.Equal(t, 6.0, p.Total())

	half, err := ParseStripePlans(map[string]any{"standard": 1.5, "professional": 0, "enterprise": 2})
	require.NoError(t, err)
	assert.Equal(t, StripePlans{Standard: 1.5, Enterprise: 2}, half)

	raw, err := json.Marshal(TrialStripePlan())
	require.NoError(t, err)
	assert.JSONEq(t, `{"standard":1,"professional":0,"enterprise":0}`, string(raw))
}

func TestSignUpArgs(t *testing.T) {
	plans := map[string]any{"standard": 1, "professional": 0, "enterprise": 0}

	args, err := ParseSignUpArgs(map[string]any{"email": "a@example.com", "name": "A", "plans": plans, "coupon": "LAUNCH"})
	require.NoError(t, err)
	assert.Equal(t, SignUpArgs{Email: "a@example.com", Name: "A", Plans: TrialStripePlan(), Coupon: "LAUNCH"}, args)

	assert.True(t, IsSignUpArgs(NewSignUpArgs()))
	assert.False(t, IsSignUpArgs(map[string]any{"email": "a", "name": "A"}))
	assert.False(t, IsSignUpArgs(map[string]any{"email": "a", "name": 1, "plans": plans}))
	assert.False(t, IsSignUpArgs(map[string]any{"email": "a", "name": "A", "plans": map[string]any{"standard": 1}}))
	assert.False(t, IsSignUpArgs(map[string]any{"email": "a", "name": "A", "plans": plans, "token": 5}))
}

func TestUpdateArgs(t *testing.T) {
	assert.True(t, IsUpdateCardArgs(map[string]any{"token": "tok_visa"}))
	assert.True(t, IsUpdateCardArgs(NewUpdateCardArgs()))
	assert.False(t, IsUpdateCardArgs(map[string]any{"token": nil}))
	assert.False(t, IsUpdateCardArgs(map[string]any{}))

	assert.True(t, IsUpdatePlanCountArgs(NewUpdatePlanCountArgs()))
	assert.False(t, IsUpdatePlanCountArgs(map[string]any{"plans": nil}))
	assert.False(t, IsUpdatePlanCountArgs(map[string]any{"plans": map[string]any{"standard": 1, "professional": 0}}))
}

func TestIsActiveSubscription(t *testing.T) {
	tests := []struct {
		status stripe.SubscriptionStatus
		want   bool
	}{
		{stripe.SubscriptionStatusTrialing, true},
		{stripe.SubscriptionStatusActive, true},
		{stripe.SubscriptionStatusPastDue, false},
		{stripe.SubscriptionStatusCanceled, false},
		{stripe.SubscriptionStatusUnpaid, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, IsActiveSubscription(&stripe.Subscription{Status: tt.status}))
		})
	}
	assert.False(t, IsActiveSubscription(nil))
}

func TestResultShapes(t *testing.T) {
	raw, err := json.Marshal(ReadResult{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":null,"customer":null,"subscription":null,"invoice":null}`, string(raw))

	raw, err = json.Marshal(UpdateCardResult{UpdatedCustomer: &stripe.Customer{ID: "cus_1"}})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "retriedInvoice")
	assert.Contains(t, m, "updatedCustomer")
}

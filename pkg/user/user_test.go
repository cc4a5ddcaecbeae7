package user

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eximchain/dappbot-types/pkg/dapp"
)

func attributes() map[string]any {
	return map[string]any{
		AttrPaymentProvider:   "STRIPE",
		AttrPaymentStatus:     "ACTIVE",
		AttrStandardLimit:     "1",
		AttrProfessionalLimit: "0",
		AttrEnterpriseLimit:   "0",
		"email_verified":      "true",
	}
}

func userData() map[string]any {
	return map[string]any{
		"Username":       "c0ffee",
		"Email":          "dev@example.com",
		"UserAttributes": attributes(),
	}
}

func authData() map[string]any {
	return map[string]any{
		"User":          userData(),
		"Authorization": "eyJhbGciOi",
		"RefreshToken":  "refresh",
		"ExpiresAt":     "2019-06-01T00:00:00Z",
	}
}

func challengeData() map[string]any {
	return map[string]any{
		"ChallengeName":       "NEW_PASSWORD_REQUIRED",
		"ChallengeParameters": map[string]any{"USER_ID_FOR_SRP": "c0ffee"},
		"Session":             "session-token",
	}
}

func set(m map[string]any, key string, v any) map[string]any {
	m[key] = v
	return m
}

func drop(m map[string]any, key string) map[string]any {
	delete(m, key)
	return m
}

func TestIsUserAttributes(t *testing.T) {
	tests := []struct {
		name  string
		value map[string]any
		want  bool
	}{
		{"valid", attributes(), true},
		{"quota zero", set(attributes(), AttrEnterpriseLimit, "0"), true},
		{"quota abc", set(attributes(), AttrStandardLimit, "abc"), false},
		{"quota negative", set(attributes(), AttrStandardLimit, "-1"), false},
		{"quota trailing text", set(attributes(), AttrStandardLimit, "3dapps"), false},
		{"quota number", set(attributes(), AttrStandardLimit, 3), false},
		{"admin provider", set(attributes(), AttrPaymentProvider, "ADMIN"), true},
		{"unknown provider", set(attributes(), AttrPaymentProvider, "PAYPAL"), false},
		{"each status", set(attributes(), AttrPaymentStatus, "CANCELLED"), true},
		{"unknown status", set(attributes(), AttrPaymentStatus, "PAUSED"), false},
		{"missing limit", drop(attributes(), AttrProfessionalLimit), false},
		{"missing provider", drop(attributes(), AttrPaymentProvider), false},
		{"non-string extra", set(attributes(), "email_verified", true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUserAttributes(tt.value))
		})
	}

	assert.False(t, IsUserAttributes(nil))
	assert.False(t, IsUserAttributes("attrs"))
}

func TestUserAttributesLimit(t *testing.T) {
	attrs, err := ParseUserAttributes(set(attributes(), AttrProfessionalLimit, "4"))
	require.NoError(t, err)

	n, err := attrs.Limit(dapp.TierProfessional)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, PaymentProviderStripe, attrs.PaymentProvider())
	assert.Equal(t, PaymentStatusActive, attrs.PaymentStatus())
	assert.Equal(t, "true", attrs["email_verified"])

	_, err = attrs.Limit(dapp.Tier("GOLD"))
	assert.Error(t, err)
}

func TestIsUserData(t *testing.T) {
	assert.True(t, IsUserData(userData()))
	assert.True(t, IsUserData(set(userData(), "MFAOptions", []any{map[string]any{"DeliveryMedium": "SMS", "AttributeName": "phone_number"}})))
	assert.True(t, IsUserData(set(userData(), "PreferredMfaSetting", "SOFTWARE_TOKEN_MFA")))

	assert.False(t, IsUserData(drop(userData(), "Email")))
	assert.False(t, IsUserData(set(userData(), "Username", 1)))
	assert.False(t, IsUserData(set(userData(), "UserAttributes", nil)))
	assert.False(t, IsUserData(set(userData(), "UserAttributes", set(attributes(), AttrStandardLimit, "abc"))))
	assert.False(t, IsUserData(set(userData(), "Extra", "x")))
}

func TestIsAuthData(t *testing.T) {
	assert.True(t, IsAuthData(authData()))
	assert.True(t, IsAuthData(set(authData(), "ExpiresAt", "2019-06-01T00:00:00.123+02:00")))

	assert.False(t, IsAuthData(set(authData(), "ExpiresAt", "tomorrow")))
	assert.False(t, IsAuthData(set(authData(), "ExpiresAt", 1559347200)))
	assert.False(t, IsAuthData(set(authData(), "Authorization", nil)))
	assert.False(t, IsAuthData(drop(authData(), "RefreshToken")))
	assert.False(t, IsAuthData(set(authData(), "User", drop(userData(), "Username"))))

	a, err := ParseAuthData(authData())
	require.NoError(t, err)
	exp, err := a.Expiry()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), exp.UTC())
}

func TestIsChallengeData(t *testing.T) {
	assert.True(t, IsChallengeData(challengeData()))
	assert.True(t, IsChallengeData(set(challengeData(), "ChallengeParameters", map[string]any{})))

	assert.False(t, IsChallengeData(set(challengeData(), "ChallengeName", "CAPTCHA")))
	assert.False(t, IsChallengeData(set(challengeData(), "ChallengeParameters", map[string]any{"n": 1})))
	assert.False(t, IsChallengeData(set(challengeData(), "ChallengeParameters", map[string]any{"n": nil})))
	assert.False(t, IsChallengeData(drop(challengeData(), "Session")))
}

func TestParseSignInResult(t *testing.T) {
	res, err := ParseSignInResult(authData())
	require.NoError(t, err)
	_, ok := res.(AuthData)
	assert.True(t, ok)

	res, err = ParseSignInResult(challengeData())
	require.NoError(t, err)
	ch, ok := res.(ChallengeData)
	require.True(t, ok)
	assert.Equal(t, ChallengeNewPasswordRequired, ch.ChallengeName)

	both := authData()
	for k, v := range challengeData() {
		both[k] = v
	}
	assert.False(t, IsSignInResult(both))
	assert.False(t, IsSignInResult(map[string]any{}))
	assert.False(t, IsSignInResult(nil))
}

func TestUserDataRoundTrip(t *testing.T) {
	u, err := ParseUserData(userData())
	require.NoError(t, err)

	raw, err := json.Marshal(AuthData{User: u, Authorization: "a", RefreshToken: "r", ExpiresAt: "2019-06-01T00:00:00Z"})
	require.NoError(t, err)
	assert.True(t, IsAuthData(raw))
	assert.True(t, IsSignInResult(raw))
}

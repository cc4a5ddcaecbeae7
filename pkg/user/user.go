// Package user defines the account, authentication and challenge shapes
// returned by the auth API, and the predicates that check them.
package user

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Eximchain/dappbot-types/pkg/dapp"
)

// PaymentProvider records who bills the account.
type PaymentProvider string

const (
	PaymentProviderStripe PaymentProvider = "STRIPE"
	PaymentProviderAdmin  PaymentProvider = "ADMIN"
)

// IsValid reports whether p is a known provider.
func (p PaymentProvider) IsValid() bool {
	return p == PaymentProviderStripe || p == PaymentProviderAdmin
}

// PaymentStatus is the billing state of the account.
type PaymentStatus string

const (
	PaymentStatusActive    PaymentStatus = "ACTIVE"
	PaymentStatusLapsed    PaymentStatus = "LAPSED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusActive, PaymentStatusLapsed, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// Custom attribute keys every account carries.
const (
	AttrPaymentProvider   = "custom:payment_provider"
	AttrPaymentStatus     = "custom:payment_status"
	AttrStandardLimit     = "custom:standard_limit"
	AttrProfessionalLimit = "custom:professional_limit"
	AttrEnterpriseLimit   = "custom:enterprise_limit"
)

// LimitAttr returns the attribute key holding the dapp quota for t.
func LimitAttr(t dapp.Tier) string {
	switch t {
	case dapp.TierStandard:
		return AttrStandardLimit
	case dapp.TierProfessional:
		return AttrProfessionalLimit
	case dapp.TierEnterprise:
		return AttrEnterpriseLimit
	}
	return ""
}

// UserAttributes is the account's attribute map. Besides the custom keys
// above it may hold any provider attribute, always as a string.
type UserAttributes map[string]string

// PaymentProvider returns the account's provider.
func (a UserAttributes) PaymentProvider() PaymentProvider {
	return PaymentProvider(a[AttrPaymentProvider])
}

// PaymentStatus returns the account's payment status.
func (a UserAttributes) PaymentStatus() PaymentStatus {
	return PaymentStatus(a[AttrPaymentStatus])
}

// Limit returns how many dapps of tier t the account may own.
func (a UserAttributes) Limit(t dapp.Tier) (int, error) {
	key := LimitAttr(t)
	if key == "" {
		return 0, fmt.Errorf("user: unknown tier %q", t)
	}
	n, err := strconv.Atoi(a[key])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("user: %s is not a non-negative integer: %q", key, a[key])
	}
	return n, nil
}

// MFAOption is a legacy SMS MFA setting.
type MFAOption struct {
	DeliveryMedium string `json:"DeliveryMedium,omitempty"`
	AttributeName  string `json:"AttributeName,omitempty"`
}

// UserData is an account as returned by the auth provider.
type UserData struct {
	Username            string         `json:"Username"`
	Email               string         `json:"Email"`
	UserAttributes      UserAttributes `json:"UserAttributes"`
	MFAOptions          []MFAOption    `json:"MFAOptions,omitempty"`
	PreferredMfaSetting string         `json:"PreferredMfaSetting,omitempty"`
	UserMFASettingList  []string       `json:"UserMFASettingList,omitempty"`
}

// AuthData is a completed sign-in: the account plus its credentials.
type AuthData struct {
	User          UserData `json:"User"`
	Authorization string   `json:"Authorization"`
	RefreshToken  string   `json:"RefreshToken"`
	ExpiresAt     string   `json:"ExpiresAt"`
}

// Expiry parses ExpiresAt.
func (a AuthData) Expiry() (time.Time, error) {
	return time.Parse(time.RFC3339, a.ExpiresAt)
}

// ChallengeType names the follow-up step a sign-in requires.
type ChallengeType string

const (
	ChallengeDefault             ChallengeType = "DEFAULT"
	ChallengeForgotPassword      ChallengeType = "FORGOT_PASSWORD"
	ChallengeNewPasswordRequired ChallengeType = "NEW_PASSWORD_REQUIRED"
	ChallengeMfa                 ChallengeType = "MFA"
	ChallengeMfaSetup            ChallengeType = "MFA_SETUP"
	ChallengeSelectMfaType       ChallengeType = "SELECT_MFA_TYPE"
	ChallengeSmsMfa              ChallengeType = "SMS_MFA"
	ChallengeSoftwareTokenMfa    ChallengeType = "SOFTWARE_TOKEN_MFA"
)

// IsValid reports whether c is a known challenge type.
func (c ChallengeType) IsValid() bool {
	switch c {
	case ChallengeDefault, ChallengeForgotPassword, ChallengeNewPasswordRequired,
		ChallengeMfa, ChallengeMfaSetup, ChallengeSelectMfaType, ChallengeSmsMfa, ChallengeSoftwareTokenMfa:
		return true
	}
	return false
}

// ChallengeData is a sign-in that stopped at a challenge. Session must be
// sent back with the answer.
type ChallengeData struct {
	ChallengeName       ChallengeType     `json:"ChallengeName"`
	ChallengeParameters map[string]string `json:"ChallengeParameters"`
	Session             string            `json:"Session"`
}

// SignInResult is either an AuthData or a ChallengeData, never both.
type SignInResult interface {
	isSignInResult()
}

func (AuthData) isSignInResult()      {}
func (ChallengeData) isSignInResult() {}

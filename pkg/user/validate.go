package user

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/Eximchain/dappbot-types/internal/schema"
)

// ErrAmbiguousSignIn is returned when a value matches both sign-in shapes.
var ErrAmbiguousSignIn = errors.New("user: value is both auth data and a challenge")

type attributesWire struct {
	PaymentProvider   *PaymentProvider `json:"custom:payment_provider" validate:"required,enum"`
	PaymentStatus     *PaymentStatus   `json:"custom:payment_status" validate:"required,enum"`
	StandardLimit     *string          `json:"custom:standard_limit" validate:"required,quota"`
	ProfessionalLimit *string          `json:"custom:professional_limit" validate:"required,quota"`
	EnterpriseLimit   *string          `json:"custom:enterprise_limit" validate:"required,quota"`
}

type userWire struct {
	Username            *string         `json:"Username" validate:"required"`
	Email               *string         `json:"Email" validate:"required"`
	UserAttributes      json.RawMessage `json:"UserAttributes" validate:"required"`
	MFAOptions          []MFAOption     `json:"MFAOptions"`
	PreferredMfaSetting *string         `json:"PreferredMfaSetting"`
	UserMFASettingList  []string        `json:"UserMFASettingList"`
}

type authWire struct {
	User          json.RawMessage `json:"User" validate:"required"`
	Authorization *string         `json:"Authorization" validate:"required"`
	RefreshToken  *string         `json:"RefreshToken" validate:"required"`
	ExpiresAt     *string         `json:"ExpiresAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type challengeWire struct {
	ChallengeName       *ChallengeType     `json:"ChallengeName" validate:"required,enum"`
	ChallengeParameters map[string]*string `json:"ChallengeParameters" validate:"required,dive,required"`
	Session             *string            `json:"Session" validate:"required"`
}

// ParseUserAttributes decodes value as an attribute map. Every value must be
// a string; the payment keys must hold known enum values and each limit a
// non-negative integer string.
func ParseUserAttributes(value any) (UserAttributes, error) {
	raw, err := schema.ToJSON(value)
	if err != nil {
		return nil, fmt.Errorf("user: attributes: %w", err)
	}
	all, err := schema.DecodeStringMap(raw)
	if err != nil {
		return nil, fmt.Errorf("user: attributes: %w", err)
	}
	var w attributesWire
	if err := schema.DecodeOpen(raw, &w); err != nil {
		return nil, fmt.Errorf("user: attributes: %w", err)
	}
	return UserAttributes(all), nil
}

// ParseUserData decodes value as UserData.
func ParseUserData(value any) (UserData, error) {
	var w userWire
	if err := schema.Decode(value, &w); err != nil {
		return UserData{}, fmt.Errorf("user: %w", err)
	}
	attrs, err := ParseUserAttributes(w.UserAttributes)
	if err != nil {
		return UserData{}, err
	}
	u := UserData{
		Username:           *w.Username,
		Email:              *w.Email,
		UserAttributes:     attrs,
		MFAOptions:         w.MFAOptions,
		UserMFASettingList: w.UserMFASettingList,
	}
	if w.PreferredMfaSetting != nil {
		u.PreferredMfaSetting = *w.PreferredMfaSetting
	}
	return u, nil
}

// ParseAuthData decodes value as AuthData. ExpiresAt must be an RFC 3339
// timestamp.
func ParseAuthData(value any) (AuthData, error) {
	var w authWire
	if err := schema.Decode(value, &w); err != nil {
		return AuthData{}, fmt.Errorf("user: auth data: %w", err)
	}
	u, err := ParseUserData(w.User)
	if err != nil {
		return AuthData{}, fmt.Errorf("user: auth data: %w", err)
	}
	return AuthData{
		User:          u,
		Authorization: *w.Authorization,
		RefreshToken:  *w.RefreshToken,
		ExpiresAt:     *w.ExpiresAt,
	}, nil
}

// ParseChallengeData decodes value as ChallengeData. Every parameter value
// must be a string.
func ParseChallengeData(value any) (ChallengeData, error) {
	var w challengeWire
	if err := schema.Decode(value, &w); err != nil {
		return ChallengeData{}, fmt.Errorf("user: challenge: %w", err)
	}
	params := make(map[string]string, len(w.ChallengeParameters))
	for k, v := range w.ChallengeParameters {
		params[k] = *v
	}
	return ChallengeData{
		ChallengeName:       *w.ChallengeName,
		ChallengeParameters: params,
		Session:             *w.Session,
	}, nil
}

// ParseSignInResult decodes value as exactly one of AuthData or
// ChallengeData.
func ParseSignInResult(value any) (SignInResult, error) {
	raw, err := schema.ToJSON(value)
	if err != nil {
		return nil, fmt.Errorf("user: sign-in result: %w", err)
	}
	auth, authErr := ParseAuthData(raw)
	challenge, challengeErr := ParseChallengeData(raw)
	switch {
	case authErr == nil && challengeErr == nil:
		return nil, ErrAmbiguousSignIn
	case authErr == nil:
		return auth, nil
	case challengeErr == nil:
		return challenge, nil
	}
	return nil, fmt.Errorf("user: sign-in result: %w", errors.Join(authErr, challengeErr))
}

// IsUserAttributes reports whether value is a valid attribute map.
func IsUserAttributes(value any) bool {
	_, err := ParseUserAttributes(value)
	return err == nil
}

// IsUserData reports whether value is a valid UserData.
func IsUserData(value any) bool {
	_, err := ParseUserData(value)
	return err == nil
}

// IsAuthData reports whether value is a valid AuthData.
func IsAuthData(value any) bool {
	_, err := ParseAuthData(value)
	return err == nil
}

// IsChallengeData reports whether value is a valid ChallengeData.
func IsChallengeData(value any) bool {
	_, err := ParseChallengeData(value)
	return err == nil
}

// IsSignInResult reports whether value is exactly one of the sign-in shapes.
func IsSignInResult(value any) bool {
	_, err := ParseSignInResult(value)
	return err == nil
}

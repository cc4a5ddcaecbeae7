// Package auth defines the request bodies of the login and password-reset
// calls.
//
// Login accepts one of three bodies: a username and password, a refresh
// token, or the answer to a NEW_PASSWORD_REQUIRED challenge. Password reset
// accepts either a request for a reset code or the code with a new password.
// Each body has an exact key set, so at most one variant ever matches.
package auth

import (
	"errors"
	"fmt"

	"github.com/Eximchain/dappbot-types/internal/schema"
)

// Sentinel errors
var (
	ErrNoLoginVariant = errors.New("auth: body matches no login variant")
	ErrNoResetVariant = errors.New("auth: body matches no password reset variant")
)

// SignInArgs starts a session with a username and password.
type SignInArgs struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshArgs trades a refresh token for fresh credentials.
type RefreshArgs struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// NewPasswordArgs answers a NEW_PASSWORD_REQUIRED challenge. Session is the
// one returned with the challenge, not an Authorization token.
type NewPasswordArgs struct {
	Username    string `json:"username" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
	Session     string `json:"session" validate:"required"`
}

// BeginPasswordResetArgs asks for a reset code to be emailed.
type BeginPasswordResetArgs struct {
	Username string `json:"username" validate:"required"`
}

// ConfirmPasswordResetArgs completes a reset with the emailed code.
type ConfirmPasswordResetArgs struct {
	Username          string `json:"username" validate:"required"`
	NewPassword       string `json:"newPassword" validate:"required"`
	PasswordResetCode string `json:"passwordResetCode" validate:"required"`
}

// LoginArgs is one of SignInArgs, RefreshArgs or NewPasswordArgs.
type LoginArgs interface {
	isLoginArgs()
}

func (SignInArgs) isLoginArgs()      {}
func (RefreshArgs) isLoginArgs()     {}
func (NewPasswordArgs) isLoginArgs() {}

// PasswordResetArgs is one of BeginPasswordResetArgs or
// ConfirmPasswordResetArgs.
type PasswordResetArgs interface {
	isPasswordResetArgs()
}

func (BeginPasswordResetArgs) isPasswordResetArgs()   {}
func (ConfirmPasswordResetArgs) isPasswordResetArgs() {}

// ParseLoginArgs decodes value as whichever login variant it matches.
func ParseLoginArgs(value any) (LoginArgs, error) {
	raw, err := schema.ToJSON(value)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	var signIn SignInArgs
	if schema.Decode(raw, &signIn) == nil {
		return signIn, nil
	}
	var refresh RefreshArgs
	if schema.Decode(raw, &refresh) == nil {
		return refresh, nil
	}
	var newPass NewPasswordArgs
	if schema.Decode(raw, &newPass) == nil {
		return newPass, nil
	}
	return nil, ErrNoLoginVariant
}

// ParsePasswordResetArgs decodes value as whichever reset variant it matches.
func ParsePasswordResetArgs(value any) (PasswordResetArgs, error) {
	raw, err := schema.ToJSON(value)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	var begin BeginPasswordResetArgs
	if schema.Decode(raw, &begin) == nil {
		return begin, nil
	}
	var confirm ConfirmPasswordResetArgs
	if schema.Decode(raw, &confirm) == nil {
		return confirm, nil
	}
	return nil, ErrNoResetVariant
}

// IsLoginArgs reports whether value is a valid login body.
func IsLoginArgs(value any) bool {
	_, err := ParseLoginArgs(value)
	return err == nil
}

// IsPasswordResetArgs reports whether value is a valid password reset body.
func IsPasswordResetArgs(value any) bool {
	_, err := ParsePasswordResetArgs(value)
	return err == nil
}

package payment

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/Eximchain/dappbot-types/internal/schema"
)

// SignUpArgs creates an account. Token comes from the Stripe widget on the
// website; without it the account starts on TrialStripePlan.
type SignUpArgs struct {
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Plans  StripePlans `json:"plans"`
	Coupon string      `json:"coupon,omitempty"`
	Token  string      `json:"token,omitempty"`
}

// NewSignUpArgs returns empty credentials on a trial plan.
func NewSignUpArgs() SignUpArgs {
	return SignUpArgs{Plans: TrialStripePlan()}
}

// UpdateCardArgs replaces the saved payment source.
type UpdateCardArgs struct {
	Token string `json:"token"`
}

// NewUpdateCardArgs returns an empty token.
func NewUpdateCardArgs() UpdateCardArgs {
	return UpdateCardArgs{}
}

// UpdatePlanCountArgs changes the per-tier allowance.
type UpdatePlanCountArgs struct {
	Plans StripePlans `json:"plans"`
}

// NewUpdatePlanCountArgs returns the trial allowance.
func NewUpdatePlanCountArgs() UpdatePlanCountArgs {
	return UpdatePlanCountArgs{Plans: TrialStripePlan()}
}

type signUpWire struct {
	Email  *string         `json:"email" validate:"required"`
	Name   *string         `json:"name" validate:"required"`
	Plans  json.RawMessage `json:"plans" validate:"required"`
	Coupon *string         `json:"coupon"`
	Token  *string         `json:"token"`
}

type updateCardWire struct {
	Token *string `json:"token" validate:"required"`
}

type updatePlanCountWire struct {
	Plans json.RawMessage `json:"plans" validate:"required"`
}

// ParseSignUpArgs decodes value as SignUpArgs. Keys besides the five known
// ones are ignored.
func ParseSignUpArgs(value any) (SignUpArgs, error) {
	var w signUpWire
	if err := schema.DecodeOpen(value, &w); err != nil {
		return SignUpArgs{}, fmt.Errorf("payment: sign up: %w", err)
	}
	plans, err := ParseStripePlans(w.Plans)
	if err != nil {
		return SignUpArgs{}, fmt.Errorf("payment: sign up: %w", err)
	}
	args := SignUpArgs{Email: *w.Email, Name: *w.Name, Plans: plans}
	if w.Coupon != nil {
		args.Coupon = *w.Coupon
	}
	if w.Token != nil {
		args.Token = *w.Token
	}
	return args, nil
}

// ParseUpdateCardArgs decodes value as UpdateCardArgs.
func ParseUpdateCardArgs(value any) (UpdateCardArgs, error) {
	var w updateCardWire
	if err := schema.DecodeOpen(value, &w); err != nil {
		return UpdateCardArgs{}, fmt.Errorf("payment: update card: %w", err)
	}
	return UpdateCardArgs{Token: *w.Token}, nil
}

// ParseUpdatePlanCountArgs decodes value as UpdatePlanCountArgs.
func ParseUpdatePlanCountArgs(value any) (UpdatePlanCountArgs, error) {
	var w updatePlanCountWire
	if err := schema.DecodeOpen(value, &w); err != nil {
		return UpdatePlanCountArgs{}, fmt.Errorf("payment: update plan count: %w", err)
	}
	plans, err := ParseStripePlans(w.Plans)
	if err != nil {
		return UpdatePlanCountArgs{}, fmt.Errorf("payment: update plan count: %w", err)
	}
	return UpdatePlanCountArgs{Plans: plans}, nil
}

// IsSignUpArgs reports whether value is a valid sign-up body.
func IsSignUpArgs(value any) bool {
	_, err := ParseSignUpArgs(value)
	return err == nil
}

// IsUpdateCardArgs reports whether value is a valid update-card body.
func IsUpdateCardArgs(value any) bool {
	_, err := ParseUpdateCardArgs(value)
	return err == nil
}

// IsUpdatePlanCountArgs reports whether value is a valid plan-count body.
func IsUpdatePlanCountArgs(value any) bool {
	_, err := ParseUpdatePlanCountArgs(value)
	return err == nil
}

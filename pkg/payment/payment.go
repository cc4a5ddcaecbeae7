// Package payment defines the Stripe-backed billing shapes: per-tier plan
// counts and the bodies and results of the payment calls. It never talks to
// Stripe; stripe-go is used only for its object types.
package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"

	"github.com/Eximchain/dappbot-types/internal/schema"
	"github.com/Eximchain/dappbot-types/pkg/dapp"
	"github.com/Eximchain/dappbot-types/pkg/user"
)

// StripePlans is how many dapps of each tier an account pays for. All three
// counts are always present, zeros included. Counts are JSON numbers and are
// not required to be whole.
type StripePlans struct {
	Standard     float64 `json:"standard"`
	Professional float64 `json:"professional"`
	Enterprise   float64 `json:"enterprise"`
}

// TrialStripePlan is the allowance of a trial account: one STANDARD dapp.
func TrialStripePlan() StripePlans {
	return StripePlans{Standard: 1}
}

// Count returns the allowance for t.
func (p StripePlans) Count(t dapp.Tier) float64 {
	switch t {
	case dapp.TierStandard:
		return p.Standard
	case dapp.TierProfessional:
		return p.Professional
	case dapp.TierEnterprise:
		return p.Enterprise
	}
	return 0
}

// Total returns the allowance summed over every tier.
func (p StripePlans) Total() float64 {
	return p.Standard + p.Professional + p.Enterprise
}

type plansWire struct {
	Standard     *float64 `json:"standard" validate:"required"`
	Professional *float64 `json:"professional" validate:"required"`
	Enterprise   *float64 `json:"enterprise" validate:"required"`
}

// ParseStripePlans decodes value as StripePlans: exactly the three tier keys,
// each a number.
func ParseStripePlans(value any) (StripePlans, error) {
	var w plansWire
	if err := schema.Decode(value, &w); err != nil {
		return StripePlans{}, fmt.Errorf("payment: plans: %w", err)
	}
	return StripePlans{
		Standard:     *w.Standard,
		Professional: *w.Professional,
		Enterprise:   *w.Enterprise,
	}, nil
}

// IsStripePlans reports whether value is a valid StripePlans.
func IsStripePlans(value any) bool {
	_, err := ParseStripePlans(value)
	return err == nil
}

// ValidSubscriptionStates are the Stripe subscription states that count as
// an ACTIVE payment status.
var ValidSubscriptionStates = []stripe.SubscriptionStatus{
	stripe.SubscriptionStatusTrialing,
	stripe.SubscriptionStatusActive,
}

// IsActiveSubscription reports whether sub is in one of
// ValidSubscriptionStates.
func IsActiveSubscription(sub *stripe.Subscription) bool {
	if sub == nil {
		return false
	}
	for _, s := range ValidSubscriptionStates {
		if sub.Status == s {
			return true
		}
	}
	return false
}

// SignUpResult is returned when an account is created.
type SignUpResult struct {
	StripeID       string         `json:"stripeId"`
	SubscriptionID string         `json:"subscriptionId"`
	User           *user.UserData `json:"user"`
}

// ReadResult is the caller's Stripe state. Every Stripe field is nil for
// accounts not billed through Stripe. Invoice is the upcoming invoice for
// active accounts and the latest failed one for lapsed accounts.
type ReadResult struct {
	User         *user.UserData       `json:"user"`
	Customer     *stripe.Customer     `json:"customer"`
	Subscription *stripe.Subscription `json:"subscription"`
	Invoice      *stripe.Invoice      `json:"invoice"`
}

// UpdateCardResult is returned after the payment source changes. A failed
// invoice is retried with the new card.
type UpdateCardResult struct {
	UpdatedCustomer *stripe.Customer `json:"updatedCustomer"`
	RetriedInvoice  *stripe.Invoice  `json:"retriedInvoice,omitempty"`
}

// UpdatePlanCountResult is returned after the plan counts change.
type UpdatePlanCountResult struct {
	UpdatedSubscription *stripe.Subscription `json:"updatedSubscription"`
	UpdatedUser         *user.UserData       `json:"updatedUser"`
}

// CancelResult is returned after the subscription is cancelled.
type CancelResult struct {
	CancelledSub *stripe.Subscription `json:"cancelledSub"`
}

// Package shapes names every wire shape so callers can check a body by name,
// as the request gate and the CLI do.
package shapes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Eximchain/dappbot-types/internal/schema"
	"github.com/Eximchain/dappbot-types/pkg/auth"
	"github.com/Eximchain/dappbot-types/pkg/dapp"
	"github.com/Eximchain/dappbot-types/pkg/payment"
	"github.com/Eximchain/dappbot-types/pkg/response"
	"github.com/Eximchain/dappbot-types/pkg/user"
)

// ErrUnknownShape is returned by Check for an unregistered name.
var ErrUnknownShape = errors.New("shapes: unknown shape")

// Shape is a named check.
type Shape struct {
	Name        string
	Description string
	Check       func(value any) error
}

// Valid reports whether value passes the check.
func (s Shape) Valid(value any) bool {
	return s.Check(value) == nil
}

func ignore[T any](parse func(any) (T, error)) func(any) error {
	return func(value any) error {
		_, err := parse(value)
		return err
	}
}

var registry = map[string]Shape{}

func register(name, description string, check func(any) error) {
	registry[name] = Shape{Name: name, Description: description, Check: check}
}

func init() {
	register("Core", "dapp fields every item carries", ignore(dapp.ParseCore))
	register("Full", "dapp with its tier; enterprise dapps add repo fields", ignore(dapp.ParseFull))
	register("Api", "dapp as stored, with owner and state", ignore(dapp.ParseApi))
	register("UpdateArgs", "partial Core without DappName", ignore(dapp.ParseUpdateArgs))
	register("UserAttributes", "account attribute map", ignore(user.ParseUserAttributes))
	register("UserData", "account", ignore(user.ParseUserData))
	register("AuthData", "account with its credentials", ignore(user.ParseAuthData))
	register("ChallengeData", "sign-in challenge", ignore(user.ParseChallengeData))
	register("SignInResult", "exactly one of AuthData or ChallengeData", ignore(user.ParseSignInResult))
	register("LoginArgs", "sign-in, refresh or new-password body", ignore(auth.ParseLoginArgs))
	register("PasswordResetArgs", "begin or confirm reset body", ignore(auth.ParsePasswordResetArgs))
	register("StripePlans", "dapp allowance per tier", ignore(payment.ParseStripePlans))
	register("SignUpArgs", "account creation body", ignore(payment.ParseSignUpArgs))
	register("UpdateCardArgs", "payment source body", ignore(payment.ParseUpdateCardArgs))
	register("UpdatePlanCountArgs", "plan count body", ignore(payment.ParseUpdatePlanCountArgs))
	register("Envelope", "{data, err} with exactly one side set", checkEnvelope)
}

func checkEnvelope(value any) error {
	raw, err := schema.ToJSON(value)
	if err != nil {
		return err
	}
	_, err = response.Parse(raw)
	return err
}

// Lookup returns the shape registered under name.
func Lookup(name string) (Shape, bool) {
	s, ok := registry[name]
	return s, ok
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Shape {
	s, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("shapes: %q is not registered", name))
	}
	return s
}

// Check runs the named shape's check against value.
func Check(name string, value any) error {
	s, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownShape, name)
	}
	return s.Check(value)
}

// All returns every shape sorted by name.
func All() []Shape {
	out := make([]Shape, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Package dapp defines the tiered dapp item shapes exchanged by the API and
// the predicates that check decoded JSON against them.
//
// An item comes in three nested shapes. Core is what DappHub needs to render
// a dapp. Full adds the Tier, and for ENTERPRISE dapps the target GitHub
// repository; no other tier may carry the repository fields. ApiItem is a
// Full item plus the fields the service manages: owner, creation time, DNS
// name and lifecycle state.
package dapp

// Tier is the subscription level a dapp is created under.
type Tier string

const (
	TierStandard     Tier = "STANDARD"
	TierProfessional Tier = "PROFESSIONAL"
	TierEnterprise   Tier = "ENTERPRISE"
)

// Tiers returns every tier, cheapest first.
func Tiers() []Tier {
	return []Tier{TierStandard, TierProfessional, TierEnterprise}
}

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	switch t {
	case TierStandard, TierProfessional, TierEnterprise:
		return true
	}
	return false
}

// State is the lifecycle state of a deployed dapp.
type State string

const (
	StateCreating  State = "CREATING"
	StateBuilding  State = "BUILDING_DAPP"
	StateAvailable State = "AVAILABLE"
	StateDeleting  State = "DELETING"
	StateFailed    State = "FAILED"
	StateDeposed   State = "DEPOSED"
)

// IsValid reports whether s is a known state. It says nothing about which
// transitions are legal.
func (s State) IsValid() bool {
	switch s {
	case StateCreating, StateBuilding, StateAvailable, StateDeleting, StateFailed, StateDeposed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions happen from s.
func (s State) IsTerminal() bool {
	return s == StateFailed || s == StateDeposed
}

// DefaultGuardianURL is the guardian used when the caller has no preference.
const DefaultGuardianURL = "https://guardian.dapp.bot"

// Core is the public view of a dapp.
type Core struct {
	DappName     string `json:"DappName"`
	Abi          string `json:"Abi"`
	Web3URL      string `json:"Web3URL"`
	GuardianURL  string `json:"GuardianURL"`
	ContractAddr string `json:"ContractAddr"`
}

// Full is a Core with a tier. Its only implementations are HubDapp, for the
// STANDARD and PROFESSIONAL tiers, and EnterpriseDapp, so the repository
// fields exist exactly when the tier is ENTERPRISE.
type Full interface {
	Dapp() Core
	DappTier() Tier
	isFull()
}

// HubDapp is a STANDARD or PROFESSIONAL dapp, hosted on DappHub.
type HubDapp struct {
	Core
	Tier Tier `json:"Tier"`
}

func (d HubDapp) Dapp() Core     { return d.Core }
func (d HubDapp) DappTier() Tier { return d.Tier }
func (HubDapp) isFull()          {}

// EnterpriseDapp is an ENTERPRISE dapp whose build is pushed to a GitHub
// repository owned by the customer.
type EnterpriseDapp struct {
	Core
	TargetRepoName  string
	TargetRepoOwner string
}

func (d EnterpriseDapp) Dapp() Core   { return d.Core }
func (EnterpriseDapp) DappTier() Tier { return TierEnterprise }
func (EnterpriseDapp) isFull()        {}

// SampleArgs returns a STANDARD dapp with empty strings everywhere except
// the default guardian. Useful for getting the correct shape as a value.
func SampleArgs() HubDapp {
	return HubDapp{
		Core: Core{
			GuardianURL: DefaultGuardianURL,
		},
		Tier: TierStandard,
	}
}

// ApiItem is the representation of a dapp returned to its owner.
type ApiItem struct {
	Item         Full
	OwnerEmail   string
	CreationTime string
	DnsName      string
	State        State
}

// Tier returns the tier of the wrapped item, or "" if there is none.
func (a ApiItem) Tier() Tier {
	if a.Item == nil {
		return ""
	}
	return a.Item.DappTier()
}

// Name returns the wrapped item's DappName.
func (a ApiItem) Name() string {
	if a.Item == nil {
		return ""
	}
	return a.Item.Dapp().DappName
}

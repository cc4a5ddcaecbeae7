package dapp

import (
	"fmt"

	"github.com/Eximchain/dappbot-types/internal/schema"
)

// Wire shapes. Pointers tell an absent or null key apart from "".

type coreWire struct {
	DappName     *string `json:"DappName" validate:"required"`
	Abi          *string `json:"Abi" validate:"required"`
	Web3URL      *string `json:"Web3URL" validate:"required"`
	GuardianURL  *string `json:"GuardianURL" validate:"required"`
	ContractAddr *string `json:"ContractAddr" validate:"required"`
}

func (w coreWire) core() Core {
	return Core{
		DappName:     *w.DappName,
		Abi:          *w.Abi,
		Web3URL:      *w.Web3URL,
		GuardianURL:  *w.GuardianURL,
		ContractAddr: *w.ContractAddr,
	}
}

type tierWire struct {
	Tier *Tier `json:"Tier" validate:"required,enum"`
}

type hubWire struct {
	coreWire
	Tier *Tier `json:"Tier" validate:"required,enum,ne=ENTERPRISE"`
}

func (w hubWire) full() HubDapp {
	return HubDapp{Core: w.core(), Tier: *w.Tier}
}

type enterpriseWire struct {
	coreWire
	Tier            *Tier   `json:"Tier" validate:"required,eq=ENTERPRISE"`
	TargetRepoName  *string `json:"TargetRepoName" validate:"required"`
	TargetRepoOwner *string `json:"TargetRepoOwner" validate:"required"`
}

func (w enterpriseWire) full() EnterpriseDapp {
	return EnterpriseDapp{
		Core:            w.core(),
		TargetRepoName:  *w.TargetRepoName,
		TargetRepoOwner: *w.TargetRepoOwner,
	}
}

type managementWire struct {
	OwnerEmail   *string `json:"OwnerEmail" validate:"required"`
	CreationTime *string `json:"CreationTime" validate:"required"`
	DnsName      *string `json:"DnsName" validate:"required"`
	State        *State  `json:"State" validate:"required,enum"`
}

func (w managementWire) api(item Full) ApiItem {
	return ApiItem{
		Item:         item,
		OwnerEmail:   *w.OwnerEmail,
		CreationTime: *w.CreationTime,
		DnsName:      *w.DnsName,
		State:        *w.State,
	}
}

type hubAPIWire struct {
	hubWire
	managementWire
}

type enterpriseAPIWire struct {
	enterpriseWire
	managementWire
}

// ParseCore decodes value as a Core. Keys other than the five Core fields
// are ignored.
func ParseCore(value any) (Core, error) {
	var w coreWire
	if err := schema.DecodeOpen(value, &w); err != nil {
		return Core{}, fmt.Errorf("dapp: core: %w", err)
	}
	return w.core(), nil
}

// ParseFull decodes value as a Full item. The key set must match the tier
// exactly: ENTERPRISE items carry both repository fields, every other tier
// carries neither, and no item carries anything else.
func ParseFull(value any) (Full, error) {
	raw, tier, err := peekTier(value)
	if err != nil {
		return nil, err
	}
	if tier == TierEnterprise {
		var w enterpriseWire
		if err := schema.Decode(raw, &w); err != nil {
			return nil, fmt.Errorf("dapp: enterprise item: %w", err)
		}
		return w.full(), nil
	}
	var w hubWire
	if err := schema.Decode(raw, &w); err != nil {
		return nil, fmt.Errorf("dapp: %s item: %w", tier, err)
	}
	return w.full(), nil
}

// ParseApi decodes value as an ApiItem: a Full item plus the four
// management fields, with nothing else.
func ParseApi(value any) (ApiItem, error) {
	raw, tier, err := peekTier(value)
	if err != nil {
		return ApiItem{}, err
	}
	if tier == TierEnterprise {
		var w enterpriseAPIWire
		if err := schema.Decode(raw, &w); err != nil {
			return ApiItem{}, fmt.Errorf("dapp: enterprise api item: %w", err)
		}
		return w.managementWire.api(w.enterpriseWire.full()), nil
	}
	var w hubAPIWire
	if err := schema.Decode(raw, &w); err != nil {
		return ApiItem{}, fmt.Errorf("dapp: %s api item: %w", tier, err)
	}
	return w.managementWire.api(w.hubWire.full()), nil
}

// ParseCreateArgs decodes the body of a create call. The body is a Full item
// without DappName, which comes from the request path instead.
func ParseCreateArgs(dappName string, value any) (Full, error) {
	raw, err := schema.Extend(value, "DappName", dappName)
	if err != nil {
		return nil, fmt.Errorf("dapp: create args: %w", err)
	}
	return ParseFull(raw)
}

func peekTier(value any) ([]byte, Tier, error) {
	raw, err := schema.ToJSON(value)
	if err != nil {
		return nil, "", fmt.Errorf("dapp: %w", err)
	}
	var w tierWire
	if err := schema.DecodeOpen(raw, &w); err != nil {
		return nil, "", fmt.Errorf("dapp: tier: %w", err)
	}
	return raw, *w.Tier, nil
}

// IsCore reports whether value has the five Core fields, all strings.
func IsCore(value any) bool {
	_, err := ParseCore(value)
	return err == nil
}

// IsFull reports whether value is a valid Full item. See ParseFull.
func IsFull(value any) bool {
	_, err := ParseFull(value)
	return err == nil
}

// IsApi reports whether value is a valid ApiItem. See ParseApi.
func IsApi(value any) bool {
	_, err := ParseApi(value)
	return err == nil
}

// UpdateArgs is the body of an update call. Only these four fields may
// change after creation; absent fields keep their current value.
type UpdateArgs struct {
	Abi          *string `json:"Abi,omitempty"`
	Web3URL      *string `json:"Web3URL,omitempty"`
	GuardianURL  *string `json:"GuardianURL,omitempty"`
	ContractAddr *string `json:"ContractAddr,omitempty"`
}

// ParseUpdateArgs decodes value as UpdateArgs. Any other key, including
// DappName and Tier, is rejected.
func ParseUpdateArgs(value any) (UpdateArgs, error) {
	var args UpdateArgs
	if err := schema.Decode(value, &args); err != nil {
		return UpdateArgs{}, fmt.Errorf("dapp: update args: %w", err)
	}
	return args, nil
}

// IsUpdateArgs reports whether value is a valid update body.
func IsUpdateArgs(value any) bool {
	_, err := ParseUpdateArgs(value)
	return err == nil
}

// Apply returns c with the fields set in a replaced.
func (a UpdateArgs) Apply(c Core) Core {
	if a.Abi != nil {
		c.Abi = *a.Abi
	}
	if a.Web3URL != nil {
		c.Web3URL = *a.Web3URL
	}
	if a.GuardianURL != nil {
		c.GuardianURL = *a.GuardianURL
	}
	if a.ContractAddr != nil {
		c.ContractAddr = *a.ContractAddr
	}
	return c
}

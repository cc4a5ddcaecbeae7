package dapp

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var errNoItem = errors.New("dapp: ApiItem has no item")

// itemJSON is the flat encoding shared by Full and ApiItem values.
type itemJSON struct {
	Core
	Tier            Tier    `json:"Tier"`
	TargetRepoName  *string `json:"TargetRepoName,omitempty"`
	TargetRepoOwner *string `json:"TargetRepoOwner,omitempty"`
	OwnerEmail      *string `json:"OwnerEmail,omitempty"`
	CreationTime    *string `json:"CreationTime,omitempty"`
	DnsName         *string `json:"DnsName,omitempty"`
	State           *State  `json:"State,omitempty"`
}

func flatten(item Full) itemJSON {
	out := itemJSON{Core: item.Dapp(), Tier: item.DappTier()}
	if ent, ok := item.(EnterpriseDapp); ok {
		out.TargetRepoName = &ent.TargetRepoName
		out.TargetRepoOwner = &ent.TargetRepoOwner
	}
	return out
}

// MarshalJSON writes the item with an explicit ENTERPRISE tier.
func (d EnterpriseDapp) MarshalJSON() ([]byte, error) {
	return json.Marshal(flatten(d))
}

// UnmarshalJSON accepts only a valid ENTERPRISE item.
func (d *EnterpriseDapp) UnmarshalJSON(data []byte) error {
	full, err := ParseFull(data)
	if err != nil {
		return err
	}
	ent, ok := full.(EnterpriseDapp)
	if !ok {
		return fmt.Errorf("dapp: %s item is not an enterprise dapp", full.DappTier())
	}
	*d = ent
	return nil
}

// UnmarshalJSON accepts only a valid STANDARD or PROFESSIONAL item.
func (d *HubDapp) UnmarshalJSON(data []byte) error {
	full, err := ParseFull(data)
	if err != nil {
		return err
	}
	hub, ok := full.(HubDapp)
	if !ok {
		return fmt.Errorf("dapp: %s item is not a hub dapp", full.DappTier())
	}
	*d = hub
	return nil
}

// MarshalJSON writes the item and its management fields as one object.
func (a ApiItem) MarshalJSON() ([]byte, error) {
	if a.Item == nil {
		return nil, errNoItem
	}
	out := flatten(a.Item)
	out.OwnerEmail = &a.OwnerEmail
	out.CreationTime = &a.CreationTime
	out.DnsName = &a.DnsName
	out.State = &a.State
	return json.Marshal(out)
}

// UnmarshalJSON accepts only a valid ApiItem. See ParseApi.
func (a *ApiItem) UnmarshalJSON(data []byte) error {
	item, err := ParseApi(data)
	if err != nil {
		return err
	}
	*a = item
	return nil
}

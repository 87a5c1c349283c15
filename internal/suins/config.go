// Package suins resolves SuiNS domain registrations owned by an address and
// points their content_hash record at an IPFS CID.
package suins

import (
	"fmt"
	"strings"

	"github.com/WebHash-eth/sui-domain/internal/chain/sui/ptb"
)

// SharedObject identifies a shared on-chain object by id and the version it
// was first shared at.
type SharedObject struct {
	ObjectID       string `yaml:"object_id" json:"object_id"`
	InitialVersion uint64 `yaml:"initial_version" json:"initial_version"`
	Mutable        bool   `yaml:"mutable" json:"mutable"`
}

// ChainConfig holds the fixed coordinates of a SuiNS deployment. The order
// of the set_user_data arguments is fixed by the contract, not by this value.
type ChainConfig struct {
	DomainType  string       `yaml:"domain_type" json:"domain_type"`
	PackageID   string       `yaml:"package_id" json:"package_id"`
	Module      string       `yaml:"module" json:"module"`
	Function    string       `yaml:"function" json:"function"`
	RecordKey   string       `yaml:"record_key" json:"record_key"`
	Controller  SharedObject `yaml:"controller" json:"controller"`
	SystemState SharedObject `yaml:"system_state" json:"system_state"`
}

const (
	mainnetDomainType = "0xd22b24490e0bae52676651b4f56660a5ff8022a2576e0089f79b3c88d44e08f0::suins_registration::SuinsRegistration"
	mainnetPackageID  = "0x71af035413ed499710980ed8adb010bbf2cc5cacf4ab37c7710a4bb87eb58ba5"
	mainnetController = "0x6e0ddefc0ad98889c04bab9639e512c21766c5e6366f89e696956d9be6952871"
	systemStateID     = "0x0000000000000000000000000000000000000000000000000000000000000006"

	ContentHashKey = "content_hash"
)

// MainnetChainConfig returns the SuiNS mainnet deployment.
func MainnetChainConfig() ChainConfig {
	return ChainConfig{
		DomainType: mainnetDomainType,
		PackageID:  mainnetPackageID,
		Module:     "controller",
		Function:   "set_user_data",
		RecordKey:  ContentHashKey,
		Controller: SharedObject{
			ObjectID:       mainnetController,
			InitialVersion: 13,
			Mutable:        true,
		},
		SystemState: SharedObject{
			ObjectID:       systemStateID,
			InitialVersion: 1,
			Mutable:        false,
		},
	}
}

// Target returns the set_user_data entry point.
func (c ChainConfig) Target() ptb.Target {
	return ptb.Target{Package: c.PackageID, Module: c.Module, Function: c.Function}
}

// Validate checks that every coordinate is present and well formed.
func (c ChainConfig) Validate() error {
	if c.DomainType == "" {
		return fmt.Errorf("domain_type is required")
	}
	if err := validateStructType(c.DomainType); err != nil {
		return fmt.Errorf("domain_type: %w", err)
	}
	if _, err := ptb.NormalizeObjectID(c.PackageID); err != nil {
		return fmt.Errorf("package_id: %w", err)
	}
	if c.Module == "" || c.Function == "" {
		return fmt.Errorf("module and function are required")
	}
	if c.RecordKey == "" {
		return fmt.Errorf("record_key is required")
	}
	if _, err := ptb.NormalizeObjectID(c.Controller.ObjectID); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	if !c.Controller.Mutable {
		return fmt.Errorf("controller must be mutable")
	}
	if _, err := ptb.NormalizeObjectID(c.SystemState.ObjectID); err != nil {
		return fmt.Errorf("system_state: %w", err)
	}
	if c.SystemState.Mutable {
		return fmt.Errorf("system_state must be read-only")
	}
	if c.Controller.InitialVersion == 0 || c.SystemState.InitialVersion == 0 {
		return fmt.Errorf("shared object initial versions must be positive")
	}
	return nil
}

// validateStructType accepts <package>::<module>::<Name> with optional type
// parameters, e.g. 0x2::coin::Coin<0x2::sui::SUI>. Only the outer type is
// checked.
func validateStructType(s string) error {
	base, params, generic := strings.Cut(s, "<")
	if generic && (!strings.HasSuffix(params, ">") || len(params) == 1) {
		return fmt.Errorf("struct type %q: malformed type parameters", s)
	}
	_, err := ptb.ParseTarget(base)
	return err
}

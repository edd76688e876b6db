package sdk

import "strings"

type AddressDomain string

const (
	AddressDomainUser     AddressDomain = "user"
	AddressDomainContract AddressDomain = "contract"
	AddressDomainSystem   AddressDomain = "system"
)

// Address is a ledger account identifier. Teams are keyed by their founder's Address.
type Address string

// String returns the literal representation of the address.
// Example payload: sdk.Address("RED7Z4M2").String()
func (a Address) String() string {
	return string(a)
}

// Domain quickly checks the prefix to guess if we deal with user/contract/system domain.
// Example payload: sdk.Address("contract:attack_game").Domain()
func (a Address) Domain() AddressDomain {
	if strings.HasPrefix(a.String(), "system:") {
		return AddressDomainSystem
	}
	if strings.HasPrefix(a.String(), "contract:") {
		return AddressDomainContract
	}
	return AddressDomainUser
}

// IsValid is a light sanity check: non-empty, no separators we use inside state keys.
// Example payload: sdk.Address("RED7Z4M2").IsValid()
func (a Address) IsValid() bool {
	s := a.String()
	if s == "" || len(s) > 128 {
		return false
	}
	return !strings.ContainsAny(s, "| \t\n")
}

package sdk

import "strings"

// Asset identifies a tracked value kind on the ledger. The native currency is AssetBase,
// every team gets its own asset id defined at team creation.
type Asset string

const (
	AssetBase Asset = "base"
)

// String returns the raw asset id for logging or host calls.
// Example payload: sdk.AssetBase.String()
func (a Asset) String() string {
	return string(a)
}

// IsBase reports whether the asset is the ledger's native currency.
// Example payload: sdk.Asset("base").IsBase()
func (a Asset) IsBase() bool {
	return a == AssetBase
}

// IsValid rejects empty ids and ids carrying the state key separators.
func (a Asset) IsValid() bool {
	s := a.String()
	return s != "" && !strings.ContainsAny(s, "| \t\n")
}

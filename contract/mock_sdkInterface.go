package contract

import (
	"fmt"

	"attack_game/sdk"
)

// SDKInterface is the slice of the ledger the contest calls into while handling a
// trigger. Payments are not host calls: they travel back in the Response and the
// ledger settles them once the trigger commits.
type SDKInterface interface {
	Log(msg string)
	// DefineAsset registers a new asset issued by the contract and returns its id.
	DefineAsset(definition string) (sdk.Asset, error)
	// Balance is the contract's own balance, trigger outputs included.
	Balance(asset sdk.Asset) uint64
}

// MockSDK is a deterministic in-process host for unit tests.
type MockSDK struct {
	Logs     []string
	Balances map[sdk.Asset]uint64
	Defined  []sdk.Asset
	// FailDefine makes DefineAsset return an error, for exercising host failures.
	FailDefine bool
}

func NewMockSDK() *MockSDK {
	return &MockSDK{Balances: map[sdk.Asset]uint64{}}
}

func (m *MockSDK) Log(msg string) { m.Logs = append(m.Logs, msg) }

func (m *MockSDK) DefineAsset(definition string) (sdk.Asset, error) {
	if m.FailDefine {
		return "", fmt.Errorf("mock: asset definition refused")
	}
	asset := sdk.Asset(fmt.Sprintf("asset%d", len(m.Defined)+1))
	m.Defined = append(m.Defined, asset)
	return asset, nil
}

func (m *MockSDK) Balance(asset sdk.Asset) uint64 { return m.Balances[asset] }

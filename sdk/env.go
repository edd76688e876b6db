package sdk

import "sort"

type Sender struct {
	Address Address `json:"id"`
}

// Env is the snapshot of a single trigger as the host hands it to the contract.
// Outputs holds everything the trigger paid to the contract, keyed by asset.
type Env struct {
	ContractId  Address           `json:"contract.id"`
	TxId        string            `json:"tx.id"`
	BlockHeight uint64            `json:"block.height"`
	Timestamp   string            `json:"block.timestamp"`
	Sender      Sender            `json:"msg.sender"`
	Outputs     map[Asset]uint64  `json:"msg.outputs"`
	Data        string            `json:"msg.data"`
	Extra       map[string]string `json:"-"`
}

// Value returns the amount of asset attached to the trigger, zero when absent.
// Example payload: env.Value(sdk.AssetBase)
func (e *Env) Value(asset Asset) uint64 {
	if e.Outputs == nil {
		return 0
	}
	return e.Outputs[asset]
}

// ForeignAssets lists the non-native assets attached to the trigger in sorted order
// so every node walks them identically.
func (e *Env) ForeignAssets() []Asset {
	out := make([]Asset, 0, len(e.Outputs))
	for asset, amount := range e.Outputs {
		if asset.IsBase() || amount == 0 {
			continue
		}
		out = append(out, asset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

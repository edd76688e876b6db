package main

import (
	"errors"

	"attack_game/contract"
	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Host Bindings
// -----------------------------------------------------------------------------

// chainState is the contract kv storage of the host.
type chainState struct{}

func (chainState) Set(key, value string) { sdk.StateSetObject(key, value) }

func (chainState) Get(key string) *string { return sdk.StateGetObject(key) }

func (chainState) Delete(key string) { sdk.StateDeleteObject(key) }

// hostSDK routes contract host calls to the sdk imports.
type hostSDK struct{}

func (hostSDK) Log(msg string) { sdk.Log(msg) }

func (hostSDK) DefineAsset(definition string) (sdk.Asset, error) {
	asset := sdk.DefineAsset(definition)
	if asset == "" {
		return "", errors.New("host returned an empty asset id")
	}
	return asset, nil
}

func (hostSDK) Balance(asset sdk.Asset) uint64 { return sdk.GetBalance(asset) }

var (
	_ contract.State        = chainState{}
	_ contract.SDKInterface = hostSDK{}
)

// -----------------------------------------------------------------------------
// Trigger
// -----------------------------------------------------------------------------

// trigger runs one delivery of the ledger. The payload, when given, wins over the
// msg.data the env carries. Rejections come back as a bounced response, only a
// response that cannot be encoded aborts.
func trigger(payload *string, cfg contract.Config) *string {
	env := sdk.GetEnv()
	if payload != nil {
		env.Data = *payload
	}
	resp := contract.New(chainState{}, hostSDK{}, cfg).Execute(&env)
	raw, err := contract.EncodeResponse(resp)
	if err != nil {
		sdk.Abort("encode response: " + err.Error())
	}
	out := string(raw)
	return &out
}

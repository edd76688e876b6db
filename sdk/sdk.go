package sdk

import (
	"encoding/json"
	"strconv"
)

// Log writes a message to the host console so we can trace contract steps.
// Example payload: sdk.Log("hello contest")
func Log(s string) {
	log(&s)
}

// Abort stops execution immediately and surfaces the message to the chain, so use sparingly.
// Example payload: sdk.Abort("corrupt team record")
func Abort(msg string) {
	ln := int32(0)
	abort(&msg, nil, &ln, &ln)
	panic(msg)
}

// StateSetObject stores a key/value string pair into contract kv storage.
// Example payload: sdk.StateSetObject("winner", "RED7Z4M2")
func StateSetObject(key string, value string) {
	stateSetObject(&key, &value)
}

// StateGetObject fetches a key and returns nil when missing.
// Example payload: sdk.StateGetObject("winner")
func StateGetObject(key string) *string {
	return stateGetObject(&key)
}

// StateDeleteObject removes the key entirely.
// Example payload: sdk.StateDeleteObject("winner")
func StateDeleteObject(key string) {
	stateDeleteObject(&key)
}

// GetEnv pulls the JSON env blob from the host and maps it to the Env struct.
// Example payload: sdk.GetEnv()
func GetEnv() Env {
	envStr := *getEnv(nil)
	env := Env{}
	if err := json.Unmarshal([]byte(envStr), &env); err != nil {
		Abort("invalid env: " + err.Error())
	}
	return env
}

// GetEnvStr returns the raw JSON environment string without parsing.
// Example payload: sdk.GetEnvStr()
func GetEnvStr() string {
	return *getEnv(nil)
}

// GetEnvKey pulls a single env key (like tx.id) to avoid parsing the whole struct.
// Example payload: sdk.GetEnvKey("tx.id")
func GetEnvKey(key string) *string {
	return getEnvKey(&key)
}

// GetBalance queries the contract's own balance of the given asset, including the
// outputs of the trigger currently being executed.
// Example payload: sdk.GetBalance(sdk.AssetBase)
func GetBalance(asset Asset) uint64 {
	as := asset.String()
	balStr := *getBalance(&as)
	bal, err := strconv.ParseUint(balStr, 10, 64)
	if err != nil {
		Abort("invalid balance from host")
	}
	return bal
}

// DefineAsset asks the host to register a new divisible asset issued by this contract.
// The definition is the host-specific json blob (cap, transferability...).
// Example payload: sdk.DefineAsset(`{"is_private":false}`)
func DefineAsset(definition string) Asset {
	return Asset(*defineAsset(&definition))
}

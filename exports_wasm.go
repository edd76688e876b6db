//go:build wasm

package main

import "attack_game/contract"

// Trigger is the single entry point: create_team, contributions, finish and
// redemptions are told apart by payload and attached assets.
//
//go:wasmexport trigger
func Trigger(payload *string) *string {
	return trigger(payload, contract.DefaultConfig())
}

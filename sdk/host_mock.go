//go:build !wasm

package sdk

import (
	"fmt"
	"strconv"
)

// --- host function mocks for native builds ---

var (
	mockDB       = map[string]string{}
	mockEnv      = `{"msg.sender":{"id":"mock_sender"}}`
	mockBalances = map[string]uint64{}
	mockAssets   uint64
	mockLogs     []string
)

// SetMockEnv replaces the env blob returned by GetEnv on native builds.
func SetMockEnv(envJSON string) {
	mockEnv = envJSON
}

// SetMockBalance sets the contract balance reported by GetBalance on native builds.
func SetMockBalance(asset Asset, amount uint64) {
	mockBalances[asset.String()] = amount
}

// MockLogs returns everything logged through Log since the last ResetMock.
func MockLogs() []string {
	return append([]string(nil), mockLogs...)
}

// ResetMock clears the mocked host storage, balances and logs.
func ResetMock() {
	mockDB = map[string]string{}
	mockBalances = map[string]uint64{}
	mockAssets = 0
	mockLogs = nil
	mockEnv = `{"msg.sender":{"id":"mock_sender"}}`
}

func log(s *string) *string {
	mockLogs = append(mockLogs, *s)
	return s
}

func stateSetObject(key *string, value *string) *string {
	mockDB[*key] = *value
	return nil
}

func stateGetObject(key *string) *string {
	val, ok := mockDB[*key]
	if !ok {
		return nil
	}
	return &val
}

func stateDeleteObject(key *string) *string {
	delete(mockDB, *key)
	return nil
}

func getEnv(arg *string) *string {
	env := mockEnv
	return &env
}

func getEnvKey(arg *string) *string {
	return nil
}

func getBalance(asset *string) *string {
	bal := strconv.FormatUint(mockBalances[*asset], 10)
	return &bal
}

func defineAsset(definition *string) *string {
	mockAssets++
	id := fmt.Sprintf("mock_asset_%d", mockAssets)
	return &id
}

func abort(msg, file *string, line, column *int32) {}

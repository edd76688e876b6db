package contract_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attack_game/contract"
	"attack_game/sdk"
	"attack_game/testkit"
)

const ContractID = sdk.Address("contract:attack_game")
const defaultTimestamp = "2025-09-03T00:00:00"

const (
	redFounder  = sdk.Address("hive:red_founder")
	blueFounder = sdk.Address("hive:blue_founder")
	alice       = sdk.Address("hive:alice")
	bob         = sdk.Address("hive:bob")
	mark        = sdk.Address("hive:mark")
	eva         = sdk.Address("hive:eva")
)

// Setup an Instance of a test
func SetupContractTest(t *testing.T, fees testkit.FeeSchedule) *testkit.Ledger {
	t.Helper()
	start, err := time.ParseInLocation("2006-01-02T15:04:05", defaultTimestamp, time.UTC)
	require.NoError(t, err)

	l := testkit.NewLedger(fees, start, nil)
	require.NoError(t, l.Deploy(ContractID, contract.NewMockState(), contract.DefaultConfig()))
	for _, addr := range []sdk.Address{redFounder, blueFounder, alice, bob, mark, eva} {
		l.Deposit(addr, sdk.AssetBase, 1_000_000_000)
	}
	return l
}

// CallContract pays native value with a payload and asserts the outcome.
func CallContract(t *testing.T, l *testkit.Ledger, from sdk.Address, amount uint64, payload string, expectedResult bool) *testkit.Receipt {
	t.Helper()
	return callContract(t, l, from, map[sdk.Asset]uint64{sdk.AssetBase: amount}, payload, expectedResult)
}

// CallContractAt is CallContract with the ledger clock moved to timestamp first.
func CallContractAt(t *testing.T, l *testkit.Ledger, from sdk.Address, amount uint64, payload string, expectedResult bool, timestamp string) *testkit.Receipt {
	t.Helper()
	if timestamp == "" {
		timestamp = defaultTimestamp
	}
	at, err := time.ParseInLocation("2006-01-02T15:04:05", timestamp, time.UTC)
	require.NoError(t, err)
	l.SetTime(at.Unix())
	return CallContract(t, l, from, amount, payload, expectedResult)
}

// Redeem sends shares plus a little native value without payload.
func Redeem(t *testing.T, l *testkit.Ledger, from sdk.Address, asset sdk.Asset, shares uint64, expectedResult bool) *testkit.Receipt {
	t.Helper()
	return callContract(t, l, from, map[sdk.Asset]uint64{sdk.AssetBase: 10000, asset: shares}, "", expectedResult)
}

func callContract(t *testing.T, l *testkit.Ledger, from sdk.Address, outputs map[sdk.Asset]uint64, payload string, expectedResult bool) *testkit.Receipt {
	t.Helper()
	receipt, err := l.Trigger(from, ContractID, outputs, payload)
	require.NoError(t, err)
	PrintLogs(t, receipt)

	if expectedResult {
		assert.False(t, receipt.Bounced(), "Contract action failed with "+receipt.Response.Error)
	} else {
		assert.True(t, receipt.Bounced(), "Contract action did not fail (as expected)")
	}
	return receipt
}

// PrintLogs prints all logs from a contract call
func PrintLogs(t *testing.T, receipt *testkit.Receipt) {
	t.Helper()
	for _, line := range receipt.Logs {
		t.Logf("[%s] %s", receipt.Unit[:8], line)
	}
}

// PayloadToJSON renders a payload map the way clients send it.
func PayloadToJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("payload: %v", err))
	}
	return string(raw)
}

func createTeam(t *testing.T, l *testkit.Ledger, founder sdk.Address, tax any) sdk.Asset {
	t.Helper()
	payload := map[string]any{"create_team": true}
	if tax != nil {
		payload["founder_tax"] = tax
	}
	receipt := CallContract(t, l, founder, 15000, PayloadToJSON(payload), true)
	asset := receipt.Var(contract.RespTeamAsset)
	require.NotEmpty(t, asset)
	return sdk.Asset(asset)
}

func contribute(t *testing.T, l *testkit.Ledger, from, team sdk.Address, amount uint64, expectedResult bool) *testkit.Receipt {
	t.Helper()
	return CallContract(t, l, from, amount, PayloadToJSON(map[string]any{"team": team}), expectedResult)
}

func finish(t *testing.T, l *testkit.Ledger, from sdk.Address, expectedResult bool) *testkit.Receipt {
	t.Helper()
	return CallContract(t, l, from, 10000, PayloadToJSON(map[string]any{"finish": true}), expectedResult)
}

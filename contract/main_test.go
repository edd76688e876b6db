package contract

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attack_game/sdk"
)

const startTS int64 = 1756857600

func testEnv(from string, ts int64, data string, outputs map[sdk.Asset]uint64) *sdk.Env {
	return &sdk.Env{
		ContractId: "contract:attack_game",
		TxId:       "tx-" + strconv.FormatInt(ts, 10),
		Timestamp:  strconv.FormatInt(ts, 10),
		Sender:     sdk.Sender{Address: sdk.Address(from)},
		Outputs:    outputs,
		Data:       data,
	}
}

func native(v uint64) map[sdk.Asset]uint64 { return map[sdk.Asset]uint64{sdk.AssetBase: v} }

func TestRoute(t *testing.T) {
	tests := map[string]struct {
		data    *TriggerData
		outputs map[sdk.Asset]uint64
		want    Action
		err     error
	}{
		"redeem":             {outputs: map[sdk.Asset]uint64{"asset1": 5}, want: ActionRedeem},
		"redeem with native": {outputs: map[sdk.Asset]uint64{"asset1": 5, sdk.AssetBase: 1}, want: ActionRedeem},
		"nothing":            {outputs: native(5), err: ErrUnknownRequest},
		"no action":          {data: &TriggerData{}, outputs: native(5), err: ErrUnknownRequest},
		"create first":       {data: &TriggerData{CreateTeam: true, Team: "hive:x", Finish: true}, outputs: native(5), want: ActionCreateTeam},
		"team before finish": {data: &TriggerData{Team: "hive:x", Finish: true}, outputs: native(5), want: ActionContribute},
		"finish":             {data: &TriggerData{Finish: true}, want: ActionFinish},
		"asset with data":    {data: &TriggerData{Finish: true}, outputs: map[sdk.Asset]uint64{"asset1": 1}, want: ActionFinish, err: ErrUnexpectedAsset},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := route(&sdk.Env{Outputs: tc.outputs}, tc.data)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExecuteCreateTeam(t *testing.T) {
	st, host := NewMockState(), NewMockSDK()
	c := New(st, host, DefaultConfig())

	resp := c.Execute(testEnv("hive:red", startTS, `{"create_team":true}`, native(15000)))
	require.False(t, resp.Bounced, resp.Error)
	assert.Equal(t, "asset1", resp.ResponseVars[RespTeamAsset])
	assert.Empty(t, resp.Payments)
	assert.Equal(t, []string{"tc|id:hive:red|as:asset1|tax:0"}, host.Logs)

	assert.Equal(t, "asset1|0|1756857600", *st.Get(teamKey("hive:red")))
	assert.Equal(t, "hive:red", *st.Get(assetKey("asset1")))
	assert.Equal(t, "hive:red", *st.Get(teamsIndexKey))
	assert.Equal(t, "0", *st.Get(teamAmountKey("hive:red")))
}

func TestExecuteBounceWritesNothing(t *testing.T) {
	st, host := NewMockState(), NewMockSDK()
	c := New(st, host, DefaultConfig())

	resp := c.Execute(testEnv("hive:red", startTS, `{"create_team":true}`, native(9999)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrInsufficientTriggerValue.Code, resp.ErrorCode)
	assert.Equal(t, ErrInsufficientTriggerValue.Error(), resp.Error)
	assert.Empty(t, st.Keys())
	assert.Empty(t, host.Defined)
	assert.Equal(t, []string{"bn|by:hive:red|a:create_team|k:validation|c:insufficient_value"}, host.Logs)

	host.FailDefine = true
	resp = c.Execute(testEnv("hive:red", startTS, `{"create_team":true}`, native(15000)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrHost.Code, resp.ErrorCode)
	assert.Empty(t, st.Keys())

	host.FailDefine = false
	require.False(t, c.Execute(testEnv("hive:red", startTS, `{"create_team":true}`, native(15000))).Bounced)
	before := st.Keys()
	resp = c.Execute(testEnv("hive:red", startTS+1, `{"create_team":true,"founder_tax":0.2}`, native(15000)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrTeamAlreadyExists.Code, resp.ErrorCode)
	assert.Equal(t, before, st.Keys())
	assert.Equal(t, "asset1|0|1756857600", *st.Get(teamKey("hive:red")))
}

func TestExecuteContestLifecycle(t *testing.T) {
	st, host := NewMockState(), NewMockSDK()
	cfg := DefaultConfig()
	c := New(st, host, cfg)
	window := cfg.challengeSeconds()

	require.False(t, c.Execute(testEnv("hive:red", startTS, `{"create_team":true}`, native(15000))).Bounced)
	require.False(t, c.Execute(testEnv("hive:blue", startTS, `{"create_team":true}`, native(15000))).Bounced)

	resp := c.Execute(testEnv("hive:red", startTS+10, `{"team":"hive:red"}`, native(100)))
	require.False(t, resp.Bounced, resp.Error)
	assert.Equal(t, "hive:red", resp.ResponseVars[RespWinner])
	assert.Equal(t, []Payment{{Address: "hive:red", Asset: "asset1", Amount: 100}}, resp.Payments)
	assert.Equal(t, "1756857610", *st.Get(leadSinceKey))

	// blue ties, red keeps the lead and the clock keeps running
	resp = c.Execute(testEnv("hive:blue", startTS+20, `{"team":"hive:blue"}`, native(100)))
	require.False(t, resp.Bounced, resp.Error)
	assert.Equal(t, "hive:red", resp.ResponseVars[RespWinner])
	assert.Equal(t, "1756857610", *st.Get(leadSinceKey))

	resp = c.Execute(testEnv("hive:alice", startTS+30, `{"team":"hive:red"}`, native(100)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrWinningTeamLocked.Code, resp.ErrorCode)

	resp = c.Execute(testEnv("hive:red", startTS+10+window-1, `{"finish":true}`, native(1)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrChallengePeriodNotElapsed.Code, resp.ErrorCode)

	resp = c.Execute(testEnv("hive:red", startTS+10, `null`, map[sdk.Asset]uint64{"asset1": 100}))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrContestNotFinished.Code, resp.ErrorCode)

	host.Balances[sdk.AssetBase] = 12345
	resp = c.Execute(testEnv("hive:eva", startTS+10+window, `{"finish":true}`, native(1)))
	require.False(t, resp.Bounced, resp.Error)
	assert.Equal(t, "12345", resp.ResponseVars[RespTotal])
	assert.Equal(t, "1", resp.ResponseVars[RespFinished])

	resp = c.Execute(testEnv("hive:blue", startTS+10+window, "", map[sdk.Asset]uint64{"asset2": 100}))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrWrongAssetRedeemed.Code, resp.ErrorCode)

	resp = c.Execute(testEnv("hive:red", startTS+10+window, "", map[sdk.Asset]uint64{"asset1": 100}))
	require.False(t, resp.Bounced, resp.Error)
	assert.Equal(t, []Payment{{Address: "hive:red", Asset: sdk.AssetBase, Amount: 12345}}, resp.Payments)
	assert.Equal(t, "12345", *st.Get(paidKey))
	assert.Equal(t, "100", *st.Get(teamFounderRedeemedKey("hive:red")))

	// the founder position is used up, and the pool with it
	resp = c.Execute(testEnv("hive:red", startTS+10+window, "", map[sdk.Asset]uint64{"asset1": 1}))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrInvariant.Code, resp.ErrorCode)
	assert.Equal(t, "12345", *st.Get(paidKey))

	resp = c.Execute(testEnv("hive:blue", startTS+10+window, `{"create_team":true}`, native(15000)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrContestFinished.Code, resp.ErrorCode)
}

// panicState blows up on every read.
type panicState struct{ *MockState }

func (panicState) Get(string) *string { panic("disk on fire") }

func TestExecuteRecoversPanic(t *testing.T) {
	host := NewMockSDK()
	c := New(panicState{NewMockState()}, host, DefaultConfig())

	resp := c.Execute(testEnv("hive:red", startTS, `{"finish":true}`, native(1)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrInvariant.Code, resp.ErrorCode)
	assert.Contains(t, resp.Error, "disk on fire")
}

func TestExecuteRejectsBadEnv(t *testing.T) {
	c := New(NewMockState(), NewMockSDK(), DefaultConfig())

	env := testEnv("hive:red", startTS, `{"finish":true}`, native(1))
	env.Timestamp = ""
	resp := c.Execute(env)
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrCorruptState.Code, resp.ErrorCode)

	resp = c.Execute(testEnv("hive:red", startTS, `{"team":`, native(1)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrInvalidTriggerData.Code, resp.ErrorCode)

	resp = c.Execute(testEnv("hive:red", startTS, `{"finish":true}`, native(1)))
	require.True(t, resp.Bounced)
	assert.Equal(t, ErrNoWinnerYet.Code, resp.ErrorCode)
}

package contract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attack_game/contract"
	"attack_game/sdk"
	"attack_game/testkit"
)

func TestOneVsOne(t *testing.T) {
	l := SetupContractTest(t, testkit.FeeSchedule{BounceFee: 10000, DefineFee: 5000, PaymentFee: 4290})

	redAsset := createTeam(t, l, redFounder, nil)
	blueAsset := createTeam(t, l, blueFounder, nil)
	assert.NotEqual(t, redAsset, blueAsset)

	r := contribute(t, l, redFounder, redFounder, 100_000_000, true)
	assert.Equal(t, redFounder.String(), r.Var(contract.RespWinner))
	assert.Equal(t, uint64(100_000_000), l.Balance(redFounder, redAsset))

	r = contribute(t, l, blueFounder, blueFounder, 200_000_000, true)
	assert.Equal(t, blueFounder.String(), r.Var(contract.RespWinner))

	r = contribute(t, l, redFounder, redFounder, 200_000_000, true)
	assert.Equal(t, redFounder.String(), r.Var(contract.RespWinner))

	l.TimeTravel(48 * time.Hour)
	r = finish(t, l, redFounder, true)
	assert.Equal(t, "500017130", r.Var(contract.RespTotal))
	assert.Equal(t, uint64(500017130), l.Balance(ContractID, sdk.AssetBase))

	r = Redeem(t, l, redFounder, redAsset, 300_000_000, true)
	assert.Equal(t, "500017130", r.Var(contract.RespPayout))
	assert.Equal(t, uint64(500017130), r.PaidTo(redFounder, sdk.AssetBase))
	assert.Zero(t, l.Balance(redFounder, redAsset))
	assert.Equal(t, uint64(10000-4290), l.Balance(ContractID, sdk.AssetBase))
}

func TestTeamWithTax(t *testing.T) {
	l := SetupContractTest(t, testkit.DefaultFees())

	redAsset := createTeam(t, l, redFounder, 0.5)
	createTeam(t, l, blueFounder, 0.5)

	steps := []struct {
		from, team sdk.Address
		ok         bool
		winner     sdk.Address
	}{
		{redFounder, redFounder, true, redFounder},
		{alice, redFounder, false, ""},
		{blueFounder, blueFounder, true, redFounder},
		{mark, blueFounder, true, blueFounder},
		{alice, redFounder, true, blueFounder},
		{bob, redFounder, true, redFounder},
		{eva, blueFounder, true, redFounder},
	}
	for i, s := range steps {
		r := contribute(t, l, s.from, s.team, 100_000_000, s.ok)
		if !s.ok {
			assert.Equal(t, contract.ErrWinningTeamLocked.Error(), r.Response.Error, "step %d", i)
			assert.Equal(t, uint64(100_000_000-10000), r.PaidTo(s.from, sdk.AssetBase), "step %d refund", i)
			continue
		}
		assert.Equal(t, s.winner.String(), r.Var(contract.RespWinner), "step %d", i)
	}

	l.TimeTravel(48 * time.Hour)
	r := finish(t, l, eva, true)
	assert.Equal(t, "600024908", r.Var(contract.RespTotal))

	r = Redeem(t, l, redFounder, redAsset, 100_000_000, true)
	assert.Equal(t, uint64(400016605), r.PaidTo(redFounder, sdk.AssetBase))
	r = Redeem(t, l, alice, redAsset, 100_000_000, true)
	assert.Equal(t, uint64(100004151), r.PaidTo(alice, sdk.AssetBase))
	r = Redeem(t, l, bob, redAsset, 100_000_000, true)
	assert.Equal(t, uint64(100004151), r.PaidTo(bob, sdk.AssetBase))

	paid, ok, err := l.StateVar(ContractID, contract.PaidKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "600024907", paid)
}

func TestFinishGating(t *testing.T) {
	l := SetupContractTest(t, testkit.DefaultFees())
	createTeam(t, l, redFounder, nil)
	createTeam(t, l, blueFounder, nil)

	r := finish(t, l, eva, false)
	assert.Equal(t, contract.ErrNoWinnerYet.Code, r.Response.ErrorCode)

	contribute(t, l, redFounder, redFounder, 1_000_000, true)

	r = CallContractAt(t, l, eva, 10000, `{"finish":true}`, false, "2025-09-04T23:59:59")
	assert.Equal(t, contract.ErrChallengePeriodNotElapsed.Code, r.Response.ErrorCode)

	// nobody finished in time, blue takes over and restarts the window
	CallContractAt(t, l, blueFounder, 2_000_000, PayloadToJSON(map[string]any{"team": blueFounder}), true, "2025-09-05T00:00:00")
	r = CallContractAt(t, l, eva, 10000, `{"finish":true}`, false, "2025-09-06T23:59:59")
	assert.Equal(t, contract.ErrChallengePeriodNotElapsed.Code, r.Response.ErrorCode)

	r = CallContractAt(t, l, eva, 10000, `{"finish":true}`, true, "2025-09-07T00:00:00")
	assert.Equal(t, blueFounder.String(), r.Var(contract.RespWinner))
	assert.Equal(t, "1", r.Var(contract.RespFinished))

	r = finish(t, l, eva, false)
	assert.Equal(t, contract.ErrAlreadyFinished.Code, r.Response.ErrorCode)

	r = contribute(t, l, redFounder, redFounder, 5_000_000, false)
	assert.Equal(t, contract.ErrContestFinished.Code, r.Response.ErrorCode)
}

func TestAssetGating(t *testing.T) {
	l := SetupContractTest(t, testkit.DefaultFees())
	redAsset := createTeam(t, l, redFounder, nil)
	blueAsset := createTeam(t, l, blueFounder, nil)
	contribute(t, l, blueFounder, blueFounder, 1_000_000, true)
	contribute(t, l, redFounder, redFounder, 2_000_000, true)

	// shares are only accepted as a redemption
	r := callContract(t, l, redFounder, map[sdk.Asset]uint64{sdk.AssetBase: 50000, redAsset: 10}, PayloadToJSON(map[string]any{"team": blueFounder}), false)
	assert.Equal(t, contract.ErrUnexpectedAsset.Code, r.Response.ErrorCode)
	assert.Equal(t, uint64(10), r.PaidTo(redFounder, redAsset))

	r = Redeem(t, l, redFounder, redAsset, 10, false)
	assert.Equal(t, contract.ErrContestNotFinished.Code, r.Response.ErrorCode)

	l.TimeTravel(48 * time.Hour)
	finish(t, l, eva, true)

	before, err := l.Contest(ContractID)
	require.NoError(t, err)
	r = Redeem(t, l, blueFounder, blueAsset, 1_000_000, false)
	assert.Equal(t, contract.ErrWrongAssetRedeemed.Code, r.Response.ErrorCode)
	assert.Equal(t, uint64(1_000_000), l.Balance(blueFounder, blueAsset), "loser shares are refunded")
	after, err := l.Contest(ContractID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	require.NotNil(t, after.FinalPool)
	assert.Equal(t, *before.FinalPool, *after.FinalPool)

	r = callContract(t, l, redFounder, map[sdk.Asset]uint64{sdk.AssetBase: 10000, redAsset: 5, blueAsset: 0}, "", true)
	assert.NotZero(t, r.PaidTo(redFounder, sdk.AssetBase))
}

func TestCreateTeamRules(t *testing.T) {
	l := SetupContractTest(t, testkit.FeeSchedule{BounceFee: 5000, DefineFee: 5000, PaymentFee: 2156})

	r := CallContract(t, l, redFounder, 9999, `{"create_team":true}`, false)
	assert.Equal(t, contract.ErrInsufficientTriggerValue.Code, r.Response.ErrorCode)
	assert.Equal(t, uint64(4999), r.PaidTo(redFounder, sdk.AssetBase), "bounce fee is kept")

	for _, tax := range []any{1, "abc", -0.2, "1e-30", "0x1p-3", 1.5e3} {
		r = CallContract(t, l, redFounder, 15000, PayloadToJSON(map[string]any{"create_team": true, "founder_tax": tax}), false)
		assert.Equal(t, contract.ErrInvalidTax.Code, r.Response.ErrorCode, "tax %v", tax)
	}

	createTeam(t, l, redFounder, "0.1")
	r = CallContract(t, l, redFounder, 15000, `{"create_team":true}`, false)
	assert.Equal(t, contract.ErrTeamAlreadyExists.Code, r.Response.ErrorCode)

	r = contribute(t, l, alice, bob, 10000, false)
	assert.Equal(t, contract.ErrTeamNotFound.Code, r.Response.ErrorCode)

	r = CallContract(t, l, alice, 10000, `{"memo":"gm"}`, false)
	assert.Equal(t, contract.ErrUnknownRequest.Code, r.Response.ErrorCode)

	r = CallContract(t, l, alice, 10000, "", false)
	assert.Equal(t, contract.ErrUnknownRequest.Code, r.Response.ErrorCode)

	c, err := l.Contest(ContractID)
	require.NoError(t, err)
	assert.Equal(t, []sdk.Address{redFounder}, c.Order)
	team, ok := c.Team(redFounder)
	require.True(t, ok)
	assert.Equal(t, "1/10", team.FounderTax.RatString())

	// clients serialize small numbers with an exponent
	createTeam(t, l, blueFounder, 1e-7)
	c, err = l.Contest(ContractID)
	require.NoError(t, err)
	team, ok = c.Team(blueFounder)
	require.True(t, ok)
	assert.Equal(t, "1/10000000", team.FounderTax.RatString())
}

func TestRedemptionNeedsBounceFee(t *testing.T) {
	l := SetupContractTest(t, testkit.DefaultFees())
	redAsset := createTeam(t, l, redFounder, nil)
	createTeam(t, l, blueFounder, nil)
	contribute(t, l, blueFounder, blueFounder, 50_000_000, true)
	contribute(t, l, redFounder, redFounder, 100_000_000, true)
	l.TimeTravel(48 * time.Hour)
	finish(t, l, eva, true)

	pool := l.Balance(ContractID, sdk.AssetBase)
	_, err := l.Trigger(redFounder, ContractID, map[sdk.Asset]uint64{redAsset: 50_000_000}, "")
	require.ErrorIs(t, err, testkit.ErrBelowBounceFee)
	assert.Equal(t, uint64(100_000_000), l.Balance(redFounder, redAsset))
	assert.Equal(t, pool, l.Balance(ContractID, sdk.AssetBase))
	_, ok, err := l.StateVar(ContractID, contract.PaidKey)
	require.NoError(t, err)
	assert.False(t, ok)

	// both halves pay out once the fee comes with the shares
	first := Redeem(t, l, redFounder, redAsset, 50_000_000, true).PaidTo(redFounder, sdk.AssetBase)
	second := Redeem(t, l, redFounder, redAsset, 50_000_000, true).PaidTo(redFounder, sdk.AssetBase)
	total, _, err := l.StateVar(ContractID, contract.TotalKey)
	require.NoError(t, err)
	paid, _, err := l.StateVar(ContractID, contract.PaidKey)
	require.NoError(t, err)
	assert.Equal(t, total, paid)
	assert.Equal(t, total, contract.UInt64ToString(first+second))
	assert.Zero(t, l.Balance(redFounder, redAsset))
}

func TestFounderBoughtShares(t *testing.T) {
	l := SetupContractTest(t, testkit.DefaultFees())
	redAsset := createTeam(t, l, redFounder, 0.5)
	createTeam(t, l, blueFounder, 0.5)

	contribute(t, l, redFounder, redFounder, 100_000_000, true)
	contribute(t, l, mark, blueFounder, 200_000_000, true)
	contribute(t, l, alice, redFounder, 200_000_000, true)
	require.NoError(t, l.Transfer(alice, redFounder, redAsset, 100_000_000))

	l.TimeTravel(48 * time.Hour)
	r := finish(t, l, eva, true)
	require.Equal(t, "500023532", r.Var(contract.RespTotal))

	// the founder rate covers the founder's own contribution once
	r = Redeem(t, l, redFounder, redAsset, 100_000_000, true)
	assert.Equal(t, uint64(333349021), r.PaidTo(redFounder, sdk.AssetBase))
	r = Redeem(t, l, redFounder, redAsset, 100_000_000, true)
	assert.Equal(t, uint64(83337255), r.PaidTo(redFounder, sdk.AssetBase))
	r = Redeem(t, l, alice, redAsset, 100_000_000, true)
	assert.Equal(t, uint64(83337255), r.PaidTo(alice, sdk.AssetBase))

	paid, _, err := l.StateVar(ContractID, contract.PaidKey)
	require.NoError(t, err)
	assert.Equal(t, "500023531", paid)
}

func TestContestQueriesAreReadOnly(t *testing.T) {
	l := SetupContractTest(t, testkit.DefaultFees())
	createTeam(t, l, redFounder, nil)
	createTeam(t, l, blueFounder, 0.25)
	contribute(t, l, alice, blueFounder, 7_000_000, true)

	vars1, err := l.StateVars(ContractID)
	require.NoError(t, err)
	c1, err := l.Contest(ContractID)
	require.NoError(t, err)
	vars2, err := l.StateVars(ContractID)
	require.NoError(t, err)
	c2, err := l.Contest(ContractID)
	require.NoError(t, err)

	assert.Equal(t, vars1, vars2)
	assert.Equal(t, c1, c2)

	require.NotNil(t, c1.Leader())
	assert.Equal(t, blueFounder, c1.Leader().ID)
	assert.Equal(t, uint64(7_000_000), c1.Leader().TotalShares)
	assert.Zero(t, c1.Leader().FounderShares)
	assert.Equal(t, c1.LeadSince+int64((48*time.Hour)/time.Second), c1.ChallengeEndsAt(contract.DefaultConfig()))
	assert.False(t, c1.Finished)
	assert.Nil(t, c1.FinalPool)
	assert.Equal(t, "7000000", vars1[contract.TeamAmountKey(blueFounder)])
}

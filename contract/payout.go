package contract

import (
	"math/big"

	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Payout Math
// -----------------------------------------------------------------------------

// Payout math runs on big integers only. The tax is an exact rational num/den and
// every division floors, so the sum over all holders never exceeds the pool.

// nonFounderPayout is floor(r * P * (1 - tax) / T).
func nonFounderPayout(r, pool, total uint64, tax *big.Rat) *big.Int {
	num := new(big.Int).Mul(u(r), u(pool))
	num.Mul(num, new(big.Int).Sub(tax.Denom(), tax.Num()))
	den := new(big.Int).Mul(u(total), tax.Denom())
	return num.Div(num, den)
}

// founderEntitlement is what the founder gets for the whole founder position:
// the plain pro-rata part plus the tax on everything that is not founder owned.
// E = floor(F*P/T) + floor(tax * (P - floor(F*P/T)))
func founderEntitlement(founderShares, pool, total uint64, tax *big.Rat) *big.Int {
	base := new(big.Int).Mul(u(founderShares), u(pool))
	base.Div(base, u(total))
	rest := new(big.Int).Sub(u(pool), base)
	cut := new(big.Int).Mul(rest, tax.Num())
	cut.Div(cut, tax.Denom())
	return base.Add(base, cut)
}

// founderSlice is the cumulative founder payout after redeemed founder-rate shares:
// floor(redeemed * E / F). Paying the difference between two slices keeps partial
// redemptions summing up to exactly E.
func founderSlice(redeemed, founderShares uint64, entitlement *big.Int) *big.Int {
	n := new(big.Int).Mul(u(redeemed), entitlement)
	return n.Div(n, u(founderShares))
}

// Redemption describes one payout decision.
type Redemption struct {
	Shares        uint64
	FounderShares uint64
	Payout        uint64
}

// redemptionPayout prices r shares of the winning team. Only the founder address gets
// the founder rate and only for up to F shares over the contest lifetime; anything
// above is priced like any other holder. alreadyFounder is how many shares were
// already redeemed at the founder rate.
func redemptionPayout(team *Team, holder sdk.Address, r, pool, alreadyFounder uint64) (*Redemption, error) {
	if r == 0 {
		return nil, ErrZeroAmount
	}
	if team.TotalShares == 0 {
		return nil, ErrInvariant.withDetail("winning team has no shares")
	}
	if team.FounderShares > team.TotalShares || alreadyFounder > team.FounderShares {
		return nil, ErrInvariant.withDetail("founder shares out of range")
	}
	tax := team.FounderTax
	if tax == nil {
		tax = new(big.Rat)
	}

	atFounderRate := uint64(0)
	if holder == team.ID && team.FounderShares > alreadyFounder {
		atFounderRate = min(r, team.FounderShares-alreadyFounder)
	}

	payout := new(big.Int)
	if atFounderRate > 0 {
		e := founderEntitlement(team.FounderShares, pool, team.TotalShares, tax)
		after := founderSlice(alreadyFounder+atFounderRate, team.FounderShares, e)
		before := founderSlice(alreadyFounder, team.FounderShares, e)
		payout.Sub(after, before)
	}
	if rest := r - atFounderRate; rest > 0 {
		payout.Add(payout, nonFounderPayout(rest, pool, team.TotalShares, tax))
	}

	if payout.Sign() < 0 || payout.Cmp(u(pool)) > 0 || !payout.IsUint64() {
		return nil, ErrInvariant.withDetail("payout exceeds pool")
	}
	return &Redemption{Shares: r, FounderShares: atFounderRate, Payout: payout.Uint64()}, nil
}

func u(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

// -----------------------------------------------------------------------------
// Redemption
// -----------------------------------------------------------------------------

// redeem pays native value for winning shares sent to the contract. There is no
// payload: the ledger settled the share transfer before the trigger ran, so the
// attached amount is what the holder gave up.
func (x *call) redeem() error {
	holder := x.sender()
	if !holder.IsValid() {
		return ErrInvalidAddress
	}
	if !x.isFinished() {
		return ErrContestNotFinished
	}
	assets := x.env.ForeignAssets()
	if len(assets) != 1 {
		return ErrWrongAssetRedeemed
	}
	asset := assets[0]
	leader, ok := x.winner()
	if !ok {
		return ErrCorruptState.withDetail("finished without winner")
	}
	team, found, err := x.loadTeam(leader)
	if err != nil {
		return err
	}
	if !found {
		return ErrCorruptState.withDetail("winner has no team")
	}
	if asset != team.Asset {
		return ErrWrongAssetRedeemed
	}
	shares := x.env.Value(asset)
	if shares == 0 {
		return ErrZeroAmount
	}

	pool, err := x.finalPool()
	if err != nil {
		return err
	}
	already, err := parseUintValue(x.st.Get(teamFounderRedeemedKey(team.ID)), "founder redeemed")
	if err != nil {
		return err
	}
	paid, err := parseUintValue(x.st.Get(paidKey), "paid")
	if err != nil {
		return err
	}

	rd, err := redemptionPayout(team, holder, shares, pool, already)
	if err != nil {
		return err
	}
	newPaid, err := addUint64(paid, rd.Payout)
	if err != nil {
		return err
	}
	if newPaid > pool {
		return ErrInvariant.withDetail("payouts exceed pool")
	}
	if rd.FounderShares > 0 {
		x.st.Set(teamFounderRedeemedKey(team.ID), UInt64ToString(already+rd.FounderShares))
	}
	x.st.Set(paidKey, UInt64ToString(newPaid))

	x.resp.pay(holder, sdk.AssetBase, rd.Payout)
	x.resp.set(RespPayout, UInt64ToString(rd.Payout))
	x.emitRedeemedEvent(holder, asset, shares, rd.Payout, rd.FounderShares > 0)
	return nil
}

package contract

import (
	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Share Issuance
// -----------------------------------------------------------------------------

// issueShares mints amount team shares 1:1 to the contributor. The ledger settles
// the transfer from the response; here we only grow the counters. Shares minted to
// the founder's own address also count as founder shares.
func (x *call) issueShares(team *Team, to sdk.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	total, err := addUint64(team.TotalShares, amount)
	if err != nil {
		return err
	}
	founder := team.FounderShares
	if to == team.ID {
		if founder, err = addUint64(founder, amount); err != nil {
			return err
		}
	}
	team.TotalShares = total
	team.FounderShares = founder
	x.saveShares(team)
	x.resp.pay(to, team.Asset, amount)
	return nil
}

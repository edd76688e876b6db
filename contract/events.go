package contract

import (
	"fmt"
	"strconv"

	"attack_game/sdk"
)

// emitTeamCreatedEvent writes a short "tc" line so explorers pick up new teams without diffing state.
func (x *call) emitTeamCreatedEvent(team *Team) {
	x.log(fmt.Sprintf(
		"tc|id:%s|as:%s|tax:%s",
		team.ID,
		team.Asset,
		team.FounderTax.RatString(),
	))
}

// emitContributionEvent carries amount and the new team total so standings can be replayed from logs.
func (x *call) emitContributionEvent(team *Team, by sdk.Address, amount uint64) {
	x.log(fmt.Sprintf(
		"cb|id:%s|by:%s|am:%d|t:%d",
		team.ID,
		by,
		amount,
		team.TotalShares,
	))
}

// emitLeaderChangedEvent marks the start of a new challenge window.
func (x *call) emitLeaderChangedEvent(team sdk.Address, at int64) {
	x.log(fmt.Sprintf(
		"lc|id:%s|at:%s",
		team,
		strconv.FormatInt(at, 10),
	))
}

// emitFinishedEvent freezes the outcome in the log as well.
func (x *call) emitFinishedEvent(winner sdk.Address, pool uint64) {
	x.log(fmt.Sprintf(
		"fin|w:%s|total:%d",
		winner,
		pool,
	))
}

// emitRedeemedEvent lists shares in and value out so payouts can be audited per holder.
func (x *call) emitRedeemedEvent(holder sdk.Address, asset sdk.Asset, shares, payout uint64, founder bool) {
	x.log(fmt.Sprintf(
		"rd|by:%s|as:%s|sh:%d|am:%d|f:%s",
		holder,
		asset,
		shares,
		payout,
		strconv.FormatBool(founder),
	))
}

// emitBouncedEvent is written after the staged writes were dropped.
func emitBouncedEvent(host SDKInterface, by sdk.Address, action Action, err *ContestError) {
	host.Log(fmt.Sprintf(
		"bn|by:%s|a:%s|k:%s|c:%s",
		by,
		action.String(),
		err.Kind.String(),
		err.Code,
	))
}

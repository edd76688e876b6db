package contract

import (
	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Challenge Clock
// -----------------------------------------------------------------------------

// changeLeader records a new leader and restarts the challenge window at now.
func (x *call) changeLeader(id sdk.Address) {
	x.setWinner(id, x.now)
	x.emitLeaderChangedEvent(id, x.now)
}

// challengeOver is the pure finality gate: the lead has to survive the whole window.
func challengeOver(now, leadSince, window int64) bool {
	return now-leadSince >= window
}

// finish closes the contest once the leader has held the lead for the challenge
// period. The pool is the contract's own native balance at that moment, which is
// every accepted contribution plus retained bounce fees minus the ledger's fees.
// Anyone may call it.
// Example payload: {"finish":true}
func (x *call) finish() error {
	if x.isFinished() {
		return ErrAlreadyFinished
	}
	leader, ok := x.winner()
	if !ok {
		return ErrNoWinnerYet
	}
	since, err := x.leadSince()
	if err != nil {
		return err
	}
	if !challengeOver(x.now, since, x.cfg.challengeSeconds()) {
		return ErrChallengePeriodNotElapsed
	}
	team, found, err := x.loadTeam(leader)
	if err != nil {
		return err
	}
	if !found || team.TotalShares == 0 {
		return ErrInvariant.withDetail("winner without shares")
	}

	pool := x.host.Balance(sdk.AssetBase)
	x.markFinished(pool)

	x.resp.set(RespFinished, "1")
	x.resp.set(RespTotal, UInt64ToString(pool))
	x.resp.set(RespWinner, leader.String())
	x.emitFinishedEvent(leader, pool)
	return nil
}

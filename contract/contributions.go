package contract

import (
	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Contributions
// -----------------------------------------------------------------------------

// contribute books the attached native value for the given team and mints shares to
// the sender. The current leader cannot be fed while it is ahead, only the trailing
// side may act.
// Example payload: {"team":"RED7Z4M2"}
func (x *call) contribute(data *TriggerData) error {
	contributor := x.sender()
	if !contributor.IsValid() || !data.Team.IsValid() {
		return ErrInvalidAddress
	}
	amount := x.nativeValue()
	if amount == 0 {
		return ErrZeroAmount
	}
	if x.isFinished() {
		return ErrContestFinished
	}
	team, ok, err := x.loadTeam(data.Team)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTeamNotFound
	}
	if leader, hasLeader := x.winner(); hasLeader && leader == team.ID {
		return ErrWinningTeamLocked
	}

	if err := x.issueShares(team, contributor, amount); err != nil {
		return err
	}
	x.emitContributionEvent(team, contributor, amount)

	leader, err := x.recomputeLeader(team)
	if err != nil {
		return err
	}
	if err := x.verifyLeader(leader); err != nil {
		return err
	}
	x.resp.set(RespWinner, leader.String())
	return nil
}

// recomputeLeader hands the lead to team if it is now strictly ahead. Ties keep
// the previous leader and do not touch the challenge clock.
func (x *call) recomputeLeader(team *Team) (sdk.Address, error) {
	leader, ok := x.winner()
	if !ok {
		x.changeLeader(team.ID)
		return team.ID, nil
	}
	if leader == team.ID {
		return leader, nil
	}
	current, found, err := x.loadTeam(leader)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrCorruptState.withDetail("winner has no team")
	}
	if team.TotalShares > current.TotalShares {
		x.changeLeader(team.ID)
		return team.ID, nil
	}
	return leader, nil
}

// verifyLeader walks all teams and fails when any of them is strictly ahead of leader.
func (x *call) verifyLeader(leader sdk.Address) error {
	top, ok, err := x.loadTeam(leader)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvariant.withDetail("leader is not a team")
	}
	for _, id := range readTeamIndex(x.st) {
		team, found, err := x.loadTeam(id)
		if err != nil {
			return err
		}
		if !found {
			return ErrCorruptState.withDetail("indexed team missing")
		}
		if team.TotalShares > top.TotalShares {
			return ErrInvariant.withDetail("leader is not the strict maximum")
		}
	}
	return nil
}

package contract

import (
	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Team Registry
// -----------------------------------------------------------------------------

// createTeam registers the sender as founder of a new team and defines the team asset.
// The founder address is the team id, so one address can only ever found one team.
// Example payload: {"create_team":true,"founder_tax":0.5}
func (x *call) createTeam(data *TriggerData) error {
	founder := x.sender()
	if !founder.IsValid() {
		return ErrInvalidAddress
	}
	tax, err := parseFounderTax(data.FounderTax)
	if err != nil {
		return err
	}
	if x.nativeValue() < x.cfg.MinTriggerValue {
		return ErrInsufficientTriggerValue
	}
	if x.isFinished() {
		return ErrContestFinished
	}
	if x.teamExists(founder) {
		return ErrTeamAlreadyExists
	}

	asset, err := x.host.DefineAsset(teamAssetDefinition)
	if err != nil {
		return ErrHost.withDetail(err.Error())
	}
	if !asset.IsValid() || asset.IsBase() {
		return ErrHost.withDetail("host returned unusable asset id")
	}
	if x.assetExists(asset) {
		return ErrInvariant.withDetail("asset already bound to a team")
	}

	team := &Team{
		ID:         founder,
		Asset:      asset,
		FounderTax: tax,
		CreatedAt:  x.now,
	}
	x.insertTeam(team)

	x.resp.set(RespTeamAsset, asset.String())
	x.emitTeamCreatedEvent(team)
	return nil
}

// teamByAsset resolves a team asset back to its team, ok=false for unknown assets.
func (x *call) teamByAsset(asset sdk.Asset) (*Team, bool, error) {
	ptr := x.st.Get(assetKey(asset))
	if ptr == nil || *ptr == "" {
		return nil, false, nil
	}
	team, ok, err := x.loadTeam(sdk.Address(*ptr))
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrCorruptState.withDetail("asset points to missing team")
	}
	if team.Asset != asset {
		return nil, false, ErrCorruptState.withDetail("asset index mismatch")
	}
	return team, true, nil
}

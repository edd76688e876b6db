package contract

import (
	"attack_game/sdk"
)

// loadTeam tries the trigger cache first and decodes storage when needed.
func (x *call) loadTeam(id sdk.Address) (*Team, bool, error) {
	if cached, ok := x.cachedTeams[id]; ok {
		return cached, true, nil
	}
	team, ok, err := readTeam(x.st, id)
	if err != nil || !ok {
		return nil, ok, err
	}
	x.cachedTeams[id] = team
	return team, true, nil
}

// readTeam assembles a Team from its meta record and the two share counters.
func readTeam(st State, id sdk.Address) (*Team, bool, error) {
	ptr := st.Get(teamKey(id))
	if ptr == nil || *ptr == "" {
		return nil, false, nil
	}
	meta, err := decodeTeamMeta(*ptr)
	if err != nil {
		return nil, true, err
	}
	total, err := parseUintValue(st.Get(teamAmountKey(id)), "team amount")
	if err != nil {
		return nil, true, err
	}
	founder, err := parseUintValue(st.Get(teamFounderAmountKey(id)), "founder amount")
	if err != nil {
		return nil, true, err
	}
	if founder > total {
		return nil, true, ErrCorruptState.withDetail("founder shares exceed total")
	}
	return &Team{
		ID:            id,
		Asset:         meta.Asset,
		FounderTax:    meta.FounderTax,
		TotalShares:   total,
		FounderShares: founder,
		CreatedAt:     meta.CreatedAt,
	}, true, nil
}

// insertTeam writes a brand new team: meta, zeroed counters, asset lookup and index entry.
func (x *call) insertTeam(team *Team) {
	x.st.Set(teamKey(team.ID), encodeTeamMeta(&TeamMeta{
		Asset:      team.Asset,
		FounderTax: team.FounderTax,
		CreatedAt:  team.CreatedAt,
	}))
	x.saveShares(team)
	x.st.Set(assetKey(team.Asset), team.ID.String())
	ids := readTeamIndex(x.st)
	ids = append(ids, team.ID)
	x.st.Set(teamsIndexKey, encodeTeamIndex(ids))
	x.cachedTeams[team.ID] = team
}

// saveShares only touches the counters, the meta record is write-once.
func (x *call) saveShares(team *Team) {
	x.st.Set(teamAmountKey(team.ID), UInt64ToString(team.TotalShares))
	x.st.Set(teamFounderAmountKey(team.ID), UInt64ToString(team.FounderShares))
}

// teamExists is a cheap presence check without decoding.
func (x *call) teamExists(id sdk.Address) bool {
	if _, ok := x.cachedTeams[id]; ok {
		return true
	}
	ptr := x.st.Get(teamKey(id))
	return ptr != nil && *ptr != ""
}

// assetExists reports whether an asset id is already bound to a team.
func (x *call) assetExists(asset sdk.Asset) bool {
	ptr := x.st.Get(assetKey(asset))
	return ptr != nil && *ptr != ""
}

func readTeamIndex(st State) []sdk.Address {
	ptr := st.Get(teamsIndexKey)
	if ptr == nil {
		return nil
	}
	return decodeTeamIndex(*ptr)
}

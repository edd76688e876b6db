package contract

import (
	"attack_game/sdk"
)

// ReadContest decodes the full contest record from storage without mutating it.
// Calling it twice without a committed trigger in between returns equal snapshots.
func ReadContest(st State) (*Contest, error) {
	c := &Contest{Teams: map[sdk.Address]*Team{}}
	for _, id := range readTeamIndex(st) {
		team, ok, err := readTeam(st, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCorruptState.withDetail("indexed team missing")
		}
		c.Teams[id] = team
		c.Order = append(c.Order, id)
	}
	if w, ok := readWinner(st); ok {
		if _, known := c.Teams[w]; !known {
			return nil, ErrCorruptState.withDetail("winner has no team")
		}
		c.Winner = &w
		ts, err := readLeadSince(st)
		if err != nil {
			return nil, err
		}
		c.LeadSince = ts
	}
	c.Finished = readFinished(st)
	if c.Finished {
		pool, err := parseUintValue(st.Get(totalKey), "total")
		if err != nil {
			return nil, err
		}
		c.FinalPool = &pool
	}
	return c, nil
}

// Team returns a single team by founder address, ok=false when it does not exist.
func (c *Contest) Team(id sdk.Address) (*Team, bool) {
	t, ok := c.Teams[id]
	return t, ok
}

// Leader returns the current leading team, nil while nobody contributed.
func (c *Contest) Leader() *Team {
	if c.Winner == nil {
		return nil
	}
	return c.Teams[*c.Winner]
}

// ChallengeEndsAt is the first timestamp at which finish is accepted, zero without a leader.
func (c *Contest) ChallengeEndsAt(cfg Config) int64 {
	if c.Winner == nil {
		return 0
	}
	return c.LeadSince + cfg.challengeSeconds()
}

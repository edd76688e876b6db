package contract

import "time"

// -----------------------------------------------------------------------------
// Contest Defaults
// -----------------------------------------------------------------------------

const (
	// DefaultChallengePeriod is how long a leader must hold the lead before finish is accepted.
	DefaultChallengePeriod = 2 * 24 * time.Hour
	// DefaultMinTriggerValue is the least native value a create_team trigger has to carry.
	DefaultMinTriggerValue uint64 = 10000
	// MaxFounderTaxLength bounds the textual founder_tax so rationals stay small.
	MaxFounderTaxLength = 32
	// MaxFounderTaxExponent bounds the exponent of a founder_tax like 1e-7.
	MaxFounderTaxExponent = 18
)

// teamAssetDefinition is handed to the host for every new team: uncapped, issued by
// the contest only, freely transferable so shares can change hands before finish.
const teamAssetDefinition = `{"cap":0,"is_private":false,"is_transferrable":true,"auto_destroy":false,"fixed_denominations":false,"issued_by_definer_only":true,"cosigned_by_definer":false,"spender_attested":false}`

// -----------------------------------------------------------------------------
// Response Variable Names
// -----------------------------------------------------------------------------

const (
	RespTeamAsset = "team_asset"
	RespWinner    = "winner"
	RespFinished  = "finished"
	RespTotal     = "total"
	RespPayout    = "payout"
)

// -----------------------------------------------------------------------------
// Config
// -----------------------------------------------------------------------------

// Config holds the per-deployment constants. Every node must run the same values.
type Config struct {
	ChallengePeriod time.Duration
	MinTriggerValue uint64
}

// DefaultConfig mirrors the reference deployment: two day challenge window, 10000 minimum.
func DefaultConfig() Config {
	return Config{
		ChallengePeriod: DefaultChallengePeriod,
		MinTriggerValue: DefaultMinTriggerValue,
	}
}

// challengeSeconds rounds the configured window down to whole seconds, the ledger clock resolution.
func (c Config) challengeSeconds() int64 {
	return int64(c.ChallengePeriod / time.Second)
}

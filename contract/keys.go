package contract

import "attack_game/sdk"

// -----------------------------------------------------------------------------
// Storage Keys
// -----------------------------------------------------------------------------

// Contest-wide keys. Names are part of the public state surface explorers and tests read.
const (
	// winnerKey holds the founder address of the current leader.
	winnerKey = "winner"
	// finishedKey is written once with "1" when the contest is finalized.
	finishedKey = "finished"
	// totalKey stores the frozen pool.
	totalKey = "total"
	// leadSinceKey is the unix timestamp of the last leadership change.
	leadSinceKey = "challenging_period_start_ts"
	// paidKey sums every redemption payout, it can never pass total.
	paidKey = "paid"
	// teamsIndexKey lists team ids in creation order, pipe separated.
	teamsIndexKey = "teams"
)

const (
	// ids and assets never contain '|', so prefixed keys cannot collide.
	teamPrefix        = "team|"
	teamAmountSuffix  = "|amount"
	teamFounderSuffix = "|founder_amount"
	teamRedeemSuffix  = "|founder_redeemed"
	assetPrefix       = "asset|"
)

// teamKey stores the immutable part of a team: asset|founderTax|createdAt.
func teamKey(id sdk.Address) string {
	return teamPrefix + id.String()
}

// teamAmountKey holds the running total of shares (== accepted contributions).
func teamAmountKey(id sdk.Address) string {
	return teamPrefix + id.String() + teamAmountSuffix
}

// teamFounderAmountKey holds the shares minted to the founder's own address.
func teamFounderAmountKey(id sdk.Address) string {
	return teamPrefix + id.String() + teamFounderSuffix
}

// teamFounderRedeemedKey counts the shares already redeemed at the founder rate.
func teamFounderRedeemedKey(id sdk.Address) string {
	return teamPrefix + id.String() + teamRedeemSuffix
}

// assetKey maps a team asset back to its team so redemptions can be recognized.
func assetKey(asset sdk.Asset) string {
	return assetPrefix + asset.String()
}

// TeamAmountKey exposes the public total-shares key for a team, used by state queries.
// Example payload: TeamAmountKey(sdk.Address("RED7Z4M2"))
func TeamAmountKey(id sdk.Address) string { return teamAmountKey(id) }

// FounderRedeemedKey exposes the key counting shares redeemed at the founder rate.
func FounderRedeemedKey(id sdk.Address) string { return teamFounderRedeemedKey(id) }

// Public names of the contest-wide keys.
const (
	WinnerKey    = winnerKey
	FinishedKey  = finishedKey
	TotalKey     = totalKey
	LeadSinceKey = leadSinceKey
	TeamsKey     = teamsIndexKey
	PaidKey      = paidKey
)

package contract

import (
	"math/big"

	"attack_game/sdk"
)

// Team is a contender identified by its founder's address.
type Team struct {
	ID            sdk.Address
	Asset         sdk.Asset
	FounderTax    *big.Rat
	TotalShares   uint64
	FounderShares uint64
	CreatedAt     int64
}

// TeamMeta is the write-once part of a team stored under teamKey.
type TeamMeta struct {
	Asset      sdk.Asset
	FounderTax *big.Rat
	CreatedAt  int64
}

// Contest is a read-only snapshot of the whole contest record, used for queries.
type Contest struct {
	Teams     map[sdk.Address]*Team
	Order     []sdk.Address
	Winner    *sdk.Address
	Finished  bool
	FinalPool *uint64
	LeadSince int64
}

// Payment is an outgoing transfer the contract authorizes; the host settles it
// after the trigger commits.
type Payment struct {
	Address sdk.Address
	Asset   sdk.Asset
	Amount  uint64
}

// Response is what the contract hands back to the host for every trigger.
type Response struct {
	Bounced      bool
	Error        string
	ErrorCode    string
	ResponseVars map[string]string
	Payments     []Payment
}

func newResponse() *Response {
	return &Response{ResponseVars: map[string]string{}}
}

// set records a response variable, last write wins.
func (r *Response) set(key, value string) {
	r.ResponseVars[key] = value
}

// pay appends a payment; zero amounts are skipped since the ledger rejects empty outputs.
func (r *Response) pay(to sdk.Address, asset sdk.Asset, amount uint64) {
	if amount == 0 {
		return
	}
	r.Payments = append(r.Payments, Payment{Address: to, Asset: asset, Amount: amount})
}

// TriggerData is the structured payload attached to a trigger. Only one of the
// action fields is expected; routing picks the first that is set.
type TriggerData struct {
	CreateTeam bool
	FounderTax string
	Team       sdk.Address
	Finish     bool
}

// Action is the handler a trigger gets routed to.
type Action uint8

const (
	ActionUnknown Action = iota
	ActionCreateTeam
	ActionContribute
	ActionFinish
	ActionRedeem
)

// String prints the action as short text for events and logs.
// Example payload: ActionContribute.String()
func (a Action) String() string {
	switch a {
	case ActionCreateTeam:
		return "create_team"
	case ActionContribute:
		return "contribute"
	case ActionFinish:
		return "finish"
	case ActionRedeem:
		return "redeem"
	default:
		return "unknown"
	}
}

////////////////////////////////////////////////////////////////////////////////
// Attack Game: a two-sided team contest with a challenge window
// Teams pool native value, the leader has to survive two days unchallenged
// and the winning shareholders split the whole pool.
////////////////////////////////////////////////////////////////////////////////

package contract

import (
	"errors"
	"fmt"

	"attack_game/sdk"
)

// Contract is one deployed contest instance. The ledger delivers triggers to it one
// at a time; nothing in here is safe for concurrent Execute calls.
type Contract struct {
	state State
	host  SDKInterface
	cfg   Config
}

// New binds a contest to its storage and host.
func New(state State, host SDKInterface, cfg Config) *Contract {
	return &Contract{state: state, host: host, cfg: cfg}
}

// Config returns the constants the contest was deployed with.
func (c *Contract) Config() Config { return c.cfg }

// Execute runs one trigger to completion. Either every write commits and the
// response carries the payments, or nothing is written and the response is
// bounced with a stable error message.
func (c *Contract) Execute(env *sdk.Env) (resp *Response) {
	action := ActionUnknown
	defer func() {
		if r := recover(); r != nil {
			resp = c.bounce(env, action, ErrInvariant.withDetail(fmt.Sprint(r)))
		}
	}()

	now, err := triggerTime(env)
	if err != nil {
		return c.bounce(env, action, err)
	}
	data, err := DecodeTriggerData(env.Data)
	if err != nil {
		return c.bounce(env, action, err)
	}
	action, err = route(env, data)
	if err != nil {
		return c.bounce(env, action, err)
	}

	x := newCall(c, env, now)
	if err := x.dispatch(action, data); err != nil {
		x.st.discard()
		return c.bounce(env, action, err)
	}
	x.st.commit()
	x.flushLogs()
	return x.resp
}

// route picks the handler by payload shape. Requests with data only take native
// value; a trigger without data that carries a foreign asset is a redemption.
func route(env *sdk.Env, data *TriggerData) (Action, error) {
	foreign := len(env.ForeignAssets()) > 0
	if data == nil {
		if foreign {
			return ActionRedeem, nil
		}
		return ActionUnknown, ErrUnknownRequest
	}
	if !data.hasAction() {
		return ActionUnknown, ErrUnknownRequest
	}
	var action Action
	switch {
	case data.CreateTeam:
		action = ActionCreateTeam
	case data.Team != "":
		action = ActionContribute
	case data.Finish:
		action = ActionFinish
	}
	if foreign {
		return action, ErrUnexpectedAsset
	}
	return action, nil
}

func (x *call) dispatch(action Action, data *TriggerData) error {
	switch action {
	case ActionCreateTeam:
		return x.createTeam(data)
	case ActionContribute:
		return x.contribute(data)
	case ActionFinish:
		return x.finish()
	case ActionRedeem:
		return x.redeem()
	default:
		return ErrUnknownRequest
	}
}

// bounce builds the rejection response. Refunds are the ledger's job: it returns
// the attached value minus its bounce fee.
func (c *Contract) bounce(env *sdk.Env, action Action, err error) *Response {
	var ce *ContestError
	if !errors.As(err, &ce) {
		ce = ErrInvariant.withDetail(err.Error())
	}
	resp := newResponse()
	resp.Bounced = true
	resp.Error = ce.Error()
	resp.ErrorCode = ce.Code
	var by sdk.Address
	if env != nil {
		by = env.Sender.Address
	}
	emitBouncedEvent(c.host, by, action, ce)
	return resp
}

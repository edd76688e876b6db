package contract

import (
	"attack_game/sdk"
)

// call is the execution context of one trigger. Everything a handler reads or
// writes goes through it: the staged state, the env snapshot taken at entry and
// the response being built. cachedTeams is scoped to the trigger so repeated
// lookups stay cheap and consistent. Event lines are held back with the writes
// and only reach the host when the trigger commits.
type call struct {
	cfg         Config
	host        SDKInterface
	st          *stagedState
	env         *sdk.Env
	now         int64
	resp        *Response
	cachedTeams map[sdk.Address]*Team
	logs        []string
}

func newCall(c *Contract, env *sdk.Env, now int64) *call {
	return &call{
		cfg:         c.cfg,
		host:        c.host,
		st:          newStagedState(c.state),
		env:         env,
		now:         now,
		resp:        newResponse(),
		cachedTeams: map[sdk.Address]*Team{},
	}
}

// sender is the address that signed the trigger.
func (x *call) sender() sdk.Address {
	return x.env.Sender.Address
}

// nativeValue is the amount of the ledger's native asset attached to the trigger.
func (x *call) nativeValue() uint64 {
	return x.env.Value(sdk.AssetBase)
}

// log queues an event line until commit.
func (x *call) log(line string) {
	x.logs = append(x.logs, line)
}

// flushLogs hands the queued lines to the host in emit order.
func (x *call) flushLogs() {
	for _, line := range x.logs {
		x.host.Log(line)
	}
	x.logs = nil
}

package contract

import (
	"strconv"

	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Contest-wide State
// -----------------------------------------------------------------------------

// isFinished reports whether finish already went through.
func (x *call) isFinished() bool {
	return readFinished(x.st)
}

// markFinished writes the finished flag and the frozen pool. Both are write-once.
func (x *call) markFinished(pool uint64) {
	x.st.Set(finishedKey, "1")
	x.st.Set(totalKey, UInt64ToString(pool))
}

// winner returns the current leader, ok=false while nobody contributed.
func (x *call) winner() (sdk.Address, bool) {
	return readWinner(x.st)
}

// setWinner stores the leader and stamps the challenge clock.
func (x *call) setWinner(id sdk.Address, at int64) {
	x.st.Set(winnerKey, id.String())
	x.st.Set(leadSinceKey, strconv.FormatInt(at, 10))
}

// leadSince is the timestamp of the last leadership change.
func (x *call) leadSince() (int64, error) {
	return readLeadSince(x.st)
}

// finalPool is the pool frozen at finish.
func (x *call) finalPool() (uint64, error) {
	ptr := x.st.Get(totalKey)
	if ptr == nil {
		return 0, ErrCorruptState.withDetail("missing total")
	}
	return parseUintValue(ptr, "total")
}

func readFinished(st State) bool {
	ptr := st.Get(finishedKey)
	return ptr != nil && *ptr == "1"
}

func readWinner(st State) (sdk.Address, bool) {
	ptr := st.Get(winnerKey)
	if ptr == nil || *ptr == "" {
		return "", false
	}
	return sdk.Address(*ptr), true
}

func readLeadSince(st State) (int64, error) {
	ptr := st.Get(leadSinceKey)
	if ptr == nil || *ptr == "" {
		return 0, ErrCorruptState.withDetail("missing leadership timestamp")
	}
	ts, err := strconv.ParseInt(*ptr, 10, 64)
	if err != nil {
		return 0, ErrCorruptState.withDetail("leadership timestamp")
	}
	return ts, nil
}

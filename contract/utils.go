package contract

import (
	"strconv"
	"time"

	"attack_game/sdk"
)

// -----------------------------------------------------------------------------
// Timestamp Helpers
// -----------------------------------------------------------------------------

// triggerTime returns the block timestamp of the trigger in unix seconds.
// There is no wall-clock fallback: every node has to land on the same value.
func triggerTime(env *sdk.Env) (int64, error) {
	if env == nil || env.Timestamp == "" {
		return 0, ErrCorruptState.withDetail("missing block timestamp")
	}
	ts, ok := parseTimestamp(env.Timestamp)
	if !ok {
		return 0, ErrCorruptState.withDetail("invalid block timestamp " + strconv.Quote(env.Timestamp))
	}
	return ts, nil
}

// parseTimestamp accepts unix seconds or iso-ish strings since the env flips formats sometimes.
func parseTimestamp(val string) (int64, bool) {
	if v, err := strconv.ParseInt(val, 10, 64); err == nil {
		return v, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t.Unix(), true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", val, time.UTC); err == nil {
		return t.Unix(), true
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Arithmetic Helpers
// -----------------------------------------------------------------------------

// addUint64 adds with an overflow check, amounts come from outside so we never trust them.
func addUint64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

package contract

import (
	"strconv"
	"strings"

	"github.com/CosmWasm/tinyjson"
)

// DecodeTriggerData parses the json object attached to a trigger. An empty payload
// is not an error: redemptions carry no data and are recognized by their assets.
// Example payload: DecodeTriggerData(`{"team":"RED7Z4M2"}`)
func DecodeTriggerData(raw string) (*TriggerData, error) {
	raw = unwrapPayload(raw)
	if raw == "" || raw == "null" || raw == "{}" {
		return nil, nil
	}
	if raw[0] != '{' {
		return nil, ErrInvalidTriggerData.withDetail("expected a json object")
	}
	data := &TriggerData{}
	if err := tinyjson.Unmarshal([]byte(raw), data); err != nil {
		return nil, ErrInvalidTriggerData.withDetail(err.Error())
	}
	if data.Team != "" && !data.Team.IsValid() {
		return nil, ErrInvalidAddress
	}
	return data, nil
}

// EncodeResponse serializes the response for the host boundary.
func EncodeResponse(resp *Response) ([]byte, error) {
	return tinyjson.Marshal(resp)
}

// unwrapPayload trims whitespace and a layer of quoting some clients put around the object.
func unwrapPayload(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		first := raw[0]
		last := raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				return strings.TrimSpace(unquoted)
			}
			return strings.TrimSpace(raw[1 : len(raw)-1])
		}
	}
	return raw
}

// hasAction reports whether the payload names any handler at all.
func (d *TriggerData) hasAction() bool {
	return d != nil && (d.CreateTeam || d.Team != "" || d.Finish)
}

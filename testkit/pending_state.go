package testkit

import (
	"attack_game/contract"
)

// pendingState holds the writes of one trigger on top of a deployment's store.
// The ledger flushes it only once the response is known to settle.
type pendingState struct {
	base   contract.State
	writes map[string]*string
	order  []string
}

var _ contract.State = (*pendingState)(nil)

func newPendingState(base contract.State) *pendingState {
	return &pendingState{base: base, writes: map[string]*string{}}
}

func (p *pendingState) Get(key string) *string {
	if v, ok := p.writes[key]; ok {
		if v == nil {
			return nil
		}
		cp := *v
		return &cp
	}
	return p.base.Get(key)
}

func (p *pendingState) Set(key, value string) {
	p.track(key)
	p.writes[key] = &value
}

func (p *pendingState) Delete(key string) {
	p.track(key)
	p.writes[key] = nil
}

func (p *pendingState) track(key string) {
	if _, seen := p.writes[key]; !seen {
		p.order = append(p.order, key)
	}
}

// flush writes through to the base store in first-write order.
func (p *pendingState) flush() {
	for _, key := range p.order {
		if v := p.writes[key]; v != nil {
			p.base.Set(key, *v)
			continue
		}
		p.base.Delete(key)
	}
	p.writes = map[string]*string{}
	p.order = nil
}

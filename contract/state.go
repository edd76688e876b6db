package contract

// State is the contract key/value storage as the host exposes it.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// stagedState buffers the writes of a single trigger on top of the committed
// State. Reads see the buffered writes; nothing reaches the base until commit,
// so a rejected trigger leaves the record exactly as it was.
type stagedState struct {
	base   State
	writes map[string]*string
	order  []string
}

func newStagedState(base State) *stagedState {
	return &stagedState{base: base, writes: map[string]*string{}}
}

func (s *stagedState) Get(key string) *string {
	if v, ok := s.writes[key]; ok {
		if v == nil {
			return nil
		}
		cp := *v
		return &cp
	}
	return s.base.Get(key)
}

func (s *stagedState) Set(key, value string) {
	s.track(key)
	s.writes[key] = &value
}

func (s *stagedState) Delete(key string) {
	s.track(key)
	s.writes[key] = nil
}

func (s *stagedState) track(key string) {
	if _, seen := s.writes[key]; !seen {
		s.order = append(s.order, key)
	}
}

// commit flushes buffered writes in first-write order so every node issues the
// same sequence of host calls.
func (s *stagedState) commit() {
	for _, key := range s.order {
		v := s.writes[key]
		if v == nil {
			s.base.Delete(key)
			continue
		}
		stateSetIfChanged(s.base, key, *v)
	}
	s.discard()
}

// discard drops every buffered write.
func (s *stagedState) discard() {
	s.writes = map[string]*string{}
	s.order = nil
}

// stateSetIfChanged avoids unnecessary writes so we dont thrash storage fees.
func stateSetIfChanged(st State, key, value string) {
	if existing := st.Get(key); existing != nil && *existing == value {
		return
	}
	st.Set(key, value)
}

package contract

import (
	"encoding/json"
	"os"
	"sort"
)

// MockState is an in-memory State, used by tests and by the ledger simulator
// when no persistent store is configured.
type MockState struct {
	db map[string]string
}

func NewMockState() *MockState {
	return &MockState{
		db: make(map[string]string),
	}
}

func (m *MockState) Set(key, value string) {
	m.db[key] = value
}

func (m *MockState) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MockState) Delete(key string) {
	delete(m.db, key)
}

// Keys returns all stored keys in sorted order.
func (m *MockState) Keys() []string {
	keys := make([]string, 0, len(m.db))
	for k := range m.db {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SaveToFile writes the full map to a JSON file
func (m *MockState) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(m.db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadFromFile loads the map from a JSON file, a missing file leaves the state empty.
func (m *MockState) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &m.db)
}

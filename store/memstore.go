package store

import (
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/brats-labs/brats/types"
)

// MemStore is an in-memory StateStore. Records are kept in their encoded
// form so every Get hands back an independent copy, same as Badger would.
type MemStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

func (m *MemStore) get(key string, out interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, cbor.Unmarshal(raw, out)
}

func (m *MemStore) set(key string, v interface{}) error {
	raw, err := cbor.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemStore) GetPresaleState() (*types.PresaleState, error) {
	var st types.PresaleState
	ok, err := m.get(PresaleStatePrefix+"state", &st)
	if !ok || err != nil {
		return nil, err
	}
	return &st, nil
}

func (m *MemStore) SavePresaleState(st *types.PresaleState) error {
	return m.set(PresaleStatePrefix+"state", st)
}

func (m *MemStore) GetGlobalState() (*types.GlobalState, error) {
	var st types.GlobalState
	ok, err := m.get(GlobalStatePrefix+"state", &st)
	if !ok || err != nil {
		return nil, err
	}
	return &st, nil
}

func (m *MemStore) SaveGlobalState(st *types.GlobalState) error {
	return m.set(GlobalStatePrefix+"state", st)
}

func (m *MemStore) GetStakeAccount(addr types.Address) (*types.StakeAccount, error) {
	var acct types.StakeAccount
	_, err := m.get(StakeAccountPrefix+addr.String(), &acct)
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (m *MemStore) SaveStakeAccount(addr types.Address, acct *types.StakeAccount) error {
	return m.set(StakeAccountPrefix+addr.String(), acct)
}

func (m *MemStore) ListStakeAccounts() (map[types.Address]*types.StakeAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	accounts := make(map[types.Address]*types.StakeAccount)
	for key, raw := range m.records {
		if len(key) <= len(StakeAccountPrefix) || key[:len(StakeAccountPrefix)] != StakeAccountPrefix {
			continue
		}
		var acct types.StakeAccount
		if err := cbor.Unmarshal(raw, &acct); err != nil {
			return nil, err
		}
		accounts[types.Address(key[len(StakeAccountPrefix):])] = &acct
	}
	return accounts, nil
}

func (m *MemStore) GetStageTable() (*types.StageTable, error) {
	var tbl types.StageTable
	ok, err := m.get(StageTablePrefix+"table", &tbl)
	if !ok || err != nil {
		return nil, err
	}
	return &tbl, nil
}

func (m *MemStore) SaveStageTable(tbl *types.StageTable) error {
	return m.set(StageTablePrefix+"table", tbl)
}

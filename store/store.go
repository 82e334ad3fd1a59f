package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/brats-labs/brats/types"
)

const (
	cacheSize          = 4096
	bloomExpected      = 100_000
	bloomFalsePositive = 0.01
)

// BadgerStore implements types.StateStore on top of Badger with
// cbor-encoded records and an LRU read cache for stake accounts.
type BadgerStore struct {
	db    *Database
	cache *accountCache
}

func NewBadgerStore(path string) (*BadgerStore, error) {
	db, err := NewDatabase(path)
	if err != nil {
		return nil, err
	}

	cache, err := newAccountCache(cacheSize, bloomExpected, bloomFalsePositive)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BadgerStore{db: db, cache: cache}, nil
}

func (s *BadgerStore) Close() error {
	s.cache.purge()
	return s.db.Close()
}

func (s *BadgerStore) GetPresaleState() (*types.PresaleState, error) {
	raw, err := s.db.Get([]byte(PresaleStatePrefix + "state"))
	if err != nil || raw == nil {
		return nil, err
	}
	var st types.PresaleState
	if err := cbor.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode presale state: %v", err)
	}
	return &st, nil
}

func (s *BadgerStore) SavePresaleState(st *types.PresaleState) error {
	raw, err := cbor.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode presale state: %v", err)
	}
	return s.db.Set([]byte(PresaleStatePrefix+"state"), raw)
}

func (s *BadgerStore) GetGlobalState() (*types.GlobalState, error) {
	raw, err := s.db.Get([]byte(GlobalStatePrefix + "state"))
	if err != nil || raw == nil {
		return nil, err
	}
	var st types.GlobalState
	if err := cbor.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode global state: %v", err)
	}
	return &st, nil
}

func (s *BadgerStore) SaveGlobalState(st *types.GlobalState) error {
	raw, err := cbor.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode global state: %v", err)
	}
	return s.db.Set([]byte(GlobalStatePrefix+"state"), raw)
}

func (s *BadgerStore) GetStakeAccount(addr types.Address) (*types.StakeAccount, error) {
	if acct, ok := s.cache.get(addr); ok {
		return acct, nil
	}

	raw, err := s.db.Get([]byte(StakeAccountPrefix + addr.String()))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		// Never staked: hand back a zeroed account.
		return &types.StakeAccount{}, nil
	}

	var acct types.StakeAccount
	if err := cbor.Unmarshal(raw, &acct); err != nil {
		return nil, fmt.Errorf("failed to decode stake account %s: %v", addr, err)
	}
	s.cache.add(addr, &acct)
	return &acct, nil
}

func (s *BadgerStore) SaveStakeAccount(addr types.Address, acct *types.StakeAccount) error {
	raw, err := cbor.Marshal(acct)
	if err != nil {
		return fmt.Errorf("failed to encode stake account %s: %v", addr, err)
	}
	if err := s.db.Set([]byte(StakeAccountPrefix+addr.String()), raw); err != nil {
		return err
	}
	s.cache.add(addr, acct)
	return nil
}

func (s *BadgerStore) ListStakeAccounts() (map[types.Address]*types.StakeAccount, error) {
	accounts := make(map[types.Address]*types.StakeAccount)
	err := s.db.ScanPrefix([]byte(StakeAccountPrefix), func(key, value []byte) error {
		addr := types.Address(string(key[len(StakeAccountPrefix):]))
		var acct types.StakeAccount
		if err := cbor.Unmarshal(value, &acct); err != nil {
			return fmt.Errorf("failed to decode stake account %s: %v", addr, err)
		}
		accounts[addr] = &acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *BadgerStore) GetStageTable() (*types.StageTable, error) {
	raw, err := s.db.Get([]byte(StageTablePrefix + "table"))
	if err != nil || raw == nil {
		return nil, err
	}
	var tbl types.StageTable
	if err := cbor.Unmarshal(raw, &tbl); err != nil {
		return nil, fmt.Errorf("failed to decode stage table: %v", err)
	}
	return &tbl, nil
}

func (s *BadgerStore) SaveStageTable(tbl *types.StageTable) error {
	raw, err := cbor.Marshal(tbl)
	if err != nil {
		return fmt.Errorf("failed to encode stage table: %v", err)
	}
	return s.db.Set([]byte(StageTablePrefix+"table"), raw)
}

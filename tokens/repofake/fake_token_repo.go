package repofake

import (
	"strconv"
	"sync"

	"github.com/gearledger/gearledger/internal/errors"
	"github.com/gearledger/gearledger/tokens"
)

// FakeTokenRepo is a thread-safe in-memory implementation of tokens.Repo
type FakeTokenRepo struct {
	mu          sync.RWMutex
	record      *tokens.Record
	identity    *tokens.Identity
	lastAccount string
}

var _ tokens.Repo = (*FakeTokenRepo)(nil)

// NewFakeTokenRepo creates a new in-memory token repository
func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{}
}

func (f *FakeTokenRepo) Save(record tokens.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := record
	f.record = &rec
	return nil
}

func (f *FakeTokenRepo) Load() (tokens.Record, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.record == nil {
		return tokens.Record{}, errors.ErrNoToken
	}
	return *f.record, nil
}

func (f *FakeTokenRepo) SaveIdentity(identity tokens.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := identity
	f.identity = &id
	f.lastAccount = strconv.FormatInt(identity.ID, 10)
	return nil
}

func (f *FakeTokenRepo) Identity() (tokens.Identity, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.identity == nil {
		return tokens.Identity{}, errors.ErrNoIdentity
	}
	return *f.identity, nil
}

func (f *FakeTokenRepo) LastAccountID() (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastAccount, nil
}

func (f *FakeTokenRepo) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record = nil
	f.identity = nil
	return nil
}

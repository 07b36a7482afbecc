package ledger

import (
	"encoding/json"
	"os"
	"sync"
)

// Store persists ledger accounts. Load is called once at startup; Save is
// called for every account a mutation touches.
type Store interface {
	Load() (map[int64]*Account, error)
	Save(account *Account) error
}

// FileStore persists the ledger as a single JSON file, rewritten on every
// save. Good enough for a single process; use the Postgres store otherwise.
type FileStore struct {
	mu       sync.Mutex
	path     string
	accounts map[int64]*Account
}

// NewFileStore returns a file-backed store at the given path. The file does
// not need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the ledger file. A missing file yields an empty ledger.
func (s *FileStore) Load() (map[int64]*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make(map[int64]*Account)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.accounts = accounts
			return accounts, nil
		}

		return nil, err
	}

	var list []*Account
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	for _, a := range list {
		accounts[a.ID] = a
	}

	s.accounts = accounts
	return accounts, nil
}

// Save upserts one account and flushes the whole file
func (s *FileStore) Save(account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accounts == nil {
		s.accounts = make(map[int64]*Account)
	}

	copied := *account
	s.accounts[account.ID] = &copied

	list := make([]*Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		list = append(list, a)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// MemoryStore keeps accounts in memory only. Used by tests and by callers
// that do not need durability.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[int64]*Account
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[int64]*Account)}
}

// Load returns the stored accounts
func (s *MemoryStore) Load() (map[int64]*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make(map[int64]*Account, len(s.accounts))
	for id, a := range s.accounts {
		copied := *a
		accounts[id] = &copied
	}

	return accounts, nil
}

// Save upserts one account
func (s *MemoryStore) Save(account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *account
	s.accounts[account.ID] = &copied
	return nil
}

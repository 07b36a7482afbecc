package ledger

import (
	"database/sql"

	"chiproom-server/pkg/db"
)

// PGStore persists accounts in Postgres using the shared database instance
type PGStore struct {
	db *sql.DB
}

// NewPGStore returns a Postgres-backed store
func NewPGStore() *PGStore {
	return &PGStore{db: db.Instance()}
}

// Load reads every account
func (s *PGStore) Load() (map[int64]*Account, error) {
	const query = `
SELECT id, chips, loan
FROM ledger_accounts`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make(map[int64]*Account)
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Chips, &a.Loan); err != nil {
			return nil, err
		}

		accounts[a.ID] = &a
	}

	return accounts, rows.Err()
}

// Save upserts one account
func (s *PGStore) Save(account *Account) error {
	const query = `
INSERT INTO ledger_accounts (id, chips, loan)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET chips = $2, loan = $3, updated = (NOW() AT TIME ZONE 'utc')`

	_, err := s.db.Exec(query, account.ID, account.Chips, account.Loan)
	return err
}

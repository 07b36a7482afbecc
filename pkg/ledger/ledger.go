// Package ledger tracks every account's chip balance and outstanding loan.
// All gameplay moves chips between user accounts and the house pool, so the
// total number of chips in play only changes through explicit grants.
package ledger

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// PoolAccountID is the reserved account the house plays out of
	PoolAccountID int64 = 0

	// DefaultBalance is the stake a brand-new account starts with
	DefaultBalance = 1000

	// PoolSeedBalance is the pool's starting bankroll
	PoolSeedBalance = 1000000

	// MaxLoan is the most the pool will lend to one account
	MaxLoan = 5000
)

// ErrInsufficientFunds is an error when an account cannot cover a debit
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount is an error when an amount is zero or negative
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrLoanOutstanding is an error when an account already has a loan
var ErrLoanOutstanding = errors.New("account already has an outstanding loan")

// ErrLoanTooLarge is an error when a loan request exceeds the ceiling
var ErrLoanTooLarge = errors.New("loan exceeds the maximum allowed")

// ErrNoLoan is an error when repaying an account with no debt
var ErrNoLoan = errors.New("account does not have an outstanding loan")

// Account is one participant in the chip economy
type Account struct {
	ID    int64 `json:"id"`
	Chips int   `json:"chips"`
	Loan  int   `json:"loan"`
}

// Ledger is the process-wide chip economy. A single lock serializes every
// load-modify-persist cycle so balances are never read-modify-written
// concurrently.
type Ledger struct {
	mu       sync.Mutex
	log      logrus.FieldLogger
	store    Store
	accounts map[int64]*Account
}

// New loads all accounts from the store and returns a ready ledger. The
// pool account is seeded on first use.
func New(logger logrus.FieldLogger, store Store) (*Ledger, error) {
	accounts, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Ledger{
		log:      logger,
		store:    store,
		accounts: accounts,
	}, nil
}

// account lazily creates unseen accounts. Callers must hold the lock.
func (l *Ledger) account(id int64) (*Account, error) {
	if a, ok := l.accounts[id]; ok {
		return a, nil
	}

	a := &Account{ID: id, Chips: DefaultBalance}
	if id == PoolAccountID {
		a.Chips = PoolSeedBalance
	}

	if err := l.store.Save(a); err != nil {
		return nil, err
	}

	l.accounts[id] = a
	return a, nil
}

// Balance returns an account's chip balance, creating the account with the
// default stake if it has never been seen
func (l *Ledger) Balance(id int64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.account(id)
	if err != nil {
		return 0, err
	}

	return a.Chips, nil
}

// Loan returns an account's outstanding loan
func (l *Ledger) Loan(id int64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.account(id)
	if err != nil {
		return 0, err
	}

	return a.Loan, nil
}

// Transfer atomically moves chips between two accounts. Nothing changes if
// the source cannot cover the amount.
func (l *Ledger) Transfer(from, to int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	src, err := l.account(from)
	if err != nil {
		return err
	}

	dst, err := l.account(to)
	if err != nil {
		return err
	}

	if src.Chips < amount {
		return ErrInsufficientFunds
	}

	src.Chips -= amount
	dst.Chips += amount
	l.autoRepay(dst)

	if err := l.saveAll(src, dst); err != nil {
		return err
	}

	l.log.WithFields(logrus.Fields{
		"from":   from,
		"to":     to,
		"amount": amount,
	}).Debug("chips transferred")

	return nil
}

// Grant mints new chips into an account. This is the only operation that
// changes the total number of chips in the economy and is reserved for
// administrators.
func (l *Ledger) Grant(id int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.account(id)
	if err != nil {
		return err
	}

	a.Chips += amount
	l.autoRepay(a)

	if err := l.store.Save(a); err != nil {
		return err
	}

	l.log.WithFields(logrus.Fields{
		"account": id,
		"amount":  amount,
	}).Info("chips granted")

	return nil
}

// GrantLoan lends chips from the pool. An account may only carry one loan
// at a time, up to MaxLoan.
func (l *Ledger) GrantLoan(id int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if amount > MaxLoan {
		return ErrLoanTooLarge
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.account(id)
	if err != nil {
		return err
	}

	if a.Loan > 0 {
		return ErrLoanOutstanding
	}

	pool, err := l.account(PoolAccountID)
	if err != nil {
		return err
	}

	if pool.Chips < amount {
		return ErrInsufficientFunds
	}

	pool.Chips -= amount
	a.Chips += amount
	a.Loan = amount

	if err := l.saveAll(pool, a); err != nil {
		return err
	}

	l.log.WithFields(logrus.Fields{
		"account": id,
		"amount":  amount,
	}).Info("loan granted")

	return nil
}

// RepayLoan pays down an account's loan, capped at the amount owed, and
// returns the remaining debt
func (l *Ledger) RepayLoan(id int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.account(id)
	if err != nil {
		return 0, err
	}

	if a.Loan <= 0 {
		return 0, ErrNoLoan
	}

	if amount > a.Loan {
		amount = a.Loan
	}

	if a.Chips < amount {
		return a.Loan, ErrInsufficientFunds
	}

	pool, err := l.account(PoolAccountID)
	if err != nil {
		return a.Loan, err
	}

	a.Chips -= amount
	a.Loan -= amount
	pool.Chips += amount

	if err := l.saveAll(a, pool); err != nil {
		return a.Loan, err
	}

	return a.Loan, nil
}

// autoRepay clears an account's loan in full once its balance reaches 110%
// of the debt. Callers must hold the lock and persist the account after.
func (l *Ledger) autoRepay(a *Account) {
	if a.Loan <= 0 {
		return
	}

	if a.Chips*10 < a.Loan*11 {
		return
	}

	pool, err := l.account(PoolAccountID)
	if err != nil {
		return
	}

	a.Chips -= a.Loan
	pool.Chips += a.Loan

	l.log.WithFields(logrus.Fields{
		"account": a.ID,
		"loan":    a.Loan,
	}).Info("loan automatically repaid")

	a.Loan = 0
	_ = l.store.Save(pool)
}

// TotalChips returns the sum of every balance, pool included. Loans and
// wagers are transfers, so the total only moves on grants; anything else
// is drift.
func (l *Ledger) TotalChips() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, a := range l.accounts {
		total += a.Chips
	}

	return total
}

// Accounts returns a copy of every known account
func (l *Ledger) Accounts() []Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		accounts = append(accounts, *a)
	}

	return accounts
}

func (l *Ledger) saveAll(accounts ...*Account) error {
	for _, a := range accounts {
		if err := l.store.Save(a); err != nil {
			return err
		}
	}

	return nil
}

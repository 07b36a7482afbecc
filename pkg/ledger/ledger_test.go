package ledger

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()

	l, err := New(logrus.StandardLogger(), NewMemoryStore())
	assert.NoError(t, err)
	return l
}

func TestLedger_lazyAccounts(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	balance, err := l.Balance(1)
	a.NoError(err)
	a.Equal(DefaultBalance, balance)

	balance, err = l.Balance(PoolAccountID)
	a.NoError(err)
	a.Equal(PoolSeedBalance, balance)

	loan, err := l.Loan(1)
	a.NoError(err)
	a.Equal(0, loan)
}

func TestLedger_Transfer(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	a.NoError(l.Transfer(1, 2, 400))

	balance, _ := l.Balance(1)
	a.Equal(600, balance)
	balance, _ = l.Balance(2)
	a.Equal(1400, balance)

	a.Equal(ErrInsufficientFunds, l.Transfer(1, 2, 601))
	a.Equal(ErrInvalidAmount, l.Transfer(1, 2, 0))
	a.Equal(ErrInvalidAmount, l.Transfer(1, 2, -5))

	// the failed transfers did not move anything
	balance, _ = l.Balance(1)
	a.Equal(600, balance)
}

func TestLedger_Grant(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	// create the account first so the baseline is stable
	_, err := l.Balance(1)
	a.NoError(err)

	before := l.TotalChips()
	a.NoError(l.Grant(1, 500))

	balance, _ := l.Balance(1)
	a.Equal(1500, balance)
	a.Equal(before+500, l.TotalChips())

	a.Equal(ErrInvalidAmount, l.Grant(1, 0))
}

func TestLedger_loanLifecycle(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	poolBefore, _ := l.Balance(PoolAccountID)

	a.NoError(l.GrantLoan(1, 1000))

	balance, _ := l.Balance(1)
	a.Equal(2000, balance)
	loan, _ := l.Loan(1)
	a.Equal(1000, loan)

	poolAfter, _ := l.Balance(PoolAccountID)
	a.Equal(poolBefore-1000, poolAfter)

	a.Equal(ErrLoanOutstanding, l.GrantLoan(1, 500))

	// drop the borrower below the repayment threshold
	a.NoError(l.Transfer(1, PoolAccountID, 1500))
	loan, _ = l.Loan(1)
	a.Equal(1000, loan)

	// a credit that reaches 110% of the loan repays it in full
	a.NoError(l.Transfer(PoolAccountID, 1, 600))
	loan, _ = l.Loan(1)
	a.Equal(0, loan)

	// 1100 minus the 1000 repayment
	balance, _ = l.Balance(1)
	a.Equal(100, balance)

	poolFinal, _ := l.Balance(PoolAccountID)
	a.Equal(poolBefore+900, poolFinal)
}

func TestLedger_loanBelowThresholdNotRepaid(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	a.NoError(l.GrantLoan(1, 1000))
	a.NoError(l.Transfer(1, PoolAccountID, 1500))

	// 500 + 599 = 1099 < 1100, so the loan stays out
	a.NoError(l.Transfer(PoolAccountID, 1, 599))
	loan, _ := l.Loan(1)
	a.Equal(1000, loan)
}

func TestLedger_GrantLoan_validation(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	a.Equal(ErrLoanTooLarge, l.GrantLoan(1, MaxLoan+1))
	a.Equal(ErrInvalidAmount, l.GrantLoan(1, 0))
	a.NoError(l.GrantLoan(1, MaxLoan))
}

func TestLedger_RepayLoan(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	_, err := l.RepayLoan(1, 100)
	a.Equal(ErrNoLoan, err)

	a.NoError(l.GrantLoan(1, 1000))

	remaining, err := l.RepayLoan(1, 400)
	a.NoError(err)
	a.Equal(600, remaining)

	// repayment is capped at the outstanding debt
	remaining, err = l.RepayLoan(1, 5000)
	a.NoError(err)
	a.Equal(0, remaining)

	balance, _ := l.Balance(1)
	a.Equal(1000, balance)
}

func TestLedger_conservation(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	// seed the pool and the accounts so nothing is lazily created after the
	// baseline is taken
	_, err := l.Balance(PoolAccountID)
	a.NoError(err)
	for id := int64(1); id <= 5; id++ {
		_, err := l.Balance(id)
		a.NoError(err)
	}

	total := l.TotalChips()

	a.NoError(l.Transfer(1, PoolAccountID, 250))
	a.NoError(l.Transfer(PoolAccountID, 2, 800))
	a.NoError(l.GrantLoan(3, 2000))
	_, err = l.RepayLoan(3, 500)
	a.NoError(err)

	// only grants change the total
	a.Equal(total, l.TotalChips())
	a.NoError(l.Grant(4, 123))
	a.Equal(total+123, l.TotalChips())
}

func TestLedger_concurrentTransfers(t *testing.T) {
	a := assert.New(t)
	l := testLedger(t)

	_, err := l.Balance(1)
	a.NoError(err)
	_, err = l.Balance(2)
	a.NoError(err)

	total := l.TotalChips()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = l.Transfer(1, 2, 10)
		}()
		go func() {
			defer wg.Done()
			_ = l.Transfer(2, 1, 10)
		}()
	}
	wg.Wait()

	a.Equal(total, l.TotalChips())
}

func TestFileStore_roundTrip(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "ledger.json")

	store := NewFileStore(path)
	l, err := New(logrus.StandardLogger(), store)
	a.NoError(err)

	a.NoError(l.Grant(1, 500))
	a.NoError(l.GrantLoan(2, 750))

	// a fresh store sees the persisted state
	reloaded, err := New(logrus.StandardLogger(), NewFileStore(path))
	a.NoError(err)

	balance, _ := reloaded.Balance(1)
	a.Equal(1500, balance)
	loan, _ := reloaded.Loan(2)
	a.Equal(750, loan)
	balance, _ = reloaded.Balance(2)
	a.Equal(1750, balance)
}

func TestFileStore_missingFile(t *testing.T) {
	a := assert.New(t)

	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	accounts, err := store.Load()
	a.NoError(err)
	a.Empty(accounts)
}

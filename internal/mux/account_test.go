package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountEndpoints(t *testing.T) {
	a := assert.New(t)
	m, _ := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	// unseen accounts start with the default stake
	var account accountResponse
	assertGet(t, ts, "/account/5", &account, 200)
	a.Equal(int64(5), account.ID)
	a.Equal(1000, account.Chips)
	a.Equal(0, account.Loan)

	assertPost(t, ts, "/account/5/loan", map[string]int{"amount": 1000}, &account, 200)
	a.Equal(2000, account.Chips)
	a.Equal(1000, account.Loan)

	// a second loan is rejected
	assertPost(t, ts, "/account/5/loan", map[string]int{"amount": 500}, nil, 400)

	assertPost(t, ts, "/account/5/repay", map[string]int{"amount": 400}, &account, 200)
	a.Equal(1600, account.Chips)
	a.Equal(600, account.Loan)

	// garbage input
	assertPost(t, ts, "/account/5/repay", `{"amount":`, nil, 400)
}

func TestAdminEndpoints(t *testing.T) {
	a := assert.New(t)
	m, chips := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	grant := map[string]interface{}{"accountId": 7, "amount": 2500}

	// no key, wrong key, then the real one
	assertPost(t, ts, "/admin/grant", grant, nil, 403)
	assertPost(t, ts, "/admin/grant", grant, nil, 403, "wrong-key")

	var account accountResponse
	assertPost(t, ts, "/admin/grant", grant, &account, 200, testAdminKey)
	a.Equal(3500, account.Chips)

	balance, _ := chips.Balance(7)
	a.Equal(3500, balance)

	// a second account so the listing has more than one row
	var other accountResponse
	assertGet(t, ts, "/account/8", &other, 200)
	a.Equal(1000, other.Chips)

	var accounts []accountResponse
	assertGet(t, ts, "/admin/accounts", &accounts, 200, testAdminKey)
	a.True(len(accounts) >= 2)
}

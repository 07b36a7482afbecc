package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"chiproom-server/pkg/roulette"
	"chiproom-server/pkg/slots"
)

// scriptedRand returns a fixed sequence of values
type scriptedRand struct {
	values []int
	index  int
}

func (s *scriptedRand) Intn(n int) int {
	v := s.values[s.index%len(s.values)] % n
	s.index++
	return v
}

func TestSlotsEndpoint(t *testing.T) {
	a := assert.New(t)
	m, chips := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	// three sevens
	m.rand = &scriptedRand{values: []int{5, 5, 5}}

	var result slots.Result
	assertPost(t, ts, "/slots", map[string]interface{}{"playerId": 1, "amount": 10}, &result, 200)
	a.Equal(1000, result.Payout)

	balance, _ := chips.Balance(1)
	a.Equal(1990, balance)

	// a losing pull only costs the stake
	m.rand = &scriptedRand{values: []int{0, 1, 2}}
	assertPost(t, ts, "/slots", map[string]interface{}{"playerId": 1, "amount": 10}, &result, 200)
	a.Equal(0, result.Payout)

	balance, _ = chips.Balance(1)
	a.Equal(1980, balance)

	// stakes the account cannot cover are rejected
	assertPost(t, ts, "/slots", map[string]interface{}{"playerId": 1, "amount": 99999}, nil, 400)
}

func TestRouletteEndpoint(t *testing.T) {
	a := assert.New(t)
	m, chips := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	// the wheel lands on 17 red
	m.rand = &scriptedRand{values: []int{17}}

	var result rouletteResponse
	assertPost(t, ts, "/roulette", map[string]interface{}{
		"playerId": 1, "amount": 10, "number": 17,
	}, &result, 200)
	a.Equal(17, result.Pocket)
	a.Equal(roulette.Red, result.Color)
	a.Equal(360, result.Payout)

	balance, _ := chips.Balance(1)
	a.Equal(1350, balance)

	// color bets pay even money
	assertPost(t, ts, "/roulette", map[string]interface{}{
		"playerId": 1, "amount": 10, "color": "red",
	}, &result, 200)
	a.Equal(20, result.Payout)

	// black loses on a red pocket
	assertPost(t, ts, "/roulette", map[string]interface{}{
		"playerId": 1, "amount": 10, "color": "black",
	}, &result, 200)
	a.Equal(0, result.Payout)

	// a bet needs a target
	assertPost(t, ts, "/roulette", map[string]interface{}{
		"playerId": 1, "amount": 10,
	}, nil, 400)

	// off the wheel
	assertPost(t, ts, "/roulette", map[string]interface{}{
		"playerId": 1, "amount": 10, "number": 37,
	}, nil, 400)
}

func TestBlackjackEndpoint(t *testing.T) {
	a := assert.New(t)
	m, chips := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var round blackjackResponse
	assertPost(t, ts, "/blackjack", map[string]interface{}{
		"playerId": 1, "amount": 100,
	}, &round, 200)

	// the stake is collected up front
	balance, _ := chips.Balance(1)
	a.Equal(900+settled(round), balance)

	if !round.Over {
		// starting a second round mid-round is rejected
		assertPost(t, ts, "/blackjack", map[string]interface{}{
			"playerId": 1, "amount": 100,
		}, nil, 400)

		assertPost(t, ts, "/blackjack/act", map[string]interface{}{
			"playerId": 1, "action": "stand",
		}, &round, 200)
	}

	a.True(round.Over)
	a.NotEmpty(round.Results)

	// the ledger matches the reported payouts
	balance, _ = chips.Balance(1)
	a.Equal(900+settled(round), balance)

	// the finished round cannot be acted on
	assertPost(t, ts, "/blackjack/act", map[string]interface{}{
		"playerId": 1, "action": "hit",
	}, nil, 400)

	// unknown actions are rejected
	assertPost(t, ts, "/blackjack", map[string]interface{}{
		"playerId": 1, "amount": 100,
	}, &round, 200)
	if !round.Over {
		assertPost(t, ts, "/blackjack/act", map[string]interface{}{
			"playerId": 1, "action": "wiggle",
		}, nil, 400)
	}
}

// settled sums the payouts of a finished round; an open round has none
func settled(round blackjackResponse) int {
	total := 0
	for _, result := range round.Results {
		total += result.Payout
	}

	return total
}

func TestBlackjackSecondPlayerIndependent(t *testing.T) {
	a := assert.New(t)
	m, _ := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var round1, round2 blackjackResponse
	assertPost(t, ts, "/blackjack", map[string]interface{}{"playerId": 1, "amount": 50}, &round1, 200)
	assertPost(t, ts, "/blackjack", map[string]interface{}{"playerId": 2, "amount": 50}, &round2, 200)

	a.NotEmpty(round1.Hands)
	a.NotEmpty(round2.Hands)
	a.Len(round1.Hands[0].Cards, 2)
}

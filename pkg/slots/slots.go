// Package slots implements a three-reel slot machine. Three of a kind pays
// ten times the symbol value, an adjacent pair pays twice the middle
// symbol's value.
package slots

import (
	"errors"

	"chiproom-server/internal/rng"
)

// ErrInvalidAmount is an error when the stake is zero or negative
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// Symbol is one reel face
type Symbol string

// reel symbols, cheapest first
const (
	Cherry   Symbol = "cherry"
	Orange   Symbol = "orange"
	Grape    Symbol = "grape"
	Diamond  Symbol = "diamond"
	MoneyBag Symbol = "moneybag"
	Seven    Symbol = "seven"
)

var symbols = []Symbol{Cherry, Orange, Grape, Diamond, MoneyBag, Seven}

var symbolValues = map[Symbol]int{
	Cherry:   1,
	Orange:   2,
	Grape:    3,
	Diamond:  4,
	MoneyBag: 5,
	Seven:    10,
}

// Value returns a symbol's payout multiplier base
func Value(s Symbol) int {
	return symbolValues[s]
}

// Result is one pull of the machine
type Result struct {
	Reels  [3]Symbol `json:"reels"`
	Bet    int       `json:"bet"`
	Payout int       `json:"payout"`
}

// Spin pulls the machine once for the given stake and returns the reels and
// the payout owed, stake included in the payout on a win
func Spin(r rng.Generator, bet int) (*Result, error) {
	if bet <= 0 {
		return nil, ErrInvalidAmount
	}

	var reels [3]Symbol
	for i := range reels {
		reels[i] = symbols[r.Intn(len(symbols))]
	}

	return &Result{
		Reels:  reels,
		Bet:    bet,
		Payout: payout(reels, bet),
	}, nil
}

func payout(reels [3]Symbol, bet int) int {
	if reels[0] == reels[1] && reels[1] == reels[2] {
		return bet * symbolValues[reels[0]] * 10
	}

	if reels[0] == reels[1] || reels[1] == reels[2] {
		return bet * symbolValues[reels[1]] * 2
	}

	return 0
}

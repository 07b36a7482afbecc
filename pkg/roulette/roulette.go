// Package roulette implements a single-zero roulette wheel with straight-up
// and color bets. Winning payouts include the returned stake.
package roulette

import (
	"errors"

	"chiproom-server/internal/rng"
)

// WheelSize is the number of pockets on a single-zero wheel
const WheelSize = 37

// ErrInvalidNumber is an error when a straight-up bet is off the wheel
var ErrInvalidNumber = errors.New("number must be between 0 and 36")

// ErrInvalidAmount is an error when the stake is zero or negative
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// Color is a pocket color
type Color string

// color constants
const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// ColorOf returns a pocket's color: zero is green, odd pockets are red,
// even pockets are black
func ColorOf(number int) Color {
	switch {
	case number == 0:
		return Green
	case number%2 == 1:
		return Red
	default:
		return Black
	}
}

// ColorFromString parses a bettable color
func ColorFromString(s string) (Color, error) {
	switch Color(s) {
	case Red:
		return Red, nil
	case Black:
		return Black, nil
	}

	return "", errors.New("color must be red or black")
}

// Bet is a single wager on the next spin. Exactly one of Number or Color is
// set; Number is nil for a color bet.
type Bet struct {
	Amount int   `json:"amount"`
	Number *int  `json:"number,omitempty"`
	Color  Color `json:"color,omitempty"`
}

// NewStraightBet wagers on a single pocket
func NewStraightBet(amount, number int) (*Bet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if number < 0 || number >= WheelSize {
		return nil, ErrInvalidNumber
	}

	return &Bet{Amount: amount, Number: &number}, nil
}

// NewColorBet wagers on red or black
func NewColorBet(amount int, color Color) (*Bet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if color != Red && color != Black {
		return nil, errors.New("color must be red or black")
	}

	return &Bet{Amount: amount, Color: color}, nil
}

// Payout returns the chips owed for this bet on the given pocket, stake
// included: a straight-up hit pays 35 to 1, a color hit pays even money,
// and a miss pays nothing.
func (b *Bet) Payout(pocket int) int {
	if b.Number != nil {
		if *b.Number == pocket {
			return b.Amount * 36
		}

		return 0
	}

	if b.Color == ColorOf(pocket) {
		return b.Amount * 2
	}

	return 0
}

// Spin returns a random pocket
func Spin(r rng.Generator) int {
	return r.Intn(WheelSize)
}

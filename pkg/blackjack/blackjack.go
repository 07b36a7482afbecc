// Package blackjack implements a single-seat blackjack round against the
// house: hit, stand, double, split, and the dealer's fixed drawing rule.
package blackjack

import (
	"errors"

	"chiproom-server/pkg/deck"
)

// Target is the hand value a player is trying to reach without exceeding
const Target = 21

// dealerStand is the value the dealer stops drawing at
const dealerStand = 17

// maxSplitHands caps how far pairs can be re-split
const maxSplitHands = 4

// ErrRoundOver is an error when acting on a finished round
var ErrRoundOver = errors.New("the round is over")

// ErrHandFinished is an error when acting on a hand that is already done
var ErrHandFinished = errors.New("this hand is finished")

// ActionError is a player-correctable mistake
type ActionError string

func (a ActionError) Error() string {
	return string(a)
}

// CardValue returns a card's blackjack value with aces counted high
func CardValue(card *deck.Card) int {
	switch {
	case card.Rank == deck.Ace:
		return 11
	case card.Rank >= deck.Jack:
		return 10
	default:
		return card.Rank
	}
}

// HandValue returns the best value of a hand, counting each ace as 11 when
// that does not bust the hand and as 1 otherwise
func HandValue(cards deck.Hand) int {
	value := 0
	aces := 0
	for _, card := range cards {
		if card.Rank == deck.Ace {
			aces++
			value++
		} else {
			value += CardValue(card)
		}
	}

	if aces > 0 && value+10 <= Target {
		value += 10
	}

	return value
}

// IsBust returns true if the hand exceeds the target
func IsBust(cards deck.Hand) bool {
	return HandValue(cards) > Target
}

// IsNatural returns true for a two-card twenty-one
func IsNatural(cards deck.Hand) bool {
	return len(cards) == 2 && HandValue(cards) == Target
}

// CanSplit returns true if the hand is a two-card pair of equal rank
func CanSplit(cards deck.Hand) bool {
	return len(cards) == 2 && cards[0].Rank == cards[1].Rank
}

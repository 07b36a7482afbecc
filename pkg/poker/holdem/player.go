package holdem

import (
	"chiproom-server/pkg/deck"
)

// Player is a seat at a poker table. The chip stack is the table-local
// working stack; the caller settles it against the ledger when the player
// buys in and cashes out.
type Player struct {
	ID   int64
	Name string

	chips      int
	currentBet int
	totalBet   int
	cards      deck.Hand

	folded bool
	allIn  bool
	acted  bool

	// leaving is set when the player quits mid-hand. They play out the
	// hand folded and are unseated when the hand ends.
	leaving bool
}

func newPlayer(id int64, name string, chips int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		chips: chips,
		cards: make(deck.Hand, 0, 2),
	}
}

// Chips returns the player's current working stack
func (p *Player) Chips() int {
	return p.chips
}

// HoleCards returns the player's hole cards
func (p *Player) HoleCards() deck.Hand {
	return p.cards.Clone()
}

// Folded returns true if the player folded this hand
func (p *Player) Folded() bool {
	return p.folded
}

// AllIn returns true if the player's whole stack is committed
func (p *Player) AllIn() bool {
	return p.allIn
}

// canAct returns true if the player may check, call, bet, raise, or fold
func (p *Player) canAct() bool {
	return !p.folded && !p.allIn
}

// put commits up to amount chips from the stack, marking the player all-in
// when the stack runs out. Returns the chips actually committed.
func (p *Player) put(amount int) int {
	if amount >= p.chips {
		amount = p.chips
		p.allIn = true
	}

	p.chips -= amount
	p.currentBet += amount
	p.totalBet += amount

	return amount
}

// newHand resets the per-hand bookkeeping
func (p *Player) newHand() {
	p.currentBet = 0
	p.totalBet = 0
	p.cards = make(deck.Hand, 0, 2)
	p.folded = false
	p.allIn = false
	p.acted = false
}

// newStreet folds the street bet into the hand total (already accumulated)
// and clears the per-street state
func (p *Player) newStreet() {
	p.currentBet = 0
	p.acted = false
}

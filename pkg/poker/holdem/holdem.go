// Package holdem implements a no-limit Texas Hold'em table: seating,
// blinds, the betting-round state machine, and side-pot settlement.
package holdem

import (
	"errors"

	"github.com/sirupsen/logrus"

	"chiproom-server/internal/rng"
	"chiproom-server/pkg/deck"
)

// MaxSeats is the seat cap. Nine two-card hands plus a five-card board and
// three burns always fit in one deck, so a hand can never exhaust the deck.
const MaxSeats = 9

// Options configures a hold'em table
type Options struct {
	SmallBlind int
	BigBlind   int
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		SmallBlind: 10,
		BigBlind:   20,
	}
}

// Table is a single poker table. A table runs one hand at a time and keeps
// its seating between hands. Callers must serialize access; the table does
// no locking of its own.
type Table struct {
	log  logrus.FieldLogger
	rand rng.Generator
	opts Options

	players   []*Player
	deck      *deck.Deck
	community deck.Hand

	state           State
	pot             int
	currentBet      int
	minRaise        int
	dealerIndex     int
	smallBlindIndex int
	bigBlindIndex   int
	currentIndex    int
	handsPlayed     int

	result *HandResult
}

// New returns a new, empty table
func New(logger logrus.FieldLogger, opts Options) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Table{
		log:       logger,
		rand:      rng.Crypto{},
		opts:      opts,
		players:   make([]*Player, 0, MaxSeats),
		deck:      deck.New(),
		community: make(deck.Hand, 0, 5),
		state:     StateWaiting,
	}, nil
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind cannot be less than the small blind")
	}

	return nil
}

// Options returns the table's blind configuration
func (t *Table) Options() Options {
	return t.opts
}

// State returns the current lifecycle state
func (t *Table) State() State {
	return t.state
}

// Pot returns the chips collected for the current hand
func (t *Table) Pot() int {
	return t.pot
}

// Community returns the board cards dealt so far
func (t *Table) Community() deck.Hand {
	return t.community.Clone()
}

// Players returns the seated players in seat order
func (t *Table) Players() []*Player {
	players := make([]*Player, len(t.players))
	copy(players, t.players)
	return players
}

// Player returns the seated player with the given ID
func (t *Table) Player(id int64) (*Player, bool) {
	for _, p := range t.players {
		if p.ID == id {
			return p, true
		}
	}

	return nil, false
}

// Result returns the outcome of the most recent hand, or nil if no hand has
// finished yet
func (t *Table) Result() *HandResult {
	return t.result
}

// AddPlayer seats a new player with the given working stack. Players cannot
// be seated while a hand is in progress.
func (t *Table) AddPlayer(id int64, name string, chips int) error {
	if t.state != StateWaiting && t.state != StateEnded {
		return ErrHandInProgress
	}

	if len(t.players) >= MaxSeats {
		return ErrTableFull
	}

	if _, found := t.Player(id); found {
		return ErrAlreadySeated
	}

	if chips <= 0 {
		return errors.New("cannot seat a player without chips")
	}

	t.players = append(t.players, newPlayer(id, name, chips))
	t.log.WithFields(logrus.Fields{
		"player": id,
		"chips":  chips,
	}).Debug("player seated")

	return nil
}

// RemovePlayer unseats a player and returns their working stack so the
// caller can cash it out. If a hand is in progress the player is folded in
// place instead, keeping seat order and pot accounting intact; their stack
// is reported through HandResult.Departed when the hand ends.
func (t *Table) RemovePlayer(id int64) (int, error) {
	p, found := t.Player(id)
	if !found {
		return 0, ErrPlayerNotFound
	}

	if t.state.IsBettingRound() || t.state == StateShowdown {
		wasTheirTurn := t.state.IsBettingRound() && t.players[t.currentIndex] == p
		p.leaving = true
		if !p.folded {
			p.folded = true
			p.acted = true
			t.log.WithField("player", id).Debug("player left mid-hand, folded in place")

			if t.remainingCount() == 1 {
				t.finishByFold()
				return 0, nil
			}
		}

		if wasTheirTurn && t.state.IsBettingRound() {
			if t.bettingRoundComplete() {
				t.advanceStreet()
			} else {
				t.advanceToNextPlayer()
			}
		}

		return 0, nil
	}

	chips := p.chips
	t.dropPlayers(func(pl *Player) bool { return pl == p })
	return chips, nil
}

// StartHand deals a new hand. Players with empty stacks (and players who
// left during the previous hand) are unseated first; at least two funded
// players must remain.
func (t *Table) StartHand() error {
	if t.state.IsBettingRound() || t.state == StateShowdown {
		return ErrHandInProgress
	}

	t.dropPlayers(func(p *Player) bool { return p.chips <= 0 || p.leaving })

	if len(t.players) < 2 {
		return ErrNotEnoughPlayers
	}

	t.pot = 0
	t.currentBet = 0
	t.minRaise = t.opts.BigBlind
	t.community = make(deck.Hand, 0, 5)
	t.result = nil
	t.deck.Shuffle(0)

	for _, p := range t.players {
		p.newHand()
	}

	if t.handsPlayed == 0 {
		t.dealerIndex = t.rand.Intn(len(t.players))
	} else {
		t.dealerIndex = (t.dealerIndex + 1) % len(t.players)
	}
	t.handsPlayed++

	for i := 0; i < 2; i++ {
		for _, p := range t.players {
			p.cards.AddCard(t.mustDraw())
		}
	}

	t.state = StatePreFlop
	t.postBlinds()

	t.currentIndex = t.firstToActPreFlop()
	if t.bettingRoundComplete() {
		t.advanceStreet()
	} else if !t.players[t.currentIndex].canAct() {
		t.advanceToNextPlayer()
	}

	t.log.WithFields(logrus.Fields{
		"players": len(t.players),
		"dealer":  t.players[t.dealerIndex].ID,
	}).Debug("hand started")

	return nil
}

// postBlinds posts the forced bets. Heads-up the dealer posts the small
// blind. A short stack posts what it can and is all-in; that is a normal
// hand, not an error.
func (t *Table) postBlinds() {
	n := len(t.players)
	if n == 2 {
		t.smallBlindIndex = t.dealerIndex
	} else {
		t.smallBlindIndex = (t.dealerIndex + 1) % n
	}
	t.bigBlindIndex = (t.smallBlindIndex + 1) % n

	t.pot += t.players[t.smallBlindIndex].put(t.opts.SmallBlind)
	t.pot += t.players[t.bigBlindIndex].put(t.opts.BigBlind)

	t.currentBet = t.players[t.bigBlindIndex].currentBet
}

// firstToActPreFlop returns the seat that opens the pre-flop betting:
// left of the big blind in ring games, the dealer (small blind) heads-up
func (t *Table) firstToActPreFlop() int {
	if len(t.players) == 2 {
		return t.dealerIndex
	}

	return (t.dealerIndex + 3) % len(t.players)
}

// remainingCount is the number of players still in the hand
func (t *Table) remainingCount() int {
	count := 0
	for _, p := range t.players {
		if !p.folded {
			count++
		}
	}

	return count
}

// actionableCount is the number of players who can still make decisions
func (t *Table) actionableCount() int {
	count := 0
	for _, p := range t.players {
		if p.canAct() {
			count++
		}
	}

	return count
}

// advanceToNextPlayer moves the turn to the next seat that can act. Only
// valid while the betting round is still open.
func (t *Table) advanceToNextPlayer() {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		index := (t.currentIndex + i) % n
		if t.players[index].canAct() {
			t.currentIndex = index
			return
		}
	}

	panic("no actionable player remains in an open betting round")
}

// CurrentTurn returns the player whose turn it is, or nil outside of a
// betting round
func (t *Table) CurrentTurn() *Player {
	if !t.state.IsBettingRound() {
		return nil
	}

	return t.players[t.currentIndex]
}

// mustDraw draws a card or panics. The seat cap guarantees the deck cannot
// run out within a hand, so an empty deck is a logic error.
func (t *Table) mustDraw() *deck.Card {
	card, err := t.deck.Draw()
	if err != nil {
		panic("deck exhausted mid-hand")
	}

	return card
}

// dropPlayers removes every seat matching the predicate. The dealer button
// stays on the same player, or falls back to the nearest kept seat at or
// before the departed dealer so the rotation does not skip anyone.
func (t *Table) dropPlayers(drop func(*Player) bool) {
	kept := make([]*Player, 0, len(t.players))
	newDealer := -1
	for i, p := range t.players {
		if drop(p) {
			continue
		}

		if i <= t.dealerIndex {
			newDealer = len(kept)
		}
		kept = append(kept, p)
	}
	t.players = kept

	if newDealer == -1 {
		// every seat up to the dealer left; the button wraps to the last
		// seat so the next rotation lands on the first
		newDealer = len(kept) - 1
	}
	if newDealer < 0 {
		newDealer = 0
	}
	t.dealerIndex = newDealer
}

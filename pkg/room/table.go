package room

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chiproom-server/pkg/ledger"
	"chiproom-server/pkg/poker/holdem"
)

// Table is one live poker table. It serializes all access to the underlying
// game, exchanges chips with the ledger on buy-in and cash-out, and pushes
// fresh snapshots to every connected client after each mutation.
type Table struct {
	UUID string
	Name string

	log         logrus.FieldLogger
	ledger      *ledger.Ledger
	game        *holdem.Table
	turnTimeout time.Duration

	mu        sync.Mutex
	clients   map[*Client]bool
	turnTimer *time.Timer
	turnSeq   int
}

// Options returns the game's blind configuration
func (t *Table) Options() holdem.Options {
	return t.game.Options()
}

// Join buys a player in for the given amount and seats them. The buy-in
// moves from the player's ledger account into the house pool; the table
// tracks it as the player's working stack until they cash out.
func (t *Table) Join(playerID int64, name string, buyIn int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ledger.Transfer(playerID, ledger.PoolAccountID, buyIn); err != nil {
		return err
	}

	if err := t.game.AddPlayer(playerID, name, buyIn); err != nil {
		// refund the buy-in; the pool always covers what it just took
		if rerr := t.ledger.Transfer(ledger.PoolAccountID, playerID, buyIn); rerr != nil {
			t.log.WithError(rerr).WithField("player", playerID).Error("buy-in refund failed")
		}

		return err
	}

	t.broadcast()
	return nil
}

// Leave unseats a player and cashes their stack back into their ledger
// account. Leaving mid-hand folds the player in place; their stack is
// cashed out when the hand settles.
func (t *Table) Leave(playerID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	chips, err := t.game.RemovePlayer(playerID)
	if err != nil {
		return err
	}

	if chips > 0 {
		if err := t.cashOut(playerID, chips); err != nil {
			return err
		}
	}

	t.afterMutation()
	return nil
}

// StartHand deals a new hand
func (t *Table) StartHand() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.game.StartHand(); err != nil {
		return err
	}

	t.afterMutation()
	return nil
}

// Act performs a betting action for a player
func (t *Table) Act(playerID int64, action holdem.Action, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.game.Act(playerID, action, amount); err != nil {
		return err
	}

	t.afterMutation()
	return nil
}

// Snapshot returns the table state as seen by the given viewer
func (t *Table) Snapshot(viewerID int64) *holdem.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.game.GetSnapshot(viewerID)
}

// afterMutation settles any finished hand, re-arms the turn clock, and
// fans the new state out to clients. Callers must hold the lock.
func (t *Table) afterMutation() {
	if result := t.game.Result(); result != nil {
		for id, chips := range result.Departed {
			if err := t.cashOut(id, chips); err != nil {
				t.log.WithError(err).WithField("player", id).Error("departed cash-out failed")
			}
		}
		result.Departed = nil
	}

	t.armTurnTimer()
	t.broadcast()
}

// cashOut returns a working stack to a player's ledger account
func (t *Table) cashOut(playerID int64, chips int) error {
	return t.ledger.Transfer(ledger.PoolAccountID, playerID, chips)
}

// armTurnTimer schedules an auto-fold for the player now on the clock.
// Each arm invalidates any previously scheduled fold.
func (t *Table) armTurnTimer() {
	t.turnSeq++

	if t.turnTimer != nil {
		t.turnTimer.Stop()
		t.turnTimer = nil
	}

	if t.turnTimeout <= 0 {
		return
	}

	current := t.game.CurrentTurn()
	if current == nil {
		return
	}

	seq := t.turnSeq
	playerID := current.ID
	t.turnTimer = time.AfterFunc(t.turnTimeout, func() {
		t.autoFold(playerID, seq)
	})
}

// autoFold folds a player who ran out the turn clock
func (t *Table) autoFold(playerID int64, seq int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// the turn moved on before the timer fired
	if seq != t.turnSeq {
		return
	}

	if err := t.game.Act(playerID, holdem.ActionFold, 0); err != nil {
		t.log.WithError(err).WithField("player", playerID).Warn("auto-fold failed")
		return
	}

	t.log.WithField("player", playerID).Info("player timed out and was folded")
	t.afterMutation()
}

// AddClient registers a websocket client and immediately sends it the
// current state
func (t *Table) AddClient(c *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c.table = t
	t.clients[c] = true
	c.Send(t.game.GetSnapshot(c.PlayerID))
}

// RemoveClient unregisters a websocket client
func (t *Table) RemoveClient(c *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.clients, c)
}

// broadcast sends each connected client its own view of the table. Callers
// must hold the lock.
func (t *Table) broadcast() {
	for c := range t.clients {
		if !c.Send(t.game.GetSnapshot(c.PlayerID)) {
			t.log.WithField("player", c.PlayerID).Warn("client send buffer full")
		}
	}
}

// shutdown disconnects every client and stops the turn clock
func (t *Table) shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turnSeq++
	if t.turnTimer != nil {
		t.turnTimer.Stop()
		t.turnTimer = nil
	}

	for c := range t.clients {
		select {
		case c.CloseChan() <- "table closed":
		default:
		}
	}
	t.clients = make(map[*Client]bool)
}

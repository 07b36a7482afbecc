package holdem

import (
	"github.com/sirupsen/logrus"
)

// Act performs a betting action on behalf of the given player. The amount
// is only meaningful for bet and raise and is the total the player is
// putting their current-street bet to, not the increment.
func (t *Table) Act(playerID int64, action Action, amount int) error {
	if !t.state.IsBettingRound() {
		return ErrNoHandInProgress
	}

	player, found := t.Player(playerID)
	if !found {
		return ErrPlayerNotFound
	}

	if t.players[t.currentIndex] != player {
		return ErrNotYourTurn
	}

	var err error
	switch action {
	case ActionFold:
		err = t.fold(player)
	case ActionCheck:
		err = t.check(player)
	case ActionCall:
		err = t.call(player)
	case ActionBet:
		err = t.bet(player, amount)
	case ActionRaise:
		err = t.raise(player, amount)
	default:
		err = newActionError("unknown action: %s", action)
	}

	if err != nil {
		return err
	}

	t.log.WithFields(logrus.Fields{
		"player": playerID,
		"action": action,
		"bet":    player.currentBet,
		"pot":    t.pot,
	}).Debug("action taken")

	if t.remainingCount() == 1 {
		t.finishByFold()
		return nil
	}

	if t.bettingRoundComplete() {
		t.advanceStreet()
		return nil
	}

	t.advanceToNextPlayer()
	return nil
}

func (t *Table) fold(p *Player) error {
	p.folded = true
	p.acted = true
	return nil
}

func (t *Table) check(p *Player) error {
	if p.currentBet < t.currentBet {
		return newActionError("cannot check when facing a bet of %d", t.currentBet)
	}

	p.acted = true
	return nil
}

func (t *Table) call(p *Player) error {
	if t.currentBet == 0 {
		return newActionError("there is no bet to call")
	}

	if p.currentBet >= t.currentBet {
		return newActionError("there is no bet to call")
	}

	t.pot += p.put(t.currentBet - p.currentBet)
	p.acted = true
	return nil
}

func (t *Table) bet(p *Player, amount int) error {
	if t.currentBet > 0 {
		return newActionError("cannot bet when facing a bet; raise instead")
	}

	if amount < t.opts.BigBlind && amount < p.chips {
		return newActionError("bet must be at least %d", t.opts.BigBlind)
	}

	if amount > p.chips {
		return newActionError("bet of %d exceeds stack of %d", amount, p.chips)
	}

	t.pot += p.put(amount)
	t.currentBet = p.currentBet

	// a short all-in open never shrinks the raise increment below the big
	// blind
	t.minRaise = p.currentBet
	if t.minRaise < t.opts.BigBlind {
		t.minRaise = t.opts.BigBlind
	}

	t.reopenAction(p)
	p.acted = true
	return nil
}

func (t *Table) raise(p *Player, amount int) error {
	if t.currentBet == 0 {
		return newActionError("cannot raise when there is no bet; bet instead")
	}

	// a player whose acted flag survived the facing bet is only in turn
	// because an under-raise all-in did not reopen the action; they may
	// call or fold but not raise again
	if p.acted {
		return newActionError("cannot raise again until a full raise reopens the action")
	}

	needed := amount - p.currentBet
	if needed > p.chips {
		return newActionError("raise to %d exceeds stack", amount)
	}

	fullRaise := t.currentBet + t.minRaise
	allIn := needed == p.chips

	if amount <= t.currentBet {
		return newActionError("raise must exceed the current bet of %d", t.currentBet)
	}

	if amount < fullRaise && !allIn {
		return newActionError("raise must be to at least %d", fullRaise)
	}

	t.pot += p.put(needed)

	// An all-in below a full raise does not reopen the action for players
	// who already acted this street.
	if p.currentBet >= fullRaise {
		t.minRaise = p.currentBet - t.currentBet
		t.reopenAction(p)
	}

	t.currentBet = p.currentBet
	p.acted = true
	return nil
}

// reopenAction clears the acted flag for everyone but the aggressor so the
// remaining players get to respond to the new bet
func (t *Table) reopenAction(aggressor *Player) {
	for _, p := range t.players {
		if p != aggressor && p.canAct() {
			p.acted = false
		}
	}
}

// bettingRoundComplete reports whether every player still able to act has
// both acted this street and matched the current bet. Blinds are posted
// without setting the acted flag, so the big blind keeps their option even
// when everyone just calls.
func (t *Table) bettingRoundComplete() bool {
	for _, p := range t.players {
		if !p.canAct() {
			continue
		}

		if !p.acted || p.currentBet < t.currentBet {
			return false
		}
	}

	return true
}

// advanceStreet closes the current betting round and deals the next street.
// When fewer than two players can still act there is no more betting, so
// the remaining streets are dealt in a loop straight through to showdown.
func (t *Table) advanceStreet() {
	for {
		t.currentBet = 0
		t.minRaise = t.opts.BigBlind
		for _, p := range t.players {
			p.newStreet()
		}

		switch t.state {
		case StatePreFlop:
			t.dealCommunity(3)
			t.state = StateFlop
		case StateFlop:
			t.dealCommunity(1)
			t.state = StateTurn
		case StateTurn:
			t.dealCommunity(1)
			t.state = StateRiver
		case StateRiver:
			t.finishShowdown()
			return
		}

		if t.actionableCount() >= 2 {
			t.currentIndex = t.firstToActPostFlop()
			return
		}
	}
}

// firstToActPostFlop returns the first actionable seat left of the dealer
func (t *Table) firstToActPostFlop() int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		index := (t.dealerIndex + i) % n
		if t.players[index].canAct() {
			return index
		}
	}

	panic("no actionable player on a new street")
}

func (t *Table) dealCommunity(count int) {
	if err := t.deck.Burn(); err != nil {
		panic("deck exhausted mid-hand")
	}

	for i := 0; i < count; i++ {
		t.community.AddCard(t.mustDraw())
	}
}

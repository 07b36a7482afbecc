package holdem

import (
	"sort"

	"github.com/sirupsen/logrus"

	"chiproom-server/pkg/deck"
	"chiproom-server/pkg/poker/handeval"
)

// Reveal is one player's hand shown at showdown
type Reveal struct {
	PlayerID  int64         `json:"playerId"`
	Name      string        `json:"name"`
	HoleCards deck.Hand     `json:"holeCards"`
	Best      deck.Hand     `json:"best"`
	Rank      handeval.Rank `json:"rank"`
}

// HandResult is the outcome of a completed hand
type HandResult struct {
	// FoldOut is true when the hand ended with everyone but one player
	// folding, so no cards were revealed
	FoldOut bool `json:"foldOut"`

	// Payouts maps player ID to chips won from the pot
	Payouts map[int64]int `json:"payouts"`

	// Reveals lists the hands shown at showdown, best first
	Reveals []Reveal `json:"reveals,omitempty"`

	// Departed maps the ID of each player who left during the hand to the
	// stack they finished with, so the caller can settle them out
	Departed map[int64]int `json:"-"`
}

// sidePot is a slice of the pot with its own set of eligible players
type sidePot struct {
	amount   int
	eligible []*Player
}

// finishByFold ends the hand when only one player remains
func (t *Table) finishByFold() {
	var winner *Player
	for _, p := range t.players {
		if !p.folded {
			winner = p
			break
		}
	}

	pot := t.pot
	winner.chips += pot
	t.result = &HandResult{
		FoldOut: true,
		Payouts: map[int64]int{winner.ID: pot},
	}
	t.endHand()

	t.log.WithFields(logrus.Fields{
		"winner": winner.ID,
		"pot":    pot,
	}).Debug("hand won by fold")
}

// finishShowdown evaluates the remaining hands and pays each pot slice to
// its best eligible hand
func (t *Table) finishShowdown() {
	t.state = StateShowdown

	ranks := make(map[*Player]handeval.Rank)
	reveals := make([]Reveal, 0)
	for _, p := range t.players {
		if p.folded {
			continue
		}

		cards := append(p.cards.Clone(), t.community...)
		best, rank, err := handeval.BestFive(cards)
		if err != nil {
			panic("showdown reached with an incomplete board")
		}

		ranks[p] = rank
		reveals = append(reveals, Reveal{
			PlayerID:  p.ID,
			Name:      p.Name,
			HoleCards: p.cards.Clone(),
			Best:      best,
			Rank:      rank,
		})
	}

	sort.SliceStable(reveals, func(i, j int) bool {
		a, _ := t.Player(reveals[i].PlayerID)
		b, _ := t.Player(reveals[j].PlayerID)
		return ranks[a].Beats(ranks[b])
	})

	payouts := make(map[int64]int)
	for _, pot := range t.buildPots() {
		t.payPot(pot, ranks, payouts)
	}

	t.result = &HandResult{
		Payouts: payouts,
		Reveals: reveals,
	}
	t.endHand()

	t.log.WithField("payouts", payouts).Debug("hand went to showdown")
}

// buildPots splits the pot into a main pot and side pots by peeling off
// contribution levels from the smallest all-in up. Folded players'
// contributions stay in the slices they funded but the players themselves
// are never eligible.
func (t *Table) buildPots() []sidePot {
	levels := make([]int, 0, len(t.players))
	seen := make(map[int]bool)
	for _, p := range t.players {
		if p.totalBet > 0 && !seen[p.totalBet] {
			seen[p.totalBet] = true
			levels = append(levels, p.totalBet)
		}
	}
	sort.Ints(levels)

	pots := make([]sidePot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := sidePot{}
		for _, p := range t.players {
			contribution := p.totalBet
			if contribution > level {
				contribution = level
			}
			if contribution > prev {
				pot.amount += contribution - prev
			}

			if p.totalBet >= level && !p.folded {
				pot.eligible = append(pot.eligible, p)
			}
		}

		if len(pot.eligible) > 0 {
			pots = append(pots, pot)
		} else {
			// everyone at this level folded; fold the chips into the
			// previous slice rather than orphaning them
			pots[len(pots)-1].amount += pot.amount
		}

		prev = level
	}

	return pots
}

// payPot pays one pot slice to its best eligible hand, splitting ties.
// An odd remainder goes to the first winner in seat order left of the
// dealer.
func (t *Table) payPot(pot sidePot, ranks map[*Player]handeval.Rank, payouts map[int64]int) {
	var best handeval.Rank
	winners := make([]*Player, 0, 1)
	for _, p := range pot.eligible {
		rank := ranks[p]
		switch {
		case len(winners) == 0 || rank.Beats(best):
			best = rank
			winners = winners[:0]
			winners = append(winners, p)
		case rank.Compare(best) == 0:
			winners = append(winners, p)
		}
	}

	sort.Slice(winners, func(i, j int) bool {
		return t.seatOrder(winners[i]) < t.seatOrder(winners[j])
	})

	share := pot.amount / len(winners)
	remainder := pot.amount % len(winners)
	for i, w := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}

		w.chips += amount
		payouts[w.ID] += amount
	}
}

// seatOrder returns a player's distance left of the dealer, used to break
// remainder ties
func (t *Table) seatOrder(p *Player) int {
	for i, other := range t.players {
		if other == p {
			return (i - t.dealerIndex - 1 + len(t.players)) % len(t.players)
		}
	}

	return len(t.players)
}

// endHand settles departed players and returns the table to an idle state.
// The pot has been paid out by this point, so it resets to zero.
func (t *Table) endHand() {
	departed := make(map[int64]int)
	for _, p := range t.players {
		if p.leaving {
			departed[p.ID] = p.chips
			p.chips = 0
		}
	}
	if len(departed) > 0 {
		t.result.Departed = departed
	}

	t.dropPlayers(func(p *Player) bool { return p.leaving })
	t.pot = 0
	t.state = StateEnded
}

package blackjack

import (
	"chiproom-server/pkg/deck"
)

// Outcome is how one hand fared against the dealer
type Outcome int

// Outcome constants, weakest first
const (
	OutcomeLose Outcome = iota
	OutcomePush
	OutcomeWin
	OutcomeNatural
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	case OutcomeNatural:
		return "blackjack"
	}

	return "unknown"
}

// Payout returns the chips returned to the player for a settled bet,
// stake included. A natural pays three to two.
func Payout(outcome Outcome, bet int) int {
	switch outcome {
	case OutcomeNatural:
		return bet + bet*3/2
	case OutcomeWin:
		return bet * 2
	case OutcomePush:
		return bet
	}

	return 0
}

// Hand is one of the player's hands; splitting adds more
type Hand struct {
	Cards   deck.Hand `json:"cards"`
	Bet     int       `json:"bet"`
	Doubled bool      `json:"doubled"`

	finished bool
}

// Result is a settled hand
type Result struct {
	Hand    *Hand   `json:"hand"`
	Outcome Outcome `json:"outcome"`
	Payout  int     `json:"payout"`
}

// Game is a single player's round against the dealer
type Game struct {
	deck    *deck.Deck
	dealer  deck.Hand
	hands   []*Hand
	current int
	over    bool
}

// NewGame deals a fresh round with the given stake already collected from
// the player. The deck is shuffled with a time-based seed unless seed > 0.
func NewGame(bet int, seed int64) (*Game, error) {
	if bet <= 0 {
		return nil, ActionError("bet must be greater than zero")
	}

	d := deck.New()
	d.Shuffle(seed)

	g := &Game{
		deck:  d,
		hands: []*Hand{{Bet: bet}},
	}

	hand := g.hands[0]
	hand.Cards = deck.Hand{g.draw(), g.draw()}
	g.dealer = deck.Hand{g.draw(), g.draw()}

	// a natural ends the round immediately
	if IsNatural(hand.Cards) {
		hand.finished = true
		g.finishIfDone()
	}

	return g, nil
}

// Dealer returns the dealer's cards. Only the upcard is public until the
// round is over.
func (g *Game) Dealer() deck.Hand {
	if g.over {
		return g.dealer.Clone()
	}

	return deck.Hand{g.dealer[0]}
}

// Hands returns the player's hands
func (g *Game) Hands() []*Hand {
	return g.hands
}

// CurrentHand returns the hand the next action applies to, or nil if the
// round is over
func (g *Game) CurrentHand() *Hand {
	if g.over {
		return nil
	}

	return g.hands[g.current]
}

// Over returns true once the dealer has played and all bets can settle
func (g *Game) Over() bool {
	return g.over
}

// Hit deals one more card to the current hand
func (g *Game) Hit() error {
	hand, err := g.actionable()
	if err != nil {
		return err
	}

	hand.Cards.AddCard(g.draw())
	if HandValue(hand.Cards) >= Target {
		g.finishHand(hand)
	}

	return nil
}

// Stand freezes the current hand
func (g *Game) Stand() error {
	hand, err := g.actionable()
	if err != nil {
		return err
	}

	g.finishHand(hand)
	return nil
}

// Double doubles the bet, takes exactly one card, and stands. Only allowed
// as the first decision on a hand. The caller is responsible for collecting
// the additional stake.
func (g *Game) Double() error {
	hand, err := g.actionable()
	if err != nil {
		return err
	}

	if len(hand.Cards) != 2 {
		return ActionError("can only double on the first two cards")
	}

	hand.Bet *= 2
	hand.Doubled = true
	hand.Cards.AddCard(g.draw())
	g.finishHand(hand)
	return nil
}

// Split turns a two-card pair into two hands carrying the same bet: the
// original hand draws its fresh second card first, then the new hand. Pairs
// may be re-split up to four hands. The caller is responsible for
// collecting the additional stake.
func (g *Game) Split() error {
	hand, err := g.actionable()
	if err != nil {
		return err
	}

	if !CanSplit(hand.Cards) {
		return ActionError("can only split a pair")
	}

	if len(g.hands) >= maxSplitHands {
		return ActionError("cannot split into more than four hands")
	}

	moved := hand.Cards[1]
	hand.Cards = deck.Hand{hand.Cards[0], g.draw()}
	split := &Hand{
		Cards: deck.Hand{moved, g.draw()},
		Bet:   hand.Bet,
	}
	g.hands = append(g.hands, split)
	return nil
}

// Results settles every hand against the dealer. Only valid once the round
// is over.
func (g *Game) Results() []*Result {
	if !g.over {
		return nil
	}

	dealerValue := HandValue(g.dealer)
	dealerNatural := IsNatural(g.dealer)

	results := make([]*Result, len(g.hands))
	for i, hand := range g.hands {
		outcome := resolve(hand, dealerValue, dealerNatural)
		results[i] = &Result{
			Hand:    hand,
			Outcome: outcome,
			Payout:  Payout(outcome, hand.Bet),
		}
	}

	return results
}

// resolve scores one hand. A split hand's twenty-one is not a natural.
func resolve(hand *Hand, dealerValue int, dealerNatural bool) Outcome {
	value := HandValue(hand.Cards)

	switch {
	case value > Target:
		return OutcomeLose
	case IsNatural(hand.Cards) && !hand.Doubled && !dealerNatural:
		return OutcomeNatural
	case dealerNatural:
		if IsNatural(hand.Cards) {
			return OutcomePush
		}
		return OutcomeLose
	case dealerValue > Target:
		return OutcomeWin
	case value > dealerValue:
		return OutcomeWin
	case value == dealerValue:
		return OutcomePush
	}

	return OutcomeLose
}

func (g *Game) actionable() (*Hand, error) {
	if g.over {
		return nil, ErrRoundOver
	}

	hand := g.hands[g.current]
	if hand.finished {
		return nil, ErrHandFinished
	}

	return hand, nil
}

// finishHand closes a hand and moves play along, running the dealer once
// every hand is done
func (g *Game) finishHand(hand *Hand) {
	hand.finished = true
	g.finishIfDone()
}

func (g *Game) finishIfDone() {
	for i, hand := range g.hands {
		if !hand.finished {
			g.current = i
			return
		}
	}

	g.playDealer()
	g.over = true
}

// playDealer draws until the dealer reaches seventeen. The dealer does not
// draw when no hand is live: every hand busted, or holds a natural that
// the draws cannot change.
func (g *Game) playDealer() {
	live := false
	for _, hand := range g.hands {
		if IsBust(hand.Cards) {
			continue
		}
		if IsNatural(hand.Cards) && !hand.Doubled {
			continue
		}

		live = true
		break
	}
	if !live {
		return
	}

	for HandValue(g.dealer) < dealerStand {
		g.dealer.AddCard(g.draw())
	}
}

func (g *Game) draw() *deck.Card {
	card, err := g.deck.Draw()
	if err != nil {
		panic("deck exhausted in a blackjack round")
	}

	return card
}

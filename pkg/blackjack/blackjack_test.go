package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chiproom-server/pkg/deck"
)

func hand(s string) deck.Hand {
	return deck.Hand(deck.CardsFromString(s))
}

func TestHandValue(t *testing.T) {
	a := assert.New(t)

	a.Equal(21, HandValue(hand("14s,13c")))
	a.Equal(21, HandValue(hand("14s,14h,9c")))
	a.Equal(12, HandValue(hand("14s,14h")))
	a.Equal(17, HandValue(hand("14s,6c")))
	a.Equal(16, HandValue(hand("14s,6c,9d")))
	a.Equal(20, HandValue(hand("13s,12c")))
	a.Equal(25, HandValue(hand("13s,12c,5h")))
	a.Equal(9, HandValue(hand("2s,3c,4h")))
}

func TestQueries(t *testing.T) {
	a := assert.New(t)

	a.True(IsNatural(hand("14s,13c")))
	a.False(IsNatural(hand("7s,7c,7h")))
	a.False(IsNatural(hand("13s,12c")))

	a.True(IsBust(hand("13s,12c,5h")))
	a.False(IsBust(hand("14s,13c")))

	a.True(CanSplit(hand("8s,8c")))
	a.False(CanSplit(hand("8s,9c")))
	a.False(CanSplit(hand("8s,8c,8h")))

	a.Equal(11, CardValue(deck.CardFromString("14s")))
	a.Equal(10, CardValue(deck.CardFromString("12s")))
	a.Equal(10, CardValue(deck.CardFromString("10s")))
	a.Equal(2, CardValue(deck.CardFromString("2s")))
}

func TestPayout(t *testing.T) {
	a := assert.New(t)

	a.Equal(250, Payout(OutcomeNatural, 100))
	a.Equal(200, Payout(OutcomeWin, 100))
	a.Equal(100, Payout(OutcomePush, 100))
	a.Equal(0, Payout(OutcomeLose, 100))

	// the three-to-two payout rounds down
	a.Equal(37, Payout(OutcomeNatural, 15))
}

// riggedGame builds a mid-round game with known cards; rest is drawn from
// the front in order
func riggedGame(bet int, player, dealer, rest string) *Game {
	d := deck.New()
	d.Cards = deck.CardsFromString(rest)

	return &Game{
		deck:   d,
		dealer: hand(dealer),
		hands:  []*Hand{{Bet: bet, Cards: hand(player)}},
	}
}

func TestGame_hitAndBust(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "13s,6c", "10h,7d", "9c")

	a.NoError(g.Hit())
	a.True(g.Over())
	a.Equal(ErrRoundOver, g.Hit())

	results := g.Results()
	a.Len(results, 1)
	a.Equal(OutcomeLose, results[0].Outcome)
	a.Equal(0, results[0].Payout)

	// the dealer does not draw out a dead round
	a.Len(g.Dealer(), 2)
}

func TestGame_standAndDealerDraws(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "13s,9c", "10h,2d", "4c,3h,9d")

	// only the upcard shows while the round is live
	a.Len(g.Dealer(), 1)

	a.NoError(g.Stand())
	a.True(g.Over())

	// dealer drew 12, 16, then stood at 19
	a.Equal("10h,2d,4c,3h", deck.CardsToString(g.Dealer()))

	results := g.Results()
	a.Equal(OutcomePush, results[0].Outcome)
	a.Equal(100, results[0].Payout)
}

func TestGame_dealerBusts(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "10s,8c", "10h,6d", "10c")

	a.NoError(g.Stand())
	results := g.Results()
	a.Equal(OutcomeWin, results[0].Outcome)
	a.Equal(200, results[0].Payout)
}

func TestGame_double(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "6s,5c", "10h,9d", "10c")

	a.NoError(g.Double())
	a.True(g.Over())

	results := g.Results()
	a.Equal(200, results[0].Hand.Bet)
	a.True(results[0].Hand.Doubled)
	a.Equal(OutcomeWin, results[0].Outcome)
	a.Equal(400, results[0].Payout)
}

func TestGame_doubleAfterHitRejected(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "2s,3c", "10h,9d", "4c,10d,11d")

	a.NoError(g.Hit())
	err := g.Double()
	a.EqualError(err, "can only double on the first two cards")
}

func TestGame_split(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "8s,8c", "10h,7d", "3c,2d,10s,9h")

	a.NoError(g.Split())
	a.Len(g.Hands(), 2)

	// the original hand draws before the split hand
	a.Equal("8s,3c", deck.CardsToString(g.Hands()[0].Cards))
	a.Equal("8c,2d", deck.CardsToString(g.Hands()[1].Cards))

	err := g.Split()
	a.EqualError(err, "can only split a pair")

	// play out both hands: 8+3+10=21, 8+2+9=19
	a.NoError(g.Hit())
	a.Equal(g.Hands()[1], g.CurrentHand())
	a.NoError(g.Hit())
	a.NoError(g.Stand())
	a.True(g.Over())

	results := g.Results()
	a.Equal(OutcomeWin, results[0].Outcome)
	a.Equal(OutcomeWin, results[1].Outcome)
}

func TestGame_resplit(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "8s,8c", "10h,7d", "8d,2c,9s,3c")

	a.NoError(g.Split())
	a.Equal("8s,8d", deck.CardsToString(g.Hands()[0].Cards))

	// the first hand paired again and can be split a second time
	a.NoError(g.Split())
	a.Len(g.Hands(), 3)
	a.Equal("8s,9s", deck.CardsToString(g.Hands()[0].Cards))
	a.Equal("8c,2c", deck.CardsToString(g.Hands()[1].Cards))
	a.Equal("8d,3c", deck.CardsToString(g.Hands()[2].Cards))

	for _, h := range g.Hands() {
		a.Equal(100, h.Bet)
	}
}

func TestGame_splitCapsAtFourHands(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "8s,8c", "10h,7d", "2h")
	g.hands = []*Hand{
		{Cards: hand("8s,8d"), Bet: 100},
		{Cards: hand("8c,3c"), Bet: 100},
		{Cards: hand("2s,2c"), Bet: 100},
		{Cards: hand("5s,5c"), Bet: 100},
	}

	err := g.Split()
	a.EqualError(err, "cannot split into more than four hands")
}

func TestGame_splitRequiresPair(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "8s,9c", "10h,7d", "3c")

	err := g.Split()
	a.EqualError(err, "can only split a pair")
}

func TestResolve_dealerNatural(t *testing.T) {
	a := assert.New(t)

	dealer := hand("14s,13c")
	dealerValue := HandValue(dealer)

	// a natural against a natural is a push, anything else loses
	a.Equal(OutcomePush, resolve(&Hand{Cards: hand("14h,13d")}, dealerValue, true))
	a.Equal(OutcomeLose, resolve(&Hand{Cards: hand("10s,9c,2h")}, dealerValue, true))
}

func TestResolve_twentyOneAfterHitIsNotNatural(t *testing.T) {
	a := assert.New(t)

	a.Equal(OutcomeWin, resolve(&Hand{Cards: hand("7s,7c,7h")}, 20, false))
	a.Equal(OutcomeNatural, resolve(&Hand{Cards: hand("14s,13c")}, 20, false))
}

func TestGame_naturalSettlesWithoutDealerDraw(t *testing.T) {
	a := assert.New(t)
	g := riggedGame(100, "14s,13c", "10h,6d", "9c")

	a.NoError(g.Stand())
	a.True(g.Over())

	// nothing the dealer draws can change a natural, so they stand pat
	a.Equal("10h,6d", deck.CardsToString(g.Dealer()))

	results := g.Results()
	a.Equal(OutcomeNatural, results[0].Outcome)
	a.Equal(250, results[0].Payout)
}

func TestNewGame_validation(t *testing.T) {
	a := assert.New(t)

	_, err := NewGame(0, 1)
	a.EqualError(err, "bet must be greater than zero")

	g, err := NewGame(100, 1)
	a.NoError(err)
	a.Len(g.Hands(), 1)
	a.Len(g.Hands()[0].Cards, 2)
	a.Equal(100, g.Hands()[0].Bet)
}

package handeval

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chiproom-server/pkg/deck"
)

func rank(t *testing.T, cards string) Rank {
	t.Helper()
	r, err := Evaluate(deck.CardsFromString(cards))
	require.NoError(t, err)
	return r
}

func TestEvaluate_categories(t *testing.T) {
	tests := []struct {
		name        string
		cards       string
		category    Category
		tiebreakers []int
	}{
		{"straight flush", "9s,10s,11s,12s,13s", StraightFlush, []int{13}},
		{"royal", "10c,11c,12c,13c,14c", StraightFlush, []int{14}},
		{"steel wheel", "14d,2d,3d,4d,5d", StraightFlush, []int{5}},
		{"four of a kind", "7c,7d,7h,7s,12c", FourOfAKind, []int{7, 12}},
		{"full house", "10c,10d,10h,4s,4c", FullHouse, []int{10, 4}},
		{"flush", "2h,6h,9h,11h,13h", Flush, []int{13, 11, 9, 6, 2}},
		{"straight", "5c,6d,7h,8s,9c", Straight, []int{9}},
		{"wheel", "14c,2d,3h,4s,5c", Straight, []int{5}},
		{"three of a kind", "8c,8d,8h,13s,2c", ThreeOfAKind, []int{8, 13, 2}},
		{"two pair", "9c,9d,7h,7s,14c", TwoPair, []int{9, 7, 14}},
		{"one pair", "12c,12d,9h,6s,3c", OnePair, []int{12, 9, 6, 3}},
		{"high card", "13c,11d,8h,5s,2c", HighCard, []int{13, 11, 8, 5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rank(t, tt.cards)
			assert.Equal(t, tt.category, r.Category)
			assert.Equal(t, tt.tiebreakers, r.Tiebreakers)
		})
	}
}

func TestEvaluate_sevenCards(t *testing.T) {
	a := assert.New(t)

	// the board pairs; hole cards upgrade to a full house
	r := rank(t, "10c,10d,4s,4c,9h,10h,2d")
	a.Equal(FullHouse, r.Category)
	a.Equal([]int{10, 4}, r.Tiebreakers)

	// two sets of trips make a full house using the better pair
	r = rank(t, "5c,5d,5h,9c,9d,9h,2s")
	a.Equal(FullHouse, r.Category)
	a.Equal([]int{9, 5}, r.Tiebreakers)

	// three pairs only play the top two, kicker is the ace
	r = rank(t, "9c,9d,7h,7s,5c,5d,14c")
	a.Equal(TwoPair, r.Category)
	a.Equal([]int{9, 7, 14}, r.Tiebreakers)

	// quads with a live kicker from the board
	r = rank(t, "3c,3d,3h,3s,14c,9d,2h")
	a.Equal(FourOfAKind, r.Category)
	a.Equal([]int{3, 14}, r.Tiebreakers)
}

func TestEvaluate_wheelIsFiveHigh(t *testing.T) {
	a := assert.New(t)

	wheel := rank(t, "14c,2d,3h,4s,5c")
	a.Equal(Straight, wheel.Category)
	a.Equal([]int{5}, wheel.Tiebreakers)

	sixHigh := rank(t, "2c,3d,4h,5s,6c")
	a.True(sixHigh.Beats(wheel), "a six-high straight beats the wheel")
}

func TestEvaluate_straightPlusFlushIsNotStraightFlush(t *testing.T) {
	a := assert.New(t)

	// seven cards holding a heart flush and a straight that needs the 8
	// of spades. The flush suit alone has no run of five.
	r := rank(t, "4h,5h,6h,7h,8s,12h,2d")
	a.Equal(Flush, r.Category)
	a.Equal([]int{12, 7, 6, 5, 4}, r.Tiebreakers)
}

func TestEvaluate_tooFewCards(t *testing.T) {
	_, err := Evaluate(deck.CardsFromString("2c,3c,4c,5c"))
	assert.Equal(t, ErrTooFewCards, err)
}

func TestRank_Compare(t *testing.T) {
	a := assert.New(t)

	pairOfAces := rank(t, "14c,14d,9h,6s,3c")
	pairOfKings := rank(t, "13c,13d,14h,6s,3c")
	a.True(pairOfAces.Beats(pairOfKings), "pair rank decides before kickers")

	betterKicker := rank(t, "13c,13d,14h,7s,3c")
	a.True(betterKicker.Beats(pairOfKings))
	a.False(pairOfKings.Beats(pairOfKings))
	a.Equal(0, pairOfKings.Compare(pairOfKings))

	// suits never matter
	sameHandOtherSuits := rank(t, "13h,13s,14d,6c,3d")
	a.Equal(0, pairOfKings.Compare(sameHandOtherSuits))
}

// Evaluating random boards must keep the category ordering self-consistent:
// more of-a-kind can never lose to less of-a-kind.
func TestEvaluate_randomConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 250; i++ {
		d := deck.New()
		d.Shuffle(rng.Int63n(1 << 30))

		cards := make([]*deck.Card, 7)
		for j := range cards {
			card, err := d.Draw()
			require.NoError(t, err)
			cards[j] = card
		}

		r, err := Evaluate(cards)
		require.NoError(t, err)

		counts := make(map[int]int)
		for _, c := range cards {
			counts[c.Rank]++
		}

		most := 0
		for _, n := range counts {
			if n > most {
				most = n
			}
		}

		switch most {
		case 4:
			assert.True(t, r.Category >= FourOfAKind, "quads on board, got %s", r)
		case 3:
			assert.True(t, r.Category >= ThreeOfAKind, "trips on board, got %s", r)
		case 2:
			assert.True(t, r.Category >= OnePair, "pair on board, got %s", r)
		}

		best, bestRank, err := BestFive(cards)
		require.NoError(t, err)
		assert.Equal(t, 5, len(best))
		assert.Equal(t, 0, bestRank.Compare(r), "best five must match the full evaluation")
	}
}

func TestBestFive(t *testing.T) {
	a := assert.New(t)

	cards := deck.CardsFromString("14c,14d,9h,6s,3c,2d,14h")
	best, r, err := BestFive(cards)
	a.NoError(err)
	a.Equal(ThreeOfAKind, r.Category)
	a.Equal(5, len(best))

	// all three aces must be in the chosen five
	aces := 0
	for _, c := range best {
		if c.Rank == deck.Ace {
			aces++
		}
	}
	a.Equal(3, aces)

	short := deck.CardsFromString("14c,14d,9h,6s,3c")
	best, r, err = BestFive(short)
	a.NoError(err)
	a.Equal(OnePair, r.Category)
	a.Equal(5, len(best))
}

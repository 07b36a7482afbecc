// Package handeval ranks poker hands of five or more cards.
package handeval

import (
	"errors"
	"sort"

	"chiproom-server/pkg/deck"
)

// ErrTooFewCards is an error when fewer than five cards are evaluated
var ErrTooFewCards = errors.New("hand evaluation requires at least five cards")

// Evaluate returns the strength of the best five-card hand that can be made
// from the supplied cards. At least five cards are required; seven is the
// common case (two hole cards plus the board).
func Evaluate(cards []*deck.Card) (Rank, error) {
	if len(cards) < 5 {
		return Rank{}, ErrTooFewCards
	}

	rankCounts := make(map[int]int)
	suitRanks := make(map[deck.Suit][]int)
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitRanks[c.Suit] = append(suitRanks[c.Suit], c.Rank)
	}

	var flushRanks []int
	for _, ranks := range suitRanks {
		if len(ranks) >= 5 {
			sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
			// more than one qualifying suit takes >9 cards; keep the best
			if flushRanks == nil || ranks[0] > flushRanks[0] {
				flushRanks = ranks
			}
		}
	}

	// a straight flush must be five consecutive ranks within the flush
	// suit. A straight plus a flush made from different cards is not one.
	if flushRanks != nil {
		if high := straightHigh(flushRanks); high > 0 {
			return Rank{Category: StraightFlush, Tiebreakers: []int{high}}, nil
		}
	}

	groups := groupByCount(rankCounts)

	if groups[0].count == 4 {
		return Rank{
			Category:    FourOfAKind,
			Tiebreakers: []int{groups[0].rank, bestKicker(cards, groups[0].rank)},
		}, nil
	}

	if groups[0].count == 3 && len(groups) > 1 && groups[1].count >= 2 {
		// a second set of trips plays as the pair
		return Rank{
			Category:    FullHouse,
			Tiebreakers: []int{groups[0].rank, groups[1].rank},
		}, nil
	}

	if flushRanks != nil {
		return Rank{Category: Flush, Tiebreakers: flushRanks[0:5]}, nil
	}

	allRanks := make([]int, 0, len(rankCounts))
	for rank := range rankCounts {
		allRanks = append(allRanks, rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(allRanks)))

	if high := straightHigh(allRanks); high > 0 {
		return Rank{Category: Straight, Tiebreakers: []int{high}}, nil
	}

	if groups[0].count == 3 {
		return Rank{
			Category:    ThreeOfAKind,
			Tiebreakers: append([]int{groups[0].rank}, kickers(allRanks, 2, groups[0].rank)...),
		}, nil
	}

	if groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2 {
		high, low := groups[0].rank, groups[1].rank
		return Rank{
			Category:    TwoPair,
			Tiebreakers: append([]int{high, low}, kickers(allRanks, 1, high, low)...),
		}, nil
	}

	if groups[0].count == 2 {
		return Rank{
			Category:    OnePair,
			Tiebreakers: append([]int{groups[0].rank}, kickers(allRanks, 3, groups[0].rank)...),
		}, nil
	}

	return Rank{Category: HighCard, Tiebreakers: allRanks[0:5]}, nil
}

type rankGroup struct {
	rank  int
	count int
}

// groupByCount returns rank groups ordered by count descending, then rank
// descending. The first group decides the of-a-kind category.
func groupByCount(rankCounts map[int]int) []rankGroup {
	groups := make([]rankGroup, 0, len(rankCounts))
	for rank, count := range rankCounts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	return groups
}

// straightHigh returns the high card of the best straight found among the
// distinct ranks, or 0 if there is none. An Ace counts both high and low,
// so A-2-3-4-5 is a 5-high straight.
func straightHigh(ranks []int) int {
	present := make(map[int]bool, len(ranks)+1)
	for _, rank := range ranks {
		present[rank] = true
		if rank == deck.Ace {
			present[deck.LowAce] = true
		}
	}

	for high := deck.Ace; high >= 5; high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !present[r] {
				run = false
				break
			}
		}

		if run {
			return high
		}
	}

	return 0
}

// kickers returns the top n card ranks, high to low, excluding any rank in skip
func kickers(sortedRanks []int, n int, skip ...int) []int {
	skipSet := make(map[int]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}

	picked := make([]int, 0, n)
	for _, rank := range sortedRanks {
		if skipSet[rank] {
			continue
		}

		picked = append(picked, rank)
		if len(picked) == n {
			break
		}
	}

	return picked
}

func bestKicker(cards []*deck.Card, skip int) int {
	best := 0
	for _, c := range cards {
		if c.Rank != skip && c.Rank > best {
			best = c.Rank
		}
	}

	return best
}

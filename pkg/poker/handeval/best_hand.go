package handeval

import (
	"chiproom-server/pkg/deck"
)

// BestFive returns the strongest five-card combination from the cards along
// with its rank. With seven cards all C(7,5)=21 combinations are tried; the
// first combination found at the top strength wins (display only, the rank
// itself is what settles pots).
func BestFive(cards []*deck.Card) ([]*deck.Card, Rank, error) {
	if len(cards) <= 5 {
		rank, err := Evaluate(cards)
		return cards, rank, err
	}

	var bestHand []*deck.Card
	var bestRank Rank
	found := false

	combo := make([]*deck.Card, 5)
	var visit func(start, depth int) error
	visit = func(start, depth int) error {
		if depth == 5 {
			rank, err := Evaluate(combo)
			if err != nil {
				return err
			}

			if !found || rank.Beats(bestRank) {
				bestHand = append([]*deck.Card(nil), combo...)
				bestRank = rank
				found = true
			}

			return nil
		}

		for i := start; i <= len(cards)-(5-depth); i++ {
			combo[depth] = cards[i]
			if err := visit(i+1, depth+1); err != nil {
				return err
			}
		}

		return nil
	}

	if err := visit(0, 0); err != nil {
		return nil, Rank{}, err
	}

	return bestHand, bestRank, nil
}

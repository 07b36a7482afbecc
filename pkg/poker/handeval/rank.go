package handeval

import "encoding/json"

// Category is the class of a poker hand. Higher is stronger.
type Category int

// categories, weakest to strongest
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	}

	return "Unknown"
}

// MarshalJSON encodes JSON
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(c),
		Name: c.String(),
	})
}

// UnmarshalJSON decodes JSON
func (c *Category) UnmarshalJSON(data []byte) error {
	var payload struct {
		ID int `json:"id"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	*c = Category(payload.ID)
	return nil
}

// Rank is a comparable hand strength. Ranks compare by category first,
// then tiebreakers lexicographically. Equal ranks are a tie (split pot).
type Rank struct {
	Category    Category `json:"category"`
	Tiebreakers []int    `json:"tiebreakers"`
}

// Compare returns <0 if r is weaker than o, 0 if tied, >0 if stronger
func (r Rank) Compare(o Rank) int {
	if r.Category != o.Category {
		return int(r.Category) - int(o.Category)
	}

	n := len(r.Tiebreakers)
	if len(o.Tiebreakers) < n {
		n = len(o.Tiebreakers)
	}

	for i := 0; i < n; i++ {
		if r.Tiebreakers[i] != o.Tiebreakers[i] {
			return r.Tiebreakers[i] - o.Tiebreakers[i]
		}
	}

	return len(r.Tiebreakers) - len(o.Tiebreakers)
}

// Beats returns true if r is strictly stronger than o
func (r Rank) Beats(o Rank) bool {
	return r.Compare(o) > 0
}

func (r Rank) String() string {
	return r.Category.String()
}

package holdem

import "encoding/json"

// State represents the table's position in the hand lifecycle
type State int

// constants for State
const (
	StateWaiting State = iota
	StatePreFlop
	StateFlop
	StateTurn
	StateRiver
	StateShowdown
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePreFlop:
		return "pre-flop"
	case StateFlop:
		return "flop"
	case StateTurn:
		return "turn"
	case StateRiver:
		return "river"
	case StateShowdown:
		return "showdown"
	case StateEnded:
		return "ended"
	}

	return ""
}

// IsBettingRound returns true if the state is one of the four betting streets
func (s State) IsBettingRound() bool {
	return s >= StatePreFlop && s <= StateRiver
}

// MarshalJSON encodes JSON
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

// UnmarshalJSON decodes JSON
func (s *State) UnmarshalJSON(data []byte) error {
	var payload struct {
		ID int `json:"id"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	*s = State(payload.ID)
	return nil
}

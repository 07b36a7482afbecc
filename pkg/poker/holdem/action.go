package holdem

import "fmt"

// Action is a betting action a player can take
type Action string

// valid actions
const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionBet   Action = "bet"
	ActionRaise Action = "raise"
)

var validActions = map[Action]bool{
	ActionFold:  true,
	ActionCheck: true,
	ActionCall:  true,
	ActionBet:   true,
	ActionRaise: true,
}

// ActionFromString parses a player-supplied action name
func ActionFromString(s string) (Action, error) {
	action := Action(s)
	if !validActions[action] {
		return "", fmt.Errorf("%s is not a valid action", s)
	}

	return action, nil
}

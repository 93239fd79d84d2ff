package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// boardCards returns how many community cards the street requires.
func (s Street) boardCards() int {
	return [...]int{0, 3, 4, 5, 5}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// ParseAction maps a wire action name to an Action.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	case "call":
		return Call, true
	case "raise":
		return Raise, true
	case "allin", "all-in", "all_in":
		return AllIn, true
	default:
		return 0, false
	}
}

// ValidActions describes the legal action envelope for the acting seat.
// Raise bounds are total-to amounts: the seat's street commitment after the
// raise, not the increment.
type ValidActions struct {
	CanFold    bool `json:"can_fold"`
	CanCheck   bool `json:"can_check"`
	CanCall    bool `json:"can_call"`
	CanRaise   bool `json:"can_raise"`
	CallAmount int  `json:"call_amount"`
	MinRaiseTo int  `json:"min_raise_to"`
	MaxRaiseTo int  `json:"max_raise_to"`
}

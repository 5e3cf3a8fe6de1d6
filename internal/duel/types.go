package duel

import "errors"

// Role identifies one of the two fixed seats in a room. The host creates
// the room; the guest fills the second slot. Whoever is not setting the
// word is the guesser.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

func (r Role) Other() Role {
	if r == RoleHost {
		return RoleGuest
	}
	return RoleHost
}

var (
	// ErrRejected means the actor is not allowed to perform the operation
	// in the current phase. The gateway answers it with silence.
	ErrRejected = errors.New("action rejected")

	// ErrDuplicateLetter is non-fatal: the guess changed nothing and only
	// the acting participant is told.
	ErrDuplicateLetter = errors.New("letter already used")
)

// TurnRecord is one completed turn. The log is append-only and is the
// source of truth for scores and winner determination.
type TurnRecord struct {
	Round        int  `json:"round"`
	Turn         int  `json:"turn"`
	Setter       Role `json:"setter"`
	Guesser      Role `json:"guesser"`
	Won          bool `json:"won"`
	AttemptsUsed int  `json:"attemptsUsed"`
}

type Scores struct {
	Host  int `json:"host"`
	Guest int `json:"guest"`
}

// Outcome is what a concluded turn leads to once the settle interval has
// passed.
type Outcome int

const (
	OutcomeNextTurn Outcome = iota
	OutcomeNextRound
	OutcomeMatchOver
)

type GuessResult struct {
	Letter    string
	Correct   bool
	Duplicate bool
	TurnOver  bool
	TurnWon   bool
}

// State holds everything about one duel. It is pure data plus transition
// logic; all I/O and locking live in the room package.
type State struct {
	Secret       string
	Guessed      []string
	AttemptsLeft int
	AttemptsMax  int
	TurnOver     bool
	TurnWon      bool

	Round     int
	Setter    Role
	TurnIndex int

	TurnLog []TurnRecord
	Scores  Scores

	MatchOver bool
	Winner    Role

	turnLogged bool
}

func NewState(attemptsMax int) *State {
	if attemptsMax <= 0 {
		attemptsMax = 6
	}
	return &State{
		AttemptsLeft: attemptsMax,
		AttemptsMax:  attemptsMax,
		Round:        1,
		Setter:       RoleHost,
		TurnIndex:    1,
	}
}

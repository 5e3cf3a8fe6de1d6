package duel

import "strings"

// SetSecret stores the setter's word and arms a fresh turn. Only the
// current setter may call it, and only while the match is live. The word
// must be at least 3 letters, A-Z only; shorter or non-alphabetic words
// are rejected like any other invalid action.
func (s *State) SetSecret(actor Role, word string) error {
	if s.MatchOver || actor != s.Setter {
		return ErrRejected
	}
	// A concluded turn belongs to the settle transition; the setter
	// cannot jump ahead of it.
	if s.TurnOver {
		return ErrRejected
	}
	word = strings.ToUpper(strings.TrimSpace(word))
	if !validWord(word) {
		return ErrRejected
	}
	s.Secret = word
	s.Guessed = nil
	s.AttemptsLeft = s.AttemptsMax
	s.TurnOver = false
	s.TurnWon = false
	s.turnLogged = false
	return nil
}

// Guess reveals one letter for the current guesser. A repeated letter
// returns ErrDuplicateLetter with zero state change. A miss costs one
// attempt. End conditions are checked in order: full reveal wins, an
// exhausted budget loses.
func (s *State) Guess(actor Role, letter string) (GuessResult, error) {
	if s.MatchOver || actor != s.Setter.Other() {
		return GuessResult{}, ErrRejected
	}
	if s.Secret == "" || s.TurnOver {
		return GuessResult{}, ErrRejected
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return GuessResult{}, ErrRejected
	}

	if s.isGuessed(letter) {
		return GuessResult{Letter: letter, Duplicate: true}, ErrDuplicateLetter
	}

	s.Guessed = append(s.Guessed, letter)
	correct := strings.Contains(s.Secret, letter)
	if !correct {
		s.AttemptsLeft--
	}

	if s.allRevealed() {
		s.TurnOver = true
		s.TurnWon = true
	} else if s.AttemptsLeft == 0 {
		s.TurnOver = true
		s.TurnWon = false
	}

	return GuessResult{
		Letter:   letter,
		Correct:  correct,
		TurnOver: s.TurnOver,
		TurnWon:  s.TurnWon,
	}, nil
}

// CompleteTurn records the concluded turn in the log, credits the guesser
// on a win, and decides what comes next. It is valid exactly once per
// concluded turn. Per-turn fields are left intact so the outcome stays
// visible through the settle interval; StartNextTurn/StartNextRound apply
// the actual transition.
func (s *State) CompleteTurn() (Outcome, error) {
	if !s.TurnOver || s.turnLogged {
		return 0, ErrRejected
	}
	guesser := s.Setter.Other()
	s.TurnLog = append(s.TurnLog, TurnRecord{
		Round:        s.Round,
		Turn:         s.TurnIndex,
		Setter:       s.Setter,
		Guesser:      guesser,
		Won:          s.TurnWon,
		AttemptsUsed: s.AttemptsMax - s.AttemptsLeft,
	})
	s.turnLogged = true

	if s.TurnWon {
		if guesser == RoleHost {
			s.Scores.Host++
		} else {
			s.Scores.Guest++
		}
	}

	hostTurn, guestTurn, n := s.roundEntries(s.Round)
	if n < 2 {
		return OutcomeNextTurn, nil
	}
	if winner, ok := RoundWinner(hostTurn, guestTurn); ok {
		s.MatchOver = true
		s.Winner = winner
		return OutcomeMatchOver, nil
	}
	return OutcomeNextRound, nil
}

// StartNextTurn flips roles for the second turn of the current round.
func (s *State) StartNextTurn() {
	s.Setter = s.Setter.Other()
	s.TurnIndex = 2
	s.clearTurn()
}

// StartNextRound begins a fresh round with the host setting first.
func (s *State) StartNextRound() {
	s.Round++
	s.Setter = RoleHost
	s.TurnIndex = 1
	s.clearTurn()
}

// ResetMatch wipes everything back to round 1. Allowed at any point in a
// live room, including mid-turn and after a decided match.
func (s *State) ResetMatch() {
	s.Round = 1
	s.Setter = RoleHost
	s.TurnIndex = 1
	s.TurnLog = nil
	s.Scores = Scores{}
	s.MatchOver = false
	s.Winner = ""
	s.clearTurn()
}

func (s *State) clearTurn() {
	s.Secret = ""
	s.Guessed = nil
	s.AttemptsLeft = s.AttemptsMax
	s.TurnOver = false
	s.TurnWon = false
	s.turnLogged = false
}

func (s *State) isGuessed(letter string) bool {
	for _, g := range s.Guessed {
		if g == letter {
			return true
		}
	}
	return false
}

func (s *State) allRevealed() bool {
	for _, r := range s.Secret {
		if !s.isGuessed(string(r)) {
			return false
		}
	}
	return true
}

// roundEntries returns the turn records of the given round keyed by who
// guessed, plus how many exist. A round never has more than two.
func (s *State) roundEntries(round int) (hostTurn, guestTurn TurnRecord, n int) {
	for _, rec := range s.TurnLog {
		if rec.Round != round {
			continue
		}
		n++
		if rec.Guesser == RoleHost {
			hostTurn = rec
		} else {
			guestTurn = rec
		}
	}
	return hostTurn, guestTurn, n
}

func validWord(word string) bool {
	if len(word) < 3 {
		return false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

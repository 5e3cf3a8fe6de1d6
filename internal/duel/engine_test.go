package duel

import (
	"errors"
	"testing"
)

func mustSet(t *testing.T, s *State, actor Role, word string) {
	t.Helper()
	if err := s.SetSecret(actor, word); err != nil {
		t.Fatalf("SetSecret(%s, %q): %v", actor, word, err)
	}
}

func mustGuess(t *testing.T, s *State, actor Role, letter string) GuessResult {
	t.Helper()
	res, err := s.Guess(actor, letter)
	if err != nil {
		t.Fatalf("Guess(%s, %q): %v", actor, letter, err)
	}
	return res
}

func TestSetSecretValidation(t *testing.T) {
	tests := []struct {
		name  string
		actor Role
		word  string
		ok    bool
	}{
		{"setter with valid word", RoleHost, "cat", true},
		{"lowercase is uppercased", RoleHost, "dog", true},
		{"guesser cannot set", RoleGuest, "cat", false},
		{"too short", RoleHost, "at", false},
		{"empty", RoleHost, "", false},
		{"digits rejected", RoleHost, "abc123", false},
		{"spaces rejected", RoleHost, "two words", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(6)
			err := s.SetSecret(tt.actor, tt.word)
			if tt.ok && err != nil {
				t.Fatalf("want success, got %v", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrRejected) {
					t.Fatalf("want ErrRejected, got %v", err)
				}
				if s.Secret != "" {
					t.Fatalf("rejected SetSecret mutated state: secret=%q", s.Secret)
				}
			}
		})
	}
}

func TestSetSecretUppercasesAndResets(t *testing.T) {
	s := NewState(6)
	mustSet(t, s, RoleHost, "cat")
	mustGuess(t, s, RoleGuest, "x")

	mustSet(t, s, RoleHost, "dog")
	if s.Secret != "DOG" {
		t.Fatalf("secret = %q, want DOG", s.Secret)
	}
	if len(s.Guessed) != 0 || s.AttemptsLeft != 6 || s.TurnOver {
		t.Fatalf("per-turn fields not reset: %+v", s)
	}
}

func TestGuessWinLoseOrdering(t *testing.T) {
	s := NewState(6)
	mustSet(t, s, RoleHost, "cat")

	for i, letter := range []string{"c", "a"} {
		res := mustGuess(t, s, RoleGuest, letter)
		if !res.Correct || res.TurnOver {
			t.Fatalf("guess %d: unexpected result %+v", i, res)
		}
	}
	res := mustGuess(t, s, RoleGuest, "t")
	if !res.Correct || !res.TurnOver || !res.TurnWon {
		t.Fatalf("final guess: %+v, want correct win", res)
	}
	if s.AttemptsLeft != 6 {
		t.Fatalf("attempts = %d, want 6 untouched on all-correct run", s.AttemptsLeft)
	}
}

func TestGuessExhaustsAttempts(t *testing.T) {
	s := NewState(3)
	mustSet(t, s, RoleHost, "cat")

	for _, letter := range []string{"x", "y"} {
		res := mustGuess(t, s, RoleGuest, letter)
		if res.Correct || res.TurnOver {
			t.Fatalf("guess %q: %+v", letter, res)
		}
	}
	res := mustGuess(t, s, RoleGuest, "z")
	if !res.TurnOver || res.TurnWon {
		t.Fatalf("third miss: %+v, want lost turn", res)
	}
	if s.AttemptsLeft != 0 {
		t.Fatalf("attempts = %d, want 0", s.AttemptsLeft)
	}

	// Budget can never go negative: the turn is over.
	if _, err := s.Guess(RoleGuest, "q"); !errors.Is(err, ErrRejected) {
		t.Fatalf("guess after turn over: %v, want ErrRejected", err)
	}
}

func TestDuplicateGuessChangesNothing(t *testing.T) {
	s := NewState(6)
	mustSet(t, s, RoleHost, "cat")
	mustGuess(t, s, RoleGuest, "x")

	attempts, guessed := s.AttemptsLeft, len(s.Guessed)
	res, err := s.Guess(RoleGuest, "x")
	if !errors.Is(err, ErrDuplicateLetter) {
		t.Fatalf("want ErrDuplicateLetter, got %v", err)
	}
	if !res.Duplicate {
		t.Fatalf("result not flagged duplicate: %+v", res)
	}
	if s.AttemptsLeft != attempts || len(s.Guessed) != guessed {
		t.Fatalf("duplicate mutated state: attempts %d->%d, guessed %d->%d",
			attempts, s.AttemptsLeft, guessed, len(s.Guessed))
	}
}

func TestGuessRejections(t *testing.T) {
	s := NewState(6)

	// No secret yet.
	if _, err := s.Guess(RoleGuest, "a"); !errors.Is(err, ErrRejected) {
		t.Fatalf("guess before secret: %v", err)
	}

	mustSet(t, s, RoleHost, "cat")

	// Setter cannot guess their own word.
	if _, err := s.Guess(RoleHost, "a"); !errors.Is(err, ErrRejected) {
		t.Fatalf("setter guessing: %v", err)
	}

	// Only single letters count.
	for _, bad := range []string{"", "ab", "1", "?"} {
		if _, err := s.Guess(RoleGuest, bad); !errors.Is(err, ErrRejected) {
			t.Fatalf("guess %q: %v, want ErrRejected", bad, err)
		}
	}
}

// playTurn drives one full turn to its conclusion: won turns guess every
// secret letter after burning wrongAttempts misses, lost turns miss until
// the budget runs out.
func playTurn(t *testing.T, s *State, word string, won bool, wrongAttempts int) {
	t.Helper()
	setter := s.Setter
	guesser := setter.Other()
	mustSet(t, s, setter, word)

	misses := []string{"X", "Y", "Z", "Q", "J", "K", "V", "W"}
	if !won {
		wrongAttempts = s.AttemptsMax
	}
	for i := 0; i < wrongAttempts; i++ {
		mustGuess(t, s, guesser, misses[i])
	}
	if won {
		for _, r := range word {
			if !s.isGuessed(string(r)) {
				mustGuess(t, s, guesser, string(r))
			}
		}
	}
	if !s.TurnOver || s.TurnWon != won {
		t.Fatalf("turn did not conclude as expected: over=%v won=%v", s.TurnOver, s.TurnWon)
	}
}

func TestCompleteTurnAdvancesWithinRound(t *testing.T) {
	s := NewState(6)
	playTurn(t, s, "CAT", true, 0)

	outcome, err := s.CompleteTurn()
	if err != nil {
		t.Fatalf("CompleteTurn: %v", err)
	}
	if outcome != OutcomeNextTurn {
		t.Fatalf("outcome = %v, want OutcomeNextTurn", outcome)
	}
	if s.Scores.Guest != 1 {
		t.Fatalf("guest score = %d, want 1", s.Scores.Guest)
	}

	// Logging a turn twice must be impossible.
	if _, err := s.CompleteTurn(); !errors.Is(err, ErrRejected) {
		t.Fatalf("second CompleteTurn: %v, want ErrRejected", err)
	}

	s.StartNextTurn()
	if s.Setter != RoleGuest || s.TurnIndex != 2 || s.Round != 1 {
		t.Fatalf("after StartNextTurn: setter=%s turn=%d round=%d", s.Setter, s.TurnIndex, s.Round)
	}
	if s.Secret != "" || s.TurnOver {
		t.Fatalf("per-turn fields survived the transition: %+v", s)
	}
}

func TestRoundDecidesMatch(t *testing.T) {
	s := NewState(6)

	// Turn 1: guest guesses CAT and wins. Turn 2: host fails on DOG.
	playTurn(t, s, "CAT", true, 0)
	if _, err := s.CompleteTurn(); err != nil {
		t.Fatal(err)
	}
	s.StartNextTurn()
	playTurn(t, s, "DOG", false, 0)

	outcome, err := s.CompleteTurn()
	if err != nil {
		t.Fatalf("CompleteTurn: %v", err)
	}
	if outcome != OutcomeMatchOver {
		t.Fatalf("outcome = %v, want OutcomeMatchOver", outcome)
	}
	if !s.MatchOver || s.Winner != RoleGuest {
		t.Fatalf("matchOver=%v winner=%s, want guest", s.MatchOver, s.Winner)
	}
	if got := len(s.TurnLog); got != 2 {
		t.Fatalf("turn log length = %d, want 2", got)
	}
}

func TestDrawnRoundContinues(t *testing.T) {
	s := NewState(6)

	// Both guessers win with identical attempts used.
	playTurn(t, s, "CAT", true, 2)
	if _, err := s.CompleteTurn(); err != nil {
		t.Fatal(err)
	}
	s.StartNextTurn()
	playTurn(t, s, "DOG", true, 2)

	outcome, err := s.CompleteTurn()
	if err != nil {
		t.Fatalf("CompleteTurn: %v", err)
	}
	if outcome != OutcomeNextRound {
		t.Fatalf("outcome = %v, want OutcomeNextRound", outcome)
	}
	if s.MatchOver {
		t.Fatal("drawn round ended the match")
	}

	s.StartNextRound()
	if s.Round != 2 || s.Setter != RoleHost || s.TurnIndex != 1 {
		t.Fatalf("after StartNextRound: round=%d setter=%s turn=%d", s.Round, s.Setter, s.TurnIndex)
	}
	if s.Scores.Host != 1 || s.Scores.Guest != 1 {
		t.Fatalf("scores = %+v, want 1-1 carried over", s.Scores)
	}
}

func TestFewerAttemptsWinsRound(t *testing.T) {
	s := NewState(6)

	// Guest wins with 2 misses, host wins with 4: host used more attempts.
	playTurn(t, s, "CAT", true, 2)
	if _, err := s.CompleteTurn(); err != nil {
		t.Fatal(err)
	}
	s.StartNextTurn()
	playTurn(t, s, "DOG", true, 4)

	outcome, err := s.CompleteTurn()
	if err != nil {
		t.Fatal(err)
	}
	if outcome != OutcomeMatchOver || s.Winner != RoleGuest {
		t.Fatalf("outcome=%v winner=%s, want guest by fewer attempts", outcome, s.Winner)
	}
}

func TestTurnLogCapsAtTwoPerRound(t *testing.T) {
	s := NewState(6)
	for round := 1; round <= 3; round++ {
		playTurn(t, s, "CAT", false, 0)
		if _, err := s.CompleteTurn(); err != nil {
			t.Fatal(err)
		}
		s.StartNextTurn()
		playTurn(t, s, "DOG", false, 0)
		if _, err := s.CompleteTurn(); err != nil {
			t.Fatal(err)
		}
		s.StartNextRound()
	}

	perRound := map[int]int{}
	for _, rec := range s.TurnLog {
		perRound[rec.Round]++
	}
	for round, n := range perRound {
		if n > 2 {
			t.Fatalf("round %d has %d log entries", round, n)
		}
	}
	if s.Round != 4 {
		t.Fatalf("round = %d after three symmetric rounds, want 4", s.Round)
	}
}

func TestResetMatch(t *testing.T) {
	s := NewState(6)
	playTurn(t, s, "CAT", true, 1)
	if _, err := s.CompleteTurn(); err != nil {
		t.Fatal(err)
	}

	s.ResetMatch()
	if s.Round != 1 || s.Setter != RoleHost || s.TurnIndex != 1 {
		t.Fatalf("reset position: round=%d setter=%s turn=%d", s.Round, s.Setter, s.TurnIndex)
	}
	if len(s.TurnLog) != 0 || s.Scores != (Scores{}) {
		t.Fatalf("reset kept history: log=%d scores=%+v", len(s.TurnLog), s.Scores)
	}
	if s.Secret != "" || s.MatchOver {
		t.Fatalf("reset kept turn state: %+v", s)
	}
}

func TestSnapshotHidesSecretUntilTurnOver(t *testing.T) {
	s := NewState(6)
	mustSet(t, s, RoleHost, "cat")
	mustGuess(t, s, RoleGuest, "a")

	snap := s.Snapshot("ABC234", true)
	if snap.Word != nil {
		t.Fatalf("secret leaked while turn live: %q", *snap.Word)
	}
	if snap.DisplayWord != "_ A _" {
		t.Fatalf("displayWord = %q, want \"_ A _\"", snap.DisplayWord)
	}
	if !snap.PlayersReady || snap.RoomCode != "ABC234" {
		t.Fatalf("snapshot metadata: %+v", snap)
	}

	for _, letter := range []string{"c", "t"} {
		mustGuess(t, s, RoleGuest, letter)
	}
	snap = s.Snapshot("ABC234", true)
	if snap.Word == nil || *snap.Word != "CAT" {
		t.Fatalf("word after turn over: %v, want CAT", snap.Word)
	}
	if !snap.GameOver || !snap.Won {
		t.Fatalf("snapshot outcome: %+v", snap)
	}
}

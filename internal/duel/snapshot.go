package duel

import "strings"

// PublicState is the projection broadcast to both participants. The secret
// is withheld until the turn is over.
type PublicState struct {
	RoomCode       string       `json:"roomCode"`
	DisplayWord    string       `json:"displayWord"`
	GuessedLetters []string     `json:"guessedLetters"`
	AttemptsLeft   int          `json:"attemptsLeft"`
	MaxAttempts    int          `json:"maxAttempts"`
	GameOver       bool         `json:"gameOver"`
	Won            bool         `json:"won"`
	Word           *string      `json:"word"`
	PlayersReady   bool         `json:"playersReady"`
	CurrentRound   int          `json:"currentRound"`
	CurrentTurn    int          `json:"currentTurn"`
	CurrentSetter  Role         `json:"currentSetter"`
	Scores         Scores       `json:"scores"`
	TurnLog        []TurnRecord `json:"turnLog"`
	MatchOver      bool         `json:"matchOver"`
	Winner         Role         `json:"winner,omitempty"`
}

func (s *State) Snapshot(code string, ready bool) PublicState {
	ps := PublicState{
		RoomCode:       code,
		DisplayWord:    s.displayWord(),
		GuessedLetters: append([]string{}, s.Guessed...),
		AttemptsLeft:   s.AttemptsLeft,
		MaxAttempts:    s.AttemptsMax,
		GameOver:       s.TurnOver,
		Won:            s.TurnWon,
		PlayersReady:   ready,
		CurrentRound:   s.Round,
		CurrentTurn:    s.TurnIndex,
		CurrentSetter:  s.Setter,
		Scores:         s.Scores,
		TurnLog:        append([]TurnRecord{}, s.TurnLog...),
		MatchOver:      s.MatchOver,
		Winner:         s.Winner,
	}
	if s.TurnOver {
		word := s.Secret
		ps.Word = &word
	}
	return ps
}

func (s *State) displayWord() string {
	if s.Secret == "" {
		return ""
	}
	parts := make([]string, 0, len(s.Secret))
	for _, r := range s.Secret {
		if s.isGuessed(string(r)) {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

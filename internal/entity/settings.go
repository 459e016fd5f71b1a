package entity

import "strings"

const (
	MinWinStreak  = 3
	MinDifficulty = 1
)

type FirstMove string

const (
	FirstMoveHuman FirstMove = "human"
	FirstMoveAI    FirstMove = "ai"
)

// ParseFirstMove falls back to FirstMoveHuman for anything it does not know.
func ParseFirstMove(s string) FirstMove {
	if strings.EqualFold(strings.TrimSpace(s), string(FirstMoveAI)) {
		return FirstMoveAI
	}
	return FirstMoveHuman
}

type Rules struct {
	WinStreak  int `json:"win_streak"`
	Difficulty int `json:"difficulty"`
}

type Settings struct {
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Rules     Rules     `json:"rules"`
	FirstMove FirstMove `json:"first_move"`
}

// Clamped returns a copy with every field pulled into its legal range.
func (s Settings) Clamped() Settings {
	s.Rows = ClampDimension(s.Rows)
	s.Cols = ClampDimension(s.Cols)
	s.Rules.WinStreak = max(s.Rules.WinStreak, MinWinStreak)
	s.Rules.Difficulty = max(s.Rules.Difficulty, MinDifficulty)
	if s.FirstMove != FirstMoveAI {
		s.FirstMove = FirstMoveHuman
	}
	return s
}

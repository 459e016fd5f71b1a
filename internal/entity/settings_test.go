package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettings_Clamped(t *testing.T) {
	// Given: settings outside every legal range
	settings := Settings{
		Rows:      2,
		Cols:      99,
		Rules:     Rules{WinStreak: 1, Difficulty: 0},
		FirstMove: "robot",
	}

	// When: clamping
	clamped := settings.Clamped()

	// Then: every field is legal
	assert.Equal(t, Settings{
		Rows:      MinDimension,
		Cols:      MaxDimension,
		Rules:     Rules{WinStreak: MinWinStreak, Difficulty: MinDifficulty},
		FirstMove: FirstMoveHuman,
	}, clamped)
}

func TestParseFirstMove(t *testing.T) {
	assert.Equal(t, FirstMoveAI, ParseFirstMove("ai"))
	assert.Equal(t, FirstMoveAI, ParseFirstMove(" AI "))
	assert.Equal(t, FirstMoveHuman, ParseFirstMove("human"))
	assert.Equal(t, FirstMoveHuman, ParseFirstMove(""))
}

func TestCell_Mark(t *testing.T) {
	assert.Equal(t, "X", CellHuman.Mark())
	assert.Equal(t, "O", CellAI.Mark())
	assert.Equal(t, ".", CellEmpty.Mark())
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/distle/internal/editdist"
)

func TestNewDefaults(t *testing.T) {
	g := New("  COT ", 0)
	assert.Equal(t, "cot", g.Secret)
	assert.Equal(t, DefaultMaxGuesses, g.MaxGuesses)
	assert.Len(t, g.ID, 16)
	assert.Equal(t, StatePlaying, g.State())
	assert.Equal(t, DefaultMaxGuesses, g.GuessesLeft())

	r := New("", 3)
	assert.NotEmpty(t, r.Secret)
	assert.NotEqual(t, g.ID, r.ID)
}

func TestApplyGuessFeedback(t *testing.T) {
	g := New("cot", 5)

	fb, err := g.ApplyGuess("cat")
	require.NoError(t, err)
	assert.Equal(t, 1, fb.Distance)
	assert.Equal(t, editdist.Ops{editdist.OpReplace}, fb.Transforms)
	assert.Equal(t, StatePlaying, fb.State)

	fb, err = g.ApplyGuess("Cot")
	require.NoError(t, err)
	assert.Equal(t, 0, fb.Distance)
	assert.Empty(t, fb.Transforms)
	assert.Equal(t, StateWon, fb.State)
	assert.True(t, g.Won)
	assert.Len(t, g.Turns, 2)
	assert.Equal(t, 0, g.GuessesLeft())

	_, err = g.ApplyGuess("cat")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestApplyGuessValidation(t *testing.T) {
	g := New("cot", 5)

	_, err := g.ApplyGuess("")
	assert.ErrorIs(t, err, ErrInvalidGuess)
	_, err = g.ApplyGuess("c4t")
	assert.ErrorIs(t, err, ErrInvalidGuess)
	_, err = g.ApplyGuess("zzzzqx")
	assert.ErrorIs(t, err, ErrNotInDictionary)
	assert.Empty(t, g.Turns)
}

func TestApplyGuessLoses(t *testing.T) {
	g := New("hack", 2)
	_, err := g.ApplyGuess("back")
	require.NoError(t, err)
	fb, err := g.ApplyGuess("cast")
	require.NoError(t, err)
	assert.Equal(t, StateLost, fb.State)
	assert.True(t, g.Finished)
	assert.False(t, g.Won)
}

// internal/game/engine.go
//
// Core game engine for a single Distle session.
// Responsibilities:
//   - Create new games with a secret word and a guess limit.
//   - Validate and apply guesses (non-empty, alphabetic, in the dictionary).
//   - Score guesses with the edit distance engine: distance plus the canonical
//     transform sequence turning the guess into the secret.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The dictionary is provided by the words package.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/robalobadob/distle/internal/editdist"
	"github.com/robalobadob/distle/internal/words"
)

// DefaultMaxGuesses is used when New is given a non-positive limit.
const DefaultMaxGuesses = 10

var (
	ErrFinished        = errors.New("game finished")
	ErrInvalidGuess    = errors.New("invalid guess")
	ErrNotInDictionary = errors.New("not in word list")
)

// New constructs a new game instance.
// If secret is empty, a random word is chosen from the words package.
func New(secret string, maxGuesses int) *Game {
	if secret == "" {
		secret = words.RandomWord()
	}
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	return &Game{
		ID:         randomID(),
		Secret:     strings.ToLower(strings.TrimSpace(secret)),
		MaxGuesses: maxGuesses,
		Turns:      []Turn{},
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be non-empty lowercase a–z after trimming.
//   - Guess must be present in the dictionary.
//
// State transitions:
//   - Guess equals the secret → Finished = true, Won = true.
//   - Else if the number of guesses reaches MaxGuesses → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (Feedback, error) {
	if g.Finished {
		return Feedback{State: g.State()}, ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if !words.IsAlpha(guess) {
		return Feedback{State: g.State()}, ErrInvalidGuess
	}
	if !words.IsAllowed(guess) {
		return Feedback{State: g.State()}, ErrNotInDictionary
	}

	dist, ops := editdist.Compare(guess, g.Secret)
	g.Turns = append(g.Turns, Turn{Guess: guess, Distance: dist, Transforms: ops})

	if guess == g.Secret {
		g.Finished, g.Won = true, true
	} else if len(g.Turns) >= g.MaxGuesses {
		g.Finished = true
	}
	return Feedback{Distance: dist, Transforms: ops, State: g.State()}, nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// GuessesLeft returns how many guesses remain.
func (g *Game) GuessesLeft() int {
	if n := g.MaxGuesses - len(g.Turns); n > 0 && !g.Finished {
		return n
	}
	return 0
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// internal/game/types.go
//
// Core type definitions for the Distle game engine.
// Defines:
//   - Turn:     one recorded guess with its feedback.
//   - Feedback: what a player learns from a guess.
//   - Game:     state for a single in-progress or finished game.

package game

import "github.com/robalobadob/distle/internal/editdist"

// Game states reported to clients.
const (
	StatePlaying = "playing"
	StateWon     = "won"
	StateLost    = "lost"
)

// Turn is one guess and the feedback it produced.
type Turn struct {
	Guess      string       `json:"guess"`
	Distance   int          `json:"distance"`
	Transforms editdist.Ops `json:"transforms"`
}

// Feedback is returned for every applied guess.
// Transforms turn the guess into the secret, top-down.
type Feedback struct {
	Distance   int          `json:"distance"`
	Transforms editdist.Ops `json:"transforms"`
	State      string       `json:"state"`
}

// Game holds the state of a single Distle game session.
// Fields are exported so stores can serialize it.
type Game struct {
	ID         string `json:"id"`         // Unique game identifier (random hex string).
	Secret     string `json:"secret"`     // The word to find (always lowercase).
	MaxGuesses int    `json:"maxGuesses"` // Guesses allowed before the game is lost.
	Turns      []Turn `json:"turns"`      // Guesses made so far, in order.
	Finished   bool   `json:"finished"`   // True once the game is over (won or lost).
	Won        bool   `json:"won"`        // True if the game was finished with a win.
}

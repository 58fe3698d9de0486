package player

import (
	"context"
	"errors"

	"github.com/robalobadob/distle/internal/game"
)

// Step is one turn of an automated game.
type Step struct {
	game.Turn
	Remaining int `json:"remaining"` // candidates left after the feedback
}

// Transcript is the outcome of Autoplay.
type Transcript struct {
	Secret  string `json:"secret"`
	Opening string `json:"opening"`
	Steps   []Step `json:"steps"`
	State   string `json:"state"`
}

// Autoplay lets p play g to the end using dictionary.
// It stops early, without error, if p runs out of candidates.
func Autoplay(ctx context.Context, g *game.Game, p *Player, dictionary []string) (Transcript, error) {
	p.StartNewGame(dictionary, g.MaxGuesses)
	tr := Transcript{Secret: g.Secret, Opening: p.Opening()}

	for !g.Finished {
		if err := ctx.Err(); err != nil {
			return tr, err
		}
		guess, err := p.MakeGuess()
		if errors.Is(err, ErrNoCandidates) || errors.Is(err, ErrNoGuessesLeft) {
			break
		}
		if err != nil {
			return tr, err
		}
		fb, err := g.ApplyGuess(guess)
		if err != nil {
			return tr, err
		}
		turn := g.Turns[len(g.Turns)-1]
		if fb.State != game.StateWon {
			if err := p.GetFeedback(ctx, guess, fb.Distance, fb.Transforms); err != nil {
				return tr, err
			}
		}
		tr.Steps = append(tr.Steps, Step{Turn: turn, Remaining: len(p.remaining)})
	}
	tr.State = g.State()
	return tr, nil
}

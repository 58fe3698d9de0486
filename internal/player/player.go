// internal/player/player.go
//
// Automated Distle player.
// Responsibilities:
//   - Hold one game session's mutable state: the working dictionary, the guess
//     counter and the opening word.
//   - Pick guesses: a letter-frequency opening word first, then random words
//     from whatever is still consistent with the feedback.
//   - Narrow the working dictionary after each wrong guess using the edit
//     distance engine's transform sequences.
//
// Notes:
//   - A Player is owned by one goroutine; it is not safe for concurrent use.
//   - The working dictionary only ever shrinks within a game.
//   - With a worker pool configured, large working sets are filtered in parallel.

package player

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/distle/internal/editdist"
	"github.com/robalobadob/distle/internal/workerpool"
)

var (
	ErrNoGame               = errors.New("player: no game started")
	ErrNoCandidates         = errors.New("player: no candidate words left")
	ErrNoGuessesLeft        = errors.New("player: no guesses left")
	ErrInconsistentFeedback = errors.New("player: distance does not match transforms")
)

// defaultParallelMin is the working-set size from which a configured pool is used.
const defaultParallelMin = 2048

// Player is an agent playing one Distle game at a time.
type Player struct {
	rng         *rand.Rand
	pool        *workerpool.Pool
	parallelMin int

	started    bool
	maxGuesses int
	guesses    int
	opening    string
	remaining  []string
}

// Option configures a Player.
type Option func(*Player)

// WithSeed makes guesses reproducible.
func WithSeed(seed int64) Option {
	return func(p *Player) { p.rng = rand.New(rand.NewSource(seed)) }
}

// WithPool filters working sets of at least threshold words on pool.
// A non-positive threshold keeps the default.
func WithPool(pool *workerpool.Pool, threshold int) Option {
	return func(p *Player) {
		p.pool = pool
		if threshold > 0 {
			p.parallelMin = threshold
		}
	}
}

// New builds a Player. Without WithSeed the RNG is seeded from the clock.
func New(opts ...Option) *Player {
	p := &Player{parallelMin: defaultParallelMin}
	for _, o := range opts {
		o(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// StartNewGame resets the session with a private, sorted, de-duplicated copy
// of dictionary and chooses the opening word.
func (p *Player) StartNewGame(dictionary []string, maxGuesses int) {
	p.remaining = dedupe(dictionary)
	p.maxGuesses = maxGuesses
	p.guesses = 0
	p.started = true
	p.opening = ""
	if len(p.remaining) > 0 {
		p.opening = openingWord(p.remaining, p.rng)
	}
	log.Debug().Int("words", len(p.remaining)).Str("opening", p.opening).Int("maxGuesses", maxGuesses).Msg("new game")
}

// MakeGuess returns the next guess.
func (p *Player) MakeGuess() (string, error) {
	if !p.started {
		return "", ErrNoGame
	}
	if p.maxGuesses > 0 && p.guesses >= p.maxGuesses {
		return "", ErrNoGuessesLeft
	}
	if len(p.remaining) == 0 {
		return "", ErrNoCandidates
	}
	p.guesses++
	if p.guesses == 1 {
		return p.opening, nil
	}
	return p.remaining[p.rng.Intn(len(p.remaining))], nil
}

// GetFeedback narrows the working dictionary to the words that would have
// produced exactly transforms for guess. An empty result is not an error.
func (p *Player) GetFeedback(ctx context.Context, guess string, distance int, transforms editdist.Ops) error {
	if !p.started {
		return ErrNoGame
	}
	if distance != len(transforms) {
		return fmt.Errorf("%w: distance %d, %d transforms", ErrInconsistentFeedback, distance, len(transforms))
	}

	before := len(p.remaining)
	var next []string
	if p.pool != nil && before >= p.parallelMin {
		var err error
		next, err = FilterParallel(ctx, p.pool, p.remaining, guess, transforms)
		if err != nil {
			return fmt.Errorf("filter %q: %w", guess, err)
		}
	} else {
		next = Filter(p.remaining, guess, transforms)
	}
	p.remaining = next

	log.Debug().Str("guess", guess).Str("transforms", transforms.String()).
		Int("before", before).Int("after", len(next)).Msg("feedback applied")
	return nil
}

// Remaining returns a copy of the working dictionary.
func (p *Player) Remaining() []string { return append([]string(nil), p.remaining...) }

// Guesses returns the number of guesses made this game.
func (p *Player) Guesses() int { return p.guesses }

// Opening returns the opening word chosen for this game.
func (p *Player) Opening() string { return p.opening }

func dedupe(ws []string) []string {
	seen := make(map[string]struct{}, len(ws))
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

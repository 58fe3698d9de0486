// internal/player/filter.go
//
// Candidate filtering: a word stays in the working dictionary only if the
// guess would have produced exactly the observed transform sequence against it.
// Equal sequences imply equal distance, so the distance is not rechecked here.

package player

import (
	"context"
	"sync"

	"github.com/robalobadob/distle/internal/editdist"
	"github.com/robalobadob/distle/internal/workerpool"
)

// Filter returns the words w for which Transforms(guess, w) equals observed,
// in input order. The input slice is not modified.
func Filter(ws []string, guess string, observed editdist.Ops) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		if consistent(guess, w, observed) {
			out = append(out, w)
		}
	}
	return out
}

// consistent skips the table build when the lengths alone rule w out: every
// op changes the length by at most one.
func consistent(guess, w string, observed editdist.Ops) bool {
	diff := len([]rune(w)) - len([]rune(guess))
	if diff < 0 {
		diff = -diff
	}
	if diff > len(observed) {
		return false
	}
	return editdist.Transforms(guess, w).Equal(observed)
}

// FilterParallel is Filter with chunks of ws evaluated on pool.
// The result is identical to Filter, including order.
func FilterParallel(ctx context.Context, pool *workerpool.Pool, ws []string, guess string, observed editdist.Ops) ([]string, error) {
	chunks := pool.Size() * 4
	if chunks > len(ws) {
		chunks = len(ws)
	}
	if chunks <= 1 {
		return Filter(ws, guess, observed), nil
	}
	size := (len(ws) + chunks - 1) / chunks

	parts := make([][]string, chunks)
	var wg sync.WaitGroup
	for c := 0; c < chunks; c++ {
		lo, hi := c*size, (c+1)*size
		if lo >= len(ws) {
			break
		}
		if hi > len(ws) {
			hi = len(ws)
		}
		part := ws[lo:hi]
		wg.Add(1)
		if err := pool.Submit(ctx, func() {
			defer wg.Done()
			parts[c] = Filter(part, guess, observed)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]string, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

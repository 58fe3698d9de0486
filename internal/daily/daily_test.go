package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/distle/internal/db"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2026, 10, 14, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-10-13", DateKey(ts))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	i := WordIndex(day, "salt", 761)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 761)
	assert.Equal(t, i, WordIndex(day.Add(2*time.Hour), "salt", 761), "same day, same index")
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	seen := map[int]bool{}
	for d := 0; d < 30; d++ {
		seen[WordIndex(day.AddDate(0, 0, d), "salt", 761)] = true
	}
	assert.Greater(t, len(seen), 20)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(ctx, conn))

	s := NewStore(conn)
	played, err := s.AlreadyPlayed(ctx, "u1", "2026-10-14")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-14", WordIndex: 3, Guesses: 4, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u2", Date: "2026-10-14", WordIndex: 3, Guesses: 2, ElapsedMs: 20000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u3", Date: "2026-10-14", WordIndex: 3, Guesses: 4, ElapsedMs: 5000}))
	// Duplicate is ignored.
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-14", WordIndex: 3, Guesses: 1, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2026-10-14")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, "2026-10-14", 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"u2", "u3", "u1"}, []string{top[0].UserID, top[1].UserID, top[2].UserID})
	assert.Equal(t, []int{1, 2, 3}, []int{top[0].Rank, top[1].Rank, top[2].Rank})

	n, err := s.Solvers(ctx, "2026-10-14")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	none, err := s.Leaderboard(ctx, "2000-01-01", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWordIndexDependsOnSalt(t *testing.T) {
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	differ := 0
	for d := 0; d < 30; d++ {
		ts := day.AddDate(0, 0, d)
		if WordIndex(ts, "a", 761) != WordIndex(ts, "b", 761) {
			differ++
		}
	}
	assert.Greater(t, differ, 20)
}

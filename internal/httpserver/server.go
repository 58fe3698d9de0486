// internal/httpserver/server.go
//
// HTTP server wiring for the Distle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Edit distance oracle + agent endpoints: mounted under /edit and /agent.
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token is present;
//     routes can still run for guests.
//   - Game history rows in SQLite are best effort; the session store is the
//     source of truth for in-progress games.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/distle/internal/config"
	"github.com/robalobadob/distle/internal/editdist"
	"github.com/robalobadob/distle/internal/game"
	"github.com/robalobadob/distle/internal/store"
	"github.com/robalobadob/distle/internal/words"
	"github.com/robalobadob/distle/internal/workerpool"
)

// maxWordLen bounds oracle inputs; table work grows with the product of lengths.
const maxWordLen = 256

// Server bundles router, game store, DB handle and the filter worker pool.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	pool  *workerpool.Pool
	cfg   config.Config
	games *keyedLock // serializes guesses per game id
	daily *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
// pool may be nil, in which case filtering runs on the request goroutine.
func New(st store.Store, db *sql.DB, pool *workerpool.Pool, cfg config.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, pool: pool, cfg: cfg, games: newKeyedLock()}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"distle-go","endpoints":["/health","POST /edit/distance","POST /edit/filter","POST /agent/play","POST /game/new","POST /game/guess","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": words.Stats()})
	})

	// Oracle + agent: public, stateless
	s.mountEdit(s.r)

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)

	// Daily Challenge: OPTIONAL AUTH (guests can play; progress persisted on win)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Secret     string `json:"secret"`     // optional fixed secret (testing)
	MaxGuesses int    `json:"maxGuesses"` // optional; server default otherwise
}
type newGameRes struct {
	GameID     string `json:"gameId"`
	MaxGuesses int    `json:"maxGuesses"`
	Length     int    `json:"length"`
}

// handleNewGame creates a new game session and persists a DB "owner" row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	req.Secret = strings.ToLower(strings.TrimSpace(req.Secret))
	if req.Secret != "" && !words.IsAllowed(req.Secret) {
		writeError(w, http.StatusBadRequest, "invalid_secret")
		return
	}
	maxGuesses := req.MaxGuesses
	if maxGuesses <= 0 {
		maxGuesses = s.cfg.MaxGuesses
	}

	g := game.New(req.Secret, maxGuesses)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	// Persist owner row; the secret is never written to the DB.
	now := time.Now().UTC().Format(time.RFC3339)
	if me := userFrom(r); me != nil {
		_, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, user_id, word_length, max_guesses, started_at, status, guesses)
		                     VALUES (?,?,?,?,?,?,0)`, g.ID, me.ID, len(g.Secret), g.MaxGuesses, now, game.StatePlaying)
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert user game row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		_, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, anonymous_id, word_length, max_guesses, started_at, status, guesses)
		                     VALUES (?,?,?,?,?,?,0)`, g.ID, anon, len(g.Secret), g.MaxGuesses, now, game.StatePlaying)
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert anon game row")
		}
	}

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, MaxGuesses: g.MaxGuesses, Length: len(g.Secret)})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Distance    int          `json:"distance"`
	Transforms  editdist.Ops `json:"transforms"`
	State       string       `json:"state"` // "playing" | "won" | "lost"
	GuessesLeft int          `json:"guessesLeft"`
	Secret      string       `json:"secret,omitempty"` // revealed once finished
}

// handleGuess applies a guess to a stored game, persists progress,
// and (if finished) updates user stats in a best-effort transaction.
// Load, apply and save run under the game's lock.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID == "" {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	unlock := s.games.Lock(req.GameID)
	defer unlock()

	g, err := s.store.Get(r.Context(), req.GameID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", req.GameID).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	fb, err := g.ApplyGuess(req.Guess)
	switch {
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	s.recordGuess(w, r, g, fb.State)

	res := guessRes{Distance: fb.Distance, Transforms: fb.Transforms, State: fb.State, GuessesLeft: g.GuessesLeft()}
	if g.Finished {
		res.Secret = g.Secret
	}
	_ = json.NewEncoder(w).Encode(res)
}

// recordGuess persists counters/history (best effort, non-fatal if it fails).
func (s *Server) recordGuess(w http.ResponseWriter, r *http.Request, g *game.Game, state string) {
	me := userFrom(r)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin history tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerClause, g.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}

	if state == game.StateWon || state == game.StateLost {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			state, time.Now().UTC().Format(time.RFC3339), g.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, state == game.StateWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit history tx")
	}
}

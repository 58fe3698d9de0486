// internal/httpserver/routes_daily.go
//
// Daily Distle: one shared secret per UTC day, picked from the dictionary by
// HMAC(date, salt).
//   - POST /daily/new         → open (or resume) today's game for the caller
//   - POST /daily/guess       → score a guess; wins are written to daily_results
//   - GET  /daily/leaderboard → ranked wins for today or ?date=YYYY-MM-DD
//
// A caller (user id or anonymous cookie) gets one result per day. In-flight
// games live in memory only; a restart forgets unfinished dailies.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/distle/internal/daily"
	"github.com/robalobadob/distle/internal/editdist"
	"github.com/robalobadob/distle/internal/game"
	"github.com/robalobadob/distle/internal/words"
)

// dailyServer carries the /daily handlers' state.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions and their games
}

// dailySession is one caller's game for one date.
type dailySession struct {
	Game      *game.Game
	UserID    string
	Date      string
	WordIndex int
	Start     time.Time
}

// mountDaily registers /daily on r.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key, deterministic word index, and secret.
func (d *dailyServer) dateKeyNow() (date string, idx int, secret string) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	dict := words.Default()
	if dict.Len() == 0 {
		return date, 0, ""
	}
	idx = daily.WordIndex(now, d.salt, dict.Len())
	return date, idx, dict.At(idx)
}

// userID returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// ---------------------------------- new -------------------------------------

type dailyNewRes struct {
	GameID     string `json:"gameId"`
	Date       string `json:"date"`
	Played     bool   `json:"played"`
	Length     int    `json:"length"`
	MaxGuesses int    `json:"maxGuesses"`
}

// handleNew reports Played=true when the caller already has today's result,
// otherwise returns the id of the caller's game for today.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	date, idx, secret := d.dateKeyNow()
	if secret == "" {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("daily already played")
	} else if played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	d.dropStaleLocked(date)
	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{
			Game:      game.New(secret, d.srv.cfg.MaxGuesses),
			UserID:    uid,
			Date:      date,
			WordIndex: idx,
			Start:     time.Now(),
		}
		d.sessions[key] = sess
	}
	res := dailyNewRes{GameID: sess.Game.ID, Date: date, Length: len(sess.Game.Secret), MaxGuesses: sess.Game.MaxGuesses}
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(res)
}

// dropStaleLocked forgets sessions from dates other than today.
// Callers hold d.mu.
func (d *dailyServer) dropStaleLocked(today string) {
	for k, sess := range d.sessions {
		if sess.Date != today {
			delete(d.sessions, k)
		}
	}
}

// --------------------------------- guess ------------------------------------

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

type dailyGuessRes struct {
	Distance   int          `json:"distance"`
	Transforms editdist.Ops `json:"transforms"`
	State      string       `json:"state"` // in_progress | won | lost | locked
	Guesses    int          `json:"guesses"`
}

// handleGuess scores a guess against today's secret. Guesses after the game
// ended answer "locked" rather than an error.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)

	var req dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID == "" || req.Word == "" {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}

	date, _, _ := d.dateKeyNow()
	d.mu.Lock()
	sess, ok := d.sessions[uid+"|"+date]
	if !ok || sess.Game.ID != req.GameID {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	fb, err := sess.Game.ApplyGuess(req.Word)
	guesses := len(sess.Game.Turns)
	d.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrFinished):
		_ = json.NewEncoder(w).Encode(dailyGuessRes{Transforms: editdist.Ops{}, State: "locked", Guesses: guesses})
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := fb.State
	switch state {
	case game.StateWon:
		res := daily.Result{
			UserID:    uid,
			Date:      date,
			WordIndex: sess.WordIndex,
			Guesses:   guesses,
			ElapsedMs: int(time.Since(sess.Start).Milliseconds()),
		}
		if err := d.store.InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
		log.Info().Str("date", date).Int("guesses", guesses).Msg("daily solved")
	case game.StatePlaying:
		state = "in_progress"
	}
	_ = json.NewEncoder(w).Encode(dailyGuessRes{Distance: fb.Distance, Transforms: fb.Transforms, State: state, Guesses: guesses})
}

// ------------------------------ leaderboard ---------------------------------

type leaderboardRes struct {
	Date    string        `json:"date"`
	Solvers int           `json:"solvers"`
	Top     []daily.LBRow `json:"top"`
}

func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.dateKeyNow()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, daily.DefaultLeaderboardLimit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	n, err := d.store.Solvers(r.Context(), date)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Msg("daily solvers")
	}
	_ = json.NewEncoder(w).Encode(leaderboardRes{Date: date, Solvers: n, Top: rows})
}

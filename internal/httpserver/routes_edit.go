// internal/httpserver/routes_edit.go
//
// Stateless routes exposing the edit distance engine and the guessing agent:
//   - POST /edit/distance → distance + canonical transforms for a pair
//   - POST /edit/filter   → candidates consistent with one round of feedback
//   - POST /agent/play    → let the agent play a whole game and return the transcript

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/distle/internal/editdist"
	"github.com/robalobadob/distle/internal/game"
	"github.com/robalobadob/distle/internal/player"
	"github.com/robalobadob/distle/internal/words"
)

const (
	maxFilterWords = 100_000 // caller-supplied candidates per /edit/filter call
	maxFilterBody  = 4 << 20 // bytes
)

func (s *Server) mountEdit(r chi.Router) {
	r.Post("/edit/distance", s.handleDistance)
	r.Post("/edit/filter", s.handleFilter)
	r.Post("/agent/play", s.handleAgentPlay)
}

type distanceReq struct {
	A string `json:"a"`
	B string `json:"b"`
}
type distanceRes struct {
	Distance   int          `json:"distance"`
	Transforms editdist.Ops `json:"transforms"`
}

// handleDistance reports how to turn a into b.
func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	var req distanceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len([]rune(req.A)) > maxWordLen || len([]rune(req.B)) > maxWordLen {
		writeError(w, http.StatusBadRequest, "too_long")
		return
	}
	d, ops := editdist.Compare(req.A, req.B)
	_ = json.NewEncoder(w).Encode(distanceRes{Distance: d, Transforms: ops})
}

type filterReq struct {
	Words      []string     `json:"words"` // optional; defaults to the dictionary
	Guess      string       `json:"guess"`
	Distance   int          `json:"distance"`
	Transforms editdist.Ops `json:"transforms"`
}
type filterRes struct {
	Remaining []string `json:"remaining"`
	Count     int      `json:"count"`
}

// handleFilter narrows a candidate list by one (guess, distance, transforms) signature.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	r.Body = http.MaxBytesReader(w, r.Body, maxFilterBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req.Guess = strings.ToLower(strings.TrimSpace(req.Guess))
	if req.Guess == "" || len([]rune(req.Guess)) > maxWordLen {
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	}
	for _, op := range req.Transforms {
		if !op.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_transform")
			return
		}
	}
	if req.Distance != len(req.Transforms) {
		writeError(w, http.StatusBadRequest, "inconsistent_feedback")
		return
	}
	ws := req.Words
	if ws == nil {
		ws = words.All()
	}
	if len(ws) > maxFilterWords {
		writeError(w, http.StatusBadRequest, "too_many_words")
		return
	}
	for _, cand := range req.Words {
		if len([]rune(cand)) > maxWordLen {
			writeError(w, http.StatusBadRequest, "too_long")
			return
		}
	}

	var out []string
	if s.pool != nil {
		var err error
		out, err = player.FilterParallel(r.Context(), s.pool, ws, req.Guess, req.Transforms)
		if err != nil {
			log.Warn().Err(err).Msg("parallel filter")
			writeError(w, http.StatusServiceUnavailable, "filter_failed")
			return
		}
	} else {
		out = player.Filter(ws, req.Guess, req.Transforms)
	}
	_ = json.NewEncoder(w).Encode(filterRes{Remaining: out, Count: len(out)})
}

type agentPlayReq struct {
	Secret     string `json:"secret"`     // optional; random dictionary word otherwise
	MaxGuesses int    `json:"maxGuesses"` // optional; server default otherwise
	Seed       *int64 `json:"seed"`       // optional; makes the agent reproducible
}

// handleAgentPlay runs the agent against a fresh game and returns every turn.
func (s *Server) handleAgentPlay(w http.ResponseWriter, r *http.Request) {
	var req agentPlayReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.Secret = strings.ToLower(strings.TrimSpace(req.Secret))
	if req.Secret != "" && !words.IsAllowed(req.Secret) {
		writeError(w, http.StatusBadRequest, "not in word list")
		return
	}
	maxGuesses := req.MaxGuesses
	if maxGuesses <= 0 {
		maxGuesses = s.cfg.MaxGuesses
	}

	var opts []player.Option
	if s.pool != nil {
		opts = append(opts, player.WithPool(s.pool, 0))
	}
	if req.Seed != nil {
		opts = append(opts, player.WithSeed(*req.Seed))
	}
	g := game.New(req.Secret, maxGuesses)
	tr, err := player.Autoplay(r.Context(), g, player.New(opts...), words.All())
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("agent play")
		writeError(w, http.StatusInternalServerError, "agent_failed")
		return
	}
	log.Info().Str("gameId", g.ID).Str("state", tr.State).Int("turns", len(tr.Steps)).Msg("agent game finished")
	_ = json.NewEncoder(w).Encode(tr)
}

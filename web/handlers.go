package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/unrolled/render"

	"github.com/eldersantoss/palpiteiros/controller"
	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/model"
)

// guesserHeader carries the authenticated user id, filled in by the identity
// proxy in front of the service.
const guesserHeader = "X-Guesser"

func rootHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"service": "palpiteiros"})
	}
}

func registerGuesserHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"user_id"`
			Name   string `json:"name"`
			Email  string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		if body.UserID == "" || body.Name == "" {
			renderError(render, w, http.StatusBadRequest, "user_id and name are required")
			return
		}

		g, err := ctrl.RegisterGuesser(r.Context(), body.UserID, body.Name, body.Email)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, g)
	}
}

func listPoolsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}

		pools, err := ctrl.ListPools(r.Context(), g.ID)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, pools)
	}
}

func createPoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}

		var body struct {
			Name           string  `json:"name"`
			Private        *bool   `json:"private"`
			CompetitionIDs []int32 `json:"competition_ids"`
			TeamIDs        []int32 `json:"team_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		if body.Name == "" {
			renderError(render, w, http.StatusBadRequest, "pool name must not be empty")
			return
		}
		private := true
		if body.Private != nil {
			private = *body.Private
		}

		pool, err := ctrl.CreatePool(r.Context(), body.Name, g.ID, private, body.CompetitionIDs, body.TeamIDs)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusCreated, pool)
	}
}

func createPublicPoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}

		var body struct {
			CompetitionID int32 `json:"competition_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		pool, err := ctrl.CreatePublicPool(r.Context(), body.CompetitionID, g.ID)
		if err != nil {
			if errors.Is(err, db.ErrCompetitionNotFound) {
				renderError(render, w, http.StatusNotFound, err.Error())
			} else {
				renderError(render, w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		render.JSON(w, http.StatusCreated, pool)
	}
}

func joinPoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}

		token, err := uuid.Parse(chi.URLParam(r, "token"))
		if err != nil {
			renderError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing pool token: %v", err))
			return
		}

		pool, err := ctrl.JoinPool(r.Context(), token, g.ID)
		if err != nil {
			if errors.Is(err, db.ErrPoolNotFound) {
				renderError(render, w, http.StatusNotFound, err.Error())
			} else {
				renderError(render, w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		render.JSON(w, http.StatusOK, pool)
	}
}

func getPoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}
		pool, ok := memberPool(ctrl, render, w, r, g)
		if !ok {
			return
		}
		render.JSON(w, http.StatusOK, pool)
	}
}

func openMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}
		pool, ok := memberPool(ctrl, render, w, r, g)
		if !ok {
			return
		}

		if r.URL.Query().Get("pending") == "true" {
			matches, err := ctrl.PendingMatches(r.Context(), pool, g.ID)
			if err != nil {
				renderError(render, w, http.StatusInternalServerError, err.Error())
				return
			}
			render.JSON(w, http.StatusOK, matches)
			return
		}

		matches, err := ctrl.OpenMatches(r.Context(), pool, g.ID)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func submitGuessesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}
		pool, ok := memberPool(ctrl, render, w, r, g)
		if !ok {
			return
		}

		var body struct {
			Guesses []model.GuessInput `json:"guesses"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		if len(body.Guesses) == 0 {
			renderError(render, w, http.StatusBadRequest, "no guesses submitted")
			return
		}

		all := r.URL.Query().Get("all") == "true"
		results, err := ctrl.SubmitGuesses(r.Context(), pool, g.ID, body.Guesses, all)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, results)
	}
}

func rankingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}
		pool, ok := memberPool(ctrl, render, w, r, g)
		if !ok {
			return
		}

		year, err := queryInt(r, "year")
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		month, err := queryInt(r, "month")
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		week, err := queryInt(r, "week")
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		entries, err := ctrl.GetLeaderboard(r.Context(), pool, year, month, week)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, entries)
	}
}

func periodOptionsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := queryInt(r, "year")
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		month, err := queryInt(r, "month")
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		options, err := ctrl.PeriodOptions(r.Context(), year, month)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, options)
	}
}

func removeGuesserHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := authGuesser(ctrl, render, w, r)
		if !ok {
			return
		}
		pool, ok := memberPool(ctrl, render, w, r, g)
		if !ok {
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "guesserID"))
		if err != nil {
			renderError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing guesser id: %v", err))
			return
		}

		if err := ctrl.RemoveGuesser(r.Context(), pool, int32(id), g.ID); err != nil {
			switch {
			case errors.Is(err, controller.ErrNotPoolOwner):
				renderError(render, w, http.StatusForbidden, err.Error())
			default:
				renderError(render, w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func registerCompetitionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			LeagueID int32 `json:"league_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		if body.LeagueID <= 0 {
			renderError(render, w, http.StatusBadRequest, "league_id is required")
			return
		}

		comp, err := ctrl.RegisterCompetition(r.Context(), body.LeagueID)
		if err != nil {
			if errors.Is(err, controller.ErrLeagueNotFound) {
				renderError(render, w, http.StatusNotFound, err.Error())
			} else {
				renderError(render, w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		render.JSON(w, http.StatusCreated, comp)
	}
}

func recordResultHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "matchID"))
		if err != nil {
			renderError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing match id: %v", err))
			return
		}

		var body struct {
			HomeGoals int32  `json:"home_goals"`
			AwayGoals int32  `json:"away_goals"`
			Status    string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		if body.HomeGoals < 0 || body.AwayGoals < 0 {
			renderError(render, w, http.StatusBadRequest, "goals must not be negative")
			return
		}

		status := model.ParseMatchStatus(body.Status)
		err = ctrl.RecordMatchResult(r.Context(), int32(id), body.HomeGoals, body.AwayGoals, status)
		if err != nil {
			if errors.Is(err, db.ErrMatchNotFound) {
				renderError(render, w, http.StatusNotFound, err.Error())
			} else {
				renderError(render, w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		render.Text(w, http.StatusOK, "match result recorded")
	}
}

func syncMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.SyncMatches(r.Context(), 1, 7); err != nil {
			render.Text(w, http.StatusInternalServerError, fmt.Sprintf("error syncing matches: %v", err))
			return
		}
		render.Text(w, http.StatusOK, "match sync completed successfully")
	}
}

func syncTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "competitionID"))
		if err != nil {
			renderError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing competition id: %v", err))
			return
		}

		if err := ctrl.SyncCompetitionTeams(r.Context(), int32(id)); err != nil {
			render.Text(w, http.StatusInternalServerError, fmt.Sprintf("error syncing teams: %v", err))
			return
		}
		render.Text(w, http.StatusOK, "team sync completed successfully")
	}
}

func rebuildRankingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.RebuildRankingCache(r.Context()); err != nil {
			render.Text(w, http.StatusInternalServerError, fmt.Sprintf("error rebuilding ranking cache: %v", err))
			return
		}
		render.Text(w, http.StatusOK, "ranking cache rebuilt successfully")
	}
}

func notifyHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.NotifyMatchActivity(r.Context()); err != nil {
			render.Text(w, http.StatusInternalServerError, fmt.Sprintf("error notifying guessers: %v", err))
			return
		}
		render.Text(w, http.StatusOK, "notifications sent successfully")
	}
}

// authGuesser resolves the guesser named by the identity header. It writes
// the error response itself and reports whether the handler may continue.
func authGuesser(ctrl controller.C, render *render.Render, w http.ResponseWriter, r *http.Request) (*model.Guesser, bool) {
	userID := r.Header.Get(guesserHeader)
	if userID == "" {
		renderError(render, w, http.StatusUnauthorized, "missing identity header")
		return nil, false
	}

	g, err := ctrl.GetGuesserByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrGuesserNotFound) {
			renderError(render, w, http.StatusUnauthorized, "unknown guesser")
		} else {
			renderError(render, w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return g, true
}

// memberPool loads the pool from the slug route param, gated on the guesser's
// membership.
func memberPool(ctrl controller.C, render *render.Render, w http.ResponseWriter, r *http.Request, g *model.Guesser) (*model.GuessPool, bool) {
	slug := chi.URLParam(r, "slug")
	pool, err := ctrl.GetPoolForGuesser(r.Context(), slug, g.ID)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrPoolNotFound):
			renderError(render, w, http.StatusNotFound, err.Error())
		case errors.Is(err, controller.ErrNotPoolMember):
			renderError(render, w, http.StatusForbidden, err.Error())
		default:
			renderError(render, w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return pool, true
}

func renderError(render *render.Render, w http.ResponseWriter, status int, msg string) {
	render.JSON(w, status, map[string]string{"error": msg})
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", name, err)
	}
	return n, nil
}

package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/eldersantoss/palpiteiros/controller"
)

func getRouter(ctrl controller.C, render *render.Render, adminCreds map[string]string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(render))
	r.Post("/guessers", registerGuesserHandler(ctrl, render))

	r.Route("/pools", func(r chi.Router) {
		r.Get("/", listPoolsHandler(ctrl, render))
		r.Post("/", createPoolHandler(ctrl, render))
		r.Post("/public", createPublicPoolHandler(ctrl, render))
		r.Post("/join/{token}", joinPoolHandler(ctrl, render))

		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", getPoolHandler(ctrl, render))
			// ?pending=true narrows the list down to the matches the guesser
			// has not guessed yet.
			r.Get("/matches", openMatchesHandler(ctrl, render))
			// ?all=true replicates the guesses to every shared pool.
			r.Post("/guesses", submitGuessesHandler(ctrl, render))
			r.Get("/ranking", rankingHandler(ctrl, render))
			r.Delete("/guessers/{guesserID:\\d+}", removeGuesserHandler(ctrl, render))
		})
	})

	r.Get("/ranking/periods", periodOptionsHandler(ctrl, render))

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("palpiteiros", adminCreds))
		r.Use(middleware.Timeout(30 * time.Second)) // Set a longer timeout for /admin actions

		r.Post("/competitions", registerCompetitionHandler(ctrl, render))
		r.Post("/matches/{matchID:\\d+}/result", recordResultHandler(ctrl, render))
		r.Post("/sync/matches", syncMatchesHandler(ctrl, render))
		r.Post("/sync/teams/{competitionID:\\d+}", syncTeamsHandler(ctrl, render))
		r.Post("/cache/rankings", rebuildRankingsHandler(ctrl, render))
		r.Post("/notify", notifyHandler(ctrl, render))
	})

	return r
}

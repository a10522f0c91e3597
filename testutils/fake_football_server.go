package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed footballdata
var footballdata embed.FS

type FakeFootballServer struct {
	s *httptest.Server
}

func NewFakeFootballServer() *FakeFootballServer {
	r := chi.NewRouter()
	r.Get("/leagues", leaguesHandler)
	r.Get("/teams", teamsHandler)
	r.Get("/fixtures", fixturesHandler)

	return &FakeFootballServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeFootballServer) Close() {
	f.s.Close()
}

func (f *FakeFootballServer) URL() string {
	return f.s.URL
}

func leaguesHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "leagues.json")
}

func teamsHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "teams.json")
}

func fixturesHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "fixtures.json")
}

func serveFile(w http.ResponseWriter, name string) {
	data, err := footballdata.ReadFile(fmt.Sprintf("footballdata/%s", name))
	if err != nil {
		log.Printf("error reading embedded file %s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

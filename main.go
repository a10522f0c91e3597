package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"github.com/eldersantoss/palpiteiros/cache"
	"github.com/eldersantoss/palpiteiros/controller"
	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/footballdata"
	"github.com/eldersantoss/palpiteiros/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminUser == "" || adminPass == "" {
		log.Fatalf("ADMIN_USER and ADMIN_PASSWORD must be set")
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	footballClient, err := footballdata.New(os.Getenv("FOOTBALL_API_KEY"))
	if err != nil {
		log.Fatalf("error creating football data client: %v", err)
	}

	// Without a redis address rankings are simply computed on every request.
	rankingCache := cache.NewNop()
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rankingCache, err = cache.New(context.Background(), redisAddr)
		if err != nil {
			log.Fatalf("cannot connect to redis: %v", err)
		}
	}

	ctrl, err := controller.New(clock, footballClient, db, rankingCache, controller.NewLogNotifier())
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl, map[string]string{adminUser: adminPass})
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that pulls fixtures from the football data feed every hour.
	wg.Add(1)
	go ctrl.RunPeriodicMatchUpdates(time.Hour, shutdown, wg)

	// Setup a job that rebuilds the cached pool rankings.
	wg.Add(1)
	go ctrl.RunPeriodicRankingRebuild(30*time.Minute, shutdown, wg)

	// Setup a job that notifies guessers about new and updated matches.
	wg.Add(1)
	go ctrl.RunPeriodicNotifications(6*time.Hour, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}

package controller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/eldersantoss/palpiteiros/model"
)

// Notifier delivers match-activity notices to guessers. The log
// implementation stands in where no mail transport is configured.
type Notifier interface {
	NotifyMatchActivity(ctx context.Context, guesser *model.Guesser, newMatches, updatedMatches []model.GuessPool) error
}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

type logNotifier struct{}

func (logNotifier) NotifyMatchActivity(ctx context.Context, guesser *model.Guesser, newMatches, updatedMatches []model.GuessPool) error {
	log.Printf("notifying %s: %d pools with new matches, %d pools with updated matches",
		guesser.Name, len(newMatches), len(updatedMatches))
	return nil
}

func (c *controller) NotifyMatchActivity(ctx context.Context) error {
	guessers, err := c.db.ListNotifiableGuessers(ctx)
	if err != nil {
		return err
	}

	flagged := make(map[model.PoolFlag]map[int32]bool)
	for i := range guessers {
		guesser := &guessers[i]

		newMatches, err := c.db.PoolsWithFlagForGuesser(ctx, model.FlagNewMatches, guesser.ID)
		if err != nil {
			return err
		}
		updatedMatches, err := c.db.PoolsWithFlagForGuesser(ctx, model.FlagUpdatedMatches, guesser.ID)
		if err != nil {
			return err
		}
		if len(newMatches) == 0 && len(updatedMatches) == 0 {
			continue
		}

		if err := c.notifier.NotifyMatchActivity(ctx, guesser, newMatches, updatedMatches); err != nil {
			// A failed delivery should not starve the other guessers, and
			// leaving the flags set retries it next round.
			log.Printf("error notifying guesser %s: %v", guesser.UserID, err)
			continue
		}

		rememberFlagged(flagged, model.FlagNewMatches, newMatches)
		rememberFlagged(flagged, model.FlagUpdatedMatches, updatedMatches)
	}

	for flag, poolIDs := range flagged {
		ids := make([]int32, 0, len(poolIDs))
		for id := range poolIDs {
			ids = append(ids, id)
		}
		if err := c.db.SetPoolFlag(ctx, flag, ids, false); err != nil {
			return err
		}
	}
	return nil
}

func rememberFlagged(flagged map[model.PoolFlag]map[int32]bool, flag model.PoolFlag, pools []model.GuessPool) {
	if len(pools) == 0 {
		return
	}
	if flagged[flag] == nil {
		flagged[flag] = make(map[int32]bool)
	}
	for _, p := range pools {
		flagged[flag][p.ID] = true
	}
}

func (c *controller) RunPeriodicNotifications(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := c.NotifyMatchActivity(ctx); err != nil {
				log.Printf("%v", err)
			}
		}
	}
}

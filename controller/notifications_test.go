package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/eldersantoss/palpiteiros/model"
)

// spyNotifier records every delivery so tests can assert who was notified
// about which pools.
type spyNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
}

type notifierCall struct {
	guesserID      int32
	newMatches     []model.GuessPool
	updatedMatches []model.GuessPool
}

func (s *spyNotifier) NotifyMatchActivity(ctx context.Context, guesser *model.Guesser, newMatches, updatedMatches []model.GuessPool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, notifierCall{guesser.ID, newMatches, updatedMatches})
	return nil
}

func (s *spyNotifier) callFor(guesserID int32) (notifierCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c.guesserID == guesserID {
			return c, true
		}
	}
	return notifierCall{}, false
}

func TestNotifyMatchActivity(t *testing.T) {
	ctx := context.Background()
	spy := &spyNotifier{}
	ctrl := newTestController(t, nil, spy)

	member := newTestGuesser(t, ctx)
	outsider := newTestGuesser(t, ctx)

	newPool := newTestPool(t, ctx, ctrl, member.ID)
	updatedPool := newTestPool(t, ctx, ctrl, member.ID)

	if err := testDB.DB.SetPoolFlag(ctx, model.FlagNewMatches, []int32{newPool.ID}, true); err != nil {
		t.Fatalf("error flagging pool: %v", err)
	}
	if err := testDB.DB.SetPoolFlag(ctx, model.FlagUpdatedMatches, []int32{updatedPool.ID}, true); err != nil {
		t.Fatalf("error flagging pool: %v", err)
	}

	if err := ctrl.NotifyMatchActivity(ctx); err != nil {
		t.Fatalf("error notifying: %v", err)
	}

	call, notified := spy.callFor(member.ID)
	if !notified {
		t.Fatalf("expected the pool member to be notified")
	}
	if !containsPoolID(call.newMatches, newPool.ID) {
		t.Errorf("expected the new-matches pool in the notice")
	}
	if !containsPoolID(call.updatedMatches, updatedPool.ID) {
		t.Errorf("expected the updated-matches pool in the notice")
	}
	if containsPoolID(call.newMatches, updatedPool.ID) || containsPoolID(call.updatedMatches, newPool.ID) {
		t.Errorf("expected the flags to be reported separately")
	}

	if _, notified := spy.callFor(outsider.ID); notified {
		t.Errorf("expected no notice for a guesser outside the flagged pools")
	}

	// Successful delivery clears the flags, so a second round is quiet.
	for _, flag := range []model.PoolFlag{model.FlagNewMatches, model.FlagUpdatedMatches} {
		pools, err := testDB.DB.PoolsWithFlagForGuesser(ctx, flag, member.ID)
		if err != nil {
			t.Fatalf("error listing flagged pools: %v", err)
		}
		if len(pools) != 0 {
			t.Errorf("expected the %s flag to be cleared, got %d pools", flag, len(pools))
		}
	}
	spy.mu.Lock()
	spy.calls = nil
	spy.mu.Unlock()
	if err := ctrl.NotifyMatchActivity(ctx); err != nil {
		t.Fatalf("error notifying: %v", err)
	}
	if _, notified := spy.callFor(member.ID); notified {
		t.Errorf("expected no repeated notice once the flags are cleared")
	}
}

func TestNotifyMatchActivity_deliveryFailureKeepsFlags(t *testing.T) {
	ctx := context.Background()
	failing := &failingNotifier{}
	ctrl := newTestController(t, nil, failing)

	member := newTestGuesser(t, ctx)
	pool := newTestPool(t, ctx, ctrl, member.ID)

	if err := testDB.DB.SetPoolFlag(ctx, model.FlagNewMatches, []int32{pool.ID}, true); err != nil {
		t.Fatalf("error flagging pool: %v", err)
	}

	if err := ctrl.NotifyMatchActivity(ctx); err != nil {
		t.Fatalf("error notifying: %v", err)
	}

	pools, err := testDB.DB.PoolsWithFlagForGuesser(ctx, model.FlagNewMatches, member.ID)
	if err != nil {
		t.Fatalf("error listing flagged pools: %v", err)
	}
	if !containsPoolID(pools, pool.ID) {
		t.Errorf("expected the flag to survive a failed delivery")
	}

	if err := testDB.DB.SetPoolFlag(ctx, model.FlagNewMatches, []int32{pool.ID}, false); err != nil {
		t.Fatalf("error clearing flag: %v", err)
	}
}

type failingNotifier struct{}

func (failingNotifier) NotifyMatchActivity(ctx context.Context, guesser *model.Guesser, newMatches, updatedMatches []model.GuessPool) error {
	return context.DeadlineExceeded
}

func containsPoolID(pools []model.GuessPool, id int32) bool {
	for _, p := range pools {
		if p.ID == id {
			return true
		}
	}
	return false
}

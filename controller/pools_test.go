package controller

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/testutils"
)

func TestRegisterGuesser(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)

	userID := fmt.Sprintf("register-%d", nextID())
	g, err := ctrl.RegisterGuesser(ctx, userID, "Maria", "maria@example.com")
	if err != nil {
		t.Fatalf("error registering guesser: %v", err)
	}
	if g.ID == 0 {
		t.Fatalf("expected guesser id to be set")
	}
	if !g.ReceiveNotifications {
		t.Errorf("new guessers should receive notifications by default")
	}

	// Registering again updates in place instead of duplicating.
	g2, err := ctrl.RegisterGuesser(ctx, userID, "Maria Silva", "maria@example.com")
	if err != nil {
		t.Fatalf("error re-registering guesser: %v", err)
	}
	if g2.ID != g.ID {
		t.Errorf("expected the same guesser id, got %d and %d", g.ID, g2.ID)
	}
	if g2.Name != "Maria Silva" {
		t.Errorf("expected updated name, got %s", g2.Name)
	}
}

func TestCreatePoolAndJoin(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)

	owner := newTestGuesser(t, ctx)
	joiner := newTestGuesser(t, ctx)

	pool := newTestPool(t, ctx, ctrl, owner.ID)
	if pool.Slug == "" {
		t.Fatalf("expected pool slug to be set")
	}

	// The owner is a member right away, other guessers are not.
	if _, err := ctrl.GetPoolForGuesser(ctx, pool.Slug, owner.ID); err != nil {
		t.Fatalf("owner should see the pool: %v", err)
	}
	if _, err := ctrl.GetPoolForGuesser(ctx, pool.Slug, joiner.ID); !errors.Is(err, ErrNotPoolMember) {
		t.Fatalf("expected ErrNotPoolMember, got %v", err)
	}

	// Joining via the uuid token makes the pool visible.
	joined, err := ctrl.JoinPool(ctx, pool.UUID, joiner.ID)
	if err != nil {
		t.Fatalf("error joining pool: %v", err)
	}
	if joined.ID != pool.ID {
		t.Errorf("expected pool %d, got %d", pool.ID, joined.ID)
	}
	if _, err := ctrl.GetPoolForGuesser(ctx, pool.Slug, joiner.ID); err != nil {
		t.Fatalf("member should see the pool: %v", err)
	}

	pools, err := ctrl.ListPools(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("error listing pools: %v", err)
	}
	found := false
	for _, p := range pools {
		if p.ID == pool.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the joined pool to be listed")
	}
}

func TestCreatePool_emptyName(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)

	owner := newTestGuesser(t, ctx)
	if _, err := ctrl.CreatePool(ctx, "", owner.ID, true, nil, nil); err == nil {
		t.Fatalf("expected an error for an empty pool name")
	}
}

func TestCreatePublicPool(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)

	owner := newTestGuesser(t, ctx)
	pool, err := ctrl.CreatePublicPool(ctx, testutils.Brasileirao.ID, owner.ID)
	if err != nil {
		t.Fatalf("error creating public pool: %v", err)
	}
	if pool.Private {
		t.Errorf("expected a public pool")
	}
	expectedName := fmt.Sprintf("%s %d", testutils.Brasileirao.Name, testutils.Brasileirao.Season)
	if pool.Name != expectedName {
		t.Errorf("expected pool name %q, got %q", expectedName, pool.Name)
	}
}

func TestRemoveGuesser(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)

	owner := newTestGuesser(t, ctx)
	member := newTestGuesser(t, ctx)
	outsider := newTestGuesser(t, ctx)

	pool := newTestPool(t, ctx, ctrl, owner.ID)
	if _, err := ctrl.JoinPool(ctx, pool.UUID, member.ID); err != nil {
		t.Fatalf("error joining pool: %v", err)
	}

	// Someone else cannot remove a member.
	if err := ctrl.RemoveGuesser(ctx, pool, member.ID, outsider.ID); !errors.Is(err, ErrNotPoolOwner) {
		t.Fatalf("expected ErrNotPoolOwner, got %v", err)
	}

	// The owner cannot leave their own pool.
	if err := ctrl.RemoveGuesser(ctx, pool, owner.ID, owner.ID); err == nil {
		t.Fatalf("expected an error removing the owner")
	}

	// The owner can remove a member.
	if err := ctrl.RemoveGuesser(ctx, pool, member.ID, owner.ID); err != nil {
		t.Fatalf("error removing member: %v", err)
	}
	isMember, err := testDB.DB.PoolHasGuesser(ctx, pool.ID, member.ID)
	if err != nil {
		t.Fatalf("error checking membership: %v", err)
	}
	if isMember {
		t.Errorf("expected the member to be gone")
	}

	// A member can leave on their own.
	if _, err := ctrl.JoinPool(ctx, pool.UUID, member.ID); err != nil {
		t.Fatalf("error re-joining pool: %v", err)
	}
	if err := ctrl.RemoveGuesser(ctx, pool, member.ID, member.ID); err != nil {
		t.Fatalf("error leaving pool: %v", err)
	}

	_, err = testDB.DB.GetPoolBySlug(ctx, "no-such-slug")
	if !errors.Is(err, db.ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}

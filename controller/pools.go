package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/model"
)

func (c *controller) RegisterGuesser(ctx context.Context, userID, name, email string) (*model.Guesser, error) {
	g, err := c.db.GetGuesserByUserID(ctx, userID)
	if err != nil && !errors.Is(err, db.ErrGuesserNotFound) {
		return nil, err
	}
	if g == nil {
		g = &model.Guesser{UserID: userID, ReceiveNotifications: true}
	}

	g.Name = name
	g.Email = email
	if err := c.db.SaveGuesser(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (c *controller) GetGuesserByUserID(ctx context.Context, userID string) (*model.Guesser, error) {
	return c.db.GetGuesserByUserID(ctx, userID)
}

func (c *controller) CreatePool(ctx context.Context, name string, ownerID int32, private bool, competitionIDs, teamIDs []int32) (*model.GuessPool, error) {
	if name == "" {
		return nil, errors.New("pool name must not be empty")
	}

	pool := &model.GuessPool{
		UUID:            uuid.New(),
		Name:            name,
		Slug:            model.Slugify(name),
		OwnerID:         ownerID,
		Private:         private,
		LeadMinutes:     model.DefaultLeadMinutes,
		OpenWindowHours: model.DefaultOpenWindowHours,
	}
	if err := c.db.AddPool(ctx, pool); err != nil {
		return nil, err
	}

	if len(competitionIDs) > 0 {
		if err := c.db.SetPoolCompetitions(ctx, pool.ID, competitionIDs); err != nil {
			return nil, err
		}
	}
	if len(teamIDs) > 0 {
		if err := c.db.SetPoolTeams(ctx, pool.ID, teamIDs); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

func (c *controller) CreatePublicPool(ctx context.Context, competitionID, ownerID int32) (*model.GuessPool, error) {
	comp, err := c.db.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s %d", comp.Name, comp.Season)
	return c.CreatePool(ctx, name, ownerID, false, []int32{comp.ID}, nil)
}

func (c *controller) GetPoolForGuesser(ctx context.Context, slug string, guesserID int32) (*model.GuessPool, error) {
	pool, err := c.db.GetPoolBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	isMember, err := c.db.PoolHasGuesser(ctx, pool.ID, guesserID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotPoolMember
	}
	return pool, nil
}

func (c *controller) JoinPool(ctx context.Context, token uuid.UUID, guesserID int32) (*model.GuessPool, error) {
	pool, err := c.db.GetPoolByUUID(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := c.db.AddGuesserToPool(ctx, pool.ID, guesserID); err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *controller) ListPools(ctx context.Context, guesserID int32) ([]model.GuessPool, error) {
	return c.db.ListPoolsForGuesser(ctx, guesserID)
}

func (c *controller) RemoveGuesser(ctx context.Context, pool *model.GuessPool, guesserID, requesterID int32) error {
	if requesterID != pool.OwnerID && requesterID != guesserID {
		return ErrNotPoolOwner
	}
	if guesserID == pool.OwnerID {
		return errors.New("the pool owner cannot leave their own pool")
	}
	return c.db.RemoveGuesserFromPool(ctx, pool.ID, guesserID)
}

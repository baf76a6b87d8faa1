package service

import (
	"context"
	"errors"
	"fmt"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/model"
	"dealflow/internal/pipeline"
	"dealflow/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultMatchStatus = "interested"

type MatchService interface {
	List(ctx context.Context, dealID *uuid.UUID) ([]dto.MatchResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.MatchResponse, error)
	// Create links a party to a deal. A second match for the same pair fails
	// with ErrDuplicateMatch.
	Create(ctx context.Context, req dto.CreateMatchRequest) (dto.MatchResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMatchRequest) (dto.MatchResponse, error)
	// UpdateChecklist replaces the whole checklist with the normalized value
	// of stages. Concurrent writers: last write wins.
	UpdateChecklist(ctx context.Context, id uuid.UUID, stages string) (dto.MatchResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type matchService struct {
	matches repository.MatchRepository
	deals   repository.DealRepository
	parties repository.BuyingPartyRepository
	store   cache.Store
}

func NewMatchService(
	matches repository.MatchRepository,
	deals repository.DealRepository,
	parties repository.BuyingPartyRepository,
	store cache.Store,
) MatchService {
	return &matchService{matches: matches, deals: deals, parties: parties, store: store}
}

func (s *matchService) List(ctx context.Context, dealID *uuid.UUID) ([]dto.MatchResponse, error) {
	list, err := s.matches.List(ctx, dealID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MatchResponse, len(list))
	for i := range list {
		resp[i] = toMatchResponse(&list[i])
	}
	return resp, nil
}

func (s *matchService) Get(ctx context.Context, id uuid.UUID) (dto.MatchResponse, error) {
	return cache.ReadThrough(ctx, s.store, cache.MatchKey(id.String()), func(ctx context.Context) (dto.MatchResponse, error) {
		m, err := s.matches.FindByID(ctx, id)
		if err != nil {
			return dto.MatchResponse{}, notFound(err, "match")
		}
		return toMatchResponse(m), nil
	})
}

func (s *matchService) Create(ctx context.Context, req dto.CreateMatchRequest) (dto.MatchResponse, error) {
	dealID, err := uuid.Parse(req.DealID)
	if err != nil {
		return dto.MatchResponse{}, fmt.Errorf("%w: dealId", ErrInvalidInput)
	}
	partyID, err := uuid.Parse(req.BuyingPartyID)
	if err != nil {
		return dto.MatchResponse{}, fmt.Errorf("%w: buyingPartyId", ErrInvalidInput)
	}

	m := &model.DealBuyerMatch{
		DealID:            dealID,
		BuyingPartyID:     partyID,
		TargetAcquisition: req.TargetAcquisition,
		Budget:            req.Budget,
		Status:            defaultMatchStatus,
		Stage:             string(pipeline.MatchNew),
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.Stage != nil {
		stage, err := pipeline.ParseMatchStage(*req.Stage)
		if err != nil {
			return dto.MatchResponse{}, err
		}
		m.Stage = string(stage)
	}

	if _, err := s.deals.FindByID(ctx, dealID); err != nil {
		return dto.MatchResponse{}, notFound(err, "deal")
	}
	if _, err := s.parties.FindByID(ctx, partyID); err != nil {
		return dto.MatchResponse{}, notFound(err, "buying party")
	}
	if _, err := s.matches.FindPair(ctx, dealID, partyID); err == nil {
		return dto.MatchResponse{}, ErrDuplicateMatch
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.MatchResponse{}, err
	}

	if err := s.matches.Create(ctx, m); err != nil {
		// lost a race with a concurrent create of the same pair
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.MatchResponse{}, ErrDuplicateMatch
		}
		return dto.MatchResponse{}, err
	}
	invalidate(ctx, s.store, cache.CreateMatch, cache.Scope{DealID: dealID.String(), MatchID: m.ID.String()})
	return toMatchResponse(m), nil
}

func (s *matchService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMatchRequest) (dto.MatchResponse, error) {
	m, err := s.matches.FindByID(ctx, id)
	if err != nil {
		return dto.MatchResponse{}, notFound(err, "match")
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.Stage != nil {
		stage, err := pipeline.ParseMatchStage(*req.Stage)
		if err != nil {
			return dto.MatchResponse{}, err
		}
		m.Stage = string(stage)
	}
	if req.TargetAcquisition != nil {
		m.TargetAcquisition = req.TargetAcquisition
	}
	if req.Budget != nil {
		m.Budget = req.Budget
	}

	if err := s.matches.Update(ctx, m); err != nil {
		return dto.MatchResponse{}, err
	}
	invalidate(ctx, s.store, cache.UpdateMatch, cache.Scope{DealID: m.DealID.String(), MatchID: id.String()})
	return toMatchResponse(m), nil
}

func (s *matchService) UpdateChecklist(ctx context.Context, id uuid.UUID, stages string) (dto.MatchResponse, error) {
	checklist := pipeline.ParseChecklist(stages)
	if err := checklist.Validate(); err != nil {
		return dto.MatchResponse{}, err
	}

	m, err := s.matches.FindByID(ctx, id)
	if err != nil {
		return dto.MatchResponse{}, notFound(err, "match")
	}
	if err := s.matches.UpdateStages(ctx, id, checklist.String()); err != nil {
		return dto.MatchResponse{}, notFound(err, "match")
	}
	m.Stages = checklist.String()
	invalidate(ctx, s.store, cache.UpdateChecklist, cache.Scope{DealID: m.DealID.String(), MatchID: id.String()})
	return toMatchResponse(m), nil
}

func (s *matchService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.matches.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "match")
	}
	if err := s.matches.Delete(ctx, id); err != nil {
		return notFound(err, "match")
	}
	invalidate(ctx, s.store, cache.DeleteMatch, cache.Scope{DealID: m.DealID.String(), MatchID: id.String()})
	return nil
}

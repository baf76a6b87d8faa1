package service

import (
	"context"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/model"
	"dealflow/internal/repository"

	"github.com/google/uuid"
)

const defaultPartyStatus = "evaluating"

type BuyingPartyService interface {
	List(ctx context.Context) ([]dto.BuyingPartyResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.BuyingPartyResponse, error)
	Create(ctx context.Context, req dto.CreateBuyingPartyRequest) (dto.BuyingPartyResponse, error)
	// Delete removes the party with its matches and contact links.
	Delete(ctx context.Context, id uuid.UUID) error
}

type buyingPartyService struct {
	parties repository.BuyingPartyRepository
	store   cache.Store
}

func NewBuyingPartyService(parties repository.BuyingPartyRepository, store cache.Store) BuyingPartyService {
	return &buyingPartyService{parties: parties, store: store}
}

func (s *buyingPartyService) List(ctx context.Context) ([]dto.BuyingPartyResponse, error) {
	return cache.ReadThrough(ctx, s.store, cache.BuyingPartiesKey(), func(ctx context.Context) ([]dto.BuyingPartyResponse, error) {
		list, err := s.parties.List(ctx)
		if err != nil {
			return nil, err
		}
		resp := make([]dto.BuyingPartyResponse, len(list))
		for i := range list {
			resp[i] = toBuyingPartyResponse(&list[i])
		}
		return resp, nil
	})
}

func (s *buyingPartyService) Get(ctx context.Context, id uuid.UUID) (dto.BuyingPartyResponse, error) {
	p, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return dto.BuyingPartyResponse{}, notFound(err, "buying party")
	}
	return toBuyingPartyResponse(p), nil
}

func (s *buyingPartyService) Create(ctx context.Context, req dto.CreateBuyingPartyRequest) (dto.BuyingPartyResponse, error) {
	if err := checkIntRange("targetAcquisition", req.TargetAcquisitionMin, req.TargetAcquisitionMax); err != nil {
		return dto.BuyingPartyResponse{}, err
	}
	if err := checkDecimalRange("budget", req.BudgetMin, req.BudgetMax); err != nil {
		return dto.BuyingPartyResponse{}, err
	}

	p := &model.BuyingParty{
		Name:                 req.Name,
		TargetAcquisitionMin: req.TargetAcquisitionMin,
		TargetAcquisitionMax: req.TargetAcquisitionMax,
		BudgetMin:            req.BudgetMin,
		BudgetMax:            req.BudgetMax,
		Timeline:             req.Timeline,
		Status:               req.Status,
		Notes:                req.Notes,
	}
	if p.Status == "" {
		p.Status = defaultPartyStatus
	}
	if err := s.parties.Create(ctx, p); err != nil {
		return dto.BuyingPartyResponse{}, err
	}
	invalidate(ctx, s.store, cache.CreateParty, cache.Scope{})
	return toBuyingPartyResponse(p), nil
}

func (s *buyingPartyService) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.parties.Delete(ctx, id)
	if err != nil {
		return notFound(err, "buying party")
	}
	scope := cache.Scope{EntityID: id.String()}
	for _, m := range removed {
		scope.DealIDs = append(scope.DealIDs, m.DealID.String())
		scope.MatchIDs = append(scope.MatchIDs, m.ID.String())
	}
	invalidate(ctx, s.store, cache.DeleteParty, scope)
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/model"
	"dealflow/internal/repository"

	"github.com/google/uuid"
)

type ActivityService interface {
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]dto.ActivityResponse, error)
	Create(ctx context.Context, req dto.CreateActivityRequest) (dto.ActivityResponse, error)
	// Update applies a partial update. Moving to completed stamps
	// completedAt; moving back to pending clears it.
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateActivityRequest) (dto.ActivityResponse, error)
}

type activityService struct {
	activities repository.ActivityRepository
	store      cache.Store
	now        func() time.Time
}

func NewActivityService(activities repository.ActivityRepository, store cache.Store) ActivityService {
	return &activityService{activities: activities, store: store, now: time.Now}
}

func (s *activityService) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]dto.ActivityResponse, error) {
	list, err := s.activities.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ActivityResponse, len(list))
	for i := range list {
		resp[i] = toActivityResponse(&list[i])
	}
	return resp, nil
}

func (s *activityService) Create(ctx context.Context, req dto.CreateActivityRequest) (dto.ActivityResponse, error) {
	a := &model.Activity{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}
	var err error
	if a.DealID, err = parseOptionalID(req.DealID, "dealId"); err != nil {
		return dto.ActivityResponse{}, err
	}
	if a.BuyingPartyID, err = parseOptionalID(req.BuyingPartyID, "buyingPartyId"); err != nil {
		return dto.ActivityResponse{}, err
	}
	if a.Status == "" {
		a.Status = "pending"
	}
	if a.Status == "completed" {
		now := s.now()
		a.CompletedAt = &now
	}

	if err := s.activities.Create(ctx, a); err != nil {
		return dto.ActivityResponse{}, err
	}
	s.invalidateEntity(ctx, cache.CreateActivity, a)
	return toActivityResponse(a), nil
}

func (s *activityService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateActivityRequest) (dto.ActivityResponse, error) {
	a, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return dto.ActivityResponse{}, notFound(err, "activity")
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.AssignedTo != nil {
		a.AssignedTo = req.AssignedTo
	}
	if req.DueDate != nil {
		a.DueDate = req.DueDate
		a.RemindedAt = nil
	}
	if req.Status != nil && *req.Status != a.Status {
		a.Status = *req.Status
		if a.Status == "completed" {
			now := s.now()
			a.CompletedAt = &now
		} else {
			a.CompletedAt = nil
		}
	}

	if err := s.activities.Update(ctx, a); err != nil {
		return dto.ActivityResponse{}, err
	}
	s.invalidateEntity(ctx, cache.UpdateActivity, a)
	return toActivityResponse(a), nil
}

// invalidateEntity drops the activity lists of every entity a belongs to.
func (s *activityService) invalidateEntity(ctx context.Context, m cache.Mutation, a *model.Activity) {
	for _, id := range []*uuid.UUID{a.DealID, a.BuyingPartyID} {
		if id != nil {
			invalidate(ctx, s.store, m, cache.Scope{EntityID: id.String()})
		}
	}
}

func parseOptionalID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, field)
	}
	return &id, nil
}

package service

import (
	"context"
	"fmt"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/model"
	"dealflow/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ContactService interface {
	ListByEntity(ctx context.Context, filter dto.ContactFilter) ([]dto.ContactResponse, error)
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
}

type contactService struct {
	contacts repository.ContactRepository
	deals    repository.DealRepository
	parties  repository.BuyingPartyRepository
	matches  repository.MatchRepository
	store    cache.Store
}

func NewContactService(
	contacts repository.ContactRepository,
	deals repository.DealRepository,
	parties repository.BuyingPartyRepository,
	matches repository.MatchRepository,
	store cache.Store,
) ContactService {
	return &contactService{contacts: contacts, deals: deals, parties: parties, matches: matches, store: store}
}

func (s *contactService) ListByEntity(ctx context.Context, filter dto.ContactFilter) ([]dto.ContactResponse, error) {
	entityID, err := uuid.Parse(filter.EntityID)
	if err != nil {
		return nil, fmt.Errorf("%w: entityId", ErrInvalidInput)
	}
	list, err := s.contacts.ListByEntity(ctx, entityID, filter.EntityType)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ContactResponse, len(list))
	for i := range list {
		resp[i] = toContactResponse(&list[i])
	}
	return resp, nil
}

func (s *contactService) Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error) {
	var entityID *uuid.UUID
	if req.EntityID != "" {
		id, err := uuid.Parse(req.EntityID)
		if err != nil {
			return dto.ContactResponse{}, fmt.Errorf("%w: entityId", ErrInvalidInput)
		}
		if err := s.checkEntity(ctx, id, req.EntityType); err != nil {
			return dto.ContactResponse{}, err
		}
		entityID = &id
	}

	c := &model.Contact{Name: req.Name, Role: req.Role, Email: req.Email, Phone: req.Phone}
	if err := s.contacts.Create(ctx, c, entityID, req.EntityType); err != nil {
		return dto.ContactResponse{}, err
	}
	scope := cache.Scope{EntityID: req.EntityID, EntityType: req.EntityType}
	if entityID != nil && req.EntityType == repository.EntityParty {
		dealIDs, err := s.matches.DealIDsByParty(ctx, *entityID)
		if err != nil {
			// the contact is already committed
			log.Warn().Err(err).Str("party_id", req.EntityID).Msg("contact: lookup matched deals")
		}
		scope.DealIDs = idStrings(dealIDs)
	}
	invalidate(ctx, s.store, cache.CreateContact, scope)
	return toContactResponse(c), nil
}

func (s *contactService) checkEntity(ctx context.Context, id uuid.UUID, entityType string) error {
	switch entityType {
	case repository.EntityDeal:
		if _, err := s.deals.FindByID(ctx, id); err != nil {
			return notFound(err, "deal")
		}
	case repository.EntityParty:
		if _, err := s.parties.FindByID(ctx, id); err != nil {
			return notFound(err, "buying party")
		}
	default:
		return fmt.Errorf("%w: entityType must be deal or party", ErrInvalidInput)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/infra"
	"dealflow/internal/model"
	"dealflow/internal/pipeline"
	"dealflow/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultHealthScore = 85

// Actor is the authenticated user performing a call.
type Actor struct {
	UserID uuid.UUID
	Email  string
}

type DealService interface {
	List(ctx context.Context, stage string) ([]dto.DealResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.DealResponse, error)
	Create(ctx context.Context, actor Actor, req dto.CreateDealRequest) (dto.DealResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDealRequest) (dto.DealResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SaveNotes replaces the deal's notes and logs a system activity.
	SaveNotes(ctx context.Context, id uuid.UUID, notes string) (dto.DealResponse, error)
	Buyers(ctx context.Context, id uuid.UUID) ([]dto.BuyerMatchRow, error)
	// BuyersWithNDA returns the buyers whose match reached nda_signed, by
	// stage or by checklist.
	BuyersWithNDA(ctx context.Context, id uuid.UUID) ([]dto.BuyerMatchRow, error)
	PinnedDocuments(ctx context.Context, id uuid.UUID) ([]dto.PinnedDocument, error)
	Teaser(ctx context.Context, id uuid.UUID, w io.Writer) error
}

type dealService struct {
	deals      repository.DealRepository
	matches    repository.MatchRepository
	activities repository.ActivityRepository
	documents  repository.DocumentRepository
	users      repository.UserRepository
	store      cache.Store
}

func NewDealService(
	deals repository.DealRepository,
	matches repository.MatchRepository,
	activities repository.ActivityRepository,
	documents repository.DocumentRepository,
	users repository.UserRepository,
	store cache.Store,
) DealService {
	return &dealService{
		deals:      deals,
		matches:    matches,
		activities: activities,
		documents:  documents,
		users:      users,
		store:      store,
	}
}

func (s *dealService) List(ctx context.Context, stage string) ([]dto.DealResponse, error) {
	if stage != "" {
		if _, err := pipeline.ParseDealStage(stage); err != nil {
			return nil, err
		}
		return s.loadList(ctx, stage)
	}
	return cache.ReadThrough(ctx, s.store, cache.DealsKey(), func(ctx context.Context) ([]dto.DealResponse, error) {
		return s.loadList(ctx, "")
	})
}

func (s *dealService) loadList(ctx context.Context, stage string) ([]dto.DealResponse, error) {
	deals, err := s.deals.List(ctx, stage)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DealResponse, len(deals))
	for i := range deals {
		resp[i] = toDealResponse(&deals[i])
	}
	return resp, nil
}

func (s *dealService) Get(ctx context.Context, id uuid.UUID) (dto.DealResponse, error) {
	return cache.ReadThrough(ctx, s.store, cache.DealKey(id.String()), func(ctx context.Context) (dto.DealResponse, error) {
		d, err := s.deals.FindByID(ctx, id)
		if err != nil {
			return dto.DealResponse{}, notFound(err, "deal")
		}
		return toDealResponse(d), nil
	})
}

func (s *dealService) Create(ctx context.Context, actor Actor, req dto.CreateDealRequest) (dto.DealResponse, error) {
	if _, err := pipeline.ParseDealStage(req.Stage); err != nil {
		return dto.DealResponse{}, err
	}
	d := &model.Deal{
		CompanyName:     req.CompanyName,
		Revenue:         req.Revenue,
		SDE:             req.SDE,
		ValuationMin:    req.ValuationMin,
		ValuationMax:    req.ValuationMax,
		SDEMultiple:     req.SDEMultiple,
		RevenueMultiple: req.RevenueMultiple,
		Commission:      req.Commission,
		Stage:           req.Stage,
		Priority:        req.Priority,
		Description:     req.Description,
		Notes:           req.Notes,
		NextStepDays:    req.NextStepDays,
		HealthScore:     defaultHealthScore,
		OwnerID:         actor.UserID,
		Owner:           actor.Email,
	}
	if d.Priority == "" {
		d.Priority = "medium"
	}
	if req.HealthScore != nil {
		d.HealthScore = *req.HealthScore
	}
	if req.OwnerID != "" {
		if err := s.assignOwner(ctx, d, req.OwnerID); err != nil {
			return dto.DealResponse{}, err
		}
	}
	if err := checkDecimalRange("valuation", d.ValuationMin, d.ValuationMax); err != nil {
		return dto.DealResponse{}, err
	}

	if err := s.deals.Create(ctx, d); err != nil {
		return dto.DealResponse{}, err
	}
	invalidate(ctx, s.store, cache.CreateDeal, cache.Scope{DealID: d.ID.String()})
	return toDealResponse(d), nil
}

func (s *dealService) assignOwner(ctx context.Context, d *model.Deal, rawID string) error {
	ownerID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("%w: ownerId", ErrInvalidInput)
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return notFound(err, "owner")
	}
	d.OwnerID, d.Owner = owner.ID, owner.Email
	return nil
}

func (s *dealService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDealRequest) (dto.DealResponse, error) {
	d, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return dto.DealResponse{}, notFound(err, "deal")
	}

	if req.CompanyName != nil {
		d.CompanyName = *req.CompanyName
	}
	if req.Revenue != nil {
		d.Revenue = *req.Revenue
	}
	if req.SDE != nil {
		d.SDE = req.SDE
	}
	if req.ValuationMin != nil {
		d.ValuationMin = req.ValuationMin
	}
	if req.ValuationMax != nil {
		d.ValuationMax = req.ValuationMax
	}
	if req.SDEMultiple != nil {
		d.SDEMultiple = req.SDEMultiple
	}
	if req.RevenueMultiple != nil {
		d.RevenueMultiple = req.RevenueMultiple
	}
	if req.Commission != nil {
		d.Commission = req.Commission
	}
	if req.Stage != nil {
		if _, err := pipeline.ParseDealStage(*req.Stage); err != nil {
			return dto.DealResponse{}, err
		}
		if *req.Stage != d.Stage {
			d.Stage = *req.Stage
			d.AgeInStage = 0
		}
	}
	if req.Priority != nil {
		d.Priority = *req.Priority
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	if req.NextStepDays != nil {
		d.NextStepDays = req.NextStepDays
	}
	if req.HealthScore != nil {
		d.HealthScore = *req.HealthScore
	}
	if req.OwnerID != nil {
		if err := s.assignOwner(ctx, d, *req.OwnerID); err != nil {
			return dto.DealResponse{}, err
		}
	}
	if err := checkDecimalRange("valuation", d.ValuationMin, d.ValuationMax); err != nil {
		return dto.DealResponse{}, err
	}

	if err := s.deals.Update(ctx, d); err != nil {
		return dto.DealResponse{}, err
	}
	invalidate(ctx, s.store, cache.UpdateDeal, cache.Scope{DealID: id.String()})
	return toDealResponse(d), nil
}

func (s *dealService) Delete(ctx context.Context, id uuid.UUID) error {
	matchIDs, err := s.deals.Delete(ctx, id)
	if err != nil {
		return notFound(err, "deal")
	}
	invalidate(ctx, s.store, cache.DeleteDeal, cache.Scope{DealID: id.String(), MatchIDs: idStrings(matchIDs)})
	return nil
}

func (s *dealService) SaveNotes(ctx context.Context, id uuid.UUID, notes string) (dto.DealResponse, error) {
	if err := s.deals.UpdateNotes(ctx, id, notes); err != nil {
		return dto.DealResponse{}, notFound(err, "deal")
	}

	now := time.Now()
	entry := &model.Activity{
		DealID:      &id,
		Type:        "system",
		Title:       "Notes updated",
		Status:      "completed",
		CompletedAt: &now,
	}
	if err := s.activities.Create(ctx, entry); err != nil {
		// the notes are saved; a missing timeline entry is not worth failing for
		log.Warn().Err(err).Str("deal_id", id.String()).Msg("notes: failed to record activity")
	}
	invalidate(ctx, s.store, cache.SaveNotes, cache.Scope{DealID: id.String()})

	d, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return dto.DealResponse{}, notFound(err, "deal")
	}
	return toDealResponse(d), nil
}

func (s *dealService) Buyers(ctx context.Context, id uuid.UUID) ([]dto.BuyerMatchRow, error) {
	return cache.ReadThrough(ctx, s.store, cache.DealBuyersKey(id.String()), func(ctx context.Context) ([]dto.BuyerMatchRow, error) {
		if _, err := s.deals.FindByID(ctx, id); err != nil {
			return nil, notFound(err, "deal")
		}
		rows, err := s.matches.ListByDeal(ctx, id)
		if err != nil {
			return nil, err
		}
		out := make([]dto.BuyerMatchRow, len(rows))
		for i, r := range rows {
			out[i] = dto.BuyerMatchRow{
				Match: toMatchResponse(&r.Match),
				Party: toBuyingPartyResponse(&r.Party),
			}
			if r.Contact != nil {
				c := toContactResponse(r.Contact)
				out[i].Contact = &c
			}
		}
		return out, nil
	})
}

func (s *dealService) BuyersWithNDA(ctx context.Context, id uuid.UUID) ([]dto.BuyerMatchRow, error) {
	rows, err := s.Buyers(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BuyerMatchRow, 0, len(rows))
	for _, r := range rows {
		if ndaSigned(r.Match) {
			out = append(out, r)
		}
	}
	return out, nil
}

func ndaSigned(m dto.MatchResponse) bool {
	return pipeline.MatchStage(m.Stage).Reached(pipeline.MatchNDASigned) ||
		pipeline.ParseChecklist(m.Stages).Has(string(pipeline.MatchNDASigned))
}

func (s *dealService) PinnedDocuments(ctx context.Context, id uuid.UUID) ([]dto.PinnedDocument, error) {
	if _, err := s.deals.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "deal")
	}
	docs, err := s.documents.ListByDeal(ctx, id)
	if err != nil {
		return nil, err
	}

	refs := make([]pipeline.DocumentRef, len(docs))
	byID := make(map[string]*model.Document, len(docs))
	for i := range docs {
		d := &docs[i]
		refs[i] = pipeline.DocumentRef{ID: d.ID.String(), Name: d.Name}
		if d.Kind != nil {
			refs[i].Kind = *d.Kind
		}
		byID[d.ID.String()] = d
	}

	pinned := pipeline.ClassifyPinned(refs)
	out := make([]dto.PinnedDocument, 0, len(pinned))
	for _, slot := range pipeline.PinnedSlots {
		p, ok := pinned[slot]
		if !ok {
			continue
		}
		out = append(out, dto.PinnedDocument{
			Slot:     string(slot),
			Source:   p.Source,
			Document: toDocumentResponse(byID[p.DocumentID]),
		})
	}
	return out, nil
}

func (s *dealService) Teaser(ctx context.Context, id uuid.UUID, w io.Writer) error {
	d, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "deal")
	}
	return infra.GenerateDealTeaser(w, d, time.Now())
}

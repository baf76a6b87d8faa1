package repository

import (
	"context"

	"dealflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BuyerMatch is a match joined with its party and the party's first contact.
type BuyerMatch struct {
	Match   model.DealBuyerMatch
	Party   model.BuyingParty
	Contact *model.Contact
}

type MatchRepository interface {
	Create(ctx context.Context, m *model.DealBuyerMatch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DealBuyerMatch, error)
	// List returns all matches, or the matches of one deal when dealID is set.
	List(ctx context.Context, dealID *uuid.UUID) ([]model.DealBuyerMatch, error)
	FindPair(ctx context.Context, dealID, partyID uuid.UUID) (*model.DealBuyerMatch, error)
	// DealIDsByParty returns the deals the party is matched to.
	DealIDsByParty(ctx context.Context, partyID uuid.UUID) ([]uuid.UUID, error)
	ListByDeal(ctx context.Context, dealID uuid.UUID) ([]BuyerMatch, error)
	Update(ctx context.Context, m *model.DealBuyerMatch) error
	UpdateStages(ctx context.Context, id uuid.UUID, stages string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type matchRepo struct{ db *gorm.DB }

func NewMatchRepository(db *gorm.DB) MatchRepository { return &matchRepo{db: db} }

func (r *matchRepo) Create(ctx context.Context, m *model.DealBuyerMatch) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *matchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DealBuyerMatch, error) {
	var m model.DealBuyerMatch
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepo) List(ctx context.Context, dealID *uuid.UUID) ([]model.DealBuyerMatch, error) {
	var list []model.DealBuyerMatch
	q := r.db.WithContext(ctx).Order("created_at asc")
	if dealID != nil {
		q = q.Where("deal_id = ?", *dealID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *matchRepo) DealIDsByParty(ctx context.Context, partyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.DealBuyerMatch{}).
		Where("buying_party_id = ?", partyID).
		Pluck("deal_id", &ids).Error
	return ids, err
}

func (r *matchRepo) FindPair(ctx context.Context, dealID, partyID uuid.UUID) (*model.DealBuyerMatch, error) {
	var m model.DealBuyerMatch
	err := r.db.WithContext(ctx).
		Where("deal_id = ? AND buying_party_id = ?", dealID, partyID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepo) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]BuyerMatch, error) {
	db := r.db.WithContext(ctx)

	var matches []model.DealBuyerMatch
	if err := db.Where("deal_id = ?", dealID).Order("created_at asc").Find(&matches).Error; err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []BuyerMatch{}, nil
	}

	partyIDs := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		partyIDs = append(partyIDs, m.BuyingPartyID)
	}

	var parties []model.BuyingParty
	if err := db.Where("id IN ?", partyIDs).Find(&parties).Error; err != nil {
		return nil, err
	}
	partyByID := make(map[uuid.UUID]model.BuyingParty, len(parties))
	for _, p := range parties {
		partyByID[p.ID] = p
	}

	var links []model.PartyContact
	if err := db.Where("buying_party_id IN ?", partyIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	contactIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		contactIDs = append(contactIDs, l.ContactID)
	}
	var contacts []model.Contact
	if len(contactIDs) > 0 {
		if err := db.Where("id IN ?", contactIDs).Order("name asc").Find(&contacts).Error; err != nil {
			return nil, err
		}
	}
	contactByID := make(map[uuid.UUID]model.Contact, len(contacts))
	for _, c := range contacts {
		contactByID[c.ID] = c
	}
	// first contact by name wins
	firstContact := make(map[uuid.UUID]*model.Contact)
	for _, l := range links {
		c, ok := contactByID[l.ContactID]
		if !ok {
			continue
		}
		if cur, seen := firstContact[l.BuyingPartyID]; !seen || c.Name < cur.Name {
			c := c
			firstContact[l.BuyingPartyID] = &c
		}
	}

	rows := make([]BuyerMatch, 0, len(matches))
	for _, m := range matches {
		p, ok := partyByID[m.BuyingPartyID]
		if !ok {
			continue
		}
		rows = append(rows, BuyerMatch{Match: m, Party: p, Contact: firstContact[p.ID]})
	}
	return rows, nil
}

func (r *matchRepo) Update(ctx context.Context, m *model.DealBuyerMatch) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *matchRepo) UpdateStages(ctx context.Context, id uuid.UUID, stages string) error {
	res := r.db.WithContext(ctx).Model(&model.DealBuyerMatch{}).Where("id = ?", id).Update("stages", stages)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *matchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.DealBuyerMatch{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

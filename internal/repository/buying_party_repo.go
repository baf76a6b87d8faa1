package repository

import (
	"context"

	"dealflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BuyingPartyRepository interface {
	Create(ctx context.Context, p *model.BuyingParty) error
	List(ctx context.Context) ([]model.BuyingParty, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.BuyingParty, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.BuyingParty, error)
	// Delete removes the party and its matches and contact links. It returns
	// the removed matches.
	Delete(ctx context.Context, id uuid.UUID) ([]model.DealBuyerMatch, error)
}

type buyingPartyRepo struct{ db *gorm.DB }

func NewBuyingPartyRepository(db *gorm.DB) BuyingPartyRepository {
	return &buyingPartyRepo{db: db}
}

func (r *buyingPartyRepo) Create(ctx context.Context, p *model.BuyingParty) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *buyingPartyRepo) List(ctx context.Context) ([]model.BuyingParty, error) {
	var list []model.BuyingParty
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *buyingPartyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BuyingParty, error) {
	var p model.BuyingParty
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *buyingPartyRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.BuyingParty, error) {
	var list []model.BuyingParty
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *buyingPartyRepo) Delete(ctx context.Context, id uuid.UUID) ([]model.DealBuyerMatch, error) {
	var removed []model.DealBuyerMatch
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("buying_party_id = ?", id).Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("buying_party_id = ?", id).Delete(&model.DealBuyerMatch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("buying_party_id = ?", id).Delete(&model.PartyContact{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.BuyingParty{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return removed, err
}

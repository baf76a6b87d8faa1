package repository

import (
	"context"

	"dealflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealRepository interface {
	Create(ctx context.Context, d *model.Deal) error
	List(ctx context.Context, stage string) ([]model.Deal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Deal, error)
	Update(ctx context.Context, d *model.Deal) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	// Delete removes the deal together with its matches, contact links,
	// activities and documents. It returns the IDs of the removed matches.
	Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type dealRepo struct{ db *gorm.DB }

func NewDealRepository(db *gorm.DB) DealRepository { return &dealRepo{db: db} }

func (r *dealRepo) Create(ctx context.Context, d *model.Deal) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *dealRepo) List(ctx context.Context, stage string) ([]model.Deal, error) {
	var deals []model.Deal
	q := r.db.WithContext(ctx).Order("created_at desc")
	if stage != "" {
		q = q.Where("stage = ?", stage)
	}
	err := q.Find(&deals).Error
	return deals, err
}

func (r *dealRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Deal, error) {
	var d model.Deal
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dealRepo) Update(ctx context.Context, d *model.Deal) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *dealRepo) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	res := r.db.WithContext(ctx).Model(&model.Deal{}).Where("id = ?", id).Update("notes", notes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *dealRepo) Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var matchIDs []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.DealBuyerMatch{}).
			Where("deal_id = ?", id).
			Pluck("id", &matchIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_id = ?", id).Delete(&model.DealBuyerMatch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_id = ?", id).Delete(&model.DealContact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_id = ?", id).Delete(&model.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_id = ?", id).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Deal{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return matchIDs, err
}

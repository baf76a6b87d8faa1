package repository

import (
	"context"

	"dealflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Document, error)
	ListByDeal(ctx context.Context, dealID uuid.UUID) ([]model.Document, error)
}

type documentRepo struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) DocumentRepository { return &documentRepo{db: db} }

func (r *documentRepo) Create(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var d model.Document
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Document, error) {
	var list []model.Document
	err := r.db.WithContext(ctx).
		Where("deal_id = ? OR buying_party_id = ?", entityID, entityID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *documentRepo) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]model.Document, error) {
	var list []model.Document
	err := r.db.WithContext(ctx).Where("deal_id = ?", dealID).Order("created_at asc").Find(&list).Error
	return list, err
}

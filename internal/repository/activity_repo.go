package repository

import (
	"context"
	"time"

	"dealflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *model.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error)
	// ListByEntity returns the activities of a deal or buying party, newest first.
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Activity, error)
	Update(ctx context.Context, a *model.Activity) error
	// ListDueForReminder returns pending activities due before `until` that
	// have an assignee and have not been reminded yet.
	ListDueForReminder(ctx context.Context, until time.Time, limit int) ([]model.Activity, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepo{db: db} }

func (r *activityRepo) Create(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	var a model.Activity
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Activity, error) {
	var list []model.Activity
	err := r.db.WithContext(ctx).
		Where("deal_id = ? OR buying_party_id = ?", entityID, entityID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *activityRepo) Update(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *activityRepo) ListDueForReminder(ctx context.Context, until time.Time, limit int) ([]model.Activity, error) {
	var list []model.Activity
	err := r.db.WithContext(ctx).
		Where("status = ? AND reminded_at IS NULL AND due_date IS NOT NULL AND due_date <= ?", "pending", until).
		Where("assigned_to IS NOT NULL AND assigned_to <> ''").
		Order("due_date asc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *activityRepo) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Activity{}).Where("id = ?", id).Update("reminded_at", at).Error
}

package repository

import (
	"context"

	"dealflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity types a contact can be linked to.
const (
	EntityDeal  = "deal"
	EntityParty = "party"
)

type ContactRepository interface {
	// Create inserts the contact and, when entityID is set, the link row for
	// entityType in the same transaction.
	Create(ctx context.Context, c *model.Contact, entityID *uuid.UUID, entityType string) error
	ListByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]model.Contact, error)
}

type contactRepo struct{ db *gorm.DB }

func NewContactRepository(db *gorm.DB) ContactRepository { return &contactRepo{db: db} }

func (r *contactRepo) Create(ctx context.Context, c *model.Contact, entityID *uuid.UUID, entityType string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if entityID == nil {
			return nil
		}
		switch entityType {
		case EntityDeal:
			return tx.Create(&model.DealContact{DealID: *entityID, ContactID: c.ID}).Error
		case EntityParty:
			return tx.Create(&model.PartyContact{BuyingPartyID: *entityID, ContactID: c.ID}).Error
		}
		return nil
	})
}

func (r *contactRepo) ListByEntity(ctx context.Context, entityID uuid.UUID, entityType string) ([]model.Contact, error) {
	var list []model.Contact
	q := r.db.WithContext(ctx).Model(&model.Contact{}).Order("contacts.name asc")
	switch entityType {
	case EntityDeal:
		q = q.Joins("JOIN deal_contacts ON deal_contacts.contact_id = contacts.id").
			Where("deal_contacts.deal_id = ?", entityID)
	case EntityParty:
		q = q.Joins("JOIN party_contacts ON party_contacts.contact_id = contacts.id").
			Where("party_contacts.buying_party_id = ?", entityID)
	default:
		return list, nil
	}
	err := q.Find(&list).Error
	return list, err
}

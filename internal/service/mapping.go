package service

import (
	"dealflow/internal/dto"
	"dealflow/internal/model"

	"github.com/google/uuid"
)

func optID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func toDealResponse(d *model.Deal) dto.DealResponse {
	return dto.DealResponse{
		ID:              d.ID.String(),
		CompanyName:     d.CompanyName,
		Revenue:         d.Revenue,
		SDE:             d.SDE,
		ValuationMin:    d.ValuationMin,
		ValuationMax:    d.ValuationMax,
		SDEMultiple:     d.SDEMultiple,
		RevenueMultiple: d.RevenueMultiple,
		Commission:      d.Commission,
		Stage:           d.Stage,
		Priority:        d.Priority,
		Description:     d.Description,
		Notes:           d.Notes,
		NextStepDays:    d.NextStepDays,
		Touches:         d.Touches,
		AgeInStage:      d.AgeInStage,
		HealthScore:     d.HealthScore,
		OwnerID:         d.OwnerID.String(),
		Owner:           d.Owner,
		CreatedAt:       d.CreatedAt,
	}
}

func toBuyingPartyResponse(p *model.BuyingParty) dto.BuyingPartyResponse {
	return dto.BuyingPartyResponse{
		ID:                   p.ID.String(),
		Name:                 p.Name,
		TargetAcquisitionMin: p.TargetAcquisitionMin,
		TargetAcquisitionMax: p.TargetAcquisitionMax,
		BudgetMin:            p.BudgetMin,
		BudgetMax:            p.BudgetMax,
		Timeline:             p.Timeline,
		Status:               p.Status,
		Notes:                p.Notes,
		CreatedAt:            p.CreatedAt,
	}
}

func toMatchResponse(m *model.DealBuyerMatch) dto.MatchResponse {
	return dto.MatchResponse{
		ID:                m.ID.String(),
		DealID:            m.DealID.String(),
		BuyingPartyID:     m.BuyingPartyID.String(),
		TargetAcquisition: m.TargetAcquisition,
		Budget:            m.Budget,
		Status:            m.Status,
		Stage:             m.Stage,
		Stages:            m.Stages,
		CreatedAt:         m.CreatedAt,
	}
}

func toContactResponse(c *model.Contact) dto.ContactResponse {
	return dto.ContactResponse{ID: c.ID.String(), Name: c.Name, Role: c.Role, Email: c.Email, Phone: c.Phone}
}

func toActivityResponse(a *model.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:            a.ID.String(),
		DealID:        optID(a.DealID),
		BuyingPartyID: optID(a.BuyingPartyID),
		Type:          a.Type,
		Title:         a.Title,
		Description:   a.Description,
		Status:        a.Status,
		AssignedTo:    a.AssignedTo,
		DueDate:       a.DueDate,
		CompletedAt:   a.CompletedAt,
		CreatedAt:     a.CreatedAt,
	}
}

func toDocumentResponse(d *model.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:            d.ID.String(),
		DealID:        optID(d.DealID),
		BuyingPartyID: optID(d.BuyingPartyID),
		Name:          d.Name,
		Status:        d.Status,
		URL:           d.URL,
		Kind:          d.Kind,
		CreatedAt:     d.CreatedAt,
	}
}

package service

import (
	"bytes"
	"context"
	"testing"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/model"
	"dealflow/internal/pipeline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDealService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.prime(t, cache.DealsKey())

	resp, err := f.deals.Create(ctx, testActor, dto.CreateDealRequest{
		CompanyName: "Blue Ridge Dental",
		Revenue:     decimal.NewFromInt(3_400_000),
		Stage:       "onboarding",
	})
	require.NoError(t, err)
	assert.Equal(t, 85, resp.HealthScore)
	assert.Equal(t, "medium", resp.Priority)
	assert.Equal(t, testActor.Email, resp.Owner)
	assert.False(t, f.store.Has(cache.DealsKey()))
}

func TestDealService_CreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.deals.Create(ctx, testActor, dto.CreateDealRequest{CompanyName: "X", Stage: "closing"})
	assert.ErrorIs(t, err, pipeline.ErrInvalidStage)

	lo, hi := decimal.NewFromInt(5), decimal.NewFromInt(1)
	_, err = f.deals.Create(ctx, testActor, dto.CreateDealRequest{
		CompanyName: "X", Stage: "valuation", ValuationMin: &lo, ValuationMax: &hi,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	zero := 0
	resp, err := f.deals.Create(ctx, testActor, dto.CreateDealRequest{CompanyName: "Y", Stage: "valuation", HealthScore: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.HealthScore)
}

func TestDealService_GetIsCachedUntilUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.seedDeal(t, "Harbor Logistics")

	got, err := f.deals.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Logistics", got.CompanyName)
	assert.True(t, f.store.Has(cache.DealKey(d.ID.String())))

	// a write behind the service's back is not visible while cached
	require.NoError(t, f.db.Model(&model.Deal{}).Where("id = ?", d.ID).Update("company_name", "Stale").Error)
	got, err = f.deals.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Logistics", got.CompanyName)

	stage := "due_diligence"
	_, err = f.deals.Update(ctx, d.ID, dto.UpdateDealRequest{Stage: &stage})
	require.NoError(t, err)
	assert.False(t, f.store.Has(cache.DealKey(d.ID.String())))

	got, err = f.deals.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "due_diligence", got.Stage)
	assert.Equal(t, 0, got.AgeInStage)
}

func TestDealService_GetMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.deals.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "deal not found")
}

func TestDealService_SaveNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.seedDeal(t, "Summit Bakery")
	f.prime(t, cache.DealKey(d.ID.String()), cache.ActivitiesKey(d.ID.String()), cache.DealBuyersKey(d.ID.String()))

	resp, err := f.deals.SaveNotes(ctx, d.ID, "Seller wants to stay on 6 months")
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "Seller wants to stay on 6 months", *resp.Notes)

	acts, err := f.activities.ListByEntity(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "system", acts[0].Type)
	assert.Equal(t, "Notes updated", acts[0].Title)

	assert.False(t, f.store.Has(cache.DealKey(d.ID.String())))
	assert.False(t, f.store.Has(cache.ActivitiesKey(d.ID.String())))
	assert.True(t, f.store.Has(cache.DealBuyersKey(d.ID.String())))

	_, err = f.deals.SaveNotes(ctx, uuid.New(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDealService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.seedDeal(t, "Lakeside Marina")
	p := f.seedParty(t, "Anchor Capital")
	m := f.seedMatch(t, d, p, "")
	dealID := d.ID.String()
	dependents := []cache.Key{
		cache.DealKey(dealID), cache.DealsKey(), cache.DealBuyersKey(dealID), cache.MatchKey(m.ID.String()),
		cache.ActivitiesKey(dealID), cache.DocumentsKey(dealID), cache.ContactsKey(dealID, "deal"),
	}
	f.prime(t, dependents...)

	require.NoError(t, f.deals.Delete(ctx, d.ID))

	var n int64
	require.NoError(t, f.db.Model(&model.DealBuyerMatch{}).Count(&n).Error)
	assert.Zero(t, n)
	for _, k := range dependents {
		assert.False(t, f.store.Has(k), "key %s", k)
	}
	_, err := f.matches.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.deals.Delete(ctx, d.ID), ErrNotFound)
}

func TestDealService_BuyersAndNDA(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.seedDeal(t, "Copper Kettle Foods")
	byStage := f.seedParty(t, "Northwind Partners")
	byChecklist := f.seedParty(t, "Granite Holdings")
	none := f.seedParty(t, "Solo Searcher")

	m1 := f.seedMatch(t, d, byStage, "")
	require.NoError(t, f.db.Model(m1).Update("stage", "loi").Error)
	f.seedMatch(t, d, byChecklist, "nda_sent,nda_signed")
	f.seedMatch(t, d, none, "nda_sent")

	ct := &model.Contact{Name: "Dana Whit", Role: "Principal"}
	require.NoError(t, f.db.Create(ct).Error)
	require.NoError(t, f.db.Create(&model.PartyContact{BuyingPartyID: byStage.ID, ContactID: ct.ID}).Error)

	rows, err := f.deals.Buyers(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Northwind Partners", rows[0].Party.Name)
	require.NotNil(t, rows[0].Contact)
	assert.Equal(t, "Dana Whit", rows[0].Contact.Name)
	assert.Nil(t, rows[1].Contact)

	nda, err := f.deals.BuyersWithNDA(ctx, d.ID)
	require.NoError(t, err)
	names := []string{}
	for _, r := range nda {
		names = append(names, r.Party.Name)
	}
	assert.ElementsMatch(t, []string{"Northwind Partners", "Granite Holdings"}, names)

	_, err = f.deals.Buyers(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDealService_PinnedDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.seedDeal(t, "Evergreen Landscaping")

	docs := []model.Document{
		{DealID: &d.ID, Name: "Valuation model v2.xlsx"},
		{DealID: &d.ID, Name: "Mutual NDA - Granite.pdf"},
		{DealID: &d.ID, Name: "final-deck.pptx", Kind: strPtr("cim_ppt")},
		{DealID: &d.ID, Name: "CIM draft.pptx"},
	}
	for i := range docs {
		require.NoError(t, f.db.Create(&docs[i]).Error)
	}

	pinned, err := f.deals.PinnedDocuments(ctx, d.ID)
	require.NoError(t, err)
	bySlot := map[string]dto.PinnedDocument{}
	for _, p := range pinned {
		bySlot[p.Slot] = p
	}
	assert.Len(t, pinned, 3)
	assert.Equal(t, "Valuation model v2.xlsx", bySlot["valuation_excel"].Document.Name)
	assert.Equal(t, pipeline.SourceName, bySlot["valuation_excel"].Source)
	assert.Equal(t, "final-deck.pptx", bySlot["cim_ppt"].Document.Name)
	assert.Equal(t, pipeline.SourceKind, bySlot["cim_ppt"].Source)
	assert.Equal(t, "Mutual NDA - Granite.pdf", bySlot["nda_pdf"].Document.Name)
}

func TestDealService_Teaser(t *testing.T) {
	f := newFixture(t)
	d := f.seedDeal(t, "Evergreen Landscaping")

	var buf bytes.Buffer
	require.NoError(t, f.deals.Teaser(context.Background(), d.ID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, f.deals.Teaser(context.Background(), uuid.New(), &buf), ErrNotFound)
}

package service

import (
	"context"
	"testing"

	"dealflow/internal/cache"
	"dealflow/internal/infra"
	"dealflow/internal/model"
	"dealflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	store *cache.MemoryStore

	deals      DealService
	matches    MatchService
	parties    BuyingPartyService
	contacts   ContactService
	activities ActivityService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := infra.NewDatabase("sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := cache.NewMemoryStore()
	dealRepo := repository.NewDealRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	partyRepo := repository.NewBuyingPartyRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	return &fixture{
		db:    db,
		store: store,
		deals: NewDealService(dealRepo, matchRepo, activityRepo,
			repository.NewDocumentRepository(db), repository.NewUserRepository(db), store),
		matches:    NewMatchService(matchRepo, dealRepo, partyRepo, store),
		parties:    NewBuyingPartyService(partyRepo, store),
		contacts:   NewContactService(repository.NewContactRepository(db), dealRepo, partyRepo, matchRepo, store),
		activities: NewActivityService(activityRepo, store),
	}
}

var testActor = Actor{UserID: uuid.MustParse("6b1c1f0e-2d7a-4c53-9a57-0d3f0b9e1a11"), Email: "broker@firm.com"}

func (f *fixture) seedDeal(t *testing.T, name string) *model.Deal {
	t.Helper()
	d := &model.Deal{
		CompanyName: name,
		Revenue:     decimal.NewFromInt(1_000_000),
		Stage:       "buyer_matching",
		Priority:    "medium",
		HealthScore: 85,
		OwnerID:     testActor.UserID,
		Owner:       testActor.Email,
	}
	require.NoError(t, f.db.Create(d).Error)
	return d
}

func (f *fixture) seedParty(t *testing.T, name string) *model.BuyingParty {
	t.Helper()
	p := &model.BuyingParty{Name: name, Status: "evaluating"}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) seedMatch(t *testing.T, deal *model.Deal, party *model.BuyingParty, stages string) *model.DealBuyerMatch {
	t.Helper()
	m := &model.DealBuyerMatch{DealID: deal.ID, BuyingPartyID: party.ID, Status: "interested", Stage: "new", Stages: stages}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

// prime stores a placeholder under key so tests can observe invalidation.
func (f *fixture) prime(t *testing.T, keys ...cache.Key) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, f.store.Set(context.Background(), k, []byte(`null`)))
	}
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

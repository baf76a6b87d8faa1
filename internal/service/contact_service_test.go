package service

import (
	"context"
	"testing"

	"dealflow/internal/cache"
	"dealflow/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_CreateLinked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.seedDeal(t, "Tidewater Tours")
	p := f.seedParty(t, "Beacon Holdings")
	f.prime(t, cache.ContactsKey(d.ID.String(), "deal"))

	_, err := f.contacts.Create(ctx, dto.CreateContactRequest{Name: "Rosa Lind", Role: "Owner", EntityID: d.ID.String(), EntityType: "deal"})
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, dto.CreateContactRequest{Name: "Sam Ortiz", Role: "Associate", EntityID: p.ID.String(), EntityType: "party"})
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, dto.CreateContactRequest{Name: "Unlinked", Role: "Advisor"})
	require.NoError(t, err)
	assert.False(t, f.store.Has(cache.ContactsKey(d.ID.String(), "deal")))

	dealContacts, err := f.contacts.ListByEntity(ctx, dto.ContactFilter{EntityID: d.ID.String(), EntityType: "deal"})
	require.NoError(t, err)
	require.Len(t, dealContacts, 1)
	assert.Equal(t, "Rosa Lind", dealContacts[0].Name)

	partyContacts, err := f.contacts.ListByEntity(ctx, dto.ContactFilter{EntityID: p.ID.String(), EntityType: "party"})
	require.NoError(t, err)
	require.Len(t, partyContacts, 1)
	assert.Equal(t, "Sam Ortiz", partyContacts[0].Name)
}

func TestContactService_PartyContactRefreshesBuyerLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	matched := f.seedDeal(t, "Harbor Bakery")
	unmatched := f.seedDeal(t, "Summit Dental")
	p := f.seedParty(t, "Granite Equity")
	f.seedMatch(t, matched, p, "")

	rows, err := f.deals.Buyers(ctx, matched.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Contact)
	f.prime(t, cache.DealBuyersKey(unmatched.ID.String()))

	_, err = f.contacts.Create(ctx, dto.CreateContactRequest{Name: "Ada Park", Role: "Principal", EntityID: p.ID.String(), EntityType: "party"})
	require.NoError(t, err)
	assert.True(t, f.store.Has(cache.DealBuyersKey(unmatched.ID.String())))

	rows, err = f.deals.Buyers(ctx, matched.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Contact)
	assert.Equal(t, "Ada Park", rows[0].Contact.Name)
}

func TestContactService_CreateUnknownEntity(t *testing.T) {
	f := newFixture(t)
	_, err := f.contacts.Create(context.Background(), dto.CreateContactRequest{
		Name: "Ghost", Role: "Owner", EntityID: uuid.NewString(), EntityType: "deal",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

package infra

import (
	"bytes"
	"testing"
	"time"

	"dealflow/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", money(decimal.Zero))
	assert.Equal(t, "$950", money(decimal.NewFromInt(950)))
	assert.Equal(t, "$1,200,000", money(decimal.RequireFromString("1199999.60")))
	assert.Equal(t, "-$12,500", money(decimal.NewFromInt(-12500)))
}

func TestGenerateDealTeaser(t *testing.T) {
	sde := decimal.NewFromInt(420000)
	desc := "Regional HVAC services company with recurring maintenance contracts."
	d := &model.Deal{
		ID:          uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000"),
		CompanyName: "Acme Heating LLC",
		Revenue:     decimal.NewFromInt(2100000),
		SDE:         &sde,
		Description: &desc,
	}

	var buf bytes.Buffer
	require.NoError(t, GenerateDealTeaser(&buf, d, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "Project 3F2A9C1E", ProjectCode(d))
	// blind teaser: the company name never appears
	assert.NotContains(t, buf.String(), "Acme")
}

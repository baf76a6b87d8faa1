package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealStage(t *testing.T) {
	assert.Len(t, DealStages, 5)
	assert.True(t, DealBuyerMatching.Valid())
	assert.False(t, DealStage("closed").Valid())
	assert.Equal(t, 0, DealOnboarding.Index())
	assert.Equal(t, 4, DealSold.Index())
}

func TestMatchStage(t *testing.T) {
	assert.Len(t, MatchStages, 12)
	assert.Equal(t, MatchNew, MatchStages[0])
	assert.Equal(t, MatchLost, MatchStages[11])
	assert.False(t, MatchStage("maybe").Valid())
}

func TestMatchStage_Reached(t *testing.T) {
	assert.True(t, MatchLOI.Reached(MatchNDASigned))
	assert.True(t, MatchNDASigned.Reached(MatchNDASigned))
	assert.False(t, MatchNDASent.Reached(MatchNDASigned))
	assert.False(t, MatchLost.Reached(MatchNDASigned))
	assert.True(t, MatchLost.Reached(MatchLost))
	assert.False(t, MatchStage("bogus").Reached(MatchNew))
}

func TestParseMatchStage(t *testing.T) {
	s, err := ParseMatchStage("loi")
	require.NoError(t, err)
	assert.Equal(t, MatchLOI, s)

	_, err = ParseMatchStage("closing")
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = ParseDealStage("")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

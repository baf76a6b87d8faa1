package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecklist(t *testing.T) {
	c := ParseChecklist(" nda_sent,,cim_sent,nda_sent ,")
	assert.Equal(t, []string{"nda_sent", "cim_sent"}, c.Keys())
	assert.Equal(t, "nda_sent,cim_sent", c.String())

	assert.Equal(t, 0, ParseChecklist("").Len())
	assert.Equal(t, "", ParseChecklist(",,").String())
}

func TestChecklist_ToggleAddsOnce(t *testing.T) {
	c := ParseChecklist("nda_sent")

	added := c.Toggle("cim_sent", true)
	assert.Equal(t, "nda_sent,cim_sent", added.String())

	again := added.Toggle("cim_sent", true)
	assert.Equal(t, "nda_sent,cim_sent", again.String())

	// receiver untouched
	assert.Equal(t, "nda_sent", c.String())
}

func TestChecklist_ToggleRemoves(t *testing.T) {
	c := ParseChecklist("nda_sent,cim_sent")

	assert.Equal(t, "cim_sent", c.Toggle("nda_sent", false).String())
	assert.Equal(t, "nda_sent,cim_sent", c.Toggle("ioi", false).String())
}

func TestChecklist_DoubleToggleIsIdentity(t *testing.T) {
	base := ParseChecklist("nda_sent,cim_sent")
	for _, key := range []string{"nda_sent", "intro_call", "won"} {
		checked := !base.Has(key)
		back := base.Toggle(key, checked).Toggle(key, !checked)
		assert.True(t, base.Equal(back), "key %s", key)
	}
}

func TestChecklist_DocumentedExample(t *testing.T) {
	c := ParseChecklist("nda_sent,cim_sent")

	c = c.Toggle("nda_sent", false)
	assert.Equal(t, "cim_sent", c.String())

	c = c.Toggle("intro_call", true)
	assert.True(t, c.Equal(NewChecklist("intro_call", "cim_sent")))
}

func TestChecklist_Equal(t *testing.T) {
	assert.True(t, NewChecklist("a", "b").Equal(NewChecklist("b", "a")))
	assert.False(t, NewChecklist("a").Equal(NewChecklist("a", "b")))
	assert.False(t, NewChecklist("a", "c").Equal(NewChecklist("a", "b")))
}

func TestChecklist_Validate(t *testing.T) {
	require.NoError(t, ParseChecklist("new,nda_signed,loi").Validate())

	err := ParseChecklist("nda_sent,coffee").Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMilestone)
	assert.Contains(t, err.Error(), "coffee")
}

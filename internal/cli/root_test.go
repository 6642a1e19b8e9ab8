package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/shopping"
	"shopmate/internal/store"
)

func TestSplitLines(t *testing.T) {
	lines := splitLines("500g mince\n\n  8 taco shells  \n")
	assert.Equal(t, []string{"500g mince", "8 taco shells"}, lines)
}

func TestResolveMeal(t *testing.T) {
	st := store.New()
	m, err := st.AddMeal("Tacos", []string{"500g mince"})
	require.NoError(t, err)

	byID, err := resolveMeal(st, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, byID.ID)

	byName, err := resolveMeal(st, "tacos")
	require.NoError(t, err)
	assert.Equal(t, m.ID, byName.ID)

	_, err = resolveMeal(st, "soup")
	assert.Error(t, err)
}

func TestResolveGroup(t *testing.T) {
	groups := []shopping.QuickAddGroup{
		{ID: "g1", Name: "Pet Supplies"},
	}

	byID, err := resolveGroup(groups, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Pet Supplies", byID.Name)

	byName, err := resolveGroup(groups, "pet supplies")
	require.NoError(t, err)
	assert.Equal(t, "g1", byName.ID)

	_, err = resolveGroup(groups, "garden")
	assert.Error(t, err)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValueScan(t *testing.T) {
	v, err := StringList{"vegan", "keto"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["vegan","keto"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var got StringList
	require.NoError(t, got.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, got)

	require.NoError(t, got.Scan(nil))
	assert.Equal(t, StringList{}, got)

	assert.Error(t, got.Scan(42))
}

func TestStringListNormalize(t *testing.T) {
	got := StringList{" Vegan", "", "KETO", "vegan "}.Normalize()
	assert.Equal(t, StringList{"vegan", "keto"}, got)
}

func TestStringListCleanKeepsRepeats(t *testing.T) {
	got := StringList{" Mexican", "", "mexican ", "THAI"}.Clean()
	assert.Equal(t, StringList{"mexican", "mexican", "thai"}, got)
}

func TestRecipeTagsScan(t *testing.T) {
	var tags RecipeTags
	require.NoError(t, tags.Scan(`{"cuisines":["thai"],"allergens":["peanut"]}`))
	assert.Equal(t, StringList{"thai"}, tags.Cuisines)
	assert.Empty(t, tags.Diets)
	assert.Equal(t, StringList{"peanut"}, tags.Allergens)

	require.NoError(t, tags.Scan(nil))
	assert.Equal(t, RecipeTags{}, tags)

	require.NoError(t, tags.Scan("null"))
	assert.Equal(t, RecipeTags{}, tags)
}

func TestReactionTypeValid(t *testing.T) {
	assert.True(t, ReactionHeart.Valid())
	assert.True(t, ReactionSkip.Valid())
	assert.False(t, ReactionType("like").Valid())
}

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, "No ratings yet", T("en", KeyNoRatings))
	assert.Equal(t, "(2 reviews)", T("en", KeyReviewCount, 2))
	assert.Equal(t, "尚無評分", T("zh_TW", KeyNoRatings))

	// unknown locale falls back to the default language
	assert.Equal(t, "No reviews for this product yet.", T("fr", KeyNoReviews))
	// unknown key is returned as-is
	assert.Equal(t, "missing.key", T("en", "missing.key"))

	assert.True(t, IsSupported("zh_TW"))
	assert.False(t, IsSupported("fr"))
	assert.ElementsMatch(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}

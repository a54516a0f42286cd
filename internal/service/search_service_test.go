package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Suggest(t *testing.T) {
	ctx := context.Background()
	cat, err := NewCatalogService(loadedOf(glpModule(), statinModule()))
	require.NoError(t, err)
	svc := NewSearchService(cat)

	t.Run("exact alias suppresses other modules", func(t *testing.T) {
		got := svc.Suggest(ctx, "オゼンピック", 0)
		require.Len(t, got, 1)
		assert.Equal(t, "glp1", got[0].ModuleID)
		assert.Equal(t, "オゼンピック", got[0].DrugDisplayLabel)
	})

	t.Run("hiragana finds katakana brand", func(t *testing.T) {
		got := svc.Suggest(ctx, "りぴとーる", 0)
		require.NotEmpty(t, got)
		for _, s := range got {
			assert.Equal(t, "statin", s.ModuleID)
		}
	})

	t.Run("limit caps results", func(t *testing.T) {
		got := svc.Suggest(ctx, "s", 2)
		assert.LessOrEqual(t, len(got), 2)
	})

	t.Run("blank query", func(t *testing.T) {
		assert.Empty(t, svc.Suggest(ctx, "  ", 0))
	})
}

func TestSearchService_Filter(t *testing.T) {
	ctx := context.Background()
	cat, err := NewCatalogService(loadedOf(glpModule(), statinModule()))
	require.NoError(t, err)
	svc := NewSearchService(cat)

	all := svc.Filter(ctx, "")
	assert.Len(t, all, 5, "empty query keeps every scenario")

	got := svc.Filter(ctx, "悪心")
	require.Len(t, got, 1)
	assert.Equal(t, "glp1/nausea", got[0].Key())
}

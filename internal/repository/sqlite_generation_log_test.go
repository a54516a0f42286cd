package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationLogRepo_ListRecent(t *testing.T) {
	repo := NewSQLiteGenerationLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.GenerationLogEntry{
		{ID: "1", Note: "default", Action: "compose", Details: "start", CreatedAt: base},
		{ID: "2", Note: "default", Action: "hold", Details: "start", CreatedAt: base.Add(500 * time.Millisecond)},
		{ID: "3", Note: "other", Action: "reset", CreatedAt: base.Add(time.Second)},
		{ID: "4", Note: "default", Action: "copy", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.ListRecent(ctx, "default", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"4", "2", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "hold", got[1].Action)
	assert.Equal(t, "start", got[1].Details)
	assert.True(t, base.Add(500*time.Millisecond).Equal(got[1].CreatedAt))

	all, err := repo.ListRecent(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "4", all[0].ID)
	assert.Equal(t, "3", all[1].ID)
}

func TestGenerationLogRepo_RejectsUnknownAction(t *testing.T) {
	repo := NewSQLiteGenerationLogRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), domain.GenerationLogEntry{ID: "x", Note: "n", Action: "print", CreatedAt: time.Now()})
	assert.Error(t, err)
}

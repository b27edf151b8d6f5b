package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"agrisight/internal/domain/entity"
)

func TestMemoryScanRepository_CreateAssignsIDs(t *testing.T) {
	repo := NewMemoryScanRepository()
	ctx := context.Background()

	first := entity.NewScanRecord("a.jpg", "")
	second := entity.NewScanRecord("b.jpg", "")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.Equal(t, uint(1), first.ID)
	require.Equal(t, uint(2), second.ID)
}

func TestMemoryScanRepository_GetReturnsStableCopy(t *testing.T) {
	repo := NewMemoryScanRepository()
	ctx := context.Background()

	rec := entity.NewScanRecord("a.jpg", "tomato")
	require.NoError(t, repo.Create(ctx, rec))

	rec.Status = entity.ScanIdentified
	rec.DiseaseLabel = "Late Blight"
	require.NoError(t, repo.Update(ctx, rec))

	// Повторные чтения после терминального состояния идентичны.
	got1, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	got2, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, got1, got2)
	require.Equal(t, entity.ScanIdentified, got1.Status)

	// Мутация возвращённой копии не трогает хранилище.
	got1.DiseaseLabel = "changed"
	got3, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "Late Blight", got3.DiseaseLabel)
}

func TestMemoryScanRepository_UpdateUnknown(t *testing.T) {
	repo := NewMemoryScanRepository()
	rec := entity.NewScanRecord("a.jpg", "")
	rec.ID = 42
	require.ErrorIs(t, repo.Update(context.Background(), rec), entity.ErrNotFound)
}

func TestMemoryScanRepository_ListNewestFirst(t *testing.T) {
	repo := NewMemoryScanRepository()
	ctx := context.Background()

	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		require.NoError(t, repo.Create(ctx, entity.NewScanRecord(name, "")))
	}

	recs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "c.jpg", recs[0].ImagePath)
	require.Equal(t, "b.jpg", recs[1].ImagePath)
}

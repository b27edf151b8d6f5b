package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"agrisight/internal/domain/entity"
	"agrisight/internal/infrastructure/storage"
)

func TestUserService_AwaitCropAndReset(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.AwaitCrop(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingCrop, user.State)

	user, err = svc.Reset(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

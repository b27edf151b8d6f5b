package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"agrisight/internal/domain/entity"
	"agrisight/internal/infrastructure/storage"
)

type fakeAdvisor struct {
	answer     string
	gotDisease string
	gotCrop    string
}

func (a *fakeAdvisor) Advise(ctx context.Context, question, diseaseName, cropType string) (string, error) {
	a.gotDisease = diseaseName
	a.gotCrop = cropType
	return a.answer, nil
}

func TestChat_AskUsesScanContext(t *testing.T) {
	ctx := context.Background()
	scans := storage.NewMemoryScanRepository()
	chats := storage.NewMemoryChatRepository()
	advisor := &fakeAdvisor{answer: "Treat with copper fungicide."}
	svc := NewChatService(advisor, chats, scans)

	rec := entity.NewScanRecord("leaf.jpg", "tomato")
	require.NoError(t, scans.Create(ctx, rec))
	rec.Status = entity.ScanIdentified
	rec.DiseaseLabel = "Late Blight"
	require.NoError(t, scans.Update(ctx, rec))

	answer, err := svc.Ask(ctx, rec.ID, "How do I treat this?")
	require.NoError(t, err)
	require.Equal(t, "Treat with copper fungicide.", answer)
	require.Equal(t, "Late Blight", advisor.gotDisease)
	require.Equal(t, "tomato", advisor.gotCrop)

	history, err := svc.History(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "How do I treat this?", history[0].UserMessage)
}

func TestChat_AskWithoutScan(t *testing.T) {
	advisor := &fakeAdvisor{answer: "General advice."}
	svc := NewChatService(advisor, storage.NewMemoryChatRepository(), storage.NewMemoryScanRepository())

	answer, err := svc.Ask(context.Background(), 0, "When should I water?")
	require.NoError(t, err)
	require.Equal(t, "General advice.", answer)
	require.Equal(t, entity.DefaultCropType, advisor.gotCrop)
}

func TestChat_AskWithoutAdvisor(t *testing.T) {
	// Сервис без ключа OpenRouter собирается с nil-советником.
	svc := NewChatService(nil, storage.NewMemoryChatRepository(), storage.NewMemoryScanRepository())

	_, err := svc.Ask(context.Background(), 0, "Anything?")
	require.ErrorIs(t, err, entity.ErrConfiguration)
}

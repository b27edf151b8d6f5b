package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisight/internal/container"
	"agrisight/internal/domain/entity"
	"agrisight/internal/infrastructure/storage"
)

type stubDevice struct {
	online bool
	relays []string
}

func (d *stubDevice) Relay(ctx context.Context, action string) error {
	d.relays = append(d.relays, action)
	return nil
}
func (d *stubDevice) Capture(ctx context.Context) error        { return nil }
func (d *stubDevice) TriggerSensors(ctx context.Context) error { return nil }
func (d *stubDevice) Online(ctx context.Context) bool          { return d.online }

type stubNotifier struct{}

func (stubNotifier) SendText(text string)                   {}
func (stubNotifier) SendPhoto(photo []byte, caption string) {}

type stubStore struct {
	objects map[string][]byte
}

func newStubStore() *stubStore { return &stubStore{objects: make(map[string][]byte)} }

func (s *stubStore) Put(ctx context.Context, name string, data []byte) error {
	s.objects[name] = data
	return nil
}

func (s *stubStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, ok := s.objects[name]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return data, nil
}

func (s *stubStore) Delete(ctx context.Context, name string) error {
	delete(s.objects, name)
	return nil
}

func (s *stubStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	return names, nil
}

func newTestRouter(t *testing.T, device *stubDevice) (*gin.Engine, *stubStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newStubStore()
	c := container.New(container.Deps{
		Store:    store,
		Scans:    storage.NewMemoryScanRepository(),
		Sensors:  storage.NewMemorySensorRepository(),
		Actions:  storage.NewMemoryActionRepository(),
		Chats:    storage.NewMemoryChatRepository(),
		Users:    storage.NewMemoryUserRepository(),
		Notifier: stubNotifier{},
		Device:   device,
	})

	return NewServer(c).Router(), store
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, &stubDevice{online: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["device_online"])
}

func TestUpload_RejectsDisallowedExtension(t *testing.T) {
	router, store := newTestRouter(t, &stubDevice{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "payload.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.objects)
}

func TestUpload_StoresFileWithoutAnalysis(t *testing.T) {
	router, store := newTestRouter(t, &stubDevice{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "leaf.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("crop_type", "tomato"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(entity.ScanPending), body["status"])
	assert.Len(t, store.objects, 1)
}

func TestUpload_MissingFile(t *testing.T) {
	router, _ := newTestRouter(t, &stubDevice{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSensor_RecordAndHistory(t *testing.T) {
	router, _ := newTestRouter(t, &stubDevice{})

	payload := `{"moisture": 45.5, "temperature": 23.1, "humidity": 60}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sensor", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/sensors", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var readings []entity.SensorReading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &readings))
	require.Len(t, readings, 1)
	assert.InDelta(t, 45.5, readings[0].Moisture, 0.001)
}

func TestSensor_MissingFields(t *testing.T) {
	router, _ := newTestRouter(t, &stubDevice{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sensor", strings.NewReader(`{"moisture": 10}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelay_SwitchesPump(t *testing.T) {
	device := &stubDevice{online: true}
	router, _ := newTestRouter(t, device)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/relay/on", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"on"}, device.relays)
}

func TestActions_ListsRelayCommands(t *testing.T) {
	device := &stubDevice{online: true}
	router, _ := newTestRouter(t, device)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/relay/on", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/actions", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []entity.ActionLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "relay_control", entries[0].ActionType)
	assert.Equal(t, "pump_on", entries[0].Data)
}

func TestWeather_NotConfigured(t *testing.T) {
	// Тестовый контейнер собран без погодного клиента.
	router, _ := newTestRouter(t, &stubDevice{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/weather?city=Almaty", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChat_AdvisorNotConfigured(t *testing.T) {
	router, _ := newTestRouter(t, &stubDevice{})

	payload := `{"scan_id": 1, "question": "What now?"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRelay_RejectsUnknownAction(t *testing.T) {
	device := &stubDevice{online: true}
	router, _ := newTestRouter(t, device)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/relay/explode", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, device.relays)
}

func TestDeleteScan_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, &stubDevice{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/scans/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownload_ServesStoredArtifact(t *testing.T) {
	router, store := newTestRouter(t, &stubDevice{})
	store.objects["leaf.png"] = []byte("png-bytes")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download/leaf.png", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestDownload_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, &stubDevice{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/download/%s", "missing.jpg"), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

package kindwise

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agrisight/internal/domain/entity"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		PollInterval: time.Millisecond,
		MaxPolls:     10,
	})
}

func completedBody(disease string, prob float64) map[string]any {
	return map[string]any{
		"status": "COMPLETED",
		"result": map[string]any{
			"disease": map[string]any{
				"suggestions": []map[string]any{
					{"name": disease, "probability": prob, "scientific_name": "Phytophthora infestans"},
				},
			},
			"crop": map[string]any{
				"suggestions": []map[string]any{
					{"name": "potato", "probability": 0.9},
				},
			},
		},
	}
}

func TestIdentify_MissingKey(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })
	c.cfg.APIKey = ""

	_, err := c.Identify(context.Background(), []byte("img"), "general")
	require.ErrorIs(t, err, entity.ErrConfiguration)
	require.Zero(t, calls, "configuration error must precede any network call")
}

func TestIdentify_ImmediateResult(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.Header.Get("Api-Key"))

		var payload struct {
			Images        []string `json:"images"`
			SimilarImages bool     `json:"similar_images"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Images, 1)
		require.Equal(t, base64.StdEncoding.EncodeToString([]byte("img")), payload.Images[0])
		require.True(t, payload.SimilarImages)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(completedBody("Late Blight", 0.87))
	})

	res, err := c.Identify(context.Background(), []byte("img"), "general")
	require.NoError(t, err)
	require.True(t, res.Conclusive)
	require.Equal(t, "Late Blight", res.Disease)
	require.Equal(t, 0.87, res.Confidence)
	require.Equal(t, "Phytophthora infestans", res.Description)
	require.Equal(t, "potato", res.CropName)
}

func TestIdentify_PollsUntilReady(t *testing.T) {
	polls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"status": "ACCEPTED", "token": "tok-1"})
			return
		}

		require.True(t, strings.HasSuffix(r.URL.Path, "/identification/tok-1"))
		polls++
		if polls < 10 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		json.NewEncoder(w).Encode(completedBody("Powdery Mildew", 0.72))
	})

	res, err := c.Identify(context.Background(), []byte("img"), "grape")
	require.NoError(t, err)
	require.Equal(t, 10, polls)
	require.True(t, res.Conclusive)
	require.Equal(t, "Powdery Mildew", res.Disease)
}

func TestIdentify_PollBudgetExhausted(t *testing.T) {
	polls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"token": "tok-2"})
			return
		}
		polls++
		w.WriteHeader(http.StatusAccepted)
	})

	res, err := c.Identify(context.Background(), []byte("img"), "tomato")
	require.NoError(t, err)
	require.Equal(t, 10, polls, "poll loop must stop at the attempt budget")
	require.False(t, res.Conclusive)
	require.Equal(t, entity.SentinelDisease, res.Disease)
	require.Equal(t, 0.0, res.Confidence)
	require.Equal(t, "tomato", res.CropName)
}

func TestIdentify_PollErrorStopsEarly(t *testing.T) {
	polls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"token": "tok-3"})
			return
		}
		polls++
		if polls == 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})

	res, err := c.Identify(context.Background(), []byte("img"), "general")
	require.NoError(t, err)
	require.Equal(t, 3, polls, "unexpected poll status must abort the loop")
	require.False(t, res.Conclusive)
}

func TestIdentify_SubmitError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Identify(context.Background(), []byte("img"), "general")
	var upstream *entity.UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, http.StatusBadGateway, upstream.StatusCode)
}

func TestIdentify_NoToken(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ACCEPTED"})
	})

	_, err := c.Identify(context.Background(), []byte("img"), "general")
	require.Error(t, err)
}

func TestIdentify_EmptySuggestions(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "COMPLETED",
			"result": map[string]any{"disease": map[string]any{}, "crop": map[string]any{}},
		})
	})

	res, err := c.Identify(context.Background(), []byte("img"), "apple")
	require.NoError(t, err)
	require.True(t, res.Conclusive)
	require.Equal(t, "Unknown", res.Disease)
	require.Equal(t, 0.0, res.Confidence)
	require.Equal(t, "apple", res.CropName)
}

func TestIdentify_ContextCancelledDuringPoll(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"token": "tok-4"})
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})
	c.cfg.PollInterval = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Identify(ctx, []byte("img"), "general")
	require.ErrorIs(t, err, entity.ErrTimeout)
}

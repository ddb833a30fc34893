package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/foamtrack/foamtrack-backend/internal/bootstrap"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis, *redis.Client) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "foamtrack-backend",
		Version:        "test",
		Redis:          client,
		AllowedOrigins: []string{"*"},
	})
	return r, mr, client
}

func doJSON(r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestEntries_ProjectValidation(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	t.Run("missing project", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/entries", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing or invalid project", decode(t, w)["error"])
	})

	t.Run("invalid project (too short)", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/entries?project=x", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation happens before any store access", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/entries", map[string]any{"entry": map[string]any{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, mr.Keys())
	})
}

func TestEntries_CRUDFlow(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	// Create
	w := doJSON(r, http.MethodPost, "/api/entries?project=Alpha", map[string]any{
		"entry": map[string]any{
			"date":        "2025-08-01",
			"foam":        " AFFF 3% ",
			"controlTime": "09:05",
			"junk":        "dropped", // unknown fields never persist
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)
	assert.Equal(t, true, created["ok"])
	entry := created["entry"].(map[string]any)
	id := entry["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "AFFF 3%", entry["foam"])
	assert.Equal(t, "9:05", entry["controlTime"])
	assert.Equal(t, entry["createdAt"], entry["updatedAt"])
	_, hasJunk := entry["junk"]
	assert.False(t, hasJunk)

	// List
	w = doJSON(r, http.MethodGet, "/api/entries?project=Alpha", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	listed := decode(t, w)
	assert.Equal(t, "Alpha", listed["project"])
	require.Len(t, listed["entries"], 1)

	// Update
	w = doJSON(r, http.MethodPut, "/api/entries?project=Alpha&id="+id, map[string]any{
		"entry": map[string]any{"foam": "FFFP", "wind": "5 mph"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)["entry"].(map[string]any)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, entry["createdAt"], updated["createdAt"])
	assert.Equal(t, "FFFP", updated["foam"])

	// Delete
	w = doJSON(r, http.MethodDelete, "/api/entries?project=Alpha&id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode(t, w)["id"])

	w = doJSON(r, http.MethodGet, "/api/entries?project=Alpha", nil)
	assert.Empty(t, decode(t, w)["entries"])
}

func TestEntries_RequestErrors(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	t.Run("create without entry body", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/entries?project=Alpha", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing entry", decode(t, w)["error"])
	})

	t.Run("create with unparseable body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/entries?project=Alpha", strings.NewReader("{nope"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing entry", decode(t, w)["error"])
	})

	t.Run("update without id", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/api/entries?project=Alpha", map[string]any{
			"entry": map[string]any{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing id", decode(t, w)["error"])
	})

	t.Run("update unknown id", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/api/entries?project=Alpha&id=ghost", map[string]any{
			"entry": map[string]any{},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found", decode(t, w)["error"])
	})

	t.Run("delete unknown id", func(t *testing.T) {
		w := doJSON(r, http.MethodDelete, "/api/entries?project=Alpha&id=ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong method on entries route", func(t *testing.T) {
		w := doJSON(r, http.MethodPatch, "/api/entries?project=Alpha", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "Method not allowed", decode(t, w)["error"])
	})

	t.Run("wrong method on export route", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/entries/export?project=Alpha", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found", decode(t, w)["error"])
	})
}

func TestEntries_Export(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	w := doJSON(r, http.MethodPost, "/api/entries?project=Alpha", map[string]any{
		"entry": map[string]any{"date": "2025-08-01", "foam": "AFFF, Inc"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("json shape", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/entries/export?project=Alpha", nil)
		require.Equal(t, http.StatusOK, w.Code)
		out := decode(t, w)
		assert.Equal(t, "Alpha", out["project"])
		assert.NotEmpty(t, out["exportedAt"])
		assert.Len(t, out["entries"], 1)
	})

	t.Run("csv document", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/entries/export?project=Alpha&format=csv", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "Alpha.csv")

		body := w.Body.String()
		assert.True(t, strings.HasPrefix(body, "Date,Foam,Fuel,Test Type,Air Temp,Wind,Fuel Temp,Solution Temp,Control,Extinguishment"))
		assert.Contains(t, body, `"AFFF, Inc"`)
	})
}

func TestEntries_MissingStoreBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "foamtrack-backend",
		Version:        "test",
		Redis:          nil,
		AllowedOrigins: []string{"*"},
	})

	w := doJSON(r, http.MethodGet, "/api/entries?project=Alpha", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Missing KV binding APP_KV", decode(t, w)["error"])
}

func TestEntries_RateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "foamtrack-backend",
		Version:        "test",
		Redis:          client,
		AllowedOrigins: []string{"*"},
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
	})

	w := doJSON(r, http.MethodGet, "/api/entries?project=Alpha", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/entries?project=Alpha", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

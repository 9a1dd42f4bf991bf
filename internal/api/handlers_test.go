package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurantlisting/internal/logger"
	"restaurantlisting/internal/restaurant"
	"restaurantlisting/internal/storage"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestRouter() *gin.Engine {
	svc := restaurant.NewService(storage.NewMemoryStore(), logger.Discard())
	return NewRouter(svc, Options{CORSOrigins: []string{"http://localhost:4200"}, Log: logger.Discard()})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScenarios(t *testing.T) {
	h := newTestRouter()

	// A: пустое хранилище
	w := do(t, h, http.MethodGet, "/restaurant/fetchAllRestaurants", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// B: добавление, id назначает хранилище
	w = do(t, h, http.MethodPost, "/restaurant/addRestaurant",
		`{"id":0,"name":"Pizza Palace","address":"456 Oak Ave","city":"Cityville","restaurantDescription":"Italian pizza"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	want := `{"id":1,"name":"Pizza Palace","address":"456 Oak Ave","city":"Cityville","restaurantDescription":"Italian pizza"}`
	assert.JSONEq(t, want, w.Body.String())

	// C: выборка по id
	w = do(t, h, http.MethodGet, "/restaurant/fetchRestaurant/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, want, w.Body.String())

	// D: неизвестный id
	w = do(t, h, http.MethodGet, "/restaurant/fetchRestaurant/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, h, http.MethodGet, "/restaurant/fetchAllRestaurants", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[`+want+`]`, w.Body.String())
}

func TestAdd_IgnoresClientID(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, http.MethodPost, "/restaurant/addRestaurant", `{"id":77,"name":"A"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got restaurant.Dto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)

	w = do(t, h, http.MethodGet, "/restaurant/fetchRestaurant/77", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdd_ManyThenListHasUniqueIDs(t *testing.T) {
	h := newTestRouter()
	names := []string{"A", "B", "C", "D"}
	for _, n := range names {
		w := do(t, h, http.MethodPost, "/restaurant/addRestaurant", `{"name":"`+n+`","city":"X"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, h, http.MethodGet, "/restaurant/fetchAllRestaurants", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []restaurant.Dto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, len(names))

	seen := map[int64]string{}
	for _, d := range list {
		assert.NotContains(t, seen, d.ID)
		seen[d.ID] = d.Name
		assert.Equal(t, "X", d.City)
	}
}

func TestBadRequests(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, http.MethodPost, "/restaurant/addRestaurant", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/restaurant/fetchRestaurant/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid id"}`, w.Body.String())
}

type failingService struct{ err error }

func (f failingService) ListRestaurants(context.Context) ([]restaurant.Dto, error) {
	return nil, f.err
}

func (f failingService) AddRestaurant(context.Context, restaurant.Dto) (restaurant.Dto, error) {
	return restaurant.Dto{}, f.err
}

func (f failingService) FetchRestaurant(context.Context, int64) (restaurant.Lookup, error) {
	return restaurant.NotFound(), f.err
}

func TestStorageErrorsAre500(t *testing.T) {
	h := NewRouter(failingService{err: errors.New("db down")}, Options{Log: logger.Discard()})

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/restaurant/fetchAllRestaurants", ""},
		{http.MethodPost, "/restaurant/addRestaurant", `{"name":"x"}`},
		{http.MethodGet, "/restaurant/fetchRestaurant/1", ""},
	} {
		w := do(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, tc.path)
		assert.JSONEq(t, `{"error":"storage error"}`, w.Body.String(), tc.path)
	}
}

func TestRequestID(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Len(t, w.Header().Get(RequestIDHeader), 26)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/restaurant/addRestaurant", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/restaurant/fetchAllRestaurants", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PlainOptionsIsNotPreflight(t *testing.T) {
	h := newTestRouter()

	// без preflight-заголовков — обычная маршрутизация
	req := httptest.NewRequest(http.MethodOptions, "/restaurant/addRestaurant", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodOptions, "/no/such/route", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

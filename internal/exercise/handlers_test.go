package exercise

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"elite/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entryKey struct {
	userID, exercise, date string
}

type memStore struct {
	mu      sync.Mutex
	entries map[entryKey]int
	err     error
}

func newMemStore() *memStore {
	return &memStore{entries: map[entryKey]int{}}
}

func (m *memStore) Upsert(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	day := models.NewDate(time.Now().UTC())
	if e.EntryDate != nil {
		day = *e.EntryDate
	}
	m.entries[entryKey{e.UserID, e.Exercise, day.String()}] = e.Value
	return nil
}

func (m *memStore) List(_ context.Context, q Query) ([]models.ExercisePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.ExercisePoint
	for k, v := range m.entries {
		if k.userID != q.UserID || k.exercise != q.Exercise {
			continue
		}
		if (q.From != nil && k.date < q.From.String()) || (q.To != nil && k.date > q.To.String()) {
			continue
		}
		d, _ := models.ParseDate(k.date)
		out = append(out, models.ExercisePoint{EntryDate: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate.Time) })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func newRouter(store Store) *mux.Router {
	r := mux.NewRouter()
	RegisterHandlers(r, store, "demo")
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertReplacesValue(t *testing.T) {
	store := newMemStore()
	r := newRouter(store)

	w := doRequest(r, "POST", "/exercise", `{"user_id":"a","exercise":"pushups","value":10,"entry_date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"saved":true}`, w.Body.String())

	w = doRequest(r, "POST", "/exercise", `{"user_id":"a","exercise":"pushups","value":15,"entry_date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, "GET", "/exercise?user_id=a&exercise=pushups", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"entry_date":"2024-01-01","value":15}]`, w.Body.String())
	assert.Len(t, store.entries, 1)
}

func TestUpsertDefaultsToToday(t *testing.T) {
	store := newMemStore()
	r := newRouter(store)

	w := doRequest(r, "POST", "/exercise", `{"user_id":"a","exercise":"squats","value":0}`)
	require.Equal(t, http.StatusCreated, w.Code)

	today := models.NewDate(time.Now().UTC()).String()
	_, ok := store.entries[entryKey{"a", "squats", today}]
	assert.True(t, ok, "expected an entry for %s", today)
}

func TestUpsertValidation(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode int
	}{
		{"value too large", `{"user_id":"a","exercise":"x","value":100001}`, http.StatusUnprocessableEntity},
		{"negative value", `{"user_id":"a","exercise":"x","value":-1}`, http.StatusUnprocessableEntity},
		{"missing value", `{"user_id":"a","exercise":"x"}`, http.StatusUnprocessableEntity},
		{"missing user", `{"exercise":"x","value":1}`, http.StatusUnprocessableEntity},
		{"long exercise", `{"user_id":"a","exercise":"` + strings.Repeat("e", 65) + `","value":1}`, http.StatusUnprocessableEntity},
		{"malformed date", `{"user_id":"a","exercise":"x","value":1,"entry_date":"2024-02-30"}`, http.StatusUnprocessableEntity},
		{"year zero", `{"user_id":"a","exercise":"x","value":1,"entry_date":"0000-01-01"}`, http.StatusUnprocessableEntity},
		{"numeric date", `{"user_id":"a","exercise":"x","value":1,"entry_date":20240101}`, http.StatusUnprocessableEntity},
		{"broken json", `{"user_id":"a",`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			w := doRequest(newRouter(store), "POST", "/exercise", tt.body)

			assert.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			var resp struct {
				Detail string `json:"detail"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Detail)
			assert.Empty(t, store.entries)
		})
	}
}

func TestUpsertBoundaryValues(t *testing.T) {
	for _, body := range []string{
		`{"user_id":"a","exercise":"x","value":0,"entry_date":"2024-01-01"}`,
		`{"user_id":"a","exercise":"x","value":100000,"entry_date":"2024-01-02"}`,
	} {
		w := doRequest(newRouter(newMemStore()), "POST", "/exercise", body)
		assert.Equal(t, http.StatusCreated, w.Code, body)
	}
}

func TestListEntries(t *testing.T) {
	store := newMemStore()
	r := newRouter(store)
	for _, body := range []string{
		`{"user_id":"a","exercise":"pushups","value":1,"entry_date":"2024-01-01"}`,
		`{"user_id":"a","exercise":"pushups","value":2,"entry_date":"2024-01-02"}`,
		`{"user_id":"a","exercise":"pushups","value":3,"entry_date":"2024-01-03"}`,
		`{"user_id":"a","exercise":"squats","value":9,"entry_date":"2024-01-03"}`,
		`{"user_id":"demo","exercise":"pushups","value":7,"entry_date":"2024-01-03"}`,
	} {
		require.Equal(t, http.StatusCreated, doRequest(r, "POST", "/exercise", body).Code)
	}

	tests := []struct {
		name         string
		query        string
		expectedCode int
		expected     string
	}{
		{"newest first", "user_id=a&exercise=pushups", http.StatusOK,
			`[{"entry_date":"2024-01-03","value":3},{"entry_date":"2024-01-02","value":2},{"entry_date":"2024-01-01","value":1}]`},
		{"limit", "user_id=a&exercise=pushups&limit=1", http.StatusOK, `[{"entry_date":"2024-01-03","value":3}]`},
		{"date range", "user_id=a&exercise=pushups&from=2024-01-02&to=2024-01-02", http.StatusOK, `[{"entry_date":"2024-01-02","value":2}]`},
		{"default user", "exercise=pushups", http.StatusOK, `[{"entry_date":"2024-01-03","value":7}]`},
		{"no rows", "user_id=zzz&exercise=pushups", http.StatusOK, `[]`},
		{"missing exercise", "user_id=a", http.StatusBadRequest, ""},
		{"bad from", "user_id=a&exercise=pushups&from=yesterday", http.StatusBadRequest, ""},
		{"year zero from", "user_id=a&exercise=pushups&from=0000-01-01", http.StatusBadRequest, ""},
		{"invalid utf-8 exercise", "user_id=a&exercise=%ff", http.StatusUnprocessableEntity, ""},
		{"inverted range", "user_id=a&exercise=pushups&from=2024-02-01&to=2024-01-01", http.StatusBadRequest, ""},
		{"limit too large", "user_id=a&exercise=pushups&limit=3651", http.StatusUnprocessableEntity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, "GET", "/exercise?"+tt.query, "")
			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expected != "" {
				assert.JSONEq(t, tt.expected, w.Body.String())
			}
		})
	}
}

func TestStoreFailureReturnsDetail(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("pq: connection refused")
	r := newRouter(store)

	w := doRequest(r, "POST", "/exercise", `{"user_id":"a","exercise":"x","value":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"pq: connection refused"}`, w.Body.String())

	w = doRequest(r, "GET", "/exercise?exercise=x", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"pq: connection refused"}`, w.Body.String())
}

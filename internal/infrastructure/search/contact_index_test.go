package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func esResponse(status int, body string) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newIndex(t *testing.T, fn roundTripFunc) *ContactIndex {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: fn,
	})
	require.NoError(t, err)
	return NewContactIndex(es, "contacts")
}

func TestContactIndex_Index(t *testing.T) {
	var gotPath string
	var gotDoc map[string]any
	idx := newIndex(t, func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))
		return esResponse(http.StatusCreated, `{"result":"created"}`), nil
	})

	c := &entity.Contact{ID: 12, FullName: "John Doe", Phone: "(19) 99999-8888", Email: "john@example.com", Note: "Test", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, idx.Index(context.Background(), c))

	assert.Equal(t, "/contacts/_doc/12", gotPath)
	assert.Equal(t, "John Doe", gotDoc["full_name"])
	assert.Equal(t, "(19) 99999-8888", gotDoc["phone"])
}

func TestContactIndex_IndexErrorStatus(t *testing.T) {
	idx := newIndex(t, func(r *http.Request) (*http.Response, error) {
		return esResponse(http.StatusBadRequest, `{"error":"mapper_parsing_exception"}`), nil
	})

	err := idx.Index(context.Background(), &entity.Contact{ID: 1})
	assert.Error(t, err)
}

func TestContactIndex_RemoveToleratesMissing(t *testing.T) {
	var method string
	idx := newIndex(t, func(r *http.Request) (*http.Response, error) {
		method = r.Method
		return esResponse(http.StatusNotFound, `{"result":"not_found"}`), nil
	})

	require.NoError(t, idx.Remove(context.Background(), 4))
	assert.Equal(t, http.MethodDelete, method)
}

func TestContactIndex_Search(t *testing.T) {
	var query map[string]any
	idx := newIndex(t, func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "/contacts/_search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		return esResponse(http.StatusOK, `{"hits":{"hits":[
			{"_id":"3","_source":{"id":3,"full_name":"Jane Smith","phone":"(19) 99999-7777","email":"jane@example.com","note":"","created_at":"2026-10-01T12:00:00Z","updated_at":"2026-10-01T12:00:00Z"}}
		]}}`), nil
	})

	got, err := idx.Search(context.Background(), "jane", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, "Jane Smith", got[0].FullName)
	assert.Equal(t, 2026, got[0].CreatedAt.Year())

	mm := query["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "jane", mm["query"])
	assert.EqualValues(t, 10, query["size"])
}

func TestContactIndex_EnsureIndexCreatesMissing(t *testing.T) {
	var calls []string
	idx := newIndex(t, func(r *http.Request) (*http.Response, error) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodHead {
			return esResponse(http.StatusNotFound, ``), nil
		}
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"full_name"`)
		return esResponse(http.StatusOK, `{"acknowledged":true}`), nil
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Equal(t, []string{"HEAD /contacts", "PUT /contacts"}, calls)
}

func TestContactIndex_EnsureIndexExisting(t *testing.T) {
	calls := 0
	idx := newIndex(t, func(r *http.Request) (*http.Response, error) {
		calls++
		return esResponse(http.StatusOK, ``), nil
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Equal(t, 1, calls)
}

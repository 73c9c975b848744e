package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/college_admin/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
}

func newFakeES(t *testing.T) (*fakeES, *httptest.Server) {
	f := &fakeES{bodies: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		key := r.Method + " " + r.URL.Path
		f.requests = append(f.requests, key)
		f.bodies[key] = string(body)
		f.mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/":
			_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/students/_doc/404":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
		case r.URL.Path == "/students/_search":
			_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[
				{"_source":{"id":1,"student_name":"Ann Lee","email":"ann@example.com"}},
				{"_source":{"id":5,"student_name":"Anna Park","email":"anna@example.com"}}]}}`)
		default:
			_, _ = io.WriteString(w, `{"result":"ok"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeES) seen(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bodies[key]
	return b, ok
}

func TestNewClientRequiresURL(t *testing.T) {
	t.Parallel()
	_, err := NewClient(context.Background(), Settings{})
	require.Error(t, err)
}

func TestIndexAndDelete(t *testing.T) {
	t.Parallel()
	f, srv := newFakeES(t)
	ctx := context.Background()

	idx, err := NewClient(ctx, Settings{URL: srv.URL, Index: "students"})
	require.NoError(t, err)

	require.NoError(t, idx.Index(ctx, models.Student{ID: 3, StudentName: "Ann Lee", Email: "ann@example.com"}))
	body, ok := f.seen("PUT /students/_doc/3")
	require.True(t, ok)
	var doc StudentDoc
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	assert.Equal(t, "Ann Lee", doc.StudentName)

	require.NoError(t, idx.Delete(ctx, 3))
	require.NoError(t, idx.Delete(ctx, 404))
}

func TestSearch(t *testing.T) {
	t.Parallel()
	f, srv := newFakeES(t)
	ctx := context.Background()

	idx, err := NewClient(ctx, Settings{URL: srv.URL})
	require.NoError(t, err)

	total, docs, err := idx.Search(ctx, "ann", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, docs, 2)
	assert.Equal(t, uint(5), docs[1].ID)

	body, ok := f.seen("POST /students/_search")
	if !ok {
		body, ok = f.seen("GET /students/_search")
	}
	require.True(t, ok)
	assert.Contains(t, body, `"multi_match"`)
	assert.Contains(t, body, `"fuzziness":"AUTO"`)
}

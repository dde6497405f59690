package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/modelhandler/internal/backend"
)

const casesDocument = `{
	"cases_time_series": [
		{"date": "30 January", "dailyconfirmed": "1"},
		{"date": "31 January", "dailyconfirmed": "0"}
	],
	"statewise": []
}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/data.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, casesDocument)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/elsewhere", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://localhost:"+r.URL.Query().Get("port")+"/data.json", http.StatusFound)
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	mux.HandleFunc("/to-file", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "file:///etc/passwd", http.StatusFound)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func port(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return u.Port()
}

func urlRequest(u string) backend.Request {
	body, _ := json.Marshal(map[string]string{"url": u})
	return backend.NewRequest(body, nil)
}

func TestRun_FetchesField(t *testing.T) {
	srv := newServer(t)
	b, err := New(backend.Definition{Params: map[string]any{
		"field":  "cases_time_series",
		"column": "response",
		"value":  "ok",
	}})
	require.NoError(t, err)

	got, err := b.Run(context.Background(), urlRequest(srv.URL+"/data.json"))
	require.NoError(t, err)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"date":"30 January","dailyconfirmed":"1","response":"ok"},{"date":"31 January","dailyconfirmed":"0","response":"ok"}]`,
		string(out))
}

func TestRun_Errors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		params map[string]any
		url    string
		want   error
	}{
		{"scheme", nil, "file:///etc/passwd", ErrSchemeNotAllowed},
		{"host allow-list", map[string]any{"allowed_hosts": []any{"example.com"}}, srv.URL + "/data.json", ErrHostNotAllowed},
		{"status", nil, srv.URL + "/missing", ErrBadStatus},
		{"size", map[string]any{"max_bytes": 10}, srv.URL + "/data.json", ErrTooLarge},
		{"field", map[string]any{"field": "nope"}, srv.URL + "/data.json", ErrFieldNotFound},
		{"redirect to other host", map[string]any{"allowed_hosts": []any{"127.0.0.1"}}, srv.URL + "/elsewhere?port=" + port(t, srv), ErrHostNotAllowed},
		{"redirect to other scheme", nil, srv.URL + "/to-file", ErrSchemeNotAllowed},
		{"redirect loop", nil, srv.URL + "/loop", ErrTooManyRedirects},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(backend.Definition{Params: tt.params})
			require.NoError(t, err)

			_, err = b.Run(context.Background(), urlRequest(tt.url))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRun_Timeout(t *testing.T) {
	srv := newServer(t)
	b, err := New(backend.Definition{Params: map[string]any{"timeout": "50ms"}})
	require.NoError(t, err)

	_, err = b.Run(context.Background(), urlRequest(srv.URL+"/slow"))
	assert.Error(t, err)
}

func TestRun_RequiresURLPayload(t *testing.T) {
	b, err := New(backend.Definition{})
	require.NoError(t, err)

	_, err = b.Run(context.Background(), backend.NewRequest([]byte(`[{"a":1}]`), nil))
	assert.ErrorIs(t, err, backend.ErrUnexpectedPayload)
}

func TestNew_InvalidMaxBytes(t *testing.T) {
	_, err := New(backend.Definition{Params: map[string]any{"max_bytes": 0}})
	assert.Error(t, err)
}

func TestRun_FollowsAllowedRedirect(t *testing.T) {
	srv := newServer(t)
	b, err := New(backend.Definition{Params: map[string]any{
		"allowed_hosts": []any{"127.0.0.1", "localhost"},
		"field":         "cases_time_series",
	}})
	require.NoError(t, err)

	got, err := b.Run(context.Background(), urlRequest(srv.URL+"/elsewhere?port="+port(t, srv)))
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumRows())
}

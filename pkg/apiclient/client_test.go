package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notifications/count", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2025-06-02T03:00:00Z", r.URL.Query().Get("since"))
		_ = json.NewEncoder(w).Encode(map[string]any{"count": 4})
	})
	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[{"id":9,"action_type":"created","user_name":"佐藤"}]}`))
	})
	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"認証が必要です"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"ユーザーが見つかりません"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCountSince(t *testing.T) {
	srv := newServer(t)
	jst := time.FixedZone("JST", 9*60*60)
	n, err := New(srv.URL+"/", "tok").CountSince(context.Background(), time.Date(2025, 6, 2, 12, 0, 0, 0, jst))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestNotifications(t *testing.T) {
	srv := newServer(t)
	list, err := New(srv.URL, "tok").Notifications(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(9), list[0].ID)
	assert.Equal(t, "佐藤", list[0].UserName)
}

func TestCheckSession(t *testing.T) {
	srv := newServer(t)

	err := New(srv.URL, "").CheckSession(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = New(srv.URL, "tok").CheckSession(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "ユーザーが見つかりません", apiErr.Message)
}

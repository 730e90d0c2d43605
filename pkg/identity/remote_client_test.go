package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "anon" || r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@example.com"}`))
	})
	mux.HandleFunc("/auth/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Authorization") != "Bearer service" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["email_confirm"])
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"msg":"A user with this email address has already been registered"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-2","email":"new@example.com"}`))
	})
	mux.HandleFunc("/auth/v1/admin/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path == "/auth/v1/admin/users/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"msg":"User not found"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"good","expires_in":3600,"user":{"id":"u-1","email":"a@example.com"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemote_Resolve(t *testing.T) {
	p := NewRemote(newAuthServer(t).URL+"/", "anon", "service")

	id, err := p.Resolve(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.ID)

	_, err = p.Resolve(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRemote_CreateUserSurfacesMessage(t *testing.T) {
	p := NewRemote(newAuthServer(t).URL, "anon", "service")

	id, err := p.CreateUser(context.Background(), NewUser{Email: "new@example.com", Password: "pw", EmailConfirm: true})
	require.NoError(t, err)
	assert.Equal(t, "u-2", id.ID)

	_, err = p.CreateUser(context.Background(), NewUser{Email: "taken@example.com", Password: "pw", EmailConfirm: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "A user with this email address has already been registered", err.Error())
}

func TestRemote_DeleteAndSignIn(t *testing.T) {
	p := NewRemote(newAuthServer(t).URL, "anon", "service")
	ctx := context.Background()

	require.NoError(t, p.DeleteUser(ctx, "u-2"))
	assert.ErrorIs(t, p.DeleteUser(ctx, "missing"), ErrNotFound)

	sess, err := p.SignIn(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "good", sess.AccessToken)

	_, err = p.SignIn(ctx, "a@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

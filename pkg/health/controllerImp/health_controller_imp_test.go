package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/database"
)

type body struct {
	Status struct {
		OK bool `json:"ok"`
	} `json:"status"`
	Checks map[string]sub `json:"checks"`
}

func call(t *testing.T, h interface{ Health(echo.Context) error }) (int, body) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return rec.Code, b
}

func TestHealth_OK(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	code, b := call(t, NewHealthCtrl(db, map[string]Check{
		"mail": func(context.Context) error { return nil },
	}))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, b.Status.OK)
	assert.True(t, b.Checks["database"].OK)
	assert.True(t, b.Checks["mail"].OK)
}

func TestHealth_FailingCheck(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	code, b := call(t, NewHealthCtrl(db, map[string]Check{
		"mail": func(context.Context) error { return errors.New("circuit open") },
	}))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, b.Status.OK)
	assert.Equal(t, "circuit open", b.Checks["mail"].Err)
}

func TestHealth_SlowCheckTimesOut(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	release := make(chan struct{})
	defer close(release)
	code, b := call(t, NewHealthCtrl(db, map[string]Check{
		"slow": func(context.Context) error { <-release; return nil },
	}))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "timeout", b.Checks["slow"].Err)
}

func TestHealth_NilDB(t *testing.T) {
	code, b := call(t, NewHealthCtrl(nil, nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "gorm db is nil", b.Checks["database"].Err)
}

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTheme(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.json")

	out, err := run(t, "theme", "--state", state)
	require.NoError(t, err)
	assert.Equal(t, "system\n", out)

	_, err = run(t, "theme", "dark", "--state", state)
	require.NoError(t, err)

	out, err = run(t, "theme", "--state", state)
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = run(t, "theme", "neon", "--state", state)
	assert.Error(t, err)
}

func TestUnreadThenRead(t *testing.T) {
	var sinceSeen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sinceSeen = append(sinceSeen, r.URL.Query().Get("since"))
		if len(sinceSeen) == 1 {
			_, _ = w.Write([]byte(`{"count":2}`))
			return
		}
		_, _ = w.Write([]byte(`{"count":0}`))
	}))
	defer srv.Close()
	state := filepath.Join(t.TempDir(), "state.json")

	out, err := run(t, "notifications", "unread", "--api-url", srv.URL, "--token", "tok", "--state", state)
	require.NoError(t, err)
	assert.Equal(t, "2 unread\n", out)

	_, err = run(t, "notifications", "read", "--state", state)
	require.NoError(t, err)

	out, err = run(t, "notifications", "unread", "--api-url", srv.URL, "--token", "tok", "--state", state)
	require.NoError(t, err)
	assert.Equal(t, "0 unread\n", out)
	require.Len(t, sinceSeen, 2)
	assert.NotEqual(t, sinceSeen[0], sinceSeen[1], "second call counts from the read mark")
}

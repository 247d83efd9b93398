package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	defer func() { Version, GitCommit = oldVersion, oldCommit }()

	Version = "1.2.3"
	GitCommit = "abcdef"

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "webhook-relay 1.2.3")
	assert.Contains(t, out, "Commit: abcdef")
}

func TestDaysCmd(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"days", "cakto", "mamae10-anual"}, "365\n"},
		{[]string{"days", "kiwify", "mamae10-trimestral"}, "90\n"},
		{[]string{"days", "kiwify", "unknown"}, "30\n"},
		{[]string{"days", "cakto"}, "30\n"},
	} {
		out, err := execute(t, tc.args...)
		require.NoError(t, err, tc.args)
		assert.Equal(t, tc.want, out, tc.args)
	}
}

func TestDaysCmdUnknownProvider(t *testing.T) {
	_, err := execute(t, "days", "stripe")
	assert.Error(t, err)
}

func TestGrantCmd(t *testing.T) {
	var got struct {
		Email string `json:"email"`
		Days  int    `json:"days"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"message":"done"}`))
	}))
	defer srv.Close()

	t.Setenv("BACKEND_URL", srv.URL)
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "grant", "--email", "a@x.com", "--days", "7")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"done"}`, out)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, 7, got.Days)
}

func TestGrantCmdRejectsNonPositiveDays(t *testing.T) {
	_, err := execute(t, "grant", "--email", "a@x.com", "--days", "0")
	assert.Error(t, err)
}

//go:build !integration

package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schooldata/internal/config"
	"github.com/sells-group/schooldata/internal/store"
)

// testConfig points cfg at a fresh SQLite file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg = &config.Config{
		Store: config.StoreConfig{
			Driver:      "sqlite",
			DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
		},
		Server: config.ServerConfig{
			Port:             5001,
			AllowedOrigins:   []string{"*"},
			AllowBulkDelete:  true,
			RateLimit:        1000,
			RateBurst:        1000,
			QueryTimeoutSecs: 5,
		},
		Import: config.ImportConfig{
			TempDir:         t.TempDir(),
			Concurrency:     2,
			HTTPTimeoutSecs: 5,
		},
		Client: config.ClientConfig{
			BaseURL:     "http://127.0.0.1:1",
			PageSize:    10,
			TimeoutSecs: 5,
		},
	}
	return cfg
}

// startService serves the API over the configured store and points the
// client config at it.
func startService(t *testing.T) store.Store {
	t.Helper()
	st, err := initStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck

	srv := httptest.NewServer(newServer(st).Handler)
	t.Cleanup(srv.Close)
	cfg.Client.BaseURL = srv.URL
	return st
}

// execute runs a command's RunE with captured output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetContext(context.TODO())
	})
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

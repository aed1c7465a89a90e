package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/task-tracker/internal/config"
	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.Contains(t, names, "hash-password")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestMigrateCommandArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no command", args: nil, wantErr: "accepts 1 arg(s)"},
		{name: "too many", args: []string{"up", "down"}, wantErr: "accepts 1 arg(s)"},
		{name: "unknown command", args: []string{"sideways"}, wantErr: `unknown migration command "sideways"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newMigrateCommand(&rootOptions{})
			err := cmd.Args(cmd, tc.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	for _, command := range []string{"up", "down", "status", "version", "reset"} {
		cmd := newMigrateCommand(&rootOptions{})
		assert.NoError(t, cmd.Args(cmd, []string{command}), command)
	}
}

func TestHashPasswordCommand(t *testing.T) {
	t.Run("prints a digest per password", func(t *testing.T) {
		var out bytes.Buffer
		root := newRootCommand()
		root.SetOut(&out)
		root.SetArgs([]string{"hash-password", "--cost", "4", "secret", "other"})
		require.NoError(t, root.Execute())

		digests := strings.Fields(out.String())
		require.Len(t, digests, 2)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(digests[0]), []byte("secret")))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(digests[1]), []byte("other")))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		root := newRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"hash-password", "ab"})
		err := root.Execute()
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := loadConfig(&rootOptions{configPath: "does-not-exist.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestPoolConfig(t *testing.T) {
	pool := poolConfig(config.DatabaseConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
	})
	assert.Equal(t, 10, pool.MaxOpenConns)
	assert.Equal(t, 5, pool.MaxIdleConns)
	assert.Equal(t, time.Minute, pool.ConnMaxLifetime)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            0,
			LogLevel:        "debug",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{URL: "postgres://localhost/tracker", MaxOpenConns: 1},
	}
}

func TestApplicationRouter(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(testConfig(), logger, db)
	require.NoError(t, err)
	require.NotNil(t, app.services.Tasks)
	require.NotNil(t, app.services.Users)
	require.NotNil(t, app.services.TaskStatuses)
	require.NotNil(t, app.services.Labels)

	mock.ExpectPing()
	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(testConfig(), logger, db)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

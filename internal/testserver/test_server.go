package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/slabstock/internal/app"
	"github.com/rpggio/slabstock/internal/config"
	"github.com/rpggio/slabstock/internal/platform"
	"github.com/rpggio/slabstock/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	App     *app.App
	Token   string
	Notices *platform.RecordingNotifier
	Exports string
}

// New starts an HTTP server over a shared in-memory SQLite inventory.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	cfg := config.Default()
	cfg.Transport.Mode = "http"
	cfg.Server.Token = token
	cfg.Export.Dir = t.TempDir()

	notices := &platform.RecordingNotifier{}
	a, err := app.New(context.Background(), cfg, nil, app.Deps{
		Storage:  sqlite.NewKVStore(db),
		Notifier: notices,
	})
	require.NoError(t, err)

	server := httptest.NewServer(a.HTTPHandler())

	ts := &TestServer{
		Server:  server,
		DB:      db,
		App:     a,
		Token:   token,
		Notices: notices,
		Exports: cfg.Export.Dir,
	}

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
		_ = db.Close()
	})

	return ts
}

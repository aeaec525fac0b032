package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"
	"unfollower/pkg/storage/postgres"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "unfollower"
	testChannel  = "unfollower_state_test"
)

// pgServer is a throwaway PostgreSQL container.
type pgServer struct {
	container testcontainers.Container
	host      string
	port      int
}

func startPostgres(ctx context.Context) (*pgServer, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDB,
			},
			// the server restarts once after init; wait for the second start
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)

		return nil, fmt.Errorf("could not get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = container.Terminate(ctx)

		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &pgServer{container: container, host: host, port: port.Int()}, nil
}

func (s *pgServer) options() postgres.Options {
	return postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               s.host,
		Port:               s.port,
		Database:           testDB,
		SslMode:            "disable",
		Channel:            testChannel,
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 1,
	}
}

// open returns another storage handle, and so another origin, on the server.
func (s *pgServer) open(t *testing.T) *postgres.PgSQL {
	t.Helper()
	pg, err := postgres.New(context.Background(), s.options())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })

	return pg
}

// setupTestDB starts a migrated server and opens a first handle on it. Both
// are released when the test ends.
func setupTestDB(t *testing.T) (*postgres.PgSQL, *pgServer) {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	ctx := context.Background()

	srv, err := startPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.container.Terminate(ctx) })

	pg := srv.open(t)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(pg.DB.(*sql.DB), filepath.Join("..", "..", "..", "migrations", "postgres")))

	return pg, srv
}

func TestNew_BadConfig(t *testing.T) {
	_, err := postgres.New(context.Background(), postgres.Options{Host: "localhost", Port: 5432, SslMode: "bogus"})
	require.Error(t, err)
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupSQLite(t *testing.T) *SQLStore {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.RunMigrations("./migrations"))
	return s
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, setupSQLite(t))
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	s := setupSQLite(t)

	assert.NoError(t, s.RunMigrations("./migrations"))
}

func TestSQLStore_Rebind(t *testing.T) {
	pg := &SQLStore{dialect: DialectPostgres}
	lite := &SQLStore{dialect: DialectSQLite}
	query := `INSERT INTO kv_entries (a, b, c) VALUES (?, ?, ?)`

	assert.Equal(t, `INSERT INTO kv_entries (a, b, c) VALUES ($1, $2, $3)`, pg.rebind(query))
	assert.Equal(t, query, lite.rebind(query))
}

func TestPostgresStore_Contract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	s, err := NewPostgresStore(&Credentials{
		Host:     host,
		Port:     port.Int(),
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.RunMigrations("./migrations"))

	runStoreContract(t, s)
}

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/domilony/leadgen/internal/config/db"
)

// SetupPostgres provides a migrated postgres database for integration tests.
// An external database can be supplied via TEST_DB_DSN; otherwise a throwaway
// container is started when TEST_PG_INTEGRATION is set. Without either the
// calling test is skipped, so the default test run needs no docker.
func SetupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		return openPostgres(t, dsn)
	}
	if os.Getenv("TEST_PG_INTEGRATION") == "" {
		t.Skip("set TEST_PG_INTEGRATION=1 or TEST_DB_DSN to run postgres integration tests")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_USER":     "test",
			"POSTGRES_DB":       "leadgen",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=leadgen sslmode=disable", host, port.Port())
	return openPostgres(t, dsn)
}

func openPostgres(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}

	// The container log line can race the first accepted connection.
	deadline := time.Now().Add(30 * time.Second)
	for {
		if err = sqlDB.Ping(); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("ping postgres: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

package pg

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mesto-decin/parking-permits/shared/config"
	"github.com/mesto-decin/parking-permits/shared/domain"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "permits"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// Postgres restarts itself once after the initial startup,
			// so wait for the readiness log twice.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func sampleApplication() domain.PermitApplication {
	return domain.PermitApplication{
		ValidFrom:       "2025-01-01",
		ValidTo:         "2026-01-01",
		Price:           1200,
		Firstname:       "John",
		Lastname:        "Doe",
		Email:           "john@doe.com",
		City:            "Děčín",
		Street:          "Zámecká",
		HouseNumber:     "1087",
		PermitDuration:  domain.DurationYear,
		PaymentMethod:   "transfer",
		CarRegistration: "1AB 2345",
		UserID:          "user-1",
		Zones:           []string{"Děčín", "Podmokly"},
	}
}

func TestIntegrationAddAndGetPermit(t *testing.T) {
	ctx := context.Background()

	id, err := storage.AddPermit(ctx, sampleApplication())
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	permit, err := storage.GetPermitByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, permit)

	assert.Equal(t, sampleApplication(), permit.PermitApplication)
	assert.Equal(t, id, permit.ID)
	assert.Equal(t, "pending", permit.Status)
	assert.Len(t, permit.VariableSymbol, 10)
}

func TestIntegrationGetMissingPermitReturnsNil(t *testing.T) {
	permit, err := storage.GetPermitByID(context.Background(), 999999)
	require.NoError(t, err)
	assert.Nil(t, permit)
}

func TestIntegrationGetPermitsFilter(t *testing.T) {
	ctx := context.Background()

	app := sampleApplication()
	app.CarRegistration = "FILTER-1"
	_, err := storage.AddPermit(ctx, app)
	require.NoError(t, err)
	_, err = storage.AddPermit(ctx, app)
	require.NoError(t, err)

	other := sampleApplication()
	other.CarRegistration = "FILTER-2"
	_, err = storage.AddPermit(ctx, other)
	require.NoError(t, err)

	filtered, err := storage.GetPermits(ctx, "FILTER-1")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, "FILTER-1", p.CarRegistration)
	}

	none, err := storage.GetPermits(ctx, "FILTER-NONE")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIntegrationEmptyZones(t *testing.T) {
	ctx := context.Background()

	app := sampleApplication()
	app.Zones = nil
	id, err := storage.AddPermit(ctx, app)
	require.NoError(t, err)

	permit, err := storage.GetPermitByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, permit)
	assert.Empty(t, permit.Zones)
}

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/custodyledger/internal/infrastructure/config"
	"github.com/iho/custodyledger/internal/infrastructure/metrics"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", config.StorageMemory)
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestBuildWithMemoryStorage(t *testing.T) {
	cfg := memoryConfig(t)

	a, err := build(context.Background(), cfg, zerolog.Nop(), metrics.NewWithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer a.Close()

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := `{"name":"Ana Souza","personal_id":"12345678909","email":"ana@example.com","initial_balance":"10"}`
	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/holders", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.NotNil(t, a.publisher)
	assert.NotNil(t, a.rateLimiter)
}

func TestBuildRejectsUnreachableRedis(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.RedisURL = "redis://127.0.0.1:1/0"

	_, err := build(context.Background(), cfg, zerolog.Nop(), metrics.NewWithRegisterer(prometheus.NewRegistry()))
	assert.Error(t, err)
}

func TestOpenStorageUnknownDriver(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.StorageDriver = "sqlite"

	_, err := openStorage(context.Background(), cfg, zerolog.Nop(), nil)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestAppCloseRunsClosersInReverse(t *testing.T) {
	var order []int
	a := &app{closers: []func(){
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}}

	a.Close()

	assert.Equal(t, []int{2, 1}, order)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.HTTPPort = "0"
	cfg.OutboxPollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zerolog.Nop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/skybook/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestRefresh_SetsStatuses(t *testing.T) {
	s := newServers(&config.Config{}, http.NewServeMux())
	ctx := context.Background()

	s.refresh(ctx, map[string]Checker{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("down") },
	})

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	resp, err = s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: "redis"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	resp, err = s.health.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}}
	err := Run(ctx, cfg, http.NewServeMux(), nil)

	assert.NoError(t, err)
}

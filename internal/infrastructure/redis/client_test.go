package redis

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s/2", s.Addr()))
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "custodyledger", client.Options().ClientName)
	assert.Equal(t, 2, client.Options().DB)

	require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
	s.Select(2)
	assert.True(t, s.Exists("k"), "key should land in the database named by the URL")
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url")
	assert.ErrorContains(t, err, "parse redis URL")
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	_, err := NewClient(context.Background(), url)
	assert.ErrorContains(t, err, "ping redis")
}

func TestNewClientHonoursCancelledContext(t *testing.T) {
	s := miniredis.RunT(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ctx, fmt.Sprintf("redis://%s", s.Addr()))
	assert.Error(t, err)
}

package livekit

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *RoomManager {
	t.Helper()
	cfg, err := NewLiveKitConfig("wss://example.livekit.cloud", "test-key", "test-secret")
	require.NoError(t, err)
	rm, err := NewRoomManager(cfg)
	require.NoError(t, err)
	return rm
}

func TestNewLiveKitConfigValidation(t *testing.T) {
	_, err := NewLiveKitConfig("", "key", "secret")
	assert.Error(t, err)
	_, err = NewLiveKitConfig("wss://x", "", "secret")
	assert.Error(t, err)
	_, err = NewLiveKitConfig("wss://x", "key", "")
	assert.Error(t, err)

	cfg, err := NewLiveKitConfig("wss://x", "key", "secret")
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled())
}

func TestGenerateTokenClaims(t *testing.T) {
	rm := newTestManager(t)

	token, err := rm.GenerateToken("room-1", "browser-user")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "test-key", claims["iss"])
	assert.Equal(t, "browser-user", claims["sub"])

	video, ok := claims["video"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "room-1", video["room"])
	assert.Equal(t, true, video["roomJoin"])
	assert.Equal(t, true, video["canPublish"])
	assert.Equal(t, true, video["canSubscribe"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	ttl := time.Until(exp.Time)
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute+time.Minute)
}

func TestRoomCountStartsAtZero(t *testing.T) {
	rm := newTestManager(t)
	assert.Equal(t, 0, rm.GetRoomCount())

	// Cleanup on an unknown session is a no-op.
	rm.CleanupRoom("missing")
	assert.Equal(t, 0, rm.GetRoomCount())
}

package config

import (
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysFile(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	doc := `
catalog: ./questions
log_level: debug
store:
  kind: redis
  lock: true
  lock_key: survey:team-a
  lock_ttl: 10s
  redis:
    addr: redis:6379
    db: 2
    ttl: 24h
  encryption_key: ` + key + `
  redact:
    - '[\w.]+@[\w.]+'
metrics:
  enabled: true
`
	path := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./questions", cfg.Catalog)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.True(t, cfg.Store.Lock)
	assert.Equal(t, "survey:team-a", cfg.Store.LockKey)
	assert.Equal(t, 10*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, []string{`[\w.]+@[\w.]+`}, cfg.Store.Redact)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 8080, cfg.HTTP.Port, "omitted keys keep their default")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	active, fallback, err := cfg.Store.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	assert.Empty(t, fallback)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"Unknown Key", "colour: blue", "colour"},
		{"Unknown Store", "store: {kind: s3}", "unknown store kind"},
		{"TextDB Without Key", "store: {kind: textdb}", "store.textdb.key"},
		{"Bad Level", "log_level: loud", "invalid log_level"},
		{"Bad Port", "http: {port: 70000}", "out of range"},
		{"Negative Lock TTL", "store: {lock_ttl: -1s}", "lock_ttl"},
		{"Short Key", "store: {encryption_key: c2hvcnQ=}", "32 bytes"},
		{"Not YAML", "store: [", "invalid yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Parse([]byte(tt.doc), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"store": map[string]any{
			"driver":  "memory",
			"timeout": "5s",
		},
		"catalog": map[string]any{
			"maxPageSize": 100,
		},
		"assets": map[string]any{
			"bucketUrl": "mem://",
		},
		"rateLimit": map[string]any{
			"likesPerMinute": 30,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "STORE_DRIVER", want: "store.driver"},
		{envKey: "CATALOG_MAXPAGESIZE", want: "catalog.maxPageSize"},
		{envKey: "ASSETS_BUCKETURL", want: "assets.bucketUrl"},
		{envKey: "RATELIMIT_LIKESPERMINUTE", want: "rateLimit.likesPerMinute"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "memory", cfg.KV.Driver)
	assert.Equal(t, 12, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 100, cfg.Catalog.MaxPageSize)
	assert.Equal(t, 4, cfg.Catalog.RelatedLimit)
	assert.NotNil(t, cfg.RateLimit)
	assert.NotNil(t, cfg.PubSub)
	assert.NotNil(t, cfg.Assets)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Store:   &StoreConfig{Driver: "firestore", Timeout: time.Second},
		Catalog: &CatalogConfig{DefaultPageSize: 24, MaxPageSize: 48, RelatedLimit: 8},
	}
	cfg.applyDefaults()

	assert.Equal(t, "firestore", cfg.Store.Driver)
	assert.Equal(t, time.Second, cfg.Store.Timeout)
	assert.Equal(t, 24, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 48, cfg.Catalog.MaxPageSize)
	assert.Equal(t, 8, cfg.Catalog.RelatedLimit)
}

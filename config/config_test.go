package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMemoryDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("PORT", ":9090")
	t.Setenv("RECEIPT_WIDTH_PX", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 576, cfg.ReceiptWidthPx)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadReceiptWidth(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("RECEIPT_WIDTH_PX", "wide")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseURLFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "pos")
	t.Setenv("DB_NAME", "cashlytic")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	url, err := DatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=pos password=secret dbname=cashlytic sslmode=disable", url)
}

func TestDatabaseURLMissing(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := DatabaseURL()
	assert.Error(t, err)
}

func TestArchiveEnabled(t *testing.T) {
	cfg := &Config{InvoiceDriveFolderID: "folder"}
	assert.False(t, cfg.ArchiveEnabled())

	cfg.GoogleCredentialsPath = "/etc/creds.json"
	assert.True(t, cfg.ArchiveEnabled())
}

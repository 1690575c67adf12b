package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.Categories)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("SHUTDOWN_TIMEOUT", "nonsense")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFrom_PostgresRequiresURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := loadFrom(viper.New())
	assert.Error(t, err)
}

func TestLoadFrom_UnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := loadFrom(viper.New())
	assert.Error(t, err)
}

func TestLoadFrom_CategoriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	content := `categories:
  - id: haircut
    name: Haircut
    gross_amount: 15000
    cost_amount: 2000
  - id: shave
    gross_amount: 5000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryTemplate{
		{CategoryID: "haircut", Name: "Haircut", GrossAmount: 15000, CostAmount: 2000},
		{CategoryID: "shave", GrossAmount: 5000},
	}, cfg.Categories)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/aseertime/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, "KWD", cfg.Shop.Currency)
	assert.Equal(t, 24*time.Hour, cfg.Shop.CartTTL)
	assert.False(t, cfg.Shop.OvernightWindows)

	d, err := cfg.Shop.Defaults()
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("0.5"), d.DeliveryFee)
	assert.Equal(t, money.MustParse("5"), d.MinimumOrder)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
database:
  driver: sqlite
  path: /tmp/shop.db
shop:
  default_minimum_order: "8.000"
  cart_ttl: 2h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("SHOP_OVERNIGHT_WINDOWS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/shop.db", cfg.Database.DSN())
	assert.Equal(t, 2*time.Hour, cfg.Shop.CartTTL)
	assert.True(t, cfg.Shop.OvernightWindows)

	d, err := cfg.Shop.Defaults()
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("8"), d.MinimumOrder)
}

func TestLoad_RejectsBadMoney(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shop:\n  default_delivery_fee: half\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	c := DatabaseConfig{Driver: "mysql", Username: "root", Password: "pw", Host: "db", Port: 3306, Database: "aseertime"}
	assert.Equal(t, "root:pw@tcp(db:3306)/aseertime?charset=utf8mb4&parseTime=True&loc=Local", c.DSN())
}

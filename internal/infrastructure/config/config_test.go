package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("未配置的项使用默认值", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
storage:
  driver: redis
lending:
  allowed_days: 21
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, DriverRedis, cfg.Storage.Driver)
		assert.Equal(t, "library:catalog", cfg.Storage.RedisKey)
		assert.Equal(t, 21, cfg.Lending.AllowedDays)
		assert.Equal(t, 10.0, cfg.Lending.DailyFine)
		assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
		assert.True(t, cfg.Storage.SeedOnEmpty)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("LIBRARY_STORAGE_FILE_PATH", "/tmp/other.json")
		path := writeConfig(t, "server:\n  port: 8081\n")
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/other.json", cfg.Storage.FilePath)
	})

	t.Run("未知存储驱动", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: mongo\n")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("罚金不能为负", func(t *testing.T) {
		path := writeConfig(t, "lending:\n  daily_fine: -1\n")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("生产环境必须修改JWT密钥", func(t *testing.T) {
		path := writeConfig(t, "server:\n  mode: release\n")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "library_data.json", cfg.Storage.FilePath)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, 14, cfg.Lending.AllowedDays)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.NoError(t, validate(cfg))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 3306, User: "u", Password: "p", DBName: "library",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "u:p@tcp(db:3306)/library?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}

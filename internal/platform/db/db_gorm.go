// Package db はGORM接続の生成とマイグレーションを提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "warehouse_backend/internal/feature/auth/domain/entity"
	stockadapters "warehouse_backend/internal/feature/stock/adapters"
)

// サポートするDBドライバー
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const (
	defaultSQLitePath = "warehouse.db"
	connectTimeout    = 60 * time.Second
	retryInterval     = 3 * time.Second
)

// Config はデータベース接続設定を保持します。
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string
	// Path はsqliteのファイルパスです。":memory:" も指定できます。
	Path    string
	Migrate bool
}

// LoadConfigFromEnv は環境変数から設定を読み込みます。
// DB_DRIVER未指定時はsqliteを使い、マイグレーションも既定で有効になります。
func LoadConfigFromEnv() Config {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverSQLite
	}
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = defaultSQLitePath
	}
	migrate := os.Getenv("RUN_MIGRATIONS") == "true"
	if os.Getenv("RUN_MIGRATIONS") == "" && driver == DriverSQLite {
		migrate = true
	}
	return Config{
		Driver:       driver,
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		Path:         path,
		Migrate:      migrate,
	}
}

// BuildDSN はドライバーごとのDSN文字列を組み立てます。
// InstanceNameが設定されている場合はCloud SQLのUnixソケットを優先します。
func BuildDSN(cfg Config) string {
	switch cfg.Driver {
	case DriverPostgres:
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			host, cfg.User, cfg.Password, cfg.Name)
		if cfg.InstanceName == "" && cfg.Port != "" {
			dsn += " port=" + cfg.Port
		}
		return dsn
	case DriverMySQL:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	default:
		path := cfg.Path
		if path == "" {
			path = defaultSQLitePath
		}
		if path == ":memory:" {
			return path
		}
		return path + "?_busy_timeout=5000"
	}
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// NewOpener はドライバー名に対応するOpenerを返します。
// 重複キーをgorm.ErrDuplicatedKeyへ変換するためTranslateErrorを有効にします。
func NewOpener(driver string) (Opener, error) {
	cfg := &gorm.Config{TranslateError: true}
	switch driver {
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), cfg) }, nil
	case DriverMySQL:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(gmysql.Open(dsn), cfg) }, nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), cfg) }, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry はtimeoutまで一定間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Migrate はユーザー・在庫・履歴テーブルを作成または更新します。
func Migrate(db *gorm.DB) error {
	models := append([]any{&authentity.User{}}, stockadapters.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// OpenDB は設定に従って接続し、必要ならマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	opener, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// sqliteは単一ライターのため接続を1本に絞る
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("database ready", "driver", cfg.Driver, "migrated", cfg.Migrate)
	return db, nil
}

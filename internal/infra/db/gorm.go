package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"app/internal/config"
)

// Connect はDBに接続して *gorm.DB を返す。
// TranslateError でドライバ依存のエラーを gorm.ErrDuplicatedKey 等に正規化する。
func Connect(cfg config.Config) (*gorm.DB, error) {
	// DATABASE_URL があれば最優先で使う
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

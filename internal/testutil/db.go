package testutil

import (
	"fmt"
	"strings"
	"testing"

	"stackpulse/internal/config"
	"stackpulse/internal/db"

	"gorm.io/gorm"
)

// NewDB 为当前测试创建独立的内存 sqlite 库并完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	conn, err := db.Open(config.Database{Driver: config.DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

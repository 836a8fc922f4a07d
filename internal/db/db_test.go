package db

import (
	"testing"

	"stackpulse/internal/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	conn, err := Open(config.Database{Driver: config.DriverSQLite, DSN: "file:dbtest?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []string{"questions", "answers", "question_comments", "answer_comments", "tags", "question_tags"} {
		if !conn.Migrator().HasTable(table) {
			t.Errorf("table %s not created", table)
		}
	}

	var fk int
	conn.Raw("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Error("foreign keys should be enabled for sqlite")
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(config.Database{Driver: "mysql", DSN: "x"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

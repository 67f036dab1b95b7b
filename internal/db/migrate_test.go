package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMigrateCreatesAllTables(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, table := range []string{
		"admins", "servers", "packages", "registrars", "tlds",
		"users", "tickets", "messages", "taxes", "settings",
	} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestMigratePackageGroupIndex(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, column := range []string{"name", "server_id", "billing_cycle", "price", "bandwidth"} {
		if !conn.Migrator().HasColumn("packages", column) {
			t.Fatalf("packages missing column %s", column)
		}
	}
	if !conn.Migrator().HasIndex("packages", "idx_packages_group") {
		t.Fatalf("packages missing group index")
	}
}

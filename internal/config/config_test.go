package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DATA_FILE", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.DataFile != "data.json" {
		t.Fatalf("unexpected data file %q", cfg.DataFile)
	}
	if cfg.DBPort != 5432 {
		t.Fatalf("unexpected db port %d", cfg.DBPort)
	}
	if cfg.UsePostgres() {
		t.Fatalf("postgres must be off without DB_HOST")
	}
}

func TestLoad_ConnString(t *testing.T) {
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "taskboard")

	cfg := Load()
	if !cfg.UsePostgres() {
		t.Fatalf("postgres must be selected when DB_HOST is set")
	}
	want := "host=db.local port=5433 user=app password=secret dbname=taskboard sslmode=disable"
	if got := cfg.ConnString(); got != want {
		t.Fatalf("unexpected conn string\nwant %q\ngot  %q", want, got)
	}
}

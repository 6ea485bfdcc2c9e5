package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rmoreira/steamwatch-bot/pkg/config"
)

func TestNewRequiresPath(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestClientOpensAndPings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.db")

	client, err := New(context.Background(), config.DBConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("open client: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if err := client.DB().Exec("CREATE TABLE smoke (id INTEGER)").Error; err != nil {
		t.Fatalf("exec ddl: %v", err)
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if sqlDB == nil {
		t.Fatal("expected raw sql handle")
	}
}

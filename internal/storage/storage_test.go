package storage

import (
	"academy/internal/config"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBuildObjectPathAt(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		category string
		base     string
		ext      string
		expected string
	}{
		{name: "export", category: "exports", base: "enquiries-20250307", ext: "csv", expected: "exports/2025/03/07/enquiries-20250307.csv"},
		{name: "uppercase and spaces", category: "Exports", base: "My Report", ext: ".CSV", expected: "exports/2025/03/07/my-report.csv"},
		{name: "empty category", category: "../", base: "x", ext: "csv", expected: "misc/2025/03/07/x.csv"},
		{name: "generated name", category: "exports", base: "", ext: "", expected: "exports/2025/03/07/" + "1741341600000000000.bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildObjectPathAt(now, tt.category, tt.base, tt.ext); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestJoinPrefix(t *testing.T) {
	if got := joinPrefix("/backups/", "/exports/a.csv"); got != "backups/exports/a.csv" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := joinPrefix("  ", "exports/a.csv"); got != "exports/a.csv" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestLocalStoragePut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("new local storage: %v", err)
	}

	obj := Object{Category: "exports", BaseName: "enquiries-test", Extension: "csv", Body: []byte("Date,Name\n")}
	key, err := store.Put(context.Background(), obj)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasPrefix(key, "exports/") || !strings.HasSuffix(key, "/enquiries-test.csv") {
		t.Fatalf("unexpected key %q", key)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "Date,Name\n" {
		t.Fatalf("unexpected contents %q", data)
	}

	if _, err := store.Put(context.Background(), obj); err == nil {
		t.Fatal("expected second write with the same name to fail")
	}
	if _, err := store.Put(context.Background(), Object{Category: "exports"}); err == nil {
		t.Fatal("expected error for empty payload")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Put(ctx, Object{Category: "exports", Body: []byte("x")}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestNewStorageValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "unknown", cfg: config.Config{StorageType: "ftp"}},
		{name: "s3 without bucket", cfg: config.Config{StorageType: TypeS3}},
		{name: "s3 without credentials", cfg: config.Config{StorageType: TypeS3, StorageS3Bucket: "b", StorageS3Region: "us-east-1"}},
		{name: "r2 without endpoint", cfg: config.Config{StorageType: TypeR2, StorageR2Bucket: "b", StorageR2AccessKeyID: "k", StorageR2SecretAccessKey: "s"}},
		{name: "oss without endpoint", cfg: config.Config{StorageType: TypeOSS}},
		{name: "cos without url", cfg: config.Config{StorageType: TypeCOS}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStorage(tt.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}

	store, err := NewStorage(config.Config{StorageType: TypeS3, StorageS3Bucket: "b", StorageS3Region: "us-east-1", StorageS3AccessKeyID: "k", StorageS3SecretAccessKey: "s"})
	if err != nil {
		t.Fatalf("expected s3 storage, got %v", err)
	}
	if _, ok := store.(*s3Storage); !ok {
		t.Fatalf("unexpected type %T", store)
	}
}

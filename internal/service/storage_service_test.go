package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"srmlab_backend/internal/config"
)

func TestNewStorageServicePicksLocal(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()}}

	svc := NewStorageService(cfg)
	if _, ok := svc.Provider.(*LocalStorageProvider); !ok {
		t.Fatalf("provider = %T, want *LocalStorageProvider", svc.Provider)
	}
}

func TestNewStorageServiceFallsBackToLocalOnBadMinio(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{
		Type:          "minio",
		LocalPath:     t.TempDir(),
		MinioEndpoint: "not a valid endpoint",
	}}

	svc := NewStorageService(cfg)
	if _, ok := svc.Provider.(*LocalStorageProvider); !ok {
		t.Fatalf("provider = %T, want local fallback when minio init fails", svc.Provider)
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	provider := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	url, err := provider.Upload(context.Background(), "question_images/a.png",
		strings.NewReader("png-bytes"), 9, "image/png")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "/uploads/question_images/a.png" {
		t.Errorf("url = %q, want /uploads/question_images/a.png", url)
	}

	stored := filepath.Join(dir, "question_images", "a.png")
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q, want png-bytes", data)
	}

	if err := provider.Delete(context.Background(), "question_images/a.png"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}
}

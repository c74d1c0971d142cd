package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFile_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "payload.json")
	file := NewFile[payload](path, 1)

	want := payload{Name: "roundtrip", Count: 3}
	if err := file.Save(want); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	got, err := file.Load()
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v but got %+v", want, got)
	}
}

func TestFile_LoadMissingFileFails(t *testing.T) {
	file := NewFile[payload](filepath.Join(t.TempDir(), "absent.json"), 1)

	if _, err := file.Load(); err == nil {
		t.Error("Expected error for missing snapshot but got nil")
	}
}

func TestFile_LoadMalformedJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write malformed snapshot: %v", err)
	}

	file := NewFile[payload](path, 1)
	if _, err := file.Load(); err == nil {
		t.Error("Expected error for malformed snapshot but got nil")
	}
}

func TestFile_LoadNewerVersionFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := NewFile[payload](path, 3).Save(payload{Name: "future"}); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	// A reader at version 1 cannot understand a version 3 file
	if _, err := NewFile[payload](path, 1).Load(); err == nil {
		t.Error("Expected error for newer snapshot version but got nil")
	}
}

func TestFile_LoadOlderVersionWithoutMigrationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := NewFile[payload](path, 1).Save(payload{Name: "old"}); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if _, err := NewFile[payload](path, 2).Load(); err == nil {
		t.Error("Expected error for older snapshot without migration but got nil")
	}
}

func TestFile_MigrationUpgradesOldPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrated.json")

	// Version 1 stored the name under a different key
	type payloadV1 struct {
		Title string `json:"title"`
	}
	if err := NewFile[payloadV1](path, 1).Save(payloadV1{Title: "renamed"}); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	file := NewFile[payload](path, 2).WithMigration(func(version int, raw json.RawMessage) (json.RawMessage, error) {
		var old payloadV1
		if err := json.Unmarshal(raw, &old); err != nil {
			return nil, err
		}
		return json.Marshal(payload{Name: old.Title})
	})

	got, err := file.Load()
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if got.Name != "renamed" {
		t.Errorf("Expected migrated name %q but got %q", "renamed", got.Name)
	}
}

func TestFile_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.json")
	if err := NewFile[payload](path, 1).Save(payload{Name: "clean"}); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be renamed away")
	}
}

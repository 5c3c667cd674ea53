package settings

import (
	"path/filepath"
	"testing"
)

func TestManagerGetMissingReturnsDefaults(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "settings.json"))
	current, err := manager.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if current.ConfigDir != "" || current.PollIntervalSeconds != 0 {
		t.Fatalf("expected empty defaults, got %+v", current)
	}
}

func TestManagerSaveAndGetRoundTrip(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "settings.json"))
	input := Settings{
		ConfigDir:            "/opt/homebrew/etc/wireguard",
		PollIntervalSeconds:  5,
		HistoryRetentionDays: 14,
	}
	if err := manager.Save(input); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	output, err := manager.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if output != input {
		t.Fatalf("round trip mismatch: %+v vs %+v", output, input)
	}
}

func TestManagerSavePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := NewManager(path).Save(Settings{ConfigDir: "/etc/wireguard"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fresh := NewManager(path)
	output, err := fresh.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if output.ConfigDir != "/etc/wireguard" {
		t.Fatalf("expected persisted config dir, got %+v", output)
	}
}
